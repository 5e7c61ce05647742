// Package scanner turns IPL source text into a token slice.
//
// Indentation is significant: leading tabs of a line are emitted as TAB
// tokens in front of the line's first content token, and lines holding only
// whitespace or a comment produce no tokens at all.
package scanner

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gosuda/ipl/diag"
)

// DefaultMaxLexeme bounds the length of identifiers and number literals.
const DefaultMaxLexeme = 100

type Option func(*Scanner)

// WithMaxLexeme overrides DefaultMaxLexeme. Values <= 0 keep the default.
func WithMaxLexeme(n int) Option {
	return func(s *Scanner) {
		if n > 0 {
			s.maxLexeme = n
		}
	}
}

type Scanner struct {
	r         *bufio.Reader
	maxLexeme int
	tokens    []Token

	line     int
	indent   int
	leading  bool // no content token on the current line yet
	counting bool // still counting indentation tabs
	spaced   bool // a space appeared in the leading whitespace
}

func New(r io.Reader, opts ...Option) *Scanner {
	s := &Scanner{
		r:         bufio.NewReader(r),
		maxLexeme: DefaultMaxLexeme,
		line:      1,
		leading:   true,
		counting:  true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scan tokenizes r with default options.
func Scan(r io.Reader) ([]Token, error) {
	return New(r).Scan()
}

// Scan consumes the whole input. The returned slice always ends with a
// single END token.
func (s *Scanner) Scan() ([]Token, error) {
	if err := s.skipBOM(); err != nil {
		return nil, err
	}
	for {
		r, err := s.next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("scan line %d: %w", s.line, err)
		}
		if err := s.scanRune(r); err != nil {
			return nil, err
		}
	}
	s.tokens = append(s.tokens, Token{Kind: END, Lexeme: "<EOF>", Line: s.line})
	return s.tokens, nil
}

func (s *Scanner) skipBOM() error {
	r, err := s.next()
	if errors.Is(err, io.EOF) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("scan: %w", err)
	}
	if r != '\uFEFF' {
		s.backup()
	}
	return nil
}

func (s *Scanner) scanRune(r rune) error {
	switch r {
	case '+':
		s.emit(PLUS, "+", 0)
	case '-':
		s.emit(MINUS, "-", 0)
	case '*':
		s.emit(STAR, "*", 0)
	case '/':
		s.emit(SLASH, "/", 0)
	case '%':
		s.emit(MODULO, "%", 0)
	case '[':
		s.emit(LBRACKET, "[", 0)
	case ']':
		s.emit(RBRACKET, "]", 0)
	case '!':
		ok, err := s.match('=')
		if err != nil {
			return err
		}
		if !ok {
			return s.unexpected(r)
		}
		s.emit(BANG_EQUAL, "!=", 0)
	case '=':
		return s.pair('=', EQUAL_EQUAL, "==", EQUAL, "=")
	case '<':
		return s.pair('=', LESS_EQUAL, "<=", LESS, "<")
	case '>':
		return s.pair('=', GREATER_EQUAL, ">=", GREATER, ">")
	case '\t':
		if s.counting {
			s.indent++
		}
	case ' ', '\v', '\f':
		if s.leading {
			s.spaced = true
			s.counting = false
		}
	case '\r':
	case '\n':
		s.newline()
	case '#':
		return s.comment()
	default:
		switch {
		case isAlpha(r):
			return s.identifier(r)
		case isDigit(r):
			return s.number(r)
		default:
			return s.unexpected(r)
		}
	}
	return nil
}

func (s *Scanner) pair(second rune, long Kind, longLex string, short Kind, shortLex string) error {
	ok, err := s.match(second)
	if err != nil {
		return err
	}
	if ok {
		s.emit(long, longLex, 0)
	} else {
		s.emit(short, shortLex, 0)
	}
	return nil
}

func (s *Scanner) newline() {
	if !s.leading {
		s.tokens = append(s.tokens, Token{Kind: NEWLINE, Lexeme: "\\n", Line: s.line})
	}
	s.line++
	s.indent = 0
	s.leading = true
	s.counting = true
	s.spaced = false
}

func (s *Scanner) comment() error {
	for {
		r, err := s.next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("scan line %d: %w", s.line, err)
		}
		if r == '\n' {
			s.newline()
			return nil
		}
	}
}

func (s *Scanner) identifier(first rune) error {
	lex, err := s.run(first, isAlnum)
	if err != nil {
		return err
	}
	s.emit(Lookup(lex), lex, 0)
	return nil
}

func (s *Scanner) number(first rune) error {
	lex, err := s.run(first, isDigit)
	if err != nil {
		return err
	}
	v, err := strconv.ParseInt(lex, 10, 64)
	if err != nil {
		return diag.LexicalError(diag.BadSymbol, s.line, "integer literal %s out of range", lex)
	}
	s.emit(NUMBER, lex, v)
	return nil
}

// run collects the maximal run of runes accepted by ok, starting with first.
func (s *Scanner) run(first rune, ok func(rune) bool) (string, error) {
	var b strings.Builder
	b.WriteRune(first)
	for {
		r, err := s.next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("scan line %d: %w", s.line, err)
		}
		if !ok(r) {
			s.backup()
			break
		}
		b.WriteRune(r)
		if b.Len() > s.maxLexeme {
			return "", diag.LexicalError(diag.BadSymbol, s.line, "lexeme too long (max %d characters)", s.maxLexeme)
		}
	}
	return b.String(), nil
}

func (s *Scanner) emit(kind Kind, lexeme string, literal int64) {
	if s.leading {
		for i := 0; i < s.indent; i++ {
			s.tokens = append(s.tokens, Token{Kind: TAB, Lexeme: "\\t", Line: s.line})
		}
		if s.spaced {
			s.tokens = append(s.tokens, Token{Kind: SPACE, Lexeme: " ", Line: s.line})
		}
		s.leading = false
		s.counting = false
	}
	s.tokens = append(s.tokens, Token{Kind: kind, Lexeme: lexeme, Literal: literal, Line: s.line})
}

func (s *Scanner) unexpected(r rune) error {
	return diag.LexicalError(diag.BadSymbol, s.line, "unexpected character '%c'", r)
}

func (s *Scanner) next() (rune, error) {
	r, _, err := s.r.ReadRune()
	return r, err
}

func (s *Scanner) backup() {
	_ = s.r.UnreadRune()
}

func (s *Scanner) match(want rune) (bool, error) {
	r, err := s.next()
	if errors.Is(err, io.EOF) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("scan line %d: %w", s.line, err)
	}
	if r == want {
		return true, nil
	}
	s.backup()
	return false, nil
}

func isAlpha(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isAlnum(r rune) bool {
	return isAlpha(r) || isDigit(r) || r == '_'
}
