package scanner

import "fmt"

type Kind int

const (
	END Kind = iota
	NEWLINE
	TAB
	SPACE

	EQUAL

	PLUS
	MINUS
	STAR
	SLASH
	MODULO

	EQUAL_EQUAL
	BANG_EQUAL
	LESS
	LESS_EQUAL
	GREATER
	GREATER_EQUAL

	LBRACKET
	RBRACKET

	IDENTIFIER
	NUMBER

	READ
	WRITE
	WRITELN
	IF
	ELSE
	WHILE
	RANDOM
	ARGUMENT
	SIZE
	BREAK
	CONTINUE
	NEW
	FREE
)

var kindNames = [...]string{
	END:           "END",
	NEWLINE:       "NEWLINE",
	TAB:           "TAB",
	SPACE:         "SPACE",
	EQUAL:         "EQUAL",
	PLUS:          "PLUS",
	MINUS:         "MINUS",
	STAR:          "STAR",
	SLASH:         "SLASH",
	MODULO:        "MODULO",
	EQUAL_EQUAL:   "EQUAL_EQUAL",
	BANG_EQUAL:    "BANG_EQUAL",
	LESS:          "LESS",
	LESS_EQUAL:    "LESS_EQUAL",
	GREATER:       "GREATER",
	GREATER_EQUAL: "GREATER_EQUAL",
	LBRACKET:      "LBRACKET",
	RBRACKET:      "RBRACKET",
	IDENTIFIER:    "IDENTIFIER",
	NUMBER:        "NUMBER",
	READ:          "READ",
	WRITE:         "WRITE",
	WRITELN:       "WRITELN",
	IF:            "IF",
	ELSE:          "ELSE",
	WHILE:         "WHILE",
	RANDOM:        "RANDOM",
	ARGUMENT:      "ARGUMENT",
	SIZE:          "SIZE",
	BREAK:         "BREAK",
	CONTINUE:      "CONTINUE",
	NEW:           "NEW",
	FREE:          "FREE",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// IsKeyword reports whether k is one of the reserved words.
func (k Kind) IsKeyword() bool {
	return k >= READ && k <= FREE
}

var keywords = map[string]Kind{
	"read":     READ,
	"write":    WRITE,
	"writeln":  WRITELN,
	"if":       IF,
	"else":     ELSE,
	"while":    WHILE,
	"random":   RANDOM,
	"argument": ARGUMENT,
	"size":     SIZE,
	"break":    BREAK,
	"continue": CONTINUE,
	"new":      NEW,
	"free":     FREE,
}

// Lookup classifies an identifier-shaped lexeme, keywords first.
func Lookup(ident string) Kind {
	if k, ok := keywords[ident]; ok {
		return k
	}
	return IDENTIFIER
}

type Token struct {
	Kind    Kind
	Lexeme  string
	Literal int64 // NUMBER only
	Line    int
}

func (t Token) String() string {
	switch t.Kind {
	case IDENTIFIER:
		return fmt.Sprintf("%s(%s)@%d", t.Kind, t.Lexeme, t.Line)
	case NUMBER:
		return fmt.Sprintf("%s(%d)@%d", t.Kind, t.Literal, t.Line)
	default:
		return fmt.Sprintf("%s@%d", t.Kind, t.Line)
	}
}
