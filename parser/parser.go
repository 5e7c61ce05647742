// Package parser builds an ast.Program from scanner tokens.
//
// Blocks are delimited by indentation only. Every statement line starts with
// as many TAB tokens as its nesting depth; a smaller count ends the current
// block and returns control to the enclosing one.
package parser

import (
	"github.com/gosuda/ipl/ast"
	"github.com/gosuda/ipl/diag"
	"github.com/gosuda/ipl/scanner"
)

type parser struct {
	toks []scanner.Token
	pos  int
}

// Parse consumes the whole token slice. A missing trailing END token is
// supplied.
func Parse(tokens []scanner.Token) (*ast.Program, error) {
	if len(tokens) == 0 || tokens[len(tokens)-1].Kind != scanner.END {
		line := 1
		if len(tokens) > 0 {
			line = tokens[len(tokens)-1].Line
		}
		tokens = append(tokens[:len(tokens):len(tokens)], scanner.Token{Kind: scanner.END, Lexeme: "<EOF>", Line: line})
	}
	p := &parser{toks: tokens}
	prog, err := p.parseBlock(0)
	if err != nil {
		return nil, err
	}
	return prog, nil
}

func (p *parser) parseBlock(indent int) (*ast.Program, error) {
	prog := &ast.Program{}
	for {
		for p.at(scanner.NEWLINE) {
			p.advance()
		}
		if p.at(scanner.END) {
			return prog, nil
		}
		start := p.pos
		depth := p.indentation()
		if p.at(scanner.SPACE) {
			return nil, p.syntaxErr(diag.BadIndent, p.peek().Line, "invalid indentation")
		}
		if depth < indent {
			p.pos = start
			return prog, nil
		}
		if depth > indent {
			return nil, p.syntaxErr(diag.BadIndent, p.peek().Line, "invalid indentation")
		}
		stmt, err := p.parseStatement(indent)
		if err != nil {
			return nil, err
		}
		prog.Statements = append(prog.Statements, stmt)
	}
}

// parseBody parses the block one level below indent. line is reported when
// the block turns out to be empty.
func (p *parser) parseBody(line, indent int) (*ast.Program, error) {
	body, err := p.parseBlock(indent + 1)
	if err != nil {
		return nil, err
	}
	if body.Len() == 0 {
		return nil, p.syntaxErr(diag.NoBody, line, "empty body statement")
	}
	return body, nil
}

func (p *parser) parseStatement(indent int) (ast.Statement, error) {
	tok := p.advance()
	pos := ast.Pos{Line: tok.Line}
	switch tok.Kind {
	case scanner.READ:
		target, err := p.parseLValue()
		if err != nil {
			return nil, err
		}
		return ast.ReadStmt{Pos: pos, Target: target}, p.endStatement()
	case scanner.IDENTIFIER:
		p.pos--
		return p.parseAssign(pos)
	case scanner.WRITE, scanner.WRITELN:
		stmt := ast.WriteStmt{Pos: pos, NewLine: tok.Kind == scanner.WRITELN}
		if !p.at(scanner.NEWLINE) && !p.at(scanner.END) {
			expr, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			stmt.Expr = expr
		}
		return stmt, p.endStatement()
	case scanner.WHILE:
		return p.parseWhile(pos, indent)
	case scanner.IF:
		return p.parseIf(pos, indent)
	case scanner.RANDOM:
		target, err := p.parseLValue()
		if err != nil {
			return nil, err
		}
		return ast.RandomStmt{Pos: pos, Target: target}, p.endStatement()
	case scanner.ARGUMENT:
		if p.match(scanner.SIZE) {
			target, err := p.parseLValue()
			if err != nil {
				return nil, err
			}
			return ast.ArgumentSizeStmt{Pos: pos, Target: target}, p.endStatement()
		}
		index, err := p.parseRValue()
		if err != nil {
			return nil, err
		}
		target, err := p.parseLValue()
		if err != nil {
			return nil, err
		}
		return ast.ArgumentStmt{Pos: pos, Index: index, Target: target}, p.endStatement()
	case scanner.BREAK:
		n, err := p.parseLoopCount("break", tok.Line)
		if err != nil {
			return nil, err
		}
		return ast.BreakStmt{Pos: pos, Depth: n}, p.endStatement()
	case scanner.CONTINUE:
		n, err := p.parseLoopCount("continue", tok.Line)
		if err != nil {
			return nil, err
		}
		return ast.ContinueStmt{Pos: pos, Depth: n}, p.endStatement()
	case scanner.NEW:
		name, err := p.consume(scanner.IDENTIFIER, false)
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(scanner.LBRACKET, false); err != nil {
			return nil, err
		}
		size, err := p.parseRValue()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(scanner.RBRACKET, false); err != nil {
			return nil, err
		}
		return ast.NewStmt{Pos: pos, Name: name.Lexeme, Size: size}, p.endStatement()
	case scanner.FREE:
		name, err := p.consume(scanner.IDENTIFIER, false)
		if err != nil {
			return nil, err
		}
		return ast.FreeStmt{Pos: pos, Name: name.Lexeme}, p.endStatement()
	case scanner.SIZE:
		name, err := p.consume(scanner.IDENTIFIER, false)
		if err != nil {
			return nil, err
		}
		target, err := p.parseLValue()
		if err != nil {
			return nil, err
		}
		return ast.SizeStmt{Pos: pos, Name: name.Lexeme, Target: target}, p.endStatement()
	default:
		return nil, p.syntaxErr(diag.BadToken, tok.Line, "unrecognized token")
	}
}

func (p *parser) parseAssign(pos ast.Pos) (ast.Statement, error) {
	target, err := p.parseLValue()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(scanner.EQUAL, false); err != nil {
		return nil, err
	}
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if bin, ok := expr.(ast.BinaryExpr); ok && !bin.Op.IsArithmetic() {
		return nil, p.syntaxErr(diag.BadOp, pos.Line, "invalid operator in binary expression")
	}
	return ast.AssignStmt{Pos: pos, Target: target, Expr: expr}, p.endStatement()
}

func (p *parser) parseWhile(pos ast.Pos, indent int) (ast.Statement, error) {
	cond, err := p.parseCondition("while", pos.Line)
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(scanner.NEWLINE, false); err != nil {
		return nil, err
	}
	body, err := p.parseBody(pos.Line, indent)
	if err != nil {
		return nil, err
	}
	return ast.WhileStmt{Pos: pos, Cond: cond, Body: body}, nil
}

// parseIf attaches an else branch only when the else keyword sits at the
// if's own indentation right after the then block.
func (p *parser) parseIf(pos ast.Pos, indent int) (ast.Statement, error) {
	cond, err := p.parseCondition("if-else", pos.Line)
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(scanner.NEWLINE, false); err != nil {
		return nil, err
	}
	then, err := p.parseBody(pos.Line, indent)
	if err != nil {
		return nil, err
	}
	stmt := ast.IfStmt{Pos: pos, Cond: cond, Then: then}

	start := p.pos
	if p.indentation() != indent || !p.match(scanner.ELSE) {
		p.pos = start
		return stmt, nil
	}
	nl, err := p.consume(scanner.NEWLINE, false)
	if err != nil {
		return nil, err
	}
	els, err := p.parseBody(nl.Line, indent)
	if err != nil {
		return nil, err
	}
	stmt.Else = els
	stmt.ElseLine = nl.Line
	return stmt, nil
}

func (p *parser) parseLoopCount(keyword string, line int) (int, error) {
	if !p.at(scanner.NUMBER) {
		return 1, nil
	}
	tok := p.advance()
	if tok.Literal == 0 {
		return 0, p.syntaxErr(diag.BadLoops, line, "invalid loop count in %s statement", keyword)
	}
	return int(tok.Literal), nil
}

func (p *parser) endStatement() error {
	_, err := p.consume(scanner.NEWLINE, true)
	return err
}

func (p *parser) indentation() int {
	n := 0
	for p.match(scanner.TAB) {
		n++
	}
	return n
}

func (p *parser) peek() scanner.Token {
	return p.toks[p.pos]
}

func (p *parser) at(kind scanner.Kind) bool {
	return p.peek().Kind == kind
}

// advance returns the current token and moves past it. The cursor never
// moves past END.
func (p *parser) advance() scanner.Token {
	tok := p.toks[p.pos]
	if tok.Kind != scanner.END {
		p.pos++
	}
	return tok
}

func (p *parser) match(kind scanner.Kind) bool {
	if !p.at(kind) {
		return false
	}
	p.advance()
	return true
}

// consume requires the next token to be of the given kind. END is accepted
// in its place when endable is set.
func (p *parser) consume(kind scanner.Kind, endable bool) (scanner.Token, error) {
	tok := p.advance()
	switch {
	case tok.Kind == kind:
		return tok, nil
	case tok.Kind == scanner.END:
		if endable {
			return tok, nil
		}
		return tok, p.syntaxErr(diag.BadTerm, tok.Line, "unexpected program termination")
	default:
		return tok, p.syntaxErr(diag.BadToken, tok.Line, "unexpected token")
	}
}

func (p *parser) syntaxErr(code diag.Code, line int, format string, args ...any) error {
	return diag.SyntaxError(code, line, format, args...)
}
