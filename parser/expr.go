package parser

import (
	"github.com/gosuda/ipl/ast"
	"github.com/gosuda/ipl/diag"
	"github.com/gosuda/ipl/scanner"
)

var binaryOps = map[scanner.Kind]ast.Op{
	scanner.PLUS:          ast.OpAdd,
	scanner.MINUS:         ast.OpSub,
	scanner.STAR:          ast.OpMul,
	scanner.SLASH:         ast.OpDiv,
	scanner.MODULO:        ast.OpMod,
	scanner.EQUAL_EQUAL:   ast.OpEq,
	scanner.BANG_EQUAL:    ast.OpNe,
	scanner.LESS:          ast.OpLt,
	scanner.LESS_EQUAL:    ast.OpLe,
	scanner.GREATER:       ast.OpGt,
	scanner.GREATER_EQUAL: ast.OpGe,
}

// parseExpr reads one operand optionally followed by a single operator and a
// second operand. Expressions never nest deeper than that.
func (p *parser) parseExpr() (ast.Expr, error) {
	left, err := p.parseRValue()
	if err != nil {
		return nil, err
	}
	op, ok := binaryOps[p.peek().Kind]
	if !ok {
		return left, nil
	}
	p.advance()
	right, err := p.parseRValue()
	if err != nil {
		return nil, err
	}
	return ast.BinaryExpr{Op: op, Left: left, Right: right}, nil
}

func (p *parser) parseRValue() (ast.Expr, error) {
	tok := p.advance()
	switch tok.Kind {
	case scanner.IDENTIFIER:
		if !p.match(scanner.LBRACKET) {
			return ast.VarRef{Name: tok.Lexeme}, nil
		}
		index, err := p.parseRValue()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(scanner.RBRACKET, false); err != nil {
			return nil, err
		}
		return ast.ArrayRef{Name: tok.Lexeme, Index: index}, nil
	case scanner.NUMBER:
		return ast.IntLit{Value: tok.Literal}, nil
	case scanner.END:
		return nil, p.syntaxErr(diag.BadTerm, tok.Line, "unexpected program termination")
	default:
		return nil, p.syntaxErr(diag.BadExpr, tok.Line, "expected name or literal")
	}
}

func (p *parser) parseLValue() (ast.LValue, error) {
	expr, err := p.parseRValue()
	if err != nil {
		return nil, err
	}
	lv, ok := expr.(ast.LValue)
	if !ok {
		return nil, p.syntaxErr(diag.BadExpr, p.toks[p.pos-1].Line, "expected lvalue")
	}
	return lv, nil
}

// parseCondition requires a comparison between two operands.
func (p *parser) parseCondition(keyword string, line int) (ast.BinaryExpr, error) {
	expr, err := p.parseExpr()
	if err != nil {
		return ast.BinaryExpr{}, err
	}
	bin, ok := expr.(ast.BinaryExpr)
	if !ok || !bin.Op.IsComparison() {
		return ast.BinaryExpr{}, p.syntaxErr(diag.BadCond, line, "invalid conditional in %s statement", keyword)
	}
	return bin, nil
}
