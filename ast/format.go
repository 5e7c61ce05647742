package ast

import (
	"strconv"
	"strings"
)

// ExprSource renders e back to IPL text.
func ExprSource(e Expr) string {
	switch ex := e.(type) {
	case IntLit:
		return strconv.FormatInt(ex.Value, 10)
	case VarRef:
		return ex.Name
	case ArrayRef:
		return ex.Name + "[" + ExprSource(ex.Index) + "]"
	case BinaryExpr:
		return ExprSource(ex.Left) + " " + ex.Op.String() + " " + ExprSource(ex.Right)
	default:
		return ""
	}
}

// StatementSource renders the head line of s, without indentation. Block
// bodies are not included.
func StatementSource(s Statement) string {
	switch st := s.(type) {
	case ReadStmt:
		return "read " + ExprSource(st.Target)
	case AssignStmt:
		return ExprSource(st.Target) + " = " + ExprSource(st.Expr)
	case WriteStmt:
		kw := "write"
		if st.NewLine {
			kw = "writeln"
		}
		if st.Expr == nil {
			return kw
		}
		return kw + " " + ExprSource(st.Expr)
	case WhileStmt:
		return "while " + ExprSource(st.Cond)
	case IfStmt:
		return "if " + ExprSource(st.Cond)
	case RandomStmt:
		return "random " + ExprSource(st.Target)
	case ArgumentStmt:
		return "argument " + ExprSource(st.Index) + " " + ExprSource(st.Target)
	case ArgumentSizeStmt:
		return "argument size " + ExprSource(st.Target)
	case BreakStmt:
		return loopCountSource("break", st.Depth)
	case ContinueStmt:
		return loopCountSource("continue", st.Depth)
	case NewStmt:
		return "new " + st.Name + "[" + ExprSource(st.Size) + "]"
	case FreeStmt:
		return "free " + st.Name
	case SizeStmt:
		return "size " + st.Name + " " + ExprSource(st.Target)
	default:
		return ""
	}
}

func loopCountSource(kw string, n int) string {
	if n == 1 {
		return kw
	}
	return kw + " " + strconv.Itoa(n)
}

// Format renders p as indented IPL source. With lines set every line is
// prefixed with the statement's source line number.
func Format(p *Program, lines bool) string {
	var b strings.Builder
	formatBlock(&b, p, 0, lines)
	return b.String()
}

func formatBlock(b *strings.Builder, p *Program, depth int, lines bool) {
	if p == nil {
		return
	}
	for _, s := range p.Statements {
		writeLine(b, s.SourceLine(), depth, StatementSource(s), lines)
		switch st := s.(type) {
		case WhileStmt:
			formatBlock(b, st.Body, depth+1, lines)
		case IfStmt:
			formatBlock(b, st.Then, depth+1, lines)
			if st.Else != nil {
				writeLine(b, st.ElseLine, depth, "else", lines)
				formatBlock(b, st.Else, depth+1, lines)
			}
		}
	}
}

func writeLine(b *strings.Builder, line, depth int, text string, lines bool) {
	if lines {
		if line > 0 {
			b.WriteString(strconv.Itoa(line))
		} else {
			b.WriteString("-")
		}
		b.WriteString("\t| ")
	}
	b.WriteString(strings.Repeat("\t", depth))
	b.WriteString(text)
	b.WriteString("\n")
}
