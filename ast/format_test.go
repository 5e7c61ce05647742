package ast

import "testing"

func TestFormatProgram(t *testing.T) {
	prog := &Program{Statements: []Statement{
		NewStmt{Pos: Pos{Line: 1}, Name: "a", Size: IntLit{Value: 3}},
		WhileStmt{
			Pos:  Pos{Line: 2},
			Cond: BinaryExpr{Op: OpLt, Left: VarRef{Name: "i"}, Right: IntLit{Value: 3}},
			Body: &Program{Statements: []Statement{
				AssignStmt{
					Pos:    Pos{Line: 3},
					Target: ArrayRef{Name: "a", Index: VarRef{Name: "i"}},
					Expr:   BinaryExpr{Op: OpMul, Left: VarRef{Name: "i"}, Right: IntLit{Value: 2}},
				},
				IfStmt{
					Pos:      Pos{Line: 4},
					Cond:     BinaryExpr{Op: OpEq, Left: VarRef{Name: "i"}, Right: IntLit{Value: 1}},
					Then:     &Program{Statements: []Statement{BreakStmt{Pos: Pos{Line: 5}, Depth: 1}}},
					Else:     &Program{Statements: []Statement{ContinueStmt{Pos: Pos{Line: 7}, Depth: 2}}},
					ElseLine: 6,
				},
			}},
		},
		WriteStmt{Pos: Pos{Line: 8}, NewLine: true},
		WriteStmt{Pos: Pos{Line: 9}, Expr: ArrayRef{Name: "a", Index: IntLit{Value: 0}}},
		ArgumentSizeStmt{Pos: Pos{Line: 10}, Target: VarRef{Name: "n"}},
		SizeStmt{Pos: Pos{Line: 11}, Name: "a", Target: VarRef{Name: "s"}},
	}}

	want := "new a[3]\n" +
		"while i < 3\n" +
		"\ta[i] = i * 2\n" +
		"\tif i == 1\n" +
		"\t\tbreak\n" +
		"\telse\n" +
		"\t\tcontinue 2\n" +
		"writeln\n" +
		"write a[0]\n" +
		"argument size n\n" +
		"size a s\n"
	if got := Format(prog, false); got != want {
		t.Fatalf("unexpected source:\n%s\nwant:\n%s", got, want)
	}

	numbered := Format(&Program{Statements: prog.Statements[:1]}, true)
	if numbered != "1\t| new a[3]\n" {
		t.Fatalf("unexpected numbered source: %q", numbered)
	}
}

func TestOpClasses(t *testing.T) {
	for _, op := range []Op{OpAdd, OpSub, OpMul, OpDiv, OpMod} {
		if !op.IsArithmetic() || op.IsComparison() {
			t.Fatalf("%s should be arithmetic only", op)
		}
	}
	for _, op := range []Op{OpEq, OpNe, OpLt, OpLe, OpGt, OpGe} {
		if op.IsArithmetic() || !op.IsComparison() {
			t.Fatalf("%s should be a comparison only", op)
		}
	}
	if Op(0).String() != "?" {
		t.Fatalf("unexpected zero op text")
	}
}
