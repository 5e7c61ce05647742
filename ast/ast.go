package ast

// Program is an ordered statement list. The whole script and every block
// body are Programs.
type Program struct {
	Statements []Statement
}

func (p *Program) Len() int {
	if p == nil {
		return 0
	}
	return len(p.Statements)
}

type Op int

const (
	OpAdd Op = iota + 1
	OpSub
	OpMul
	OpDiv
	OpMod
	OpEq
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
)

var opText = map[Op]string{
	OpAdd: "+",
	OpSub: "-",
	OpMul: "*",
	OpDiv: "/",
	OpMod: "%",
	OpEq:  "==",
	OpNe:  "!=",
	OpLt:  "<",
	OpLe:  "<=",
	OpGt:  ">",
	OpGe:  ">=",
}

func (o Op) String() string {
	if s, ok := opText[o]; ok {
		return s
	}
	return "?"
}

func (o Op) IsArithmetic() bool {
	return o >= OpAdd && o <= OpMod
}

func (o Op) IsComparison() bool {
	return o >= OpEq && o <= OpGe
}

type Expr interface {
	isExpr()
}

// LValue is an expression that names a storable location.
type LValue interface {
	Expr
	isLValue()
}

type IntLit struct {
	Value int64
}

func (IntLit) isExpr() {}

type VarRef struct {
	Name string
}

func (VarRef) isExpr()   {}
func (VarRef) isLValue() {}

type ArrayRef struct {
	Name  string
	Index Expr
}

func (ArrayRef) isExpr()   {}
func (ArrayRef) isLValue() {}

type BinaryExpr struct {
	Op    Op
	Left  Expr
	Right Expr
}

func (BinaryExpr) isExpr() {}

// Pos records the source line a statement starts on.
type Pos struct {
	Line int
}

func (p Pos) SourceLine() int {
	return p.Line
}

type Statement interface {
	SourceLine() int
	isStatement()
}

type ReadStmt struct {
	Pos
	Target LValue
}

func (ReadStmt) isStatement() {}

type AssignStmt struct {
	Pos
	Target LValue
	Expr   Expr
}

func (AssignStmt) isStatement() {}

// WriteStmt covers both write (NewLine false) and writeln. Expr may be nil.
type WriteStmt struct {
	Pos
	Expr    Expr
	NewLine bool
}

func (WriteStmt) isStatement() {}

type WhileStmt struct {
	Pos
	Cond BinaryExpr
	Body *Program
}

func (WhileStmt) isStatement() {}

// IfStmt has a nil Else when no else branch was attached. ElseLine is the
// line of the else keyword.
type IfStmt struct {
	Pos
	Cond     BinaryExpr
	Then     *Program
	Else     *Program
	ElseLine int
}

func (IfStmt) isStatement() {}

type RandomStmt struct {
	Pos
	Target LValue
}

func (RandomStmt) isStatement() {}

type ArgumentStmt struct {
	Pos
	Index  Expr
	Target LValue
}

func (ArgumentStmt) isStatement() {}

type ArgumentSizeStmt struct {
	Pos
	Target LValue
}

func (ArgumentSizeStmt) isStatement() {}

type BreakStmt struct {
	Pos
	Depth int
}

func (BreakStmt) isStatement() {}

type ContinueStmt struct {
	Pos
	Depth int
}

func (ContinueStmt) isStatement() {}

type NewStmt struct {
	Pos
	Name string
	Size Expr
}

func (NewStmt) isStatement() {}

type FreeStmt struct {
	Pos
	Name string
}

func (FreeStmt) isStatement() {}

type SizeStmt struct {
	Pos
	Name   string
	Target LValue
}

func (SizeStmt) isStatement() {}
