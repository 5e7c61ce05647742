// Package iplruntime executes a parsed IPL program.
//
// All names live in one flat table for the whole run; blocks do not open a
// new scope. Loop control is carried upward as a signal value, so break and
// continue unwind exactly one while frame per level of depth.
package iplruntime

import (
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/gosuda/ipl/ast"
	"github.com/gosuda/ipl/diag"
)

// DefaultMaxArrayLen bounds the length accepted by new.
const DefaultMaxArrayLen = 1 << 24

type Output struct {
	Text    string `json:"text"`
	NewLine bool   `json:"newline"`
}

type VM struct {
	program     *ast.Program
	args        []string
	symbols     map[string]entry
	loopDepth   int
	outputs     []Output
	rng         *rand.Rand
	maxArrayLen int64

	input         inputState
	inputProvider InputProvider
	outputHook    func(Output)
	traceHook     func(ast.Statement)
}

// New prepares program for execution. args is the full invocation vector:
// program name, script path, then the forwarded arguments.
func New(program *ast.Program, args []string) *VM {
	if program == nil {
		program = &ast.Program{}
	}
	return &VM{
		program:     program,
		args:        append([]string(nil), args...),
		symbols:     map[string]entry{},
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
		maxArrayLen: DefaultMaxArrayLen,
	}
}

// SetSeed reseeds the generator used by random.
func (vm *VM) SetSeed(seed int64) {
	vm.rng = rand.New(rand.NewSource(seed))
}

func (vm *VM) SetMaxArrayLen(n int64) {
	if n > 0 {
		vm.maxArrayLen = n
	}
}

// SetOutputHook streams every output to fn instead of collecting it for Run.
func (vm *VM) SetOutputHook(fn func(Output)) {
	vm.outputHook = fn
}

// SetTraceHook registers fn to be called before each statement executes.
func (vm *VM) SetTraceHook(fn func(ast.Statement)) {
	vm.traceHook = fn
}

// Run executes the program from the top against the current symbol table,
// which starts empty unless Restore was called. It returns the collected outputs
// (nothing when an output hook is set). Outputs produced before a runtime
// error are returned together with the error.
func (vm *VM) Run() ([]Output, error) {
	vm.outputs = vm.outputs[:0]
	vm.loopDepth = 0
	_, err := vm.runProgram(vm.program)
	return append([]Output(nil), vm.outputs...), err
}

// Render joins outputs into the text written to standard output.
func Render(outputs []Output) string {
	var b strings.Builder
	for _, out := range outputs {
		b.WriteString(out.Text)
		if out.NewLine {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func (vm *VM) emitOutput(out Output) {
	if vm.outputHook != nil {
		vm.outputHook(out)
		return
	}
	vm.outputs = append(vm.outputs, out)
}

// runProgram executes statements in order and stops at the first one that
// raises a break or continue signal.
func (vm *VM) runProgram(p *ast.Program) (signal, error) {
	if p == nil {
		return signal{}, nil
	}
	for _, stmt := range p.Statements {
		sig, err := vm.runStatement(stmt)
		if err != nil {
			return signal{}, err
		}
		if sig.kind != signalNormal {
			return sig, nil
		}
	}
	return signal{}, nil
}

func (vm *VM) runStatement(stmt ast.Statement) (signal, error) {
	if vm.traceHook != nil {
		vm.traceHook(stmt)
	}
	line := stmt.SourceLine()
	switch s := stmt.(type) {
	case ast.ReadStmt:
		v, err := vm.readInput(line)
		if err != nil {
			return signal{}, err
		}
		return signal{}, vm.assign(s.Target, v, line)
	case ast.AssignStmt:
		v, err := vm.evalExpr(s.Expr, line)
		if err != nil {
			return signal{}, err
		}
		return signal{}, vm.assign(s.Target, v, line)
	case ast.WriteStmt:
		return signal{}, vm.execWrite(s)
	case ast.WhileStmt:
		return vm.execWhile(s)
	case ast.IfStmt:
		return vm.execIf(s)
	case ast.RandomStmt:
		return signal{}, vm.assign(s.Target, int64(vm.rng.Int31()), line)
	case ast.ArgumentStmt:
		return signal{}, vm.execArgument(s)
	case ast.ArgumentSizeStmt:
		return signal{}, vm.assign(s.Target, int64(len(vm.args)), line)
	case ast.BreakStmt:
		if s.Depth > vm.loopDepth {
			return signal{}, diag.RuntimeError(diag.BadBreak, line, "invalid break statement")
		}
		return signal{kind: signalBreak, depth: s.Depth}, nil
	case ast.ContinueStmt:
		if s.Depth > vm.loopDepth {
			return signal{}, diag.RuntimeError(diag.BadContinue, line, "invalid continue statement")
		}
		return signal{kind: signalContinue, depth: s.Depth}, nil
	case ast.NewStmt:
		return signal{}, vm.execNew(s)
	case ast.FreeStmt:
		if _, ok := vm.array(s.Name); !ok {
			return signal{}, diag.RuntimeError(diag.BadArray, line, "name does not correspond to an array")
		}
		delete(vm.symbols, s.Name)
		return signal{}, nil
	case ast.SizeStmt:
		arr, ok := vm.array(s.Name)
		if !ok {
			return signal{}, diag.RuntimeError(diag.BadArray, line, "name does not correspond to an array")
		}
		return signal{}, vm.assign(s.Target, arr.Len(), line)
	default:
		return signal{}, diag.RuntimeError(diag.BadToken, line, "unsupported statement %T", stmt)
	}
}

func (vm *VM) execWrite(s ast.WriteStmt) error {
	text := ""
	if s.Expr != nil {
		v, err := vm.evalExpr(s.Expr, s.Line)
		if err != nil {
			return err
		}
		text = strconv.FormatInt(v, 10)
	}
	if s.NewLine {
		vm.emitOutput(Output{Text: text, NewLine: true})
		return nil
	}
	vm.emitOutput(Output{Text: text + " "})
	return nil
}

// execArgument reads a forwarded argument. Index 1 names the first argument
// after the script path.
func (vm *VM) execArgument(s ast.ArgumentStmt) error {
	idx, err := vm.evalExpr(s.Index, s.Line)
	if err != nil {
		return err
	}
	if idx < 1 || idx > int64(len(vm.args))-2 {
		return diag.RuntimeError(diag.BadIndex, s.Line, "invalid argument index")
	}
	return vm.assign(s.Target, atoi(vm.args[idx+1]), s.Line)
}

func (vm *VM) execNew(s ast.NewStmt) error {
	if _, ok := vm.symbols[s.Name].(*Scalar); ok {
		return diag.RuntimeError(diag.BadID, s.Line, "array name overlaps with variable name")
	}
	n, err := vm.evalExpr(s.Size, s.Line)
	if err != nil {
		return err
	}
	if n <= 0 {
		return diag.RuntimeError(diag.BadSize, s.Line, "array size must be greater than 0")
	}
	if n > vm.maxArrayLen {
		return diag.RuntimeError(diag.BadSize, s.Line, "array size exceeds the limit of %d", vm.maxArrayLen)
	}
	vm.symbols[s.Name] = newArray(n)
	return nil
}

// atoi converts like C's atoi: optional leading whitespace and sign, then
// as many digits as present. Anything else yields 0.
func atoi(s string) int64 {
	s = strings.TrimLeft(s, " \t\n\v\f\r")
	neg := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}
	var n int64
	for i := 0; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
		n = n*10 + int64(s[i]-'0')
	}
	if neg {
		return -n
	}
	return n
}
