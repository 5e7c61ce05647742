package iplruntime

import "github.com/gosuda/ipl/ast"

type signalKind int

const (
	signalNormal signalKind = iota
	signalBreak
	signalContinue
)

// signal is the loop control state carried up through nested blocks. depth
// counts the while frames still to be crossed.
type signal struct {
	kind  signalKind
	depth int
}

func (vm *VM) execWhile(s ast.WhileStmt) (signal, error) {
	vm.loopDepth++
	defer func() { vm.loopDepth-- }()
	for {
		cond, err := vm.evalExpr(s.Cond, s.Line)
		if err != nil {
			return signal{}, err
		}
		if cond == 0 {
			return signal{}, nil
		}
		sig, err := vm.runProgram(s.Body)
		if err != nil {
			return signal{}, err
		}
		if sig.kind == signalNormal {
			continue
		}
		sig.depth--
		if sig.depth > 0 {
			return sig, nil
		}
		if sig.kind == signalBreak {
			return signal{}, nil
		}
	}
}

// execIf passes any signal from the taken branch through unchanged.
func (vm *VM) execIf(s ast.IfStmt) (signal, error) {
	cond, err := vm.evalExpr(s.Cond, s.Line)
	if err != nil {
		return signal{}, err
	}
	if cond != 0 {
		return vm.runProgram(s.Then)
	}
	return vm.runProgram(s.Else)
}
