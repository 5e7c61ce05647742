package iplruntime

import (
	"errors"

	"github.com/gosuda/ipl/ast"
	"github.com/gosuda/ipl/diag"
)

// evalExpr evaluates e; line is reported by any error it raises.
func (vm *VM) evalExpr(e ast.Expr, line int) (int64, error) {
	switch ex := e.(type) {
	case ast.IntLit:
		return ex.Value, nil
	case ast.VarRef:
		s, ok := vm.scalar(ex.Name)
		if !ok {
			return 0, diag.RuntimeError(diag.BadVar, line, "expected a variable name")
		}
		return s.Value, nil
	case ast.ArrayRef:
		arr, ok := vm.array(ex.Name)
		if !ok {
			return 0, diag.RuntimeError(diag.BadArray, line, "name does not correspond to an array")
		}
		idx, err := vm.evalExpr(ex.Index, line)
		if err != nil {
			return 0, err
		}
		v, err := arr.Get(idx)
		if err != nil {
			return 0, boundsError(err, line)
		}
		return v, nil
	case ast.BinaryExpr:
		left, err := vm.evalExpr(ex.Left, line)
		if err != nil {
			return 0, err
		}
		right, err := vm.evalExpr(ex.Right, line)
		if err != nil {
			return 0, err
		}
		return evalBinary(ex.Op, left, right, line)
	default:
		return 0, diag.RuntimeError(diag.BadExpr, line, "unsupported expression %T", e)
	}
}

func evalBinary(op ast.Op, left, right int64, line int) (int64, error) {
	switch op {
	case ast.OpAdd:
		return left + right, nil
	case ast.OpSub:
		return left - right, nil
	case ast.OpMul:
		return left * right, nil
	case ast.OpDiv:
		if right == 0 {
			return 0, diag.RuntimeError(diag.DivZero, line, "division with 0")
		}
		return left / right, nil
	case ast.OpMod:
		if right == 0 {
			return 0, diag.RuntimeError(diag.DivZero, line, "division with 0")
		}
		return left % right, nil
	case ast.OpEq:
		return boolInt(left == right), nil
	case ast.OpNe:
		return boolInt(left != right), nil
	case ast.OpLt:
		return boolInt(left < right), nil
	case ast.OpLe:
		return boolInt(left <= right), nil
	case ast.OpGt:
		return boolInt(left > right), nil
	case ast.OpGe:
		return boolInt(left >= right), nil
	default:
		return 0, diag.RuntimeError(diag.BadOp, line, "unsupported operator %s", op)
	}
}

// assign stores v into target. For an array element the binding is checked
// before the index is evaluated.
func (vm *VM) assign(target ast.LValue, v int64, line int) error {
	switch t := target.(type) {
	case ast.VarRef:
		s, ok := vm.scalar(t.Name)
		if !ok {
			return diag.RuntimeError(diag.BadVar, line, "expected a variable name")
		}
		s.Value = v
		return nil
	case ast.ArrayRef:
		arr, ok := vm.array(t.Name)
		if !ok {
			return diag.RuntimeError(diag.BadArray, line, "name does not correspond to an array")
		}
		idx, err := vm.evalExpr(t.Index, line)
		if err != nil {
			return err
		}
		if err := arr.Set(idx, v); err != nil {
			return boundsError(err, line)
		}
		return nil
	default:
		return diag.RuntimeError(diag.BadExpr, line, "expected lvalue")
	}
}

func boundsError(err error, line int) error {
	if errors.Is(err, errOutOfBounds) {
		return diag.RuntimeError(diag.IndexOutOfBounds, line, "array index out of bounds")
	}
	return err
}

func boolInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
