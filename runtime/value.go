package iplruntime

// entry is a symbol table binding: either *Scalar or *Array.
type entry interface {
	isEntry()
}

type Scalar struct {
	Value int64
}

func (*Scalar) isEntry() {}
func (*Array) isEntry()  {}

// scalar returns the Scalar bound to name, installing a zero one when the
// name is unbound. ok is false when name is an array.
func (vm *VM) scalar(name string) (*Scalar, bool) {
	switch e := vm.symbols[name].(type) {
	case nil:
		s := &Scalar{}
		vm.symbols[name] = s
		return s, true
	case *Scalar:
		return e, true
	default:
		return nil, false
	}
}

func (vm *VM) array(name string) (*Array, bool) {
	arr, ok := vm.symbols[name].(*Array)
	return arr, ok
}
