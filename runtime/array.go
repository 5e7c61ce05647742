package iplruntime

import (
	"errors"
	"fmt"
)

var errOutOfBounds = errors.New("array index out of bounds")

// Array is a fixed-length, zero-initialised integer array.
type Array struct {
	elems []int64
}

func newArray(n int64) *Array {
	return &Array{elems: make([]int64, n)}
}

func (a *Array) Len() int64 {
	return int64(len(a.elems))
}

func (a *Array) Get(i int64) (int64, error) {
	if i < 0 || i >= a.Len() {
		return 0, fmt.Errorf("get %d of %d: %w", i, a.Len(), errOutOfBounds)
	}
	return a.elems[i], nil
}

func (a *Array) Set(i, v int64) error {
	if i < 0 || i >= a.Len() {
		return fmt.Errorf("set %d of %d: %w", i, a.Len(), errOutOfBounds)
	}
	a.elems[i] = v
	return nil
}

// Values returns a copy of the elements.
func (a *Array) Values() []int64 {
	return append([]int64(nil), a.elems...)
}
