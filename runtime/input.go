package iplruntime

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gosuda/ipl/diag"
)

// InputRequest describes a pending read. Line is the source line of the
// read statement.
type InputRequest struct {
	Command string
	Line    int
}

// InputProvider supplies text for a read. ok is false when no more input is
// available.
type InputProvider func(req InputRequest) (value string, ok bool, err error)

type inputState struct {
	queue   []string
	current *InputRequest
}

func (vm *VM) SetInputProvider(fn InputProvider) {
	vm.inputProvider = fn
}

// EnqueueInput queues values consumed by read before the provider is asked.
func (vm *VM) EnqueueInput(values ...string) {
	vm.input.queue = append(vm.input.queue, values...)
}

// PendingInput reports the read currently waiting for a value, if any.
func (vm *VM) PendingInput() (InputRequest, bool) {
	if vm.input.current == nil {
		return InputRequest{}, false
	}
	return *vm.input.current, true
}

func (vm *VM) consumeQueuedInput() (string, bool) {
	if len(vm.input.queue) == 0 {
		return "", false
	}
	v := vm.input.queue[0]
	vm.input.queue = vm.input.queue[1:]
	return v, true
}

func (vm *VM) resolveInput(req InputRequest) (string, bool, error) {
	vm.input.current = &req
	defer func() { vm.input.current = nil }()
	if raw, ok := vm.consumeQueuedInput(); ok {
		return raw, true, nil
	}
	if vm.inputProvider == nil {
		return "", false, nil
	}
	raw, ok, err := vm.inputProvider(req)
	if err != nil {
		return "", false, fmt.Errorf("read at line %d: %w", req.Line, err)
	}
	return raw, ok, nil
}

func (vm *VM) readInput(line int) (int64, error) {
	raw, ok, err := vm.resolveInput(InputRequest{Command: "read", Line: line})
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, diag.RuntimeError(diag.BadInput, line, "missing input for read")
	}
	n, ok := parseIntInput(raw)
	if !ok {
		return 0, diag.RuntimeError(diag.BadInput, line, "invalid integer input %q", strings.TrimSpace(raw))
	}
	return n, nil
}

func parseIntInput(raw string) (int64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
