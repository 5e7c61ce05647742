package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/gosuda/ipl/ast"
	"github.com/gosuda/ipl/diag"
)

// cliError is a failure outside the pipeline that still has a fixed exit
// status, such as a bad option or an unreadable script.
type cliError struct {
	code diag.Code
	err  error
}

func (e *cliError) Error() string { return e.err.Error() }
func (e *cliError) Unwrap() error { return e.err }

func invocationError(code diag.Code, err error) error {
	return &cliError{code: code, err: err}
}

func exitCode(err error) int {
	var ce *cliError
	if errors.As(err, &ce) {
		return int(ce.code)
	}
	return diag.ExitCode(err)
}

// warn prints err on one line. Pipeline errors are printed verbatim; anything
// else gets the program name prefix.
func warn(w io.Writer, err error) {
	var de *diag.Error
	if errors.As(err, &de) {
		fmt.Fprintln(w, de.Error())
		return
	}
	var ce *cliError
	if errors.As(err, &ce) && ce.code == diag.OpenFile {
		fmt.Fprintf(w, "Error: %v\n", err)
		return
	}
	fmt.Fprintf(w, "ipli: %v\n", err)
}

// tracer writes each statement as it is about to run.
func tracer(w io.Writer) func(ast.Statement) {
	return func(s ast.Statement) {
		fmt.Fprintf(w, "+ %d: %s\n", s.SourceLine(), ast.StatementSource(s))
	}
}
