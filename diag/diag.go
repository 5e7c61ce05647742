// Package diag defines the error categories and process exit codes shared by
// the scanner, parser and runtime.
package diag

import (
	"errors"
	"fmt"
)

type Category int

const (
	Lexical Category = iota + 1
	Syntax
	Runtime
)

func (c Category) String() string {
	switch c {
	case Lexical:
		return "Lexical"
	case Syntax:
		return "Syntax"
	case Runtime:
		return "Runtime"
	default:
		return "Unknown"
	}
}

// Code is the process exit status reported for an error. The numeric values
// are stable; callers match on them instead of message text.
type Code int

const (
	BadArgs Code = iota + 15
	OpenFile
	BadSymbol
	BadIndent
	BadToken
	BadOp
	BadExpr
	BadCond
	NoBody
	BadIndex
	BadTerm
	DivZero
	BadBreak
	BadContinue
	BadLoops
	BadVar
	BadArray
	IndexOutOfBounds
	BadSize
	BadID
	BadInput
)

var codeNames = map[Code]string{
	BadArgs:          "EBAD_ARGS",
	OpenFile:         "EOPEN_FILE",
	BadSymbol:        "EBAD_SYMBOL",
	BadIndent:        "EBAD_INDENT",
	BadToken:         "EBAD_TOK",
	BadOp:            "EBAD_OP",
	BadExpr:          "EBAD_EXPR",
	BadCond:          "EBAD_COND",
	NoBody:           "ENO_BODY",
	BadIndex:         "EBAD_IDX",
	BadTerm:          "EBAD_TERM",
	DivZero:          "EDIV_ZERO",
	BadBreak:         "EBAD_BREAK",
	BadContinue:      "EBAD_CONT",
	BadLoops:         "EBAD_LOOPS",
	BadVar:           "EBAD_VAR",
	BadArray:         "EBAD_ARRAY",
	IndexOutOfBounds: "EIDX_OOB",
	BadSize:          "EBAD_SIZE",
	BadID:            "EBAD_ID",
	BadInput:         "EBAD_INPUT",
}

func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Code(%d)", int(c))
}

// Error is a fatal pipeline error. Its message is the exact line printed to
// standard error.
type Error struct {
	Category Category
	Code     Code
	Msg      string
	Line     int
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s Error: %s at line %d", e.Category, e.Msg, e.Line)
}

func newError(cat Category, code Code, line int, format string, args ...any) *Error {
	return &Error{Category: cat, Code: code, Msg: fmt.Sprintf(format, args...), Line: line}
}

func LexicalError(code Code, line int, format string, args ...any) *Error {
	return newError(Lexical, code, line, format, args...)
}

func SyntaxError(code Code, line int, format string, args ...any) *Error {
	return newError(Syntax, code, line, format, args...)
}

func RuntimeError(code Code, line int, format string, args ...any) *Error {
	return newError(Runtime, code, line, format, args...)
}

// ExitCode maps err to a process exit status: 0 for nil, the error's Code for
// a pipeline error and 1 for anything else.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var de *Error
	if errors.As(err, &de) {
		return int(de.Code)
	}
	return 1
}

// Is reports whether err carries the given code.
func Is(err error, code Code) bool {
	var de *Error
	return errors.As(err, &de) && de.Code == code
}
