// Package ipl wires the scanner, parser and runtime into one call.
package ipl

import (
	"io"

	"github.com/gosuda/ipl/ast"
	"github.com/gosuda/ipl/parser"
	iplruntime "github.com/gosuda/ipl/runtime"
	"github.com/gosuda/ipl/scanner"
)

// Compile parses the script read from r and builds a VM for it. args is the
// full invocation vector (program name, script path, forwarded arguments).
func Compile(r io.Reader, args []string) (*iplruntime.VM, error) {
	return CompileWith(r, args, Config{})
}

func CompileWith(r io.Reader, args []string, cfg Config) (*iplruntime.VM, error) {
	program, err := Parse(r, cfg)
	if err != nil {
		return nil, err
	}
	vm := iplruntime.New(program, args)
	if cfg.Seed != nil {
		vm.SetSeed(*cfg.Seed)
	}
	if cfg.MaxArrayLen > 0 {
		vm.SetMaxArrayLen(cfg.MaxArrayLen)
	}
	return vm, nil
}

// Parse only returns the AST program for tooling use.
func Parse(r io.Reader, cfg Config) (*ast.Program, error) {
	return parser.ParseSource(r, scanner.WithMaxLexeme(cfg.MaxLexeme))
}
