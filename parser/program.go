package parser

import (
	"io"
	"strings"

	"github.com/gosuda/ipl/ast"
	"github.com/gosuda/ipl/scanner"
)

// ParseSource scans r and parses the resulting tokens.
func ParseSource(r io.Reader, opts ...scanner.Option) (*ast.Program, error) {
	toks, err := scanner.New(r, opts...).Scan()
	if err != nil {
		return nil, err
	}
	return Parse(toks)
}

// ParseString is ParseSource over an in-memory script.
func ParseString(src string, opts ...scanner.Option) (*ast.Program, error) {
	return ParseSource(strings.NewReader(src), opts...)
}
