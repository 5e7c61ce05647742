// Command iplast prints the token stream or the parsed tree of an IPL script.
package main

import (
	"fmt"
	"io"
	"os"

	"git.sr.ht/~sircmpwn/getopt"

	"github.com/gosuda/ipl/ast"
	"github.com/gosuda/ipl/diag"
	"github.com/gosuda/ipl/parser"
	"github.com/gosuda/ipl/scanner"
)

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

func run(argv []string, stdout, stderr io.Writer) int {
	opts, optind, err := getopt.Getopts(argv, "kn")
	if err != nil || optind >= len(argv) {
		fmt.Fprintln(stderr, "usage: iplast [-k] [-n] <script>")
		return int(diag.BadArgs)
	}
	var tokens, lines bool
	for _, opt := range opts {
		switch opt.Option {
		case 'k':
			tokens = true
		case 'n':
			lines = true
		}
	}

	f, err := os.Open(argv[optind])
	if err != nil {
		fmt.Fprintln(stderr, "Error: unable to open input file")
		return int(diag.OpenFile)
	}
	defer f.Close()

	if tokens {
		toks, err := scanner.Scan(f)
		for _, tok := range toks {
			fmt.Fprintln(stdout, tok)
		}
		if err != nil {
			fmt.Fprintln(stderr, err)
			return diag.ExitCode(err)
		}
		return 0
	}

	prog, err := parser.ParseSource(f)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return diag.ExitCode(err)
	}
	fmt.Fprint(stdout, ast.Format(prog, lines))
	return 0
}
