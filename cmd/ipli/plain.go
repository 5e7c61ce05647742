package main

import (
	"bufio"
	"fmt"
	"io"

	"github.com/gosuda/ipl/ast"
	iplruntime "github.com/gosuda/ipl/runtime"
)

// runPlain runs the script against standard streams. Output is buffered and
// flushed before every read and at exit.
func runPlain(cfg appConfig, stdin io.Reader, stdout, stderr io.Writer) error {
	vm, err := compileScript(cfg)
	if err != nil {
		return err
	}

	out := bufio.NewWriter(stdout)
	defer out.Flush()

	words := bufio.NewScanner(stdin)
	words.Split(bufio.ScanWords)

	vm.SetOutputHook(func(o iplruntime.Output) {
		if o.NewLine {
			fmt.Fprintln(out, o.Text)
		} else {
			fmt.Fprint(out, o.Text)
		}
	})

	vm.SetInputProvider(func(req iplruntime.InputRequest) (string, bool, error) {
		if err := out.Flush(); err != nil {
			return "", false, fmt.Errorf("flush output: %w", err)
		}
		if !words.Scan() {
			if err := words.Err(); err != nil {
				return "", false, err
			}
			return "", false, nil
		}
		return words.Text(), true, nil
	})

	if cfg.Trace {
		trace := tracer(stderr)
		vm.SetTraceHook(func(s ast.Statement) {
			out.Flush()
			trace(s)
		})
	}

	_, runErr := vm.Run()
	if err := out.Flush(); err != nil && runErr == nil {
		runErr = fmt.Errorf("flush output: %w", err)
	}
	if err := writeDump(cfg, vm); err != nil && runErr == nil {
		return err
	}
	return runErr
}
