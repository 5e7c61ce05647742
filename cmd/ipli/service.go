package main

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/gosuda/ipl/ast"
	iplruntime "github.com/gosuda/ipl/runtime"
)

// runVM executes the script on its own goroutine and reports everything to
// the TUI through events. A read blocks until the TUI answers on the prompt's
// response channel.
func runVM(cfg appConfig, events chan<- tea.Msg) {
	defer close(events)
	vm, err := compileScript(cfg)
	if err != nil {
		events <- vmDoneMsg{err: err}
		return
	}

	vm.SetOutputHook(func(out iplruntime.Output) {
		events <- vmOutputMsg{out: out}
	})
	vm.SetInputProvider(func(req iplruntime.InputRequest) (string, bool, error) {
		resp := make(chan vmInputResp, 1)
		events <- vmPromptMsg{req: req, resp: resp}
		r := <-resp
		return r.value, r.ok, nil
	})
	if cfg.Trace {
		vm.SetTraceHook(func(s ast.Statement) {
			events <- vmTraceMsg{line: s.SourceLine(), text: ast.StatementSource(s)}
		})
	}

	_, err = vm.Run()
	if dumpErr := writeDump(cfg, vm); dumpErr != nil && err == nil {
		err = dumpErr
	}
	events <- vmDoneMsg{err: err}
}
