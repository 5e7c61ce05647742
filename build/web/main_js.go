//go:build js && wasm

package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"syscall/js"

	"github.com/gosuda/ipl"
	"github.com/gosuda/ipl/diag"
	iplruntime "github.com/gosuda/ipl/runtime"
)

type runResult struct {
	Outputs []iplruntime.Output `json:"outputs"`
	Stdout  string              `json:"stdout"`
	Error   string              `json:"error,omitempty"`
	Code    int                 `json:"code"`
}

type inputRequestPayload struct {
	Command string `json:"command"`
	Line    int    `json:"line"`
}

// inputPrompt asks the page for the next read value once the queue is empty.
// An undefined or null answer means end of input.
func inputPrompt(req iplruntime.InputRequest) (string, bool, error) {
	fn := js.Global().Get("iplInputNext")
	if fn.Type() != js.TypeFunction {
		return "", false, nil
	}
	b, _ := json.Marshal(inputRequestPayload{Command: req.Command, Line: req.Line})
	v := fn.Invoke(string(b))
	if v.IsUndefined() || v.IsNull() {
		return "", false, nil
	}
	return strings.TrimSpace(v.String()), true, nil
}

func encode(r runResult) string {
	b, _ := json.Marshal(r)
	return string(b)
}

func list(args []js.Value, i int, dst *[]string) error {
	if len(args) <= i || args[i].IsUndefined() || args[i].IsNull() {
		return nil
	}
	raw := strings.TrimSpace(args[i].String())
	if raw == "" {
		return nil
	}
	return json.Unmarshal([]byte(raw), dst)
}

func runScript(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return encode(runResult{Error: "iplRun requires the script source", Code: int(diag.BadArgs)})
	}
	var forwarded, queued []string
	if err := list(args, 1, &forwarded); err != nil {
		return encode(runResult{Error: fmt.Sprintf("invalid args json: %v", err), Code: int(diag.BadArgs)})
	}
	if err := list(args, 2, &queued); err != nil {
		return encode(runResult{Error: fmt.Sprintf("invalid inputs json: %v", err), Code: int(diag.BadArgs)})
	}

	argv := append([]string{"ipli", "<source>"}, forwarded...)
	vm, err := ipl.Compile(strings.NewReader(args[0].String()), argv)
	if err != nil {
		return encode(runResult{Error: err.Error(), Code: diag.ExitCode(err)})
	}
	if len(queued) > 0 {
		vm.EnqueueInput(queued...)
	}
	vm.SetInputProvider(inputPrompt)

	out, err := vm.Run()
	result := runResult{Outputs: out, Stdout: iplruntime.Render(out)}
	if err != nil {
		result.Error = err.Error()
		result.Code = diag.ExitCode(err)
	}
	return encode(result)
}

func main() {
	js.Global().Set("iplRun", js.FuncOf(runScript))
	select {}
}
