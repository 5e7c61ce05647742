package mobile

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gosuda/ipl"
	"github.com/gosuda/ipl/diag"
	iplruntime "github.com/gosuda/ipl/runtime"
)

// scriptName stands in for the script path in the argument vector.
const scriptName = "<source>"

type runResult struct {
	Outputs []iplruntime.Output `json:"outputs"`
	Stdout  string              `json:"stdout"`
	Error   string              `json:"error,omitempty"`
	Code    int                 `json:"code"`
}

// Run executes IPL source and returns a JSON result.
// argsJSON format: ["5","7"] (forwarded program arguments)
// inputsJSON format: ["1","42", ...] (values consumed by read)
func Run(source, argsJSON, inputsJSON string) string {
	var args, queued []string
	if err := decodeList(argsJSON, &args); err != nil {
		return encode(runResult{Error: fmt.Sprintf("invalid args json: %v", err), Code: int(diag.BadArgs)})
	}
	if err := decodeList(inputsJSON, &queued); err != nil {
		return encode(runResult{Error: fmt.Sprintf("invalid inputs json: %v", err), Code: int(diag.BadArgs)})
	}

	argv := append([]string{"ipli", scriptName}, args...)
	vm, err := ipl.Compile(strings.NewReader(source), argv)
	if err != nil {
		return encode(runResult{Error: err.Error(), Code: diag.ExitCode(err)})
	}
	if len(queued) > 0 {
		vm.EnqueueInput(queued...)
	}

	out, err := vm.Run()
	result := runResult{Outputs: out, Stdout: iplruntime.Render(out)}
	if err != nil {
		result.Error = err.Error()
		result.Code = diag.ExitCode(err)
	}
	return encode(result)
}

func decodeList(raw string, dst *[]string) error {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	return json.Unmarshal([]byte(raw), dst)
}

func encode(r runResult) string {
	b, _ := json.Marshal(r)
	return string(b)
}
