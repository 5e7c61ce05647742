package mobile

import (
	"encoding/json"
	"testing"
)

func decode(t *testing.T, raw string) runResult {
	t.Helper()
	var r runResult
	if err := json.Unmarshal([]byte(raw), &r); err != nil {
		t.Fatalf("decode %q: %v", raw, err)
	}
	return r
}

func TestRun(t *testing.T) {
	r := decode(t, Run("argument 1 a\nread b\nc = a * b\nwriteln c\n", `["6"]`, `["7"]`))
	if r.Error != "" || r.Code != 0 {
		t.Fatalf("unexpected failure: %+v", r)
	}
	if r.Stdout != "42\n" {
		t.Fatalf("stdout: %q", r.Stdout)
	}
	if len(r.Outputs) != 1 || r.Outputs[0].Text != "42" || !r.Outputs[0].NewLine {
		t.Fatalf("outputs: %+v", r.Outputs)
	}
}

func TestRunErrors(t *testing.T) {
	r := decode(t, Run("writeln 1\nx = 1 % 0\n", "", ""))
	if r.Code != 26 {
		t.Fatalf("code %d", r.Code)
	}
	if r.Stdout != "1\n" || r.Error != "Runtime Error: division with 0 at line 2" {
		t.Fatalf("result: %+v", r)
	}

	r = decode(t, Run("if x\n\twriteln x\n", "", ""))
	if r.Code != 22 {
		t.Fatalf("syntax code %d: %+v", r.Code, r)
	}

	r = decode(t, Run("writeln 1\n", "{", ""))
	if r.Code != 15 {
		t.Fatalf("bad args json code %d", r.Code)
	}
}
