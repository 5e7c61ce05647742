package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gosuda/ipl/diag"
	iplruntime "github.com/gosuda/ipl/runtime"
)

func writeScript(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prog.ipl")
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatalf("write script: %v", err)
	}
	return path
}

func runCLI(t *testing.T, stdin string, argv ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(append([]string{"ipli"}, argv...), strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestParseArgs(t *testing.T) {
	cfg, err := parseArgs([]string{"ipli", "-x", "-s", "9", "-m", "12", "prog.ipl", "a", "b"})
	if err != nil {
		t.Fatalf("parseArgs: %v", err)
	}
	if !cfg.Trace || cfg.TUI {
		t.Fatalf("flags: trace=%v tui=%v", cfg.Trace, cfg.TUI)
	}
	if cfg.Seed == nil || *cfg.Seed != 9 {
		t.Fatalf("seed: %v", cfg.Seed)
	}
	if cfg.MaxLexeme != 12 {
		t.Fatalf("max lexeme: %d", cfg.MaxLexeme)
	}
	if cfg.script != "prog.ipl" {
		t.Fatalf("script: %q", cfg.script)
	}
	want := []string{"ipli", "prog.ipl", "a", "b"}
	if strings.Join(cfg.args, ",") != strings.Join(want, ",") {
		t.Fatalf("args: %v, want %v", cfg.args, want)
	}
}

func TestParseArgsDumpFormat(t *testing.T) {
	cfg, err := parseArgs([]string{"ipli", "-d", "out/state.yml", "prog.ipl"})
	if err != nil {
		t.Fatalf("parseArgs: %v", err)
	}
	if cfg.DumpFormat != "yaml" {
		t.Fatalf("dump format: %q", cfg.DumpFormat)
	}

	cfg, err = parseArgs([]string{"ipli", "-d", "out/state.yml", "-f", "json", "prog.ipl"})
	if err != nil {
		t.Fatalf("parseArgs: %v", err)
	}
	if cfg.DumpFormat != "json" {
		t.Fatalf("explicit dump format: %q", cfg.DumpFormat)
	}
}

func TestParseArgsConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ipli.yaml")
	if err := os.WriteFile(path, []byte("seed: 7\ntrace: true\nmax_lexeme: 40\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := parseArgs([]string{"ipli", "-c", path, "-s", "3", "prog.ipl"})
	if err != nil {
		t.Fatalf("parseArgs: %v", err)
	}
	if cfg.Seed == nil || *cfg.Seed != 3 {
		t.Fatalf("-s must override the config seed, got %v", cfg.Seed)
	}
	if !cfg.Trace || cfg.MaxLexeme != 40 {
		t.Fatalf("config values lost: %+v", cfg.Config)
	}
}

func TestParseArgsErrors(t *testing.T) {
	cases := []struct {
		name string
		argv []string
		code diag.Code
	}{
		{"no script", []string{"ipli"}, diag.BadArgs},
		{"unknown option", []string{"ipli", "-q", "prog.ipl"}, diag.BadArgs},
		{"bad format", []string{"ipli", "-f", "xml", "prog.ipl"}, diag.BadArgs},
		{"bad seed", []string{"ipli", "-s", "x", "prog.ipl"}, diag.BadArgs},
		{"bad lexeme bound", []string{"ipli", "-m", "0", "prog.ipl"}, diag.BadArgs},
		{"missing config", []string{"ipli", "-c", filepath.Join(t.TempDir(), "none.yaml"), "prog.ipl"}, diag.OpenFile},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := parseArgs(tc.argv)
			if err == nil {
				t.Fatalf("expected error")
			}
			if got := exitCode(err); got != int(tc.code) {
				t.Fatalf("exit code %d, want %d (%v)", got, tc.code, err)
			}
		})
	}
}

func TestRunUsage(t *testing.T) {
	code, _, stderr := runCLI(t, "")
	if code != int(diag.BadArgs) {
		t.Fatalf("exit code %d", code)
	}
	if !strings.Contains(stderr, usage) {
		t.Fatalf("usage not printed: %q", stderr)
	}
}

func TestRunMissingScript(t *testing.T) {
	code, _, stderr := runCLI(t, "", filepath.Join(t.TempDir(), "missing.ipl"))
	if code != int(diag.OpenFile) {
		t.Fatalf("exit code %d", code)
	}
	if stderr != "Error: unable to open input file\n" {
		t.Fatalf("stderr: %q", stderr)
	}
}

func TestRunPlain(t *testing.T) {
	script := writeScript(t, "read x\nread y\nz = x + y\nwriteln z\n")
	code, stdout, stderr := runCLI(t, "40\n2\n", script)
	if code != 0 {
		t.Fatalf("exit code %d, stderr %q", code, stderr)
	}
	if stdout != "42\n" {
		t.Fatalf("stdout: %q", stdout)
	}
}

func TestRunPlainArguments(t *testing.T) {
	script := writeScript(t, "argument size n\nwriteln n\nargument 1 v\nwriteln v\n")
	code, stdout, stderr := runCLI(t, "", script, "5")
	if code != 0 {
		t.Fatalf("exit code %d, stderr %q", code, stderr)
	}
	if stdout != "3\n5\n" {
		t.Fatalf("stdout: %q", stdout)
	}
}

func TestRunPlainRuntimeError(t *testing.T) {
	script := writeScript(t, "writeln 1\nx = 1 / 0\n")
	code, stdout, stderr := runCLI(t, "", script)
	if code != int(diag.DivZero) {
		t.Fatalf("exit code %d", code)
	}
	if stdout != "1\n" {
		t.Fatalf("stdout before the error must be kept: %q", stdout)
	}
	if stderr != "Runtime Error: division with 0 at line 2\n" {
		t.Fatalf("stderr: %q", stderr)
	}
}

func TestRunPlainMissingInput(t *testing.T) {
	script := writeScript(t, "read x\n")
	code, _, _ := runCLI(t, "", script)
	if code != int(diag.BadInput) {
		t.Fatalf("exit code %d", code)
	}
}

func TestRunTrace(t *testing.T) {
	script := writeScript(t, "x = 1\nwriteln x\n")
	code, stdout, stderr := runCLI(t, "", "-x", script)
	if code != 0 {
		t.Fatalf("exit code %d, stderr %q", code, stderr)
	}
	if stdout != "1\n" {
		t.Fatalf("stdout: %q", stdout)
	}
	if stderr != "+ 1: x = 1\n+ 2: writeln x\n" {
		t.Fatalf("trace: %q", stderr)
	}
}

func TestRunDump(t *testing.T) {
	script := writeScript(t, "x = 4\nnew a[2]\na[1] = x\n")
	dump := filepath.Join(t.TempDir(), "state", "dump.json")
	code, _, stderr := runCLI(t, "", "-d", dump, script)
	if code != 0 {
		t.Fatalf("exit code %d, stderr %q", code, stderr)
	}
	snap, err := iplruntime.ReadSnapshot(dump)
	if err != nil {
		t.Fatalf("read dump: %v", err)
	}
	if snap.Scalars["x"] != 4 {
		t.Fatalf("scalars: %v", snap.Scalars)
	}
	if got := snap.Arrays["a"]; len(got) != 2 || got[1] != 4 {
		t.Fatalf("arrays: %v", snap.Arrays)
	}
}
