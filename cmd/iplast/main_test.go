package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gosuda/ipl/diag"
)

func script(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prog.ipl")
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatalf("write script: %v", err)
	}
	return path
}

func TestPrintTree(t *testing.T) {
	path := script(t, "x = 0\nwhile x < 3\n\tx = x + 1\nwriteln x\n")
	var stdout, stderr bytes.Buffer
	if code := run([]string{"iplast", "-n", path}, &stdout, &stderr); code != 0 {
		t.Fatalf("exit code %d: %s", code, stderr.String())
	}
	want := "1\t| x = 0\n2\t| while x < 3\n3\t| \tx = x + 1\n4\t| writeln x\n"
	if stdout.String() != want {
		t.Fatalf("tree:\n%q\nwant\n%q", stdout.String(), want)
	}
}

func TestPrintTokens(t *testing.T) {
	path := script(t, "x = 1\n")
	var stdout, stderr bytes.Buffer
	if code := run([]string{"iplast", "-k", path}, &stdout, &stderr); code != 0 {
		t.Fatalf("exit code %d: %s", code, stderr.String())
	}
	out := stdout.String()
	for _, want := range []string{"IDENTIFIER(x)@1", "EQUAL@1", "NUMBER(1)@1", "END@"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %s in\n%s", want, out)
		}
	}
}

func TestSyntaxErrorExitCode(t *testing.T) {
	path := script(t, "while x\n\twriteln x\n")
	var stdout, stderr bytes.Buffer
	if code := run([]string{"iplast", path}, &stdout, &stderr); code != int(diag.BadCond) {
		t.Fatalf("exit code %d: %s", code, stderr.String())
	}
}

func TestUsage(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run([]string{"iplast"}, &stdout, &stderr); code != int(diag.BadArgs) {
		t.Fatalf("exit code %d", code)
	}
}
