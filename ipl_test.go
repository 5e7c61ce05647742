package ipl_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/gosuda/ipl"
	"github.com/gosuda/ipl/ast"
	"github.com/gosuda/ipl/diag"
	iplruntime "github.com/gosuda/ipl/runtime"
)

type scenario struct {
	Name   string   `yaml:"name"`
	Source string   `yaml:"source"`
	Args   []string `yaml:"args"`
	Input  []string `yaml:"input"`
	Stdout string   `yaml:"stdout"`
	Stderr string   `yaml:"stderr"`
	Exit   int      `yaml:"exit"`
}

func loadScenarios(t *testing.T, path string) []scenario {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open fixture: %v", err)
	}
	defer f.Close()
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	var out []scenario
	if err := dec.Decode(&out); err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	return out
}

// execute mirrors what ipli does for one script: compile, feed input, run,
// and map the first error to its exit status.
func execute(src string, args, input []string) (string, error) {
	vm, err := ipl.Compile(strings.NewReader(src), append([]string{"ipli", "script.ipl"}, args...))
	if err != nil {
		return "", err
	}
	vm.EnqueueInput(input...)
	out, err := vm.Run()
	return iplruntime.Render(out), err
}

func TestScenarios(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("testdata", "scenarios", "*.yaml"))
	if err != nil {
		t.Fatalf("glob fixtures: %v", err)
	}
	if len(files) == 0 {
		t.Fatalf("no scenario fixtures found")
	}
	for _, file := range files {
		for _, sc := range loadScenarios(t, file) {
			t.Run(filepath.Base(file)+"/"+sc.Name, func(t *testing.T) {
				stdout, err := execute(sc.Source, sc.Args, sc.Input)
				if stdout != sc.Stdout {
					t.Fatalf("stdout mismatch:\n got %q\nwant %q", stdout, sc.Stdout)
				}
				if code := diag.ExitCode(err); code != sc.Exit {
					t.Fatalf("exit code mismatch: got %d want %d (err=%v)", code, sc.Exit, err)
				}
				if sc.Stderr != "" {
					if err == nil || err.Error() != sc.Stderr {
						t.Fatalf("stderr mismatch:\n got %v\nwant %q", err, sc.Stderr)
					}
				}
			})
		}
	}
}

func TestDeterministicRerun(t *testing.T) {
	src := "i = 0\ns = 0\nwhile i < 10\n\ts = s + i\n\ti = i + 1\nwriteln s\n"
	first, err := execute(src, nil, nil)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	for i := 0; i < 3; i++ {
		again, err := execute(src, nil, nil)
		if err != nil {
			t.Fatalf("run failed: %v", err)
		}
		if again != first {
			t.Fatalf("output changed between runs: %q vs %q", first, again)
		}
	}
}

func TestCompileWithConfig(t *testing.T) {
	seed := int64(7)
	cfg := ipl.Config{Seed: &seed, MaxArrayLen: 4, MaxLexeme: 8}

	src := "random r\nwriteln r\n"
	a, err := ipl.CompileWith(strings.NewReader(src), nil, cfg)
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	b, err := ipl.CompileWith(strings.NewReader(src), nil, cfg)
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	outA, _ := a.Run()
	outB, _ := b.Run()
	if iplruntime.Render(outA) != iplruntime.Render(outB) {
		t.Fatalf("seeded runs differ")
	}

	vm, err := ipl.CompileWith(strings.NewReader("new a[5]\n"), nil, cfg)
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	if _, err := vm.Run(); !diag.Is(err, diag.BadSize) {
		t.Fatalf("expected array limit error, got %v", err)
	}

	if _, err := ipl.CompileWith(strings.NewReader("abcdefghi = 1\n"), nil, cfg); !diag.Is(err, diag.BadSymbol) {
		t.Fatalf("expected lexeme limit error, got %v", err)
	}
}

func TestParseForTooling(t *testing.T) {
	prog, err := ipl.Parse(strings.NewReader("while i < 2\n\ti = i + 1\n"), ipl.Config{})
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if got := ast.Format(prog, false); got != "while i < 2\n\ti = i + 1\n" {
		t.Fatalf("unexpected formatted program: %q", got)
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ipli.yaml")
	body := "max_lexeme: 32\nseed: 99\nmax_array_len: 1024\ntrace: true\ndump: out.yaml\ndump_format: yaml\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := ipl.LoadConfig(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.MaxLexeme != 32 || cfg.Seed == nil || *cfg.Seed != 99 || cfg.MaxArrayLen != 1024 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if !cfg.Trace || cfg.TUI || cfg.Dump != "out.yaml" || cfg.DumpFormat != "yaml" {
		t.Fatalf("unexpected cli settings: %+v", cfg)
	}

	empty := filepath.Join(dir, "empty.yaml")
	if err := os.WriteFile(empty, nil, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if cfg, err := ipl.LoadConfig(empty); err != nil || cfg.Seed != nil {
		t.Fatalf("empty config should load as defaults: %+v %v", cfg, err)
	}

	unknown := filepath.Join(dir, "unknown.yaml")
	if err := os.WriteFile(unknown, []byte("colour: blue\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := ipl.LoadConfig(unknown); err == nil {
		t.Fatalf("expected unknown key to be rejected")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("dump_format: xml\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := ipl.LoadConfig(bad); err == nil {
		t.Fatalf("expected invalid dump format to be rejected")
	}

	_, err = ipl.LoadConfig(filepath.Join(dir, "missing.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}
