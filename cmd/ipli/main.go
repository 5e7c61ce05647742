package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"git.sr.ht/~sircmpwn/getopt"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/gosuda/ipl"
	"github.com/gosuda/ipl/diag"
)

const usage = "usage: ipli [-tx] [-c config] [-s seed] [-m max-lexeme] [-d dump] [-f json|yaml] <script> [args...]"

func main() {
	os.Exit(run(os.Args, os.Stdin, os.Stdout, os.Stderr))
}

func run(argv []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := parseArgs(argv)
	if err != nil {
		warn(stderr, err)
		if exitCode(err) == int(diag.BadArgs) {
			fmt.Fprintln(stderr, usage)
		}
		return exitCode(err)
	}

	if cfg.TUI {
		err = runTUI(cfg)
	} else {
		err = runPlain(cfg, stdin, stdout, stderr)
	}
	if err != nil {
		warn(stderr, err)
	}
	return exitCode(err)
}

// parseArgs reads options up to the script path. Everything after the script
// is forwarded to the program untouched. Options override the config file.
func parseArgs(argv []string) (appConfig, error) {
	opts, optind, err := getopt.Getopts(argv, "c:d:f:m:s:tx")
	if err != nil {
		return appConfig{}, invocationError(diag.BadArgs, err)
	}

	var cfg appConfig
	for _, opt := range opts {
		if opt.Option != 'c' {
			continue
		}
		loaded, err := ipl.LoadConfig(opt.Value)
		if err != nil {
			return appConfig{}, invocationError(diag.OpenFile, err)
		}
		cfg.Config = loaded
	}

	for _, opt := range opts {
		switch opt.Option {
		case 't':
			cfg.TUI = true
		case 'x':
			cfg.Trace = true
		case 'd':
			cfg.Dump = opt.Value
		case 'f':
			if opt.Value != "json" && opt.Value != "yaml" {
				return appConfig{}, invocationError(diag.BadArgs, fmt.Errorf("-f: unsupported format %q", opt.Value))
			}
			cfg.DumpFormat = opt.Value
		case 'm':
			n, err := strconv.Atoi(opt.Value)
			if err != nil || n <= 0 {
				return appConfig{}, invocationError(diag.BadArgs, fmt.Errorf("-m: invalid lexeme bound %q", opt.Value))
			}
			cfg.MaxLexeme = n
		case 's':
			seed, err := strconv.ParseInt(opt.Value, 10, 64)
			if err != nil {
				return appConfig{}, invocationError(diag.BadArgs, fmt.Errorf("-s: invalid seed %q", opt.Value))
			}
			cfg.Seed = &seed
		}
	}

	rest := argv[optind:]
	if len(rest) == 0 {
		return appConfig{}, invocationError(diag.BadArgs, fmt.Errorf("missing script path"))
	}
	cfg.script = rest[0]
	cfg.args = append([]string{programName(argv)}, rest...)
	if cfg.Dump != "" && cfg.DumpFormat == "" {
		cfg.DumpFormat = dumpFormatFor(cfg.Dump)
	}
	return cfg, nil
}

func programName(argv []string) string {
	if len(argv) == 0 || argv[0] == "" {
		return "ipli"
	}
	return argv[0]
}

func runTUI(cfg appConfig) error {
	m := newModel(cfg)
	p := tea.NewProgram(m, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	if fm, ok := final.(model); ok && fm.err != nil {
		return fm.err
	}
	return nil
}
