package main

import (
	"errors"
	"os"

	"github.com/gosuda/ipl"
	"github.com/gosuda/ipl/diag"
	iplruntime "github.com/gosuda/ipl/runtime"
)

var errOpenScript = errors.New("unable to open input file")

// compileScript opens the script named by cfg and builds a VM for it.
func compileScript(cfg appConfig) (*iplruntime.VM, error) {
	f, err := os.Open(cfg.script)
	if err != nil {
		return nil, invocationError(diag.OpenFile, errOpenScript)
	}
	defer f.Close()
	return ipl.CompileWith(f, cfg.args, cfg.Config)
}

func dumpFormatFor(path string) string {
	return iplruntime.FormatFromPath(path)
}

// writeDump stores the final symbol table when -d was given.
func writeDump(cfg appConfig, vm *iplruntime.VM) error {
	if cfg.Dump == "" {
		return nil
	}
	return vm.WriteSnapshot(cfg.Dump, cfg.DumpFormat)
}
