package iplruntime

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Snapshot is a copy of the symbol table.
type Snapshot struct {
	Scalars map[string]int64   `json:"scalars" yaml:"scalars"`
	Arrays  map[string][]int64 `json:"arrays,omitempty" yaml:"arrays,omitempty"`
}

func (vm *VM) Snapshot() Snapshot {
	snap := Snapshot{
		Scalars: map[string]int64{},
		Arrays:  map[string][]int64{},
	}
	for name, e := range vm.symbols {
		switch v := e.(type) {
		case *Scalar:
			snap.Scalars[name] = v.Value
		case *Array:
			snap.Arrays[name] = v.Values()
		}
	}
	return snap
}

// Restore replaces the symbol table with snap.
func (vm *VM) Restore(snap Snapshot) {
	vm.symbols = map[string]entry{}
	for name, v := range snap.Scalars {
		vm.symbols[name] = &Scalar{Value: v}
	}
	for name, values := range snap.Arrays {
		vm.symbols[name] = &Array{elems: append([]int64(nil), values...)}
	}
}

func normalizeFormat(format string) (string, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	switch format {
	case "", "json":
		return "json", nil
	case "yaml", "yml":
		return "yaml", nil
	default:
		return "", fmt.Errorf("unsupported snapshot format %q (use json|yaml)", format)
	}
}

// FormatFromPath guesses the snapshot format from a file extension.
func FormatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	default:
		return "json"
	}
}

func EncodeSnapshot(snap Snapshot, format string) ([]byte, error) {
	format, err := normalizeFormat(format)
	if err != nil {
		return nil, err
	}
	if format == "yaml" {
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(snap); err != nil {
			return nil, fmt.Errorf("marshal snapshot: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("marshal snapshot: %w", err)
		}
		return buf.Bytes(), nil
	}
	b, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	return append(b, '\n'), nil
}

func DecodeSnapshot(data []byte, format string) (Snapshot, error) {
	format, err := normalizeFormat(format)
	if err != nil {
		return Snapshot{}, err
	}
	var snap Snapshot
	if format == "yaml" {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&snap); err != nil {
			return Snapshot{}, fmt.Errorf("parse snapshot: %w", err)
		}
	} else if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("parse snapshot: %w", err)
	}
	if snap.Scalars == nil {
		snap.Scalars = map[string]int64{}
	}
	if snap.Arrays == nil {
		snap.Arrays = map[string][]int64{}
	}
	return snap, nil
}

// WriteSnapshot stores the current symbol table at path.
func (vm *VM) WriteSnapshot(path, format string) error {
	return WriteSnapshotFile(path, vm.Snapshot(), format)
}

func WriteSnapshotFile(path string, snap Snapshot, format string) error {
	b, err := EncodeSnapshot(snap, format)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("write snapshot: %w", err)
		}
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

// ReadSnapshot loads a snapshot, choosing the format from the extension.
func ReadSnapshot(path string) (Snapshot, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("read snapshot: %w", err)
	}
	return DecodeSnapshot(b, FormatFromPath(path))
}
