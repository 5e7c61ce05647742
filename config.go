package ipl

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config tunes the pipeline. The zero value uses the defaults of each stage.
// TUI, Trace, Dump and DumpFormat are read by the ipli command only.
type Config struct {
	MaxLexeme   int    `yaml:"max_lexeme"`
	Seed        *int64 `yaml:"seed"`
	MaxArrayLen int64  `yaml:"max_array_len"`

	TUI        bool   `yaml:"tui"`
	Trace      bool   `yaml:"trace"`
	Dump       string `yaml:"dump"`
	DumpFormat string `yaml:"dump_format"`
}

// LoadConfig reads a YAML config file. Unknown keys are rejected.
func LoadConfig(path string) (Config, error) {
	if path == "" {
		return Config{}, fmt.Errorf("config: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return Config{}, fmt.Errorf("config: open %s: %w", absPath, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	var cfg Config
	if err := decoder.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("config: parse %s: %w", absPath, err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", absPath, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.MaxLexeme < 0 {
		return fmt.Errorf("max_lexeme must not be negative")
	}
	if c.MaxArrayLen < 0 {
		return fmt.Errorf("max_array_len must not be negative")
	}
	switch c.DumpFormat {
	case "", "json", "yaml":
	default:
		return fmt.Errorf("dump_format must be json or yaml, got %q", c.DumpFormat)
	}
	return nil
}
