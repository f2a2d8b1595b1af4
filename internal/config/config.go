package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the user editable settings stored in .termtest.toml.
type Config struct {
	ScriptsRoot string `toml:"scripts_root"`
	OutputDir   string `toml:"output_dir"`
	Capture     *bool  `toml:"capture"`
	StubTable   string `toml:"stub_table"`
}

var (
	// ErrMissingScriptsRoot indicates the config omitted the scripts root.
	ErrMissingScriptsRoot = errors.New("config.scripts_root must be set")
	// ErrMissingOutputDir indicates captures have nowhere to go.
	ErrMissingOutputDir = errors.New("config.output_dir must be set")
)

// CaptureEnabled reports whether silent batch runs should write capture
// files. Unset means yes.
func (c Config) CaptureEnabled() bool {
	if c.Capture == nil {
		return true
	}
	return *c.Capture
}

// Default returns a baseline configuration.
func Default() Config {
	return Config{
		ScriptsRoot: "scripts",
		OutputDir:   "integration_test_output",
	}
}

// Validate ensures the configuration can drive a batch.
func (c Config) Validate() error {
	if c.ScriptsRoot == "" {
		return ErrMissingScriptsRoot
	}
	if c.OutputDir == "" {
		return ErrMissingOutputDir
	}
	return nil
}

// Load reads configuration from disk. A missing file returns the default
// config.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, err
	}

	cfg := Default()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Save writes configuration to disk, creating parent directories as needed.
func Save(path string, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}
