// Package config loads the gridcast YAML configuration file. Missing files
// are not an error: every field has a working default and flags override the
// file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration.
type Config struct {
	// BackendURL is the base URL of the guide backend.
	BackendURL string `yaml:"backend_url"`

	// Grid geometry, in terminal cells.
	RowHeight  int `yaml:"row_height"`
	ColWidth   int `yaml:"col_width"`
	LabelWidth int `yaml:"label_width"`
	Overscan   int `yaml:"overscan"`

	// Cadences, in seconds.
	RefreshSeconds  int `yaml:"refresh_seconds"`
	ClassifySeconds int `yaml:"classify_seconds"`
	RolloverSeconds int `yaml:"rollover_seconds"`

	// Logging. The TUI owns stdout, so logs go to a rotating file.
	LogFile  string `yaml:"log_file"`
	LogLevel string `yaml:"log_level"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		BackendURL:      "http://localhost:8089",
		RowHeight:       1,
		ColWidth:        16,
		LabelWidth:      24,
		Overscan:        3,
		RefreshSeconds:  60,
		ClassifySeconds: 60,
		RolloverSeconds: 60,
		LogFile:         "",
		LogLevel:        "info",
	}
}

// DefaultPath returns the conventional config file location,
// e.g. ~/.config/gridcast/config.yaml.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "gridcast", "config.yaml")
}

// Load reads the config at path, layered over the defaults. A missing file
// returns the defaults; a file that exists but does not parse is an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	blob, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %q: %w", path, err)
	}
	if err := yaml.Unmarshal(blob, &cfg); err != nil {
		return Default(), fmt.Errorf("parse config %q: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Default(), fmt.Errorf("config %q: %w", path, err)
	}
	return cfg, nil
}

// Validate checks invariants the UI depends on.
func (c Config) Validate() error {
	if c.BackendURL == "" {
		return errors.New("backend_url is required")
	}
	if c.RowHeight < 1 || c.ColWidth < 1 {
		return errors.New("row_height and col_width must be at least 1")
	}
	if c.Overscan < 0 {
		return errors.New("overscan must not be negative")
	}
	if c.RefreshSeconds < 1 || c.ClassifySeconds < 1 || c.RolloverSeconds < 1 {
		return errors.New("refresh cadences must be at least 1 second")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log_level %q", c.LogLevel)
	}
	return nil
}
