package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if cfg != Default() {
		t.Errorf("got %+v, want defaults", cfg)
	}
}

func TestLoad_Overrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "backend_url: http://guide.local:9000\ncol_width: 20\nlog_level: debug\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.BackendURL != "http://guide.local:9000" {
		t.Errorf("backend_url = %q", cfg.BackendURL)
	}
	if cfg.ColWidth != 20 {
		t.Errorf("col_width = %d, want 20", cfg.ColWidth)
	}
	if cfg.RowHeight != Default().RowHeight {
		t.Errorf("unset fields should keep defaults, row_height = %d", cfg.RowHeight)
	}
}

func TestLoad_ParseError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("backend_url: [broken"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("malformed YAML should error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		wantOK bool
	}{
		{"Defaults", func(c *Config) {}, true},
		{"EmptyBackend", func(c *Config) { c.BackendURL = "" }, false},
		{"ZeroColWidth", func(c *Config) { c.ColWidth = 0 }, false},
		{"NegativeOverscan", func(c *Config) { c.Overscan = -1 }, false},
		{"ZeroCadence", func(c *Config) { c.RefreshSeconds = 0 }, false},
		{"BadLevel", func(c *Config) { c.LogLevel = "verbose" }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); (err == nil) != tt.wantOK {
				t.Errorf("Validate() = %v, wantOK %v", err, tt.wantOK)
			}
		})
	}
}
