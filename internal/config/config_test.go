package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "easel.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg != Default() {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestLoadMergesOverDefaults(t *testing.T) {
	path := writeConfig(t, `
[history]
max_entries = 500

[canvas]
snap_tolerance = 8.0
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.History.MaxEntries != 500 {
		t.Errorf("max_entries = %d, want 500", cfg.History.MaxEntries)
	}
	if cfg.Canvas.SnapTolerance != 8 {
		t.Errorf("snap_tolerance = %v, want 8", cfg.Canvas.SnapTolerance)
	}
	// Untouched keys keep their defaults.
	if cfg.History.RetainFraction != Default().History.RetainFraction {
		t.Errorf("retain_fraction = %v, want default", cfg.History.RetainFraction)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("level = %q, want info", cfg.Logging.Level)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := writeConfig(t, "not [valid toml")
	_, err := Load(path)

	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
	if parseErr.Path != path {
		t.Errorf("path = %q, want %q", parseErr.Path, path)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"max entries too small", func(c *Config) { c.History.MaxEntries = 1 }, "history.max_entries"},
		{"negative threshold", func(c *Config) { c.History.CompactionThreshold = -1 }, "history.compaction_threshold"},
		{"retain fraction zero", func(c *Config) { c.History.RetainFraction = 0 }, "history.retain_fraction"},
		{"retain fraction above one", func(c *Config) { c.History.RetainFraction = 1.5 }, "history.retain_fraction"},
		{"checkpoint interval zero", func(c *Config) { c.History.CheckpointInterval = 0 }, "history.checkpoint_interval"},
		{"zero canvas width", func(c *Config) { c.Canvas.Width = 0 }, "canvas"},
		{"unknown log level", func(c *Config) { c.Logging.Level = "trace" }, "logging.level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)

			err := cfg.Validate()
			var valErr *ValidationError
			if !errors.As(err, &valErr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if valErr.Field != tt.field {
				t.Errorf("field = %q, want %q", valErr.Field, tt.field)
			}
		})
	}
}

func TestValidateDefaults(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "easel.toml")

	cfg := Default()
	cfg.History.MaxEntries = 321
	cfg.Canvas.SnapEnabled = false
	if err := cfg.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got != cfg {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, cfg)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	path := writeConfig(t, `
[history]
retain_fraction = 2.0
`)
	_, err := Load(path)
	var valErr *ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}
