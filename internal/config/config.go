package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// HistoryConfig controls the history log.
type HistoryConfig struct {
	// MaxEntries is the soft cap on log length before compaction.
	MaxEntries int `toml:"max_entries"`

	// CompactionThreshold is how far past MaxEntries the log may grow
	// before compaction runs.
	CompactionThreshold int `toml:"compaction_threshold"`

	// RetainFraction is the fraction of MaxEntries kept after compaction.
	RetainFraction float64 `toml:"retain_fraction"`

	// CheckpointInterval forces a checkpoint after this many consecutive
	// delta entries.
	CheckpointInterval int `toml:"checkpoint_interval"`

	// BatchCoalesceWindowMS groups rapid same-kind edits arriving within
	// this window into one undo step. Zero disables coalescing.
	BatchCoalesceWindowMS int `toml:"batch_coalesce_window_ms"`
}

// CanvasConfig controls canvas dimensions and snapping.
type CanvasConfig struct {
	// Width and Height are the canvas dimensions in canvas units.
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`

	// SnapEnabled toggles snap-to-guide behavior.
	SnapEnabled bool `toml:"snap_enabled"`

	// SnapTolerance is how close an edge must be to a guide to snap.
	SnapTolerance float64 `toml:"snap_tolerance"`

	// RotationStep is the angle step (degrees) rotation snaps to.
	RotationStep float64 `toml:"rotation_step"`
}

// AutosaveConfig controls periodic document saves.
type AutosaveConfig struct {
	// Enabled toggles autosave.
	Enabled bool `toml:"enabled"`

	// IntervalMS is the autosave period in milliseconds.
	IntervalMS int `toml:"interval_ms"`

	// Path is the document file autosave writes to.
	Path string `toml:"path"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	// Level is the minimum level to emit ("debug", "info", "warn", "error").
	Level string `toml:"level"`
}

// Config is the full Easel configuration.
type Config struct {
	History  HistoryConfig  `toml:"history"`
	Canvas   CanvasConfig   `toml:"canvas"`
	Autosave AutosaveConfig `toml:"autosave"`
	Logging  LoggingConfig  `toml:"logging"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		History: HistoryConfig{
			MaxEntries:            200,
			CompactionThreshold:   50,
			RetainFraction:        0.5,
			CheckpointInterval:    25,
			BatchCoalesceWindowMS: 300,
		},
		Canvas: CanvasConfig{
			Width:         1920,
			Height:        1080,
			SnapEnabled:   true,
			SnapTolerance: 5,
			RotationStep:  45,
		},
		Autosave: AutosaveConfig{
			Enabled:    false,
			IntervalMS: 30000,
			Path:       "easel.json",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads a TOML configuration file, merging it over the defaults.
// A missing file is not an error; the defaults are returned.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("reading config file %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, &ParseError{Path: path, Message: err.Error(), Err: err}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration for out-of-range values.
func (c Config) Validate() error {
	if c.History.MaxEntries < 2 {
		return &ValidationError{Field: "history.max_entries", Message: "must be at least 2"}
	}
	if c.History.CompactionThreshold < 0 {
		return &ValidationError{Field: "history.compaction_threshold", Message: "must not be negative"}
	}
	if c.History.RetainFraction <= 0 || c.History.RetainFraction > 1 {
		return &ValidationError{Field: "history.retain_fraction", Message: "must be in (0, 1]"}
	}
	if c.History.CheckpointInterval < 1 {
		return &ValidationError{Field: "history.checkpoint_interval", Message: "must be at least 1"}
	}
	if c.History.BatchCoalesceWindowMS < 0 {
		return &ValidationError{Field: "history.batch_coalesce_window_ms", Message: "must not be negative"}
	}
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		return &ValidationError{Field: "canvas", Message: "width and height must be positive"}
	}
	if c.Canvas.SnapTolerance < 0 {
		return &ValidationError{Field: "canvas.snap_tolerance", Message: "must not be negative"}
	}
	if c.Canvas.RotationStep <= 0 {
		return &ValidationError{Field: "canvas.rotation_step", Message: "must be positive"}
	}
	if c.Autosave.IntervalMS < 0 {
		return &ValidationError{Field: "autosave.interval_ms", Message: "must not be negative"}
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return &ValidationError{Field: "logging.level", Message: fmt.Sprintf("unknown level %q", c.Logging.Level)}
	}
	return nil
}

// Save writes the configuration as TOML.
func (c Config) Save(path string) error {
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file %s: %w", path, err)
	}
	return nil
}
