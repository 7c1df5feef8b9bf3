// Package config provides configuration loading for Easel.
//
// Configuration lives in a single TOML file with sections for the history
// log, the canvas, autosave, and logging. Missing files and missing keys
// fall back to the built-in defaults, so a zero-config start always works:
//
//	cfg, err := config.Load("easel.toml")
//
// The watcher subpackage reloads the file on change for live
// reconfiguration.
package config
