package config

import (
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap/zapcore"
)

// Default values.
const (
	DefaultEditingMode = "emacs"
	DefaultHistorySize = 500
	DefaultLogLevel    = "info"

	// SystemInputrc is the system-wide key binding file.
	SystemInputrc = "/etc/inputrc"
)

// Config holds the settings of an rline host.
type Config struct {
	// Inputrc is the key binding file. Empty means the readline search
	// order: ~/.inputrc, then /etc/inputrc. RLINE_INPUTRC falls back to
	// readline's own INPUTRC variable.
	Inputrc string `toml:"inputrc" envconfig:"INPUTRC"`
	// SkipInputrc disables reading any key binding file.
	SkipInputrc bool `toml:"skip_inputrc" split_words:"true"`
	// EditingMode is "emacs" or "vi". An inputrc can still change it.
	EditingMode string `toml:"editing_mode" split_words:"true"`
	// HistorySize limits the shared history. Zero means unlimited.
	HistorySize int `toml:"history_size" split_words:"true"`
	// HistoryFile is loaded at startup by hosts that keep history. Empty
	// disables persistence.
	HistoryFile string `toml:"history_file" split_words:"true"`
	// MaxLineLength limits lines in bytes. Zero means unlimited.
	MaxLineLength int `toml:"max_line_length" split_words:"true"`

	Log LogConfig `toml:"log"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level       string `toml:"level"`
	Development bool   `toml:"development"`
	// File receives the log. Empty disables logging unless the host
	// installs a logger of its own.
	File string `toml:"file"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		EditingMode: DefaultEditingMode,
		HistorySize: DefaultHistorySize,
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
	}
}

// Validate checks every setting and reports all problems together.
func (c *Config) Validate() error {
	var errs error
	switch c.EditingMode {
	case "", "emacs", "vi":
	default:
		errs = multierr.Append(errs, &ValidationError{Setting: "editing_mode", Value: c.EditingMode, Message: `must be "emacs" or "vi"`})
	}
	if c.HistorySize < 0 {
		errs = multierr.Append(errs, &ValidationError{Setting: "history_size", Value: c.HistorySize, Message: "must not be negative"})
	}
	if c.MaxLineLength < 0 {
		errs = multierr.Append(errs, &ValidationError{Setting: "max_line_length", Value: c.MaxLineLength, Message: "must not be negative"})
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		errs = multierr.Append(errs, &ValidationError{Setting: "log.level", Value: c.Log.Level, Message: err.Error()})
	}
	return errs
}

// ResolveInputrc returns the key binding file to read, or "" for none.
// An explicit path is returned even if it does not exist.
func (c *Config) ResolveInputrc() string {
	if c.SkipInputrc {
		return ""
	}
	if c.Inputrc != "" {
		return expandHome(c.Inputrc)
	}
	if home, err := os.UserHomeDir(); err == nil {
		if p := filepath.Join(home, ".inputrc"); fileExists(p) {
			return p
		}
	}
	if fileExists(SystemInputrc) {
		return SystemInputrc
	}
	return ""
}

// ResolveHistoryFile returns the history file with "~" expanded, or "".
func (c *Config) ResolveHistoryFile() string {
	if c.HistoryFile == "" {
		return ""
	}
	return expandHome(c.HistoryFile)
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
