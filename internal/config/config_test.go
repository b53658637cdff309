package config

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

// clearEnv unsets every variable Load reads for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"INPUTRC",
		"RLINE_CONFIG",
		"RLINE_INPUTRC",
		"RLINE_SKIP_INPUTRC",
		"RLINE_EDITING_MODE",
		"RLINE_HISTORY_SIZE",
		"RLINE_HISTORY_FILE",
		"RLINE_MAX_LINE_LENGTH",
		"RLINE_LOG_LEVEL",
		"RLINE_LOG_DEVELOPMENT",
		"RLINE_LOG_FILE",
	} {
		t.Setenv(name, "")
		require.NoError(t, os.Unsetenv(name))
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "emacs", cfg.EditingMode)
	assert.Equal(t, DefaultHistorySize, cfg.HistorySize)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Zero(t, cfg.MaxLineLength)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromMissingFile(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadFrom(fstest.MapFS{}, "rline/config.toml")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFromFile(t *testing.T) {
	clearEnv(t)
	fsys := fstest.MapFS{
		"rline/config.toml": {Data: []byte(`
inputrc = "/tmp/inputrc"
editing_mode = "vi"
history_size = 50
history_file = "~/.rline_history"
max_line_length = 120

[log]
level = "debug"
development = true
file = "/tmp/rline.log"
`)},
	}

	cfg, err := LoadFrom(fsys, "rline/config.toml")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/inputrc", cfg.Inputrc)
	assert.Equal(t, "vi", cfg.EditingMode)
	assert.Equal(t, 50, cfg.HistorySize)
	assert.Equal(t, "~/.rline_history", cfg.HistoryFile)
	assert.Equal(t, 120, cfg.MaxLineLength)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Log.Development)
	assert.Equal(t, "/tmp/rline.log", cfg.Log.File)
}

func TestLoadFromPrecedence(t *testing.T) {
	clearEnv(t)
	fsys := fstest.MapFS{
		"config.toml": {Data: []byte("editing_mode = \"vi\"\nhistory_size = 50\n")},
	}
	t.Setenv("RLINE_HISTORY_SIZE", "7")
	t.Setenv("RLINE_LOG_LEVEL", "warn")
	t.Setenv("RLINE_SKIP_INPUTRC", "true")

	cfg, err := LoadFrom(fsys, "config.toml")
	require.NoError(t, err)
	assert.Equal(t, "vi", cfg.EditingMode, "file overrides default")
	assert.Equal(t, 7, cfg.HistorySize, "environment overrides file")
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.True(t, cfg.SkipInputrc)
}

func TestLoadFromInputrcEnv(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"readline variable", map[string]string{"INPUTRC": "/a"}, "/a"},
		{"prefixed variable", map[string]string{"RLINE_INPUTRC": "/b"}, "/b"},
		{"prefixed wins", map[string]string{"INPUTRC": "/a", "RLINE_INPUTRC": "/b"}, "/b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			cfg, err := LoadFrom(fstest.MapFS{}, "")
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.Inputrc)
		})
	}
}

func TestLoadFromErrors(t *testing.T) {
	clearEnv(t)

	t.Run("syntax", func(t *testing.T) {
		fsys := fstest.MapFS{"c.toml": {Data: []byte("editing_mode = \n")}}
		_, err := LoadFrom(fsys, "c.toml")
		var perr *ParseError
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, "c.toml", perr.Path)
		assert.Equal(t, 1, perr.Line)
	})

	t.Run("unknown key", func(t *testing.T) {
		fsys := fstest.MapFS{"c.toml": {Data: []byte("colour = \"red\"\n")}}
		_, err := LoadFrom(fsys, "c.toml")
		var perr *ParseError
		assert.ErrorAs(t, err, &perr)
	})

	t.Run("bad environment", func(t *testing.T) {
		t.Setenv("RLINE_HISTORY_SIZE", "lots")
		_, err := LoadFrom(fstest.MapFS{}, "")
		assert.ErrorContains(t, err, "reading environment")
	})

	t.Run("invalid values", func(t *testing.T) {
		fsys := fstest.MapFS{"c.toml": {Data: []byte("editing_mode = \"ed\"\nmax_line_length = -1\n")}}
		_, err := LoadFrom(fsys, "c.toml")
		require.ErrorIs(t, err, ErrValidationFailed)
		assert.Len(t, multierr.Errors(err), 2)
	})
}

func TestValidate(t *testing.T) {
	cfg := &Config{
		EditingMode:   "ed",
		HistorySize:   -1,
		MaxLineLength: -5,
		Log:           LogConfig{Level: "loud"},
	}
	err := cfg.Validate()
	require.Error(t, err)

	errs := multierr.Errors(err)
	require.Len(t, errs, 4)
	settings := make([]string, 0, len(errs))
	for _, e := range errs {
		var verr *ValidationError
		require.ErrorAs(t, e, &verr)
		settings = append(settings, verr.Setting)
	}
	assert.Equal(t, []string{"editing_mode", "history_size", "max_line_length", "log.level"}, settings)

	assert.NoError(t, (&Config{Log: LogConfig{Level: "error"}}).Validate())
}

func TestResolveInputrc(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg := &Config{Inputrc: "~/keys"}
	assert.Equal(t, filepath.Join(home, "keys"), cfg.ResolveInputrc())

	cfg = &Config{Inputrc: "/explicit/inputrc"}
	assert.Equal(t, "/explicit/inputrc", cfg.ResolveInputrc())

	cfg.SkipInputrc = true
	assert.Empty(t, cfg.ResolveInputrc())

	user := filepath.Join(home, ".inputrc")
	require.NoError(t, os.WriteFile(user, []byte("set editing-mode vi\n"), 0o600))
	assert.Equal(t, user, (&Config{}).ResolveInputrc())
}

func TestResolveHistoryFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	assert.Empty(t, (&Config{}).ResolveHistoryFile())
	assert.Equal(t, filepath.Join(home, ".hist"), (&Config{HistoryFile: "~/.hist"}).ResolveHistoryFile())
	assert.Equal(t, "/var/h", (&Config{HistoryFile: "/var/h"}).ResolveHistoryFile())
}

func TestFilePath(t *testing.T) {
	clearEnv(t)
	t.Setenv("RLINE_CONFIG", "/etc/rline.toml")
	assert.Equal(t, "/etc/rline.toml", FilePath())

	require.NoError(t, os.Unsetenv("RLINE_CONFIG"))
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	assert.Equal(t, "/xdg/rline/config.toml", FilePath())
}

func TestOSFS(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("history_size = 3\n"), 0o600))

	cfg, err := LoadFrom(OSFS{}, path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.HistorySize)
}
