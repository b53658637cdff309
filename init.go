package rline

import (
	"errors"
	"io/fs"
	"sync"

	"go.uber.org/zap"

	"github.com/dshills/rline/internal/binding"
	"github.com/dshills/rline/internal/config"
	"github.com/dshills/rline/internal/logging"
	"github.com/dshills/rline/internal/metrics"
)

// Config holds the host settings used to initialize the engine.
type Config = config.Config

var (
	initOnce sync.Once
	initErr  error

	// hostLogger is set once the host installed its own logger.
	hostLogger bool
)

// Init configures the shared engine. Only the first call has an effect;
// later calls, and the implicit initialization done by New, return its
// result. A nil cfg loads the configuration from the config file and the
// environment, see LoadConfig.
//
// Init applies the editing mode, history size and line length limit, reads
// the inputrc file and loads the history file. Key bindings from the
// inputrc that cannot be applied are logged and skipped.
func Init(cfg *Config) error {
	initOnce.Do(func() {
		initErr = initialize(cfg)
		if initErr != nil {
			stats.Error(metrics.KindInit)
		}
	})
	return initErr
}

// LoadConfig loads the configuration Init uses when given none: defaults,
// overridden by the TOML file at $RLINE_CONFIG (or rline/config.toml in
// the user config directory), overridden by RLINE_* environment variables.
func LoadConfig() (*Config, error) {
	return config.Load()
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return config.Default()
}

func ensureInit() error {
	return Init(nil)
}

func initialize(cfg *Config) error {
	if cfg == nil {
		loaded, err := config.Load()
		if err != nil {
			return &InitError{Path: config.FilePath(), Err: err}
		}
		cfg = loaded
	} else if err := cfg.Validate(); err != nil {
		return &InitError{Err: err}
	}

	if !hostLogger && cfg.Log.File != "" {
		l, err := logging.New(logging.Config{
			Level:       cfg.Log.Level,
			Development: cfg.Log.Development,
			OutputPaths: []string{cfg.Log.File},
		})
		if err != nil {
			return &InitError{Path: cfg.Log.File, Err: err}
		}
		logging.Set(l)
	}

	slot.acquire(nil)
	defer slot.release()

	err := binding.InitializeOnce(binding.InitOptions{
		Inputrc:       cfg.ResolveInputrc(),
		EditingMode:   cfg.EditingMode,
		HistorySize:   cfg.HistorySize,
		MaxLineLength: cfg.MaxLineLength,
	})
	if err != nil {
		return err
	}

	if path := cfg.ResolveHistoryFile(); path != "" {
		if err := binding.ReadHistory(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			logging.Named("init").Warn("history not loaded", zap.String("path", path), zap.Error(err))
		}
	}
	return nil
}
