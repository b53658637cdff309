// Package logging builds and holds the zap logger shared by the module.
package logging

import (
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config defines logger configuration.
type Config struct {
	Level       string // "debug", "info", "warn", "error"
	Development bool
	OutputPaths []string
}

// New creates a logger with the provided configuration.
func New(cfg Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	outputs := cfg.OutputPaths
	if len(outputs) == 0 {
		outputs = []string{"stderr"}
	}

	zapCfg := zap.NewProductionConfig()
	if cfg.Development {
		zapCfg = zap.NewDevelopmentConfig()
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.OutputPaths = outputs
	zapCfg.ErrorOutputPaths = []string{"stderr"}

	return zapCfg.Build()
}

var current atomic.Pointer[zap.Logger]

// L returns the package-wide logger. It is a no-op logger until Set is
// called.
func L() *zap.Logger {
	if l := current.Load(); l != nil {
		return l
	}
	nop := zap.NewNop()
	if current.CompareAndSwap(nil, nop) {
		return nop
	}
	return current.Load()
}

// Set replaces the package-wide logger. A nil logger restores the no-op
// logger.
func Set(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	current.Store(l)
}

// Named returns the package-wide logger scoped to a component.
func Named(component string) *zap.Logger {
	return L().Named(component)
}
