package rline

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/dshills/rline/internal/binding"
	"github.com/dshills/rline/internal/logging"
	"github.com/dshills/rline/internal/metrics"
)

// Backend names the engine compiled in: "go" for the built-in engine or
// "readline" for GNU readline.
const Backend = binding.Backend

var stats = metrics.New()

// SetLogger makes rline log to l. A nil l silences it. A logger set before
// Init takes precedence over the log file named in the configuration.
func SetLogger(l *zap.Logger) {
	hostLogger = l != nil
	logging.Set(l)
}

// RegisterMetrics registers rline's Prometheus collectors with reg.
func RegisterMetrics(reg prometheus.Registerer) error {
	return stats.Register(reg)
}

// LiveAllocations returns the number of engine allocations not yet freed.
// It returns to its previous value once every Context created since has
// been closed.
func LiveAllocations() int64 {
	return binding.LiveAllocations()
}
