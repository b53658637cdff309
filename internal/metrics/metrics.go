// Package metrics defines the Prometheus collectors for line-editing
// sessions. Nothing is registered globally; hosts opt in with Register.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"
)

// Error kinds used as the "kind" label of Errors.
const (
	KindEncoding = "encoding"
	KindFatal    = "fatal"
	KindCursor   = "cursor"
	KindInit     = "init"
)

// Metrics holds all session collectors.
type Metrics struct {
	ContextsCreated prometheus.Counter
	ContextsOpen    prometheus.Gauge

	// Activations counts guard acquisitions; Switches counts the ones that
	// installed a different session than the previous one.
	Activations prometheus.Counter
	Switches    prometheus.Counter

	BytesFed       prometheus.Counter
	LinesCompleted prometheus.Counter
	LineLength     prometheus.Histogram

	Errors *prometheus.CounterVec
}

// New creates an unregistered set of collectors.
func New() *Metrics {
	return &Metrics{
		ContextsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "rline",
			Name:      "contexts_created_total",
			Help:      "Total number of editing contexts created",
		}),
		ContextsOpen: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "rline",
			Name:      "contexts_open",
			Help:      "Number of editing contexts not yet closed",
		}),
		Activations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "rline",
			Name:      "activations_total",
			Help:      "Total number of times a context took the shared engine",
		}),
		Switches: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "rline",
			Name:      "context_switches_total",
			Help:      "Total number of activations that changed the active context",
		}),
		BytesFed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "rline",
			Name:      "bytes_fed_total",
			Help:      "Total number of input bytes fed to contexts",
		}),
		LinesCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "rline",
			Name:      "lines_completed_total",
			Help:      "Total number of lines accepted",
		}),
		LineLength: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "rline",
			Name:      "line_length_bytes",
			Help:      "Length of accepted lines in bytes",
			Buckets:   prometheus.ExponentialBuckets(8, 2, 8),
		}),
		Errors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "rline",
				Name:      "errors_total",
				Help:      "Total number of errors returned by context operations",
			},
			[]string{"kind"},
		),
	}
}

// Collectors returns every collector in m.
func (m *Metrics) Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.ContextsCreated,
		m.ContextsOpen,
		m.Activations,
		m.Switches,
		m.BytesFed,
		m.LinesCompleted,
		m.LineLength,
		m.Errors,
	}
}

// Register registers all collectors with reg, reporting every failure.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	var err error
	for _, c := range m.Collectors() {
		err = multierr.Append(err, reg.Register(c))
	}
	return err
}

// LineCompleted records an accepted line of n bytes.
func (m *Metrics) LineCompleted(n int) {
	m.LinesCompleted.Inc()
	m.LineLength.Observe(float64(n))
}

// Error records an error of the given kind.
func (m *Metrics) Error(kind string) {
	m.Errors.WithLabelValues(kind).Inc()
}
