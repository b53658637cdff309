package engine

// Default configuration values.
const (
	DefaultHistorySize   = 500
	DefaultMaxLineLength = 0
)

// Option configures process-wide engine settings.
type Option func(*engineSettings)

// WithEditingMode sets the mode new sessions start in.
func WithEditingMode(m EditingMode) Option {
	return func(s *engineSettings) {
		s.mode = m
	}
}

// WithHistorySize limits the number of history entries. Zero or less
// removes the limit.
func WithHistorySize(n int) Option {
	return func(s *engineSettings) {
		s.historyMax = n
	}
}

// WithMaxLineLength limits the line length in bytes. Zero removes the limit.
func WithMaxLineLength(n int) Option {
	return func(s *engineSettings) {
		if n >= 0 {
			s.maxLineLength = n
		}
	}
}

// Configure applies opts to the process-wide settings. Sessions already
// created keep their editing mode.
func Configure(opts ...Option) {
	for _, opt := range opts {
		opt(&settings)
	}
	bindMap = settings.mode.entryKeymap()
	stifle()
}
