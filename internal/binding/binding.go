package binding

import (
	"errors"
	"io/fs"
	"sync"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/dshills/rline/internal/logging"
)

// Status describes what one InvokeReadChar call achieved.
type Status uint8

const (
	// Continuing means a character was consumed and the line is still being edited.
	Continuing Status = iota
	// Drained means the bridge had no complete character to give.
	Drained
	// LineReady means the character completed a line.
	LineReady
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case Continuing:
		return "continuing"
	case Drained:
		return "drained"
	case LineReady:
		return "line-ready"
	default:
		return "unknown"
	}
}

// Result is the outcome of InvokeReadChar.
type Result struct {
	Status Status
	// Line is an owned copy of the completed line. It is never nil when
	// Status is LineReady.
	Line []byte
	// EOF is set when the line was completed by end of input rather than
	// accepted.
	EOF bool
}

// InitOptions are the process-wide engine settings applied by
// InitializeOnce.
type InitOptions struct {
	// Inputrc is the key binding file to read. Empty reads none.
	Inputrc string
	// EditingMode is "emacs" or "vi". Empty keeps the engine default.
	EditingMode string
	// HistorySize limits the history. Zero or less means unlimited.
	HistorySize int
	// MaxLineLength limits lines in bytes. Zero means unlimited.
	MaxLineLength int
}

var (
	initOnce sync.Once
	initErr  error

	// completed holds the line the handler received during the current
	// InvokeReadChar call.
	completed *Result
)

// InitializeOnce configures the engine the first time it is called. The
// outcome, including failure, is remembered and returned to every later
// caller; later options are ignored.
func InitializeOnce(opts InitOptions) error {
	initOnce.Do(func() {
		log := logging.Named("binding")
		initErr = initialize(opts)
		if initErr != nil {
			log.Error("engine initialization failed", zap.String("backend", Backend), zap.Error(initErr))
			return
		}
		log.Info("engine initialized",
			zap.String("backend", Backend),
			zap.String("inputrc", opts.Inputrc),
			zap.String("editing_mode", opts.EditingMode),
		)
	})
	return initErr
}

// handleLine receives a completed line from the engine. eof is set when
// the engine reported end of input.
func handleLine(line []byte, eof bool) {
	if line == nil {
		line = []byte{}
	}
	completed = &Result{Status: LineReady, Line: line, EOF: eof}
}

// takeCompleted returns and clears the line stored by handleLine.
func takeCompleted() (Result, bool) {
	if completed == nil {
		return Result{}, false
	}
	r := *completed
	completed = nil
	return r, true
}

// classifyInitFileError decides what a failure to read the inputrc at path
// means. A missing file is fine. Lines the engine could not apply are
// logged and otherwise ignored. Anything else fails initialization.
func classifyInitFileError(path string, err error) error {
	if err == nil {
		return nil
	}
	log := logging.Named("binding")

	if isParseError(err) {
		for _, e := range multierr.Errors(err) {
			log.Warn("inputrc", zap.String("path", path), zap.Error(e))
		}
		return nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		log.Debug("inputrc not found", zap.String("path", path))
		return nil
	}
	return &InitError{Path: path, Err: err}
}
