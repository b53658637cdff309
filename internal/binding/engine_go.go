//go:build !readline

package binding

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/dshills/rline/internal/engine"
	"github.com/dshills/rline/internal/logging"
)

// Backend names the engine implementation compiled in.
const Backend = "go"

// Snapshot is one session's engine state while it is not installed.
type Snapshot struct {
	st engine.State
}

// NewSnapshot returns fresh session state: an empty line, cursor 0, no
// mark, no undo history and the default editing mode.
func NewSnapshot() *Snapshot {
	return &Snapshot{st: engine.NewState()}
}

// Empty reports whether s owns no engine storage, either because it was
// installed or because it was released.
func (s *Snapshot) Empty() bool {
	return s.st.Empty()
}

// Busy reports whether s has keys queued inside the engine that still need
// processing without further input.
func (s *Snapshot) Busy() bool {
	return s.st.Backlog() > 0
}

// Capture moves the live engine state into dst. The engine keeps no
// reference to it afterwards.
func Capture(dst *Snapshot) {
	engine.SaveState(&dst.st)
	engine.Detach()
}

// Install makes src the live engine state. src is empty afterwards.
func Install(src *Snapshot) {
	engine.RestoreState(&src.st)
	src.st = engine.State{}
}

// Release frees everything s owns.
func Release(s *Snapshot) {
	engine.FreeState(&s.st)
}

func initialize(opts InitOptions) error {
	mode := engine.DefaultEditingMode()
	if opts.EditingMode != "" {
		m, err := engine.ParseEditingMode(opts.EditingMode)
		if err != nil {
			return &InitError{Err: err}
		}
		mode = m
	}
	if opts.MaxLineLength < 0 {
		return &InitError{Err: fmt.Errorf("negative max line length %d", opts.MaxLineLength)}
	}

	engine.SetGetc(getc)
	engine.SetLineHandler(func(line []byte) {
		handleLine(line, line == nil)
	})
	engine.Configure(
		engine.WithEditingMode(mode),
		engine.WithHistorySize(opts.HistorySize),
		engine.WithMaxLineLength(opts.MaxLineLength),
	)

	if opts.Inputrc == "" {
		return nil
	}
	return classifyInitFileError(opts.Inputrc, engine.ReadInitFile(opts.Inputrc))
}

// getc is the engine's character source.
func getc() (rune, error) {
	r, err := nextRune()
	if errors.Is(err, errNoInput) {
		return 0, engine.ErrNoInput
	}
	return r, err
}

func isParseError(err error) bool {
	var pe *engine.ParseError
	return errors.As(err, &pe)
}

// InvokeReadChar lets the engine process one character from the attached
// queue.
func InvokeReadChar() (Result, error) {
	err := engine.CallbackReadChar()
	switch {
	case err == nil:
	case errors.Is(err, engine.ErrNoInput):
		return Result{Status: Drained}, nil
	case errors.Is(err, engine.ErrLineTooLong):
		// The key is rejected, like a bell in a terminal.
		logging.Named("binding").Debug("key rejected", zap.Error(err))
		return Result{Status: Continuing}, nil
	case errors.Is(err, ErrEncoding):
		return Result{}, err
	default:
		return Result{}, &FatalError{Op: "read char", Err: err}
	}

	if r, ok := takeCompleted(); ok {
		return r, nil
	}
	return Result{Status: Continuing}, nil
}

// LineState returns the live line and the cursor as a byte offset. The
// slice is only valid until the next call into the engine.
func LineState() ([]byte, int) {
	return engine.Line(), engine.Point()
}

// ReplaceLine replaces the live line. Unless clearUndo is set the
// replacement is recorded as a single undoable step.
func ReplaceLine(line []byte, clearUndo bool) error {
	if err := engine.ReplaceLine(line, clearUndo); err != nil {
		return &FatalError{Op: "replace line", Err: err}
	}
	return nil
}

// SetCursor moves the cursor to byte offset pos.
func SetCursor(pos int) error {
	if err := engine.SetPoint(pos); err != nil {
		return &FatalError{Op: "set cursor", Err: err}
	}
	return nil
}

// LiveAllocations returns the number of engine allocations not yet freed.
func LiveAllocations() int64 {
	return engine.LiveAllocations()
}

// AddHistory appends line to the shared history.
func AddHistory(line string) {
	engine.AddHistory(line)
}

// ClearHistory removes every history entry.
func ClearHistory() {
	engine.ClearHistory()
}

// HistoryLen returns the number of history entries.
func HistoryLen() int {
	return engine.HistoryLen()
}

// ReadHistory appends the entries stored in the file at path.
func ReadHistory(path string) error {
	return engine.ReadHistory(path)
}

// WriteHistory stores the history in the file at path.
func WriteHistory(path string) error {
	return engine.WriteHistory(path)
}

// ParseAndBind applies one inputrc line to the engine.
func ParseAndBind(line string) error {
	if err := engine.ParseAndBind(line); err != nil {
		return fmt.Errorf("%w: %w", ErrBind, err)
	}
	return nil
}

// UnbindKeySeq removes the binding of an inputrc key sequence. It reports
// whether anything was bound.
func UnbindKeySeq(keys string) (bool, error) {
	ok, err := engine.UnbindKeySeq(keys)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrBind, err)
	}
	return ok, nil
}
