package binding

import (
	"errors"
	"fmt"
)

// Errors returned by binding operations.
var (
	// ErrInitialization indicates the engine could not configure itself.
	ErrInitialization = errors.New("engine initialization failed")

	// ErrEncoding indicates input bytes that are not valid UTF-8.
	ErrEncoding = errors.New("invalid input encoding")

	// ErrFatal indicates an unrecoverable engine error.
	ErrFatal = errors.New("fatal engine error")

	// ErrNotAttached indicates the engine asked for input while no queue
	// was attached to the bridge.
	ErrNotAttached = errors.New("no input queue attached")

	// ErrBind indicates a key binding line the engine rejected.
	ErrBind = errors.New("invalid binding")
)

// InitError reports a failed engine initialization.
type InitError struct {
	// Path is the configuration file involved, if any.
	Path string
	Err  error
}

// Error implements the error interface.
func (e *InitError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("initialize: %v", e.Err)
	}
	return fmt.Sprintf("initialize: %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *InitError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrInitialization.
func (e *InitError) Is(target error) bool {
	return target == ErrInitialization
}

// EncodingError reports malformed input. Bytes holds the offending bytes;
// Discarded counts the bytes after them that were dropped with them.
type EncodingError struct {
	Bytes     []byte
	Discarded int
}

// Error implements the error interface.
func (e *EncodingError) Error() string {
	return fmt.Sprintf("invalid UTF-8 sequence % x (%d more bytes discarded)", e.Bytes, e.Discarded)
}

// Is reports whether target is ErrEncoding.
func (e *EncodingError) Is(target error) bool {
	return target == ErrEncoding
}

// FatalError reports an engine failure during an operation.
type FatalError struct {
	Op  string
	Err error
}

// Error implements the error interface.
func (e *FatalError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *FatalError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrFatal.
func (e *FatalError) Is(target error) bool {
	return target == ErrFatal
}
