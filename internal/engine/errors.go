package engine

import (
	"errors"
	"fmt"
)

// Errors returned by engine operations.
var (
	// ErrNoInput is returned by the character source when it has nothing to give.
	ErrNoInput = errors.New("no input available")

	// ErrNotInitialized indicates the engine was driven before Initialize.
	ErrNotInitialized = errors.New("engine not initialized")

	// ErrNoSession indicates no session state is installed in the engine.
	ErrNoSession = errors.New("no session state installed")

	// ErrLineTooLong indicates an edit would grow the line past the configured limit.
	ErrLineTooLong = errors.New("line exceeds maximum length")

	// ErrMacroOverflow indicates recursive macro expansion ran away.
	ErrMacroOverflow = errors.New("macro expansion overflow")

	// ErrPointOutOfRange indicates a cursor position outside the line.
	ErrPointOutOfRange = errors.New("point out of range")

	// ErrUnknownFunction indicates a binding names a function the engine does not have.
	ErrUnknownFunction = errors.New("unknown function")

	// ErrUnknownKeymap indicates a keymap name the engine does not have.
	ErrUnknownKeymap = errors.New("unknown keymap")

	// ErrUnknownVariable indicates a "set" of a variable the engine does not know.
	ErrUnknownVariable = errors.New("unknown variable")

	// ErrInvalidValue indicates a variable value that cannot be applied.
	ErrInvalidValue = errors.New("invalid value")

	// ErrInvalidKeySeq indicates a key sequence that cannot be parsed.
	ErrInvalidKeySeq = errors.New("invalid key sequence")

	// ErrDirective indicates a malformed or misplaced $-directive.
	ErrDirective = errors.New("invalid directive")
)

// ParseError reports an init-file line that could not be applied.
type ParseError struct {
	Path string
	Line int
	Text string
	Err  error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%q: %v", e.Text, e.Err)
	}
	return fmt.Sprintf("%s:%d: %q: %v", e.Path, e.Line, e.Text, e.Err)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}
