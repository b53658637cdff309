package rline

import (
	"errors"

	"github.com/dshills/rline/internal/binding"
)

// Errors returned by rline operations.
var (
	// ErrInitialization indicates the shared engine could not be configured.
	ErrInitialization = binding.ErrInitialization

	// ErrEncoding indicates fed bytes that are not valid UTF-8.
	ErrEncoding = binding.ErrEncoding

	// ErrFatal indicates an engine failure during an operation.
	ErrFatal = binding.ErrFatal

	// ErrBind indicates a key binding the engine rejected.
	ErrBind = binding.ErrBind

	// ErrInvalidCursor indicates a Reset cursor outside the new line.
	ErrInvalidCursor = errors.New("invalid cursor position")

	// ErrClosed indicates an operation on a closed Context.
	ErrClosed = errors.New("context closed")
)

type (
	// InitError reports a failed engine initialization.
	InitError = binding.InitError

	// EncodingError reports malformed input and how much of the queued
	// input was discarded with it.
	EncodingError = binding.EncodingError

	// FatalError reports an engine failure during an operation.
	FatalError = binding.FatalError
)
