// Package binding is the only code that talks to the shared line-editing
// engine.
//
// The engine keeps a single, process-wide editing state. This package
// turns that state into values: a Snapshot can be captured from the engine,
// installed back into it and released. Input reaches the engine through one
// bridge that reads from whichever Queue is attached.
//
// Two backends implement the same API. The default build drives the Go
// engine in internal/engine. Building with the "readline" tag links GNU
// libreadline through cgo instead; add "readline_static" to link it
// statically.
//
// Nothing here is safe for concurrent use. Callers serialize every call.
package binding
