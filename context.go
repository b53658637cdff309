package rline

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dshills/rline/internal/binding"
	"github.com/dshills/rline/internal/logging"
	"github.com/dshills/rline/internal/metrics"
)

// Context is one line-editing session. Its line, cursor, undo history,
// kill ring and editing mode are its own; key bindings and history are
// shared by all sessions.
type Context struct {
	id    uuid.UUID
	snap  *binding.Snapshot
	queue binding.Queue

	// eof records whether the last completed line was ended by end of
	// input rather than accepted.
	eof    bool
	closed bool
}

// New returns a fresh session with an empty line. The first call in the
// process initializes the engine, see Init.
func New() (*Context, error) {
	if err := ensureInit(); err != nil {
		return nil, err
	}

	slot.acquire(nil)
	defer slot.release()

	c := &Context{
		id:   uuid.New(),
		snap: binding.NewSnapshot(),
	}
	stats.ContextsCreated.Inc()
	stats.ContextsOpen.Inc()
	c.log().Debug("context created")
	return c, nil
}

// Feed queues p and lets the engine process queued input until it runs out
// or a line is completed. A completed line is returned with ok set; it is
// an owned copy and the session starts a new, empty line. Input queued
// after the completing key stays queued for the next Feed, which may pass
// no bytes.
//
// An incomplete UTF-8 sequence at the end of p is kept until the rest
// arrives. Malformed input yields an *EncodingError and a failing command
// yields a *FatalError. Either way the rest of the queue is discarded and
// the session stays usable with the line as the engine left it.
func (c *Context) Feed(p []byte) (line []byte, ok bool, err error) {
	if c.closed {
		return nil, false, ErrClosed
	}
	c.queue.Push(p)
	stats.BytesFed.Add(float64(len(p)))
	if c.queue.Len() == 0 && !c.snap.Busy() {
		return nil, false, nil
	}

	slot.acquire(c)
	defer slot.release()

	for {
		res, err := binding.InvokeReadChar()
		if err != nil {
			c.queue.Reset()
			c.fail("feed", err)
			return nil, false, err
		}
		switch res.Status {
		case binding.LineReady:
			c.eof = res.EOF
			stats.LineCompleted(len(res.Line))
			c.log().Debug("line completed", zap.Int("bytes", len(res.Line)), zap.Bool("eof", res.EOF))
			return res.Line, true, nil
		case binding.Drained:
			return nil, false, nil
		}
	}
}

// EOF reports whether the most recently completed line was ended by end
// of input, such as C-d on an empty line, rather than accepted.
func (c *Context) EOF() bool {
	return c.eof
}

// Peek calls fn with the current line and the cursor as a byte offset into
// it. The line is only valid during the call. fn must not call back into
// rline.
func (c *Context) Peek(fn func(line []byte, cursor int)) error {
	if c.closed {
		return ErrClosed
	}
	slot.acquire(c)
	defer slot.release()

	line, cursor := binding.LineState()
	fn(line, cursor)
	return nil
}

// State returns a copy of the current line and the cursor.
func (c *Context) State() (line []byte, cursor int, err error) {
	err = c.Peek(func(l []byte, pos int) {
		line = bytes.Clone(l)
		if line == nil {
			line = []byte{}
		}
		cursor = pos
	})
	return line, cursor, err
}

// Reset replaces the line and moves the cursor. The line ends at its first
// NUL byte, if any. The cursor is a byte offset and must lie within the
// line; otherwise ErrInvalidCursor is returned and nothing changes. With
// clearUndo the undo history is discarded, otherwise the replacement
// itself can be undone.
func (c *Context) Reset(line []byte, cursor int, clearUndo bool) error {
	if c.closed {
		return ErrClosed
	}
	if i := bytes.IndexByte(line, 0); i >= 0 {
		line = line[:i]
	}
	if cursor < 0 || cursor > len(line) {
		err := fmt.Errorf("%w: %d not within line of %d bytes", ErrInvalidCursor, cursor, len(line))
		c.fail("reset", err)
		return err
	}

	slot.acquire(c)
	defer slot.release()

	if err := binding.ReplaceLine(line, clearUndo); err != nil {
		c.fail("reset", err)
		return err
	}
	if err := binding.SetCursor(cursor); err != nil {
		c.fail("reset", err)
		return err
	}
	return nil
}

// Pending returns the number of fed bytes the engine has not consumed,
// such as input after a completed line or an incomplete UTF-8 sequence.
func (c *Context) Pending() int {
	return c.queue.Len()
}

// Close releases the session and everything the engine allocated for it.
// Later operations return ErrClosed. Close is idempotent.
func (c *Context) Close() error {
	if c.closed {
		return nil
	}
	slot.acquire(nil)
	defer slot.release()

	binding.Release(c.snap)
	c.queue.Reset()
	c.closed = true
	stats.ContextsOpen.Dec()
	c.log().Debug("context closed")
	return nil
}

// ID returns the session's unique identifier.
func (c *Context) ID() uuid.UUID {
	return c.id
}

// String implements fmt.Stringer.
func (c *Context) String() string {
	return "rline.Context(" + c.id.String() + ")"
}

func (c *Context) log() *zap.Logger {
	return logging.Named("context").With(zap.Stringer("context", c.id))
}

// fail records an operation error.
func (c *Context) fail(op string, err error) {
	kind := metrics.KindFatal
	switch {
	case errors.Is(err, ErrEncoding):
		kind = metrics.KindEncoding
	case errors.Is(err, ErrInvalidCursor):
		kind = metrics.KindCursor
	}
	stats.Error(kind)
	c.log().Warn(op+" failed", zap.String("kind", kind), zap.Error(err))
}
