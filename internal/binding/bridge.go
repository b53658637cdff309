package binding

import (
	"bytes"
	"errors"
	"unicode/utf8"
)

// errNoInput reports that the attached queue holds no complete character.
var errNoInput = errors.New("no complete character queued")

// bridge is the engine's only character source. It reads from whichever
// queue is attached, which is the queue of the active session.
var bridge struct {
	q *Queue
}

// Attach makes q the queue the engine reads from.
func Attach(q *Queue) {
	bridge.q = q
}

// Detach disconnects the engine from any queue.
func Detach() {
	bridge.q = nil
}

// nextRune takes one complete character from the attached queue. An
// incomplete trailing sequence stays queued and reports errNoInput.
// Malformed input is dropped together with the rest of the queue.
func nextRune() (rune, error) {
	q := bridge.q
	if q == nil {
		return 0, ErrNotAttached
	}
	buf := q.peek()
	if len(buf) == 0 || !utf8.FullRune(buf) {
		return 0, errNoInput
	}

	r, n := utf8.DecodeRune(buf)
	if r == utf8.RuneError && n <= 1 {
		err := &EncodingError{Bytes: bytes.Clone(buf[:1]), Discarded: len(buf) - 1}
		q.Reset()
		return 0, err
	}
	q.consume(n)
	return r, nil
}
