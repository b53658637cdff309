package binding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueue(t *testing.T) {
	var q Queue
	assert.Zero(t, q.Len())

	q.Push([]byte("abc"))
	q.Push(nil)
	q.Push([]byte("de"))
	require.Equal(t, 5, q.Len())
	assert.Equal(t, "abcde", string(q.peek()))

	q.consume(2)
	assert.Equal(t, "cde", string(q.peek()))

	q.Reset()
	assert.Zero(t, q.Len())
	q.Push([]byte("x"))
	assert.Equal(t, "x", string(q.peek()))
}

func TestNextRune(t *testing.T) {
	t.Cleanup(Detach)

	t.Run("not attached", func(t *testing.T) {
		Detach()
		_, err := nextRune()
		assert.ErrorIs(t, err, ErrNotAttached)
	})

	t.Run("ascii and multibyte", func(t *testing.T) {
		q := &Queue{}
		Attach(q)
		q.Push([]byte("aé"))

		r, err := nextRune()
		require.NoError(t, err)
		assert.Equal(t, 'a', r)
		r, err = nextRune()
		require.NoError(t, err)
		assert.Equal(t, 'é', r)
		_, err = nextRune()
		assert.ErrorIs(t, err, errNoInput)
	})

	t.Run("split sequence waits", func(t *testing.T) {
		q := &Queue{}
		Attach(q)
		euro := []byte("€")
		q.Push(euro[:2])

		_, err := nextRune()
		require.ErrorIs(t, err, errNoInput)
		assert.Equal(t, 2, q.Len())

		q.Push(euro[2:])
		r, err := nextRune()
		require.NoError(t, err)
		assert.Equal(t, '€', r)
		assert.Zero(t, q.Len())
	})

	t.Run("invalid input is dropped", func(t *testing.T) {
		q := &Queue{}
		Attach(q)
		q.Push([]byte{0xff, 'a', 'b'})

		_, err := nextRune()
		require.ErrorIs(t, err, ErrEncoding)
		var encErr *EncodingError
		require.ErrorAs(t, err, &encErr)
		assert.Equal(t, []byte{0xff}, encErr.Bytes)
		assert.Equal(t, 2, encErr.Discarded)
		assert.Zero(t, q.Len())
	})
}

func TestErrors(t *testing.T) {
	initErr := &InitError{Path: "/etc/inputrc", Err: assert.AnError}
	assert.ErrorIs(t, initErr, ErrInitialization)
	assert.ErrorIs(t, initErr, assert.AnError)
	assert.Contains(t, initErr.Error(), "/etc/inputrc")
	assert.Equal(t, "initialize: "+assert.AnError.Error(), (&InitError{Err: assert.AnError}).Error())

	fatal := &FatalError{Op: "read char", Err: assert.AnError}
	assert.ErrorIs(t, fatal, ErrFatal)
	assert.ErrorIs(t, fatal, assert.AnError)
	assert.NotErrorIs(t, fatal, ErrEncoding)

	enc := &EncodingError{Bytes: []byte{0xc3}, Discarded: 3}
	assert.ErrorIs(t, enc, ErrEncoding)
	assert.Equal(t, "invalid UTF-8 sequence c3 (3 more bytes discarded)", enc.Error())
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "continuing", Continuing.String())
	assert.Equal(t, "drained", Drained.String())
	assert.Equal(t, "line-ready", LineReady.String())
	assert.Equal(t, "unknown", Status(42).String())
}
