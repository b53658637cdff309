//go:build !readline

package binding

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/rline/internal/engine"
)

func TestMain(m *testing.M) {
	if err := InitializeOnce(InitOptions{}); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

// session is a snapshot with its own queue, switched in and out the way
// the context layer does it.
type session struct {
	snap  *Snapshot
	queue *Queue
}

func newSession(t *testing.T) *session {
	t.Helper()
	s := &session{snap: NewSnapshot(), queue: &Queue{}}
	t.Cleanup(func() { Release(s.snap) })
	return s
}

// feed pushes input and runs the engine until it drains or completes a
// line.
func (s *session) feed(t *testing.T, input string) (Result, error) {
	t.Helper()
	Install(s.snap)
	Attach(s.queue)
	defer func() {
		Capture(s.snap)
		Detach()
	}()

	s.queue.Push([]byte(input))
	for {
		res, err := InvokeReadChar()
		if err != nil || res.Status != Continuing {
			return res, err
		}
	}
}

func (s *session) state(t *testing.T) (string, int) {
	t.Helper()
	Install(s.snap)
	defer Capture(s.snap)
	line, cursor := LineState()
	return string(line), cursor
}

func TestInitializeOnceIsMemoised(t *testing.T) {
	assert.NoError(t, InitializeOnce(InitOptions{EditingMode: "bogus"}))
	assert.Equal(t, engine.ModeEmacs, engine.DefaultEditingMode())
}

func TestInvokeReadChar(t *testing.T) {
	s := newSession(t)

	res, err := s.feed(t, "he")
	require.NoError(t, err)
	assert.Equal(t, Drained, res.Status)
	line, cursor := s.state(t)
	assert.Equal(t, "he", line)
	assert.Equal(t, 2, cursor)

	res, err = s.feed(t, "y\r")
	require.NoError(t, err)
	assert.Equal(t, LineReady, res.Status)
	assert.Equal(t, "hey", string(res.Line))
	assert.False(t, res.EOF)

	line, cursor = s.state(t)
	assert.Empty(t, line)
	assert.Zero(t, cursor)
}

func TestInvokeReadCharEOF(t *testing.T) {
	s := newSession(t)

	res, err := s.feed(t, "\x04")
	require.NoError(t, err)
	assert.Equal(t, LineReady, res.Status)
	assert.True(t, res.EOF)
	assert.NotNil(t, res.Line)
	assert.Empty(t, res.Line)
}

func TestInvokeReadCharEncodingError(t *testing.T) {
	s := newSession(t)

	_, err := s.feed(t, "ok\xff\xfe")
	require.ErrorIs(t, err, ErrEncoding)
	assert.Zero(t, s.queue.Len())

	line, _ := s.state(t)
	assert.Equal(t, "ok", line)

	res, err := s.feed(t, "!\r")
	require.NoError(t, err)
	assert.Equal(t, "ok!", string(res.Line))
}

func TestInvokeReadCharWithoutQueue(t *testing.T) {
	s := newSession(t)
	Install(s.snap)
	defer Capture(s.snap)
	Detach()

	_, err := InvokeReadChar()
	assert.ErrorIs(t, err, ErrFatal)
	assert.ErrorIs(t, err, ErrNotAttached)
}

func TestSnapshotIsolation(t *testing.T) {
	a, b := newSession(t), newSession(t)

	_, err := a.feed(t, "alpha")
	require.NoError(t, err)
	_, err = b.feed(t, "be")
	require.NoError(t, err)
	_, err = a.feed(t, "\x02\x02")
	require.NoError(t, err)

	line, cursor := a.state(t)
	assert.Equal(t, "alpha", line)
	assert.Equal(t, 3, cursor)
	line, cursor = b.state(t)
	assert.Equal(t, "be", line)
	assert.Equal(t, 2, cursor)
}

func TestSnapshotOwnership(t *testing.T) {
	base := LiveAllocations()

	s := NewSnapshot()
	assert.False(t, s.Empty())
	assert.Equal(t, base+1, LiveAllocations())

	Install(s)
	assert.True(t, s.Empty())
	require.NoError(t, ReplaceLine([]byte("text"), false))

	Capture(s)
	assert.False(t, s.Empty())
	assert.False(t, engine.Installed())

	Release(s)
	assert.True(t, s.Empty())
	assert.Equal(t, base, LiveAllocations())
}

func TestSnapshotBusy(t *testing.T) {
	require.NoError(t, ParseAndBind(`"\C-xq": "abc"`))
	t.Cleanup(engine.ResetBindings)

	s := newSession(t)
	Install(s.snap)
	Attach(s.queue)
	s.queue.Push([]byte("\x18q"))
	for range 2 {
		_, err := InvokeReadChar()
		require.NoError(t, err)
	}
	Capture(s.snap)
	Detach()
	assert.True(t, s.snap.Busy())

	res, err := s.feed(t, "")
	require.NoError(t, err)
	assert.Equal(t, Drained, res.Status)
	assert.False(t, s.snap.Busy())
	line, _ := s.state(t)
	assert.Equal(t, "abc", line)
}

func TestReplaceLineAndCursor(t *testing.T) {
	s := newSession(t)
	_, err := s.feed(t, "old")
	require.NoError(t, err)

	Install(s.snap)
	require.NoError(t, ReplaceLine([]byte("new text"), false))
	require.NoError(t, SetCursor(3))
	err = SetCursor(99)
	assert.ErrorIs(t, err, ErrFatal)
	assert.ErrorIs(t, err, engine.ErrPointOutOfRange)
	Capture(s.snap)

	line, cursor := s.state(t)
	assert.Equal(t, "new text", line)
	assert.Equal(t, 3, cursor)

	// C-_ undoes the replacement as one step.
	_, err = s.feed(t, "\x1f")
	require.NoError(t, err)
	line, _ = s.state(t)
	assert.Equal(t, "old", line)
}

func TestMaxLineLengthRejectsKeys(t *testing.T) {
	engine.Configure(engine.WithMaxLineLength(3))
	t.Cleanup(func() { engine.Configure(engine.WithMaxLineLength(0)) })

	s := newSession(t)
	res, err := s.feed(t, "abcde")
	require.NoError(t, err)
	assert.Equal(t, Drained, res.Status)
	assert.Zero(t, s.queue.Len())

	line, cursor := s.state(t)
	assert.Equal(t, "abc", line)
	assert.Equal(t, 3, cursor)

	Install(s.snap)
	err = ReplaceLine([]byte("too long"), true)
	Capture(s.snap)
	assert.ErrorIs(t, err, ErrFatal)
	assert.ErrorIs(t, err, engine.ErrLineTooLong)

	res, err = s.feed(t, "\r")
	require.NoError(t, err)
	assert.Equal(t, LineReady, res.Status)
	assert.Equal(t, "abc", string(res.Line))
}

func TestParseAndBind(t *testing.T) {
	t.Cleanup(engine.ResetBindings)

	err := ParseAndBind(`"\C-xz": no-such-function`)
	assert.ErrorIs(t, err, ErrBind)
	assert.ErrorIs(t, err, engine.ErrUnknownFunction)

	require.NoError(t, ParseAndBind(`"\C-xz": beginning-of-line`))
	ok, err := UnbindKeySeq(`\C-xz`)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = UnbindKeySeq(`\C-xz`)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHistory(t *testing.T) {
	t.Cleanup(ClearHistory)
	ClearHistory()

	AddHistory("first")
	AddHistory("second")
	assert.Equal(t, 2, HistoryLen())

	path := filepath.Join(t.TempDir(), "history")
	require.NoError(t, WriteHistory(path))
	ClearHistory()
	require.NoError(t, ReadHistory(path))
	assert.Equal(t, 2, HistoryLen())

	s := newSession(t)
	_, err := s.feed(t, "\x10")
	require.NoError(t, err)
	line, _ := s.state(t)
	assert.Equal(t, "second", line)
}

func TestClassifyInitFileError(t *testing.T) {
	dir := t.TempDir()

	assert.NoError(t, classifyInitFileError("x", nil))

	missing := filepath.Join(dir, "missing")
	assert.NoError(t, classifyInitFileError(missing, engine.ReadInitFile(missing)))

	bad := filepath.Join(dir, "inputrc")
	require.NoError(t, os.WriteFile(bad, []byte("set no-such-variable on\n\"\\C-xy\": nothing-here\n"), 0o600))
	t.Cleanup(engine.ResetBindings)
	assert.NoError(t, classifyInitFileError(bad, engine.ReadInitFile(bad)))

	denied := &fs.PathError{Op: "open", Path: bad, Err: fs.ErrPermission}
	err := classifyInitFileError(bad, denied)
	require.ErrorIs(t, err, ErrInitialization)
	var initErr *InitError
	require.ErrorAs(t, err, &initErr)
	assert.Equal(t, bad, initErr.Path)
	assert.ErrorIs(t, err, fs.ErrPermission)
}
