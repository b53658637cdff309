package engine

import (
	"errors"
	"fmt"
	"slices"
)

// AppName is the application name matched by "$if" in init files.
const AppName = "rline"

// Limits on macro expansion. A macro that expands to itself trips one of
// them instead of looping forever.
const (
	maxPushback   = 4096
	maxExpansions = 1000
)

// engineSettings are the process-wide settings shared by every session.
type engineSettings struct {
	mode          EditingMode
	historyMax    int // <= 0 means unlimited
	maxLineLength int // 0 means unlimited
}

var (
	settings = engineSettings{mode: ModeEmacs}

	getc        func() (rune, error)
	lineHandler func(line []byte)

	// thisCmd is set by the command being executed and becomes lastCmd.
	thisCmd cmdKind
	// lineDone is set by accept-line and EOF.
	lineDone bool
	lineEOF  bool
)

// SetGetc installs the character source. It is called once per process.
// The source returns ErrNoInput when it has no complete character.
func SetGetc(fn func() (rune, error)) {
	getc = fn
}

// SetLineHandler installs the function that receives each completed line.
// A nil line signals end of input.
func SetLineHandler(fn func(line []byte)) {
	lineHandler = fn
}

// SetEditingMode sets the mode new sessions start in.
func SetEditingMode(m EditingMode) {
	settings.mode = m
	bindMap = m.entryKeymap()
}

// DefaultEditingMode returns the mode new sessions start in.
func DefaultEditingMode() EditingMode {
	return settings.mode
}

// CallbackReadChar reads one key from the pushback queue or the character
// source and executes whatever it completes. When the key finishes a line
// the line handler is called before CallbackReadChar returns.
func CallbackReadChar() error {
	if getc == nil || lineHandler == nil {
		return ErrNotInitialized
	}
	if live.line == nil {
		return ErrNoSession
	}

	var err error
	if len(live.pushback) > 0 {
		r := live.pushback[0]
		live.pushback = live.pushback[1:]
		err = dispatch(r)
	} else if r, gerr := getc(); gerr == nil {
		live.expansions = 0
		err = dispatch(r)
	} else if errors.Is(gerr, ErrNoInput) && pendingViEscape() {
		err = flushPending()
	} else {
		return gerr
	}

	if err != nil {
		return err
	}
	if lineDone {
		finishLine()
	}
	return nil
}

// pendingViEscape reports whether the only key held back is ESC in vi
// insertion mode. Every other held back prefix waits for the next key, so
// input split across calls behaves like the same input in one call.
func pendingViEscape() bool {
	if live.keymap != viInsertMap || len(live.pending) != 1 || live.pending[0] != keyESC {
		return false
	}
	n := live.keymap.node(live.pending)
	return n != nil && n.bound()
}

// flushPending runs the binding of the held back ESC once the input runs
// out, so leaving vi insertion mode does not wait for the next key.
func flushPending() error {
	n := live.keymap.node(live.pending)
	key := live.pending[len(live.pending)-1]
	live.pending = nil
	return execute(n.action, key)
}

// dispatch feeds one key through the current keymap, holding it back while
// it could still extend a bound sequence.
func dispatch(r rune) error {
	km := live.keymap
	seq := append(slices.Clip(live.pending), r)
	node := km.node(seq)

	if node != nil && len(node.children) > 0 {
		live.pending = seq
		return nil
	}
	live.pending = nil

	if node != nil && node.bound() {
		return execute(node.action, r)
	}
	if len(seq) == 1 {
		return execute(km.fallback(r), r)
	}

	// The sequence left the trie. Run the longest bound prefix and read the
	// rest again.
	n, act := km.longestBound(seq[:len(seq)-1])
	if err := unread(seq[n:]); err != nil {
		return err
	}
	return execute(act, seq[n-1])
}

// unread puts keys in front of the pushback queue.
func unread(keys []rune) error {
	if len(live.pushback)+len(keys) > maxPushback {
		live.pushback = nil
		return ErrMacroOverflow
	}
	live.pushback = slices.Concat(keys, live.pushback)
	return nil
}

func execute(act action, key rune) error {
	switch {
	case act.macro != nil:
		live.expansions++
		if live.expansions > maxExpansions {
			live.pushback = nil
			return ErrMacroOverflow
		}
		return unread(act.macro)
	case act.fn != nil:
		thisCmd = cmdOther
		err := act.fn.run(key)
		live.lastCmd = thisCmd
		viClampPoint()
		return err
	default:
		// Unbound keys are ignored.
		return nil
	}
}

// finishLine hands the completed line to the handler and starts a new one.
func finishLine() {
	var line []byte
	if !lineEOF {
		line = slices.Clone(live.line.data)
		if line == nil {
			line = []byte{}
		}
	}
	lineDone, lineEOF = false, false

	startNewLine()
	lineHandler(line)
}

func startNewLine() {
	live.line.truncate()
	live.point = 0
	live.mark = -1
	FreeUndoList()
	live.keymap = live.mode.entryKeymap()
	live.overwrite = false
	live.pending = nil
	live.lastCmd = cmdOther
	live.histPos = -1
	live.histSaved = nil
}

// Line returns the live line. The slice is only valid until the next call
// into the engine.
func Line() []byte {
	if live.line == nil {
		return nil
	}
	return live.line.data
}

// Point returns the cursor as a byte offset into the live line.
func Point() int {
	return live.point
}

// Mark returns the mark, or -1 if it is unset.
func Mark() int {
	return live.mark
}

// SetPoint moves the cursor.
func SetPoint(p int) error {
	if live.line == nil {
		return ErrNoSession
	}
	if p < 0 || p > len(live.line.data) {
		return fmt.Errorf("%w: %d (line length %d)", ErrPointOutOfRange, p, len(live.line.data))
	}
	live.point = p
	return nil
}

// ReplaceLine replaces the live line with text. With clearUndo the undo
// chain is discarded, otherwise the replacement is recorded as one step.
func ReplaceLine(text []byte, clearUndo bool) error {
	if live.line == nil {
		return ErrNoSession
	}
	if settings.maxLineLength > 0 && len(text) > settings.maxLineLength {
		return ErrLineTooLong
	}
	if clearUndo {
		FreeUndoList()
		live.line.set(text)
	} else {
		beginUndoGroup()
		if old := live.line.data; len(old) > 0 {
			recordDelete(0, len(old), slices.Clone(old))
		}
		live.line.set(text)
		if len(text) > 0 {
			pushUndo(undoInsert, 0, len(text), nil)
		}
		endUndoGroup()
	}
	live.pending = nil
	clampPoint()
	return nil
}

// clampPoint keeps point and mark within the line.
func clampPoint() {
	n := len(live.line.data)
	live.point = min(max(live.point, 0), n)
	if live.mark > n {
		live.mark = n
	}
}
