package engine

// cmdKind records what the last executed command did, for commands whose
// behaviour depends on their predecessor (kill appending, yank-pop).
type cmdKind uint8

const (
	cmdOther cmdKind = iota
	cmdKill
	cmdYank
)

// State is everything the engine keeps per editing session. SaveState and
// RestoreState copy it by reference, so right after SaveState the engine
// and the State share storage; call Detach to hand ownership to the State.
type State struct {
	line      *lineBuffer
	point     int
	mark      int
	undo      *undoEntry
	keymap    *Keymap
	mode      EditingMode
	overwrite bool

	// pending is a bound key-sequence prefix awaiting its next key.
	pending []rune
	// pushback holds keys to read before asking the character source.
	pushback []rune
	// expansions counts macros run since a key last came from the source.
	expansions int

	kills     killRing
	lastCmd   cmdKind
	yankStart int
	yankEnd   int

	// histPos is the history entry being edited, -1 for the live line.
	histPos   int
	histSaved []byte
}

// live is the single, process-wide editing state.
var live = State{mark: -1, histPos: -1}

// Installed reports whether session state is installed in the engine.
func Installed() bool {
	return live.line != nil
}

// NewState returns fresh session state in the current default editing mode.
func NewState() State {
	return State{
		line:    newLineBuffer(defaultLineCapacity),
		mark:    -1,
		keymap:  settings.mode.entryKeymap(),
		mode:    settings.mode,
		histPos: -1,
	}
}

// SaveState copies the live engine state into dst.
func SaveState(dst *State) {
	*dst = live
}

// RestoreState makes src the live engine state.
func RestoreState(src *State) {
	live = *src
}

// Detach drops the engine's references to the live state without freeing
// anything. It is called after SaveState has transferred ownership.
func Detach() {
	live = State{mark: -1, histPos: -1}
}

// FreeState releases everything s owns and leaves it empty.
func FreeState(s *State) {
	s.line.free()
	freeUndoList(s.undo)
	*s = State{mark: -1, histPos: -1}
}

// Empty reports whether s owns no storage.
func (s *State) Empty() bool {
	return s.line == nil && s.undo == nil
}

// Mode returns the editing mode recorded in s.
func (s *State) Mode() EditingMode {
	return s.mode
}

// Backlog returns the number of keys s has queued for rereading, such as
// the expansion of a macro or the tail of an abandoned key sequence.
func (s *State) Backlog() int {
	return len(s.pushback)
}
