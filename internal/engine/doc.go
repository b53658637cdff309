// Package engine is a single-instance line editor in the style of GNU
// readline's callback interface.
//
// All editing state lives in package-level variables: there is exactly one
// live line, cursor, undo chain and keymap position per process. Hosts that
// need several sessions copy that state in and out with SaveState and
// RestoreState, and hand ownership back and forth with Detach and
// FreeState.
//
// # Driving the engine
//
// The engine never reads input on its own. A host installs a character
// source with SetGetc and a completion callback with SetLineHandler, then
// calls CallbackReadChar once per key:
//
//	engine.SetGetc(next)
//	engine.SetLineHandler(func(line []byte) { done = line })
//
//	st := engine.NewState()
//	engine.RestoreState(&st)
//	for {
//		if err := engine.CallbackReadChar(); errors.Is(err, engine.ErrNoInput) {
//			break
//		}
//	}
//
// # Key bindings
//
// Keymaps are prefix trees of keys and are shared by every session. A key
// that could continue a longer bound sequence is held back until the next
// key decides; if that key leaves the tree, the longest bound prefix runs
// and the remaining keys are read again. Held back keys wait across calls
// until the next key arrives, with one exception: ESC in vi insertion mode
// runs at once when the input runs out. There are no timeouts.
//
// Bindings and variables are read from inputrc files with ReadInitFile and
// ParseAndBind, using readline's syntax.
//
// # Memory accounting
//
// Line buffers and undo records are counted while they are alive.
// LiveAllocations lets tests verify that ownership transfers neither leak
// nor double free.
package engine
