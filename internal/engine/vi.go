package engine

import (
	"unicode"
	"unicode/utf8"
)

func registerViFunctions() {
	for name, run := range map[string]func(rune) error{
		"vi-movement-mode":    viMovementMode,
		"vi-insertion-mode":   func(rune) error { viInsert(); return nil },
		"vi-append-mode":      viAppendMode,
		"vi-append-eol":       func(rune) error { live.point = len(live.line.data); viInsert(); return nil },
		"vi-insert-beg":       func(rune) error { live.point = 0; viInsert(); return nil },
		"vi-delete":           func(rune) error { kill(live.point, nextRune(live.point), false); return nil },
		"vi-rubout":           func(rune) error { kill(prevRune(live.point), live.point, true); return nil },
		"vi-first-print":      func(rune) error { live.point = firstNonBlank(); return nil },
		"vi-eol":              func(rune) error { live.point = lastRuneStart(); return nil },
		"vi-next-word":        func(rune) error { live.point = viNextWord(live.point); return nil },
		"vi-prev-word":        func(rune) error { live.point = viPrevWord(live.point); return nil },
		"vi-end-word":         func(rune) error { live.point = viEndWord(live.point); return nil },
		"vi-change-to-eol":    func(rune) error { kill(live.point, len(live.line.data), false); viInsert(); return nil },
		"vi-change-line":      func(rune) error { kill(0, len(live.line.data), false); viInsert(); return nil },
		"vi-delete-line":      func(rune) error { kill(0, len(live.line.data), false); return nil },
		"vi-delete-word":      func(rune) error { kill(live.point, viNextWord(live.point), false); return nil },
		"vi-delete-prev-word": func(rune) error { kill(viPrevWord(live.point), live.point, true); return nil },
		"vi-delete-to-eol":    func(rune) error { kill(live.point, len(live.line.data), false); return nil },
		"vi-delete-to-bol":    func(rune) error { kill(0, live.point, true); return nil },
		"vi-change-word":      viChangeWord,
		"vi-put":              func(rune) error { return viPut(true) },
		"vi-put-before":       func(rune) error { return viPut(false) },
		"vi-undo":             func(rune) error { undoOnce(); return nil },
	} {
		functions[name] = &function{name: name, run: run}
	}
}

// viMovementMode leaves insertion mode, stepping back onto the last
// inserted character like vi does.
func viMovementMode(rune) error {
	if live.point > 0 {
		live.point = prevRune(live.point)
	}
	switchMode(ModeVi, viCommandMap)
	return nil
}

func viInsert() {
	switchMode(ModeVi, viInsertMap)
}

func viAppendMode(rune) error {
	live.point = nextRune(live.point)
	viInsert()
	return nil
}

func viChangeWord(rune) error {
	to := viNextWord(live.point)
	if live.point < len(live.line.data) && viClass(runeAt(live.point)) != 0 {
		to = nextRune(viEndWord(live.point))
	}
	kill(live.point, to, false)
	viInsert()
	return nil
}

// viPut inserts the most recent kill after or before the cursor and leaves
// the cursor on its last character.
func viPut(after bool) error {
	text := live.kills.top()
	if len(text) == 0 {
		return nil
	}
	if after && len(live.line.data) > 0 {
		live.point = nextRune(live.point)
	}
	if err := insertText(text); err != nil {
		return err
	}
	live.point = prevRune(live.point)
	return nil
}

func firstNonBlank() int {
	p := 0
	for p < len(live.line.data) {
		r, n := utf8.DecodeRune(live.line.data[p:])
		if !unicode.IsSpace(r) {
			break
		}
		p += n
	}
	return p
}

// viClampPoint keeps the cursor on a character while in command mode.
func viClampPoint() {
	if live.keymap == viCommandMap && live.point >= len(live.line.data) {
		live.point = lastRuneStart()
	}
}
