package engine

import (
	"slices"
	"sort"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// function is a bindable command. key is the last key of the sequence that
// invoked it.
type function struct {
	name string
	run  func(key rune) error
}

var functions map[string]*function

// FunctionNames returns the names of all bindable functions, sorted.
func FunctionNames() []string {
	names := make([]string, 0, len(functions))
	for name := range functions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func registerFunctions() {
	functions = make(map[string]*function)
	for name, run := range map[string]func(rune) error{
		"self-insert":             selfInsert,
		"tab-insert":              func(rune) error { return selfInsert('\t') },
		"accept-line":             acceptLine,
		"beginning-of-line":       func(rune) error { live.point = 0; return nil },
		"end-of-line":             func(rune) error { live.point = len(live.line.data); return nil },
		"forward-char":            func(rune) error { live.point = nextRune(live.point); return nil },
		"backward-char":           func(rune) error { live.point = prevRune(live.point); return nil },
		"forward-word":            func(rune) error { live.point = forwardWord(live.point); return nil },
		"backward-word":           func(rune) error { live.point = backwardWord(live.point); return nil },
		"delete-char":             deleteChar,
		"backward-delete-char":    backwardDeleteChar,
		"kill-line":               func(rune) error { kill(live.point, len(live.line.data), false); return nil },
		"backward-kill-line":      func(rune) error { kill(0, live.point, true); return nil },
		"unix-line-discard":       func(rune) error { kill(0, live.point, true); return nil },
		"kill-whole-line":         func(rune) error { kill(0, len(live.line.data), false); return nil },
		"kill-word":               func(rune) error { kill(live.point, forwardWord(live.point), false); return nil },
		"backward-kill-word":      func(rune) error { kill(backwardWord(live.point), live.point, true); return nil },
		"unix-word-rubout":        func(rune) error { kill(backwardBlankWord(live.point), live.point, true); return nil },
		"kill-region":             killRegion,
		"copy-region-as-kill":     copyRegion,
		"yank":                    yank,
		"yank-pop":                yankPop,
		"transpose-chars":         transposeChars,
		"upcase-word":             func(rune) error { return convertWord(cases.Upper(language.Und)) },
		"downcase-word":           func(rune) error { return convertWord(cases.Lower(language.Und)) },
		"capitalize-word":         func(rune) error { return convertWord(cases.Title(language.Und)) },
		"undo":                    func(rune) error { undoOnce(); return nil },
		"revert-line":             revertLine,
		"set-mark":                func(rune) error { live.mark = live.point; return nil },
		"exchange-point-and-mark": exchangePointAndMark,
		"previous-history":        func(rune) error { return historyMove(-1) },
		"next-history":            func(rune) error { return historyMove(1) },
		"beginning-of-history":    func(rune) error { return historyJump(0) },
		"end-of-history":          func(rune) error { return historyJump(-1) },
		"overwrite-mode":          func(rune) error { live.overwrite = !live.overwrite; return nil },
		"abort":                   func(rune) error { return nil },
		"clear-screen":            func(rune) error { return nil },
		"do-nothing":              func(rune) error { return nil },
		"emacs-editing-mode":      func(rune) error { switchMode(ModeEmacs, emacsMap); return nil },
		"vi-editing-mode":         func(rune) error { switchMode(ModeVi, viInsertMap); return nil },
	} {
		functions[name] = &function{name: name, run: run}
	}
	registerViFunctions()
}

func switchMode(m EditingMode, km *Keymap) {
	live.mode = m
	live.keymap = km
}

func selfInsert(key rune) error {
	text := utf8.AppendRune(nil, key)
	if !live.overwrite || live.point >= len(live.line.data) {
		return insertText(text)
	}
	beginUndoGroup()
	defer endUndoGroup()
	deleteText(live.point, nextRune(live.point))
	return insertText(text)
}

func acceptLine(rune) error {
	lineDone = true
	return nil
}

// deleteChar deletes the character under the cursor. On an empty line,
// when typed as C-d, it signals end of input.
func deleteChar(key rune) error {
	if len(live.line.data) == 0 && key == ctrl('d') {
		lineDone, lineEOF = true, true
		return nil
	}
	deleteText(live.point, nextRune(live.point))
	return nil
}

func backwardDeleteChar(rune) error {
	deleteText(prevRune(live.point), live.point)
	return nil
}

// kill deletes [from,to) into the kill ring. Consecutive kills add to the
// same entry.
func kill(from, to int, backward bool) {
	text := deleteText(from, to)
	if len(text) > 0 {
		if live.lastCmd == cmdKill {
			live.kills.extend(text, backward)
		} else {
			live.kills.push(text)
		}
	}
	thisCmd = cmdKill
}

func killRegion(rune) error {
	if live.mark < 0 {
		return nil
	}
	kill(live.mark, live.point, live.mark < live.point)
	live.mark = -1
	return nil
}

func copyRegion(rune) error {
	if live.mark < 0 || live.mark == live.point {
		return nil
	}
	from, to := min(live.mark, live.point), max(live.mark, live.point)
	live.kills.push(slices.Clone(live.line.data[from:to]))
	return nil
}

func yank(rune) error {
	text := live.kills.top()
	if text == nil {
		return nil
	}
	live.yankStart = live.point
	if err := insertText(text); err != nil {
		return err
	}
	live.yankEnd = live.point
	thisCmd = cmdYank
	return nil
}

// yankPop replaces the text just yanked with the next older kill.
func yankPop(rune) error {
	if live.lastCmd != cmdYank {
		return nil
	}
	live.kills.rotate()
	beginUndoGroup()
	defer endUndoGroup()
	deleteText(live.yankStart, live.yankEnd)
	live.point = live.yankStart
	if err := insertText(live.kills.top()); err != nil {
		return err
	}
	live.yankEnd = live.point
	thisCmd = cmdYank
	return nil
}

// transposeChars swaps the characters around the cursor, or the last two
// characters at the end of the line.
func transposeChars(rune) error {
	if live.point == 0 || utf8.RuneCount(live.line.data) < 2 {
		return nil
	}
	if live.point == len(live.line.data) {
		live.point = prevRune(live.point)
	}
	a, b := prevRune(live.point), nextRune(live.point)
	swapped := slices.Concat(live.line.data[live.point:b], live.line.data[a:live.point])

	beginUndoGroup()
	defer endUndoGroup()
	deleteText(a, b)
	live.point = a
	return insertText(swapped)
}

// convertWord rewrites the text from the cursor to the end of the next
// word and leaves the cursor after it.
func convertWord(c cases.Caser) error {
	from, to := live.point, forwardWord(live.point)
	if from == to {
		return nil
	}
	converted := []byte(c.String(string(live.line.data[from:to])))

	beginUndoGroup()
	defer endUndoGroup()
	deleteText(from, to)
	live.point = from
	return insertText(converted)
}

func revertLine(rune) error {
	for undoOnce() {
	}
	return nil
}

func exchangePointAndMark(rune) error {
	if live.mark < 0 {
		return nil
	}
	live.point, live.mark = live.mark, live.point
	clampPoint()
	return nil
}
