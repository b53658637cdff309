package engine

import (
	"slices"
	"unicode"
	"unicode/utf8"
)

// insertText inserts text at point and moves point past it.
func insertText(text []byte) error {
	if len(text) == 0 {
		return nil
	}
	if settings.maxLineLength > 0 && len(live.line.data)+len(text) > settings.maxLineLength {
		return ErrLineTooLong
	}
	at := live.point
	live.line.insert(at, text)
	recordInsert(at, at+len(text))
	live.point += len(text)
	return nil
}

// deleteText removes [from,to), records it for undo and returns a copy of
// the removed bytes.
func deleteText(from, to int) []byte {
	if from > to {
		from, to = to, from
	}
	from = max(from, 0)
	to = min(to, len(live.line.data))
	if from >= to {
		return nil
	}
	text := slices.Clone(live.line.data[from:to])
	recordDelete(from, to, text)
	live.line.remove(from, to)

	switch {
	case live.point >= to:
		live.point -= to - from
	case live.point > from:
		live.point = from
	}
	clampPoint()
	return text
}

func runeAt(p int) rune {
	r, _ := utf8.DecodeRune(live.line.data[p:])
	return r
}

func nextRune(p int) int {
	if p >= len(live.line.data) {
		return len(live.line.data)
	}
	_, n := utf8.DecodeRune(live.line.data[p:])
	return p + n
}

func prevRune(p int) int {
	if p <= 0 {
		return 0
	}
	_, n := utf8.DecodeLastRune(live.line.data[:p])
	return p - n
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// forwardWord returns the end of the word at or after p.
func forwardWord(p int) int {
	end := len(live.line.data)
	for p < end && !isWordRune(runeAt(p)) {
		p = nextRune(p)
	}
	for p < end && isWordRune(runeAt(p)) {
		p = nextRune(p)
	}
	return p
}

// backwardWord returns the start of the word before p.
func backwardWord(p int) int {
	for p > 0 && !isWordRune(runeAt(prevRune(p))) {
		p = prevRune(p)
	}
	for p > 0 && isWordRune(runeAt(prevRune(p))) {
		p = prevRune(p)
	}
	return p
}

// backwardBlankWord returns the start of the whitespace-delimited word
// before p.
func backwardBlankWord(p int) int {
	for p > 0 && unicode.IsSpace(runeAt(prevRune(p))) {
		p = prevRune(p)
	}
	for p > 0 && !unicode.IsSpace(runeAt(prevRune(p))) {
		p = prevRune(p)
	}
	return p
}

// viClass groups runes the way vi word motions do.
func viClass(r rune) int {
	switch {
	case unicode.IsSpace(r):
		return 0
	case isWordRune(r) || r == '_':
		return 1
	default:
		return 2
	}
}

func viNextWord(p int) int {
	end := len(live.line.data)
	if p < end {
		if c := viClass(runeAt(p)); c != 0 {
			for p < end && viClass(runeAt(p)) == c {
				p = nextRune(p)
			}
		}
	}
	for p < end && viClass(runeAt(p)) == 0 {
		p = nextRune(p)
	}
	return p
}

func viPrevWord(p int) int {
	for p > 0 && viClass(runeAt(prevRune(p))) == 0 {
		p = prevRune(p)
	}
	if p == 0 {
		return 0
	}
	c := viClass(runeAt(prevRune(p)))
	for p > 0 && viClass(runeAt(prevRune(p))) == c {
		p = prevRune(p)
	}
	return p
}

// viEndWord returns the position of the last rune of the next word end.
func viEndWord(p int) int {
	end := len(live.line.data)
	p = nextRune(p)
	for p < end && viClass(runeAt(p)) == 0 {
		p = nextRune(p)
	}
	if p >= end {
		return prevRune(end)
	}
	c := viClass(runeAt(p))
	for n := nextRune(p); n < end && viClass(runeAt(n)) == c; n = nextRune(n) {
		p = n
	}
	return p
}

// lastRuneStart is the rightmost position vi command mode allows.
func lastRuneStart() int {
	return prevRune(len(live.line.data))
}
