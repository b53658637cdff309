package main

import (
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
)

// escapeSequences are the bytes a VT100-style terminal sends for keys
// tcell decodes into named keys.
var escapeSequences = map[tcell.Key]string{
	tcell.KeyUp:     "\x1b[A",
	tcell.KeyDown:   "\x1b[B",
	tcell.KeyRight:  "\x1b[C",
	tcell.KeyLeft:   "\x1b[D",
	tcell.KeyHome:   "\x1b[H",
	tcell.KeyEnd:    "\x1b[F",
	tcell.KeyDelete: "\x1b[3~",
}

// keyBytes turns a decoded key event back into the raw bytes a session
// expects. Alt prefixes ESC. Keys with no byte form yield nil.
func keyBytes(ev *tcell.EventKey) []byte {
	var b []byte
	switch k := ev.Key(); {
	case k == tcell.KeyRune:
		r := ev.Rune()
		if ev.Modifiers()&tcell.ModCtrl != 0 && r >= 'a' && r <= 'z' {
			b = []byte{byte(r-'a') + 1}
		} else {
			b = utf8.AppendRune(nil, r)
		}
	case k <= tcell.KeyUS || k == tcell.KeyDEL:
		b = []byte{byte(k)}
	default:
		seq, ok := escapeSequences[k]
		if !ok {
			return nil
		}
		return []byte(seq)
	}

	if ev.Modifiers()&tcell.ModAlt != 0 {
		b = append([]byte{0x1b}, b...)
	}
	return b
}
