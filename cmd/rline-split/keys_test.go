package main

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
)

func TestKeyBytes(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want []byte
	}{
		{"rune", tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone), []byte("a")},
		{"multibyte rune", tcell.NewEventKey(tcell.KeyRune, 'é', tcell.ModNone), []byte("é")},
		{"alt rune", tcell.NewEventKey(tcell.KeyRune, 'f', tcell.ModAlt), []byte("\x1bf")},
		{"control key", tcell.NewEventKey(tcell.KeyCtrlA, 0, tcell.ModCtrl), []byte{0x01}},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), []byte{'\r'}},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), []byte{0x1b}},
		{"backspace", tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone), []byte{0x7f}},
		{"left arrow", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), []byte("\x1b[D")},
		{"delete", tcell.NewEventKey(tcell.KeyDelete, 0, tcell.ModNone), []byte("\x1b[3~")},
		{"function key", tcell.NewEventKey(tcell.KeyF5, 0, tcell.ModNone), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, keyBytes(tt.ev))
		})
	}
}
