package engine

import (
	"fmt"
	"strings"
)

// EditingMode selects the family of key bindings a session starts in.
type EditingMode uint8

const (
	// ModeEmacs is the default editing mode.
	ModeEmacs EditingMode = iota
	// ModeVi starts sessions in vi insertion mode.
	ModeVi
)

// String returns the init-file name of the mode.
func (m EditingMode) String() string {
	switch m {
	case ModeEmacs:
		return "emacs"
	case ModeVi:
		return "vi"
	default:
		return "unknown"
	}
}

// ParseEditingMode parses "emacs" or "vi".
func ParseEditingMode(s string) (EditingMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "emacs":
		return ModeEmacs, nil
	case "vi":
		return ModeVi, nil
	default:
		return ModeEmacs, fmt.Errorf("%w: editing mode %q", ErrInvalidValue, s)
	}
}

// entryKeymap returns the keymap a fresh line starts in for the mode.
func (m EditingMode) entryKeymap() *Keymap {
	if m == ModeVi {
		return viInsertMap
	}
	return emacsMap
}
