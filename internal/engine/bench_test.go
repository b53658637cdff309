package engine

import (
	"strings"
	"testing"
)

// ============================================================================
// Setup Helpers
// ============================================================================

// setupSession installs a fresh session fed from a reusable input buffer.
func setupSession(b *testing.B) *[]rune {
	b.Helper()
	input := new([]rune)
	SetGetc(func() (rune, error) {
		if len(*input) == 0 {
			return 0, ErrNoInput
		}
		r := (*input)[0]
		*input = (*input)[1:]
		return r, nil
	})
	SetLineHandler(func([]byte) {})

	st := NewState()
	RestoreState(&st)
	b.Cleanup(func() {
		var owned State
		SaveState(&owned)
		Detach()
		FreeState(&owned)
		ResetBindings()
	})
	return input
}

func drain() {
	for CallbackReadChar() == nil {
	}
}

// ============================================================================
// Dispatch Benchmarks
// ============================================================================

func BenchmarkSelfInsertLine(b *testing.B) {
	input := setupSession(b)
	line := []rune(strings.Repeat("x", 80) + "\r")
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		*input = append((*input)[:0], line...)
		drain()
	}
}

func BenchmarkEscapeSequence(b *testing.B) {
	input := setupSession(b)
	keys := []rune("\x1b[D\x1b[C")
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		*input = append((*input)[:0], keys...)
		drain()
	}
}

func BenchmarkAmbiguousPrefix(b *testing.B) {
	input := setupSession(b)
	if err := ParseAndBind(`"jk": vi-movement-mode`); err != nil {
		b.Fatal(err)
	}
	keys := []rune("ajxjka\r")
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		*input = append((*input)[:0], keys...)
		drain()
	}
}

// ============================================================================
// State Transfer Benchmarks
// ============================================================================

func BenchmarkSaveRestore(b *testing.B) {
	setupSession(b)
	other := NewState()
	defer FreeState(&other)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		var mine State
		SaveState(&mine)
		Detach()
		RestoreState(&other)
		SaveState(&other)
		Detach()
		RestoreState(&mine)
	}
}

func BenchmarkUndoGroup(b *testing.B) {
	setupSession(b)
	text := []byte(strings.Repeat("y", 40))
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = ReplaceLine(text, false)
		undoOnce()
	}
}
