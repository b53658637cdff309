package engine

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"slices"
)

// historyEntries is the process-wide history list, oldest first. Sessions
// share it and only keep their own position in it.
var historyEntries [][]byte

// AddHistory appends line to the history, dropping the oldest entries
// beyond the size limit.
func AddHistory(line string) {
	historyEntries = append(historyEntries, []byte(line))
	stifle()
}

// ClearHistory removes every history entry.
func ClearHistory() {
	historyEntries = nil
}

// HistoryLen returns the number of history entries.
func HistoryLen() int {
	return len(historyEntries)
}

// StifleHistory limits the history to n entries. n <= 0 removes the limit.
func StifleHistory(n int) {
	settings.historyMax = n
	stifle()
}

func stifle() {
	if settings.historyMax > 0 && len(historyEntries) > settings.historyMax {
		historyEntries = slices.Clone(historyEntries[len(historyEntries)-settings.historyMax:])
	}
}

// ReadHistory appends the lines of the file at path to the history.
func ReadHistory(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 4096), 1<<20)
	for sc.Scan() {
		historyEntries = append(historyEntries, bytes.Clone(sc.Bytes()))
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read history %s: %w", path, err)
	}
	stifle()
	return nil
}

// WriteHistory writes the history to path, one entry per line.
func WriteHistory(path string) error {
	var buf bytes.Buffer
	for _, e := range historyEntries {
		buf.Write(e)
		buf.WriteByte('\n')
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("write history %s: %w", path, err)
	}
	return nil
}

// historyMove moves delta entries through the history, where the position
// past the newest entry is the line being edited.
func historyMove(delta int) error {
	pos := live.histPos
	if pos < 0 || pos > len(historyEntries) {
		pos = len(historyEntries)
	}
	target := pos + delta
	if target < 0 || target > len(historyEntries) {
		return nil
	}
	return historyGoto(target)
}

// historyJump goes to entry i, or back to the edited line when i < 0.
func historyJump(i int) error {
	if i < 0 || i > len(historyEntries) {
		i = len(historyEntries)
	}
	return historyGoto(i)
}

func historyGoto(target int) error {
	n := len(historyEntries)
	if target == n && live.histPos < 0 {
		return nil
	}
	var text []byte
	if target == n {
		text = live.histSaved
	} else {
		text = historyEntries[target]
	}
	if settings.maxLineLength > 0 && len(text) > settings.maxLineLength {
		return ErrLineTooLong
	}

	switch {
	case target == n:
		live.histPos = -1
		live.histSaved = nil
	case live.histPos < 0:
		live.histSaved = slices.Clone(live.line.data)
		fallthrough
	default:
		live.histPos = target
	}

	FreeUndoList()
	live.line.set(text)
	live.mark = -1
	if live.keymap == viCommandMap {
		live.point = 0
	} else {
		live.point = len(text)
	}
	return nil
}
