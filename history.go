package rline

import "github.com/dshills/rline/internal/binding"

// AddHistory appends line to the history shared by all sessions.
func AddHistory(line string) error {
	if err := ensureInit(); err != nil {
		return err
	}
	slot.acquire(nil)
	defer slot.release()
	binding.AddHistory(line)
	return nil
}

// ClearHistory removes every history entry.
func ClearHistory() error {
	if err := ensureInit(); err != nil {
		return err
	}
	slot.acquire(nil)
	defer slot.release()
	binding.ClearHistory()
	return nil
}

// HistoryLen returns the number of history entries.
func HistoryLen() (int, error) {
	if err := ensureInit(); err != nil {
		return 0, err
	}
	slot.acquire(nil)
	defer slot.release()
	return binding.HistoryLen(), nil
}

// LoadHistory appends the entries stored in the file at path.
func LoadHistory(path string) error {
	if err := ensureInit(); err != nil {
		return err
	}
	slot.acquire(nil)
	defer slot.release()
	return binding.ReadHistory(path)
}

// SaveHistory writes the history to the file at path, one entry per line.
func SaveHistory(path string) error {
	if err := ensureInit(); err != nil {
		return err
	}
	slot.acquire(nil)
	defer slot.release()
	return binding.WriteHistory(path)
}
