package rline

import (
	"go.uber.org/zap"

	"github.com/dshills/rline/internal/binding"
	"github.com/dshills/rline/internal/logging"
)

// ParseAndBind applies one line of inputrc syntax, such as
// `"\C-xr": revert-line` or `set editing-mode vi`. The binding applies to
// every Context, including existing ones.
func ParseAndBind(line string) error {
	if err := ensureInit(); err != nil {
		return err
	}
	slot.acquire(nil)
	defer slot.release()

	if err := binding.ParseAndBind(line); err != nil {
		return err
	}
	logging.Named("bind").Debug("binding applied", zap.String("line", line))
	return nil
}

// UnbindKeySeq removes the binding of a key sequence written in inputrc
// syntax, such as `\C-xr`. It reports whether the sequence was bound.
func UnbindKeySeq(keys string) (bool, error) {
	if err := ensureInit(); err != nil {
		return false, err
	}
	slot.acquire(nil)
	defer slot.release()
	return binding.UnbindKeySeq(keys)
}
