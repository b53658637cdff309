package rline

import (
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dshills/rline/internal/binding"
	"github.com/dshills/rline/internal/logging"
)

// activeSlot records which Context's state is installed in the engine.
// Outside an acquire/release pair the engine holds no session at all.
type activeSlot struct {
	mu    sync.Mutex
	owner *Context
	// last is the Context most recently installed.
	last uuid.UUID
}

var slot activeSlot

// acquire takes the engine for c and installs its state. A nil c takes the
// engine without installing anything. Overlapping use panics.
func (s *activeSlot) acquire(c *Context) {
	if !s.mu.TryLock() {
		panic("rline: shared engine already in use; calls must be serialized and must not be made from a Peek observer")
	}
	if s.owner != nil && s.owner != c {
		binding.Capture(s.owner.snap)
		binding.Detach()
		s.owner = nil
	}
	if c == nil || s.owner == c {
		return
	}

	binding.Install(c.snap)
	binding.Attach(&c.queue)
	s.owner = c

	stats.Activations.Inc()
	if s.last != c.id {
		stats.Switches.Inc()
		logging.Named("guard").Debug("context switch", zap.Stringer("from", s.last), zap.Stringer("to", c.id))
		s.last = c.id
	}
}

// release captures the installed state back into its Context and gives up
// the engine.
func (s *activeSlot) release() {
	if c := s.owner; c != nil {
		binding.Capture(c.snap)
		binding.Detach()
		s.owner = nil
	}
	s.mu.Unlock()
}
