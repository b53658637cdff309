package engine

import "sync/atomic"

// liveAllocs counts engine-owned storage (line buffers and undo records)
// that has been allocated and not yet freed. Whoever owns a State is
// responsible for freeing what it references.
var liveAllocs atomic.Int64

// LiveAllocations returns the number of engine allocations not yet freed.
func LiveAllocations() int64 {
	return liveAllocs.Load()
}

// defaultLineCapacity matches the initial buffer size of the classic engine.
const defaultLineCapacity = 256

// lineBuffer is the engine-owned storage for the current line.
type lineBuffer struct {
	data  []byte
	freed bool
}

func newLineBuffer(capacity int) *lineBuffer {
	if capacity <= 0 {
		capacity = defaultLineCapacity
	}
	liveAllocs.Add(1)
	return &lineBuffer{data: make([]byte, 0, capacity)}
}

func (b *lineBuffer) free() {
	if b == nil {
		return
	}
	if b.freed {
		panic("engine: line buffer freed twice")
	}
	clear(b.data)
	b.data = nil
	b.freed = true
	liveAllocs.Add(-1)
}

func (b *lineBuffer) insert(at int, text []byte) {
	n := len(b.data)
	b.data = append(b.data, text...)
	copy(b.data[at+len(text):], b.data[at:n])
	copy(b.data[at:], text)
}

func (b *lineBuffer) remove(from, to int) {
	n := copy(b.data[from:], b.data[to:])
	clear(b.data[from+n:])
	b.data = b.data[:from+n]
}

func (b *lineBuffer) set(text []byte) {
	clear(b.data)
	b.data = append(b.data[:0], text...)
}

func (b *lineBuffer) truncate() {
	clear(b.data)
	b.data = b.data[:0]
}
