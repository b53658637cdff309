package binding

// Queue holds raw input bytes a session has been fed but the engine has
// not consumed yet.
type Queue struct {
	buf []byte
}

// Push appends p to the queue.
func (q *Queue) Push(p []byte) {
	q.buf = append(q.buf, p...)
}

// Len returns the number of queued bytes.
func (q *Queue) Len() int {
	return len(q.buf)
}

// Reset discards all queued bytes.
func (q *Queue) Reset() {
	clear(q.buf)
	q.buf = q.buf[:0]
}

// peek returns the queued bytes without consuming them.
func (q *Queue) peek() []byte {
	return q.buf
}

// consume drops the first n bytes.
func (q *Queue) consume(n int) {
	rest := copy(q.buf, q.buf[n:])
	clear(q.buf[rest:])
	q.buf = q.buf[:rest]
}
