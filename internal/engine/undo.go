package engine

import "unicode/utf8"

type undoKind uint8

const (
	undoInsert undoKind = iota
	undoDelete
	undoBegin
	undoEnd
)

// maxMergedInsert bounds how many bytes of consecutive typing undo as one step.
const maxMergedInsert = 20

// undoEntry is one record in a session's undo chain. The chain is singly
// linked with the most recent record at the head; a group is bracketed by
// an undoEnd record (pushed last) and an undoBegin record.
type undoEntry struct {
	kind  undoKind
	start int
	end   int
	text  []byte
	next  *undoEntry
}

// doingUndo suppresses recording while an undo is being applied.
var doingUndo bool

func pushUndo(kind undoKind, start, end int, text []byte) {
	if doingUndo {
		return
	}
	liveAllocs.Add(1)
	live.undo = &undoEntry{kind: kind, start: start, end: end, text: text, next: live.undo}
}

// recordInsert records an insertion of [start,end), merging single-character
// typing into the previous insert record.
func recordInsert(start, end int) {
	if doingUndo {
		return
	}
	head := live.undo
	if head != nil && head.kind == undoInsert && head.end == start &&
		utf8.RuneCount(live.line.data[start:end]) == 1 &&
		head.end-head.start < maxMergedInsert {
		head.end = end
		return
	}
	pushUndo(undoInsert, start, end, nil)
}

func recordDelete(start, end int, text []byte) {
	pushUndo(undoDelete, start, end, text)
}

func beginUndoGroup() {
	pushUndo(undoBegin, 0, 0, nil)
}

func endUndoGroup() {
	if doingUndo {
		return
	}
	// An empty group is dropped rather than left as a no-op step.
	if live.undo != nil && live.undo.kind == undoBegin {
		e := live.undo
		live.undo = e.next
		freeUndoEntry(e)
		return
	}
	pushUndo(undoEnd, 0, 0, nil)
}

func freeUndoEntry(e *undoEntry) {
	e.text = nil
	e.next = nil
	liveAllocs.Add(-1)
}

func freeUndoList(head *undoEntry) {
	for head != nil {
		next := head.next
		freeUndoEntry(head)
		head = next
	}
}

// FreeUndoList discards the live session's undo chain.
func FreeUndoList() {
	freeUndoList(live.undo)
	live.undo = nil
}

// UndoLen returns the number of records in the live undo chain.
func UndoLen() int {
	n := 0
	for e := live.undo; e != nil; e = e.next {
		n++
	}
	return n
}

// undoOnce reverts the most recent undo step. It reports false if the
// chain is empty.
func undoOnce() bool {
	if live.undo == nil {
		return false
	}
	doingUndo = true
	defer func() { doingUndo = false }()

	depth := 0
	for live.undo != nil {
		e := live.undo
		live.undo = e.next
		switch e.kind {
		case undoInsert:
			end := min(e.end, len(live.line.data))
			if e.start < end {
				live.line.remove(e.start, end)
			}
			live.point = e.start
		case undoDelete:
			at := min(e.start, len(live.line.data))
			live.line.insert(at, e.text)
			live.point = at
		case undoEnd:
			depth++
		case undoBegin:
			depth--
		}
		freeUndoEntry(e)
		if depth <= 0 {
			break
		}
	}
	clampPoint()
	return true
}
