package garden

import (
	"reflect"
)

// DefaultHistoryDepth is the number of snapshots kept when no depth is configured.
const DefaultHistoryDepth = 50

// History manages undo/redo using full snapshots of the element list.
// The sequence always holds at least one snapshot (the baseline) once Reset was called.
type History struct {
	states  [][]Element // deep copies, never shared with the live list
	current int         // index of the snapshot matching the live list
	max     int         // maximum number of snapshots to keep
}

// NewHistory creates a history holding an empty baseline snapshot.
func NewHistory(max int) *History {
	if max <= 0 {
		max = DefaultHistoryDepth
	}
	h := &History{max: max}
	h.Reset(nil)
	return h
}

// Reset discards every snapshot and starts over with elements as the baseline.
func (h *History) Reset(elements []Element) {
	h.states = make([][]Element, 0, h.max)
	h.states = append(h.states, snapshot(elements))
	h.current = 0
}

// Push records a new snapshot. Anything after the cursor is discarded first.
// A snapshot identical to the current one is ignored and Push returns false.
func (h *History) Push(elements []Element) bool {
	clone := snapshot(elements)
	if reflect.DeepEqual(clone, h.states[h.current]) {
		return false
	}

	// If we're not at the end, truncate the redo branch
	if h.current < len(h.states)-1 {
		h.states = h.states[:h.current+1]
	}

	h.states = append(h.states, clone)

	// If we exceed max, remove the oldest snapshot
	if len(h.states) > h.max {
		h.states = h.states[1:]
	} else {
		h.current++
	}
	return true
}

// CanUndo returns true if there is a snapshot before the cursor.
func (h *History) CanUndo() bool {
	return h.current > 0
}

// CanRedo returns true if there is a snapshot after the cursor.
func (h *History) CanRedo() bool {
	return h.current < len(h.states)-1
}

// Undo moves the cursor back and returns a copy of the snapshot there.
func (h *History) Undo() ([]Element, bool) {
	if !h.CanUndo() {
		return nil, false
	}
	h.current--
	return CloneElements(h.states[h.current]), true
}

// Redo moves the cursor forward and returns a copy of the snapshot there.
func (h *History) Redo() ([]Element, bool) {
	if !h.CanRedo() {
		return nil, false
	}
	h.current++
	return CloneElements(h.states[h.current]), true
}

// Len returns the number of stored snapshots.
func (h *History) Len() int {
	return len(h.states)
}

// Cursor returns the index of the current snapshot.
func (h *History) Cursor() int {
	return h.current
}

// snapshot deep copies elements with selection cleared.
// Selection is view state and is not part of an undo step.
func snapshot(elements []Element) []Element {
	out := make([]Element, len(elements))
	for i, e := range elements {
		out[i] = e.Clone()
		out[i].Selected = false
	}
	return out
}
