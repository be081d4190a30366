package garden

import (
	"github.com/bloodmagesoftware/gardenplan/geom"
)

// HistoryFunc is called whenever undo or redo availability changes.
type HistoryFunc func(canUndo, canRedo bool)

// Store owns the ordered element list and its undo history.
// Later elements are drawn on top of earlier ones.
//
// Every committed mutation records exactly one history snapshot.
// Mutate is the exception: it is meant for continuous gestures which call
// PushHistory once when they end.
type Store struct {
	elements []Element
	nextID   ID
	history  *History

	onHistory HistoryFunc
	onCommit  func()
	canUndo   bool
	canRedo   bool
}

// NewStore creates an empty store with the given history depth.
func NewStore(historyDepth int) *Store {
	return &Store{
		elements: make([]Element, 0),
		nextID:   1,
		history:  NewHistory(historyDepth),
	}
}

// OnHistoryChange registers a callback fired when undo/redo availability changes.
func (s *Store) OnHistoryChange(fn HistoryFunc) {
	s.onHistory = fn
}

// OnCommit registers a callback fired after every committed change, undo and redo included.
func (s *Store) OnCommit(fn func()) {
	s.onCommit = fn
}

// Elements returns the live element list. Callers must not modify it.
func (s *Store) Elements() []Element {
	return s.elements
}

// Len returns the number of live elements.
func (s *Store) Len() int {
	return len(s.elements)
}

// History exposes the snapshot history for inspection.
func (s *Store) History() *History {
	return s.history
}

func (s *Store) index(id ID) int {
	for i := range s.elements {
		if s.elements[i].ID == id {
			return i
		}
	}
	return -1
}

// Get returns a copy of the element with the given id.
func (s *Store) Get(id ID) (Element, bool) {
	i := s.index(id)
	if i < 0 {
		return Element{}, false
	}
	return s.elements[i].Clone(), true
}

// Add appends an element, assigns it a fresh id and records a snapshot.
func (s *Store) Add(e Element) ID {
	id := s.insert(e)
	s.PushHistory()
	return id
}

func (s *Store) insert(e Element) ID {
	e.ID = s.nextID
	s.nextID++
	s.elements = append(s.elements, e)
	return e.ID
}

// Update applies fn to the element with the given id and records a snapshot.
// Unknown ids are ignored.
func (s *Store) Update(id ID, fn func(*Element)) bool {
	if !s.Mutate(id, fn) {
		return false
	}
	s.PushHistory()
	return true
}

// Mutate applies fn to the element with the given id without recording history.
func (s *Store) Mutate(id ID, fn func(*Element)) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	keep := s.elements[i].ID
	fn(&s.elements[i])
	s.elements[i].ID = keep
	return true
}

// Remove deletes the element with the given id. Unknown ids are ignored.
func (s *Store) Remove(id ID) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.elements = append(s.elements[:i], s.elements[i+1:]...)
	s.PushHistory()
	return true
}

// RemoveSelected deletes every selected element and returns how many were removed.
func (s *Store) RemoveSelected() int {
	kept := s.elements[:0]
	removed := 0
	for _, e := range s.elements {
		if e.Selected {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	s.elements = kept
	if removed > 0 {
		s.PushHistory()
	}
	return removed
}

// Clear removes every element.
func (s *Store) Clear() {
	if len(s.elements) == 0 {
		return
	}
	s.elements = make([]Element, 0)
	s.PushHistory()
}

// ReplaceAll swaps the live list for a copy of elements without recording history.
// The id counter moves past every id in the new list so ids are never reused.
func (s *Store) ReplaceAll(elements []Element) {
	s.elements = CloneElements(elements)
	if s.elements == nil {
		s.elements = make([]Element, 0)
	}
	for _, e := range s.elements {
		if e.ID >= s.nextID {
			s.nextID = e.ID + 1
		}
	}
}

// Reset replaces the live list and makes it the new history baseline.
func (s *Store) Reset(elements []Element) {
	s.ReplaceAll(elements)
	s.history.Reset(s.elements)
	s.notifyHistory()
}

// Select marks the element as selected. Without multi every other element is
// deselected first; with multi the selection state of id is toggled.
func (s *Store) Select(id ID, multi bool) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	if multi {
		s.elements[i].Selected = !s.elements[i].Selected
		return true
	}
	for j := range s.elements {
		s.elements[j].Selected = j == i
	}
	return true
}

// DeselectAll clears the selection.
func (s *Store) DeselectAll() {
	for i := range s.elements {
		s.elements[i].Selected = false
	}
}

// SelectAll selects every element.
func (s *Store) SelectAll() {
	for i := range s.elements {
		s.elements[i].Selected = true
	}
}

// SelectWhere selects exactly the elements for which fn returns true.
func (s *Store) SelectWhere(fn func(*Element) bool) int {
	n := 0
	for i := range s.elements {
		s.elements[i].Selected = fn(&s.elements[i])
		if s.elements[i].Selected {
			n++
		}
	}
	return n
}

// Selected returns copies of the selected elements in draw order.
func (s *Store) Selected() []Element {
	var out []Element
	for _, e := range s.elements {
		if e.Selected {
			out = append(out, e.Clone())
		}
	}
	return out
}

// SelectedIDs returns the ids of the selected elements in draw order.
func (s *Store) SelectedIDs() []ID {
	var out []ID
	for _, e := range s.elements {
		if e.Selected {
			out = append(out, e.ID)
		}
	}
	return out
}

// Duplicate copies the given elements, offsets the copies by offset and
// selects only the copies. It returns the new ids.
func (s *Store) Duplicate(ids []ID, offset geom.Vec2) []ID {
	var copies []Element
	for _, id := range ids {
		if i := s.index(id); i >= 0 {
			c := s.elements[i].Clone()
			c.Translate(offset)
			copies = append(copies, c)
		}
	}
	if len(copies) == 0 {
		return nil
	}
	s.DeselectAll()
	out := make([]ID, 0, len(copies))
	for _, c := range copies {
		c.Selected = true
		out = append(out, s.insert(c))
	}
	s.PushHistory()
	return out
}

// TranslateSelected moves every selected element by d and records one snapshot.
func (s *Store) TranslateSelected(d geom.Vec2) bool {
	moved := false
	for i := range s.elements {
		if s.elements[i].Selected {
			s.elements[i].Translate(d)
			moved = true
		}
	}
	if moved {
		s.PushHistory()
	}
	return moved
}

// RotateSelected adds deg to the rotation of every selected element.
func (s *Store) RotateSelected(deg float64) bool {
	rotated := false
	for i := range s.elements {
		if s.elements[i].Selected {
			r := s.elements[i].Rotation + deg
			for r >= 360 {
				r -= 360
			}
			for r < 0 {
				r += 360
			}
			s.elements[i].Rotation = r
			rotated = true
		}
	}
	if rotated {
		s.PushHistory()
	}
	return rotated
}

// PushHistory records a snapshot of the live list.
func (s *Store) PushHistory() {
	if s.history.Push(s.elements) {
		s.commit()
	}
}

// CanUndo reports whether Undo would change anything.
func (s *Store) CanUndo() bool {
	return s.history.CanUndo()
}

// CanRedo reports whether Redo would change anything.
func (s *Store) CanRedo() bool {
	return s.history.CanRedo()
}

// Undo restores the previous snapshot. It is a no-op at the start of history.
func (s *Store) Undo() bool {
	elements, ok := s.history.Undo()
	if !ok {
		return false
	}
	s.restore(elements)
	return true
}

// Redo restores the next snapshot. It is a no-op at the end of history.
func (s *Store) Redo() bool {
	elements, ok := s.history.Redo()
	if !ok {
		return false
	}
	s.restore(elements)
	return true
}

// restore replaces the live list with a snapshot, keeping the selection of
// elements that still exist.
func (s *Store) restore(elements []Element) {
	selected := make(map[ID]bool)
	for _, e := range s.elements {
		if e.Selected {
			selected[e.ID] = true
		}
	}
	s.ReplaceAll(elements)
	for i := range s.elements {
		s.elements[i].Selected = selected[s.elements[i].ID]
	}
	s.commit()
}

func (s *Store) commit() {
	s.notifyHistory()
	if s.onCommit != nil {
		s.onCommit()
	}
}

func (s *Store) notifyHistory() {
	canUndo, canRedo := s.history.CanUndo(), s.history.CanRedo()
	if canUndo == s.canUndo && canRedo == s.canRedo {
		return
	}
	s.canUndo, s.canRedo = canUndo, canRedo
	if s.onHistory != nil {
		s.onHistory(canUndo, canRedo)
	}
}
