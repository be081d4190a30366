package garden

import (
	"math"
	"testing"

	"github.com/bloodmagesoftware/gardenplan/geom"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func rect(x, y, w, h float64) Element {
	return Element{Pos: geom.Pt(x, y), Body: &Rectangle{Size: geom.Size{W: w, H: h}}}
}

func ids(elements []Element) []ID {
	out := make([]ID, len(elements))
	for i, e := range elements {
		out[i] = e.ID
	}
	return out
}

// TestUndoBranchTruncation tests that a new edit after undo destroys the redo branch
func TestUndoBranchTruncation(t *testing.T) {
	s := NewStore(50)

	a := s.Add(rect(0, 0, 10, 10))
	b := s.Add(rect(20, 0, 10, 10))
	if !s.Undo() {
		t.Fatal("expected undo to succeed")
	}
	c := s.Add(rect(40, 0, 10, 10))

	if s.Redo() {
		t.Error("redo must be a no-op after a new edit")
	}
	got := ids(s.Elements())
	if len(got) != 2 || got[0] != a || got[1] != c {
		t.Errorf("live ids = %v, want [%d %d]", got, a, c)
	}
	if c == b {
		t.Error("ids must never be reused")
	}
}

// TestHistoryDepthBound tests that history never grows past its depth
func TestHistoryDepthBound(t *testing.T) {
	const depth = 10
	s := NewStore(depth)

	for i := 0; i < depth*3; i++ {
		s.Add(rect(float64(i), 0, 5, 5))
		if s.History().Len() > depth {
			t.Fatalf("history length %d exceeds %d after %d edits", s.History().Len(), depth, i+1)
		}
		if s.History().Cursor() != s.History().Len()-1 {
			t.Fatalf("cursor %d not at end of %d snapshots", s.History().Cursor(), s.History().Len())
		}
	}

	undos := 0
	for s.Undo() {
		undos++
	}
	if undos != depth-1 {
		t.Errorf("got %d undos, want %d", undos, depth-1)
	}
	// The oldest reachable state still holds the edits that were trimmed away.
	if s.Len() != depth*3-depth+1 {
		t.Errorf("oldest snapshot has %d elements, want %d", s.Len(), depth*3-depth+1)
	}
}

func TestUndoRedoEnds(t *testing.T) {
	s := NewStore(50)
	if s.Undo() || s.Redo() {
		t.Fatal("undo and redo must be no-ops on an empty history")
	}

	s.Add(rect(0, 0, 1, 1))
	if !s.Undo() {
		t.Fatal("expected undo")
	}
	if s.Len() != 0 {
		t.Errorf("expected empty canvas after undo, got %d", s.Len())
	}
	if s.Undo() {
		t.Error("undo at the baseline must be a no-op")
	}
	if !s.Redo() || s.Len() != 1 {
		t.Error("expected redo to restore the element")
	}
	if s.Redo() {
		t.Error("redo at the end must be a no-op")
	}
}

func TestMissingIDs(t *testing.T) {
	s := NewStore(50)
	s.Add(rect(0, 0, 1, 1))
	before := s.History().Len()

	if s.Update(999, func(e *Element) { e.Pos = geom.Pt(5, 5) }) {
		t.Error("update of a missing id must report false")
	}
	if s.Remove(999) {
		t.Error("remove of a missing id must report false")
	}
	if s.Select(999, false) {
		t.Error("select of a missing id must report false")
	}
	if s.History().Len() != before {
		t.Error("missing ids must not record history")
	}
}

func TestSelection(t *testing.T) {
	s := NewStore(50)
	a := s.Add(rect(0, 0, 1, 1))
	b := s.Add(rect(5, 0, 1, 1))

	t.Run("Single select is exclusive", func(t *testing.T) {
		s.Select(a, false)
		s.Select(b, false)
		got := s.SelectedIDs()
		if len(got) != 1 || got[0] != b {
			t.Errorf("selected = %v, want [%d]", got, b)
		}
	})

	t.Run("Multi select toggles", func(t *testing.T) {
		s.Select(a, true)
		if len(s.SelectedIDs()) != 2 {
			t.Errorf("expected two selected, got %v", s.SelectedIDs())
		}
		s.Select(a, true)
		if len(s.SelectedIDs()) != 1 {
			t.Errorf("expected one selected, got %v", s.SelectedIDs())
		}
	})

	t.Run("RemoveSelected keeps selection consistent", func(t *testing.T) {
		s.SelectAll()
		if n := s.RemoveSelected(); n != 2 {
			t.Errorf("removed %d, want 2", n)
		}
		if len(s.SelectedIDs()) != 0 {
			t.Error("selection must not reference removed elements")
		}
	})

	t.Run("Selection is not an undo step", func(t *testing.T) {
		s2 := NewStore(50)
		id := s2.Add(rect(0, 0, 1, 1))
		before := s2.History().Len()
		s2.Select(id, false)
		s2.PushHistory()
		if s2.History().Len() != before {
			t.Error("selection change alone must not record a snapshot")
		}
	})
}

func TestMutateThenPushOnce(t *testing.T) {
	s := NewStore(50)
	id := s.Add(rect(0, 0, 10, 10))
	before := s.History().Len()

	for i := 1; i <= 20; i++ {
		s.Mutate(id, func(e *Element) { e.Pos = geom.Pt(float64(i), 0) })
	}
	if s.History().Len() != before {
		t.Fatal("mutate must not record history")
	}
	s.PushHistory()
	if s.History().Len() != before+1 {
		t.Errorf("history grew by %d, want 1", s.History().Len()-before)
	}
}

func TestHistoryNotification(t *testing.T) {
	s := NewStore(50)
	var calls [][2]bool
	s.OnHistoryChange(func(canUndo, canRedo bool) {
		calls = append(calls, [2]bool{canUndo, canRedo})
	})

	s.Add(rect(0, 0, 1, 1))
	s.Add(rect(1, 0, 1, 1))
	s.Undo()
	s.Undo()
	s.Redo()

	want := [][2]bool{
		{true, false},
		{true, true},
		{false, true},
		{true, true},
	}
	if len(calls) != len(want) {
		t.Fatalf("got %d notifications %v, want %v", len(calls), calls, want)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Errorf("notification %d = %v, want %v", i, calls[i], want[i])
		}
	}
}

func TestDuplicate(t *testing.T) {
	s := NewStore(50)
	path := Element{Body: &TerrainPath{Points: []geom.Vec2{geom.Pt(0, 0), geom.Pt(10, 0)}, Thickness: 4}}
	id := s.Add(path)

	copies := s.Duplicate([]ID{id}, geom.Pt(50, 50))
	if len(copies) != 1 {
		t.Fatalf("got %d copies", len(copies))
	}
	dup, _ := s.Get(copies[0])
	orig, _ := s.Get(id)
	if !dup.Selected || orig.Selected {
		t.Error("only the copy must be selected")
	}
	dp := dup.Body.(*TerrainPath)
	op := orig.Body.(*TerrainPath)
	if dp.Points[0] != geom.Pt(50, 50) || op.Points[0] != geom.Pt(0, 0) {
		t.Errorf("copy points %v, original points %v", dp.Points, op.Points)
	}
}

func TestReplaceAllRaisesIDCounter(t *testing.T) {
	s := NewStore(50)
	s.Reset([]Element{{ID: 41, Body: &Plant{}}})
	id := s.Add(rect(0, 0, 1, 1))
	if id <= 41 {
		t.Errorf("new id %d must be above loaded ids", id)
	}
	if s.CanRedo() || !s.CanUndo() {
		t.Error("reset must start a new baseline")
	}
}
