package geom

import (
	"math"
	"testing"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// TestSegmentDistance tests the clamped point to segment distance
func TestSegmentDistance(t *testing.T) {
	a := Pt(0, 0)
	b := Pt(10, 0)

	testCases := []struct {
		Name   string
		Point  Vec2
		Expect float64
	}{
		{Name: "On the segment", Point: Pt(5, 0), Expect: 0},
		{Name: "Perpendicular above the midpoint", Point: Pt(5, 3), Expect: 3},
		{Name: "Before the start cap", Point: Pt(-3, 4), Expect: 5},
		{Name: "After the end cap", Point: Pt(13, 4), Expect: 5},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			got := SegmentDistance(tc.Point, a, b)
			if !approx(got, tc.Expect) {
				t.Errorf("SegmentDistance(%v) = %f, want %f", tc.Point, got, tc.Expect)
			}
		})
	}

	t.Run("Zero length segment", func(t *testing.T) {
		got := SegmentDistance(Pt(3, 4), a, a)
		if !approx(got, 5) {
			t.Errorf("got %f, want 5", got)
		}
	})
}

// TestSnapIdempotent tests that snapping a snapped point is a no-op
func TestSnapIdempotent(t *testing.T) {
	steps := []float64{1, 10, 7.5, 0.3, 20}
	points := []Vec2{Pt(0, 0), Pt(13.7, -4.2), Pt(-99.99, 1234.5), Pt(5, 5), Pt(0.15, -0.15)}

	for _, step := range steps {
		for _, p := range points {
			once := SnapVec(p, step)
			twice := SnapVec(once, step)
			if once != twice {
				t.Errorf("step %v: snap(%v) = %v, snap(snap) = %v", step, p, once, twice)
			}
		}
	}

	if got := Snap(3.3, 0); got != 3.3 {
		t.Errorf("Snap with zero step = %v, want 3.3", got)
	}
}

func TestRect(t *testing.T) {
	r := XYWH(0, 0, 10, 10)

	t.Run("Contains edges", func(t *testing.T) {
		if !r.Contains(Pt(10, 10)) || !r.Contains(Pt(0, 0)) {
			t.Error("expected corners to be contained")
		}
		if r.Contains(Pt(10.01, 5)) {
			t.Error("expected point outside")
		}
	})

	t.Run("Overlaps", func(t *testing.T) {
		if !r.Overlaps(XYWH(5, 5, 10, 10)) {
			t.Error("expected overlap")
		}
		if r.Overlaps(XYWH(10, 0, 5, 5)) {
			t.Error("touching edges must not overlap")
		}
	})

	t.Run("Span normalizes corners", func(t *testing.T) {
		s := Span(Pt(10, 2), Pt(4, 8))
		if s.Min != Pt(4, 2) || s.Max != Pt(10, 8) {
			t.Errorf("unexpected span %v", s)
		}
	})

	t.Run("Union with empty rect", func(t *testing.T) {
		if got := (Rect{}).Union(r); got != r {
			t.Errorf("got %v", got)
		}
	})
}

func TestBoundsOf(t *testing.T) {
	if _, ok := BoundsOf(nil); ok {
		t.Fatal("expected no bounds for empty input")
	}
	r, ok := BoundsOf([]Vec2{Pt(3, -1), Pt(-2, 4), Pt(1, 1)})
	if !ok {
		t.Fatal("expected bounds")
	}
	if r.Min != Pt(-2, -1) || r.Max != Pt(3, 4) {
		t.Errorf("unexpected bounds %v", r)
	}
}

func TestDashes(t *testing.T) {
	line := []Vec2{Pt(0, 0), Pt(20, 0)}
	dashes := Dashes(line, 5, 3)
	// 0-5, 8-13, 16-20
	if len(dashes) != 3 {
		t.Fatalf("got %d dashes, want 3", len(dashes))
	}
	if !approx(dashes[1][0].X, 8) || !approx(dashes[1][len(dashes[1])-1].X, 13) {
		t.Errorf("unexpected second dash %v", dashes[1])
	}
	if !approx(dashes[2][len(dashes[2])-1].X, 20) {
		t.Errorf("unexpected last dash %v", dashes[2])
	}
}
