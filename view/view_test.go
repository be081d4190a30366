package view

import (
	"math"
	"math/rand"
	"testing"

	"github.com/bloodmagesoftware/gardenplan/geom"
)

const tolerance = 1e-6

func near(a, b geom.Vec2) bool {
	return math.Abs(a.X-b.X) < tolerance && math.Abs(a.Y-b.Y) < tolerance
}

// TestRoundTrip tests that screen->world->screen conversion is lossless
func TestRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 500; i++ {
		tr := Transform{
			Zoom: 1 + rng.Float64()*800,
			Pan:  geom.Pt(rng.Float64()*2000-1000, rng.Float64()*2000-1000),
		}
		p := geom.Pt(rng.Float64()*5000-2500, rng.Float64()*5000-2500)
		if got := tr.ScreenToWorld(tr.WorldToScreen(p)); !near(got, p) {
			t.Fatalf("transform %+v: round trip of %v gave %v", tr, p, got)
		}
		if got := tr.WorldToScreen(tr.ScreenToWorld(p)); !near(got, p) {
			t.Fatalf("transform %+v: inverse round trip of %v gave %v", tr, p, got)
		}
	}
}

// TestZoomClamp tests that no sequence of zoom operations leaves the limits
func TestZoomClamp(t *testing.T) {
	c := NewCamera(DefaultLimits)
	rng := rand.New(rand.NewSource(2))

	for i := 0; i < 1000; i++ {
		switch rng.Intn(5) {
		case 0:
			c.ZoomIn()
		case 1:
			c.ZoomOut()
		case 2:
			c.SetZoom(rng.Float64()*2000 - 500)
		case 3:
			c.Wheel(geom.Pt(rng.Float64()*800, rng.Float64()*600), rng.Float64()*2-1)
		case 4:
			c.Pinch(geom.Pt(0, 0), geom.Pt(100, 0), geom.Pt(0, 0), geom.Pt(rng.Float64()*1000, 0))
		}
		if c.Zoom < c.Limits.Min || c.Zoom > c.Limits.Max {
			t.Fatalf("zoom %v escaped [%v, %v] at step %d", c.Zoom, c.Limits.Min, c.Limits.Max, i)
		}
	}
}

// TestFocalZoom tests that the world point under the cursor survives a wheel zoom
func TestFocalZoom(t *testing.T) {
	testCases := []struct {
		Name   string
		Start  Transform
		Cursor geom.Vec2
		Delta  float64
	}{
		{Name: "Zoom in at origin", Start: Identity, Cursor: geom.Pt(0, 0), Delta: -1},
		{Name: "Zoom in off center", Start: Transform{Zoom: 100, Pan: geom.Pt(30, -20)}, Cursor: geom.Pt(400, 250), Delta: -1},
		{Name: "Zoom out off center", Start: Transform{Zoom: 175, Pan: geom.Pt(-300, 80)}, Cursor: geom.Pt(123, 456), Delta: 1},
		{Name: "Zoom out at minimum", Start: Transform{Zoom: 10, Pan: geom.Pt(5, 5)}, Cursor: geom.Pt(50, 60), Delta: 1},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			c := NewCamera(DefaultLimits)
			c.Transform = tc.Start
			before := c.ScreenToWorld(tc.Cursor)
			c.Wheel(tc.Cursor, tc.Delta)
			after := c.ScreenToWorld(tc.Cursor)
			if !near(before, after) {
				t.Errorf("world point moved from %v to %v", before, after)
			}
		})
	}
}

func TestZoomToFit(t *testing.T) {
	t.Run("Empty canvas resets", func(t *testing.T) {
		c := NewCamera(DefaultLimits)
		c.Transform = Transform{Zoom: 250, Pan: geom.Pt(40, 40)}
		c.ZoomToFit(geom.Rect{}, geom.Size{W: 800, H: 600}, DefaultFitPadding)
		if c.Zoom != 100 || c.Pan != (geom.Vec2{}) {
			t.Errorf("got zoom %v pan %v, want 100 and zero", c.Zoom, c.Pan)
		}
	})

	t.Run("Content is centered", func(t *testing.T) {
		c := NewCamera(DefaultLimits)
		bounds := geom.XYWH(100, 100, 200, 100)
		viewport := geom.Size{W: 800, H: 600}
		c.ZoomToFit(bounds, viewport, DefaultFitPadding)

		// (800-100)/200 = 3.5, (600-100)/100 = 5 -> 350%
		if math.Abs(c.Zoom-350) > tolerance {
			t.Errorf("zoom = %v, want 350", c.Zoom)
		}
		center := c.WorldToScreen(bounds.Center())
		if !near(center, geom.Pt(400, 300)) {
			t.Errorf("content center on screen = %v, want (400,300)", center)
		}
	})

	t.Run("Huge zoom is clamped", func(t *testing.T) {
		c := NewCamera(DefaultLimits)
		c.ZoomToFit(geom.XYWH(0, 0, 1, 1), geom.Size{W: 800, H: 600}, DefaultFitPadding)
		if c.Zoom != DefaultLimits.Max {
			t.Errorf("zoom = %v, want %v", c.Zoom, DefaultLimits.Max)
		}
	})
}

func TestSetZoomNotifies(t *testing.T) {
	c := NewCamera(DefaultLimits)
	var got []float64
	c.OnChange = func(z float64) { got = append(got, z) }
	c.SetZoom(1000)
	c.ZoomOut()
	if len(got) != 2 || got[0] != 400 || got[1] != 375 {
		t.Errorf("notifications = %v", got)
	}
}

func TestPinch(t *testing.T) {
	c := NewCamera(DefaultLimits)
	// Fingers move apart to twice the distance and the midpoint moves right by 10.
	c.Pinch(geom.Pt(100, 100), geom.Pt(200, 100), geom.Pt(60, 100), geom.Pt(260, 100))
	if math.Abs(c.Zoom-150) > tolerance {
		t.Errorf("zoom = %v, want 150", c.Zoom)
	}
	// The world point under the old midpoint now sits under the new midpoint.
	if got := c.WorldToScreen(geom.Pt(150, 100)); !near(got, geom.Pt(160, 100)) {
		t.Errorf("midpoint maps to %v, want (160,100)", got)
	}
}

func TestPixelsPerMeter(t *testing.T) {
	testCases := []struct {
		Name   string
		M      Metrics
		Expect float64
	}{
		{Name: "Width limited", M: Metrics{Viewport: geom.Size{W: 500, H: 600}, Area: geom.Size{W: 50, H: 30}}, Expect: 10},
		{Name: "Height limited", M: Metrics{Viewport: geom.Size{W: 1000, H: 300}, Area: geom.Size{W: 50, H: 30}}, Expect: 10},
		{Name: "Unknown viewport", M: Metrics{Area: geom.Size{W: 50, H: 30}}, Expect: DefaultPixelsPerMeter},
	}
	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			if got := tc.M.PixelsPerMeter(); got != tc.Expect {
				t.Errorf("got %v, want %v", got, tc.Expect)
			}
		})
	}
}
