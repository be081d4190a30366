package interact

import (
	"math"
	"testing"
	"time"

	"github.com/bloodmagesoftware/gardenplan/catalog"
	"github.com/bloodmagesoftware/gardenplan/garden"
	"github.com/bloodmagesoftware/gardenplan/geom"
	"github.com/bloodmagesoftware/gardenplan/view"
)

type recorder struct {
	messages []string
	levels   []Level
}

func (r *recorder) Notify(level Level, msg string) {
	r.levels = append(r.levels, level)
	r.messages = append(r.messages, msg)
}

// newMachine returns a machine over a 500x300 viewport showing a 50x30 m
// area, so one meter is 10 pixels.
func newMachine(snap bool) (*Machine, *garden.Store, *view.Camera, *recorder) {
	store := garden.NewStore(garden.DefaultHistoryDepth)
	camera := view.NewCamera(view.DefaultLimits)
	rec := &recorder{}
	m := New(store, camera, Options{
		Config: DefaultConfig(),
		Metrics: view.Metrics{
			Viewport:   geom.Size{W: 500, H: 300},
			Area:       geom.Size{W: 50, H: 30},
			GridMeters: 2,
		},
		Notifier: rec,
		ShowGrid: true,
		Snap:     snap,
	})
	return m, store, camera, rec
}

func click(m *Machine, x, y float64) {
	m.Pointer(PointerEvent{Kind: PointerDown, Position: geom.Pt(x, y)})
	m.Pointer(PointerEvent{Kind: PointerUp, Position: geom.Pt(x, y)})
}

func drag(m *Machine, points ...geom.Vec2) {
	m.Pointer(PointerEvent{Kind: PointerDown, Position: points[0]})
	for _, p := range points[1:] {
		m.Pointer(PointerEvent{Kind: PointerMove, Position: p})
	}
	m.Pointer(PointerEvent{Kind: PointerUp, Position: points[len(points)-1]})
}

func item(t *testing.T, id string) catalog.Item {
	t.Helper()
	it, ok := catalog.Default().Find(id)
	if !ok {
		t.Fatalf("catalog item %q not found", id)
	}
	return it
}

func addRect(store *garden.Store, x, y, w, h float64) garden.ID {
	return store.Add(garden.Element{Pos: geom.Pt(x, y), Body: &garden.Rectangle{Size: geom.Size{W: w, H: h}}})
}

func TestPlaceAndSelectPlant(t *testing.T) {
	m, store, _, _ := newMachine(true)
	if ppm := m.PixelsPerMeter(); ppm != 10 {
		t.Fatalf("PixelsPerMeter = %v, want 10", ppm)
	}

	m.Arm(item(t, "veg-1"))
	click(m, 103, 97)

	if store.Len() != 1 {
		t.Fatalf("expected one element, got %d", store.Len())
	}
	e := store.Elements()[0]
	if e.Kind() != garden.KindPlant {
		t.Errorf("kind = %s, want plant", e.Kind())
	}
	if e.Pos != geom.Pt(100, 100) {
		t.Errorf("position = %v, want snapped (100,100)", e.Pos)
	}
	if e.Selected {
		t.Error("a new plant must not be selected")
	}
	if _, armed := m.Armed(); !armed {
		t.Error("plants stay armed after placement")
	}

	// A click on the plant selects it instead of planting another one
	click(m, 101, 101)
	if store.Len() != 1 {
		t.Errorf("expected one element after selecting, got %d", store.Len())
	}
	if !store.Elements()[0].Selected {
		t.Error("expected the plant to be selected")
	}
	if store.History().Len() != 2 {
		t.Errorf("history has %d states, want 2", store.History().Len())
	}
}

func TestPlacementOverlap(t *testing.T) {
	m, store, _, rec := newMachine(false)
	coop := item(t, "galinheiro")

	m.Arm(coop)
	click(m, 100, 100)
	if store.Len() != 1 {
		t.Fatalf("expected the structure to be placed")
	}
	if _, armed := m.Armed(); armed {
		t.Error("structures are disarmed after placement")
	}
	b := store.Elements()[0].Bounds(m.PixelsPerMeter())
	if b != geom.XYWH(80, 85, 40, 30) {
		t.Errorf("bounds = %v", b)
	}

	m.Arm(coop)
	click(m, 135, 100)
	if store.Len() != 1 {
		t.Errorf("overlapping placement must be rejected, got %d elements", store.Len())
	}
	if len(rec.levels) == 0 || rec.levels[len(rec.levels)-1] != LevelWarning {
		t.Errorf("expected a warning, got %v", rec.messages)
	}

	t.Run("Terrain does not block", func(t *testing.T) {
		m, store, _, _ := newMachine(false)
		store.Add(garden.Element{Body: &garden.TerrainArea{Size: geom.Size{W: 400, H: 200}}})
		if id := m.place(item(t, "veg-1"), geom.Pt(100, 100)); id == 0 {
			t.Error("a plant on a terrain patch must be placed")
		}
		if store.Len() != 2 {
			t.Errorf("len = %d, want 2", store.Len())
		}
	})
}

func TestDragRecordsOneSnapshot(t *testing.T) {
	m, store, _, _ := newMachine(false)
	id := addRect(store, 50, -30, 40, 40)
	before := store.History().Len()

	drag(m, geom.Pt(60, -20), geom.Pt(100, 20), geom.Pt(130, 50), geom.Pt(160, 80))

	e, _ := store.Get(id)
	if e.Pos != geom.Pt(150, 70) {
		t.Errorf("position = %v, want (150,70)", e.Pos)
	}
	if got := store.History().Len(); got != before+1 {
		t.Errorf("history grew by %d, want 1", got-before)
	}
	if m.Mode() != ModeIdle {
		t.Errorf("mode = %s after release", m.Mode())
	}

	store.Undo()
	e, _ = store.Get(id)
	if e.Pos != geom.Pt(50, -30) {
		t.Errorf("undo position = %v, want (50,-30)", e.Pos)
	}

	t.Run("Click without movement adds nothing", func(t *testing.T) {
		m, store, _, _ := newMachine(false)
		addRect(store, 0, 0, 40, 40)
		before := store.History().Len()
		click(m, 10, 10)
		if store.History().Len() != before {
			t.Error("a plain click must not record a snapshot")
		}
	})
}

func TestDragIsCoalesced(t *testing.T) {
	m, store, _, _ := newMachine(false)
	id := addRect(store, 0, 0, 40, 40)

	m.Pointer(PointerEvent{Kind: PointerDown, Position: geom.Pt(10, 10)})
	m.Pointer(PointerEvent{Kind: PointerMove, Position: geom.Pt(20, 10)})
	m.Pointer(PointerEvent{Kind: PointerMove, Position: geom.Pt(30, 10)})

	e, _ := store.Get(id)
	if e.Pos != geom.Pt(0, 0) {
		t.Errorf("element moved before the frame: %v", e.Pos)
	}
	m.Frame(time.Unix(10, 0))
	e, _ = store.Get(id)
	if e.Pos != geom.Pt(20, 0) {
		t.Errorf("position after frame = %v, want (20,0)", e.Pos)
	}
	m.Pointer(PointerEvent{Kind: PointerUp, Position: geom.Pt(30, 10)})
}

func TestFreehandBrush(t *testing.T) {
	m, store, _, _ := newMachine(true)
	m.Arm(item(t, "riacho"))
	if m.Tool() != ToolTerrain {
		t.Fatalf("arming terrain must select the terrain tool, got %s", m.Tool())
	}

	m.Pointer(PointerEvent{Kind: PointerDown, Position: geom.Pt(0, 0)})
	for _, p := range []geom.Vec2{geom.Pt(10, 0), geom.Pt(20, 0), geom.Pt(22, 0), geom.Pt(30, 5)} {
		m.Pointer(PointerEvent{Kind: PointerMove, Position: p})
	}
	if m.Preview() == nil {
		t.Fatal("expected a preview while painting")
	}
	m.Pointer(PointerEvent{Kind: PointerUp, Position: geom.Pt(30, 5)})

	if store.Len() != 1 {
		t.Fatalf("expected one element, got %d", store.Len())
	}
	e := store.Elements()[0]
	path, ok := e.Body.(*garden.TerrainPath)
	if !ok {
		t.Fatalf("body = %T, want *garden.TerrainPath", e.Body)
	}
	if len(path.Points) != 4 {
		t.Errorf("recorded %d points, want 4", len(path.Points))
	}
	if path.Thickness != 30 {
		t.Errorf("thickness = %v, want 30", path.Thickness)
	}
	if e.Pos != path.Points[0] {
		t.Errorf("position %v must be the first point", e.Pos)
	}
	if e.RealWorld.W != 3 {
		t.Errorf("real world width = %v, want 3", e.RealWorld.W)
	}
	if m.Preview() != nil {
		t.Error("preview must be cleared")
	}

	t.Run("A single point is discarded", func(t *testing.T) {
		m, store, _, _ := newMachine(false)
		m.Arm(item(t, "riacho"))
		drag(m, geom.Pt(0, 0), geom.Pt(2, 0))
		if store.Len() != 0 {
			t.Errorf("expected nothing, got %d elements", store.Len())
		}
	})
}

func TestDrawShapes(t *testing.T) {
	testCases := []struct {
		Name  string
		Key   string
		To    geom.Vec2
		Added bool
	}{
		{Name: "Rectangle", Key: "r", To: geom.Pt(60, 40), Added: true},
		{Name: "Tiny rectangle", Key: "r", To: geom.Pt(5, 5), Added: false},
		{Name: "Flat rectangle", Key: "r", To: geom.Pt(60, 0), Added: false},
		{Name: "Circle", Key: "c", To: geom.Pt(60, 60), Added: true},
		{Name: "Small circle", Key: "c", To: geom.Pt(15, 15), Added: false},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			m, store, _, _ := newMachine(false)
			m.Key(KeyEvent{Name: tc.Key})
			drag(m, geom.Pt(0, 0), tc.To)
			if got := store.Len() == 1; got != tc.Added {
				t.Errorf("added = %v, want %v", got, tc.Added)
			}
		})
	}

	t.Run("Circle is centered on the drag", func(t *testing.T) {
		m, store, _, _ := newMachine(false)
		m.SetTool(ToolCircle)
		drag(m, geom.Pt(0, 0), geom.Pt(60, 40))
		e := store.Elements()[0]
		c := e.Body.(*garden.Circle)
		if c.Radius != 20 || e.Pos != geom.Pt(10, 0) {
			t.Errorf("circle r=%v at %v", c.Radius, e.Pos)
		}
	})
}

func TestResizeMinimum(t *testing.T) {
	m, store, _, _ := newMachine(false)
	id := addRect(store, 0, 0, 100, 100)
	store.Select(id, false)
	before := store.History().Len()

	m.Pointer(PointerEvent{Kind: PointerDown, Position: geom.Pt(100, 100)})
	if m.Mode() != ModeResizing {
		t.Fatalf("mode = %s, want resizing", m.Mode())
	}
	m.Pointer(PointerEvent{Kind: PointerMove, Position: geom.Pt(-500, -500)})
	m.Pointer(PointerEvent{Kind: PointerUp, Position: geom.Pt(-500, -500)})

	e, _ := store.Get(id)
	r := e.Body.(*garden.Rectangle)
	if r.Size != (geom.Size{W: 20, H: 20}) || e.Pos != geom.Pt(0, 0) {
		t.Errorf("got %v at %v, want 20x20 at the origin", r.Size, e.Pos)
	}
	if store.History().Len() != before+1 {
		t.Error("resize must record exactly one snapshot")
	}

	t.Run("North west keeps the far corner", func(t *testing.T) {
		m, store, _, _ := newMachine(false)
		id := addRect(store, 0, 0, 100, 100)
		store.Select(id, false)
		drag(m, geom.Pt(0, 0), geom.Pt(30, 20))
		e, _ := store.Get(id)
		b := e.Bounds(m.PixelsPerMeter())
		if b != geom.XYWH(30, 20, 70, 80) {
			t.Errorf("bounds = %v", b)
		}
	})

	t.Run("Plant resize updates the real world size", func(t *testing.T) {
		m, store, _, _ := newMachine(false)
		id := store.Add(garden.Element{Pos: geom.Pt(100, 100), RealWorld: geom.Size{W: 4, H: 4}, Body: &garden.Plant{}})
		store.Select(id, false)
		drag(m, geom.Pt(120, 120), geom.Pt(140, 140))
		e, _ := store.Get(id)
		if e.RealWorld != (geom.Size{W: 6, H: 6}) || e.Pos != geom.Pt(110, 110) {
			t.Errorf("got %v at %v", e.RealWorld, e.Pos)
		}
	})
}

func TestResizeKinds(t *testing.T) {
	t.Run("Path scales points and thickness", func(t *testing.T) {
		m, store, _, _ := newMachine(false)
		id := store.Add(garden.Element{Body: &garden.TerrainPath{
			Points:    []geom.Vec2{geom.Pt(0, 0), geom.Pt(100, 0)},
			Thickness: 10,
		}})
		store.Select(id, false)

		// Straight paths get a 10 px tall box, clamped to the minimum on resize
		drag(m, geom.Pt(100, 10), geom.Pt(200, 10))

		e, _ := store.Get(id)
		p := e.Body.(*garden.TerrainPath)
		want := []geom.Vec2{geom.Pt(0, 0), geom.Pt(200, 0)}
		if len(p.Points) != 2 || p.Points[0] != want[0] || p.Points[1] != want[1] {
			t.Errorf("points = %v, want %v", p.Points, want)
		}
		if p.Thickness != 20 {
			t.Errorf("thickness = %v, want 20", p.Thickness)
		}
		if e.Pos != p.Points[0] {
			t.Errorf("position %v must follow the first point", e.Pos)
		}
	})

	t.Run("Path thickness follows the smaller factor", func(t *testing.T) {
		m, store, _, _ := newMachine(false)
		id := store.Add(garden.Element{Body: &garden.TerrainPath{
			Points:    []geom.Vec2{geom.Pt(0, 0), geom.Pt(100, 100)},
			Thickness: 10,
		}})
		store.Select(id, false)
		drag(m, geom.Pt(100, 100), geom.Pt(300, 150))

		e, _ := store.Get(id)
		p := e.Body.(*garden.TerrainPath)
		if p.Points[1] != geom.Pt(300, 150) {
			t.Errorf("far point = %v, want (300,150)", p.Points[1])
		}
		if p.Thickness != 15 {
			t.Errorf("thickness = %v, want 15", p.Thickness)
		}
	})

	testCases := []struct {
		Name string
		Body garden.Body
	}{
		{Name: "Circle", Body: &garden.Circle{Radius: 50}},
		{Name: "Terrain disc", Body: &garden.TerrainDisc{Radius: 50}},
	}
	for _, tc := range testCases {
		t.Run(tc.Name+" keeps the smaller side", func(t *testing.T) {
			m, store, _, _ := newMachine(false)
			id := store.Add(garden.Element{Body: tc.Body})
			store.Select(id, false)

			// North west handle to (20,40) leaves an 80x60 box
			drag(m, geom.Pt(0, 0), geom.Pt(20, 40))

			e, _ := store.Get(id)
			var radius float64
			switch b := e.Body.(type) {
			case *garden.Circle:
				radius = b.Radius
			case *garden.TerrainDisc:
				radius = b.Radius
			}
			if radius != 30 {
				t.Errorf("radius = %v, want 30", radius)
			}
			if e.Pos != geom.Pt(20, 40) {
				t.Errorf("anchor = %v, want (20,40)", e.Pos)
			}
		})
	}
}

func TestElementsWinOverDrawingTools(t *testing.T) {
	testCases := []struct {
		Name string
		Tool Tool
	}{
		{Name: "Rectangle", Tool: ToolRectangle},
		{Name: "Circle", Tool: ToolCircle},
		{Name: "Terrain", Tool: ToolTerrain},
	}
	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			m, store, _, _ := newMachine(false)
			id := addRect(store, 0, 0, 100, 100)
			m.SetTool(tc.Tool)

			m.Pointer(PointerEvent{Kind: PointerDown, Position: geom.Pt(50, 50)})
			if m.Mode() != ModeDragging {
				t.Fatalf("mode = %s, want dragging", m.Mode())
			}
			e, _ := store.Get(id)
			if !e.Selected {
				t.Error("the clicked element must be selected")
			}
			m.Pointer(PointerEvent{Kind: PointerMove, Position: geom.Pt(90, 90)})
			m.Pointer(PointerEvent{Kind: PointerUp, Position: geom.Pt(90, 90)})

			if store.Len() != 1 {
				t.Errorf("len = %d, no shape may be drawn over the element", store.Len())
			}
			e, _ = store.Get(id)
			if e.Pos != geom.Pt(40, 40) {
				t.Errorf("position = %v, want (40,40)", e.Pos)
			}
			if m.Tool() != tc.Tool {
				t.Errorf("tool changed to %s", m.Tool())
			}
		})
	}

	t.Run("Handles resize under the rectangle tool", func(t *testing.T) {
		m, store, _, _ := newMachine(false)
		id := addRect(store, 0, 0, 100, 100)
		store.Select(id, false)
		m.SetTool(ToolRectangle)
		drag(m, geom.Pt(100, 100), geom.Pt(150, 120))

		e, _ := store.Get(id)
		if r := e.Body.(*garden.Rectangle); r.Size != (geom.Size{W: 150, H: 120}) {
			t.Errorf("size = %v, want 150x120", r.Size)
		}
		if store.Len() != 1 {
			t.Errorf("len = %d", store.Len())
		}
	})

	t.Run("Empty space still draws", func(t *testing.T) {
		m, store, _, _ := newMachine(false)
		id := addRect(store, 0, 0, 100, 100)
		store.Select(id, false)
		m.SetTool(ToolRectangle)
		drag(m, geom.Pt(200, 150), geom.Pt(260, 200))

		if store.Len() != 2 {
			t.Errorf("len = %d, want 2", store.Len())
		}
		e, _ := store.Get(id)
		if e.Selected {
			t.Error("drawing clears the selection")
		}
	})
}

func TestEscapeAborts(t *testing.T) {
	m, store, _, _ := newMachine(false)
	id := addRect(store, 50, -30, 40, 40)
	before := store.History().Len()

	m.Pointer(PointerEvent{Kind: PointerDown, Position: geom.Pt(60, -20)})
	m.Pointer(PointerEvent{Kind: PointerMove, Position: geom.Pt(160, 80)})
	m.Frame(time.Unix(10, 0))
	if e, _ := store.Get(id); e.Pos != geom.Pt(150, 70) {
		t.Fatalf("drag not applied: %v", e.Pos)
	}

	m.Key(KeyEvent{Name: KeyEscape})
	e, _ := store.Get(id)
	if e.Pos != geom.Pt(50, -30) {
		t.Errorf("position = %v, want restored (50,-30)", e.Pos)
	}
	if e.Selected {
		t.Error("escape clears the selection")
	}
	if m.Mode() != ModeIdle {
		t.Errorf("mode = %s", m.Mode())
	}
	if store.History().Len() != before {
		t.Error("an aborted drag must not record history")
	}

	// The late release after an abort is a no-op
	m.Pointer(PointerEvent{Kind: PointerUp, Position: geom.Pt(160, 80)})
	if e, _ := store.Get(id); e.Pos != geom.Pt(50, -30) {
		t.Errorf("release after abort moved the element to %v", e.Pos)
	}
}

func TestPanning(t *testing.T) {
	m, _, camera, _ := newMachine(false)
	m.Key(KeyEvent{Name: "m"})
	if m.Tool() != ToolMove {
		t.Fatalf("tool = %s", m.Tool())
	}

	m.Pointer(PointerEvent{Kind: PointerDown, Position: geom.Pt(0, 0)})
	m.Pointer(PointerEvent{Kind: PointerMove, Position: geom.Pt(10, 5)})
	m.Pointer(PointerEvent{Kind: PointerMove, Position: geom.Pt(20, 10)})
	if camera.Pan != (geom.Vec2{}) {
		t.Errorf("pan applied before the frame: %v", camera.Pan)
	}
	m.Frame(time.Unix(10, 0))
	if camera.Pan != geom.Pt(20, 10) {
		t.Errorf("pan = %v, want (20,10)", camera.Pan)
	}
	m.Pointer(PointerEvent{Kind: PointerMove, Position: geom.Pt(25, 10)})
	m.Pointer(PointerEvent{Kind: PointerUp, Position: geom.Pt(25, 10)})
	if camera.Pan != geom.Pt(25, 10) {
		t.Errorf("pan after release = %v, want (25,10)", camera.Pan)
	}

	t.Run("Space pans with any tool", func(t *testing.T) {
		m, store, camera, _ := newMachine(false)
		addRect(store, 0, 0, 100, 100)
		m.Key(KeyEvent{Name: KeySpace})
		drag(m, geom.Pt(50, 50), geom.Pt(80, 50))
		m.Key(KeyEvent{Name: KeySpace, Release: true})
		if camera.Pan != geom.Pt(30, 0) {
			t.Errorf("pan = %v", camera.Pan)
		}
		if e := store.Elements()[0]; e.Pos != geom.Pt(0, 0) || e.Selected {
			t.Error("space pan must not touch elements")
		}
	})
}

func TestWheel(t *testing.T) {
	m, _, camera, _ := newMachine(false)
	focus := geom.Pt(250, 150)
	world := camera.ScreenToWorld(focus)

	m.Wheel(WheelEvent{Position: focus, Delta: geom.Pt(0, -1), Modifiers: ModCtrl})
	if camera.Zoom != 125 {
		t.Errorf("zoom = %v, want 125", camera.Zoom)
	}
	if got := camera.WorldToScreen(world); got.Dist(focus) > 1e-9 {
		t.Errorf("focus drifted to %v", got)
	}

	m.Wheel(WheelEvent{Delta: geom.Pt(4, 6)})
	if camera.Zoom != 125 {
		t.Error("plain scrolling must not zoom")
	}
}

func TestZoomToFitEmpty(t *testing.T) {
	m, _, camera, _ := newMachine(false)
	camera.SetZoom(250)
	camera.SetPan(geom.Pt(30, -40))

	m.ZoomToFit()
	if camera.Zoom != 100 || camera.Pan != (geom.Vec2{}) {
		t.Errorf("got zoom %v pan %v, want 100 and zero", camera.Zoom, camera.Pan)
	}

	t.Run("Digit keys fit content", func(t *testing.T) {
		m, store, camera, _ := newMachine(false)
		addRect(store, 0, 0, 100, 50)
		m.Key(KeyEvent{Name: "1"})
		if camera.Zoom == 100 {
			t.Error("expected the zoom to change")
		}
		m.Key(KeyEvent{Name: "0"})
		if camera.Zoom != 100 {
			t.Errorf("zero resets, got %v", camera.Zoom)
		}
	})
}

func TestKeys(t *testing.T) {
	t.Run("Delete removes the selection", func(t *testing.T) {
		m, store, _, _ := newMachine(false)
		a := addRect(store, 0, 0, 10, 10)
		addRect(store, 20, 0, 10, 10)
		store.Select(a, false)
		m.Key(KeyEvent{Name: KeyDelete})
		if store.Len() != 1 {
			t.Errorf("len = %d", store.Len())
		}
	})

	t.Run("Undo and redo", func(t *testing.T) {
		m, store, _, _ := newMachine(false)
		addRect(store, 0, 0, 10, 10)
		m.Key(KeyEvent{Name: "z", Modifiers: ModCtrl})
		if store.Len() != 0 {
			t.Error("undo did not remove the element")
		}
		m.Key(KeyEvent{Name: "z", Modifiers: ModMeta | ModShift})
		if store.Len() != 1 {
			t.Error("redo did not restore the element")
		}
		m.Key(KeyEvent{Name: "z", Modifiers: ModCtrl})
		m.Key(KeyEvent{Name: "y", Modifiers: ModCtrl})
		if store.Len() != 1 {
			t.Error("ctrl+y did not redo")
		}
	})

	t.Run("Arrows nudge", func(t *testing.T) {
		m, store, _, _ := newMachine(false)
		id := addRect(store, 0, 0, 10, 10)
		store.Select(id, false)
		m.Key(KeyEvent{Name: KeyRight})
		m.Key(KeyEvent{Name: KeyDown, Modifiers: ModShift})
		e, _ := store.Get(id)
		if e.Pos != geom.Pt(10, 50) {
			t.Errorf("position = %v, want (10,50)", e.Pos)
		}
	})

	t.Run("Duplicate and rotate", func(t *testing.T) {
		m, store, _, _ := newMachine(false)
		id := addRect(store, 0, 0, 10, 10)
		store.Select(id, false)
		m.Key(KeyEvent{Name: "d", Modifiers: ModCtrl})
		if store.Len() != 2 {
			t.Fatalf("len = %d", store.Len())
		}
		dup := store.Selected()
		if len(dup) != 1 || dup[0].Pos != geom.Pt(50, 50) {
			t.Errorf("selection after duplicate = %v", dup)
		}
		m.Key(KeyEvent{Name: "r", Modifiers: ModCtrl})
		if got := store.Selected()[0].Rotation; got != 90 {
			t.Errorf("rotation = %v", got)
		}
	})

	t.Run("Grid toggle notifies", func(t *testing.T) {
		m, _, _, _ := newMachine(false)
		var seen []bool
		m.OnGridChange(func(show bool) { seen = append(seen, show) })
		m.Key(KeyEvent{Name: "g"})
		m.Key(KeyEvent{Name: "g"})
		if len(seen) != 2 || seen[0] || !seen[1] {
			t.Errorf("grid changes = %v", seen)
		}
	})

	t.Run("Select all", func(t *testing.T) {
		m, store, _, _ := newMachine(false)
		addRect(store, 0, 0, 10, 10)
		addRect(store, 20, 0, 10, 10)
		m.Key(KeyEvent{Name: "a", Modifiers: ModCtrl})
		if len(store.SelectedIDs()) != 2 {
			t.Error("expected every element to be selected")
		}
	})
}

func TestSelectionArea(t *testing.T) {
	m, store, _, _ := newMachine(false)
	addRect(store, 10, 10, 20, 20)
	addRect(store, 300, 200, 20, 20)
	m.Key(KeyEvent{Name: "a"})

	drag(m, geom.Pt(0, 0), geom.Pt(100, 50), geom.Pt(150, 100))
	ids := store.SelectedIDs()
	if len(ids) != 1 || ids[0] != 1 {
		t.Errorf("selected %v, want [1]", ids)
	}
	area, ok := m.SelectionArea()
	if !ok || area != geom.XYWH(0, 0, 150, 100) {
		t.Errorf("area = %v, %v", area, ok)
	}

	m.Key(KeyEvent{Name: KeyEscape})
	if _, ok := m.SelectionArea(); ok {
		t.Error("escape clears the kept area")
	}
}

func TestDeleteTool(t *testing.T) {
	m, store, _, _ := newMachine(false)
	addRect(store, 0, 0, 40, 40)
	m.SetTool(ToolDelete)
	click(m, 100, 100)
	if store.Len() != 1 {
		t.Error("a miss must not delete")
	}
	click(m, 20, 20)
	if store.Len() != 0 {
		t.Error("expected the element to be deleted")
	}
}

func TestDrop(t *testing.T) {
	m, store, _, _ := newMachine(true)
	payload, err := catalog.Payload(item(t, "lago"))
	if err != nil {
		t.Fatal(err)
	}

	id, ok := m.Drop(payload, geom.Pt(250, 150))
	if !ok {
		t.Fatal("drop failed")
	}
	e, _ := store.Get(id)
	disc, isDisc := e.Body.(*garden.TerrainDisc)
	if !isDisc {
		t.Fatalf("body = %T", e.Body)
	}
	// 8x6 m lake gives a 30 px radius
	if disc.Radius != 30 || e.Pos != geom.Pt(220, 120) {
		t.Errorf("radius %v at %v", disc.Radius, e.Pos)
	}
	if !e.Selected {
		t.Error("dropped element must be selected")
	}

	if _, ok := m.Drop([]byte("source: ["), geom.Pt(0, 0)); ok {
		t.Error("malformed payload must be ignored")
	}
	if store.Len() != 1 {
		t.Errorf("len = %d", store.Len())
	}
}

func TestPinch(t *testing.T) {
	m, _, camera, _ := newMachine(false)
	m.Touch(TouchEvent{Points: []geom.Vec2{geom.Pt(100, 100), geom.Pt(200, 100)}})
	m.Touch(TouchEvent{Points: []geom.Vec2{geom.Pt(50, 100), geom.Pt(250, 100)}})
	if math.Abs(camera.Zoom-150) > 1e-9 {
		t.Errorf("zoom = %v, want 150", camera.Zoom)
	}
	m.Touch(TouchEvent{})
}
