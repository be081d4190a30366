// Package interact turns pointer, keyboard, wheel and touch input into
// camera changes and element store mutations.
package interact

import (
	"math"
	"time"

	"github.com/bloodmagesoftware/gardenplan/catalog"
	"github.com/bloodmagesoftware/gardenplan/garden"
	"github.com/bloodmagesoftware/gardenplan/geom"
	"github.com/bloodmagesoftware/gardenplan/hittest"
	"github.com/bloodmagesoftware/gardenplan/view"
)

// Tool is the active toolbar tool.
type Tool string

const (
	ToolSelect     Tool = "select"
	ToolMove       Tool = "move"
	ToolRectangle  Tool = "rectangle"
	ToolCircle     Tool = "circle"
	ToolTerrain    Tool = "terrain"
	ToolSelectArea Tool = "selectArea"
	ToolDelete     Tool = "delete"
)

// Tools lists every tool in toolbar order.
var Tools = []Tool{ToolSelect, ToolMove, ToolRectangle, ToolCircle, ToolTerrain, ToolSelectArea, ToolDelete}

// Mode is the active gesture. Only one gesture runs at a time.
type Mode int

const (
	ModeIdle Mode = iota
	ModePanning
	ModeSelectingArea
	ModeDragging
	ModeResizing
	ModeDrawingShape
	ModeDrawingPath
)

func (m Mode) String() string {
	switch m {
	case ModePanning:
		return "panning"
	case ModeSelectingArea:
		return "selecting-area"
	case ModeDragging:
		return "dragging-element"
	case ModeResizing:
		return "resizing-element"
	case ModeDrawingShape:
		return "drawing-shape"
	case ModeDrawingPath:
		return "drawing-terrain-path"
	}
	return "idle"
}

// Machine is the interaction state machine. It is not safe for concurrent
// use; the host feeds it events from its single UI goroutine.
type Machine struct {
	store    *garden.Store
	camera   *view.Camera
	metrics  view.Metrics
	cfg      Config
	notifier Notifier

	tool       Tool
	armed      *catalog.Item
	showGrid   bool
	snapToGrid bool

	mode      Mode
	spaceHeld bool
	pointer   geom.Vec2 // last pointer position in screen space

	// panning
	lastPan geom.Vec2

	// dragging and resizing
	target     garden.ID
	original   garden.Element
	dragOffset geom.Vec2
	handle     hittest.Handle
	startPos   geom.Vec2
	startRect  geom.Rect

	// selecting area and drawing
	area       geom.Rect
	lastArea   geom.Rect
	preview    *garden.Element
	shapeTool  Tool
	pathPoints []geom.Vec2

	touches []geom.Vec2

	panFrames  *Coalescer[geom.Vec2]
	dragFrames *Coalescer[geom.Vec2]

	onGrid func(show bool)
}

// Options configures a new Machine.
type Options struct {
	Config   Config
	Metrics  view.Metrics
	Notifier Notifier
	Frames   FrameRequester
	ShowGrid bool
	Snap     bool
}

// New creates a machine operating on store and camera.
func New(store *garden.Store, camera *view.Camera, opts Options) *Machine {
	if opts.Notifier == nil {
		opts.Notifier = LogNotifier{}
	}
	if opts.Config.FrameInterval <= 0 {
		opts.Config.FrameInterval = DefaultFrameInterval
	}
	m := &Machine{
		store:      store,
		camera:     camera,
		metrics:    opts.Metrics,
		cfg:        opts.Config,
		notifier:   opts.Notifier,
		tool:       ToolSelect,
		showGrid:   opts.ShowGrid,
		snapToGrid: opts.Snap,
	}
	m.panFrames = NewCoalescer(opts.Frames, m.cfg.FrameInterval, func(pan geom.Vec2) {
		m.camera.SetPan(pan)
	})
	m.dragFrames = NewCoalescer(opts.Frames, m.cfg.FrameInterval, func(pos geom.Vec2) {
		m.store.Mutate(m.target, func(e *garden.Element) { e.MoveTo(pos) })
	})
	return m
}

// Mode returns the active gesture.
func (m *Machine) Mode() Mode { return m.mode }

// SetNotifier replaces the notification receiver. Nil restores the log notifier.
func (m *Machine) SetNotifier(n Notifier) {
	if n == nil {
		n = LogNotifier{}
	}
	m.notifier = n
}

// Tool returns the active tool.
func (m *Machine) Tool() Tool { return m.tool }

// Armed returns the catalog item waiting to be placed, if any.
func (m *Machine) Armed() (catalog.Item, bool) {
	if m.armed == nil {
		return catalog.Item{}, false
	}
	return *m.armed, true
}

// Metrics returns the current canvas metrics.
func (m *Machine) Metrics() view.Metrics { return m.metrics }

// PixelsPerMeter returns the world pixels per meter for the current viewport.
func (m *Machine) PixelsPerMeter() float64 { return m.metrics.PixelsPerMeter() }

// ShowGrid reports whether the grid is visible.
func (m *Machine) ShowGrid() bool { return m.showGrid }

// SpaceHeld reports whether space pan mode is active.
func (m *Machine) SpaceHeld() bool { return m.spaceHeld }

// OnGridChange registers a callback fired when the grid is toggled.
func (m *Machine) OnGridChange(fn func(show bool)) { m.onGrid = fn }

// SetShowGrid shows or hides the grid. Snapping follows the grid.
func (m *Machine) SetShowGrid(show bool) {
	if m.showGrid == show {
		return
	}
	m.showGrid = show
	if m.onGrid != nil {
		m.onGrid(show)
	}
}

// ToggleGrid flips grid visibility.
func (m *Machine) ToggleGrid() {
	m.SetShowGrid(!m.showGrid)
}

// SetSnap enables or disables snapping to the grid.
func (m *Machine) SetSnap(snap bool) { m.snapToGrid = snap }

// Resize updates the canvas size. A running gesture is not interrupted.
func (m *Machine) Resize(size geom.Size) {
	m.metrics.Viewport = size
}

// SetArea updates the real-world working area in meters.
func (m *Machine) SetArea(area geom.Size, gridMeters float64) {
	m.metrics.Area = area
	if gridMeters > 0 {
		m.metrics.GridMeters = gridMeters
	}
}

// SetTool switches the active tool. Terrain items stay armed only for the terrain tool.
func (m *Machine) SetTool(t Tool) {
	m.tool = t
	if m.armed != nil && m.armed.Ref.Source == garden.SourceTerrain && t != ToolTerrain {
		m.armed = nil
	}
}

// Arm selects a catalog item for placement and switches to the matching tool.
func (m *Machine) Arm(item catalog.Item) {
	m.armed = &item
	if item.Ref.Source == garden.SourceTerrain {
		m.tool = ToolTerrain
	} else {
		m.tool = ToolSelect
	}
}

// Disarm clears the armed catalog item.
func (m *Machine) Disarm() {
	m.armed = nil
}

// Preview returns the shape or path being drawn, if any.
func (m *Machine) Preview() *garden.Element {
	return m.preview
}

// SelectionArea returns the rectangle being dragged out, or the last
// committed one, in world space.
func (m *Machine) SelectionArea() (geom.Rect, bool) {
	if m.mode == ModeSelectingArea {
		return m.area, true
	}
	return m.lastArea, !m.lastArea.Empty()
}

// SelectingArea reports whether the area rectangle is currently being dragged.
func (m *Machine) SelectingArea() bool {
	return m.mode == ModeSelectingArea
}

// Frame applies coalesced pan and drag updates. The host calls it once per frame.
func (m *Machine) Frame(now time.Time) {
	m.panFrames.Tick(now)
	m.dragFrames.Tick(now)
}

// Close cancels outstanding frame updates. The machine must not be used afterwards.
func (m *Machine) Close() {
	m.panFrames.Cancel()
	m.dragFrames.Cancel()
}

func (m *Machine) world(screen geom.Vec2) geom.Vec2 {
	return m.camera.ScreenToWorld(screen)
}

func (m *Machine) snapStep() float64 {
	return m.metrics.MetersToPixels(m.cfg.SnapMeters)
}

// Snap rounds a world point to the snapping grid when snapping is active.
func (m *Machine) Snap(p geom.Vec2) geom.Vec2 {
	if !m.snapToGrid || !m.showGrid {
		return p
	}
	return geom.SnapVec(p, m.snapStep())
}

func (m *Machine) picker() hittest.Picker {
	return hittest.Picker{
		Config:         m.cfg.HitTest,
		PixelsPerMeter: m.metrics.PixelsPerMeter(),
		Zoom:           m.camera.Zoom,
	}
}

// Pointer handles a pointer event.
func (m *Machine) Pointer(ev PointerEvent) {
	m.pointer = ev.Position
	switch ev.Kind {
	case PointerDown:
		m.pointerDown(ev)
	case PointerMove:
		m.pointerMove(ev)
	case PointerUp:
		m.pointerUp(ev)
	case PointerCancel:
		m.Abort()
	}
}

func (m *Machine) pointerDown(ev PointerEvent) {
	if m.mode != ModeIdle {
		// A second button while a gesture runs is ignored.
		return
	}
	raw := m.world(ev.Position)
	pos := m.Snap(raw)

	// Panning wins over everything else
	if m.spaceHeld || m.tool == ToolMove || ev.Secondary {
		m.mode = ModePanning
		m.lastPan = ev.Position
		return
	}

	if m.tool == ToolSelectArea {
		m.mode = ModeSelectingArea
		m.startPos = raw
		m.area = geom.Rect{Min: raw, Max: raw}
		return
	}

	pk := m.picker()
	elements := m.store.Elements()

	if m.tool == ToolDelete {
		if id, ok := pk.Topmost(raw, elements); ok {
			e, _ := m.store.Get(id)
			m.store.Remove(id)
			m.notifyf(LevelInfo, "%s removed", e.Name())
		}
		return
	}

	// Existing elements take precedence over drawing and placement for every tool
	if m.beginResize(raw, pos) {
		return
	}
	if id, ok := pk.Topmost(raw, elements); ok {
		m.beginDrag(id, raw, ev.Modifiers.Contain(ModShift))
		return
	}
	if m.tool == ToolSelect && m.armed == nil {
		m.store.DeselectAll()
		return
	}

	switch {
	case m.tool == ToolRectangle || m.tool == ToolCircle:
		m.store.DeselectAll()
		m.beginShape(m.tool, pos, nil)
	case m.armed != nil:
		m.store.DeselectAll()
		m.armedDown(*m.armed, raw, pos)
	}
}

// beginResize starts a resize if pos is on a handle of a selected element.
func (m *Machine) beginResize(raw, pos geom.Vec2) bool {
	pk := m.picker()
	elements := m.store.Elements()
	for i := len(elements) - 1; i >= 0; i-- {
		e := &elements[i]
		if !e.Selected {
			continue
		}
		h, ok := pk.HandleAt(raw, e)
		if !ok {
			continue
		}
		m.mode = ModeResizing
		m.target = e.ID
		m.handle = h
		m.original = e.Clone()
		m.startPos = pos
		m.startRect = e.Bounds(m.metrics.PixelsPerMeter())
		return true
	}
	return false
}

func (m *Machine) beginDrag(id garden.ID, raw geom.Vec2, multi bool) {
	m.store.Select(id, multi)
	e, _ := m.store.Get(id)
	if !e.Selected {
		// Shift click removed it from the selection
		return
	}
	m.mode = ModeDragging
	m.target = id
	m.original = e
	m.dragOffset = raw.Sub(e.Pos)
}

func (m *Machine) beginShape(tool Tool, pos geom.Vec2, item *catalog.Item) {
	m.mode = ModeDrawingShape
	m.shapeTool = tool
	m.startPos = pos

	e := garden.Element{Pos: pos}
	switch {
	case item != nil && tool == ToolCircle:
		e.Body = &garden.TerrainDisc{TerrainInfo: terrainInfo(*item)}
	case item != nil:
		e.Body = &garden.TerrainArea{TerrainInfo: terrainInfo(*item)}
	case tool == ToolCircle:
		e.Body = &garden.Circle{}
	default:
		e.Body = &garden.Rectangle{}
	}
	m.preview = &e
}

func terrainInfo(item catalog.Item) garden.TerrainInfo {
	return garden.TerrainInfo{Ref: item.Ref, Texture: item.Ref.Texture}
}

// armedDown starts drawing or places the armed item at once.
func (m *Machine) armedDown(item catalog.Item, raw, pos geom.Vec2) {
	if item.Ref.Source != garden.SourceTerrain {
		// Plants stay armed for repeated planting; structures are single use.
		if m.place(item, pos) != 0 && item.Ref.Source == garden.SourceStructure {
			m.armed = nil
		}
		return
	}

	switch item.Brush {
	case catalog.BrushFreehand:
		m.mode = ModeDrawingPath
		m.pathPoints = []geom.Vec2{raw}
		m.preview = &garden.Element{
			Pos:  raw,
			Body: &garden.TerrainPath{TerrainInfo: terrainInfo(item), Points: m.pathPoints, Thickness: item.Thickness},
		}
	case catalog.BrushPath:
		m.placePath(item, pos)
	case catalog.BrushCircle:
		m.beginShape(ToolCircle, pos, &item)
	default:
		m.beginShape(ToolRectangle, pos, &item)
	}
}

// place stamps a plant, structure or terrain patch centered on pos. Plants
// and structures that would overlap an existing element are rejected with a
// warning and 0 is returned.
func (m *Machine) place(item catalog.Item, pos geom.Vec2) garden.ID {
	ppm := m.metrics.PixelsPerMeter()
	size := item.Footprint.Scale(ppm)
	e := garden.Element{RealWorld: item.Footprint}

	switch {
	case item.Ref.Source == garden.SourcePlant:
		e.Pos = pos
		e.Body = &garden.Plant{Ref: item.Ref}
	case item.Ref.Source == garden.SourceTerrain && (item.Brush == catalog.BrushFreehand || item.Brush == catalog.BrushPath):
		return m.placePath(item, pos)
	case item.Brush == catalog.BrushCircle:
		r := math.Min(size.W, size.H) / 2
		e.Pos = pos.Sub(geom.Pt(r, r))
		if item.Ref.Source == garden.SourceTerrain {
			e.Body = &garden.TerrainDisc{TerrainInfo: terrainInfo(item), Radius: r}
		} else {
			e.Body = &garden.Circle{Radius: r, Ref: item.Ref}
		}
	default:
		e.Pos = pos.Sub(geom.Pt(size.W/2, size.H/2))
		if item.Ref.Source == garden.SourceTerrain {
			e.Body = &garden.TerrainArea{TerrainInfo: terrainInfo(item), Size: size}
		} else {
			e.Body = &garden.Rectangle{Size: size, Ref: item.Ref}
		}
	}

	if item.Ref.Source != garden.SourceTerrain && m.overlaps(e.Bounds(ppm)) {
		m.notifyf(LevelWarning, "%s overlaps an existing element", item.Ref.Name)
		return 0
	}
	id := m.store.Add(e)
	m.notifyf(LevelInfo, "%s added", item.Ref.Name)
	return id
}

// placePath drops a straight horizontal path starting at pos.
func (m *Machine) placePath(item catalog.Item, pos geom.Vec2) garden.ID {
	ppm := m.metrics.PixelsPerMeter()
	length := item.Footprint.W
	if length <= 1 {
		length = m.cfg.PathLengthMeters
	}
	thickness := item.Thickness
	if thickness <= 0 {
		thickness = catalog.DefaultBrushThickness
	}
	e := garden.Element{
		Pos:       pos,
		RealWorld: geom.Size{W: thickness / ppm, H: length},
		Body: &garden.TerrainPath{
			TerrainInfo: terrainInfo(item),
			Points:      []geom.Vec2{pos, pos.Add(geom.Pt(length*ppm, 0))},
			Thickness:   thickness,
		},
	}
	id := m.store.Add(e)
	m.notifyf(LevelInfo, "%s (path) added", item.Ref.Name)
	return id
}

// overlaps checks bounds against the placed plants, shapes and structures.
// Terrain lies underneath and never blocks placement.
func (m *Machine) overlaps(bounds geom.Rect) bool {
	var solid []garden.Element
	for _, e := range m.store.Elements() {
		if _, ok := e.Terrain(); !ok {
			solid = append(solid, e)
		}
	}
	_, ok := hittest.Overlapping(bounds, solid, m.metrics.PixelsPerMeter())
	return ok
}

func (m *Machine) pointerMove(ev PointerEvent) {
	switch m.mode {
	case ModePanning:
		base := m.camera.Pan
		if pending, ok := m.panFrames.Latest(); ok {
			base = pending
		}
		m.panFrames.Schedule(base.Add(ev.Position.Sub(m.lastPan)))
		m.lastPan = ev.Position

	case ModeSelectingArea:
		m.area = geom.Span(m.startPos, m.world(ev.Position))

	case ModeDragging:
		pos := m.Snap(m.world(ev.Position).Sub(m.dragOffset))
		m.dragFrames.Schedule(pos)

	case ModeResizing:
		m.resizeTo(m.Snap(m.world(ev.Position)))

	case ModeDrawingShape:
		m.drawShapeTo(m.Snap(m.world(ev.Position)))

	case ModeDrawingPath:
		p := m.world(ev.Position)
		last := m.pathPoints[len(m.pathPoints)-1]
		if p.Dist(last) > m.cfg.PathSampleDistance {
			m.pathPoints = append(m.pathPoints, p)
			m.preview.Body.(*garden.TerrainPath).Points = m.pathPoints
		}
	}
}

// resizeBounds derives the new bounds for a handle drag. The edges opposite
// to the handle stay fixed and both sides keep at least min.
func resizeBounds(r geom.Rect, h hittest.Handle, d geom.Vec2, min float64) geom.Rect {
	out := r
	switch h {
	case hittest.HandleNW:
		out.Min = out.Min.Add(d)
	case hittest.HandleNE:
		out.Max.X += d.X
		out.Min.Y += d.Y
	case hittest.HandleSW:
		out.Min.X += d.X
		out.Max.Y += d.Y
	case hittest.HandleSE:
		out.Max = out.Max.Add(d)
	}

	if out.Dx() < min {
		if h == hittest.HandleNW || h == hittest.HandleSW {
			out.Min.X = out.Max.X - min
		} else {
			out.Max.X = out.Min.X + min
		}
	}
	if out.Dy() < min {
		if h == hittest.HandleNW || h == hittest.HandleNE {
			out.Min.Y = out.Max.Y - min
		} else {
			out.Max.Y = out.Min.Y + min
		}
	}
	return out
}

func (m *Machine) resizeTo(pos geom.Vec2) {
	ppm := m.metrics.PixelsPerMeter()
	orig := m.startRect
	nb := resizeBounds(orig, m.handle, pos.Sub(m.startPos), m.cfg.MinElementSize)
	source := m.original

	m.store.Mutate(m.target, func(e *garden.Element) {
		switch b := e.Body.(type) {
		case *garden.Plant:
			e.Pos = nb.Center()
			e.RealWorld = geom.Size{W: nb.Dx() / ppm, H: nb.Dy() / ppm}
		case *garden.TerrainPath:
			src := source.Body.(*garden.TerrainPath)
			sx := nb.Dx() / orig.Dx()
			sy := nb.Dy() / orig.Dy()
			for i, p := range src.Points {
				b.Points[i] = geom.Pt(nb.Min.X+(p.X-orig.Min.X)*sx, nb.Min.Y+(p.Y-orig.Min.Y)*sy)
			}
			b.Thickness = math.Max(2, src.Thickness*math.Min(sx, sy))
			e.Pos = b.Points[0]
		case *garden.Circle:
			b.Radius = math.Min(nb.Dx(), nb.Dy()) / 2
			e.Pos = nb.Min
		case *garden.TerrainDisc:
			b.Radius = math.Min(nb.Dx(), nb.Dy()) / 2
			e.Pos = nb.Min
		case *garden.Rectangle:
			b.Size = nb.Size()
			e.Pos = nb.Min
		case *garden.TerrainArea:
			b.Size = nb.Size()
			e.Pos = nb.Min
		}
	})
}

func (m *Machine) drawShapeTo(pos geom.Vec2) {
	d := pos.Sub(m.startPos)
	e := m.preview
	switch b := e.Body.(type) {
	case *garden.Rectangle:
		r := geom.Span(m.startPos, pos)
		e.Pos, b.Size = r.Min, r.Size()
	case *garden.TerrainArea:
		r := geom.Span(m.startPos, pos)
		e.Pos, b.Size = r.Min, r.Size()
	case *garden.Circle:
		b.Radius = math.Min(math.Abs(d.X), math.Abs(d.Y)) / 2
		e.Pos = circleOrigin(m.startPos, d, b.Radius)
	case *garden.TerrainDisc:
		b.Radius = math.Min(math.Abs(d.X), math.Abs(d.Y)) / 2
		e.Pos = circleOrigin(m.startPos, d, b.Radius)
	}
}

// circleOrigin centers a circle of radius r on the middle of the drag.
func circleOrigin(start, d geom.Vec2, r float64) geom.Vec2 {
	center := start.Add(d.Scale(0.5))
	return center.Sub(geom.Pt(r, r))
}

func (m *Machine) pointerUp(ev PointerEvent) {
	switch m.mode {
	case ModePanning:
		m.panFrames.Flush()

	case ModeSelectingArea:
		m.area = geom.Span(m.startPos, m.world(ev.Position))
		m.commitArea()

	case ModeDragging:
		m.dragFrames.Flush()
		m.store.PushHistory()

	case ModeResizing:
		m.store.PushHistory()

	case ModeDrawingShape:
		m.drawShapeTo(m.Snap(m.world(ev.Position)))
		m.commitShape()

	case ModeDrawingPath:
		m.commitPath()
	}
	m.reset()
}

func (m *Machine) commitArea() {
	if m.area.Dx() < 1 && m.area.Dy() < 1 {
		m.lastArea = geom.Rect{}
		m.store.DeselectAll()
		return
	}
	m.lastArea = m.area
	ppm := m.metrics.PixelsPerMeter()
	area := m.area
	n := m.store.SelectWhere(func(e *garden.Element) bool {
		return area.Overlaps(e.Bounds(ppm))
	})
	if n > 0 {
		m.notifyf(LevelInfo, "%d elements selected", n)
	}
}

func (m *Machine) commitShape() {
	e := m.preview
	if e == nil {
		return
	}
	keep := false
	switch b := e.Body.(type) {
	case *garden.Rectangle:
		keep = math.Max(b.Size.W, b.Size.H) > m.cfg.MinShapeSize && math.Min(b.Size.W, b.Size.H) > 0
	case *garden.TerrainArea:
		keep = math.Max(b.Size.W, b.Size.H) > m.cfg.MinShapeSize && math.Min(b.Size.W, b.Size.H) > 0
	case *garden.Circle:
		keep = b.Radius > m.cfg.MinShapeSize
	case *garden.TerrainDisc:
		keep = b.Radius > m.cfg.MinShapeSize
	}
	if !keep {
		return
	}

	if _, ok := e.Terrain(); ok {
		ppm := m.metrics.PixelsPerMeter()
		size := e.Bounds(ppm).Size()
		e.RealWorld = geom.Size{W: size.W / ppm, H: size.H / ppm}
		m.armed = nil
	}
	m.store.Add(*e)
	m.notifyf(LevelInfo, "%s added", e.Name())
}

func (m *Machine) commitPath() {
	if len(m.pathPoints) < 2 || m.preview == nil {
		return
	}
	e := *m.preview
	p := e.Body.(*garden.TerrainPath)
	p.Points = append([]geom.Vec2(nil), m.pathPoints...)
	if p.Thickness <= 0 {
		p.Thickness = catalog.DefaultBrushThickness
	}
	e.Pos = p.Points[0]

	ppm := m.metrics.PixelsPerMeter()
	length := 0.0
	for i := 1; i < len(p.Points); i++ {
		length += p.Points[i].Dist(p.Points[i-1])
	}
	e.RealWorld = geom.Size{W: p.Thickness / ppm, H: length / ppm}

	m.store.Add(e)
	m.armed = nil
	m.notifyf(LevelInfo, "%s (brush) added", e.Name())
}

// reset clears every transient gesture field.
func (m *Machine) reset() {
	m.mode = ModeIdle
	m.target = 0
	m.original = garden.Element{}
	m.handle = hittest.HandleNone
	m.preview = nil
	m.pathPoints = nil
	m.area = geom.Rect{}
}

// Abort cancels the running gesture. A dragged or resized element returns
// to where it was when the gesture started.
func (m *Machine) Abort() {
	switch m.mode {
	case ModePanning:
		m.panFrames.Cancel()
	case ModeDragging, ModeResizing:
		m.dragFrames.Cancel()
		orig := m.original
		m.store.Mutate(m.target, func(e *garden.Element) {
			selected := e.Selected
			*e = orig.Clone()
			e.Selected = selected
		})
	}
	m.reset()
}

// Drop places a catalog item dropped at a screen position. The payload is a
// YAML or JSON catalog descriptor; malformed payloads are ignored.
func (m *Machine) Drop(payload []byte, screen geom.Vec2) (garden.ID, bool) {
	item, err := catalog.ParsePayload(payload)
	if err != nil {
		return 0, false
	}
	if m.mode != ModeIdle {
		m.Abort()
	}
	pos := m.Snap(m.world(screen))
	m.store.DeselectAll()
	id := m.place(item, pos)
	if id != 0 {
		m.store.Select(id, false)
	}
	return id, id != 0
}

// PointerPosition returns the last known pointer position in screen space.
func (m *Machine) PointerPosition() geom.Vec2 {
	return m.pointer
}

// Wheel handles a scroll event. With the command modifier it zooms around
// the pointer, otherwise it pans.
func (m *Machine) Wheel(ev WheelEvent) {
	if ev.Modifiers.Command() {
		m.camera.Wheel(ev.Position, ev.Delta.Y)
		return
	}
	m.camera.PanBy(ev.Delta.Scale(-1))
}

// Touch handles multi-touch input. Two fingers pinch zoom and pan.
func (m *Machine) Touch(ev TouchEvent) {
	if len(ev.Points) == 2 && len(m.touches) == 2 {
		m.camera.Pinch(m.touches[0], m.touches[1], ev.Points[0], ev.Points[1])
	}
	if len(ev.Points) >= 2 && m.mode != ModeIdle {
		m.Abort()
	}
	m.touches = append(m.touches[:0], ev.Points...)
}

// ZoomToFit frames every element, or resets the view when there are none.
func (m *Machine) ZoomToFit() {
	elements := m.store.Elements()
	if len(elements) == 0 {
		m.camera.Reset()
		return
	}
	ppm := m.metrics.PixelsPerMeter()
	var bounds geom.Rect
	for i := range elements {
		bounds = bounds.Union(elements[i].Bounds(ppm))
	}
	m.camera.ZoomToFit(bounds, m.metrics.Viewport, m.cfg.FitPadding)
}
