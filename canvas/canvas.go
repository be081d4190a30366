// Package canvas wires the element store, the camera and the interaction
// machine into the surface a host application drives.
package canvas

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/bloodmagesoftware/gardenplan/garden"
	"github.com/bloodmagesoftware/gardenplan/geom"
	"github.com/bloodmagesoftware/gardenplan/interact"
	"github.com/bloodmagesoftware/gardenplan/render"
	"github.com/bloodmagesoftware/gardenplan/view"
)

var (
	ErrNoExporter      = errors.New("no exporter configured")
	ErrNoSelectionArea = errors.New("no area selected")
	ErrNothingSelected = errors.New("no elements selected")
)

// Options configures a canvas.
type Options struct {
	Interact     interact.Config
	Render       render.Options
	Limits       view.Limits
	HistoryDepth int
	Viewport     geom.Size
	Notifier     interact.Notifier
	Frames       interact.FrameRequester
	Exporter     Exporter
	// ExportDir is where exported images are written.
	ExportDir string
}

// DefaultOptions returns options with every tunable at its default.
func DefaultOptions() Options {
	return Options{
		Interact:     interact.DefaultConfig(),
		Render:       render.DefaultOptions(),
		Limits:       view.DefaultLimits,
		HistoryDepth: garden.DefaultHistoryDepth,
		Viewport:     geom.Size{W: 1280, H: 720},
		ExportDir:    ".",
	}
}

// Canvas is the imperative surface of the editor.
type Canvas struct {
	store    *garden.Store
	camera   *view.Camera
	machine  *interact.Machine
	exporter Exporter
	render   render.Options
	dir      string
	now      func() time.Time

	meta     garden.Plan
	dirty    bool
	onChange func()
}

// New creates a canvas showing plan. A nil plan starts an empty one.
func New(plan *garden.Plan, opts Options) *Canvas {
	if plan == nil {
		plan = garden.NewPlan("untitled")
	}
	plan.Normalize()
	if opts.HistoryDepth <= 0 {
		opts.HistoryDepth = garden.DefaultHistoryDepth
	}
	if opts.Render.MajorEvery <= 0 {
		opts.Render = render.DefaultOptions()
	}
	if opts.Interact.MinElementSize <= 0 {
		opts.Interact = interact.DefaultConfig()
	}

	c := &Canvas{
		store:    garden.NewStore(opts.HistoryDepth),
		camera:   view.NewCamera(opts.Limits),
		exporter: opts.Exporter,
		render:   opts.Render,
		dir:      opts.ExportDir,
		now:      time.Now,
	}
	c.machine = interact.New(c.store, c.camera, interact.Options{
		Config: opts.Interact,
		Metrics: view.Metrics{
			Viewport:   opts.Viewport,
			Area:       plan.Settings.Area(),
			GridMeters: plan.Settings.GridSizeMeters,
		},
		Notifier: opts.Notifier,
		Frames:   opts.Frames,
		ShowGrid: plan.Settings.ShowGrid,
		Snap:     plan.Settings.SnapToGrid,
	})
	c.store.OnCommit(func() {
		c.dirty = true
		if c.onChange != nil {
			c.onChange()
		}
	})
	c.LoadPlan(plan)
	return c
}

// Store returns the element store.
func (c *Canvas) Store() *garden.Store { return c.store }

// Camera returns the camera.
func (c *Canvas) Camera() *view.Camera { return c.camera }

// Machine returns the interaction machine that input events go to.
func (c *Canvas) Machine() *interact.Machine { return c.machine }

// SetNotifier routes user facing messages to n.
func (c *Canvas) SetNotifier(n interact.Notifier) { c.machine.SetNotifier(n) }

// OnChange registers a callback fired after every committed edit.
func (c *Canvas) OnChange(fn func()) { c.onChange = fn }

// OnHistoryChange registers a callback fired when undo or redo availability changes.
func (c *Canvas) OnHistoryChange(fn garden.HistoryFunc) {
	c.store.OnHistoryChange(fn)
}

// Dirty reports whether there are edits since the last load or save.
func (c *Canvas) Dirty() bool { return c.dirty }

// MarkSaved clears the dirty flag.
func (c *Canvas) MarkSaved() { c.dirty = false }

// Undo reverts the last committed edit. A running gesture is aborted first.
func (c *Canvas) Undo() bool {
	c.machine.Abort()
	return c.store.Undo()
}

// Redo reapplies the last undone edit.
func (c *Canvas) Redo() bool {
	c.machine.Abort()
	return c.store.Redo()
}

// CanUndo reports whether Undo would change anything.
func (c *Canvas) CanUndo() bool { return c.store.CanUndo() }

// CanRedo reports whether Redo would change anything.
func (c *Canvas) CanRedo() bool { return c.store.CanRedo() }

// ToggleGrid flips grid visibility.
func (c *Canvas) ToggleGrid() { c.machine.ToggleGrid() }

// SetShowGrid shows or hides the grid.
func (c *Canvas) SetShowGrid(show bool) { c.machine.SetShowGrid(show) }

// ShowGrid reports whether the grid is visible.
func (c *Canvas) ShowGrid() bool { return c.machine.ShowGrid() }

// State returns a copy of the element list.
func (c *Canvas) State() []garden.Element {
	return garden.CloneElements(c.store.Elements())
}

// SetState replaces the element list. The replacement is one undoable step.
func (c *Canvas) SetState(elements []garden.Element) {
	c.machine.Abort()
	c.store.ReplaceAll(elements)
	c.store.PushHistory()
}

// Resize updates the viewport size.
func (c *Canvas) Resize(size geom.Size) {
	c.machine.Resize(size)
}

// Scene builds the drawing operations for the current frame.
func (c *Canvas) Scene() render.Scene {
	area, _ := c.machine.SelectionArea()
	return render.Build(render.Input{
		Elements:      c.store.Elements(),
		Transform:     c.camera.Transform,
		Metrics:       c.machine.Metrics(),
		ShowGrid:      c.machine.ShowGrid(),
		Preview:       c.machine.Preview(),
		SelectionArea: area,
		Options:       c.render,
	})
}

// Frame applies coalesced input for this frame.
func (c *Canvas) Frame(now time.Time) {
	c.machine.Frame(now)
}

// Close cancels pending frame work.
func (c *Canvas) Close() {
	c.machine.Close()
}

// Plan returns the saveable form of the canvas.
func (c *Canvas) Plan() *garden.Plan {
	m := c.machine.Metrics()
	p := &garden.Plan{
		Version: garden.PlanVersion,
		ID:      c.meta.ID,
		Name:    c.meta.Name,
		Settings: garden.Settings{
			WidthMeters:    m.Area.W,
			HeightMeters:   m.Area.H,
			GridSizeMeters: m.GridMeters,
			ShowGrid:       c.machine.ShowGrid(),
			SnapToGrid:     c.meta.Settings.SnapToGrid,
			PixelsPerMeter: m.PixelsPerMeter(),
		},
		Elements: c.State(),
		Zoom:     c.camera.Zoom,
		Pan:      c.camera.Pan,
	}
	return p
}

// LoadPlan replaces everything with the content of plan and starts a new
// history. A plan saved with a pixels per meter value keeps it.
func (c *Canvas) LoadPlan(plan *garden.Plan) {
	plan.Normalize()
	c.machine.Abort()
	c.meta = garden.Plan{ID: plan.ID, Name: plan.Name, Settings: plan.Settings}
	c.machine.SetArea(plan.Settings.Area(), plan.Settings.GridSizeMeters)
	// A saved scale wins over the viewport so element sizes stay the same
	if ppm := plan.Settings.PixelsPerMeter; ppm > 0 {
		c.machine.Resize(plan.Settings.Area().Scale(ppm))
	}
	c.machine.SetShowGrid(plan.Settings.ShowGrid)
	c.machine.SetSnap(plan.Settings.SnapToGrid)
	c.store.Reset(plan.Elements)
	c.camera.SetZoom(plan.Zoom)
	c.camera.SetPan(plan.Pan)
	c.dirty = false
}

// Name returns the plan name.
func (c *Canvas) Name() string { return c.meta.Name }

// exportName builds a timestamped file name in the export directory.
func (c *Canvas) exportName(prefix string, format Format) string {
	return filepath.Join(c.dir, fmt.Sprintf("%s-%d.%s", prefix, c.now().UnixMilli(), format))
}
