package render

import (
	"fmt"
	"math"

	"github.com/bloodmagesoftware/gardenplan/garden"
	"github.com/bloodmagesoftware/gardenplan/geom"
	"github.com/bloodmagesoftware/gardenplan/view"
)

// Options tunes the look of the canvas. Sizes ending in Px are screen pixels
// and stay constant while zooming.
type Options struct {
	Palette Palette `yaml:"-"`
	// MinGridSpacingPx is the smallest on-screen distance between grid lines.
	MinGridSpacingPx float64 `yaml:"min_grid_spacing_px"`
	// MajorEvery is the number of minor steps between major grid lines.
	MajorEvery int `yaml:"major_every"`
	// GridLabelScale is the zoom factor above which grid labels are drawn.
	GridLabelScale float64 `yaml:"grid_label_scale"`
	// HideGridScale is the zoom factor below which no grid is drawn.
	HideGridScale float64 `yaml:"hide_grid_scale"`
	LabelSizePx   float64 `yaml:"label_size_px"`
	HandleSizePx  float64 `yaml:"handle_size_px"`
	// IconGlyphs draws the catalog icon instead of the initial letter.
	// Only enable it for fonts that carry the emoji.
	IconGlyphs bool `yaml:"icon_glyphs"`
	// Labels toggles element name labels.
	Labels bool `yaml:"labels"`
}

// DefaultOptions returns the tuned defaults.
func DefaultOptions() Options {
	return Options{
		Palette:          LightPalette,
		MinGridSpacingPx: 10,
		MajorEvery:       5,
		GridLabelScale:   0.3,
		HideGridScale:    0.1,
		LabelSizePx:      12,
		HandleSizePx:     8,
		Labels:           true,
	}
}

// Input is everything the renderer reads. Build does not modify it.
type Input struct {
	Elements  []garden.Element
	Transform view.Transform
	Metrics   view.Metrics
	ShowGrid  bool
	// Preview is the shape or path currently being drawn.
	Preview *garden.Element
	// SelectionArea is the area rectangle in world space, if any.
	SelectionArea geom.Rect
	// Viewport is the output size in screen pixels. It defaults to
	// Metrics.Viewport; exports render into a differently sized image while
	// keeping the pixels per meter of the canvas.
	Viewport geom.Size
	Options  Options
}

// builder accumulates ops for one Build call.
type builder struct {
	in    Input
	opt   Options
	pal   Palette
	scale float64
	ppm   float64
	ops   []Op
}

func (b *builder) add(ops ...Op) {
	b.ops = append(b.ops, ops...)
}

// px converts a constant screen length into world pixels.
func (b *builder) px(screen float64) float64 {
	return screen / b.scale
}

// Build produces the scene for one frame. The paint order is: background,
// grid, area boundary, elements in list order, the in-progress preview and
// finally the selection highlight with its resize handles.
func Build(in Input) Scene {
	opt := in.Options
	if opt.MajorEvery <= 0 {
		opt = DefaultOptions()
	}
	t := in.Transform
	if t.Zoom <= 0 {
		t = view.Identity
	}
	b := &builder{
		in:    in,
		opt:   opt,
		pal:   opt.Palette,
		scale: t.Scale(),
		ppm:   in.Metrics.PixelsPerMeter(),
	}

	viewport := in.Viewport
	if viewport.Empty() {
		viewport = in.Metrics.Viewport
	}

	b.background(t, viewport)
	if in.ShowGrid {
		b.grid()
	}
	b.boundary()
	for i := range in.Elements {
		b.element(&in.Elements[i], false)
	}
	if in.Preview != nil {
		b.element(in.Preview, true)
	}
	if !in.SelectionArea.Empty() {
		b.selectionArea(in.SelectionArea)
	}
	for i := range in.Elements {
		if in.Elements[i].Selected {
			b.selection(&in.Elements[i])
		}
	}

	return Scene{
		Transform:  t,
		Viewport:   viewport,
		Background: b.pal.Background,
		Ops:        b.ops,
	}
}

func (b *builder) background(t view.Transform, viewport geom.Size) {
	visible := t.ScreenToWorldRect(geom.Rect{Max: geom.Pt(viewport.W, viewport.H)})
	if !visible.Empty() {
		b.add(FillRect{Rect: visible, Paint: Solid(b.pal.Background)})
	}
	area := b.in.Metrics.AreaRect()
	b.add(
		FillRect{Rect: area.Add(geom.Pt(b.px(3), b.px(3))), Paint: Solid(b.pal.Shadow)},
		FillRect{Rect: area, Paint: Solid(b.pal.Area)},
	)
}

// GridStep returns the world pixel distance between minor grid lines. When
// the nominal grid would be closer than minSpacing on screen the step grows
// to the next whole multiple of the grid size that clears it.
func GridStep(gridPx, scale, minSpacing float64) float64 {
	if gridPx <= 0 || scale <= 0 {
		return 0
	}
	onScreen := gridPx * scale
	if onScreen >= minSpacing {
		return gridPx
	}
	return math.Ceil(minSpacing/onScreen) * gridPx
}

func (b *builder) grid() {
	if b.scale < b.opt.HideGridScale {
		return
	}
	area := b.in.Metrics.AreaRect()
	step := GridStep(b.in.Metrics.GridPixels(), b.scale, b.opt.MinGridSpacingPx)
	if step <= 0 {
		return
	}

	minor := math.Max(0.5, 1/b.scale)
	for x := 0.0; x <= area.Max.X+1e-9; x += step {
		b.add(Polyline{Points: []geom.Vec2{geom.Pt(x, 0), geom.Pt(x, area.Max.Y)}, Width: minor, Paint: Solid(b.pal.GridMinor)})
	}
	for y := 0.0; y <= area.Max.Y+1e-9; y += step {
		b.add(Polyline{Points: []geom.Vec2{geom.Pt(0, y), geom.Pt(area.Max.X, y)}, Width: minor, Paint: Solid(b.pal.GridMinor)})
	}

	major := step * float64(b.opt.MajorEvery)
	width := math.Max(1, 2/b.scale)
	labels := b.scale > b.opt.GridLabelScale
	size := math.Max(8, 10/b.scale)
	for x := 0.0; x <= area.Max.X+1e-9; x += major {
		b.add(Polyline{Points: []geom.Vec2{geom.Pt(x, 0), geom.Pt(x, area.Max.Y)}, Width: width, Paint: Solid(b.pal.GridMajor)})
		if x > 0 && labels {
			b.add(Text{
				Pos:    geom.Pt(x, math.Max(12, 15/b.scale)),
				Text:   b.meters(x),
				Size:   size,
				Color:  b.pal.GridLabel,
				Align:  AlignMiddle,
				Valign: ValignBottom,
				Bold:   true,
			})
		}
	}
	for y := 0.0; y <= area.Max.Y+1e-9; y += major {
		b.add(Polyline{Points: []geom.Vec2{geom.Pt(0, y), geom.Pt(area.Max.X, y)}, Width: width, Paint: Solid(b.pal.GridMajor)})
		if y > 0 && labels {
			b.add(Text{
				Pos:    geom.Pt(math.Max(3, 5/b.scale), y-math.Max(3, 5/b.scale)),
				Text:   b.meters(y),
				Size:   size,
				Color:  b.pal.GridLabel,
				Align:  AlignStart,
				Valign: ValignBottom,
				Bold:   true,
			})
		}
	}
}

func (b *builder) meters(px float64) string {
	return fmt.Sprintf("%.0fm", math.Round(px/b.ppm))
}

func (b *builder) boundary() {
	area := b.in.Metrics.AreaRect()
	if area.Empty() {
		return
	}
	b.add(StrokeRect{Rect: area, Stroke: Stroke{Color: b.pal.Boundary, Width: math.Max(2, 3/b.scale)}})

	size := b.px(b.opt.LabelSizePx)
	gap := b.px(6)
	plate := &Plate{Color: b.pal.LabelPlate, Border: b.pal.Boundary, Padding: b.px(3), Radius: b.px(3)}
	b.add(
		Text{
			Pos:    geom.Pt(area.Center().X, area.Min.Y-gap),
			Text:   fmt.Sprintf("%.0fm", b.in.Metrics.Area.W),
			Size:   size,
			Color:  b.pal.LabelText,
			Align:  AlignMiddle,
			Valign: ValignBottom,
			Bold:   true,
			Plate:  plate,
		},
		Text{
			Pos:    geom.Pt(area.Min.X-gap, area.Center().Y),
			Text:   fmt.Sprintf("%.0fm", b.in.Metrics.Area.H),
			Size:   size,
			Color:  b.pal.LabelText,
			Align:  AlignEnd,
			Valign: ValignMiddle,
			Bold:   true,
			Plate:  plate,
		},
	)
}

func (b *builder) selectionArea(r geom.Rect) {
	b.add(
		FillRect{Rect: r, Paint: Solid(WithAlpha(b.pal.Selection, 0.1))},
		StrokeRect{Rect: r, Stroke: Stroke{Color: b.pal.Selection, Width: b.px(1.5), Dash: []float64{b.px(6), b.px(4)}}},
	)
}

// selection draws the glow outline and the four corner handles.
func (b *builder) selection(e *garden.Element) {
	pad := math.Max(4, b.px(6))
	glow := WithAlpha(b.pal.Selection, 0.25)
	line := math.Max(2, b.px(3))

	if c, r, ok := circleOf(e); ok {
		b.add(
			StrokeCircle{Center: c, Radius: r + pad, Stroke: Stroke{Color: glow, Width: line * 3}},
			StrokeCircle{Center: c, Radius: r + pad, Stroke: Stroke{Color: b.pal.Selection, Width: line}},
		)
	} else {
		r := e.Bounds(b.ppm).Inset(-pad)
		b.add(
			StrokeRect{Rect: r, Stroke: Stroke{Color: glow, Width: line * 3}},
			StrokeRect{Rect: r, Stroke: Stroke{Color: b.pal.Selection, Width: line}},
		)
	}

	bounds := e.Bounds(b.ppm)
	radius := b.px(b.opt.HandleSizePx) / 2
	for _, corner := range []geom.Vec2{
		bounds.Min,
		geom.Pt(bounds.Max.X, bounds.Min.Y),
		geom.Pt(bounds.Min.X, bounds.Max.Y),
		bounds.Max,
	} {
		b.add(
			FillCircle{Center: corner.Add(geom.Pt(0, b.px(1.5))), Radius: radius, Paint: Solid(b.pal.Shadow)},
			FillCircle{Center: corner, Radius: radius, Paint: Solid(b.pal.Handle)},
			StrokeCircle{Center: corner, Radius: radius, Stroke: Stroke{Color: b.pal.HandleEdge, Width: math.Max(1.5, b.px(2))}},
		)
	}
}

// circleOf returns the center and radius of round elements.
func circleOf(e *garden.Element) (geom.Vec2, float64, bool) {
	switch body := e.Body.(type) {
	case *garden.Circle:
		return e.Pos.Add(geom.Pt(body.Radius, body.Radius)), body.Radius, true
	case *garden.TerrainDisc:
		return e.Pos.Add(geom.Pt(body.Radius, body.Radius)), body.Radius, true
	}
	return geom.Vec2{}, 0, false
}
