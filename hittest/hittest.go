// Package hittest finds the element under a world-space point.
package hittest

import (
	"github.com/bloodmagesoftware/gardenplan/garden"
	"github.com/bloodmagesoftware/gardenplan/geom"
)

// Config holds the tuning values of the hit tests. All sizes are world pixels.
type Config struct {
	// BaseScale and ZoomScale grow the clickable box of small shapes:
	// factor = BaseScale + (100/zoom) * ZoomScale.
	BaseScale float64 `yaml:"base_scale"`
	ZoomScale float64 `yaml:"zoom_scale"`
	// MinClickable and MaxClickable clamp the enlarged clickable box.
	MinClickable float64 `yaml:"min_clickable"`
	MaxClickable float64 `yaml:"max_clickable"`
	// PathPadding is added to half the stroke width of path terrain.
	PathPadding float64 `yaml:"path_padding"`
	// PathThickness is assumed for paths without a thickness.
	PathThickness float64 `yaml:"path_thickness"`
	// RectMargin extends rectangles and rectangular terrain on every side.
	RectMargin float64 `yaml:"rect_margin"`
	// HandleSize is the on-screen size of a resize handle in screen pixels.
	HandleSize float64 `yaml:"handle_size"`
}

// DefaultConfig returns the tuned defaults.
func DefaultConfig() Config {
	return Config{
		BaseScale:     1.5,
		ZoomScale:     0.5,
		MinClickable:  20,
		MaxClickable:  150,
		PathPadding:   5,
		PathThickness: 8,
		RectMargin:    4,
		HandleSize:    8,
	}
}

// Handle names a corner resize handle.
type Handle string

const (
	HandleNone Handle = ""
	HandleNW   Handle = "nw"
	HandleNE   Handle = "ne"
	HandleSW   Handle = "sw"
	HandleSE   Handle = "se"
)

// Handles lists the handles in drawing order.
var Handles = []Handle{HandleNW, HandleNE, HandleSW, HandleSE}

// Corner returns the corner of r that belongs to h.
func (h Handle) Corner(r geom.Rect) geom.Vec2 {
	switch h {
	case HandleNE:
		return geom.Pt(r.Max.X, r.Min.Y)
	case HandleSW:
		return geom.Pt(r.Min.X, r.Max.Y)
	case HandleSE:
		return r.Max
	}
	return r.Min
}

// Picker runs hit tests for a given scale and zoom.
type Picker struct {
	Config         Config
	PixelsPerMeter float64
	// Zoom is the view zoom in percent.
	Zoom float64
}

// Topmost returns the id of the last element in draw order that contains p.
func (pk Picker) Topmost(p geom.Vec2, elements []garden.Element) (garden.ID, bool) {
	for i := len(elements) - 1; i >= 0; i-- {
		if pk.Contains(p, &elements[i]) {
			return elements[i].ID, true
		}
	}
	return 0, false
}

// Clickable enlarges a visual extent into a clickable one.
// Small shapes and low zoom levels get a bigger box, clamped to the configured range.
func (pk Picker) Clickable(visual float64) float64 {
	zoom := pk.Zoom
	if zoom <= 0 {
		zoom = 100
	}
	factor := pk.Config.BaseScale + (100/zoom)*pk.Config.ZoomScale
	return geom.Clamp(visual*factor, pk.Config.MinClickable, pk.Config.MaxClickable)
}

// Contains runs the shape test for e.
func (pk Picker) Contains(p geom.Vec2, e *garden.Element) bool {
	switch b := e.Body.(type) {
	case *garden.Plant:
		fp := e.Footprint().Scale(pk.PixelsPerMeter)
		box := geom.Centered(e.Pos, pk.Clickable(fp.W), pk.Clickable(fp.H))
		return box.Contains(p)

	case *garden.TerrainPath:
		thickness := b.Thickness
		if thickness <= 0 {
			thickness = pk.Config.PathThickness
		}
		return OnPath(p, b.Points, thickness/2+pk.Config.PathPadding)

	case *garden.TerrainDisc:
		center := e.Pos.Add(geom.Pt(b.Radius, b.Radius))
		return p.Dist(center) <= pk.Clickable(2*b.Radius)/2

	case *garden.TerrainArea:
		return geom.XYWH(e.Pos.X, e.Pos.Y, b.Size.W, b.Size.H).Inset(-pk.Config.RectMargin).Contains(p)

	case *garden.Rectangle:
		return geom.XYWH(e.Pos.X, e.Pos.Y, b.Size.W, b.Size.H).Inset(-pk.Config.RectMargin).Contains(p)

	case *garden.Circle:
		center := e.Pos.Add(geom.Pt(b.Radius, b.Radius))
		return p.Dist(center) <= b.Radius
	}
	return false
}

// OnPath reports whether p lies within threshold of any segment of the polyline.
func OnPath(p geom.Vec2, points []geom.Vec2, threshold float64) bool {
	for i := 0; i+1 < len(points); i++ {
		if geom.SegmentDistance(p, points[i], points[i+1]) <= threshold {
			return true
		}
	}
	return false
}

// HandleAt returns the resize handle of e under p. Handle hit areas keep a
// constant on-screen size regardless of zoom.
func (pk Picker) HandleAt(p geom.Vec2, e *garden.Element) (Handle, bool) {
	zoom := pk.Zoom
	if zoom <= 0 {
		zoom = 100
	}
	reach := pk.Config.HandleSize / (zoom / 100)
	bounds := e.Bounds(pk.PixelsPerMeter)
	for _, h := range Handles {
		c := h.Corner(bounds)
		if geom.Centered(c, reach*2, reach*2).Contains(p) {
			return h, true
		}
	}
	return HandleNone, false
}

// Overlapping reports whether candidate intersects the bounds of any element.
// It is an advisory check used before placement.
func Overlapping(candidate geom.Rect, elements []garden.Element, pixelsPerMeter float64) (garden.ID, bool) {
	for i := range elements {
		if candidate.Overlaps(elements[i].Bounds(pixelsPerMeter)) {
			return elements[i].ID, true
		}
	}
	return 0, false
}
