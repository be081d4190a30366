package view

import (
	"math"

	"github.com/bloodmagesoftware/gardenplan/geom"
)

// DefaultPixelsPerMeter is used while the viewport or the working area is unknown.
const DefaultPixelsPerMeter = 10

// Transform maps between world space and screen space.
// Zoom is a percentage (100 = 1:1) and Pan is a screen pixel offset.
type Transform struct {
	Zoom float64   `yaml:"zoom"`
	Pan  geom.Vec2 `yaml:"pan"`
}

// Identity is the 100% zoom, zero pan transform.
var Identity = Transform{Zoom: 100}

// Scale returns the zoom as a factor.
func (t Transform) Scale() float64 {
	return t.Zoom / 100
}

// ScreenToWorld converts a screen point into world space.
func (t Transform) ScreenToWorld(p geom.Vec2) geom.Vec2 {
	return p.Sub(t.Pan).Div(t.Scale())
}

// WorldToScreen converts a world point into screen space.
func (t Transform) WorldToScreen(p geom.Vec2) geom.Vec2 {
	return p.Scale(t.Scale()).Add(t.Pan)
}

// ScreenToWorldRect converts a screen rectangle into world space.
func (t Transform) ScreenToWorldRect(r geom.Rect) geom.Rect {
	return geom.Rect{Min: t.ScreenToWorld(r.Min), Max: t.ScreenToWorld(r.Max)}
}

// WorldToScreenRect converts a world rectangle into screen space.
func (t Transform) WorldToScreenRect(r geom.Rect) geom.Rect {
	return geom.Rect{Min: t.WorldToScreen(r.Min), Max: t.WorldToScreen(r.Max)}
}

// ScreenLength converts a length in screen pixels into world pixels.
// It is used for things that keep a constant on-screen size.
func (t Transform) ScreenLength(px float64) float64 {
	return px / t.Scale()
}

// Metrics relates the viewport, the real-world working area and world pixels.
type Metrics struct {
	// Viewport is the canvas size in screen pixels.
	Viewport geom.Size
	// Area is the working area in meters.
	Area geom.Size
	// GridMeters is the size of one grid square in meters.
	GridMeters float64
}

// PixelsPerMeter returns the world pixels per meter. The smaller axis ratio
// is used so the whole working area fits the viewport without distortion.
func (m Metrics) PixelsPerMeter() float64 {
	if m.Viewport.Empty() || m.Area.Empty() {
		return DefaultPixelsPerMeter
	}
	return math.Min(m.Viewport.W/m.Area.W, m.Viewport.H/m.Area.H)
}

// MetersToPixels converts meters into world pixels.
func (m Metrics) MetersToPixels(meters float64) float64 {
	return meters * m.PixelsPerMeter()
}

// PixelsToMeters converts world pixels into meters.
func (m Metrics) PixelsToMeters(px float64) float64 {
	return px / m.PixelsPerMeter()
}

// GridPixels returns the size of one grid square in world pixels.
func (m Metrics) GridPixels() float64 {
	return m.MetersToPixels(m.GridMeters)
}

// AreaRect returns the working area in world pixels, anchored at the origin.
func (m Metrics) AreaRect() geom.Rect {
	ppm := m.PixelsPerMeter()
	return geom.XYWH(0, 0, m.Area.W*ppm, m.Area.H*ppm)
}
