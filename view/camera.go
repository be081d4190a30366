package view

import (
	"fmt"
	"math"

	"github.com/bloodmagesoftware/gardenplan/geom"
)

// Limits bounds the zoom percentage.
type Limits struct {
	Min  float64 `yaml:"min"`
	Max  float64 `yaml:"max"`
	Step float64 `yaml:"step"`
}

// DefaultLimits allows 10% to 400% in steps of 25%.
var DefaultLimits = Limits{Min: 10, Max: 400, Step: 25}

// DefaultFitPadding is the screen margin kept around content by ZoomToFit.
const DefaultFitPadding = 50

// PinchSensitivity converts a pinch distance ratio into zoom percent.
const PinchSensitivity = 50

// Camera owns the view transform and keeps the zoom within its limits.
type Camera struct {
	Transform
	Limits Limits
	// OnChange is called with the new zoom after every zoom change.
	OnChange func(zoom float64)
}

// NewCamera creates a camera at 100% with zero pan.
func NewCamera(limits Limits) *Camera {
	if limits.Min <= 0 || limits.Max < limits.Min {
		limits = DefaultLimits
	}
	if limits.Step <= 0 {
		limits.Step = DefaultLimits.Step
	}
	return &Camera{
		Transform: Identity,
		Limits:    limits,
	}
}

func (c *Camera) clamp(zoom float64) float64 {
	if math.IsNaN(zoom) {
		return c.Zoom
	}
	return geom.Clamp(zoom, c.Limits.Min, c.Limits.Max)
}

// SetZoom clamps zoom to the limits, applies it and notifies OnChange.
func (c *Camera) SetZoom(zoom float64) {
	c.Zoom = c.clamp(zoom)
	if c.OnChange != nil {
		c.OnChange(c.Zoom)
	}
}

// SetPan sets the pan offset in screen pixels.
func (c *Camera) SetPan(pan geom.Vec2) {
	c.Pan = pan
}

// PanBy moves the view by a screen delta.
func (c *Camera) PanBy(delta geom.Vec2) {
	c.Pan = c.Pan.Add(delta)
}

// ZoomIn increases the zoom by one step.
func (c *Camera) ZoomIn() {
	c.SetZoom(c.Zoom + c.Limits.Step)
}

// ZoomOut decreases the zoom by one step.
func (c *Camera) ZoomOut() {
	c.SetZoom(c.Zoom - c.Limits.Step)
}

// CanZoomIn reports whether the zoom is below the maximum.
func (c *Camera) CanZoomIn() bool {
	return c.Zoom < c.Limits.Max
}

// CanZoomOut reports whether the zoom is above the minimum.
func (c *Camera) CanZoomOut() bool {
	return c.Zoom > c.Limits.Min
}

// Reset returns to 100% zoom and zero pan.
func (c *Camera) Reset() {
	c.Pan = geom.Vec2{}
	c.SetZoom(100)
}

// ZoomAt changes the zoom while keeping the world point under the screen
// point focus in place.
func (c *Camera) ZoomAt(focus geom.Vec2, zoom float64) {
	// Calculate world position under the focus before zoom
	world := c.ScreenToWorld(focus)

	c.SetZoom(zoom)

	// Adjust pan to keep the world point under the focus
	moved := c.WorldToScreen(world)
	c.Pan = c.Pan.Add(focus.Sub(moved))
}

// Wheel zooms one step around focus. A positive deltaY zooms out.
func (c *Camera) Wheel(focus geom.Vec2, deltaY float64) {
	switch {
	case deltaY > 0:
		c.ZoomAt(focus, c.Zoom-c.Limits.Step)
	case deltaY < 0:
		c.ZoomAt(focus, c.Zoom+c.Limits.Step)
	}
}

// Pinch applies a two finger gesture given the previous and current touch positions.
// The zoom changes with the ratio of the finger distances and the view follows
// the movement of the midpoint.
func (c *Camera) Pinch(prevA, prevB, curA, curB geom.Vec2) {
	prevDist := prevA.Dist(prevB)
	curDist := curA.Dist(curB)
	prevMid := prevA.Mid(prevB)
	curMid := curA.Mid(curB)

	if prevDist > 0 {
		delta := (curDist/prevDist - 1) * PinchSensitivity
		c.ZoomAt(prevMid, c.Zoom+delta)
	}
	c.PanBy(curMid.Sub(prevMid))
}

// ZoomToFit scales and centers the view so bounds fills the viewport with
// padding on every side. A zero bounds value resets the view.
func (c *Camera) ZoomToFit(bounds geom.Rect, viewport geom.Size, padding float64) {
	if bounds == (geom.Rect{}) || viewport.Empty() {
		c.Reset()
		return
	}

	zoomX := (viewport.W - padding*2) / math.Max(bounds.Dx(), 1) * 100
	zoomY := (viewport.H - padding*2) / math.Max(bounds.Dy(), 1) * 100
	c.SetZoom(math.Min(zoomX, zoomY))

	// Center the content
	center := bounds.Center().Scale(c.Scale())
	c.Pan = geom.Vec2{X: viewport.W/2 - center.X, Y: viewport.H/2 - center.Y}
}

// Label returns the zoom formatted for display, for example "150%".
func (c *Camera) Label() string {
	return fmt.Sprintf("%.0f%%", c.Zoom)
}
