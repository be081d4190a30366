// Package render turns the element list and the view state into a flat list
// of drawing operations. It does not draw anything itself: the Gio editor and
// the image exporter replay a Scene with their own backends.
package render

import (
	"image/color"

	"github.com/bloodmagesoftware/gardenplan/geom"
	"github.com/bloodmagesoftware/gardenplan/view"
)

// Scene is the result of Build. Ops are in world coordinates and must be
// drawn in order under Transform.
type Scene struct {
	Transform  view.Transform
	Viewport   geom.Size
	Background color.NRGBA
	Ops        []Op
}

// Op is one drawing operation. The set of operations is closed.
type Op interface {
	isOp()
}

// GradientKind selects linear or radial interpolation.
type GradientKind uint8

const (
	GradientLinear GradientKind = iota
	GradientRadial
)

// Stop is a gradient color stop. Offset is in [0, 1].
type Stop struct {
	Offset float64
	Color  color.NRGBA
}

// Gradient describes a linear gradient from From to To, or a radial gradient
// centered on From with radius Radius.
type Gradient struct {
	Kind   GradientKind
	From   geom.Vec2
	To     geom.Vec2
	Radius float64
	Stops  []Stop
}

// Paint is a solid color or, when Gradient is set, a gradient.
type Paint struct {
	Color    color.NRGBA
	Gradient *Gradient
}

// Solid returns a single color paint.
func Solid(c color.NRGBA) Paint {
	return Paint{Color: c}
}

// Flat returns the color a backend without gradients should use.
func (p Paint) Flat() color.NRGBA {
	if p.Gradient == nil || len(p.Gradient.Stops) == 0 {
		return p.Color
	}
	return p.Gradient.Stops[len(p.Gradient.Stops)/2].Color
}

// Stroke describes the outline of a shape. Dash is an on/off pattern; an
// empty pattern draws a solid line.
type Stroke struct {
	Color color.NRGBA
	Width float64
	Dash  []float64
}

type (
	// FillRect fills a rectangle with optional rounded corners.
	FillRect struct {
		Rect   geom.Rect
		Radius float64
		Paint  Paint
	}

	// StrokeRect outlines a rectangle.
	StrokeRect struct {
		Rect   geom.Rect
		Stroke Stroke
	}

	// FillCircle fills a circle.
	FillCircle struct {
		Center geom.Vec2
		Radius float64
		Paint  Paint
	}

	// StrokeCircle outlines a circle.
	StrokeCircle struct {
		Center geom.Vec2
		Radius float64
		Stroke Stroke
	}

	// FillEllipse fills an axis aligned ellipse.
	FillEllipse struct {
		Center geom.Vec2
		RX, RY float64
		Color  color.NRGBA
	}

	// FillPolygon fills a closed polygon.
	FillPolygon struct {
		Points []geom.Vec2
		Color  color.NRGBA
	}

	// Polyline strokes an open polyline with round caps and joins.
	Polyline struct {
		Points []geom.Vec2
		Width  float64
		Paint  Paint
		Dash   []float64
	}

	// Text draws a single line of text anchored at Pos. Size is the font
	// size in world pixels. When Plate is set a rounded background is drawn
	// behind the text first.
	Text struct {
		Pos    geom.Vec2
		Text   string
		Size   float64
		Color  color.NRGBA
		Align  Align
		Valign Valign
		Bold   bool
		Plate  *Plate
	}
)

// Plate is the background behind a label.
type Plate struct {
	Color   color.NRGBA
	Border  color.NRGBA
	Padding float64
	Radius  float64
}

// Align is the horizontal text anchor.
type Align uint8

const (
	AlignStart Align = iota
	AlignMiddle
	AlignEnd
)

// Valign is the vertical text anchor.
type Valign uint8

const (
	ValignTop Valign = iota
	ValignMiddle
	ValignBottom
)

func (FillRect) isOp()     {}
func (StrokeRect) isOp()   {}
func (FillCircle) isOp()   {}
func (StrokeCircle) isOp() {}
func (FillEllipse) isOp()  {}
func (FillPolygon) isOp()  {}
func (Polyline) isOp()     {}
func (Text) isOp()         {}

// TextBox estimates the box a text op covers, using an average glyph width
// of 0.6 em. Backends with a real shaper use their own measurement.
func TextBox(t Text) geom.Rect {
	w := float64(len([]rune(t.Text))) * t.Size * 0.6
	h := t.Size * 1.2
	x := t.Pos.X
	switch t.Align {
	case AlignMiddle:
		x -= w / 2
	case AlignEnd:
		x -= w
	}
	y := t.Pos.Y
	switch t.Valign {
	case ValignMiddle:
		y -= h / 2
	case ValignBottom:
		y -= h
	}
	return geom.XYWH(x, y, w, h)
}
