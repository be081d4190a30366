package geom

import (
	"math"
)

// Vec2 is a point or vector in 2D space.
type Vec2 struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Pt is shorthand for Vec2{X: x, Y: y}.
func Pt(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns v+o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v-o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale returns v multiplied by s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Div returns v divided by s.
func (v Vec2) Div(s float64) Vec2 {
	return Vec2{X: v.X / s, Y: v.Y / s}
}

// Dot returns the dot product of two vectors.
func (v Vec2) Dot(o Vec2) float64 {
	return v.X*o.X + v.Y*o.Y
}

// Len returns the length of the vector.
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Dist returns the distance between two points.
func (v Vec2) Dist(o Vec2) float64 {
	return v.Sub(o).Len()
}

// Mid returns the midpoint between two points.
func (v Vec2) Mid(o Vec2) Vec2 {
	return Vec2{X: (v.X + o.X) / 2, Y: (v.Y + o.Y) / 2}
}

// Size is a width/height pair.
type Size struct {
	W float64 `yaml:"width"`
	H float64 `yaml:"height"`
}

// Empty reports whether the size has no area.
func (s Size) Empty() bool {
	return s.W <= 0 || s.H <= 0
}

// Scale returns s multiplied by f on both axes.
func (s Size) Scale(f float64) Size {
	return Size{W: s.W * f, H: s.H * f}
}

// Rect is an axis aligned rectangle. Min is the top-left corner.
type Rect struct {
	Min Vec2
	Max Vec2
}

// XYWH builds a rectangle from its top-left corner and size.
func XYWH(x, y, w, h float64) Rect {
	return Rect{Min: Vec2{X: x, Y: y}, Max: Vec2{X: x + w, Y: y + h}}
}

// Centered builds a rectangle of the given size centered on c.
func Centered(c Vec2, w, h float64) Rect {
	return XYWH(c.X-w/2, c.Y-h/2, w, h)
}

// Span builds the rectangle spanned by two arbitrary corners.
func Span(a, b Vec2) Rect {
	return Rect{
		Min: Vec2{X: math.Min(a.X, b.X), Y: math.Min(a.Y, b.Y)},
		Max: Vec2{X: math.Max(a.X, b.X), Y: math.Max(a.Y, b.Y)},
	}
}

func (r Rect) Dx() float64 { return r.Max.X - r.Min.X }
func (r Rect) Dy() float64 { return r.Max.Y - r.Min.Y }

// Size returns the width and height of the rectangle.
func (r Rect) Size() Size {
	return Size{W: r.Dx(), H: r.Dy()}
}

// Center returns the center point of the rectangle.
func (r Rect) Center() Vec2 {
	return r.Min.Mid(r.Max)
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.Dx() <= 0 || r.Dy() <= 0
}

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Overlaps reports whether the two rectangles intersect, touching edges excluded.
func (r Rect) Overlaps(o Rect) bool {
	return r.Min.X < o.Max.X && r.Max.X > o.Min.X && r.Min.Y < o.Max.Y && r.Max.Y > o.Min.Y
}

// Inset shrinks the rectangle by d on every side. Negative values grow it.
func (r Rect) Inset(d float64) Rect {
	return Rect{
		Min: Vec2{X: r.Min.X + d, Y: r.Min.Y + d},
		Max: Vec2{X: r.Max.X - d, Y: r.Max.Y - d},
	}
}

// Union returns the smallest rectangle that contains both r and o.
// An empty rectangle is treated as the identity.
func (r Rect) Union(o Rect) Rect {
	if r == (Rect{}) {
		return o
	}
	if o == (Rect{}) {
		return r
	}
	return Rect{
		Min: Vec2{X: math.Min(r.Min.X, o.Min.X), Y: math.Min(r.Min.Y, o.Min.Y)},
		Max: Vec2{X: math.Max(r.Max.X, o.Max.X), Y: math.Max(r.Max.Y, o.Max.Y)},
	}
}

// Add translates the rectangle by d.
func (r Rect) Add(d Vec2) Rect {
	return Rect{Min: r.Min.Add(d), Max: r.Max.Add(d)}
}

// BoundsOf returns the bounding box of a set of points.
// The boolean is false when points is empty.
func BoundsOf(points []Vec2) (Rect, bool) {
	if len(points) == 0 {
		return Rect{}, false
	}
	r := Rect{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		r.Min.X = math.Min(r.Min.X, p.X)
		r.Min.Y = math.Min(r.Min.Y, p.Y)
		r.Max.X = math.Max(r.Max.X, p.X)
		r.Max.Y = math.Max(r.Max.Y, p.Y)
	}
	return r, true
}

// SegmentDistance returns the shortest distance from p to the segment a-b.
// The projection parameter is clamped to [0,1] so the segment ends act as caps.
func SegmentDistance(p, a, b Vec2) float64 {
	ab := b.Sub(a)
	lenSq := ab.Dot(ab)
	if lenSq == 0 {
		return p.Dist(a)
	}
	t := p.Sub(a).Dot(ab) / lenSq
	t = Clamp(t, 0, 1)
	return p.Dist(a.Add(ab.Scale(t)))
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Snap rounds v to the nearest multiple of step. A non positive step leaves v untouched.
func Snap(v, step float64) float64 {
	if step <= 0 {
		return v
	}
	return math.Round(v/step) * step
}

// SnapVec snaps both coordinates of p to step.
func SnapVec(p Vec2, step float64) Vec2 {
	return Vec2{X: Snap(p.X, step), Y: Snap(p.Y, step)}
}
