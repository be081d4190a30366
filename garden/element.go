package garden

import (
	"fmt"

	"github.com/bloodmagesoftware/gardenplan/geom"
)

type (
	// ID identifies an element. IDs are assigned by the Store and never reused.
	ID uint64

	// Kind is the fixed category of an element.
	Kind string

	// BrushType describes how a terrain element was authored.
	BrushType string

	// Source names the catalog table a Ref was copied from.
	Source string
)

const (
	KindPlant     Kind = "plant"
	KindTerrain   Kind = "terrain"
	KindRectangle Kind = "rectangle"
	KindCircle    Kind = "circle"
)

const (
	BrushRectangle BrushType = "rectangle"
	BrushCircle    BrushType = "circle"
	BrushPath      BrushType = "path"
)

const (
	SourcePlant     Source = "plant"
	SourceTerrain   Source = "terrain"
	SourceStructure Source = "structure"
)

// Ref is a copy of a catalog descriptor taken at placement time.
// The engine reads it but never changes it.
type Ref struct {
	Source   Source `yaml:"source"`
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	Icon     string `yaml:"icon,omitempty"`
	Color    string `yaml:"color,omitempty"`
	Size     string `yaml:"size,omitempty"`
	Texture  string `yaml:"texture,omitempty"`
	Category string `yaml:"category,omitempty"`
}

// IsZero reports whether the reference is empty.
func (r Ref) IsZero() bool {
	return r == Ref{}
}

// Body is the kind specific payload of an element.
// Exactly one of the types in this file implements it.
type Body interface {
	Kind() Kind
	cloneBody() Body
}

type (
	// Plant is anchored at its center. Its footprint comes from Element.RealWorld.
	Plant struct {
		Ref Ref
	}

	// Rectangle is anchored at its top-left corner.
	Rectangle struct {
		Size geom.Size
		// Ref is set when the rectangle is a placed structure.
		Ref Ref
	}

	// Circle is anchored at the top-left corner of its bounding square.
	Circle struct {
		Radius float64
		Ref    Ref
	}

	// TerrainInfo is shared by all terrain bodies.
	TerrainInfo struct {
		Ref     Ref
		Texture string
	}

	// TerrainArea is a rectangular terrain patch anchored at its top-left corner.
	TerrainArea struct {
		TerrainInfo
		Size geom.Size
	}

	// TerrainDisc is a circular terrain patch anchored like Circle.
	TerrainDisc struct {
		TerrainInfo
		Radius float64
	}

	// TerrainPath is a stroked terrain line such as a path or a stream.
	// Points are absolute world coordinates.
	TerrainPath struct {
		TerrainInfo
		Points    []geom.Vec2
		Thickness float64
	}
)

// Terrain is implemented by every terrain body.
type Terrain interface {
	Body
	Info() *TerrainInfo
	BrushType() BrushType
}

func (*Plant) Kind() Kind       { return KindPlant }
func (*Rectangle) Kind() Kind   { return KindRectangle }
func (*Circle) Kind() Kind      { return KindCircle }
func (*TerrainArea) Kind() Kind { return KindTerrain }
func (*TerrainDisc) Kind() Kind { return KindTerrain }
func (*TerrainPath) Kind() Kind { return KindTerrain }

func (t *TerrainInfo) Info() *TerrainInfo { return t }

func (*TerrainArea) BrushType() BrushType { return BrushRectangle }
func (*TerrainDisc) BrushType() BrushType { return BrushCircle }
func (*TerrainPath) BrushType() BrushType { return BrushPath }

func (b *Plant) cloneBody() Body       { c := *b; return &c }
func (b *Rectangle) cloneBody() Body   { c := *b; return &c }
func (b *Circle) cloneBody() Body      { c := *b; return &c }
func (b *TerrainArea) cloneBody() Body { c := *b; return &c }
func (b *TerrainDisc) cloneBody() Body { c := *b; return &c }
func (b *TerrainPath) cloneBody() Body {
	c := *b
	c.Points = append([]geom.Vec2(nil), b.Points...)
	return &c
}

// Element is a single item on the canvas.
type Element struct {
	ID       ID
	Pos      geom.Vec2
	Rotation float64
	Selected bool
	// RealWorld is the footprint in meters, derived from the catalog size
	// string when the element is placed and frozen afterwards.
	RealWorld geom.Size
	Body      Body
}

// Kind returns the kind of the element body.
func (e *Element) Kind() Kind {
	if e.Body == nil {
		return ""
	}
	return e.Body.Kind()
}

// Terrain returns the terrain body, if the element is terrain.
func (e *Element) Terrain() (Terrain, bool) {
	t, ok := e.Body.(Terrain)
	return t, ok
}

// IsLine reports whether the element is drawn as a stroked line.
func (e *Element) IsLine() bool {
	_, ok := e.Body.(*TerrainPath)
	return ok
}

// Ref returns the catalog reference of the element, if any.
func (e *Element) Ref() Ref {
	switch b := e.Body.(type) {
	case *Plant:
		return b.Ref
	case *Rectangle:
		return b.Ref
	case *Circle:
		return b.Ref
	case Terrain:
		return b.Info().Ref
	}
	return Ref{}
}

// Name returns the label shown next to the element.
func (e *Element) Name() string {
	if name := e.Ref().Name; name != "" {
		return name
	}
	switch e.Body.(type) {
	case *Rectangle:
		return "Rectangle"
	case *Circle:
		return "Circle"
	}
	return string(e.Kind())
}

// Clone returns a deep copy of the element.
func (e Element) Clone() Element {
	if e.Body != nil {
		e.Body = e.Body.cloneBody()
	}
	return e
}

// Translate moves the element by d. Path points move along with the anchor.
func (e *Element) Translate(d geom.Vec2) {
	e.Pos = e.Pos.Add(d)
	if p, ok := e.Body.(*TerrainPath); ok {
		for i := range p.Points {
			p.Points[i] = p.Points[i].Add(d)
		}
	}
}

// MoveTo moves the anchor of the element to pos.
func (e *Element) MoveTo(pos geom.Vec2) {
	e.Translate(pos.Sub(e.Pos))
}

// minPathExtent keeps a straight horizontal or vertical path resizable.
const minPathExtent = 10

// Footprint returns the real-world size of a plant in meters.
func (e *Element) Footprint() geom.Size {
	if !e.RealWorld.Empty() {
		return e.RealWorld
	}
	return ParseSpacing(e.Ref().Size)
}

// Bounds returns the visual bounding box of the element in world pixels.
func (e *Element) Bounds(pixelsPerMeter float64) geom.Rect {
	switch b := e.Body.(type) {
	case *Plant:
		fp := e.Footprint().Scale(pixelsPerMeter)
		return geom.Centered(e.Pos, fp.W, fp.H)
	case *Rectangle:
		return geom.XYWH(e.Pos.X, e.Pos.Y, b.Size.W, b.Size.H)
	case *TerrainArea:
		return geom.XYWH(e.Pos.X, e.Pos.Y, b.Size.W, b.Size.H)
	case *Circle:
		return geom.XYWH(e.Pos.X, e.Pos.Y, 2*b.Radius, 2*b.Radius)
	case *TerrainDisc:
		return geom.XYWH(e.Pos.X, e.Pos.Y, 2*b.Radius, 2*b.Radius)
	case *TerrainPath:
		r, ok := geom.BoundsOf(b.Points)
		if !ok {
			return geom.XYWH(e.Pos.X, e.Pos.Y, minPathExtent, minPathExtent)
		}
		if r.Dx() == 0 {
			r.Max.X = r.Min.X + minPathExtent
		}
		if r.Dy() == 0 {
			r.Max.Y = r.Min.Y + minPathExtent
		}
		return r
	}
	return geom.Rect{Min: e.Pos, Max: e.Pos}
}

// Validate checks the structural invariants of a committed element.
func (e *Element) Validate() error {
	switch b := e.Body.(type) {
	case nil:
		return fmt.Errorf("element %d has no body", e.ID)
	case *Rectangle:
		if b.Size.W < 0 || b.Size.H < 0 {
			return fmt.Errorf("element %d has a negative size", e.ID)
		}
	case *TerrainArea:
		if b.Size.W < 0 || b.Size.H < 0 {
			return fmt.Errorf("element %d has a negative size", e.ID)
		}
	case *Circle:
		if b.Radius < 0 {
			return fmt.Errorf("element %d has a negative radius", e.ID)
		}
	case *TerrainDisc:
		if b.Radius < 0 {
			return fmt.Errorf("element %d has a negative radius", e.ID)
		}
	case *TerrainPath:
		if len(b.Points) < 2 {
			return fmt.Errorf("element %d is a path with %d points", e.ID, len(b.Points))
		}
	}
	return nil
}

// CloneElements deep copies a slice of elements.
func CloneElements(elements []Element) []Element {
	if elements == nil {
		return nil
	}
	out := make([]Element, len(elements))
	for i, e := range elements {
		out[i] = e.Clone()
	}
	return out
}
