package garden

import (
	"fmt"

	"github.com/bloodmagesoftware/gardenplan/geom"
	"gopkg.in/yaml.v3"
)

// elementRecord is the flat on-disk shape of an Element.
type elementRecord struct {
	ID              ID          `yaml:"id"`
	Kind            Kind        `yaml:"kind"`
	X               float64     `yaml:"x"`
	Y               float64     `yaml:"y"`
	Rotation        float64     `yaml:"rotation,omitempty"`
	Width           float64     `yaml:"width,omitempty"`
	Height          float64     `yaml:"height,omitempty"`
	Radius          float64     `yaml:"radius,omitempty"`
	PathPoints      []geom.Vec2 `yaml:"path_points,omitempty"`
	BrushType       BrushType   `yaml:"brush_type,omitempty"`
	BrushThickness  float64     `yaml:"brush_thickness,omitempty"`
	Texture         string      `yaml:"texture,omitempty"`
	RealWorldWidth  float64     `yaml:"real_world_width,omitempty"`
	RealWorldHeight float64     `yaml:"real_world_height,omitempty"`
	CatalogRef      *Ref        `yaml:"catalog_ref,omitempty"`
}

func refPtr(r Ref) *Ref {
	if r.IsZero() {
		return nil
	}
	return &r
}

func refVal(r *Ref) Ref {
	if r == nil {
		return Ref{}
	}
	return *r
}

// MarshalYAML implements yaml.Marshaler.
func (e Element) MarshalYAML() (interface{}, error) {
	rec := elementRecord{
		ID:              e.ID,
		Kind:            e.Kind(),
		X:               e.Pos.X,
		Y:               e.Pos.Y,
		Rotation:        e.Rotation,
		RealWorldWidth:  e.RealWorld.W,
		RealWorldHeight: e.RealWorld.H,
		CatalogRef:      refPtr(e.Ref()),
	}

	switch b := e.Body.(type) {
	case *Plant:
	case *Rectangle:
		rec.Width, rec.Height = b.Size.W, b.Size.H
	case *Circle:
		rec.Radius = b.Radius
	case *TerrainArea:
		rec.BrushType = b.BrushType()
		rec.Texture = b.Texture
		rec.Width, rec.Height = b.Size.W, b.Size.H
	case *TerrainDisc:
		rec.BrushType = b.BrushType()
		rec.Texture = b.Texture
		rec.Radius = b.Radius
	case *TerrainPath:
		rec.BrushType = b.BrushType()
		rec.Texture = b.Texture
		rec.PathPoints = b.Points
		rec.BrushThickness = b.Thickness
	default:
		return nil, fmt.Errorf("element %d has no body", e.ID)
	}
	return rec, nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (e *Element) UnmarshalYAML(value *yaml.Node) error {
	var rec elementRecord
	if err := value.Decode(&rec); err != nil {
		return err
	}

	*e = Element{
		ID:        rec.ID,
		Pos:       geom.Vec2{X: rec.X, Y: rec.Y},
		Rotation:  rec.Rotation,
		RealWorld: geom.Size{W: rec.RealWorldWidth, H: rec.RealWorldHeight},
	}
	ref := refVal(rec.CatalogRef)

	switch rec.Kind {
	case KindPlant:
		e.Body = &Plant{Ref: ref}
	case KindRectangle:
		e.Body = &Rectangle{Size: geom.Size{W: rec.Width, H: rec.Height}, Ref: ref}
	case KindCircle:
		e.Body = &Circle{Radius: rec.Radius, Ref: ref}
	case KindTerrain:
		info := TerrainInfo{Ref: ref, Texture: rec.Texture}
		switch rec.BrushType {
		case BrushCircle:
			e.Body = &TerrainDisc{TerrainInfo: info, Radius: rec.Radius}
		case BrushPath:
			e.Body = &TerrainPath{TerrainInfo: info, Points: rec.PathPoints, Thickness: rec.BrushThickness}
		case BrushRectangle, "":
			e.Body = &TerrainArea{TerrainInfo: info, Size: geom.Size{W: rec.Width, H: rec.Height}}
		default:
			return fmt.Errorf("line %d: unknown brush type %q", value.Line, rec.BrushType)
		}
	default:
		return fmt.Errorf("line %d: unknown element kind %q", value.Line, rec.Kind)
	}

	return e.Validate()
}
