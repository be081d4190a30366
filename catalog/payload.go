package catalog

import (
	"errors"
	"fmt"

	"github.com/bloodmagesoftware/gardenplan/garden"
	"gopkg.in/yaml.v3"
)

// ErrEmptyPayload is returned by ParsePayload for blank input.
var ErrEmptyPayload = errors.New("empty payload")

// ParsePayload decodes a dropped or pasted catalog descriptor.
// The payload is a YAML (or JSON) mapping with a "source" key naming the
// table (plant, terrain or structure) and the descriptor fields of that table.
func ParsePayload(data []byte) (Item, error) {
	var head struct {
		Source garden.Source `yaml:"source"`
		ID     string        `yaml:"id"`
	}
	if err := yaml.Unmarshal(data, &head); err != nil {
		return Item{}, fmt.Errorf("decoding payload: %w", err)
	}
	if head.Source == "" && head.ID == "" {
		return Item{}, ErrEmptyPayload
	}

	switch head.Source {
	case garden.SourcePlant:
		var p Plant
		if err := yaml.Unmarshal(data, &p); err != nil {
			return Item{}, fmt.Errorf("decoding plant: %w", err)
		}
		return p.Item(), nil
	case garden.SourceTerrain:
		var t Terrain
		if err := yaml.Unmarshal(data, &t); err != nil {
			return Item{}, fmt.Errorf("decoding terrain: %w", err)
		}
		return t.Item(), nil
	case garden.SourceStructure:
		var s Structure
		if err := yaml.Unmarshal(data, &s); err != nil {
			return Item{}, fmt.Errorf("decoding structure: %w", err)
		}
		return s.Item(), nil
	}
	return Item{}, fmt.Errorf("unknown payload source %q", head.Source)
}

// Payload encodes an item so that ParsePayload can read it back.
func Payload(item Item) ([]byte, error) {
	ref := item.Ref
	var body map[string]any
	switch ref.Source {
	case garden.SourcePlant:
		body = map[string]any{"spacing": ref.Size}
	case garden.SourceTerrain:
		body = map[string]any{"size": ref.Size}
		if ref.Texture != "" {
			body["texture"] = ref.Texture
		}
		if item.Brush != BrushStamp {
			body["brush"] = string(item.Brush)
		}
		if item.Thickness > 0 {
			body["brush_thickness"] = item.Thickness
		}
	case garden.SourceStructure:
		body = map[string]any{"width": item.Footprint.W, "height": item.Footprint.H}
		if item.Brush == BrushCircle {
			body["shape"] = "circle"
		}
	default:
		return nil, fmt.Errorf("unknown payload source %q", ref.Source)
	}

	body["source"] = string(ref.Source)
	body["id"] = ref.ID
	body["name"] = ref.Name
	if ref.Icon != "" {
		body["icon"] = ref.Icon
	}
	if ref.Color != "" {
		body["color"] = ref.Color
	}
	if ref.Category != "" {
		body["category"] = ref.Category
	}
	return yaml.Marshal(body)
}
