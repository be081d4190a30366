package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/bloodmagesoftware/gardenplan/garden"
	"github.com/bloodmagesoftware/gardenplan/geom"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultCatalog []byte

// Brush is the way a catalog item is put on the canvas.
type Brush string

const (
	// BrushStamp places the item in a single click.
	BrushStamp Brush = ""
	// BrushRectangle and BrushCircle draw a shape by dragging.
	BrushRectangle Brush = "rectangle"
	BrushCircle    Brush = "circle"
	// BrushFreehand paints a path by dragging.
	BrushFreehand Brush = "brush"
	// BrushPath drops a straight path in a single click.
	BrushPath Brush = "path"
)

// DefaultBrushThickness is used for freehand and path terrain without an explicit thickness.
const DefaultBrushThickness = 20

type (
	// Catalog is the read-only table of things that can be placed on a plan.
	Catalog struct {
		Plants     []Plant     `yaml:"plants"`
		Terrain    []Terrain   `yaml:"terrain"`
		Structures []Structure `yaml:"structures"`
	}

	Plant struct {
		ID         string `yaml:"id"`
		Name       string `yaml:"name"`
		Category   string `yaml:"category"`
		Icon       string `yaml:"icon"`
		Color      string `yaml:"color"`
		Spacing    string `yaml:"spacing"`
		Season     string `yaml:"season,omitempty"`
		Difficulty string `yaml:"difficulty,omitempty"`
		WaterNeeds string `yaml:"water_needs,omitempty"`
	}

	Terrain struct {
		ID       string `yaml:"id"`
		Name     string `yaml:"name"`
		Category string `yaml:"category"`
		Icon     string `yaml:"icon,omitempty"`
		Color    string `yaml:"color"`
		Size     string `yaml:"size"`
		Texture  string `yaml:"texture,omitempty"`
		// Brush defaults to a dragged rectangle.
		Brush          Brush   `yaml:"brush,omitempty"`
		BrushThickness float64 `yaml:"brush_thickness,omitempty"`
	}

	Structure struct {
		ID       string  `yaml:"id"`
		Name     string  `yaml:"name"`
		Category string  `yaml:"category"`
		Icon     string  `yaml:"icon"`
		Color    string  `yaml:"color"`
		Width    float64 `yaml:"width"`
		Height   float64 `yaml:"height"`
		// Shape is "circle" for round structures, rectangle otherwise.
		Shape string `yaml:"shape,omitempty"`
	}

	// Item is a catalog entry ready to be armed for placement.
	Item struct {
		Ref garden.Ref `yaml:"ref"`
		// Footprint is the real-world size in meters.
		Footprint geom.Size `yaml:"footprint"`
		Brush     Brush     `yaml:"brush,omitempty"`
		Thickness float64   `yaml:"thickness,omitempty"`
	}
)

// Default returns the built-in catalog.
func Default() *Catalog {
	c, err := Parse(defaultCatalog)
	if err != nil {
		panic(fmt.Sprintf("built-in catalog: %v", err))
	}
	return c
}

// Parse decodes a catalog from YAML.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Load reads a catalog file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return c, nil
}

// Items returns every entry of the catalog as an Item, plants first.
func (c *Catalog) Items() []Item {
	items := make([]Item, 0, len(c.Plants)+len(c.Terrain)+len(c.Structures))
	for _, p := range c.Plants {
		items = append(items, p.Item())
	}
	for _, t := range c.Terrain {
		items = append(items, t.Item())
	}
	for _, s := range c.Structures {
		items = append(items, s.Item())
	}
	return items
}

// Section names one of the three catalog tables.
type Section string

const (
	SectionPlants     Section = "plants"
	SectionTerrain    Section = "terrain"
	SectionStructures Section = "structures"
)

// Sections lists the tables in display order.
var Sections = []Section{SectionPlants, SectionTerrain, SectionStructures}

// ParseSection accepts a table name or its singular form.
func ParseSection(s string) (Section, error) {
	switch strings.ToLower(s) {
	case "plants", "plant":
		return SectionPlants, nil
	case "terrain", "terrains":
		return SectionTerrain, nil
	case "structures", "structure":
		return SectionStructures, nil
	}
	return "", fmt.Errorf("unknown catalog section %q", s)
}

// Section returns the items of one table.
func (c *Catalog) Section(s Section) []Item {
	var items []Item
	switch s {
	case SectionPlants:
		for _, p := range c.Plants {
			items = append(items, p.Item())
		}
	case SectionTerrain:
		for _, t := range c.Terrain {
			items = append(items, t.Item())
		}
	case SectionStructures:
		for _, st := range c.Structures {
			items = append(items, st.Item())
		}
	}
	return items
}

// Find looks up an entry by id across all tables.
func (c *Catalog) Find(id string) (Item, bool) {
	for _, item := range c.Items() {
		if item.Ref.ID == id {
			return item, true
		}
	}
	return Item{}, false
}

// Search returns the items whose name, id or category contain query, case insensitive.
// An empty query returns everything.
func (c *Catalog) Search(query string) []Item {
	query = strings.ToLower(strings.TrimSpace(query))
	var out []Item
	for _, item := range c.Items() {
		if query == "" ||
			strings.Contains(strings.ToLower(item.Ref.Name), query) ||
			strings.Contains(strings.ToLower(item.Ref.ID), query) ||
			strings.Contains(strings.ToLower(item.Ref.Category), query) {
			out = append(out, item)
		}
	}
	return out
}

// Item converts the plant into a placeable item.
func (p Plant) Item() Item {
	return Item{
		Ref: garden.Ref{
			Source:   garden.SourcePlant,
			ID:       p.ID,
			Name:     p.Name,
			Icon:     p.Icon,
			Color:    p.Color,
			Size:     p.Spacing,
			Category: p.Category,
		},
		Footprint: garden.ParseSpacing(p.Spacing),
	}
}

// Item converts the terrain into a placeable item.
func (t Terrain) Item() Item {
	brush := t.Brush
	if brush == BrushStamp {
		brush = BrushRectangle
	}
	thickness := t.BrushThickness
	if thickness <= 0 && (brush == BrushFreehand || brush == BrushPath) {
		thickness = DefaultBrushThickness
	}
	return Item{
		Ref: garden.Ref{
			Source:   garden.SourceTerrain,
			ID:       t.ID,
			Name:     t.Name,
			Icon:     t.Icon,
			Color:    t.Color,
			Size:     t.Size,
			Texture:  t.Texture,
			Category: t.Category,
		},
		Footprint: garden.ParseTerrainSize(t.Size),
		Brush:     brush,
		Thickness: thickness,
	}
}

// Item converts the structure into a placeable item.
func (s Structure) Item() Item {
	footprint := geom.Size{W: s.Width, H: s.Height}
	if footprint.Empty() {
		footprint = garden.DefaultFootprint
	}
	brush := BrushRectangle
	if s.Shape == "circle" {
		brush = BrushCircle
	}
	return Item{
		Ref: garden.Ref{
			Source:   garden.SourceStructure,
			ID:       s.ID,
			Name:     s.Name,
			Icon:     s.Icon,
			Color:    s.Color,
			Size:     formatMeters(footprint),
			Category: s.Category,
		},
		Footprint: footprint,
		Brush:     brush,
	}
}

func formatMeters(s geom.Size) string {
	return strconv.FormatFloat(s.W, 'g', -1, 64) + "x" + strconv.FormatFloat(s.H, 'g', -1, 64) + "m"
}
