package garden

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bloodmagesoftware/gardenplan/geom"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// PlanVersion is written into every saved plan.
const PlanVersion = "1.0"

type (
	// Plan is the saved form of a garden: canvas settings, the element list and the view.
	Plan struct {
		Version   string    `yaml:"version"`
		ID        uuid.UUID `yaml:"id"`
		Name      string    `yaml:"name"`
		Timestamp time.Time `yaml:"timestamp"`
		Settings  Settings  `yaml:"settings"`
		Elements  []Element `yaml:"elements"`
		// Zoom is the view zoom in percent.
		Zoom float64   `yaml:"zoom"`
		Pan  geom.Vec2 `yaml:"pan"`
	}

	// Settings describes the real-world working area.
	Settings struct {
		WidthMeters    float64 `yaml:"width_meters"`
		HeightMeters   float64 `yaml:"height_meters"`
		GridSizeMeters float64 `yaml:"grid_size_meters"`
		ShowGrid       bool    `yaml:"show_grid"`
		SnapToGrid     bool    `yaml:"snap_to_grid"`
		// PixelsPerMeter is the scale the plan was drawn at. Zero means it is
		// derived from the viewport.
		PixelsPerMeter float64 `yaml:"pixels_per_meter,omitempty"`
	}
)

// DefaultSettings returns the settings of a fresh plan: a 50x30 m area with a 2 m grid.
func DefaultSettings() Settings {
	return Settings{
		WidthMeters:    50,
		HeightMeters:   30,
		GridSizeMeters: 2,
		ShowGrid:       true,
		SnapToGrid:     true,
	}
}

// NewPlan creates an empty plan.
func NewPlan(name string) *Plan {
	return &Plan{
		Version:  PlanVersion,
		ID:       uuid.New(),
		Name:     name,
		Settings: DefaultSettings(),
		Elements: make([]Element, 0),
		Zoom:     100,
	}
}

// Area returns the working area size in meters.
func (s Settings) Area() geom.Size {
	return geom.Size{W: s.WidthMeters, H: s.HeightMeters}
}

// Normalize replaces missing or invalid settings with defaults.
func (p *Plan) Normalize() {
	def := DefaultSettings()
	if p.Settings.WidthMeters <= 0 || p.Settings.HeightMeters <= 0 {
		p.Settings.WidthMeters = def.WidthMeters
		p.Settings.HeightMeters = def.HeightMeters
	}
	if p.Settings.GridSizeMeters <= 0 {
		p.Settings.GridSizeMeters = def.GridSizeMeters
	}
	if p.Zoom <= 0 {
		p.Zoom = 100
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Elements == nil {
		p.Elements = make([]Element, 0)
	}
}

// Save writes the plan to path, creating parent directories as needed.
func (p *Plan) Save(path string) error {
	_ = os.MkdirAll(filepath.Dir(path), 0755)

	p.Version = PlanVersion
	p.Timestamp = time.Now().UTC()

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := yaml.NewEncoder(f)
	defer encoder.Close()
	encoder.SetIndent(4)

	return encoder.Encode(p)
}

// Load reads the plan stored at path.
func (p *Plan) Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(p); err != nil {
		return fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}
	p.Normalize()
	return nil
}

// Counts returns the number of elements per kind.
func (p *Plan) Counts() map[Kind]int {
	counts := make(map[Kind]int)
	for i := range p.Elements {
		counts[p.Elements[i].Kind()]++
	}
	return counts
}
