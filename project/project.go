package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bloodmagesoftware/gardenplan/canvas"
	"github.com/bloodmagesoftware/gardenplan/catalog"
	"github.com/bloodmagesoftware/gardenplan/garden"
	"github.com/bloodmagesoftware/gardenplan/interact"
	"github.com/bloodmagesoftware/gardenplan/render"
	"github.com/bloodmagesoftware/gardenplan/view"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

const configFileName = "gardenplan.yaml"

// ErrNoProject is returned by FindProjectRoot when no gardenplan.yaml exists.
var ErrNoProject = errors.New(configFileName + " not found")

type (
	// Config represents the workspace configuration from gardenplan.yaml.
	// Every field is optional.
	Config struct {
		Name string `yaml:"name"`
		// PlansDir holds one YAML file per plan.
		PlansDir string `yaml:"plans_dir" envconfig:"PLANS_DIR"`
		// Catalog is an optional catalog file replacing the built-in one.
		Catalog      string          `yaml:"catalog,omitempty" envconfig:"CATALOG"`
		HistoryDepth int             `yaml:"history_depth" envconfig:"HISTORY_DEPTH"`
		Area         garden.Settings `yaml:"area" ignored:"true"`
		Export       ExportConfig    `yaml:"export"`
		Zoom         view.Limits     `yaml:"zoom" ignored:"true"`
		Interaction  interact.Config `yaml:"interaction" ignored:"true"`
		Render       render.Options  `yaml:"render" ignored:"true"`
		Theme        string          `yaml:"theme" envconfig:"THEME"`
	}

	// ExportConfig holds export defaults.
	ExportConfig struct {
		Dir     string        `yaml:"dir" envconfig:"DIR"`
		Scale   float64       `yaml:"scale" envconfig:"SCALE"`
		Format  canvas.Format `yaml:"format" envconfig:"FORMAT"`
		Quality int           `yaml:"quality" envconfig:"QUALITY"`
	}
)

// envPrefix is prepended to every environment override, for example
// GARDENPLAN_PLANS_DIR or GARDENPLAN_EXPORT_SCALE.
const envPrefix = "GARDENPLAN"

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	return Config{
		PlansDir:     "plans",
		HistoryDepth: garden.DefaultHistoryDepth,
		Area:         garden.DefaultSettings(),
		Export: ExportConfig{
			Dir:     "exports",
			Scale:   4,
			Format:  canvas.FormatPNG,
			Quality: 98,
		},
		Zoom:        view.DefaultLimits,
		Interaction: interact.DefaultConfig(),
		Render:      render.DefaultOptions(),
		Theme:       "light",
	}
}

// FindProjectRoot walks up from the current working directory looking for gardenplan.yaml.
// Returns the directory containing gardenplan.yaml, or ErrNoProject if not found.
func FindProjectRoot() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting current directory: %w", err)
	}
	return findRoot(cwd)
}

func findRoot(start string) (string, error) {
	dir := start
	for {
		configPath := filepath.Join(dir, configFileName)
		if _, err := os.Stat(configPath); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%w in any parent directory of %s", ErrNoProject, start)
		}
		dir = parent
	}
}

// LoadConfig loads gardenplan.yaml from the given project root on top of the
// defaults and applies environment overrides. A missing file is not an error.
func LoadConfig(projectRoot string) (*Config, error) {
	config := DefaultConfig()
	configPath := filepath.Join(projectRoot, configFileName)

	data, err := os.ReadFile(configPath)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("reading %s: %w", configFileName, err)
	default:
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", configFileName, err)
		}
	}

	if err := envconfig.Process(envPrefix, &config); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}
	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", configFileName, err)
	}

	// Relative paths are relative to the project root
	config.PlansDir = config.abs(projectRoot, config.PlansDir)
	config.Export.Dir = config.abs(projectRoot, config.Export.Dir)
	if config.Catalog != "" {
		config.Catalog = config.abs(projectRoot, config.Catalog)
	}
	return &config, nil
}

// Load finds the project root and loads its configuration. Outside of a
// project the working directory is used with the default configuration.
func Load() (root string, config *Config, err error) {
	root, err = FindProjectRoot()
	if errors.Is(err, ErrNoProject) {
		root, err = os.Getwd()
	}
	if err != nil {
		return "", nil, err
	}
	config, err = LoadConfig(root)
	return root, config, err
}

func (c *Config) abs(root, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}

func (c *Config) validate() error {
	if c.PlansDir == "" {
		return errors.New("'plans_dir' must not be empty")
	}
	if c.HistoryDepth < 1 {
		return fmt.Errorf("'history_depth' must be at least 1, got %d", c.HistoryDepth)
	}
	if c.Export.Scale <= 0 {
		return fmt.Errorf("'export.scale' must be positive, got %v", c.Export.Scale)
	}
	format, err := canvas.ParseFormat(string(c.Export.Format))
	if err != nil {
		return err
	}
	c.Export.Format = format
	if c.Zoom.Min <= 0 || c.Zoom.Max < c.Zoom.Min {
		return fmt.Errorf("invalid zoom limits %v..%v", c.Zoom.Min, c.Zoom.Max)
	}
	switch c.Theme {
	case "light", "dark":
	default:
		return fmt.Errorf("unknown theme %q", c.Theme)
	}
	return nil
}

// PlanPath returns the file of the named plan.
func (c *Config) PlanPath(name string) string {
	return filepath.Join(c.PlansDir, name+".yaml")
}

// LoadCatalog returns the configured catalog or the built-in one.
func (c *Config) LoadCatalog() (*catalog.Catalog, error) {
	if c.Catalog == "" {
		return catalog.Default(), nil
	}
	return catalog.Load(c.Catalog)
}

// NewPlan creates an empty plan with the configured area.
func (c *Config) NewPlan(name string) *garden.Plan {
	plan := garden.NewPlan(name)
	plan.Settings = c.Area
	plan.Normalize()
	return plan
}

// CanvasOptions returns canvas options carrying the configured tunables.
func (c *Config) CanvasOptions() canvas.Options {
	opts := canvas.DefaultOptions()
	opts.Interact = c.Interaction
	opts.Limits = c.Zoom
	opts.HistoryDepth = c.HistoryDepth
	opts.ExportDir = c.Export.Dir
	opts.Render = c.Render
	if c.Theme == "dark" {
		opts.Render.Palette = render.DarkPalette
	} else {
		opts.Render.Palette = render.LightPalette
	}
	return opts
}

// HighResOptions returns the configured export defaults.
func (c *Config) HighResOptions() canvas.ExportOptions {
	return canvas.ExportOptions{
		Scale:   c.Export.Scale,
		Format:  c.Export.Format,
		Quality: c.Export.Quality,
	}
}
