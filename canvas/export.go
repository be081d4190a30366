package canvas

import (
	"fmt"
	"math"

	"github.com/bloodmagesoftware/gardenplan/garden"
	"github.com/bloodmagesoftware/gardenplan/geom"
	"github.com/bloodmagesoftware/gardenplan/render"
	"github.com/bloodmagesoftware/gardenplan/view"
)

// Format is an image file format.
type Format string

const (
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
	FormatQOI  Format = "qoi"
)

// ParseFormat accepts a format name or a common file extension.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "png", "":
		return FormatPNG, nil
	case "jpeg", "jpg":
		return FormatJPEG, nil
	case "qoi":
		return FormatQOI, nil
	}
	return "", fmt.Errorf("unknown image format %q", s)
}

// ExportRequest asks an Exporter to rasterize a scene into a file.
type ExportRequest struct {
	Scene render.Scene
	// Size is the image size in pixels.
	Size    geom.Size
	Format  Format
	Quality int
	Path    string
}

// Exporter rasterizes scenes. The canvas only prepares the scene; drawing
// and encoding is left to the implementation.
type Exporter interface {
	Export(req ExportRequest) error
}

// ExportOptions controls an export.
type ExportOptions struct {
	// Scale multiplies the world pixel size of the exported region.
	Scale   float64
	Format  Format
	Quality int
	// Path overrides the generated file name.
	Path string
}

func (o ExportOptions) withDefaults(scale float64, quality int) ExportOptions {
	if o.Scale <= 0 {
		o.Scale = scale
	}
	if o.Format == "" {
		o.Format = FormatPNG
	}
	if o.Quality <= 0 {
		o.Quality = quality
	}
	return o
}

// ExportFullCanvas writes the whole working area at twice its world size.
func (c *Canvas) ExportFullCanvas() (string, error) {
	return c.ExportRegion(c.machine.Metrics().AreaRect(), "canvas-full", ExportOptions{}.withDefaults(2, 95))
}

// ExportSelection writes the area picked with the area selection tool.
func (c *Canvas) ExportSelection() (string, error) {
	area, ok := c.machine.SelectionArea()
	if !ok {
		return "", ErrNoSelectionArea
	}
	return c.ExportRegion(area, "selection", ExportOptions{}.withDefaults(3, 95))
}

// ExportSelectedElements writes the bounding box around the selected elements.
func (c *Canvas) ExportSelectedElements() (string, error) {
	bounds, ok := c.SelectedBounds()
	if !ok {
		return "", ErrNothingSelected
	}
	return c.ExportRegion(bounds.Inset(-c.machine.Metrics().MetersToPixels(1)), "selected-elements", ExportOptions{}.withDefaults(3, 95))
}

// ExportHighResolution writes the whole working area with custom options.
// The scale defaults to 4.
func (c *Canvas) ExportHighResolution(opts ExportOptions) (string, error) {
	return c.ExportRegion(c.machine.Metrics().AreaRect(), "canvas-hires", opts.withDefaults(4, 98))
}

// SelectedBounds returns the union of the bounds of all selected elements.
func (c *Canvas) SelectedBounds() (geom.Rect, bool) {
	ppm := c.machine.PixelsPerMeter()
	var bounds geom.Rect
	found := false
	for _, e := range c.store.Elements() {
		if e.Selected {
			bounds = bounds.Union(e.Bounds(ppm))
			found = true
		}
	}
	return bounds, found
}

// ExportRegion renders region, given in world pixels, into a file. The
// selection highlight and the grid labels are not part of the image.
func (c *Canvas) ExportRegion(region geom.Rect, prefix string, opts ExportOptions) (string, error) {
	if c.exporter == nil {
		return "", ErrNoExporter
	}
	if region.Empty() {
		return "", fmt.Errorf("export region %v is empty", region)
	}
	opts = opts.withDefaults(1, 95)

	size := geom.Size{W: math.Ceil(region.Dx() * opts.Scale), H: math.Ceil(region.Dy() * opts.Scale)}
	t := view.Transform{Zoom: opts.Scale * 100, Pan: region.Min.Scale(-opts.Scale)}

	// Selection state is UI only
	elements := garden.CloneElements(c.store.Elements())
	for i := range elements {
		elements[i].Selected = false
	}
	scene := render.Build(render.Input{
		Elements:  elements,
		Transform: t,
		Metrics:   c.machine.Metrics(),
		ShowGrid:  c.machine.ShowGrid(),
		Viewport:  size,
		Options:   c.render,
	})

	path := opts.Path
	if path == "" {
		path = c.exportName(prefix, opts.Format)
	}
	req := ExportRequest{Scene: scene, Size: size, Format: opts.Format, Quality: opts.Quality, Path: path}
	if err := c.exporter.Export(req); err != nil {
		return "", fmt.Errorf("exporting %s: %w", path, err)
	}
	return path, nil
}
