// Package export rasterizes canvas scenes into image files.
package export

import (
	"fmt"
	"image"
	"math"
	"os"
	"path/filepath"

	"github.com/bloodmagesoftware/gardenplan/canvas"
	"github.com/bloodmagesoftware/gardenplan/geom"
	"github.com/bloodmagesoftware/gardenplan/render"
	"github.com/bloodmagesoftware/gardenplan/view"
	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// MaxPixels caps the size of an exported image.
const MaxPixels = 16384 * 16384

// Rasterizer draws scenes with gg. Faces are cached per size, so a
// Rasterizer must not be shared between goroutines.
type Rasterizer struct {
	regular *truetype.Font
	bold    *truetype.Font
	faces   map[faceKey]font.Face
}

type faceKey struct {
	size float64
	bold bool
}

// NewRasterizer parses the bundled Go fonts.
func NewRasterizer() (*Rasterizer, error) {
	regular, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	bold, err := truetype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	return &Rasterizer{regular: regular, bold: bold, faces: make(map[faceKey]font.Face)}, nil
}

// Export implements canvas.Exporter.
func (r *Rasterizer) Export(req canvas.ExportRequest) error {
	img, err := r.Image(req.Scene, req.Size)
	if err != nil {
		return err
	}

	_ = os.MkdirAll(filepath.Dir(req.Path), 0755)
	f, err := os.Create(req.Path)
	if err != nil {
		return err
	}
	if err := Encode(f, img, req.Format, req.Quality); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Image draws scene into a new image of the given size.
func (r *Rasterizer) Image(scene render.Scene, size geom.Size) (image.Image, error) {
	w, h := int(math.Ceil(size.W)), int(math.Ceil(size.H))
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("invalid image size %dx%d", w, h)
	}
	if w*h > MaxPixels {
		return nil, fmt.Errorf("image size %dx%d is too large", w, h)
	}

	dc := gg.NewContext(w, h)
	dc.SetColor(scene.Background)
	dc.Clear()
	dc.SetLineCap(gg.LineCapRound)
	dc.SetLineJoin(gg.LineJoinRound)

	p := painter{dc: dc, r: r, t: scene.Transform}
	if p.t.Zoom <= 0 {
		p.t = view.Identity
	}
	for _, op := range scene.Ops {
		p.draw(op)
	}
	return dc.Image(), nil
}

func (r *Rasterizer) face(size float64, bold bool) font.Face {
	size = math.Max(1, math.Round(size*4)/4)
	key := faceKey{size: size, bold: bold}
	if f, ok := r.faces[key]; ok {
		return f
	}
	ttf := r.regular
	if bold {
		ttf = r.bold
	}
	f := truetype.NewFace(ttf, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	r.faces[key] = f
	return f
}

// painter replays ops in device pixels. gg applies its matrix to paths
// only, so line widths, dashes, gradients and font sizes are scaled here.
type painter struct {
	dc *gg.Context
	r  *Rasterizer
	t  view.Transform
}

func (p *painter) pt(v geom.Vec2) (float64, float64) {
	s := p.t.WorldToScreen(v)
	return s.X, s.Y
}

func (p *painter) dist(l float64) float64 {
	return l * p.t.Scale()
}

func (p *painter) dash(d []float64) {
	if len(d) == 0 {
		p.dc.SetDash()
		return
	}
	scaled := make([]float64, len(d))
	for i := range d {
		scaled[i] = p.dist(d[i])
	}
	p.dc.SetDash(scaled...)
}

func (p *painter) pattern(paint render.Paint) gg.Pattern {
	g := paint.Gradient
	if g == nil || len(g.Stops) == 0 {
		return gg.NewSolidPattern(paint.Color)
	}
	var grad gg.Gradient
	x0, y0 := p.pt(g.From)
	switch g.Kind {
	case render.GradientRadial:
		grad = gg.NewRadialGradient(x0, y0, 0, x0, y0, p.dist(g.Radius))
	default:
		x1, y1 := p.pt(g.To)
		grad = gg.NewLinearGradient(x0, y0, x1, y1)
	}
	for _, s := range g.Stops {
		grad.AddColorStop(s.Offset, s.Color)
	}
	return grad
}

func (p *painter) rect(r geom.Rect, radius float64) {
	x, y := p.pt(r.Min)
	w, h := p.dist(r.Dx()), p.dist(r.Dy())
	if radius > 0 {
		p.dc.DrawRoundedRectangle(x, y, w, h, p.dist(radius))
		return
	}
	p.dc.DrawRectangle(x, y, w, h)
}

func (p *painter) stroke(s render.Stroke) {
	p.dc.SetColor(s.Color)
	p.dc.SetLineWidth(p.dist(s.Width))
	p.dash(s.Dash)
	p.dc.Stroke()
	p.dc.SetDash()
}

func (p *painter) draw(op render.Op) {
	dc := p.dc
	switch o := op.(type) {
	case render.FillRect:
		p.rect(o.Rect, o.Radius)
		dc.SetFillStyle(p.pattern(o.Paint))
		dc.Fill()
	case render.StrokeRect:
		p.rect(o.Rect, 0)
		p.stroke(o.Stroke)
	case render.FillCircle:
		x, y := p.pt(o.Center)
		dc.DrawCircle(x, y, p.dist(o.Radius))
		dc.SetFillStyle(p.pattern(o.Paint))
		dc.Fill()
	case render.StrokeCircle:
		x, y := p.pt(o.Center)
		dc.DrawCircle(x, y, p.dist(o.Radius))
		p.stroke(o.Stroke)
	case render.FillEllipse:
		x, y := p.pt(o.Center)
		dc.DrawEllipse(x, y, p.dist(o.RX), p.dist(o.RY))
		dc.SetColor(o.Color)
		dc.Fill()
	case render.FillPolygon:
		if len(o.Points) < 3 {
			return
		}
		p.path(o.Points)
		dc.ClosePath()
		dc.SetColor(o.Color)
		dc.Fill()
	case render.Polyline:
		if len(o.Points) < 2 {
			return
		}
		p.path(o.Points)
		dc.SetStrokeStyle(p.pattern(o.Paint))
		dc.SetLineWidth(p.dist(o.Width))
		p.dash(o.Dash)
		dc.Stroke()
		dc.SetDash()
	case render.Text:
		p.text(o)
	}
}

func (p *painter) path(points []geom.Vec2) {
	p.dc.NewSubPath()
	for i, v := range points {
		x, y := p.pt(v)
		if i == 0 {
			p.dc.MoveTo(x, y)
		} else {
			p.dc.LineTo(x, y)
		}
	}
}

func (p *painter) text(t render.Text) {
	if t.Text == "" || t.Size <= 0 {
		return
	}
	dc := p.dc
	dc.SetFontFace(p.r.face(p.dist(t.Size), t.Bold))
	x, y := p.pt(t.Pos)

	var ax, ay float64
	switch t.Align {
	case render.AlignMiddle:
		ax = 0.5
	case render.AlignEnd:
		ax = 1
	}
	switch t.Valign {
	case render.ValignTop:
		ay = 1
	case render.ValignMiddle:
		ay = 0.5
	}

	if t.Plate != nil {
		w, h := dc.MeasureString(t.Text)
		pad := p.dist(t.Plate.Padding)
		left := x - ax*w - pad
		top := y - (1-ay)*h - pad
		dc.DrawRoundedRectangle(left, top, w+2*pad, h+2*pad, p.dist(t.Plate.Radius))
		dc.SetColor(t.Plate.Color)
		dc.FillPreserve()
		dc.SetColor(t.Plate.Border)
		dc.SetLineWidth(1)
		dc.Stroke()
	}

	dc.SetColor(t.Color)
	dc.DrawStringAnchored(t.Text, x, y, ax, ay)
}
