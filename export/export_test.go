package export

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/bloodmagesoftware/gardenplan/canvas"
	"github.com/bloodmagesoftware/gardenplan/garden"
	"github.com/bloodmagesoftware/gardenplan/geom"
	"github.com/bloodmagesoftware/gardenplan/render"
	"github.com/bloodmagesoftware/gardenplan/view"
	"github.com/xfmoulet/qoi"
)

var (
	white = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	red   = color.NRGBA{R: 0xff, A: 0xff}
	blue  = color.NRGBA{B: 0xff, A: 0xff}
)

func pixel(img image.Image, x, y int) color.NRGBA {
	return color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
}

func newRasterizer(t *testing.T) *Rasterizer {
	t.Helper()
	r, err := NewRasterizer()
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func TestImage(t *testing.T) {
	r := newRasterizer(t)
	scene := render.Scene{
		Transform:  view.Transform{Zoom: 200, Pan: geom.Pt(10, 0)},
		Background: white,
		Ops: []render.Op{
			render.FillRect{Rect: geom.XYWH(0, 0, 20, 20), Paint: render.Solid(red)},
			render.FillCircle{Center: geom.Pt(40, 10), Radius: 5, Paint: render.Solid(blue)},
		},
	}
	img, err := r.Image(scene, geom.Size{W: 120, H: 60})
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 120 || b.Dy() != 60 {
		t.Fatalf("bounds = %v", b)
	}

	testCases := []struct {
		Name   string
		X, Y   int
		Expect color.NRGBA
	}{
		{Name: "Left of the pan offset", X: 5, Y: 20, Expect: white},
		{Name: "Scaled rectangle", X: 30, Y: 30, Expect: red},
		{Name: "Rectangle edge", X: 48, Y: 38, Expect: red},
		{Name: "Outside the rectangle", X: 55, Y: 30, Expect: white},
		{Name: "Circle center", X: 90, Y: 20, Expect: blue},
		{Name: "Below everything", X: 90, Y: 50, Expect: white},
	}
	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			if got := pixel(img, tc.X, tc.Y); got != tc.Expect {
				t.Errorf("pixel(%d, %d) = %v, want %v", tc.X, tc.Y, got, tc.Expect)
			}
		})
	}
}

func TestImageSize(t *testing.T) {
	r := newRasterizer(t)
	if _, err := r.Image(render.Scene{}, geom.Size{}); err == nil {
		t.Error("expected an error for an empty image")
	}
	if _, err := r.Image(render.Scene{}, geom.Size{W: 1 << 20, H: 1 << 20}); err == nil {
		t.Error("expected an error for an oversized image")
	}
}

func TestGradient(t *testing.T) {
	r := newRasterizer(t)
	scene := render.Scene{
		Transform:  view.Identity,
		Background: white,
		Ops: []render.Op{render.FillRect{
			Rect: geom.XYWH(0, 0, 100, 10),
			Paint: render.Paint{Gradient: &render.Gradient{
				Kind:  render.GradientLinear,
				From:  geom.Pt(0, 0),
				To:    geom.Pt(100, 0),
				Stops: []render.Stop{{Offset: 0, Color: red}, {Offset: 1, Color: blue}},
			}},
		}},
	}
	img, err := r.Image(scene, geom.Size{W: 100, H: 10})
	if err != nil {
		t.Fatal(err)
	}
	left, right := pixel(img, 2, 5), pixel(img, 97, 5)
	if left.R < 200 || left.B > 50 {
		t.Errorf("left pixel = %v, want mostly red", left)
	}
	if right.B < 200 || right.R > 50 {
		t.Errorf("right pixel = %v, want mostly blue", right)
	}
}

func TestText(t *testing.T) {
	r := newRasterizer(t)
	plate := color.NRGBA{R: 0x22, G: 0xc5, B: 0x5e, A: 0xff}
	scene := render.Scene{
		Transform:  view.Identity,
		Background: white,
		Ops: []render.Op{render.Text{
			Pos:    geom.Pt(50, 20),
			Text:   "Tomate",
			Size:   12,
			Color:  red,
			Align:  render.AlignMiddle,
			Valign: render.ValignMiddle,
			Plate:  &render.Plate{Color: plate, Border: plate, Padding: 4},
		}},
	}
	img, err := r.Image(scene, geom.Size{W: 100, H: 40})
	if err != nil {
		t.Fatal(err)
	}

	// The plate covers the anchor's row, the text adds red pixels on it
	var plated, inked bool
	for x := 0; x < 100; x++ {
		for y := 10; y < 30; y++ {
			switch c := pixel(img, x, y); {
			case c == plate:
				plated = true
			case c.R > c.G && c.R > 0x80:
				inked = true
			}
		}
	}
	if !plated || !inked {
		t.Errorf("plate drawn: %v, text drawn: %v", plated, inked)
	}
	if got := pixel(img, 2, 2); got != white {
		t.Errorf("corner pixel = %v, want background", got)
	}
}

func TestEncode(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 8, 4))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}

	decoders := map[canvas.Format]func(*bytes.Buffer) (image.Image, error){
		canvas.FormatPNG:  func(b *bytes.Buffer) (image.Image, error) { return png.Decode(b) },
		canvas.FormatJPEG: func(b *bytes.Buffer) (image.Image, error) { return jpeg.Decode(b) },
		canvas.FormatQOI:  func(b *bytes.Buffer) (image.Image, error) { return qoi.Decode(b) },
	}
	for format, decode := range decoders {
		t.Run(string(format), func(t *testing.T) {
			var buf bytes.Buffer
			if err := Encode(&buf, img, format, 90); err != nil {
				t.Fatal(err)
			}
			out, err := decode(&buf)
			if err != nil {
				t.Fatal(err)
			}
			if out.Bounds().Dx() != 8 || out.Bounds().Dy() != 4 {
				t.Errorf("decoded bounds = %v", out.Bounds())
			}
		})
	}

	if err := Encode(&bytes.Buffer{}, img, "gif", 0); err == nil {
		t.Error("expected an error for an unknown format")
	}
}

func TestCanvasExport(t *testing.T) {
	dir := t.TempDir()
	opts := canvas.DefaultOptions()
	opts.Viewport = geom.Size{W: 500, H: 300}
	opts.Exporter = newRasterizer(t)
	opts.ExportDir = dir

	plan := garden.NewPlan("export")
	plan.Elements = append(plan.Elements,
		garden.Element{ID: 1, Pos: geom.Pt(100, 100), RealWorld: geom.Size{W: 2, H: 2},
			Body: &garden.Plant{Ref: garden.Ref{Name: "Tomate", Color: "#dc2626"}}},
		garden.Element{ID: 2, Pos: geom.Pt(200, 100), Body: &garden.TerrainDisc{
			TerrainInfo: garden.TerrainInfo{Ref: garden.Ref{Name: "Lago", Color: "#3B82F6"}, Texture: "water"},
			Radius:      30,
		}},
	)
	c := canvas.New(plan, opts)

	path, err := c.ExportFullCanvas()
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Dir(path) != dir || filepath.Ext(path) != ".png" {
		t.Errorf("unexpected path %q", path)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 1000 || cfg.Height != 600 {
		t.Errorf("image is %dx%d, want 1000x600", cfg.Width, cfg.Height)
	}
}
