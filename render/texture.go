package render

import (
	"image/color"
	"math"
	"math/rand/v2"
	"strings"

	"github.com/bloodmagesoftware/gardenplan/geom"
)

// Texture is the fill pattern of a terrain patch.
type Texture string

const (
	TextureGrid  Texture = "grid"
	TextureWaves Texture = "waves"
	TextureDots  Texture = "dots"
	TextureLines Texture = "lines"
)

var textureKeywords = []struct {
	texture  Texture
	keywords []string
}{
	{TextureWaves, []string{"água", "agua", "water", "stream", "lago", "riacho"}},
	{TextureDots, []string{"areia", "sand", "arenos"}},
	{TextureLines, []string{"argila", "clay", "argilos"}},
}

// TextureOf picks the pattern for a terrain by matching keywords in its
// texture name first and its display name second.
func TextureOf(texture, name string) Texture {
	for _, s := range []string{texture, name} {
		s = strings.ToLower(s)
		for _, k := range textureKeywords {
			for _, kw := range k.keywords {
				if strings.Contains(s, kw) {
					return k.texture
				}
			}
		}
	}
	return TextureGrid
}

// region is the shape a texture is clipped to.
type region struct {
	bounds geom.Rect
	round  bool
}

func (g region) center() geom.Vec2 { return g.bounds.Center() }

func (g region) radius() float64 { return math.Min(g.bounds.Dx(), g.bounds.Dy()) / 2 }

func (g region) contains(p geom.Vec2) bool {
	if g.round {
		return p.Dist(g.center()) <= g.radius()
	}
	return g.bounds.Contains(p)
}

// hspan returns where the horizontal line at y enters and leaves the region.
func (g region) hspan(y float64) (float64, float64, bool) {
	if !g.round {
		if y < g.bounds.Min.Y || y > g.bounds.Max.Y {
			return 0, 0, false
		}
		return g.bounds.Min.X, g.bounds.Max.X, true
	}
	c, r := g.center(), g.radius()
	dy := y - c.Y
	if math.Abs(dy) >= r {
		return 0, 0, false
	}
	half := math.Sqrt(r*r - dy*dy)
	return c.X - half, c.X + half, true
}

// vspan is hspan for vertical lines.
func (g region) vspan(x float64) (float64, float64, bool) {
	if !g.round {
		if x < g.bounds.Min.X || x > g.bounds.Max.X {
			return 0, 0, false
		}
		return g.bounds.Min.Y, g.bounds.Max.Y, true
	}
	c, r := g.center(), g.radius()
	dx := x - c.X
	if math.Abs(dx) >= r {
		return 0, 0, false
	}
	half := math.Sqrt(r*r - dx*dx)
	return c.Y - half, c.Y + half, true
}

// texture emits the pattern ops for a region. seed keeps the dot jitter
// stable between frames.
func (b *builder) texture(kind Texture, g region, c color.NRGBA, seed uint64) {
	c = WithAlpha(c, 0.3*float64(c.A)/255)
	width := math.Max(0.5, b.px(1))
	r := g.bounds

	switch kind {
	case TextureDots:
		spacing := math.Max(5, b.px(8))
		size := math.Max(0.5, b.px(1.5))
		rng := rand.New(rand.NewPCG(seed, 0x9e3779b97f4a7c15))
		for x := r.Min.X; x < r.Max.X; x += spacing {
			for y := r.Min.Y; y < r.Max.Y; y += spacing {
				p := geom.Pt(x+(rng.Float64()-0.5)*spacing*0.3, y+(rng.Float64()-0.5)*spacing*0.3)
				if g.contains(p) {
					b.add(FillCircle{Center: p, Radius: size, Paint: Solid(c)})
				}
			}
		}

	case TextureLines:
		spacing := math.Max(4, b.px(6))
		for y := r.Min.Y; y < r.Max.Y; y += spacing {
			if x0, x1, ok := g.hspan(y); ok {
				b.add(Polyline{Points: []geom.Vec2{geom.Pt(x0, y), geom.Pt(x1, y)}, Width: width, Paint: Solid(c)})
			}
		}

	case TextureWaves:
		spacing := math.Max(6, b.px(10))
		for y := r.Min.Y; y < r.Max.Y; y += spacing {
			var run []geom.Vec2
			for x := r.Min.X; x <= r.Max.X; x += 2 {
				p := geom.Pt(x, y+math.Sin((x-r.Min.X)*0.2)*2)
				if g.contains(p) {
					run = append(run, p)
					continue
				}
				if len(run) > 1 {
					b.add(Polyline{Points: run, Width: width, Paint: Solid(c)})
				}
				run = nil
			}
			if len(run) > 1 {
				b.add(Polyline{Points: run, Width: width, Paint: Solid(c)})
			}
		}

	default:
		spacing := math.Max(8, b.px(12))
		for x := r.Min.X + spacing; x < r.Max.X; x += spacing {
			if y0, y1, ok := g.vspan(x); ok {
				b.add(Polyline{Points: []geom.Vec2{geom.Pt(x, y0), geom.Pt(x, y1)}, Width: width, Paint: Solid(c)})
			}
		}
		for y := r.Min.Y + spacing; y < r.Max.Y; y += spacing {
			if x0, x1, ok := g.hspan(y); ok {
				b.add(Polyline{Points: []geom.Vec2{geom.Pt(x0, y), geom.Pt(x1, y)}, Width: width, Paint: Solid(c)})
			}
		}
	}
}
