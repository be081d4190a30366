package render

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// Palette holds the fixed colors of the canvas chrome.
type Palette struct {
	Background  color.NRGBA
	Area        color.NRGBA
	GridMinor   color.NRGBA
	GridMajor   color.NRGBA
	GridLabel   color.NRGBA
	Boundary    color.NRGBA
	Selection   color.NRGBA
	Handle      color.NRGBA
	HandleEdge  color.NRGBA
	LabelText   color.NRGBA
	LabelPlate  color.NRGBA
	Shadow      color.NRGBA
	Trunk       color.NRGBA
	TrunkEdge   color.NRGBA
	DefaultFill color.NRGBA
}

// LightPalette is the default palette.
var LightPalette = Palette{
	Background:  color.NRGBA{R: 0xf1, G: 0xf5, B: 0xf9, A: 0xff},
	Area:        color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
	GridMinor:   color.NRGBA{R: 203, G: 213, B: 225, A: 128},
	GridMajor:   color.NRGBA{R: 148, G: 163, B: 184, A: 204},
	GridLabel:   color.NRGBA{R: 100, G: 116, B: 139, A: 204},
	Boundary:    color.NRGBA{R: 0x22, G: 0xc5, B: 0x5e, A: 0xff},
	Selection:   color.NRGBA{R: 59, G: 130, B: 246, A: 204},
	Handle:      color.NRGBA{R: 0x3b, G: 0x82, B: 0xf6, A: 0xff},
	HandleEdge:  color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
	LabelText:   color.NRGBA{R: 0x1f, G: 0x29, B: 0x37, A: 0xff},
	LabelPlate:  color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 230},
	Shadow:      color.NRGBA{A: 51},
	Trunk:       color.NRGBA{R: 0x8b, G: 0x45, B: 0x13, A: 0xff},
	TrunkEdge:   color.NRGBA{R: 0x65, G: 0x43, B: 0x21, A: 0xff},
	DefaultFill: color.NRGBA{R: 0x6b, G: 0x72, B: 0x80, A: 0xff},
}

// DarkPalette is used when the host runs in a dark theme.
var DarkPalette = Palette{
	Background:  color.NRGBA{R: 0x0f, G: 0x17, B: 0x2a, A: 0xff},
	Area:        color.NRGBA{R: 0x1e, G: 0x29, B: 0x3b, A: 0xff},
	GridMinor:   color.NRGBA{R: 71, G: 85, B: 105, A: 77},
	GridMajor:   color.NRGBA{R: 100, G: 116, B: 139, A: 153},
	GridLabel:   color.NRGBA{R: 148, G: 163, B: 184, A: 204},
	Boundary:    color.NRGBA{R: 0x4a, G: 0xde, B: 0x80, A: 0xff},
	Selection:   color.NRGBA{R: 96, G: 165, B: 250, A: 204},
	Handle:      color.NRGBA{R: 0x60, G: 0xa5, B: 0xfa, A: 0xff},
	HandleEdge:  color.NRGBA{R: 0x0f, G: 0x17, B: 0x2a, A: 0xff},
	LabelText:   color.NRGBA{R: 0xf8, G: 0xfa, B: 0xfc, A: 0xff},
	LabelPlate:  color.NRGBA{R: 0x0f, G: 0x17, B: 0x2a, A: 217},
	Shadow:      color.NRGBA{A: 128},
	Trunk:       color.NRGBA{R: 0x8b, G: 0x45, B: 0x13, A: 0xff},
	TrunkEdge:   color.NRGBA{R: 0x65, G: 0x43, B: 0x21, A: 0xff},
	DefaultFill: color.NRGBA{R: 0x9c, G: 0xa3, B: 0xaf, A: 0xff},
}

// ParseColor parses a #rrggbb color. Invalid input yields fallback.
func ParseColor(hex string, fallback color.NRGBA) color.NRGBA {
	c, err := colorful.Hex(hex)
	if err != nil {
		return fallback
	}
	return toNRGBA(c, 0xff)
}

// Lighten blends c towards white by pct percent, keeping its alpha.
func Lighten(c color.NRGBA, pct float64) color.NRGBA {
	return blend(c, colorful.Color{R: 1, G: 1, B: 1}, pct)
}

// Darken blends c towards black by pct percent, keeping its alpha.
func Darken(c color.NRGBA, pct float64) color.NRGBA {
	return blend(c, colorful.Color{}, pct)
}

// WithAlpha returns c with the alpha set to a in [0, 1].
func WithAlpha(c color.NRGBA, a float64) color.NRGBA {
	if a < 0 {
		a = 0
	}
	if a > 1 {
		a = 1
	}
	c.A = uint8(a*255 + 0.5)
	return c
}

func blend(c color.NRGBA, to colorful.Color, pct float64) color.NRGBA {
	from := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
	return toNRGBA(from.BlendRgb(to, pct/100).Clamped(), c.A)
}

func toNRGBA(c colorful.Color, a uint8) color.NRGBA {
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: a}
}
