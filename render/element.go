package render

import (
	"image/color"
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/bloodmagesoftware/gardenplan/garden"
	"github.com/bloodmagesoftware/gardenplan/geom"
)

// element paints one element. Previews are drawn translucent.
func (b *builder) element(e *garden.Element, preview bool) {
	ref := e.Ref()
	base := ParseColor(ref.Color, b.pal.DefaultFill)
	if preview {
		base = WithAlpha(base, 0.6)
	}

	switch body := e.Body.(type) {
	case *garden.Plant:
		b.plant(e, base)
	case *garden.TerrainPath:
		b.terrainPath(body, base)
	case *garden.TerrainArea:
		b.terrainPatch(e, region{bounds: e.Bounds(b.ppm)}, body.Texture, base)
	case *garden.TerrainDisc:
		b.terrainPatch(e, region{bounds: e.Bounds(b.ppm), round: true}, body.Texture, base)
	case *garden.Rectangle:
		if ref.Source == garden.SourceStructure {
			b.structureBox(e.Bounds(b.ppm), base)
		} else {
			b.shape(e.Bounds(b.ppm), false, base)
		}
	case *garden.Circle:
		if ref.Source == garden.SourceStructure {
			b.structureRound(e.Bounds(b.ppm), base)
		} else {
			b.shape(e.Bounds(b.ppm), true, base)
		}
	}

	if preview {
		b.previewOutline(e)
		return
	}
	if e.IsLine() {
		return
	}
	if glyph := b.glyph(e); glyph != "" {
		if _, isPlant := e.Body.(*garden.Plant); !isPlant {
			bounds := e.Bounds(b.ppm)
			size := math.Min(math.Min(bounds.Dx(), bounds.Dy())*0.4, math.Max(16, b.px(20)))
			b.add(Text{Pos: bounds.Center(), Text: glyph, Size: size, Color: Darken(base, 40), Align: AlignMiddle, Valign: ValignMiddle, Bold: true})
		}
	}
	if b.opt.Labels {
		b.label(e)
	}
}

// glyph returns the catalog icon when the backend can draw it, otherwise
// the upper case initial of the element name.
func (b *builder) glyph(e *garden.Element) string {
	ref := e.Ref()
	if b.opt.IconGlyphs && ref.Icon != "" {
		return ref.Icon
	}
	name := strings.TrimSpace(e.Name())
	r, _ := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return ""
	}
	return string(unicode.ToUpper(r))
}

func (b *builder) plant(e *garden.Element, base color.NRGBA) {
	bounds := e.Bounds(b.ppm)
	r := math.Min(bounds.Dx(), bounds.Dy()) / 2
	c := e.Pos
	alpha := float64(base.A) / 255

	b.add(FillEllipse{Center: c.Add(geom.Pt(0, r*0.9)), RX: r * 0.8, RY: r * 0.3, Color: WithAlpha(b.pal.Shadow, 0.3*float64(b.pal.Shadow.A)/255)})

	// Canopy, largest layer first
	const layers = 3
	light, dark := Lighten(base, 30), Darken(base, 20)
	for i := layers; i > 0; i-- {
		f := float64(i) / layers
		lr := r * (0.6 + f*0.4)
		la := (0.3 + f*0.4) * alpha
		b.add(FillCircle{Center: c, Radius: lr, Paint: Paint{
			Color: WithAlpha(base, la),
			Gradient: &Gradient{Kind: GradientRadial, From: c.Sub(geom.Pt(lr*0.2, lr*0.2)), Radius: lr, Stops: []Stop{
				{Offset: 0, Color: WithAlpha(light, la)},
				{Offset: 0.5, Color: WithAlpha(base, la)},
				{Offset: 1, Color: WithAlpha(dark, la*0.8)},
			}},
		}})
	}

	if r > 30 {
		tw, th := r*0.15, r*0.4
		top := c.Y + r*0.3
		b.add(FillRect{Rect: geom.XYWH(c.X-tw/2, top, tw, th), Paint: Paint{
			Color: b.pal.Trunk,
			Gradient: &Gradient{Kind: GradientLinear, From: geom.Pt(c.X-tw/2, top), To: geom.Pt(c.X+tw/2, top), Stops: []Stop{
				{Offset: 0, Color: b.pal.TrunkEdge},
				{Offset: 0.5, Color: b.pal.Trunk},
				{Offset: 1, Color: b.pal.TrunkEdge},
			}},
		}})
	}

	b.add(StrokeCircle{Center: c, Radius: r, Stroke: Stroke{
		Color: WithAlpha(base, 0.6*alpha),
		Width: math.Max(1, b.px(2)),
		Dash:  []float64{b.px(5), b.px(3)},
	}})

	ir := math.Min(r*0.4, b.px(20))
	b.add(
		FillCircle{Center: c, Radius: ir, Paint: Solid(color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 230})},
		StrokeCircle{Center: c, Radius: ir, Stroke: Stroke{Color: base, Width: math.Max(1.5, b.px(2))}},
	)
	if glyph := b.glyph(e); glyph != "" {
		b.add(Text{Pos: c, Text: glyph, Size: ir * 1.2, Color: Darken(base, 30), Align: AlignMiddle, Valign: ValignMiddle, Bold: true})
	}
}

func (b *builder) terrainPath(p *garden.TerrainPath, base color.NRGBA) {
	if len(p.Points) < 2 {
		return
	}
	width := p.Thickness
	if width <= 0 {
		width = 8
	}
	off := geom.Pt(b.px(1), b.px(1))
	shadow := make([]geom.Vec2, len(p.Points))
	for i, pt := range p.Points {
		shadow[i] = pt.Add(off)
	}
	b.add(Polyline{Points: shadow, Width: width + b.px(2), Paint: Solid(color.NRGBA{A: 51})})

	alpha := float64(base.A) / 255
	first, last := p.Points[0], p.Points[len(p.Points)-1]
	b.add(Polyline{Points: p.Points, Width: width, Paint: Paint{
		Color: WithAlpha(base, 0.9*alpha),
		Gradient: &Gradient{Kind: GradientLinear, From: first, To: last, Stops: []Stop{
			{Offset: 0, Color: WithAlpha(Lighten(base, 20), 0.7*alpha)},
			{Offset: 0.5, Color: WithAlpha(base, 0.9*alpha)},
			{Offset: 1, Color: WithAlpha(Darken(base, 20), 0.7*alpha)},
		}},
	}})

	if width*b.scale > 5 {
		b.add(Polyline{
			Points: p.Points,
			Width:  math.Max(1, width/3),
			Paint:  Solid(WithAlpha(Darken(base, 15), 0.4*alpha)),
			Dash:   []float64{b.px(3), b.px(4)},
		})
	}
}

func (b *builder) terrainPatch(e *garden.Element, g region, texture string, base color.NRGBA) {
	r := g.bounds
	alpha := float64(base.A) / 255
	half := math.Max(r.Dx(), r.Dy()) / 2
	fill := Paint{
		Color: WithAlpha(base, 0.6*alpha),
		Gradient: &Gradient{Kind: GradientRadial, From: r.Center(), Radius: half, Stops: []Stop{
			{Offset: 0, Color: WithAlpha(Lighten(base, 15), 0.5*alpha)},
			{Offset: 0.5, Color: WithAlpha(base, 0.6*alpha)},
			{Offset: 1, Color: WithAlpha(Darken(base, 15), 0.4*alpha)},
		}},
	}
	border := Stroke{Color: WithAlpha(base, 0.7*alpha), Width: math.Max(1.5, b.px(2)), Dash: []float64{b.px(5), b.px(3)}}

	if g.round {
		b.add(FillCircle{Center: g.center(), Radius: g.radius(), Paint: fill})
	} else {
		b.add(FillRect{Rect: r, Paint: fill})
	}
	b.texture(TextureOf(texture, e.Name()), g, base, uint64(e.ID))
	if g.round {
		b.add(StrokeCircle{Center: g.center(), Radius: g.radius(), Stroke: border})
	} else {
		b.add(StrokeRect{Rect: r, Stroke: border})
	}
}

// shape paints a plain user drawn rectangle or circle.
func (b *builder) shape(r geom.Rect, round bool, base color.NRGBA) {
	alpha := float64(base.A) / 255
	fill := Paint{
		Color: WithAlpha(base, 0.25*alpha),
		Gradient: &Gradient{Kind: GradientRadial, From: r.Center(), Radius: math.Max(r.Dx(), r.Dy()) / 2, Stops: []Stop{
			{Offset: 0, Color: WithAlpha(base, 0.4*alpha)},
			{Offset: 1, Color: WithAlpha(base, 0.1*alpha)},
		}},
	}
	stroke := Stroke{Color: base, Width: math.Max(1, b.px(2))}
	if round {
		c, rad := r.Center(), math.Min(r.Dx(), r.Dy())/2
		b.add(FillCircle{Center: c, Radius: rad, Paint: fill}, StrokeCircle{Center: c, Radius: rad, Stroke: stroke})
		return
	}
	b.add(FillRect{Rect: r, Paint: fill}, StrokeRect{Rect: r, Stroke: stroke})
}

// structureBox paints a building with a slanted roof and side wall.
func (b *builder) structureBox(r geom.Rect, base color.NRGBA) {
	hw, hh := r.Dx()/2, r.Dy()/2
	depth := math.Min(hw, hh) * 0.35
	size := math.Min(r.Dx(), r.Dy())
	outline := Darken(base, 45)

	b.add(FillRect{Rect: geom.XYWH(r.Min.X+hw*0.15, r.Max.Y-hh*0.3, r.Dx(), hh*0.4), Paint: Solid(b.pal.Shadow)})
	b.add(FillPolygon{Color: Darken(base, 45), Points: []geom.Vec2{
		r.Min,
		r.Min.Add(geom.Pt(depth, -depth)),
		geom.Pt(r.Max.X+depth, r.Min.Y-depth),
		geom.Pt(r.Max.X, r.Min.Y),
	}})
	b.add(FillPolygon{Color: Darken(base, 28), Points: []geom.Vec2{
		geom.Pt(r.Max.X, r.Min.Y),
		geom.Pt(r.Max.X+depth, r.Min.Y-depth),
		r.Max.Add(geom.Pt(depth, -depth)),
		r.Max,
	}})
	b.add(FillRect{Rect: r, Paint: Paint{
		Color: base,
		Gradient: &Gradient{Kind: GradientLinear, From: r.Min, To: r.Max, Stops: []Stop{
			{Offset: 0, Color: Lighten(base, 18)},
			{Offset: 0.5, Color: base},
			{Offset: 1, Color: Darken(base, 18)},
		}},
	}})

	if size > 40 {
		win := size * 0.15
		spacing := size * 0.3
		c := r.Center()
		for wx := -1; wx <= 1; wx++ {
			for wy := -1; wy <= 0; wy++ {
				wr := geom.Centered(c.Add(geom.Pt(float64(wx)*spacing, float64(wy)*spacing)), win, win)
				b.add(
					FillRect{Rect: wr, Paint: Solid(color.NRGBA{R: 100, G: 150, B: 220, A: 128})},
					StrokeRect{Rect: wr, Stroke: Stroke{Color: Darken(base, 50), Width: math.Max(0.5, b.px(1))}},
				)
			}
		}
	}

	b.add(StrokeRect{Rect: r, Stroke: Stroke{Color: outline, Width: math.Max(2, b.px(3))}})

	if size > 30 {
		dw, dh := size*0.22, size*0.38
		door := geom.XYWH(r.Center().X-dw/2, r.Max.Y-dh, dw, dh)
		b.add(
			FillRect{Rect: door, Paint: Solid(Darken(base, 55))},
			StrokeRect{Rect: door, Stroke: Stroke{Color: Darken(base, 60), Width: math.Max(1.5, b.px(2))}},
		)
		if size > 50 {
			b.add(FillCircle{Center: geom.Pt(door.Min.X+dw*0.75, door.Min.Y+dh*0.5), Radius: math.Max(2, b.px(3)), Paint: Solid(Lighten(base, 30))})
		}
	}
}

// structureRound paints a tank or well as a shaded cylinder seen from above.
func (b *builder) structureRound(r geom.Rect, base color.NRGBA) {
	c := r.Center()
	half := math.Min(r.Dx(), r.Dy()) / 2

	b.add(FillEllipse{Center: c.Add(geom.Pt(half*0.1, half*0.9)), RX: half * 0.9, RY: half * 0.3, Color: b.pal.Shadow})
	b.add(FillCircle{Center: c, Radius: half, Paint: Paint{
		Color: base,
		Gradient: &Gradient{Kind: GradientLinear, From: c.Sub(geom.Pt(half, 0)), To: c.Add(geom.Pt(half, 0)), Stops: []Stop{
			{Offset: 0, Color: Darken(base, 35)},
			{Offset: 0.25, Color: Darken(base, 15)},
			{Offset: 0.5, Color: base},
			{Offset: 0.75, Color: Lighten(base, 25)},
			{Offset: 1, Color: Darken(base, 20)},
		}},
	}})
	shine := c.Sub(geom.Pt(half*0.35, half*0.35))
	b.add(FillCircle{Center: shine, Radius: half * 0.7, Paint: Paint{
		Color: color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 40},
		Gradient: &Gradient{Kind: GradientRadial, From: shine, Radius: half * 0.7, Stops: []Stop{
			{Offset: 0, Color: color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 115}},
			{Offset: 0.5, Color: color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 38}},
			{Offset: 1, Color: color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0}},
		}},
	}})
	if half*2 > 30 {
		band := Stroke{Color: WithAlpha(Darken(base, 50), 0.3), Width: math.Max(1, b.px(2))}
		for i := 1; i <= 3; i++ {
			b.add(StrokeCircle{Center: c, Radius: half * float64(i) / 4, Stroke: band})
		}
	}
	b.add(StrokeCircle{Center: c, Radius: half, Stroke: Stroke{Color: Darken(base, 45), Width: math.Max(2, b.px(3))}})
}

func (b *builder) previewOutline(e *garden.Element) {
	if e.IsLine() {
		return
	}
	s := Stroke{Color: b.pal.Selection, Width: b.px(1.5), Dash: []float64{b.px(5), b.px(5)}}
	if c, r, ok := circleOf(e); ok {
		b.add(StrokeCircle{Center: c, Radius: r, Stroke: s})
		return
	}
	b.add(StrokeRect{Rect: e.Bounds(b.ppm), Stroke: s})
}

// label places the name plate below the element, or above it when it
// would leave the working area.
func (b *builder) label(e *garden.Element) {
	name := e.Name()
	if name == "" {
		return
	}
	bounds := e.Bounds(b.ppm)
	size := b.px(b.opt.LabelSizePx)
	gap := b.px(8)
	t := Text{
		Pos:    geom.Pt(bounds.Center().X, bounds.Max.Y+gap),
		Text:   name,
		Size:   size,
		Color:  b.pal.LabelText,
		Align:  AlignMiddle,
		Valign: ValignTop,
		Bold:   true,
		Plate:  &Plate{Color: b.pal.LabelPlate, Border: WithAlpha(b.pal.LabelText, 0.15), Padding: b.px(3), Radius: b.px(4)},
	}
	if area := b.in.Metrics.AreaRect(); !area.Empty() && TextBox(t).Max.Y > area.Max.Y {
		t.Pos.Y = bounds.Min.Y - gap
		t.Valign = ValignBottom
	}
	b.add(t)
}
