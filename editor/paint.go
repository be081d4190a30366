package editor

import (
	"image"
	"image/color"

	"gioui.org/f32"
	"gioui.org/font"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget"

	"github.com/bloodmagesoftware/gardenplan/geom"
	"github.com/bloodmagesoftware/gardenplan/render"
)

// circleSegments is the number of segments used for circles.
const circleSegments = 48

// scenePainter replays a render.Scene with Gio operations. Shapes are drawn
// in world coordinates under an affine transform; text is drawn in screen
// space so it is shaped at its final size.
type scenePainter struct {
	gtx    layout.Context
	shaper *text.Shaper
	scene  render.Scene
	scale  float32
}

func paintScene(gtx layout.Context, shaper *text.Shaper, scene render.Scene) {
	defer clip.Rect{Max: gtx.Constraints.Max}.Push(gtx.Ops).Pop()
	paint.ColorOp{Color: scene.Background}.Add(gtx.Ops)
	paint.PaintOp{}.Add(gtx.Ops)

	p := scenePainter{gtx: gtx, shaper: shaper, scene: scene, scale: float32(scene.Transform.Scale())}
	for _, o := range scene.Ops {
		p.draw(o)
	}
}

func pt(v geom.Vec2) f32.Point {
	return f32.Point{X: float32(v.X), Y: float32(v.Y)}
}

// world pushes the world to screen transform.
func (p *scenePainter) world() op.TransformStack {
	pan := p.scene.Transform.Pan
	t := f32.Affine2D{}.
		Scale(f32.Point{}, f32.Point{X: p.scale, Y: p.scale}).
		Offset(pt(pan))
	return op.Affine(t).Push(p.gtx.Ops)
}

func (p *scenePainter) draw(o render.Op) {
	if t, ok := o.(render.Text); ok {
		p.text(t)
		return
	}

	defer p.world().Pop()
	switch o := o.(type) {
	case render.FillRect:
		p.fill(p.rectPath(o.Rect, o.Radius), o.Paint)
	case render.StrokeRect:
		r := o.Rect
		p.stroke([]geom.Vec2{r.Min, geom.Pt(r.Max.X, r.Min.Y), r.Max, geom.Pt(r.Min.X, r.Max.Y), r.Min}, o.Stroke.Width, render.Solid(o.Stroke.Color), o.Stroke.Dash)
	case render.FillCircle:
		p.fill(p.polygon(geom.CirclePoints(o.Center, o.Radius, circleSegments)), o.Paint)
	case render.StrokeCircle:
		p.stroke(geom.CirclePoints(o.Center, o.Radius, circleSegments), o.Stroke.Width, render.Solid(o.Stroke.Color), o.Stroke.Dash)
	case render.FillEllipse:
		points := geom.CirclePoints(geom.Vec2{}, 1, circleSegments)
		for i := range points {
			points[i] = geom.Pt(o.Center.X+points[i].X*o.RX, o.Center.Y+points[i].Y*o.RY)
		}
		p.fill(p.polygon(points), render.Solid(o.Color))
	case render.FillPolygon:
		if len(o.Points) >= 3 {
			p.fill(p.polygon(o.Points), render.Solid(o.Color))
		}
	case render.Polyline:
		p.stroke(o.Points, o.Width, o.Paint, o.Dash)
	}
}

func (p *scenePainter) rectPath(r geom.Rect, radius float64) clip.Op {
	if radius > 0 {
		return clip.Outline{Path: roundRect(p.gtx.Ops, r, radius)}.Op()
	}
	return p.polygon([]geom.Vec2{r.Min, geom.Pt(r.Max.X, r.Min.Y), r.Max, geom.Pt(r.Min.X, r.Max.Y)})
}

func (p *scenePainter) polygon(points []geom.Vec2) clip.Op {
	var path clip.Path
	path.Begin(p.gtx.Ops)
	path.MoveTo(pt(points[0]))
	for _, v := range points[1:] {
		path.LineTo(pt(v))
	}
	path.Close()
	return clip.Outline{Path: path.End()}.Op()
}

func (p *scenePainter) fill(area clip.Op, fill render.Paint) {
	defer area.Push(p.gtx.Ops).Pop()
	p.paint(fill)
}

// paint fills the current clip. Gio gradients have two stops and no radial
// form, so radial gradients fall back to their middle color.
func (p *scenePainter) paint(fill render.Paint) {
	g := fill.Gradient
	if g != nil && g.Kind == render.GradientLinear && len(g.Stops) >= 2 {
		first, last := g.Stops[0], g.Stops[len(g.Stops)-1]
		paint.LinearGradientOp{
			Stop1:  pt(g.From),
			Color1: first.Color,
			Stop2:  pt(g.To),
			Color2: last.Color,
		}.Add(p.gtx.Ops)
	} else {
		paint.ColorOp{Color: fill.Flat()}.Add(p.gtx.Ops)
	}
	paint.PaintOp{}.Add(p.gtx.Ops)
}

func (p *scenePainter) stroke(points []geom.Vec2, width float64, fill render.Paint, dash []float64) {
	if len(points) < 2 || width <= 0 {
		return
	}
	runs := [][]geom.Vec2{points}
	if len(dash) >= 2 {
		runs = geom.Dashes(points, dash[0], dash[1])
	}
	for _, run := range runs {
		var path clip.Path
		path.Begin(p.gtx.Ops)
		path.MoveTo(pt(run[0]))
		for _, v := range run[1:] {
			path.LineTo(pt(v))
		}
		area := clip.Stroke{Path: path.End(), Width: float32(width)}.Op()
		p.fill(area, fill)
	}
}

// roundRect builds a rounded rectangle path in float coordinates;
// clip.RRect only takes whole pixels, which is too coarse in world space.
func roundRect(ops *op.Ops, r geom.Rect, radius float64) clip.PathSpec {
	rad := min(radius, r.Dx()/2, r.Dy()/2)
	var path clip.Path
	path.Begin(ops)
	path.MoveTo(pt(geom.Pt(r.Min.X+rad, r.Min.Y)))
	path.LineTo(pt(geom.Pt(r.Max.X-rad, r.Min.Y)))
	path.QuadTo(pt(geom.Pt(r.Max.X, r.Min.Y)), pt(geom.Pt(r.Max.X, r.Min.Y+rad)))
	path.LineTo(pt(geom.Pt(r.Max.X, r.Max.Y-rad)))
	path.QuadTo(pt(r.Max), pt(geom.Pt(r.Max.X-rad, r.Max.Y)))
	path.LineTo(pt(geom.Pt(r.Min.X+rad, r.Max.Y)))
	path.QuadTo(pt(geom.Pt(r.Min.X, r.Max.Y)), pt(geom.Pt(r.Min.X, r.Max.Y-rad)))
	path.LineTo(pt(geom.Pt(r.Min.X, r.Min.Y+rad)))
	path.QuadTo(pt(r.Min), pt(geom.Pt(r.Min.X+rad, r.Min.Y)))
	path.Close()
	return path.End()
}

func (p *scenePainter) text(t render.Text) {
	if t.Text == "" || t.Size <= 0 {
		return
	}
	gtx := p.gtx
	screen := p.scene.Transform.WorldToScreen(t.Pos)
	size := float32(t.Size) * p.scale
	if size < 4 {
		return
	}

	weight := font.Normal
	if t.Bold {
		weight = font.Bold
	}

	colorMacro := op.Record(gtx.Ops)
	paint.ColorOp{Color: t.Color}.Add(gtx.Ops)
	textMaterial := colorMacro.Stop()

	// Record the label first to know its size
	macro := op.Record(gtx.Ops)
	lgtx := gtx
	lgtx.Constraints = layout.Constraints{Max: image.Point{X: 1 << 14, Y: 1 << 14}}
	label := widget.Label{MaxLines: 1}
	dims := label.Layout(lgtx, p.shaper, font.Font{Weight: weight}, unit.Sp(size/gtx.Metric.PxPerSp), t.Text, textMaterial)
	call := macro.Stop()

	w, h := float32(dims.Size.X), float32(dims.Size.Y)
	x, y := float32(screen.X), float32(screen.Y)
	switch t.Align {
	case render.AlignMiddle:
		x -= w / 2
	case render.AlignEnd:
		x -= w
	}
	switch t.Valign {
	case render.ValignMiddle:
		y -= h / 2
	case render.ValignBottom:
		y -= h
	}

	if t.Plate != nil {
		pad := float32(t.Plate.Padding) * p.scale
		radius := int(float32(t.Plate.Radius)*p.scale + 0.5)
		box := image.Rect(int(x-pad), int(y-pad), int(x+w+pad+0.5), int(y+h+pad+0.5))
		border := box.Inset(-1)
		fillRRect(gtx.Ops, border, radius+1, t.Plate.Border)
		fillRRect(gtx.Ops, box, radius, t.Plate.Color)
	}

	defer op.Offset(image.Point{X: int(x + 0.5), Y: int(y + 0.5)}).Push(gtx.Ops).Pop()
	call.Add(gtx.Ops)
}

func fillRRect(ops *op.Ops, r image.Rectangle, radius int, c color.NRGBA) {
	defer clip.UniformRRect(r, radius).Push(ops).Pop()
	paint.ColorOp{Color: c}.Add(ops)
	paint.PaintOp{}.Add(ops)
}
