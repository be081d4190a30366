package geom

import "math"

// CirclePoints approximates a circle with the given number of segments.
// The first point is repeated at the end so the result is a closed polyline.
func CirclePoints(c Vec2, r float64, segments int) []Vec2 {
	if segments < 3 {
		segments = 3
	}
	points := make([]Vec2, 0, segments+1)
	for i := 0; i <= segments; i++ {
		angle := float64(i) * 2 * math.Pi / float64(segments)
		points = append(points, Vec2{X: c.X + r*math.Cos(angle), Y: c.Y + r*math.Sin(angle)})
	}
	return points
}

// Dashes splits a polyline into the runs that are drawn when it is stroked
// with an on/off dash pattern. Each returned slice is one visible dash.
func Dashes(points []Vec2, on, off float64) [][]Vec2 {
	if len(points) < 2 || on <= 0 {
		return nil
	}
	if off <= 0 {
		return [][]Vec2{append([]Vec2(nil), points...)}
	}

	var dashes [][]Vec2
	drawing := true
	remaining := on
	current := []Vec2{points[0]}

	for i := 0; i < len(points)-1; i++ {
		a, b := points[i], points[i+1]
		segLen := a.Dist(b)
		pos := 0.0
		for segLen-pos > remaining {
			pos += remaining
			cut := a.Add(b.Sub(a).Scale(pos / segLen))
			if drawing {
				current = append(current, cut)
				dashes = append(dashes, current)
				current = nil
				remaining = off
			} else {
				current = []Vec2{cut}
				remaining = on
			}
			drawing = !drawing
		}
		remaining -= segLen - pos
		if drawing {
			current = append(current, b)
		}
	}
	if drawing && len(current) > 1 {
		dashes = append(dashes, current)
	}
	return dashes
}
