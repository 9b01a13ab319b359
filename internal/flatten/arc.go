package flatten

import "math"

// ArcCubics converts an SVG elliptical arc from p0 to p1 into cubic Bezier
// elements. Radii too small to span the endpoints are scaled up. A zero
// radius degrades to a straight line.
func ArcCubics(p0 Point, rx, ry, rotation float64, largeArc, sweep bool, p1 Point) []Element {
	if p0.Equal(p1) {
		return nil
	}
	rx, ry = math.Abs(rx), math.Abs(ry)
	if rx == 0 || ry == 0 {
		return []Element{LineTo{Point: p1}}
	}

	sinPhi, cosPhi := math.Sincos(rotation)
	dx := (p0.X - p1.X) / 2
	dy := (p0.Y - p1.Y) / 2
	x1 := cosPhi*dx + sinPhi*dy
	y1 := -sinPhi*dx + cosPhi*dy

	lambda := (x1*x1)/(rx*rx) + (y1*y1)/(ry*ry)
	if lambda > 1 {
		s := math.Sqrt(lambda)
		rx *= s
		ry *= s
	}

	num := rx*rx*ry*ry - rx*rx*y1*y1 - ry*ry*x1*x1
	den := rx*rx*y1*y1 + ry*ry*x1*x1
	coef := 0.0
	if den != 0 && num > 0 {
		coef = math.Sqrt(num / den)
	}
	if largeArc == sweep {
		coef = -coef
	}
	cx1 := coef * rx * y1 / ry
	cy1 := -coef * ry * x1 / rx

	cx := cosPhi*cx1 - sinPhi*cy1 + (p0.X+p1.X)/2
	cy := sinPhi*cx1 + cosPhi*cy1 + (p0.Y+p1.Y)/2

	theta1 := vecAngle(1, 0, (x1-cx1)/rx, (y1-cy1)/ry)
	dtheta := vecAngle((x1-cx1)/rx, (y1-cy1)/ry, (-x1-cx1)/rx, (-y1-cy1)/ry)
	if !sweep && dtheta > 0 {
		dtheta -= 2 * math.Pi
	} else if sweep && dtheta < 0 {
		dtheta += 2 * math.Pi
	}

	n := int(math.Ceil(math.Abs(dtheta)/(math.Pi/2) - 1e-9))
	if n < 1 {
		n = 1
	}
	step := dtheta / float64(n)
	alpha := 4.0 / 3.0 * math.Tan(step/4)

	point := func(a float64) (Point, Point) {
		sa, ca := math.Sincos(a)
		p := Point{
			X: cx + rx*ca*cosPhi - ry*sa*sinPhi,
			Y: cy + rx*ca*sinPhi + ry*sa*cosPhi,
		}
		d := Point{
			X: -rx*sa*cosPhi - ry*ca*sinPhi,
			Y: -rx*sa*sinPhi + ry*ca*cosPhi,
		}
		return p, d
	}

	out := make([]Element, 0, n)
	a := theta1
	start, dStart := point(a)
	for i := 0; i < n; i++ {
		b := a + step
		end, dEnd := point(b)
		if i == n-1 {
			end = p1
		}
		out = append(out, CubicTo{
			Control1: start.Add(dStart.Mul(alpha)),
			Control2: end.Sub(dEnd.Mul(alpha)),
			Point:    end,
		})
		a, start, dStart = b, end, dEnd
	}
	return out
}

func vecAngle(ux, uy, vx, vy float64) float64 {
	return math.Atan2(ux*vy-uy*vx, ux*vx+uy*vy)
}
