package svgmesh

import (
	"math"

	"github.com/gogpu/svgmesh/internal/geom"
)

// Path returns the first contour of the shape flattened under m. Use
// Contours for multi-subpath geometry.
func (s *Shape) Path(m Matrix, g *Graphics) []Point {
	cs := s.Contours(m, g)
	if len(cs) == 0 {
		return nil
	}
	return cs[0].Points
}

// Contours flattens the shape geometry under m. Curves are split so that
// segments are about g.VPM() units long. Degenerate geometry yields nil.
func (s *Shape) Contours(m Matrix, g *Graphics) []Contour {
	if !s.Visible() {
		return nil
	}

	switch geo := s.Geometry.(type) {
	case Circle:
		r := g.ResolveOther(geo.R)
		return ellipseContours(g.ResolveX(geo.CX), g.ResolveY(geo.CY), r, r, m, g)

	case Ellipse:
		return ellipseContours(g.ResolveX(geo.CX), g.ResolveY(geo.CY), g.ResolveX(geo.RX), g.ResolveY(geo.RY), m, g)

	case RectShape:
		return rectContours(geo, m, g)

	case Line:
		p1 := m.TransformPoint(Pt(g.ResolveX(geo.X1), g.ResolveY(geo.Y1)))
		p2 := m.TransformPoint(Pt(g.ResolveX(geo.X2), g.ResolveY(geo.Y2)))
		return []Contour{{Points: []Point{p1, p2}}}

	case Polyline:
		return polylineContours(geo, m, g)

	case PathData:
		if geo.Path.Len() == 0 {
			return nil
		}
		return geo.Path.Transform(m).Flatten(g.VPM())
	}
	return nil
}

func ellipseContours(cx, cy, rx, ry float64, m Matrix, g *Graphics) []Contour {
	if !(rx > 0) || !(ry > 0) {
		return nil
	}
	p := NewPath()
	p.Ellipse(cx, cy, rx, ry)
	return p.Transform(m).Flatten(g.VPM())
}

// rectContours builds a rectangle, rounding the corners when either radius
// is set. Radii stay two units short of half the side.
func rectContours(r RectShape, m Matrix, g *Graphics) []Contour {
	x, y := g.ResolveX(r.X), g.ResolveY(r.Y)
	w, h := g.ResolveX(r.Width), g.ResolveY(r.Height)
	if !(w > 0) || !(h > 0) {
		return nil
	}

	rx, ry := g.ResolveX(r.RX), g.ResolveY(r.RY)
	if rx <= 0 {
		rx = ry
	}
	if ry <= 0 {
		ry = rx
	}
	rx = math.Max(0, math.Min(rx, w/2-2))
	ry = math.Max(0, math.Min(ry, h/2-2))

	p := NewPath()
	if rx > 0 && ry > 0 {
		p.RoundedRectangle(x, y, w, h, rx, ry)
	} else {
		p.Rectangle(x, y, w, h)
	}
	return p.Transform(m).Flatten(g.VPM())
}

func polylineContours(pl Polyline, m Matrix, g *Graphics) []Contour {
	if len(pl.Points) < 2 {
		return nil
	}
	pts := m.TransformPoints(pl.Points)
	if pl.Closed && !geom.IsClosed(pts) {
		pts = append(pts, pts[0])
	}
	pts = geom.Simplify(pts, g.VPM())
	return []Contour{{Points: pts, Closed: pl.Closed}}
}
