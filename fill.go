package svgmesh

import (
	"github.com/gogpu/svgmesh/internal/geom"
	"github.com/gogpu/svgmesh/internal/polyclip"
)

// Polygon is a simple outer ring with zero or more holes. The outer ring
// is counter-clockwise (positive signed area) and holes are clockwise.
type Polygon = geom.Polygon

// ResolveFill unions contours under rule into simple polygons. When clip
// is not empty the result is limited to the non-zero union of the clip
// contours. Degenerate input yields nil.
func ResolveFill(contours [][]Point, rule FillRule, clip [][]Point) []Polygon {
	if len(contours) == 0 {
		return nil
	}
	if len(clip) > 0 {
		return polyclip.Intersect(contours, rule.clipRule(), clip, polyclip.NonZero)
	}
	return polyclip.Union(contours, rule.clipRule())
}

// Merge unions polygons with the non-zero rule. Stroke outlines and
// collider shapes are cleaned up with it.
func Merge(contours [][]Point) []Polygon {
	return ResolveFill(contours, FillRuleNonZero, nil)
}

// PolygonContours flattens polygons back into rings, each outer ring
// followed by its holes.
func PolygonContours(polys []Polygon) [][]Point {
	return polyclip.Contours(polys)
}

// contourPoints extracts the point lists of flattened contours. Open
// contours are closed implicitly for filling.
func contourPoints(cs []Contour) [][]Point {
	out := make([][]Point, 0, len(cs))
	for _, c := range cs {
		if len(c.Points) < 3 {
			continue
		}
		out = append(out, c.Points)
	}
	return out
}

func polygonsArea(polys []Polygon) float64 {
	var a float64
	for _, p := range polys {
		a += p.Area()
	}
	return a
}
