package svgmesh

import (
	"github.com/gogpu/svgmesh/internal/geom"
	"github.com/gogpu/svgmesh/internal/stroke"
)

// ClosePolicy decides whether a stroke wraps from the last point back to
// the first.
type ClosePolicy int

const (
	// CloseNever strokes every contour open.
	CloseNever ClosePolicy = iota
	// CloseAlways wraps every contour.
	CloseAlways
	// CloseAuto wraps contours whose last point repeats the first.
	CloseAuto
)

// String returns the policy name.
func (p ClosePolicy) String() string {
	switch p {
	case CloseNever:
		return "never"
	case CloseAlways:
		return "always"
	case CloseAuto:
		return "auto"
	}
	return "unknown"
}

// CreateStroke converts polylines into closed stroke outline rings. Width
// and dash lengths are resolved by g. An open contour gives one ring; a
// closed contour gives an outer and an inner ring. A width of zero or less
// returns nil.
func CreateStroke(paths [][]Point, style StrokeStyle, close ClosePolicy, g *Graphics) [][]Point {
	width := g.ResolveOther(style.Width)
	if !(width > 0) {
		return nil
	}

	e := stroke.NewExpander(stroke.Style{
		Width:      width,
		Cap:        style.Cap,
		Join:       style.Join,
		MiterLimit: style.MiterLimit,
	})
	e.SetTolerance(g.RoundTolerance())
	dash := stroke.NewDash(style.DashOffset, style.Dash...)

	var out [][]Point
	for _, p := range paths {
		closed := close == CloseAlways || close == CloseAuto && geom.IsClosed(p)
		if dash == nil {
			out = append(out, e.Expand(p, closed)...)
			continue
		}
		for _, d := range dash.Apply(p, closed) {
			out = append(out, e.Expand(d, false)...)
		}
	}
	return out
}

// scaledStroke returns style with width and dash lengths multiplied by
// the scale of m, so strokes thicken with their shape.
func scaledStroke(style StrokeStyle, m Matrix, g *Graphics) StrokeStyle {
	s := m.ScaleFactor()
	out := style
	out.Width = Px(g.ResolveOther(style.Width) * s)
	if len(style.Dash) > 0 {
		out.Dash = make([]float64, len(style.Dash))
		for i, d := range style.Dash {
			out.Dash[i] = d * s
		}
	}
	out.DashOffset = style.DashOffset * s
	return out
}
