package svgmesh

import (
	"log/slog"
)

// renderShape runs one shape through flattening, stroking, fill
// resolution and tessellation, and appends its fragments.
func (s *Session) renderShape(shape *Shape, log *slog.Logger) {
	label := shape.Label()
	if !shape.Visible() {
		log.Debug("svgmesh: skipped hidden shape", "shape", label)
		return
	}
	g := s.graphics
	m := shape.Matrix(Identity())
	contours := shape.Contours(m, g)
	if len(contours) == 0 {
		log.Debug("svgmesh: skipped degenerate shape", "shape", label)
		return
	}
	paint := shape.Paint

	if paint.HasFill() {
		polys := ResolveFill(contourPoints(contours), paint.FillRule, paint.Clip)
		if len(polys) == 0 {
			log.Debug("svgmesh: fill has no area", "shape", label)
		} else {
			fill := paint.resolveFill(s.atlas, m, g.Viewport())
			s.addPolygons(label, polys, fill, paint.Opacity, log)
			if s.opts.antialiasingWidth > 0 {
				data := antialiasMesh(polys, fill.Color, s.opts.antialiasingWidth)
				s.addMesh(label, data, antialiasFill(fill), paint.Opacity, Bounds(PolygonContours(polys)))
			}
			if s.opts.generateCollider {
				s.collider = append(s.collider, PolygonContours(polys)...)
			}
		}
	}

	if paint.HasStroke() {
		style := scaledStroke(paint.StrokeStyle, m, g)
		var rings [][]Point
		for _, c := range contours {
			policy := CloseNever
			if c.Closed {
				policy = CloseAlways
			}
			rings = append(rings, CreateStroke([][]Point{c.Points}, style, policy, g)...)
		}
		if len(rings) == 0 {
			log.Debug("svgmesh: stroke has no outline", "shape", label)
			return
		}
		polys := ResolveFill(rings, FillRuleNonZero, paint.Clip)
		// StrokeColor already carries the element opacity
		s.addPolygons(label, polys, paint.StrokeColor(), 1, log)
	}
}

// addPolygons tessellates polys and appends the fragment.
func (s *Session) addPolygons(label string, polys []Polygon, fill Fill, opacity float64, log *slog.Logger) {
	mesh := s.meshes.tessellate(polys, log, label)
	if len(mesh.Indices) == 0 {
		log.Debug("svgmesh: no triangles", "shape", label)
		return
	}
	data := MeshData{Vertices: mesh.Vertices, Indices: mesh.Indices}
	s.addMesh(label, data, fill, opacity, Bounds(PolygonContours(polys)))
}

// addMesh attaches gradient coordinates when fill needs them and appends
// the fragment. bounds is the box gradient percentages resolve against.
func (s *Session) addMesh(label string, data MeshData, fill Fill, opacity float64, bounds Rect) {
	if len(data.Indices) == 0 {
		return
	}
	if fill.IsGradient() {
		data.UV = gradientUV(fill, bounds, data.Vertices)
		data.UV2 = gradientIndexUV(fill, s.atlas, len(data.Vertices))
	}
	s.fragments = append(s.fragments, NewFragment(label, data, fill, opacity, s.opts.meshScale))
}
