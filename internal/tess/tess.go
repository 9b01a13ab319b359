// Package tess triangulates simple polygons with holes into indexed
// triangle lists.
//
// Convex contours without holes are fanned from their first vertex.
// Well-conditioned polygons go through a sweep-line constrained Delaunay
// triangulation. Polygons that repeat a vertex, touch themselves or come
// too close to it are ear clipped after bridging their holes into the outer
// ring, as are polygons the sweep rejects. Every emitted triangle is
// counter-clockwise.
package tess

import (
	"errors"
	"fmt"
	"math"

	p2t "github.com/ByteArena/poly2tri-go"

	"github.com/gogpu/svgmesh/internal/geom"
)

// Point is the shared geometry point.
type Point = geom.Point

// Method identifies the triangulation used for a polygon.
type Method int

const (
	// MethodNone means the polygon was degenerate and produced nothing.
	MethodNone Method = iota
	// MethodFan fans a convex contour from its first vertex.
	MethodFan
	// MethodSweep is the constrained Delaunay sweep.
	MethodSweep
	// MethodEarClip is the fallback for input the sweep cannot take.
	MethodEarClip
)

// String returns a short name for the method.
func (m Method) String() string {
	switch m {
	case MethodFan:
		return "fan"
	case MethodSweep:
		return "sweep"
	case MethodEarClip:
		return "earclip"
	default:
		return "none"
	}
}

// ErrSweepFailed wraps the reason the sweep could not triangulate a polygon.
var ErrSweepFailed = errors.New("tess: sweep triangulation failed")

// Mesh is an indexed triangle list.
type Mesh struct {
	Vertices []Point
	Indices  []uint32
}

// TriangleCount returns the number of triangles in the mesh.
func (m Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Area returns the summed signed area of all triangles.
func (m Mesh) Area() float64 {
	var a float64
	for i := 0; i+2 < len(m.Indices); i += 3 {
		a += geom.TriangleArea(m.Vertices[m.Indices[i]], m.Vertices[m.Indices[i+1]], m.Vertices[m.Indices[i+2]])
	}
	return a
}

// Tessellator accumulates triangulated polygons into one mesh.
//
// The tessellator is designed to be reused via Reset.
type Tessellator struct {
	mesh Mesh

	// OnFallback, if set, is called whenever a polygon is ear clipped
	// instead of swept. The error wraps ErrIllConditioned when the sweep
	// was skipped and ErrSweepFailed when it failed.
	OnFallback func(err error)
}

// NewTessellator creates an empty tessellator.
func NewTessellator() *Tessellator {
	return &Tessellator{}
}

// Reset clears the accumulated mesh without releasing memory.
func (t *Tessellator) Reset() {
	t.mesh.Vertices = t.mesh.Vertices[:0]
	t.mesh.Indices = t.mesh.Indices[:0]
}

// Mesh returns the accumulated mesh. The slices are shared with the
// tessellator until the next Reset.
func (t *Tessellator) Mesh() Mesh {
	return t.mesh
}

// Tessellate triangulates all polygons into a fresh mesh.
func Tessellate(polys []geom.Polygon) Mesh {
	t := NewTessellator()
	for _, p := range polys {
		t.Add(p)
	}
	return t.Mesh()
}

// Add triangulates one polygon and appends it to the mesh.
func (t *Tessellator) Add(p geom.Polygon) Method {
	outer := geom.Dedupe(geom.Open(p.Outer))
	if len(outer) < 3 {
		return MethodNone
	}
	area := geom.SignedArea(outer)
	if area == 0 || math.IsNaN(area) {
		return MethodNone
	}
	if area < 0 {
		geom.Reverse(outer)
	}

	holes := make([][]Point, 0, len(p.Holes))
	for _, h := range p.Holes {
		h = geom.Dedupe(geom.Open(h))
		if len(h) < 3 {
			continue
		}
		ha := geom.SignedArea(h)
		if ha == 0 {
			continue
		}
		if ha > 0 {
			geom.Reverse(h)
		}
		holes = append(holes, h)
	}

	base := uint32(len(t.mesh.Vertices))
	t.mesh.Vertices = append(t.mesh.Vertices, outer...)
	for _, h := range holes {
		t.mesh.Vertices = append(t.mesh.Vertices, h...)
	}
	start := len(t.mesh.Indices)

	method := MethodFan
	if len(holes) > 0 || !geom.IsConvex(outer) {
		var tris []int
		err := conditioned(outer, holes)
		if err == nil {
			tris, err = sweep(outer, holes)
		}
		if err == nil {
			err = checkArea(t.mesh.Vertices[base:], tris, polygonArea(outer, holes))
		}
		if err == nil {
			method = MethodSweep
			t.appendTriangles(base, tris)
		} else {
			if t.OnFallback != nil {
				t.OnFallback(err)
			}
			method = MethodEarClip
			t.appendTriangles(base, earClip(outer, holes))
		}
	} else {
		t.appendTriangles(base, fan(len(outer)))
	}

	t.fixWinding(start)
	return method
}

func (t *Tessellator) appendTriangles(base uint32, tris []int) {
	for _, i := range tris {
		t.mesh.Indices = append(t.mesh.Indices, base+uint32(i))
	}
}

// fixWinding makes every triangle from start on counter-clockwise and drops
// triangles with no area.
func (t *Tessellator) fixWinding(start int) {
	idx := t.mesh.Indices
	out := start
	for i := start; i+2 < len(idx); i += 3 {
		a, b, c := idx[i], idx[i+1], idx[i+2]
		area := geom.TriangleArea(t.mesh.Vertices[a], t.mesh.Vertices[b], t.mesh.Vertices[c])
		if area == 0 {
			continue
		}
		if area < 0 {
			b, c = c, b
		}
		idx[out], idx[out+1], idx[out+2] = a, b, c
		out += 3
	}
	t.mesh.Indices = idx[:out]
}

func polygonArea(outer []Point, holes [][]Point) float64 {
	a := geom.SignedArea(outer)
	for _, h := range holes {
		a += geom.SignedArea(h)
	}
	return a
}

// checkArea rejects a triangulation whose triangles do not cover the
// polygon area.
func checkArea(verts []Point, tris []int, want float64) error {
	var got float64
	for i := 0; i+2 < len(tris); i += 3 {
		got += math.Abs(geom.TriangleArea(verts[tris[i]], verts[tris[i+1]], verts[tris[i+2]]))
	}
	if math.Abs(got-want) > 1e-6*math.Max(1, math.Abs(want)) {
		return fmt.Errorf("%w: covered area %g, want %g", ErrSweepFailed, got, want)
	}
	return nil
}

// fan triangulates a convex ring of n vertices around vertex 0.
func fan(n int) []int {
	tris := make([]int, 0, (n-2)*3)
	for i := 1; i+1 < n; i++ {
		tris = append(tris, 0, i, i+1)
	}
	return tris
}

// sweep runs the constrained Delaunay triangulation. Indices refer to the
// outer ring followed by each hole in order.
func sweep(outer []Point, holes [][]Point) (tris []int, err error) {
	defer func() {
		if r := recover(); r != nil {
			tris = nil
			err = fmt.Errorf("%w: %v", ErrSweepFailed, r)
		}
	}()

	index := make(map[*p2t.Point]int)
	toP2T := func(ring []Point) []*p2t.Point {
		out := make([]*p2t.Point, len(ring))
		for i, p := range ring {
			out[i] = p2t.NewPoint(p.X, p.Y)
			index[out[i]] = len(index)
		}
		return out
	}

	ctx := p2t.NewSweepContext(toP2T(outer), false)
	for _, h := range holes {
		ctx.AddHole(toP2T(h))
	}
	ctx.Triangulate()

	triangles := ctx.GetTriangles()
	if len(triangles) == 0 {
		return nil, fmt.Errorf("%w: no triangles", ErrSweepFailed)
	}
	tris = make([]int, 0, len(triangles)*3)
	for _, tri := range triangles {
		for k := 0; k < 3; k++ {
			i, ok := index[tri.GetPoint(k)]
			if !ok {
				return nil, fmt.Errorf("%w: unknown vertex", ErrSweepFailed)
			}
			tris = append(tris, i)
		}
	}
	return tris, nil
}
