package svgmesh

import "github.com/chewxy/math32"

// MeshData is a triangulated shape in document space, before it is
// scaled and depth-sorted.
type MeshData struct {
	Vertices []Point
	Indices  []uint32

	// Colors holds per-vertex colours. Nil paints every vertex with the
	// fill colour.
	Colors []RGBA8

	// UV and UV2 are nil for solid fills.
	UV  []Vec2
	UV2 []Vec2
}

// Fragment is the mesh of one shape, ready to combine.
type Fragment struct {
	Name     string
	Fill     Fill
	Vertices []Vec3
	Colors   []RGBA8
	UV       []Vec2
	UV2      []Vec2
	Indices  []uint32
	Bounds   Box
	Depth    int
}

// NewFragment builds a fragment from triangulated data. The fill is
// copied; an opaque fill drawn with opacity below 1 becomes alpha blended.
// Vertex alpha is multiplied by opacity, positions are multiplied by
// meshScale and every triangle is made counter-clockwise.
func NewFragment(name string, data MeshData, fill Fill, opacity, meshScale float64) *Fragment {
	f := &Fragment{Name: name, Fill: fill}
	if f.Fill.Blend == BlendOpaque && opacity < 1 {
		f.Fill.Blend = BlendAlphaBlended
	}

	scale := float32(meshScale)
	f.Vertices = make([]Vec3, len(data.Vertices))
	for i, p := range data.Vertices {
		f.Vertices[i] = Vec3{X: float32(p.X) * scale, Y: float32(p.Y) * scale}
	}
	f.Bounds = boxOf(f.Vertices)

	f.Indices = make([]uint32, 0, len(data.Indices))
	for i := 0; i+2 < len(data.Indices); i += 3 {
		a, b, c := data.Indices[i], data.Indices[i+1], data.Indices[i+2]
		if int(max(a, b, c)) >= len(f.Vertices) {
			continue
		}
		if winding(f.Vertices[a], f.Vertices[b], f.Vertices[c]) < 0 {
			b, c = c, b
		}
		f.Indices = append(f.Indices, a, b, c)
	}

	f.Colors = make([]RGBA8, len(f.Vertices))
	for i := range f.Colors {
		c := fill.Color
		if i < len(data.Colors) {
			c = data.Colors[i]
		}
		if opacity != 1 {
			c.A = uint8(math32.Round(float32(c.A) / 255 * float32(opacity) * 255))
		}
		f.Colors[i] = c
	}

	if len(data.UV) == len(f.Vertices) {
		f.UV = data.UV
	}
	if len(data.UV2) == len(f.Vertices) {
		f.UV2 = data.UV2
	}
	return f
}

// winding returns twice the signed area of a triangle; positive is
// counter-clockwise.
func winding(a, b, c Vec3) float32 {
	return (b.X-a.X)*(c.Y-a.Y) - (c.X-a.X)*(b.Y-a.Y)
}

// IsOpaque reports whether the fragment is drawn without blending.
func (f *Fragment) IsOpaque() bool {
	return f.Fill.Blend == BlendOpaque
}

// TriangleCount returns the number of triangles.
func (f *Fragment) TriangleCount() int {
	return len(f.Indices) / 3
}

// setDepth moves every vertex to z = -depth*offset.
func (f *Fragment) setDepth(depth int, offset float64) {
	f.Depth = depth
	z := -float32(depth) * float32(offset)
	for i := range f.Vertices {
		f.Vertices[i].Z = z
	}
	f.Bounds = boxOf(f.Vertices)
}
