package svgmesh

import (
	"github.com/gogpu/svgmesh/internal/depth"
)

// UseGradients decides whether combined meshes keep gradient data.
type UseGradients int

const (
	// GradientsAlways keeps uv data and gradient shaders even for solid
	// meshes.
	GradientsAlways UseGradients = iota
	// GradientsAuto keeps them only when a fragment uses a gradient.
	GradientsAuto
	// GradientsNever drops them; gradient fills draw their vertex colour.
	GradientsNever
)

var useGradientsNames = [...]string{"always", "auto", "never"}

// String returns the policy name.
func (u UseGradients) String() string {
	if u < 0 || int(u) >= len(useGradientsNames) {
		return "unknown"
	}
	return useGradientsNames[u]
}

// Format is the render queue the combined mesh targets.
type Format int

const (
	// FormatOpaque splits opaque and blended triangles and sorts them by
	// depth.
	FormatOpaque Format = iota
	// FormatTransparent draws everything blended in paint order.
	FormatTransparent
	// FormatUI is FormatTransparent for UI canvases.
	FormatUI
)

var formatNames = [...]string{"opaque", "transparent", "ui"}

// String returns the format name.
func (f Format) String() string {
	if f < 0 || int(f) >= len(formatNames) {
		return "unknown"
	}
	return formatNames[f]
}

// Layer locates one fragment inside the combined vertex buffer.
type Layer struct {
	Name        string
	VertexStart int
	VertexCount int
	Center      Vec3
	Size        Vec3
}

// CombinedMesh is the merged mesh of a document. Submesh 0 is opaque when
// both kinds exist.
type CombinedMesh struct {
	Vertices []Vec3
	Colors   []RGBA8

	// UV and UV2 are nil unless gradients are kept.
	UV  []Vec2
	UV2 []Vec2

	Submeshes [][]uint32
	Bounds    Box
}

// VertexCount returns the number of vertices.
func (m *CombinedMesh) VertexCount() int {
	if m == nil {
		return 0
	}
	return len(m.Vertices)
}

// TriangleCount returns the number of triangles over all submeshes.
func (m *CombinedMesh) TriangleCount() int {
	if m == nil {
		return 0
	}
	n := 0
	for _, s := range m.Submeshes {
		n += len(s) / 3
	}
	return n
}

// Combine merges fragments into one mesh.
//
// For FormatOpaque fragments are assigned depths: with compressDepth a
// fragment is lifted above what it overlaps, otherwise the depth steps
// around every opaque fragment in paint order. Other formats keep every
// fragment at depth 0. Vertices move to z = -depth*depthOffset.
//
// Layers follow fragment order. One shader is returned per submesh.
func Combine(fragments []*Fragment, useGradients UseGradients, format Format, compressDepth bool, depthOffset float64) (*CombinedMesh, []Layer, []Shader) {
	assignDepths(fragments, format, compressDepth, depthOffset)

	var (
		useOpaque      bool
		useTransparent bool
		hasGradients   = useGradients == GradientsAlways
		opaqueCount    int
		blendedCount   int
		totalVertices  int
	)
	layers := make([]Layer, len(fragments))
	for i, f := range fragments {
		if f.IsOpaque() {
			useOpaque = true
			opaqueCount += len(f.Indices)
		} else {
			useTransparent = true
			blendedCount += len(f.Indices)
		}
		if f.Fill.IsGradient() {
			hasGradients = true
		}
		layers[i] = Layer{
			Name:        f.Name,
			VertexStart: totalVertices,
			VertexCount: len(f.Vertices),
			Center:      f.Bounds.Center(),
			Size:        f.Bounds.Size(),
		}
		totalVertices += len(f.Vertices)
	}
	if useGradients == GradientsNever {
		hasGradients = false
	}
	if format != FormatOpaque {
		useOpaque = false
		useTransparent = true
	}

	mesh := &CombinedMesh{
		Vertices: make([]Vec3, 0, totalVertices),
		Colors:   make([]RGBA8, 0, totalVertices),
		Bounds:   EmptyBox(),
	}
	if hasGradients {
		mesh.UV = make([]Vec2, totalVertices)
		mesh.UV2 = make([]Vec2, totalVertices)
	}
	for i, f := range fragments {
		mesh.Vertices = append(mesh.Vertices, f.Vertices...)
		mesh.Colors = append(mesh.Colors, f.Colors...)
		mesh.Bounds = mesh.Bounds.Union(f.Bounds)
		if hasGradients {
			copy(mesh.UV[layers[i].VertexStart:], f.UV)
			copy(mesh.UV2[layers[i].VertexStart:], f.UV2)
		}
	}

	split := useOpaque && useTransparent
	if split {
		mesh.Submeshes = [][]uint32{
			make([]uint32, 0, opaqueCount),
			make([]uint32, 0, blendedCount),
		}
	} else {
		mesh.Submeshes = [][]uint32{make([]uint32, 0, opaqueCount+blendedCount)}
	}
	transparentBlend, seen := BlendAlphaBlended, false
	for i, f := range fragments {
		sub := 0
		if split && !f.IsOpaque() {
			sub = 1
		}
		base := uint32(layers[i].VertexStart)
		for _, idx := range f.Indices {
			mesh.Submeshes[sub] = append(mesh.Submeshes[sub], base+idx)
		}

		if split && sub == 0 || len(f.Indices) == 0 {
			continue
		}
		b := f.Fill.Blend
		if b == BlendOpaque {
			b = BlendAlphaBlended
		}
		switch {
		case !seen:
			transparentBlend, seen = b, true
		case b != transparentBlend:
			transparentBlend = BlendAlphaBlended
		}
	}

	var shaders []Shader
	if useOpaque {
		shaders = append(shaders, ShaderFor(BlendOpaque, hasGradients))
	}
	if useTransparent {
		shaders = append(shaders, ShaderFor(transparentBlend, hasGradients))
	}
	return mesh, layers, shaders
}

func assignDepths(fragments []*Fragment, format Format, compressDepth bool, depthOffset float64) {
	switch {
	case format != FormatOpaque:
		for _, f := range fragments {
			f.setDepth(0, depthOffset)
		}

	case compressDepth:
		index := depth.NewIndex()
		for _, f := range fragments {
			f.setDepth(index.Place(f.Bounds.Rect(), f.IsOpaque()), depthOffset)
		}

	default:
		var seq depth.Sequence
		for _, f := range fragments {
			f.setDepth(seq.Next(f.IsOpaque()), depthOffset)
		}
	}
}
