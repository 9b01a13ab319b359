package svgmesh

import "github.com/gogpu/svgmesh/internal/stroke"

// antialiasMesh builds a strip of the given width around every ring of
// polys. Inner vertices carry the fill colour and outer vertices the same
// colour with zero alpha. A width of zero or less yields empty data.
func antialiasMesh(polys []Polygon, c RGBA8, width float64) MeshData {
	var data MeshData
	if !(width > 0) {
		return data
	}
	faded := c
	faded.A = 0
	for _, p := range polys {
		for _, ring := range p.Contours() {
			inner, outer := stroke.Fringe(ring, width)
			n := len(inner)
			if n < 3 {
				continue
			}
			base := uint32(len(data.Vertices))
			data.Vertices = append(data.Vertices, inner...)
			data.Vertices = append(data.Vertices, outer...)
			for range n {
				data.Colors = append(data.Colors, c)
			}
			for range n {
				data.Colors = append(data.Colors, faded)
			}
			for _, i := range stroke.FringeTriangles(n) {
				data.Indices = append(data.Indices, base+i)
			}
		}
	}
	return data
}

// antialiasFill is the fill of a fringe: always blended.
func antialiasFill(f Fill) Fill {
	f.Blend = BlendAlphaBlended
	return f
}
