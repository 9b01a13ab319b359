package svgmesh

import (
	"math"
	"testing"
)

func quadData() MeshData {
	return MeshData{
		Vertices: []Point{Pt(0, 0), Pt(10, 0), Pt(10, 10), Pt(0, 10)},
		// second triangle is clockwise
		Indices: []uint32{0, 1, 2, 0, 3, 2},
	}
}

func TestNewFragment(t *testing.T) {
	fill := SolidFill(RGB8(255, 0, 0))
	f := NewFragment("quad", quadData(), fill, 1, 0.5)

	if f.Fill.Blend != BlendOpaque {
		t.Errorf("blend = %v, want opaque", f.Fill.Blend)
	}
	if f.Vertices[2] != (Vec3{5, 5, 0}) {
		t.Errorf("vertex 2 = %v, want scaled by 0.5", f.Vertices[2])
	}
	if f.Bounds.Center() != (Vec3{2.5, 2.5, 0}) || f.Bounds.Size() != (Vec3{5, 5, 0}) {
		t.Errorf("bounds = %+v", f.Bounds)
	}
	for i := 0; i < len(f.Indices); i += 3 {
		if winding(f.Vertices[f.Indices[i]], f.Vertices[f.Indices[i+1]], f.Vertices[f.Indices[i+2]]) <= 0 {
			t.Errorf("triangle %d is not counter-clockwise: %v", i/3, f.Indices[i:i+3])
		}
	}
	for _, c := range f.Colors {
		if c != RGB8(255, 0, 0) {
			t.Errorf("color = %v", c)
		}
	}
	if f.UV != nil || f.UV2 != nil {
		t.Error("solid fragment should carry no uv")
	}
}

func TestNewFragmentOpacity(t *testing.T) {
	fill := SolidFill(RGB8(0, 0, 255))
	f := NewFragment("faded", quadData(), fill, 0.5, 1)

	if f.Fill.Blend != BlendAlphaBlended {
		t.Errorf("blend = %v, want alpha blended", f.Fill.Blend)
	}
	if fill.Blend != BlendOpaque {
		t.Error("NewFragment modified the caller's fill")
	}
	if a := f.Colors[0].A; a != 128 {
		t.Errorf("alpha = %d, want 128", a)
	}
}

func TestNewFragmentVertexColors(t *testing.T) {
	data := quadData()
	data.Colors = []RGBA8{White, White, Transparent, Transparent}
	f := NewFragment("fringe", data, SolidFill(Black), 1, 1)
	if f.Colors[0] != White || f.Colors[3] != Transparent {
		t.Errorf("colors = %v", f.Colors)
	}
}

func TestNewFragmentDropsBadIndices(t *testing.T) {
	data := quadData()
	data.Indices = append(data.Indices, 0, 1, 9)
	f := NewFragment("bad", data, SolidFill(Black), 1, 1)
	if f.TriangleCount() != 2 {
		t.Errorf("triangles = %d, want 2", f.TriangleCount())
	}
}

func TestFragmentSetDepth(t *testing.T) {
	f := NewFragment("q", quadData(), SolidFill(Black), 1, 1)
	f.setDepth(3, 0.01)
	for _, v := range f.Vertices {
		if math.Abs(float64(v.Z)+0.03) > 1e-6 {
			t.Fatalf("z = %v, want -0.03", v.Z)
		}
	}
	if f.Depth != 3 {
		t.Errorf("Depth = %d", f.Depth)
	}
}
