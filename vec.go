package svgmesh

import "github.com/chewxy/math32"

// Vec2 is a float32 texture coordinate.
type Vec2 struct {
	X, Y float32
}

// Vec3 is a float32 vertex position.
type Vec3 struct {
	X, Y, Z float32
}

// V3 converts a document point into a vertex position at depth z.
func V3(p Point, z float32) Vec3 {
	return Vec3{X: float32(p.X), Y: float32(p.Y), Z: z}
}

// Add returns the component sum.
func (v Vec3) Add(w Vec3) Vec3 {
	return Vec3{X: v.X + w.X, Y: v.Y + w.Y, Z: v.Z + w.Z}
}

// Sub returns the component difference.
func (v Vec3) Sub(w Vec3) Vec3 {
	return Vec3{X: v.X - w.X, Y: v.Y - w.Y, Z: v.Z - w.Z}
}

// Mul scales all components.
func (v Vec3) Mul(s float32) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// XY drops the depth.
func (v Vec3) XY() Point {
	return Point{X: float64(v.X), Y: float64(v.Y)}
}

// Box is a float32 axis-aligned bounding box.
type Box struct {
	Min, Max Vec3
}

// EmptyBox returns the inverse-infinite box that any Extend replaces.
func EmptyBox() Box {
	inf := math32.Inf(1)
	return Box{
		Min: Vec3{inf, inf, inf},
		Max: Vec3{-inf, -inf, -inf},
	}
}

// IsEmpty reports whether the box holds no point.
func (b Box) IsEmpty() bool {
	return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y || b.Min.Z > b.Max.Z
}

// Extend grows the box to include v.
func (b *Box) Extend(v Vec3) {
	b.Min = Vec3{math32.Min(b.Min.X, v.X), math32.Min(b.Min.Y, v.Y), math32.Min(b.Min.Z, v.Z)}
	b.Max = Vec3{math32.Max(b.Max.X, v.X), math32.Max(b.Max.Y, v.Y), math32.Max(b.Max.Z, v.Z)}
}

// Union returns the smallest box holding both.
func (b Box) Union(o Box) Box {
	if b.IsEmpty() {
		return o
	}
	if o.IsEmpty() {
		return b
	}
	b.Extend(o.Min)
	b.Extend(o.Max)
	return b
}

// Center returns the midpoint. An empty box has a zero center.
func (b Box) Center() Vec3 {
	if b.IsEmpty() {
		return Vec3{}
	}
	return b.Min.Add(b.Max).Mul(0.5)
}

// Size returns the extent along each axis. An empty box has a zero size.
func (b Box) Size() Vec3 {
	if b.IsEmpty() {
		return Vec3{}
	}
	return b.Max.Sub(b.Min)
}

// Rect projects the box onto the XY plane.
func (b Box) Rect() Rect {
	if b.IsEmpty() {
		return EmptyRect()
	}
	return Rect{
		MinX: float64(b.Min.X), MinY: float64(b.Min.Y),
		MaxX: float64(b.Max.X), MaxY: float64(b.Max.Y),
	}
}

func boxOf(vs []Vec3) Box {
	b := EmptyBox()
	for _, v := range vs {
		b.Extend(v)
	}
	return b
}
