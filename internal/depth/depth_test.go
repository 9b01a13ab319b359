package depth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gogpu/svgmesh/internal/geom"
)

func TestPlaceNoOverlap(t *testing.T) {
	x := NewIndex()
	assert.Equal(t, 0, x.Place(geom.RectXYWH(0, 0, 10, 10), true))
	assert.Equal(t, 0, x.Place(geom.RectXYWH(20, 0, 10, 10), true))
	assert.Equal(t, 0, x.Place(geom.RectXYWH(40, 0, 10, 10), false))
	assert.Equal(t, 3, x.Len())
}

func TestPlaceOpaqueStacks(t *testing.T) {
	x := NewIndex()
	assert.Equal(t, 0, x.Place(geom.RectXYWH(0, 0, 10, 10), true))
	assert.Equal(t, 1, x.Place(geom.RectXYWH(5, 5, 10, 10), true))
	assert.Equal(t, 2, x.Place(geom.RectXYWH(8, 8, 10, 10), true))
	// overlaps only the first
	assert.Equal(t, 1, x.Place(geom.RectXYWH(-5, -5, 6, 6), true))
}

func TestPlaceTransparent(t *testing.T) {
	tests := []struct {
		name  string
		under []bool
		want  int
	}{
		{"over opaque", []bool{true}, 1},
		{"over transparent", []bool{false}, 0},
		{"over opaque then transparent", []bool{true, false}, 1},
		{"over transparent then opaque", []bool{false, true}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x := NewIndex()
			for _, o := range tt.under {
				x.Place(geom.RectXYWH(0, 0, 10, 10), o)
			}
			assert.Equal(t, tt.want, x.Place(geom.RectXYWH(2, 2, 2, 2), false))
		})
	}
}

func TestPlaceTieAtHighestPrefersOpaque(t *testing.T) {
	x := NewIndex()
	assert.Equal(t, 0, x.Place(geom.RectXYWH(0, 0, 10, 10), false))
	assert.Equal(t, 0, x.Place(geom.RectXYWH(20, 0, 10, 10), true))
	assert.Equal(t, 1, x.Place(geom.RectXYWH(5, 0, 20, 10), false))
}

func TestPlaceEdgeTouchCountsAsOverlap(t *testing.T) {
	x := NewIndex()
	x.Place(geom.RectXYWH(0, 0, 10, 10), true)
	assert.Equal(t, 1, x.Place(geom.RectXYWH(10, 0, 10, 10), true))
}

func TestPlaceEmptyBounds(t *testing.T) {
	x := NewIndex()
	x.Place(geom.RectXYWH(0, 0, 10, 10), true)
	assert.Equal(t, 0, x.Place(geom.EmptyRect(), true))
	assert.Equal(t, 1, x.Len())
}

func TestPlaceFarApart(t *testing.T) {
	x := NewIndex()
	assert.Equal(t, 0, x.Place(geom.RectXYWH(0, 0, 1, 1), true))
	assert.Equal(t, 0, x.Place(geom.RectXYWH(1e6, -1e6, 1, 1), true))
	assert.Equal(t, 1, x.Place(geom.RectXYWH(-1e6, -1e6, 2e6+1, 2e6), true))
}

func TestSequence(t *testing.T) {
	var s Sequence
	got := []int{
		s.Next(false),
		s.Next(false),
		s.Next(true),
		s.Next(false),
		s.Next(false),
		s.Next(true),
		s.Next(true),
	}
	assert.Equal(t, []int{0, 0, 1, 2, 2, 3, 4}, got)
}
