// Package depth assigns draw layers to overlapping mesh fragments.
//
// Fragments are placed in paint order. A fragment that overlaps nothing
// already placed sits on layer 0. Otherwise it is lifted above the highest
// overlapping fragment when either it or that fragment is opaque, so that
// opaque geometry never shares a layer with what it covers.
package depth

import (
	"github.com/tidwall/rtree"

	"github.com/gogpu/svgmesh/internal/geom"
)

type entry struct {
	depth  int
	opaque bool
}

// Index is a bounding-volume index of placed fragments. The R-tree grows
// with its entries, so it needs no bounds up front.
type Index struct {
	tree    rtree.RTreeG[int]
	entries []entry
}

// NewIndex creates an empty index.
func NewIndex() *Index {
	return &Index{}
}

// Len returns the number of placed fragments.
func (x *Index) Len() int {
	return x.tree.Len()
}

// Place assigns a depth to a fragment with the given bounds and records it.
func (x *Index) Place(bounds geom.Rect, opaque bool) int {
	if bounds.IsEmpty() {
		x.entries = append(x.entries, entry{opaque: opaque})
		return 0
	}
	min, max := [2]float64{bounds.MinX, bounds.MinY}, [2]float64{bounds.MaxX, bounds.MaxY}

	highest, highestOpaque, hit := 0, false, false
	x.tree.Search(min, max, func(_, _ [2]float64, id int) bool {
		e := x.entries[id]
		switch {
		case !hit || e.depth > highest:
			highest, highestOpaque, hit = e.depth, e.opaque, true
		case e.depth == highest && e.opaque:
			highestOpaque = true
		}
		return true
	})

	depth := 0
	if hit {
		depth = highest
		if opaque || highestOpaque {
			depth++
		}
	}

	id := len(x.entries)
	x.entries = append(x.entries, entry{depth: depth, opaque: opaque})
	x.tree.Insert(min, max, id)
	return depth
}

// Sequence assigns depths in paint order without looking at overlap. The
// depth advances whenever the current or the previous fragment is opaque.
type Sequence struct {
	depth      int
	prevOpaque bool
}

// Next returns the depth of the next fragment.
func (s *Sequence) Next(opaque bool) int {
	if opaque || s.prevOpaque {
		s.depth++
	}
	s.prevOpaque = opaque
	return s.depth
}
