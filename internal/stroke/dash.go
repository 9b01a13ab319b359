package stroke

import (
	"math"

	"github.com/gogpu/svgmesh/internal/geom"
)

// Dash defines a dash pattern of alternating dash and gap lengths.
type Dash struct {
	// Array contains alternating dash/gap lengths. An odd-length array is
	// logically repeated to make it even ([5] becomes [5, 5]).
	Array []float64

	// Offset is the distance into the pattern at which the contour starts.
	Offset float64
}

// NewDash creates a dash pattern. It returns nil, meaning a solid stroke,
// when no lengths are given, any length is negative, or all are zero.
func NewDash(offset float64, lengths ...float64) *Dash {
	if len(lengths) == 0 {
		return nil
	}
	positive := false
	for _, l := range lengths {
		if l < 0 || math.IsNaN(l) {
			return nil
		}
		if l > 0 {
			positive = true
		}
	}
	if !positive {
		return nil
	}

	arr := make([]float64, 0, 2*len(lengths))
	arr = append(arr, lengths...)
	if len(lengths)%2 != 0 {
		arr = append(arr, lengths...)
	}
	return &Dash{Array: arr, Offset: offset}
}

// PatternLength returns the length of one pattern cycle.
func (d *Dash) PatternLength() float64 {
	if d == nil {
		return 0
	}
	var total float64
	for _, l := range d.Array {
		total += l
	}
	return total
}

// NormalizedOffset returns the offset wrapped into [0, PatternLength).
func (d *Dash) NormalizedOffset() float64 {
	patternLen := d.PatternLength()
	if patternLen <= 0 {
		return 0
	}
	offset := math.Mod(d.Offset, patternLen)
	if offset < 0 {
		offset += patternLen
	}
	return offset
}

// Apply splits a contour into its visible dashes. Each dash is an open
// polyline. For a closed contour, a dash running over the start point is
// joined with the first dash.
func (d *Dash) Apply(pts []Point, closed bool) [][]Point {
	pts = geom.Dedupe(pts)
	if closed {
		pts = geom.Open(pts)
		if len(pts) > 1 {
			pts = append(pts, pts[0])
		}
	}
	if len(pts) < 2 {
		return nil
	}
	if d == nil || d.PatternLength() <= 0 {
		return [][]Point{pts}
	}

	// Advance the pattern to the offset.
	idx := 0
	remaining := d.Array[0]
	for off := d.NormalizedOffset(); off > 0; {
		if off < remaining {
			remaining -= off
			break
		}
		off -= remaining
		idx = (idx + 1) % len(d.Array)
		remaining = d.Array[idx]
	}
	startsOn := idx%2 == 0

	var (
		dashes  [][]Point
		current []Point
	)
	on := startsOn
	if on {
		current = []Point{pts[0]}
	}
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		segLen := a.Distance(b)
		pos := 0.0
		for segLen-pos > remaining {
			pos += remaining
			p := a.Lerp(b, pos/segLen)
			if on {
				current = append(current, p)
				dashes = append(dashes, current)
				current = nil
			} else {
				current = []Point{p}
			}
			on = !on
			idx = (idx + 1) % len(d.Array)
			remaining = d.Array[idx]
		}
		remaining -= segLen - pos
		if on {
			current = append(current, b)
		}
	}
	if on && len(current) > 1 {
		if closed && startsOn && len(dashes) > 0 {
			// wrap onto the first dash
			dashes[0] = append(current, dashes[0][1:]...)
		} else {
			dashes = append(dashes, current)
		}
	}

	out := dashes[:0]
	for _, dash := range dashes {
		if dash = geom.Dedupe(dash); len(dash) > 1 {
			out = append(out, dash)
		}
	}
	return out
}
