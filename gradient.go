package svgmesh

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/jinzhu/copier"
)

// ColorKey is a colour at a position in a gradient. Alpha is ignored; see
// [AlphaKey].
type ColorKey struct {
	Color RGBA8
	Time  float64
}

// AlphaKey is an opacity in [0, 1] at a position in a gradient.
type AlphaKey struct {
	Alpha float64
	Time  float64
}

// GradientHandle identifies a gradient in a session's pool.
type GradientHandle int

// NoGradient is the handle of a fill without a gradient.
const NoGradient GradientHandle = -1

// Gradient is a colour ramp with separate colour and alpha keys, both kept
// sorted by time.
type Gradient struct {
	ColorKeys []ColorKey
	AlphaKeys []AlphaKey

	// Index is the pool index, also written to uv2.x.
	Index int `copier:"-"`
	// Page is the atlas page holding the ramp.
	Page int `copier:"-"`
	// Refs counts how many fills reference the gradient.
	Refs int `copier:"-"`

	hash string
}

// NewGradient creates a gradient from keys. Keys are copied and sorted by
// time; times are clamped to [0, 1].
func NewGradient(colors []ColorKey, alphas []AlphaKey) *Gradient {
	g := &Gradient{
		ColorKeys: make([]ColorKey, len(colors)),
		AlphaKeys: make([]AlphaKey, len(alphas)),
		Index:     -1,
	}
	for i, k := range colors {
		k.Time = clamp01(k.Time)
		k.Color.A = 255
		g.ColorKeys[i] = k
	}
	for i, k := range alphas {
		k.Time = clamp01(k.Time)
		k.Alpha = clamp01(k.Alpha)
		g.AlphaKeys[i] = k
	}
	sort.SliceStable(g.ColorKeys, func(i, j int) bool { return g.ColorKeys[i].Time < g.ColorKeys[j].Time })
	sort.SliceStable(g.AlphaKeys, func(i, j int) bool { return g.AlphaKeys[i].Time < g.AlphaKeys[j].Time })
	return g
}

// DefaultGradient returns the plain white ramp that seeds every pool.
func DefaultGradient() *Gradient {
	return NewGradient(
		[]ColorKey{{Color: White, Time: 0}, {Color: White, Time: 1}},
		[]AlphaKey{{Alpha: 1, Time: 0}, {Alpha: 1, Time: 1}},
	)
}

// Hash returns the content key used to deduplicate gradients in the pool.
func (g *Gradient) Hash() string {
	if g.hash == "" {
		var sb strings.Builder
		sb.WriteByte('G')
		for _, k := range g.ColorKeys {
			fmt.Fprintf(&sb, "C%03d%s", quantize999(k.Time), k.Color.Hex())
		}
		for _, k := range g.AlphaKeys {
			fmt.Fprintf(&sb, "A%03d%03d", quantize999(k.Time), quantize999(k.Alpha))
		}
		g.hash = sb.String()
	}
	return g.hash
}

func quantize999(v float64) int {
	return int(math.Round(v * 999))
}

// Clone returns a deep copy. The copy is not in any pool.
func (g *Gradient) Clone() *Gradient {
	c := &Gradient{}
	if err := copier.CopyWithOption(c, g, copier.Option{DeepCopy: true}); err != nil {
		c = NewGradient(g.ColorKeys, g.AlphaKeys)
	}
	c.Index = -1
	c.hash = g.hash
	return c
}

// Evaluate samples the gradient at t, clamped to [0, 1]. A gradient without
// colour keys is black; without alpha keys it is opaque.
func (g *Gradient) Evaluate(t float64) RGBA8 {
	t = clamp01(t)

	c := Black
	if n := len(g.ColorKeys); n > 0 {
		i0, i1, f := nearestKeys(n, func(i int) float64 { return g.ColorKeys[i].Time }, t)
		c = g.ColorKeys[i0].Color.Lerp(g.ColorKeys[i1].Color, f)
	}

	alpha := 1.0
	if n := len(g.AlphaKeys); n > 0 {
		i0, i1, f := nearestKeys(n, func(i int) float64 { return g.AlphaKeys[i].Time }, t)
		a0, a1 := g.AlphaKeys[i0].Alpha, g.AlphaKeys[i1].Alpha
		alpha = a0 + (a1-a0)*f
	}
	c.A = unit8(alpha)
	return c
}

// nearestKeys finds the key closest to t by a forward scan that stops as
// soon as the distance grows, then pairs it with the neighbour on t's side.
// Equal distances resolve to the later key.
func nearestKeys(n int, time func(int) float64, t float64) (i0, i1 int, f float64) {
	best := 0
	bestDist := math.Abs(t - time(0))
	for i := 1; i < n; i++ {
		d := math.Abs(t - time(i))
		if d > bestDist {
			break
		}
		tie := d == bestDist
		best, bestDist = i, d
		if tie {
			break
		}
	}

	kt := time(best)
	switch {
	case t < kt && best > 0:
		i0, i1 = best-1, best
	case t > kt && best < n-1:
		i0, i1 = best, best+1
	default:
		return best, best, 0
	}
	span := time(i1) - time(i0)
	if span <= 0 {
		return i1, i1, 0
	}
	return i0, i1, (t - time(i0)) / span
}

// ApproxColor averages samples evenly spaced evaluations. It stands in for
// the gradient where only a flat colour can be used.
func (g *Gradient) ApproxColor(samples int) RGBA8 {
	if samples < 2 {
		return g.Evaluate(0)
	}
	var r, gg, b, a float64
	for i := 0; i < samples; i++ {
		c := g.Evaluate(float64(i) / float64(samples-1))
		r += float64(c.R)
		gg += float64(c.G)
		b += float64(c.B)
		a += float64(c.A)
	}
	n := float64(samples)
	return RGBA8{
		R: uint8(math.Round(r / n)),
		G: uint8(math.Round(gg / n)),
		B: uint8(math.Round(b / n)),
		A: uint8(math.Round(a / n)),
	}
}

// IsOpaque reports whether every alpha key is 1.
func (g *Gradient) IsOpaque() bool {
	for _, k := range g.AlphaKeys {
		if k.Alpha < 1 {
			return false
		}
	}
	return true
}

func clamp01(x float64) float64 {
	if x < 0 || math.IsNaN(x) {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
