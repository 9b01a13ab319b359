package svgmesh

import (
	"encoding/binary"
	"errors"
	"hash/maphash"
	"log/slog"
	"math"

	"github.com/gogpu/svgmesh/internal/cache"
	"github.com/gogpu/svgmesh/internal/tess"
)

// Tessellate triangulates simple polygons. Every triangle is
// counter-clockwise in a y-up frame (positive signed area) and
// zero-area triangles are dropped.
func Tessellate(polys []Polygon) (vertices []Point, indices []uint32) {
	m := tessellate(polys, Logger(), "")
	return m.Vertices, m.Indices
}

func tessellate(polys []Polygon, log *slog.Logger, shape string) tess.Mesh {
	t := tess.NewTessellator()
	t.OnFallback = func(err error) {
		if errors.Is(err, tess.ErrIllConditioned) {
			log.Debug("svgmesh: ear clipping", "shape", shape, "reason", err)
			return
		}
		log.Warn("svgmesh: sweep failed, ear clipping", "shape", shape, "err", err)
	}
	for _, p := range polys {
		if m := t.Add(p); m == tess.MethodNone {
			log.Debug("svgmesh: skipped degenerate polygon", "shape", shape)
		}
	}
	return t.Mesh()
}

// meshCache keeps tessellations of identical polygon sets, keyed by a hash
// of their coordinates.
type meshCache struct {
	seed    maphash.Seed
	entries *cache.Cache[uint64, tess.Mesh]
}

func newMeshCache(size int) *meshCache {
	return &meshCache{seed: maphash.MakeSeed(), entries: cache.New[uint64, tess.Mesh](size)}
}

func (c *meshCache) key(polys []Polygon) uint64 {
	var h maphash.Hash
	h.SetSeed(c.seed)
	var buf [8]byte
	write := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		h.Write(buf[:])
	}
	for _, p := range polys {
		write(uint64(len(p.Holes)))
		for _, ring := range p.Contours() {
			write(uint64(len(ring)))
			for _, pt := range ring {
				write(math.Float64bits(pt.X))
				write(math.Float64bits(pt.Y))
			}
		}
	}
	return h.Sum64()
}

// tessellate returns the cached mesh for polys or builds it. The returned
// mesh is shared and must not be modified.
func (c *meshCache) tessellate(polys []Polygon, log *slog.Logger, shape string) tess.Mesh {
	if c == nil || c.entries == nil {
		return tessellate(polys, log, shape)
	}
	k := c.key(polys)
	if m, ok := c.entries.Get(k); ok {
		log.Debug("svgmesh: reused tessellation", "shape", shape)
		return m
	}
	m := tessellate(polys, log, shape)
	c.entries.Set(k, m)
	return m
}

func (c *meshCache) stats() cache.Stats {
	if c == nil {
		return cache.Stats{}
	}
	return c.entries.Stats()
}

func (c *meshCache) clear() {
	if c != nil {
		c.entries.Clear()
	}
}
