package svgmesh

import (
	"fmt"
	"image"
	"math"
	"path/filepath"
	"sync"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"golang.org/x/image/draw"

	"github.com/gogpu/svgmesh/internal/pack"
)

// AtlasRegion is where a gradient strip sits in the atlas.
type AtlasRegion = pack.Region

// AtlasLayout holds strip and page sizes in pixels.
type AtlasLayout = pack.Layout

// DefaultAtlasLayout returns 128x4 strips on 512x512 pages.
func DefaultAtlasLayout() AtlasLayout {
	return pack.DefaultLayout()
}

// Atlas is a pool of unique gradients rasterised as horizontal strips onto
// RGBA pages. Index 0 always holds the default white ramp.
type Atlas struct {
	mu     sync.Mutex
	alloc  *pack.Allocator
	pool   []*Gradient
	byHash map[string]GradientHandle
	pages  []*image.NRGBA
}

// NewAtlas creates an atlas seeded with the default gradient.
func NewAtlas(layout AtlasLayout) (*Atlas, error) {
	alloc, err := pack.NewAllocator(layout)
	if err != nil {
		return nil, fmt.Errorf("svgmesh: atlas: %w", err)
	}
	a := &Atlas{alloc: alloc}
	a.reset()
	return a, nil
}

// Layout returns the strip and page sizes.
func (a *Atlas) Layout() AtlasLayout {
	return a.alloc.Layout()
}

// AddGradient adds g to the pool unless a gradient with the same hash is
// already there, in which case the pooled one is returned with its
// reference count incremented.
func (a *Atlas) AddGradient(g *Gradient) (GradientHandle, *Gradient) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.add(g)
}

func (a *Atlas) add(g *Gradient) (GradientHandle, *Gradient) {
	if h, ok := a.byHash[g.Hash()]; ok {
		pooled := a.pool[h]
		pooled.Refs++
		return h, pooled
	}

	index, region := a.alloc.Allocate()
	g.Index = index
	g.Page = region.Page
	g.Refs = 1
	a.pool = append(a.pool, g)
	a.byHash[g.Hash()] = GradientHandle(index)
	a.blit(g, region)
	return GradientHandle(index), g
}

// Gradient returns the pooled gradient for h, or nil.
func (a *Atlas) Gradient(h GradientHandle) *Gradient {
	a.mu.Lock()
	defer a.mu.Unlock()
	if h < 0 || int(h) >= len(a.pool) {
		return nil
	}
	return a.pool[h]
}

// Gradients returns the pool in index order.
func (a *Atlas) Gradients() []*Gradient {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]*Gradient(nil), a.pool...)
}

// Len returns the pool size, including the default gradient.
func (a *Atlas) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.pool)
}

// Region returns the strip placement of h.
func (a *Atlas) Region(h GradientHandle) AtlasRegion {
	return a.alloc.Layout().Place(int(h))
}

// Pages returns the atlas pages. The images are owned by the atlas.
func (a *Atlas) Pages() []*image.NRGBA {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]*image.NRGBA(nil), a.pages...)
}

// Params returns (page width, page height, strip width, strip height) for
// the gradient shader.
func (a *Atlas) Params() [4]float32 {
	l := a.alloc.Layout()
	return [4]float32{float32(l.PageWidth), float32(l.PageHeight), float32(l.StripWidth), float32(l.StripHeight)}
}

// Rebuild re-rasterises every pooled gradient onto fresh pages.
func (a *Atlas) Rebuild() {
	a.mu.Lock()
	defer a.mu.Unlock()

	pool := a.pool
	a.alloc.Reset()
	a.pages = nil
	for _, g := range pool {
		_, region := a.alloc.Allocate()
		g.Page = region.Page
		a.blit(g, region)
	}
}

// Reset empties the pool back to the default gradient.
func (a *Atlas) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.reset()
}

func (a *Atlas) reset() {
	a.alloc.Reset()
	a.pool = nil
	a.pages = nil
	a.byHash = make(map[string]GradientHandle)
	a.add(DefaultGradient())
}

func (a *Atlas) blit(g *Gradient, r AtlasRegion) {
	l := a.alloc.Layout()
	for len(a.pages) <= r.Page {
		a.pages = append(a.pages, image.NewNRGBA(image.Rect(0, 0, l.PageWidth, l.PageHeight)))
	}
	strip := RenderGradient(g, r.Width, r.Height)
	dst := image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
	draw.Draw(a.pages[r.Page], dst, strip, image.Point{}, draw.Src)
}

// Compact renders the whole pool onto one page two strips wide and just
// tall enough, for hosts that want a single small texture.
func (a *Atlas) Compact() *image.NRGBA {
	a.mu.Lock()
	defer a.mu.Unlock()

	l := a.alloc.Layout()
	cl := pack.CompactLayout(len(a.pool), l.StripWidth, l.StripHeight)
	img := image.NewNRGBA(image.Rect(0, 0, cl.PageWidth, cl.PageHeight))
	for i, g := range a.pool {
		r := cl.Place(i)
		strip := RenderGradient(g, r.Width, r.Height)
		draw.Draw(img, image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height), strip, image.Point{}, draw.Src)
	}
	return img
}

// TextureDescriptor describes one atlas page as a GPU texture.
func (a *Atlas) TextureDescriptor() gputypes.TextureDescriptor {
	l := a.alloc.Layout()
	return gputypes.TextureDescriptor{
		Label:         "svgmesh gradient atlas",
		Size:          gputypes.NewExtent2D(uint32(l.PageWidth), uint32(l.PageHeight)),
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	}
}

// Upload writes a whole page to a GPU texture.
func (a *Atlas) Upload(page int, dst gpucontext.TextureRegionUpdater) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if page < 0 || page >= len(a.pages) {
		return fmt.Errorf("svgmesh: atlas page %d out of range [0, %d)", page, len(a.pages))
	}
	img := a.pages[page]
	b := img.Bounds()
	if err := dst.UpdateRegion(0, 0, b.Dx(), b.Dy(), img.Pix); err != nil {
		return fmt.Errorf("svgmesh: upload atlas page %d: %w", page, err)
	}
	return nil
}

// UploadGradient writes only the strip of h to the texture of its page.
func (a *Atlas) UploadGradient(h GradientHandle, dst gpucontext.TextureRegionUpdater) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if h < 0 || int(h) >= len(a.pool) {
		return fmt.Errorf("svgmesh: gradient %d not in pool", h)
	}
	r := a.alloc.Layout().Place(int(h))
	sub := a.pages[r.Page].SubImage(image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)).(*image.NRGBA)
	data := make([]byte, 0, r.Width*r.Height*4)
	for y := 0; y < r.Height; y++ {
		row := sub.Pix[y*sub.Stride : y*sub.Stride+r.Width*4]
		data = append(data, row...)
	}
	if err := dst.UpdateRegion(r.X, r.Y, r.Width, r.Height, data); err != nil {
		return fmt.Errorf("svgmesh: upload gradient %d: %w", h, err)
	}
	return nil
}

// SavePNG writes every page to dir as <prefix>_<page>.png and returns the
// file names.
func (a *Atlas) SavePNG(dir, prefix string) ([]string, error) {
	pages := a.Pages()
	names := make([]string, 0, len(pages))
	for i, p := range pages {
		name := filepath.Join(dir, fmt.Sprintf("%s_%d.png", prefix, i))
		if err := imgio.Save(name, p, imgio.PNGEncoder()); err != nil {
			return names, fmt.Errorf("svgmesh: save atlas page: %w", err)
		}
		names = append(names, name)
	}
	return names, nil
}

// RenderGradient rasterises g into a w x h strip. The ramp is inset by one
// pixel at each end so bilinear sampling at the edges does not bleed into
// the neighbouring strip.
func RenderGradient(g *Gradient, w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	if w <= 0 || h <= 0 {
		return img
	}
	span := float64(w - 3)
	for x := 0; x < w; x++ {
		t := 0.0
		if span > 0 {
			t = float64(x-1) / span
		}
		c := g.Evaluate(t).NRGBA()
		for y := 0; y < h; y++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

// GradientShapeTexture returns the size x size lookup texture used by the
// gradient shaders: R holds the linear parameter, G the radial distance
// and B the conical angle. Alpha is opaque.
func GradientShapeTexture(size int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	if size < 2 {
		return img
	}
	half := float64(size) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx, dy := float64(x)-half, float64(y)-half
			radial := 0.0
			if half > 1 {
				radial = math.Hypot(dx, dy) / (half - 1)
			}
			angle := math.Atan2(dy, dx)
			if angle < 0 {
				angle += 2 * math.Pi
			}
			i := img.PixOffset(x, y)
			img.Pix[i+0] = unit8(float64(x) / float64(size-1))
			img.Pix[i+1] = unit8(radial)
			img.Pix[i+2] = unit8(angle / (2 * math.Pi))
			img.Pix[i+3] = 255
		}
	}
	return img
}
