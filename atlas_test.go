package svgmesh

import (
	"image/color"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type regionRecorder struct {
	calls []struct{ x, y, w, h, n int }
}

func (r *regionRecorder) UpdateRegion(x, y, w, h int, data []byte) error {
	r.calls = append(r.calls, struct{ x, y, w, h, n int }{x, y, w, h, len(data)})
	return nil
}

func newTestAtlas(t *testing.T, l AtlasLayout) *Atlas {
	t.Helper()
	a, err := NewAtlas(l)
	require.NoError(t, err)
	return a
}

func TestAtlasSeededWithDefault(t *testing.T) {
	a := newTestAtlas(t, DefaultAtlasLayout())
	require.Equal(t, 1, a.Len())
	require.Len(t, a.Pages(), 1)

	g := a.Gradient(0)
	require.NotNil(t, g)
	assert.Equal(t, White, g.Evaluate(0.5))
	assert.Nil(t, a.Gradient(1))
	assert.Nil(t, a.Gradient(NoGradient))
}

func TestAtlasInvalidLayout(t *testing.T) {
	_, err := NewAtlas(AtlasLayout{StripWidth: 1024, StripHeight: 4, PageWidth: 512, PageHeight: 512})
	assert.Error(t, err)
}

func TestAtlasDeduplicates(t *testing.T) {
	a := newTestAtlas(t, DefaultAtlasLayout())

	h1, g1 := a.AddGradient(rgbRamp(Black, White))
	h2, g2 := a.AddGradient(rgbRamp(Black, White))
	assert.Equal(t, GradientHandle(1), h1)
	assert.Equal(t, h1, h2)
	assert.Same(t, g1, g2)
	assert.Equal(t, 2, g1.Refs)
	assert.Equal(t, 2, a.Len())

	h3, _ := a.AddGradient(rgbRamp(White, Black))
	assert.Equal(t, GradientHandle(2), h3)
}

func TestAtlasPlacement(t *testing.T) {
	a := newTestAtlas(t, DefaultAtlasLayout())
	var h GradientHandle
	for i := 1; i <= 5; i++ {
		h, _ = a.AddGradient(rgbRamp(RGB8(uint8(i), 0, 0), White))
	}
	r := a.Region(h)
	assert.Equal(t, AtlasRegion{Page: 0, X: 128, Y: 4, Width: 128, Height: 4}, r)

	red, _ := a.AddGradient(rgbRamp(RGB8(255, 0, 0), RGB8(255, 0, 0)))
	r = a.Region(red)
	page := a.Pages()[r.Page]
	assert.Equal(t, color.NRGBA{255, 0, 0, 255}, page.NRGBAAt(r.X+1, r.Y))
	assert.Equal(t, color.NRGBA{255, 0, 0, 255}, page.NRGBAAt(r.X+r.Width-1, r.Y+r.Height-1))
}

func TestAtlasNewPageOnOverflow(t *testing.T) {
	a := newTestAtlas(t, AtlasLayout{StripWidth: 4, StripHeight: 1, PageWidth: 8, PageHeight: 2})
	for i := 0; i < 4; i++ {
		a.AddGradient(rgbRamp(RGB8(uint8(i), 1, 1), White))
	}
	require.Equal(t, 5, a.Len())
	assert.Len(t, a.Pages(), 2)
	last := a.Gradient(4)
	assert.Equal(t, 1, last.Page)
	assert.Equal(t, AtlasRegion{Page: 1, X: 0, Y: 0, Width: 4, Height: 1}, a.Region(4))
}

func TestRenderGradientPadding(t *testing.T) {
	img := RenderGradient(rgbRamp(Black, White), 5, 2)
	want := []uint8{0, 0, 128, 255, 255}
	for x, v := range want {
		for y := 0; y < 2; y++ {
			c := img.NRGBAAt(x, y)
			assert.Equal(t, v, c.R, "pixel %d,%d", x, y)
			assert.Equal(t, uint8(255), c.A)
		}
	}
}

func TestAtlasRebuild(t *testing.T) {
	a := newTestAtlas(t, DefaultAtlasLayout())
	h, _ := a.AddGradient(rgbRamp(RGB8(0, 255, 0), RGB8(0, 255, 0)))
	a.Rebuild()

	assert.Equal(t, 2, a.Len())
	r := a.Region(h)
	assert.Equal(t, color.NRGBA{0, 255, 0, 255}, a.Pages()[0].NRGBAAt(r.X+2, r.Y))

	a.Reset()
	assert.Equal(t, 1, a.Len())
}

func TestAtlasParamsAndDescriptor(t *testing.T) {
	a := newTestAtlas(t, DefaultAtlasLayout())
	assert.Equal(t, [4]float32{512, 512, 128, 4}, a.Params())

	d := a.TextureDescriptor()
	assert.Equal(t, uint32(512), d.Size.Width)
	assert.Equal(t, uint32(512), d.Size.Height)
	assert.Equal(t, uint32(1), d.Size.DepthOrArrayLayers)
}

func TestAtlasUpload(t *testing.T) {
	a := newTestAtlas(t, DefaultAtlasLayout())
	h, _ := a.AddGradient(rgbRamp(Black, White))

	rec := &regionRecorder{}
	require.NoError(t, a.Upload(0, rec))
	require.NoError(t, a.UploadGradient(h, rec))
	require.Len(t, rec.calls, 2)
	assert.Equal(t, 512*512*4, rec.calls[0].n)
	assert.Equal(t, 128, rec.calls[1].x)
	assert.Equal(t, 128*4*4, rec.calls[1].n)

	assert.Error(t, a.Upload(3, rec))
	assert.Error(t, a.UploadGradient(42, rec))
}

func TestAtlasSavePNG(t *testing.T) {
	a := newTestAtlas(t, DefaultAtlasLayout())
	names, err := a.SavePNG(t.TempDir(), "atlas")
	require.NoError(t, err)
	require.Len(t, names, 1)
	_, err = os.Stat(names[0])
	assert.NoError(t, err)
}

func TestAtlasCompact(t *testing.T) {
	a := newTestAtlas(t, DefaultAtlasLayout())
	img := a.Compact()
	assert.Equal(t, 256, img.Bounds().Dx())
	assert.Equal(t, 4, img.Bounds().Dy())

	a.AddGradient(rgbRamp(Black, White))
	a.AddGradient(rgbRamp(White, Black))
	img = a.Compact()
	assert.Equal(t, 8, img.Bounds().Dy())
}

func TestGradientShapeTexture(t *testing.T) {
	img := GradientShapeTexture(4)
	c := img.NRGBAAt(0, 0)
	assert.Equal(t, color.NRGBA{0, 255, 159, 255}, c)

	c = img.NRGBAAt(3, 2)
	assert.Equal(t, color.NRGBA{255, 255, 0, 255}, c)
}
