package svgmesh

import "log/slog"

// ImportOption configures a Session during creation.
// Use functional options to customize import behavior.
//
// Example:
//
//	// Default settings
//	s, err := svgmesh.NewSession()
//
//	// Opaque meshes with a one pixel fringe
//	s, err := svgmesh.NewSession(
//		svgmesh.WithFormat(svgmesh.FormatOpaque),
//		svgmesh.WithAntialiasingWidth(1),
//	)
type ImportOption func(*importOptions)

// MeshCompression is the vertex compression level the host should apply.
type MeshCompression int

const (
	MeshCompressionOff MeshCompression = iota
	MeshCompressionLow
	MeshCompressionMedium
	MeshCompressionHigh
)

var meshCompressionNames = [...]string{"off", "low", "medium", "high"}

// String returns the level name.
func (c MeshCompression) String() string {
	if c < 0 || int(c) >= len(meshCompressionNames) {
		return "unknown"
	}
	return meshCompressionNames[c]
}

// importOptions holds the configuration of a Session.
type importOptions struct {
	verticesPerMeter  float64
	antialiasingWidth float64
	compressDepth     bool
	useGradients      UseGradients
	format            Format
	meshScale         float64
	depthOffset       float64
	pivot             Point
	ignoreCanvas      bool
	generateCollider  bool
	atlasLayout       AtlasLayout
	meshCompression   MeshCompression
	optimizeMesh      bool
	meshCacheSize     int
	logger            *slog.Logger
}

// defaultOptions returns the default import settings.
func defaultOptions() importOptions {
	return importOptions{
		verticesPerMeter:  1000,
		antialiasingWidth: 0,
		compressDepth:     true,
		useGradients:      GradientsAlways,
		format:            FormatTransparent,
		meshScale:         0.01,
		depthOffset:       0.01,
		pivot:             Pt(0.5, 0.5),
		ignoreCanvas:      true,
		generateCollider:  false,
		atlasLayout:       DefaultAtlasLayout(),
		meshCompression:   MeshCompressionOff,
		optimizeMesh:      true,
		meshCacheSize:     256,
		logger:            nil, // package logger
	}
}

func newOptions(opts []ImportOption) importOptions {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// WithVerticesPerMeter sets the curve sampling density. Curves are split
// into segments about 1000/v document units long. Zero or less means one
// segment per 1000 units.
func WithVerticesPerMeter(v float64) ImportOption {
	return func(o *importOptions) {
		o.verticesPerMeter = v
	}
}

// WithAntialiasingWidth sets the width of the blended fringe drawn around
// fills. Zero disables it.
func WithAntialiasingWidth(w float64) ImportOption {
	return func(o *importOptions) {
		o.antialiasingWidth = w
	}
}

// WithCompressDepth enables overlap-aware depth assignment for
// FormatOpaque.
func WithCompressDepth(on bool) ImportOption {
	return func(o *importOptions) {
		o.compressDepth = on
	}
}

// WithUseGradients sets the gradient policy.
func WithUseGradients(u UseGradients) ImportOption {
	return func(o *importOptions) {
		o.useGradients = u
	}
}

// WithFormat sets the target render queue.
func WithFormat(f Format) ImportOption {
	return func(o *importOptions) {
		o.format = f
	}
}

// WithMeshScale sets the factor from document units to mesh units.
func WithMeshScale(s float64) ImportOption {
	return func(o *importOptions) {
		o.meshScale = s
	}
}

// WithDepthOffset sets the z distance between depth layers.
func WithDepthOffset(d float64) ImportOption {
	return func(o *importOptions) {
		o.depthOffset = d
	}
}

// WithPivot sets the mesh origin as a fraction of its bounds: (0, 0) is
// the top-left corner and (1, 1) the bottom-right.
func WithPivot(x, y float64) ImportOption {
	return func(o *importOptions) {
		o.pivot = Pt(x, y)
	}
}

// WithIgnoreCanvas places the pivot within the mesh bounds instead of the
// document viewport.
func WithIgnoreCanvas(on bool) ImportOption {
	return func(o *importOptions) {
		o.ignoreCanvas = on
	}
}

// WithGenerateCollider merges all fill outlines into Result.Collider.
func WithGenerateCollider(on bool) ImportOption {
	return func(o *importOptions) {
		o.generateCollider = on
	}
}

// WithAtlasSize sets the gradient atlas page size in pixels.
func WithAtlasSize(w, h int) ImportOption {
	return func(o *importOptions) {
		o.atlasLayout.PageWidth = w
		o.atlasLayout.PageHeight = h
	}
}

// WithGradientStrip sets the size of one gradient ramp in the atlas.
func WithGradientStrip(w, h int) ImportOption {
	return func(o *importOptions) {
		o.atlasLayout.StripWidth = w
		o.atlasLayout.StripHeight = h
	}
}

// WithMeshCompression records the vertex compression the host should
// apply. The importer does not compress.
func WithMeshCompression(c MeshCompression) ImportOption {
	return func(o *importOptions) {
		o.meshCompression = c
	}
}

// WithOptimizeMesh records whether the host should reorder the mesh for
// the vertex cache.
func WithOptimizeMesh(on bool) ImportOption {
	return func(o *importOptions) {
		o.optimizeMesh = on
	}
}

// WithMeshCache sets how many tessellations a session keeps for reuse
// across shapes and imports. Zero disables the cache.
func WithMeshCache(n int) ImportOption {
	return func(o *importOptions) {
		o.meshCacheSize = n
	}
}

// WithLogger sets the logger of the session. Nil uses the package logger
// set by [SetLogger].
func WithLogger(l *slog.Logger) ImportOption {
	return func(o *importOptions) {
		o.logger = l
	}
}
