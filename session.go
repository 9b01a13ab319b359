package svgmesh

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// Document is a flat list of shapes in paint order.
type Document struct {
	Viewport Rect
	Shapes   []Shape

	// Errors holds problems found while building the document, such as
	// malformed attribute text. They are copied into Result.Errors.
	Errors []error
}

// Result is the output of one import.
type Result struct {
	ID uuid.UUID

	// Mesh is nil when the document could not be rendered.
	Mesh      *CombinedMesh
	Layers    []Layer
	Shaders   []Shader
	Materials []Material

	// Gradients is the session pool when the mesh keeps gradient data.
	Gradients   []*Gradient
	AtlasPages  []*image.NRGBA
	AtlasParams [4]float32

	// Collider holds merged fill outlines in mesh space when requested.
	Collider [][]Point

	// Canvas is the document viewport in mesh units.
	Canvas Rect

	// Host hints; the importer does not act on them.
	MeshCompression MeshCompression
	OptimizeMesh    bool

	Errors []error
}

// Err joins the recorded errors, or returns nil.
func (r *Result) Err() error {
	return errors.Join(r.Errors...)
}

// Session converts documents into meshes. It owns the gradient atlas,
// which persists across imports, and all per-import scratch state.
//
// A Session imports one document at a time. Separate sessions share no
// state and may import concurrently.
type Session struct {
	id        uuid.UUID
	opts      importOptions
	log       *slog.Logger
	atlas     *Atlas
	materials *MaterialRegistry
	meshes    *meshCache

	busy      atomic.Bool
	mu        sync.Mutex
	closed    bool
	closeOnce sync.Once

	// per-import state
	graphics  *Graphics
	fragments []*Fragment
	collider  [][]Point
	errs      []error

	// onShape, if set, is called before each shape is rendered.
	onShape func(*Shape)
}

// NewSession creates a session with the given options.
func NewSession(opts ...ImportOption) (*Session, error) {
	o := newOptions(opts)
	atlas, err := NewAtlas(o.atlasLayout)
	if err != nil {
		return nil, fmt.Errorf("svgmesh: new session: %w", err)
	}
	s := &Session{
		id:        uuid.New(),
		opts:      o,
		log:       o.logger,
		atlas:     atlas,
		materials: NewMaterialRegistry(),
		meshes:    newMeshCache(o.meshCacheSize),
	}
	if s.log == nil {
		s.log = Logger()
	}
	s.log = s.log.With("session", s.id)
	return s, nil
}

// Run imports doc with a fresh session and closes it.
func Run(ctx context.Context, doc Document, opts ...ImportOption) (*Result, error) {
	s, err := NewSession(opts...)
	if err != nil {
		return nil, err
	}
	defer s.Close()
	return s.Import(ctx, doc)
}

// ID returns the session identifier used in log records.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// Atlas returns the gradient atlas of the session.
func (s *Session) Atlas() *Atlas {
	return s.atlas
}

// Close releases the atlas and all scratch state. It is safe to call more
// than once.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.closed = true
		s.mu.Unlock()
		s.atlas.Reset()
		s.meshes.clear()
		s.materials = nil
		s.log.Debug("svgmesh: session closed")
	})
	return nil
}

func (s *Session) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Import renders every visible shape of doc and combines the result.
//
// Malformed or degenerate shapes are skipped and recorded in
// Result.Errors. A panic while rendering is recovered and recorded as
// ErrCorruptedFile; Result.Mesh is then nil. The returned error is only
// set when the import could not run at all or ctx was cancelled.
func (s *Session) Import(ctx context.Context, doc Document) (*Result, error) {
	if s.isClosed() {
		return nil, ErrSessionClosed
	}
	if !s.busy.CompareAndSwap(false, true) {
		return nil, ErrImportInProgress
	}
	defer s.busy.Store(false)
	defer s.release()

	res := &Result{
		ID:              uuid.New(),
		MeshCompression: s.opts.meshCompression,
		OptimizeMesh:    s.opts.optimizeMesh,
		Canvas:          scaleRect(doc.Viewport, s.opts.meshScale),
	}
	log := s.log.With("import", res.ID)
	log.Info("svgmesh: import started", "shapes", len(doc.Shapes))

	s.errs = append(s.errs, doc.Errors...)
	err := s.render(ctx, doc, log)
	switch {
	case errors.Is(err, ErrCorruptedFile):
		s.errs = append(s.errs, err)
		s.fragments = nil
	case err != nil:
		return nil, err
	default:
		s.finish(res)
	}

	res.Errors = append([]error(nil), s.errs...)
	res.AtlasPages = s.atlas.Pages()
	res.AtlasParams = s.atlas.Params()
	log.Info("svgmesh: import finished",
		"vertices", res.Mesh.VertexCount(),
		"triangles", res.Mesh.TriangleCount(),
		"gradients", len(res.Gradients),
		"mesh_cache_hits", s.meshes.stats().Hits,
		"errors", len(res.Errors),
	)
	return res, nil
}

// release drops the per-import state.
func (s *Session) release() {
	s.graphics = nil
	s.fragments = nil
	s.collider = nil
	s.errs = nil
}

func (s *Session) render(ctx context.Context, doc Document, log *slog.Logger) (err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Warn("svgmesh: recovered from panic while rendering", "panic", r)
			err = fmt.Errorf("%w: %v", ErrCorruptedFile, r)
		}
	}()

	s.graphics = NewGraphics(s.opts.verticesPerMeter, doc.Viewport)
	for i := range doc.Shapes {
		if err := ctx.Err(); err != nil {
			return err
		}
		if s.onShape != nil {
			s.onShape(&doc.Shapes[i])
		}
		s.renderShape(&doc.Shapes[i], log)
	}
	return nil
}

// finish combines the fragments and moves the mesh to its pivot.
func (s *Session) finish(res *Result) {
	o := s.opts
	mesh, layers, shaders := Combine(s.fragments, o.useGradients, o.format, o.compressDepth, o.depthOffset)

	var frame Rect
	if o.ignoreCanvas {
		frame = mesh.Bounds.Rect()
	} else {
		frame = res.Canvas
	}
	if frame.IsEmpty() {
		frame = Rect{}
	}
	offset := Pt(frame.MinX+frame.Width()*o.pivot.X, frame.MinY+frame.Height()*o.pivot.Y)
	toMesh := func(p Point) Point {
		return Pt(p.X-offset.X, -(p.Y - offset.Y))
	}

	for i, v := range mesh.Vertices {
		p := toMesh(v.XY())
		mesh.Vertices[i].X, mesh.Vertices[i].Y = float32(p.X), float32(p.Y)
	}
	// the flip mirrors every triangle
	for _, sub := range mesh.Submeshes {
		for i := 0; i+2 < len(sub); i += 3 {
			sub[i+1], sub[i+2] = sub[i+2], sub[i+1]
		}
	}
	mesh.Bounds = boxOf(mesh.Vertices)
	for i := range layers {
		c := toMesh(layers[i].Center.XY())
		layers[i].Center.X, layers[i].Center.Y = float32(c.X), float32(c.Y)
	}

	res.Mesh = mesh
	res.Layers = layers
	res.Shaders = shaders
	res.Materials = Materials(s.materials, shaders)
	if mesh.UV != nil {
		res.Gradients = s.atlas.Gradients()
	}

	if o.generateCollider && len(s.collider) > 0 {
		rings := make([][]Point, len(s.collider))
		for i, c := range s.collider {
			rings[i] = make([]Point, len(c))
			for j, p := range c {
				rings[i][j] = toMesh(p.Mul(o.meshScale))
			}
		}
		res.Collider = PolygonContours(Merge(rings))
	}
}

// scaleRect scales r about the origin.
func scaleRect(r Rect, s float64) Rect {
	return Rect{MinX: r.MinX * s, MinY: r.MinY * s, MaxX: r.MaxX * s, MaxY: r.MaxY * s}
}
