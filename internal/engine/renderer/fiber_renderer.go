package renderer

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/tractview/internal/engine/debug"
	"github.com/Faultbox/tractview/internal/engine/renderer/shaders"
	"github.com/Faultbox/tractview/internal/logger"
	"github.com/Faultbox/tractview/pkg/fiber"
	"github.com/Faultbox/tractview/pkg/math"
	"github.com/Faultbox/tractview/pkg/trk"
)

// ErrGPUInitialization is returned when GPU resources cannot be created.
var ErrGPUInitialization = errors.New("gpu initialization failed")

// ColorMode selects how fibers are colored. Values match the uColorMode uniform.
type ColorMode int32

const (
	ColorSolid     ColorMode = 0
	ColorDirection ColorMode = 1
)

func (m ColorMode) String() string {
	if m == ColorDirection {
		return "direction"
	}
	return "solid"
}

// boundsPadding expands the bounds wireframe so it does not overlap fibers.
const boundsPadding = 1.0

var boundsColor = [3]float32{0.8, 0.8, 0.8}

// FiberRenderer draws fiber tracks as line strips with a single batched
// draw call per frame. Geometry is rebuilt on SetTracks and uploaded lazily
// on the next Render.
type FiberRenderer struct {
	backend Backend
	log     *zap.Logger

	program  Program
	fibers   VertexArray
	boundsVA VertexArray

	tracks   []trk.FiberTrack
	geometry *fiber.Geometry
	dirty    bool

	initialized bool

	colorMode  ColorMode
	opacity    float32
	lineWidth  float32
	lineColor  [3]float32
	maxPoints  int
	showBounds bool
}

// NewFiberRenderer creates a renderer over backend. No GPU work happens until
// Initialize.
func NewFiberRenderer(backend Backend) *FiberRenderer {
	return &FiberRenderer{
		backend:   backend,
		log:       logger.Named("renderer"),
		geometry:  fiber.Build(nil, fiber.Options{}),
		colorMode: ColorDirection,
		opacity:   1.0,
		lineWidth: 1.0,
		lineColor: [3]float32{1, 0, 0},
	}
}

// Initialize compiles the fiber shaders and allocates vertex arrays. It must
// run on the GL thread after the context exists. Calling it again after a
// successful initialization does nothing.
func (r *FiberRenderer) Initialize() error {
	if r.initialized {
		return nil
	}

	program, err := r.backend.NewProgram(shaders.FiberVertexShader, shaders.FiberFragmentShader)
	if err != nil {
		r.log.Error("fiber shader build failed", zap.Error(err))
		return fmt.Errorf("%w: %w", ErrGPUInitialization, err)
	}

	fibers, err := r.backend.NewVertexArray()
	if err != nil {
		program.Delete()
		return fmt.Errorf("%w: fiber buffer: %w", ErrGPUInitialization, err)
	}

	boundsVA, err := r.backend.NewVertexArray()
	if err != nil {
		fibers.Delete()
		program.Delete()
		return fmt.Errorf("%w: bounds buffer: %w", ErrGPUInitialization, err)
	}

	r.program = program
	r.fibers = fibers
	r.boundsVA = boundsVA
	r.initialized = true
	r.dirty = true

	r.log.Info("fiber renderer initialized")
	return nil
}

// SetTracks replaces the track set and rebuilds geometry immediately, so
// Bounds is valid without a GPU.
func (r *FiberRenderer) SetTracks(tracks []trk.FiberTrack) {
	r.tracks = tracks
	r.rebuild()
}

func (r *FiberRenderer) rebuild() {
	r.geometry = fiber.Build(r.tracks, fiber.Options{MaxPointsPerTrack: r.maxPoints})
	r.dirty = true

	r.log.Debug("fiber geometry built",
		zap.Int("tracks", r.geometry.TrackCount),
		zap.Int("points", r.geometry.PointCount),
		zap.Int("vertices", r.geometry.VertexCount()),
	)
}

// Render draws all tracks with the given model-view-projection matrix.
// It does nothing until Initialize has succeeded.
func (r *FiberRenderer) Render(mvp math.Mat4) {
	if !r.initialized {
		return
	}
	if r.dirty {
		r.upload()
	}
	if r.geometry.IsEmpty() {
		return
	}

	r.program.Use()
	r.program.SetMat4("uMVPMatrix", mvp)
	r.program.SetInt("uColorMode", int32(r.colorMode))
	r.program.SetFloat("uOpacity", r.opacity)
	r.program.SetVec3("uLineColor", r.lineColor[0], r.lineColor[1], r.lineColor[2])

	r.backend.SetLineWidth(r.lineWidth)
	r.backend.SetBlending(true)
	r.fibers.DrawLineStrips(r.geometry.Starts, r.geometry.Counts)

	if r.showBounds {
		r.program.SetInt("uColorMode", int32(ColorSolid))
		r.program.SetVec3("uLineColor", boundsColor[0], boundsColor[1], boundsColor[2])
		r.boundsVA.DrawLines(0, debug.BBoxWireframeVertexCount)
	}
	r.backend.SetBlending(false)
}

func (r *FiberRenderer) upload() {
	r.fibers.Upload(r.geometry.Vertices)
	if !r.geometry.Bounds.IsEmpty() {
		r.boundsVA.Upload(debug.GenerateBBoxLineVertices(r.geometry.Bounds.Array(), boundsPadding))
	}
	r.dirty = false

	r.log.Debug("fiber geometry uploaded", zap.Int("floats", len(r.geometry.Vertices)))
}

// Cleanup releases GPU resources. Safe to call more than once.
func (r *FiberRenderer) Cleanup() {
	if !r.initialized {
		return
	}
	r.boundsVA.Delete()
	r.fibers.Delete()
	r.program.Delete()
	r.boundsVA, r.fibers, r.program = nil, nil, nil
	r.initialized = false
	r.dirty = true

	r.log.Info("fiber renderer cleaned up")
}

// SetColorMode switches between direction-coded and solid coloring.
func (r *FiberRenderer) SetColorMode(mode ColorMode) {
	r.colorMode = mode
}

// ColorMode returns the active color mode.
func (r *FiberRenderer) ColorMode() ColorMode {
	return r.colorMode
}

// SetOpacity sets fiber alpha, clamped to [0, 1].
func (r *FiberRenderer) SetOpacity(opacity float32) {
	r.opacity = min(max(opacity, 0), 1)
}

// SetLineWidth sets the line width in pixels.
func (r *FiberRenderer) SetLineWidth(width float32) {
	if width > 0 {
		r.lineWidth = width
	}
}

// SetLineColor sets the color used in solid mode.
func (r *FiberRenderer) SetLineColor(red, green, blue float32) {
	r.lineColor = [3]float32{red, green, blue}
}

// SetMaxPointsPerTrack sets the per-track decimation limit (0 disables it)
// and rebuilds geometry when the value changes.
func (r *FiberRenderer) SetMaxPointsPerTrack(n int) {
	if n == r.maxPoints {
		return
	}
	r.maxPoints = n
	r.rebuild()
}

// SetShowBounds toggles the bounding box wireframe.
func (r *FiberRenderer) SetShowBounds(show bool) {
	r.showBounds = show
}

// ShowBounds reports whether the bounding box wireframe is drawn.
func (r *FiberRenderer) ShowBounds() bool {
	return r.showBounds
}

// RenderedTrackCount returns the number of non-empty tracks in the geometry.
func (r *FiberRenderer) RenderedTrackCount() int {
	return r.geometry.TrackCount
}

// TotalPointCount returns the number of vertices in the geometry.
func (r *FiberRenderer) TotalPointCount() int {
	return r.geometry.PointCount
}

// Bounds returns the geometry bounding box; it is empty when there are no vertices.
func (r *FiberRenderer) Bounds() fiber.BBox {
	return r.geometry.Bounds
}

// IsInitialized reports whether GPU resources exist.
func (r *FiberRenderer) IsInitialized() bool {
	return r.initialized
}

// NeedsUpload reports whether geometry changed since the last upload.
func (r *FiberRenderer) NeedsUpload() bool {
	return r.dirty
}
