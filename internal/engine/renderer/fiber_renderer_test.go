package renderer

import (
	"errors"
	"testing"

	"github.com/Faultbox/tractview/internal/engine/debug"
	"github.com/Faultbox/tractview/pkg/math"
	"github.com/Faultbox/tractview/pkg/trk"
)

type fakeBackend struct {
	programErr error
	programs   []*fakeProgram
	arrays     []*fakeVertexArray
	blending   bool
	blendCalls int
	lineWidth  float32
}

func (b *fakeBackend) NewProgram(vs, fs string) (Program, error) {
	if b.programErr != nil {
		return nil, b.programErr
	}
	p := &fakeProgram{
		known: map[string]bool{"uMVPMatrix": true, "uColorMode": true, "uOpacity": true, "uLineColor": true},
		ints:  map[string]int32{},
		flts:  map[string]float32{},
	}
	b.programs = append(b.programs, p)
	return p, nil
}

func (b *fakeBackend) NewVertexArray() (VertexArray, error) {
	va := &fakeVertexArray{}
	b.arrays = append(b.arrays, va)
	return va, nil
}

func (b *fakeBackend) SetBlending(enabled bool) {
	b.blending = enabled
	b.blendCalls++
}

func (b *fakeBackend) SetLineWidth(width float32) { b.lineWidth = width }

// fakeProgram records uniforms, ignoring names a linked program would not have.
type fakeProgram struct {
	known   map[string]bool
	mvp     math.Mat4
	ints    map[string]int32
	flts    map[string]float32
	color   [3]float32
	used    int
	deleted int
}

func (p *fakeProgram) Use() { p.used++ }

func (p *fakeProgram) SetMat4(name string, m math.Mat4) {
	if p.known[name] {
		p.mvp = m
	}
}

func (p *fakeProgram) SetInt(name string, v int32) {
	if p.known[name] {
		p.ints[name] = v
	}
}

func (p *fakeProgram) SetFloat(name string, v float32) {
	if p.known[name] {
		p.flts[name] = v
	}
}

func (p *fakeProgram) SetVec3(name string, x, y, z float32) {
	if p.known[name] {
		p.color = [3]float32{x, y, z}
	}
}

func (p *fakeProgram) Delete() { p.deleted++ }

type fakeVertexArray struct {
	uploads    int
	vertices   []float32
	stripDraws int
	lineDraws  int
	lastStarts []int32
	lastCounts []int32
	deleted    int
}

func (va *fakeVertexArray) Upload(v []float32) {
	va.uploads++
	va.vertices = v
}

func (va *fakeVertexArray) DrawLineStrips(starts, counts []int32) {
	va.stripDraws++
	va.lastStarts = starts
	va.lastCounts = counts
}

func (va *fakeVertexArray) DrawLines(first, count int32) { va.lineDraws++ }

func (va *fakeVertexArray) Delete() { va.deleted++ }

func line(n int) trk.FiberTrack {
	t := make(trk.FiberTrack, n)
	for i := range t {
		t[i] = trk.TrackPoint{X: float32(i), Y: 1, Z: 2}
	}
	return t
}

func newInitialized(t *testing.T) (*FiberRenderer, *fakeBackend) {
	t.Helper()
	b := &fakeBackend{}
	r := NewFiberRenderer(b)
	if err := r.Initialize(); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	return r, b
}

func TestRenderSingleBatchedDraw(t *testing.T) {
	r, b := newInitialized(t)
	r.SetTracks([]trk.FiberTrack{line(3), nil, line(5), line(1)})

	r.Render(math.Identity())

	fibers := b.arrays[0]
	if fibers.stripDraws != 1 {
		t.Fatalf("expected 1 batched draw, got %d", fibers.stripDraws)
	}
	wantStarts := []int32{0, 3, 8}
	wantCounts := []int32{3, 5, 1}
	for i := range wantStarts {
		if fibers.lastStarts[i] != wantStarts[i] || fibers.lastCounts[i] != wantCounts[i] {
			t.Errorf("range %d = (%d, %d), want (%d, %d)", i,
				fibers.lastStarts[i], fibers.lastCounts[i], wantStarts[i], wantCounts[i])
		}
	}
	if len(fibers.lastStarts) != 3 {
		t.Errorf("expected 3 draw ranges, got %d", len(fibers.lastStarts))
	}
}

func TestUploadOncePerSetTracks(t *testing.T) {
	r, b := newInitialized(t)
	r.SetTracks([]trk.FiberTrack{line(4)})

	if !r.NeedsUpload() {
		t.Fatal("expected dirty geometry after SetTracks")
	}
	for range 5 {
		r.Render(math.Identity())
	}
	fibers := b.arrays[0]
	if fibers.uploads != 1 {
		t.Errorf("expected 1 upload over 5 frames, got %d", fibers.uploads)
	}
	if fibers.stripDraws != 5 {
		t.Errorf("expected 5 draws, got %d", fibers.stripDraws)
	}
	if r.NeedsUpload() {
		t.Error("geometry should be clean after render")
	}

	r.SetTracks([]trk.FiberTrack{line(2), line(2)})
	r.Render(math.Identity())
	if fibers.uploads != 2 {
		t.Errorf("expected re-upload after SetTracks, got %d uploads", fibers.uploads)
	}
	if len(fibers.vertices) != 4*6 {
		t.Errorf("uploaded %d floats, want %d", len(fibers.vertices), 4*6)
	}
}

func TestRenderUniformsAndBlending(t *testing.T) {
	r, b := newInitialized(t)
	r.SetTracks([]trk.FiberTrack{line(3)})
	r.SetOpacity(0.5)
	r.SetLineWidth(2)
	r.SetColorMode(ColorSolid)
	r.SetLineColor(0, 1, 0)

	mvp := math.Translate(1, 2, 3)
	r.Render(mvp)

	p := b.programs[0]
	if p.used != 1 {
		t.Errorf("program used %d times, want 1", p.used)
	}
	if p.mvp != mvp {
		t.Error("MVP uniform not set")
	}
	if p.ints["uColorMode"] != int32(ColorSolid) {
		t.Errorf("uColorMode = %d, want %d", p.ints["uColorMode"], ColorSolid)
	}
	if p.flts["uOpacity"] != 0.5 {
		t.Errorf("uOpacity = %f, want 0.5", p.flts["uOpacity"])
	}
	if p.color != [3]float32{0, 1, 0} {
		t.Errorf("uLineColor = %v", p.color)
	}
	if b.lineWidth != 2 {
		t.Errorf("line width = %f, want 2", b.lineWidth)
	}
	if b.blending || b.blendCalls != 2 {
		t.Errorf("blending should be enabled then disabled, got enabled=%v calls=%d", b.blending, b.blendCalls)
	}
}

func TestRenderUninitializedIsNoop(t *testing.T) {
	b := &fakeBackend{}
	r := NewFiberRenderer(b)
	r.SetTracks([]trk.FiberTrack{line(3)})

	r.Render(math.Identity())

	if len(b.arrays) != 0 || len(b.programs) != 0 || b.blendCalls != 0 {
		t.Error("uninitialized renderer touched the backend")
	}
	if !r.NeedsUpload() {
		t.Error("geometry should stay dirty until uploaded")
	}
}

func TestInitializeFailure(t *testing.T) {
	b := &fakeBackend{programErr: errors.New("0:1: syntax error")}
	r := NewFiberRenderer(b)

	err := r.Initialize()
	if !errors.Is(err, ErrGPUInitialization) {
		t.Fatalf("expected ErrGPUInitialization, got %v", err)
	}
	if r.IsInitialized() {
		t.Error("renderer should stay uninitialized")
	}

	r.SetTracks([]trk.FiberTrack{line(3)})
	r.Render(math.Identity())
	if len(b.arrays) != 0 {
		t.Error("failed renderer allocated buffers")
	}
}

func TestInitializeAndCleanupIdempotent(t *testing.T) {
	r, b := newInitialized(t)
	if err := r.Initialize(); err != nil {
		t.Fatalf("second Initialize: %v", err)
	}
	if len(b.programs) != 1 || len(b.arrays) != 2 {
		t.Errorf("second Initialize allocated resources: %d programs, %d arrays", len(b.programs), len(b.arrays))
	}

	r.Cleanup()
	r.Cleanup()

	if b.programs[0].deleted != 1 {
		t.Errorf("program deleted %d times, want 1", b.programs[0].deleted)
	}
	for i, va := range b.arrays {
		if va.deleted != 1 {
			t.Errorf("array %d deleted %d times, want 1", i, va.deleted)
		}
	}
	if r.IsInitialized() {
		t.Error("renderer should be uninitialized after Cleanup")
	}
	r.Render(math.Identity())
}

func TestBoundsWithoutGPU(t *testing.T) {
	r := NewFiberRenderer(&fakeBackend{})
	if !r.Bounds().IsEmpty() {
		t.Error("bounds should be empty before tracks are set")
	}

	r.SetTracks([]trk.FiberTrack{{{X: -1, Y: 2, Z: 3}, {X: 4, Y: -5, Z: 6}}})

	got := r.Bounds().Array()
	want := [6]float32{-1, -5, 3, 4, 2, 6}
	if got != want {
		t.Errorf("Bounds = %v, want %v", got, want)
	}
	if r.RenderedTrackCount() != 1 || r.TotalPointCount() != 2 {
		t.Errorf("counts = (%d, %d), want (1, 2)", r.RenderedTrackCount(), r.TotalPointCount())
	}
}

func TestEmptyTracksUploadWithoutDraw(t *testing.T) {
	r, b := newInitialized(t)
	r.SetTracks(nil)
	r.Render(math.Identity())

	if b.arrays[0].uploads != 1 {
		t.Errorf("expected empty upload, got %d", b.arrays[0].uploads)
	}
	if b.arrays[0].stripDraws != 0 {
		t.Error("expected no draw for empty geometry")
	}
	if r.NeedsUpload() {
		t.Error("empty geometry should still clear the dirty flag")
	}
}

func TestShowBounds(t *testing.T) {
	r, b := newInitialized(t)
	r.SetTracks([]trk.FiberTrack{line(3)})
	r.SetShowBounds(true)

	r.Render(math.Identity())

	boundsVA := b.arrays[1]
	if boundsVA.lineDraws != 1 {
		t.Errorf("expected bounds draw, got %d", boundsVA.lineDraws)
	}
	if len(boundsVA.vertices) != debug.BBoxWireframeVertexCount*6 {
		t.Errorf("bounds upload has %d floats", len(boundsVA.vertices))
	}
	if b.programs[0].ints["uColorMode"] != int32(ColorSolid) {
		t.Error("bounds should be drawn in solid mode")
	}
}

func TestSetMaxPointsPerTrack(t *testing.T) {
	r, _ := newInitialized(t)
	r.SetTracks([]trk.FiberTrack{line(100), line(3)})
	r.Render(math.Identity())

	r.SetMaxPointsPerTrack(10)
	if r.TotalPointCount() != 13 {
		t.Errorf("TotalPointCount = %d, want 13", r.TotalPointCount())
	}
	if !r.NeedsUpload() {
		t.Error("changing the limit should mark geometry dirty")
	}
}

func TestSetOpacityClamps(t *testing.T) {
	r, b := newInitialized(t)
	r.SetTracks([]trk.FiberTrack{line(2)})

	r.SetOpacity(3)
	r.Render(math.Identity())
	if got := b.programs[0].flts["uOpacity"]; got != 1 {
		t.Errorf("opacity = %f, want 1", got)
	}
}
