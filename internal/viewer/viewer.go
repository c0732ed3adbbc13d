// Package viewer implements the interactive fiber viewer loop.
package viewer

import (
	"errors"
	"fmt"
	"time"

	"github.com/sqweek/dialog"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/tractview/internal/config"
	"github.com/Faultbox/tractview/internal/engine/camera"
	"github.com/Faultbox/tractview/internal/engine/debug"
	"github.com/Faultbox/tractview/internal/engine/framebuffer"
	"github.com/Faultbox/tractview/internal/engine/input"
	"github.com/Faultbox/tractview/internal/engine/renderer"
	"github.com/Faultbox/tractview/internal/engine/window"
	"github.com/Faultbox/tractview/internal/logger"
)

// Viewer owns the window, GL state and fiber renderer for one session.
type Viewer struct {
	config  *config.Config
	log     *zap.Logger
	running bool

	window      *window.Window
	renderer    *renderer.Renderer
	fibers      *renderer.FiberRenderer
	input       *input.Input
	camera      *camera.OrbitCamera
	screenshots *debug.ScreenshotCapture

	dataset *Dataset

	// Paths chosen in the file dialog, opened on the render thread.
	pendingOpen chan string
}

// New creates the window and GPU resources and opens cfg.Data.TrackFile if set.
// A fiber shader failure is logged and leaves the viewer running without fibers.
func New(cfg *config.Config) (*Viewer, error) {
	v := &Viewer{
		config:      cfg,
		log:         logger.Named("viewer"),
		pendingOpen: make(chan string, 1),
	}

	v.log.Info("initializing viewer",
		zap.String("title", cfg.Window.Title),
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
	)

	var err error
	v.window, err = window.New(window.Config{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Renderer must come after the window so the GL context exists.
	width, height := v.window.DrawableSize()
	v.renderer, err = renderer.New(renderer.Config{
		Width:      width,
		Height:     height,
		Background: cfg.Render.Background,
	})
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	v.fibers = renderer.NewFiberRenderer(renderer.NewGLBackend())
	v.applyRenderConfig()
	if err := v.fibers.Initialize(); err != nil {
		v.log.Error("fiber rendering disabled", zap.Error(err))
	}

	v.input = input.New()
	v.camera = camera.NewOrbitCamera()
	v.screenshots = debug.NewScreenshotCapture("screenshots", "tractview")

	if cfg.Data.TrackFile != "" {
		if err := v.Open(cfg.Data.TrackFile); err != nil {
			v.log.Error("failed to open track file", zap.String("path", cfg.Data.TrackFile), zap.Error(err))
		}
	}

	v.log.Info("viewer initialized")
	return v, nil
}

func (v *Viewer) applyRenderConfig() {
	rc := v.config.Render
	v.fibers.SetColorMode(colorMode(rc.ColorMode))
	v.fibers.SetOpacity(rc.Opacity)
	v.fibers.SetLineWidth(rc.LineWidth)
	v.fibers.SetLineColor(rc.LineColor[0], rc.LineColor[1], rc.LineColor[2])
	v.fibers.SetMaxPointsPerTrack(rc.MaxPointsPerTrack)
	v.fibers.SetShowBounds(rc.ShowBounds)
}

func colorMode(name string) renderer.ColorMode {
	if name == config.ColorModeSolid {
		return renderer.ColorSolid
	}
	return renderer.ColorDirection
}

// Open loads a track file, replaces the displayed tracks and frames the camera.
func (v *Viewer) Open(path string) error {
	ds, err := LoadDataset(path, v.config.Render.MaxTracks, nil)
	if err != nil {
		return err
	}

	for _, w := range ds.Tractogram.Warnings {
		v.log.Warn("track file warning", zap.String("path", path), zap.String("warning", w))
	}
	v.log.Info(ds.Tractogram.Status,
		zap.String("path", path),
		zap.Int("shown", len(ds.Shown)),
		zap.Bool("sampled", ds.Sampled()),
	)
	v.log.Debug("track file header", zap.String("header", ds.Tractogram.Header.Summary()))

	v.dataset = ds
	v.fibers.SetTracks(ds.Shown)
	v.frameCamera()
	v.window.SetTitle(ds.Title(v.config.Window.Title))
	return nil
}

func (v *Viewer) frameCamera() {
	if !v.camera.FitToBounds(v.fibers.Bounds().Array()) {
		v.log.Debug("no geometry to frame")
	}
}

// Run starts the main loop and returns when the window closes or Esc is pressed.
func (v *Viewer) Run() error {
	v.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	v.log.Info("starting render loop")

	for v.running {
		now := time.Now()
		dt := now.Sub(lastTime).Seconds()
		lastTime = now

		if v.input.Update() {
			v.running = false
			break
		}
		v.handleEvents()
		v.openPending()

		if v.input.IsKeyPressed(sdl.SCANCODE_F12) {
			v.screenshot()
		}

		v.renderer.Begin()
		v.fibers.Render(v.camera.MVP(v.renderer.AspectRatio()))

		v.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			v.log.Debug("fps", zap.Int("count", frameCount), zap.String("dt", fmt.Sprintf("%.2fms", dt*1000)))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

func (v *Viewer) handleEvents() {
	for _, event := range v.input.Events() {
		switch event.Type {
		case input.EventWindowResize:
			v.renderer.Resize(v.window.DrawableSize())
		case input.EventMouseMove:
			if v.input.IsButtonHeld(sdl.BUTTON_LEFT) {
				v.camera.HandleDrag(float32(event.DeltaX), float32(event.DeltaY))
			}
		case input.EventMouseWheel:
			v.camera.HandleZoom(event.Wheel)
		case input.EventDropFile:
			if err := v.Open(event.Path); err != nil {
				v.log.Error("failed to open dropped file", zap.String("path", event.Path), zap.Error(err))
			}
		case input.EventKeyDown:
			v.handleKey(event.Key)
		}
	}
}

func (v *Viewer) handleKey(key sdl.Scancode) {
	switch key {
	case sdl.SCANCODE_ESCAPE:
		v.running = false
	case sdl.SCANCODE_C:
		mode := renderer.ColorSolid
		if v.fibers.ColorMode() == renderer.ColorSolid {
			mode = renderer.ColorDirection
		}
		v.fibers.SetColorMode(mode)
		v.log.Debug("color mode", zap.Stringer("mode", mode))
	case sdl.SCANCODE_B:
		v.fibers.SetShowBounds(!v.fibers.ShowBounds())
	case sdl.SCANCODE_R:
		v.frameCamera()
	case sdl.SCANCODE_O:
		v.openFileDialog()
	case sdl.SCANCODE_S:
		if v.dataset != nil && v.dataset.Sampled() {
			v.dataset.Resample(v.config.Render.MaxTracks, nil)
			v.fibers.SetTracks(v.dataset.Shown)
			v.log.Debug("resampled tracks", zap.Int("shown", len(v.dataset.Shown)))
		}
	}
}

// openFileDialog shows a native file dialog without blocking the render
// loop. The chosen path is opened by openPending on the GL thread.
func (v *Viewer) openFileDialog() {
	go func() {
		path, err := dialog.File().
			Filter("TrackVis Tracts", "trk").
			Filter("All Files", "*").
			Title("Open Track File").
			Load()
		if err != nil {
			if !errors.Is(err, dialog.ErrCancelled) {
				v.log.Error("file dialog failed", zap.Error(err))
			}
			return
		}

		select {
		case v.pendingOpen <- path:
		default:
			v.log.Warn("open already pending, ignoring", zap.String("path", path))
		}
	}()
}

func (v *Viewer) openPending() {
	select {
	case path := <-v.pendingOpen:
		if err := v.Open(path); err != nil {
			v.log.Error("failed to open track file", zap.String("path", path), zap.Error(err))
		}
	default:
	}
}

func (v *Viewer) screenshot() {
	pixels, w, h, err := v.renderOffscreen()
	if err != nil {
		v.log.Error("screenshot failed", zap.Error(err))
		return
	}
	path, err := v.screenshots.CaptureFromPixels(pixels, w, h)
	if err != nil {
		v.log.Error("screenshot failed", zap.Error(err))
		return
	}
	v.log.Info("screenshot saved", zap.String("path", path))
}

// Snapshot renders a single frame offscreen at the drawable size and writes
// it to path as PNG.
func (v *Viewer) Snapshot(path string) error {
	pixels, w, h, err := v.renderOffscreen()
	if err != nil {
		return err
	}
	if err := debug.SavePixels(path, pixels, w, h); err != nil {
		return err
	}
	v.log.Info("snapshot saved", zap.String("path", path), zap.Int("width", w), zap.Int("height", h))
	return nil
}

func (v *Viewer) renderOffscreen() ([]byte, int, int, error) {
	w, h := v.renderer.Size()
	fb, err := framebuffer.New(int32(w), int32(h))
	if err != nil {
		return nil, 0, 0, err
	}
	defer fb.Destroy()

	restore := fb.BindWithViewport()
	bg := v.renderer.Background()
	fb.Clear(bg[0], bg[1], bg[2], 1)
	v.fibers.Render(v.camera.MVP(v.renderer.AspectRatio()))
	restore()

	fw, fh := fb.Size()
	return fb.ReadPixels(), int(fw), int(fh), nil
}

// Close releases GPU resources and the window.
func (v *Viewer) Close() {
	v.log.Info("closing viewer")

	if v.fibers != nil {
		v.fibers.Cleanup()
	}
	if v.window != nil {
		v.window.Close()
	}
}
