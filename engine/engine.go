package engine

import (
	"log/slog"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/backdrop"
	"github.com/Carmen-Shannon/oxy-viewer/engine/camera"
	"github.com/Carmen-Shannon/oxy-viewer/engine/input"
	"github.com/Carmen-Shannon/oxy-viewer/engine/profiler"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer"
	"github.com/Carmen-Shannon/oxy-viewer/engine/selection"
	"github.com/Carmen-Shannon/oxy-viewer/engine/window"
	"github.com/go-gl/mathgl/mgl32"
)

var (
	targetLineColor = mgl32.Vec3{0.85, 0.85, 0.85}
	boundsLineColor = mgl32.Vec3{1, 0.8, 0.2}
)

// Tuning is the subset of configuration that can change while the viewer runs.
type Tuning struct {
	Settings        camera.Settings
	Bindings        input.Bindings
	OverlayRegions  []input.Rect
	TransitionSpeed float32
}

// engine implements the Engine interface.
// Everything it owns is touched only from the frame loop.
type engine struct {
	logger *slog.Logger

	window   window.Window
	renderer renderer.Renderer

	targets  selection.Manager
	backdrop backdrop.Backdrop
	sampler  input.Sampler
	gate     *input.OverlayGate
	rig      camera.CameraRig
	camera   camera.Camera

	rigOptions    []camera.CameraRigBuilderOption
	cameraOptions []camera.CameraBuilderOption
	bindings      input.Bindings
	regions       []input.Rect

	tunings <-chan Tuning

	profiler         *profiler.Profiler
	profilingEnabled bool
	profileInterval  time.Duration

	quitChannel chan struct{}
	quitOnce    sync.Once // Ensures quitChannel is only closed once
	closeOnce   sync.Once

	lines            renderer.Wireframe
	linesDirty       bool
	axisLength       float32
	selectionListen  common.ListenerID
	lastFrame        time.Time
	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped
}

// Engine wires the viewer's subsystems together and drives them once per display frame.
type Engine interface {
	// Window returns the underlying window, or nil when running headless.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Rig returns the camera rig driven by the frame loop.
	//
	// Returns:
	//   - camera.CameraRig: the rig
	Rig() camera.CameraRig

	// Camera returns the perspective camera that follows the rig.
	//
	// Returns:
	//   - camera.Camera: the camera
	Camera() camera.Camera

	// Targets returns the selection manager.
	//
	// Returns:
	//   - selection.Manager: the manager
	Targets() selection.Manager

	// Backdrop returns the background crossfader.
	//
	// Returns:
	//   - backdrop.Backdrop: the backdrop
	Backdrop() backdrop.Backdrop

	// Sampler returns the input sampler.
	//
	// Returns:
	//   - input.Sampler: the sampler
	Sampler() input.Sampler

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetRenderFrameLimit sets an optional frame rate cap in frames per second.
	// Pass 0 to uncap the loop (default).
	//
	// Parameters:
	//   - fps: maximum frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// ApplyTuning pushes live settings to the rig, sampler, overlay gate and backdrop.
	//
	// Parameters:
	//   - t: the new tuning
	ApplyTuning(t Tuning)

	// Step runs one frame: drain tunings, sample input, apply viewer actions, update the rig,
	// the backdrop and the camera, then draw if a renderer is attached.
	//
	// Parameters:
	//   - dt: frame time in seconds
	Step(dt float32)

	// Run activates the rig and pumps window messages, stepping once per iteration.
	// Blocks until the window closes or Quit is called, then releases the renderer and the window.
	Run()

	// Quit stops the loop at the next frame. Safe to call multiple times.
	Quit()
}

var _ Engine = &engine{}

// NewEngine creates an Engine. Components not supplied through options are created with their
// defaults; the rig is always built here so it can be bound to the selection manager and the
// overlay gate.
//
// Parameters:
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		logger:      slog.Default(),
		bindings:    input.DefaultBindings(),
		quitChannel: make(chan struct{}),
		linesDirty:  true,
		axisLength:  0.5,
	}

	for _, opt := range options {
		opt(e)
	}

	if e.targets == nil {
		e.targets = selection.NewManager(selection.WithLogger(e.logger))
	}
	if e.backdrop == nil {
		e.backdrop = backdrop.NewBackdrop(backdrop.WithLogger(e.logger))
	}
	if e.sampler == nil {
		e.sampler = input.NewSampler(input.WithBindings(e.bindings), input.WithLogger(e.logger))
	}
	e.gate = input.NewOverlayGate(e.sampler.Cursor, e.regions...)

	rigOptions := append([]camera.CameraRigBuilderOption{
		camera.WithLogger(e.logger),
		camera.WithTargetProvider(e.targets),
		camera.WithTargetEvents(e.targets),
		camera.WithPointerGate(e.gate),
	}, e.rigOptions...)
	e.rig = camera.NewCameraRig(rigOptions...)

	cameraOptions := append([]camera.CameraBuilderOption{camera.WithRig(e.rig)}, e.cameraOptions...)
	if e.window != nil && e.window.Height() > 0 {
		aspect := float32(e.window.Width()) / float32(e.window.Height())
		cameraOptions = append(cameraOptions, camera.WithAspect(aspect))
	}
	e.camera = camera.NewCamera(cameraOptions...)

	e.sampler.SetZoomHandler(e.rig.Zoom)
	e.selectionListen = e.targets.OnSelectionChanged(func(selection.Change) {
		e.linesDirty = true
	})

	if e.profilingEnabled {
		e.profiler = profiler.NewProfiler(e.logger, e.profileInterval)
	}

	if e.window != nil {
		e.sampler.Attach(e.window)
		e.window.SetResizeCallback(func(width, height int) {
			if e.renderer != nil {
				if err := e.renderer.Resize(width, height); err != nil {
					e.logger.Error("resize renderer", "width", width, "height", height, "error", err)
				}
			}
			if height > 0 {
				e.camera.SetAspect(float32(width) / float32(height))
			}
		})
	}

	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Rig() camera.CameraRig {
	return e.rig
}

func (e *engine) Camera() camera.Camera {
	return e.camera
}

func (e *engine) Targets() selection.Manager {
	return e.targets
}

func (e *engine) Backdrop() backdrop.Backdrop {
	return e.backdrop
}

func (e *engine) Sampler() input.Sampler {
	return e.sampler
}

func (e *engine) Run() {
	e.rig.Activate()
	e.rig.ResetCamera()
	defer e.rig.Deactivate()
	defer e.targets.RemoveSelectionChangedListener(e.selectionListen)

	if e.window == nil {
		e.logger.Warn("engine has no window, nothing to run")
		return
	}

	e.lastFrame = time.Now()
	e.window.SetUpdateCallback(e.frame)
	e.window.ProcessMessages()
	e.shutdown()
}

// shutdown releases the renderer before the window that owns its surface.
func (e *engine) shutdown() {
	e.closeOnce.Do(func() {
		if e.renderer != nil {
			e.renderer.Release()
		}
		if err := e.window.Close(); err != nil {
			e.logger.Error("close window", "error", err)
		}
	})
}

// frame is the window update callback. It measures dt, steps the viewer and applies the frame limit.
func (e *engine) frame() {
	select {
	case <-e.quitChannel:
		e.shutdown()
		return
	default:
	}

	now := time.Now()
	dt := float32(now.Sub(e.lastFrame).Seconds())
	e.lastFrame = now

	e.Step(dt)

	if e.renderFrameLimit > 0 {
		if remaining := e.renderFrameLimit - time.Since(now); remaining > 0 {
			time.Sleep(remaining)
		}
	}
}

func (e *engine) Step(dt float32) {
	e.drainTunings()

	f := e.sampler.Sample()
	if f.NextTarget {
		e.targets.SelectNext()
	}
	if f.ToggleBackground {
		e.backdrop.ToggleSolidBackground()
	}
	if f.NextEnvironment {
		e.backdrop.NextEnvironment()
	}

	e.rig.Update(dt, f.Camera)
	e.backdrop.Update(dt)
	e.camera.Update()

	if e.renderer != nil {
		e.draw()
	}

	if e.profilingEnabled && e.profiler != nil {
		s := e.rig.State()
		e.profiler.Tick(
			slog.Float64("yaw", float64(s.Yaw)),
			slog.Float64("pitch", float64(s.Pitch)),
			slog.Float64("zoom", float64(s.ZoomDistance)),
			slog.Float64("target_zoom", float64(s.TargetZoomDistance)),
		)
	}
}

// drainTunings applies every pending tuning without blocking; the newest wins.
func (e *engine) drainTunings() {
	if e.tunings == nil {
		return
	}
	for {
		select {
		case t, ok := <-e.tunings:
			if !ok {
				e.tunings = nil
				return
			}
			e.ApplyTuning(t)
		default:
			return
		}
	}
}

func (e *engine) ApplyTuning(t Tuning) {
	e.rig.ApplySettings(t.Settings)
	e.sampler.SetBindings(t.Bindings)
	e.gate.SetRegions(t.OverlayRegions)
	e.backdrop.SetTransitionSpeed(t.TransitionSpeed)
	e.logger.Info("applied tuning", "overlay_regions", len(t.OverlayRegions))
}

// rebuildLines regenerates the wireframe for the selected target.
func (e *engine) rebuildLines() {
	e.lines.Reset()
	if target, _ := e.targets.Selected(); target != nil {
		e.lines.AddLines(target.Points, targetLineColor)
		e.lines.AddBounds(target.Bounds, boundsLineColor)
	}
	e.lines.AddAxes(e.rig.Transform().Pivot, e.axisLength)
	e.linesDirty = false
}

func (e *engine) draw() {
	if e.linesDirty {
		e.rebuildLines()
		if err := e.renderer.SetLines(&e.lines); err != nil {
			e.logger.Error("upload wireframe", "error", err)
		}
	}
	e.renderer.SetClearColor(e.backdrop.ClearColor())
	e.renderer.SetCamera(e.camera.Uniform())
	if err := e.renderer.RenderFrame(); err != nil {
		e.logger.Warn("render frame", "error", err)
	}
}

// Quit signals the loop to stop and close the window at the next frame.
func (e *engine) Quit() {
	e.quitOnce.Do(func() {
		close(e.quitChannel)
	})
}

func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
	if e.profiler == nil {
		e.profiler = profiler.NewProfiler(e.logger, e.profileInterval)
	}
}

func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

func (e *engine) SetRenderFrameLimit(fps float64) {
	if fps <= 0 {
		e.renderFrameLimit = 0
		return
	}
	e.renderFrameLimit = time.Duration(float64(time.Second) / fps)
}
