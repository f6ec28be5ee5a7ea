package engine

import (
	"log/slog"
	"time"

	"github.com/Carmen-Shannon/oxy-viewer/engine/backdrop"
	"github.com/Carmen-Shannon/oxy-viewer/engine/camera"
	"github.com/Carmen-Shannon/oxy-viewer/engine/input"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer"
	"github.com/Carmen-Shannon/oxy-viewer/engine/selection"
	"github.com/Carmen-Shannon/oxy-viewer/engine/window"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//   - interval: time between reports; values <= 0 default to 1 second
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool, interval time.Duration) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
		e.profileInterval = interval
	}
}

// WithWindow sets the window the engine pumps and reads input from.
// Without a window the engine can only be driven through Step.
//
// Parameters:
//   - w: a pre-configured Window instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithRenderer sets the renderer that draws each frame.
//
// Parameters:
//   - r: a renderer bound to the engine's window
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderer(r renderer.Renderer) EngineBuilderOption {
	return func(e *engine) {
		e.renderer = r
	}
}

// WithTargets sets the selection manager the rig follows.
//
// Parameters:
//   - m: the selection manager
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithTargets(m selection.Manager) EngineBuilderOption {
	return func(e *engine) {
		e.targets = m
	}
}

// WithBackdrop sets the background crossfader.
//
// Parameters:
//   - b: the backdrop
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithBackdrop(b backdrop.Backdrop) EngineBuilderOption {
	return func(e *engine) {
		e.backdrop = b
	}
}

// WithSampler sets the input sampler. Its zoom handler is replaced by the rig's.
//
// Parameters:
//   - s: the sampler
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithSampler(s input.Sampler) EngineBuilderOption {
	return func(e *engine) {
		e.sampler = s
	}
}

// WithBindings sets the bindings for the default sampler. Ignored when WithSampler is used.
func WithBindings(b input.Bindings) EngineBuilderOption {
	return func(e *engine) {
		e.bindings = b
	}
}

// WithOverlayRegions sets the screen rectangles treated as UI by the rig's pointer gate.
func WithOverlayRegions(regions ...input.Rect) EngineBuilderOption {
	return func(e *engine) {
		e.regions = regions
	}
}

// WithRigOptions appends options to the camera rig built by NewEngine.
//
// Parameters:
//   - options: rig options applied after the engine's own wiring
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRigOptions(options ...camera.CameraRigBuilderOption) EngineBuilderOption {
	return func(e *engine) {
		e.rigOptions = append(e.rigOptions, options...)
	}
}

// WithCameraOptions appends options to the camera built by NewEngine.
func WithCameraOptions(options ...camera.CameraBuilderOption) EngineBuilderOption {
	return func(e *engine) {
		e.cameraOptions = append(e.cameraOptions, options...)
	}
}

// WithTunings sets a channel of live tunings drained at the start of every frame.
//
// Parameters:
//   - ch: the tuning channel; a closed channel stops being read
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithTunings(ch <-chan Tuning) EngineBuilderOption {
	return func(e *engine) {
		e.tunings = ch
	}
}

// WithAxisLength sets the length of the pivot axis gizmo.
func WithAxisLength(length float32) EngineBuilderOption {
	return func(e *engine) {
		if length > 0 {
			e.axisLength = length
		}
	}
}

// WithRenderFrameLimit sets an optional frame rate cap in frames per second.
// Pass 0 to uncap the loop (default).
//
// Parameters:
//   - fps: maximum frames per second (0 = uncapped)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderFrameLimit(fps float64) EngineBuilderOption {
	return func(e *engine) {
		if fps <= 0 {
			e.renderFrameLimit = 0
			return
		}
		e.renderFrameLimit = time.Duration(float64(time.Second) / fps)
	}
}

// WithLogger sets the logger handed to every component the engine creates.
func WithLogger(logger *slog.Logger) EngineBuilderOption {
	return func(e *engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}
