package camera

import (
	"log/slog"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/go-gl/mathgl/mgl32"
)

type CameraRigBuilderOption func(*cameraRigImpl)

// WithTargetProvider sets the source of the viewed target's bounds.
//
// Parameters:
//   - p: the target provider
//
// Returns:
//   - CameraRigBuilderOption: a function that sets the target provider
func WithTargetProvider(p TargetProvider) CameraRigBuilderOption {
	return func(r *cameraRigImpl) {
		r.targets = p
	}
}

// WithTargetEvents sets the source of target-changed notifications. The rig subscribes on Activate.
//
// Parameters:
//   - e: the event source
//
// Returns:
//   - CameraRigBuilderOption: a function that sets the event source
func WithTargetEvents(e TargetEvents) CameraRigBuilderOption {
	return func(r *cameraRigImpl) {
		r.events = e
	}
}

// WithPointerGate sets the UI focus query used to ignore camera input.
//
// Parameters:
//   - g: the pointer gate
//
// Returns:
//   - CameraRigBuilderOption: a function that sets the pointer gate
func WithPointerGate(g PointerGate) CameraRigBuilderOption {
	return func(r *cameraRigImpl) {
		r.gate = g
	}
}

// WithPivot sets the world-space point the rig orbits. Without a pivot, rotation is disabled.
//
// Parameters:
//   - position: the pivot position
//
// Returns:
//   - CameraRigBuilderOption: a function that sets the pivot
func WithPivot(position mgl32.Vec3) CameraRigBuilderOption {
	return func(r *cameraRigImpl) {
		r.pivot = position
		r.hasPivot = true
	}
}

// WithDefaultOrientation sets the initial yaw and pitch in degrees.
//
// Parameters:
//   - yaw: initial yaw in degrees
//   - pitch: initial pitch in degrees
//
// Returns:
//   - CameraRigBuilderOption: a function that sets the initial orientation
func WithDefaultOrientation(yaw, pitch float32) CameraRigBuilderOption {
	return func(r *cameraRigImpl) {
		r.yaw = yaw
		r.pitch = pitch
	}
}

// WithDefaultZoom sets the initial zoom distance. The sign is ignored; the rig stores it as a negative offset.
//
// Parameters:
//   - distance: initial distance from the pivot
//
// Returns:
//   - CameraRigBuilderOption: a function that sets the initial zoom
func WithDefaultZoom(distance float32) CameraRigBuilderOption {
	return func(r *cameraRigImpl) {
		d := -common.Abs(distance)
		r.zoomDistance = d
		r.targetZoomDistance = d
	}
}

// WithPanLimits sets the pan limits used until a target with bounds is available.
//
// Parameters:
//   - limits: the initial pan limits
//
// Returns:
//   - CameraRigBuilderOption: a function that sets the pan limits
func WithPanLimits(limits PanLimits) CameraRigBuilderOption {
	return func(r *cameraRigImpl) {
		r.panLimits = limits
	}
}

// WithZoomLimits sets the zoom limits used until a target with bounds is available.
//
// Parameters:
//   - limits: the initial zoom limits
//
// Returns:
//   - CameraRigBuilderOption: a function that sets the zoom limits
func WithZoomLimits(limits ZoomLimits) CameraRigBuilderOption {
	return func(r *cameraRigImpl) {
		r.zoomLimits = limits
	}
}

// WithSettings replaces the whole tuning block.
//
// Parameters:
//   - s: the settings
//
// Returns:
//   - CameraRigBuilderOption: a function that sets the settings
func WithSettings(s Settings) CameraRigBuilderOption {
	return func(r *cameraRigImpl) {
		r.settings = s
	}
}

// WithMouseSensitivity sets the rotation sensitivity in degrees per pixel.
func WithMouseSensitivity(s float32) CameraRigBuilderOption {
	return func(r *cameraRigImpl) {
		r.settings.MouseSensitivity = s
	}
}

// WithPanSensitivity sets the pan sensitivity in world units per pixel.
func WithPanSensitivity(s float32) CameraRigBuilderOption {
	return func(r *cameraRigImpl) {
		r.settings.PanSensitivity = s
	}
}

// WithPanFrameScaling toggles multiplying pan movement by the frame time.
func WithPanFrameScaling(enabled bool) CameraRigBuilderOption {
	return func(r *cameraRigImpl) {
		r.settings.PanFrameScaling = enabled
	}
}

// WithZoomSensitivity sets the base zoom step per scroll unit.
func WithZoomSensitivity(s float32) CameraRigBuilderOption {
	return func(r *cameraRigImpl) {
		r.settings.ZoomSensitivity = s
	}
}

// WithZoomSpeed sets the zoom smoothing speed in 1/seconds.
func WithZoomSpeed(s float32) CameraRigBuilderOption {
	return func(r *cameraRigImpl) {
		r.settings.ZoomSpeed = s
	}
}

// WithPitchClamp limits pitch to [-90, 90] degrees.
func WithPitchClamp(enabled bool) CameraRigBuilderOption {
	return func(r *cameraRigImpl) {
		r.settings.ClampPitch = enabled
	}
}

// WithLogger sets the logger used for activation warnings and dropped input.
//
// Parameters:
//   - logger: the logger
//
// Returns:
//   - CameraRigBuilderOption: a function that sets the logger
func WithLogger(logger *slog.Logger) CameraRigBuilderOption {
	return func(r *cameraRigImpl) {
		if logger != nil {
			r.logger = logger
		}
	}
}
