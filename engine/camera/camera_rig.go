package camera

import (
	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/go-gl/mathgl/mgl32"
)

// FrameInput is one frame's worth of sampled pointer input.
// PointerDelta is in pixels with +Y pointing up. It is only read while Rotating or Panning is held.
type FrameInput struct {
	PointerDelta mgl32.Vec2
	Rotating     bool
	Panning      bool
	FocusPressed bool
	ResetPressed bool
}

// TargetProvider exposes the world-space bounds of whatever is currently being viewed.
type TargetProvider interface {
	// ViewTargetBounds returns the bounds of the viewed target.
	//
	// Returns:
	//   - common.Bounds: the target's axis-aligned bounding box
	//   - bool: false when nothing is being viewed
	ViewTargetBounds() (common.Bounds, bool)
}

// TargetEvents delivers "viewed target changed" notifications.
type TargetEvents interface {
	// OnTargetChanged registers fn to be called whenever the viewed target changes.
	//
	// Parameters:
	//   - fn: the callback
	//
	// Returns:
	//   - common.ListenerID: token for RemoveTargetChangedListener
	OnTargetChanged(fn func()) common.ListenerID

	// RemoveTargetChangedListener removes the listener registered under id.
	//
	// Parameters:
	//   - id: the token returned by OnTargetChanged
	RemoveTargetChangedListener(id common.ListenerID)
}

// PointerGate reports whether the pointer currently belongs to a UI overlay.
type PointerGate interface {
	PointerOverUI() bool
}

// Settings holds the tunable sensitivities of a CameraRig.
type Settings struct {
	// MouseSensitivity is degrees of rotation per pixel of drag.
	MouseSensitivity float32
	// PanSensitivity is world units of pan per pixel of drag.
	PanSensitivity float32
	// PanFrameScaling multiplies pan movement by the frame time.
	PanFrameScaling bool
	// ZoomSensitivity is world units of zoom per scroll step, before the content-aware multiplier.
	ZoomSensitivity float32
	// ZoomSpeed is the exponential smoothing speed of the live zoom distance, in 1/seconds.
	ZoomSpeed float32
	// ClampPitch limits pitch to [-90, 90] degrees. Pitch is free when false.
	ClampPitch bool
}

// DefaultSettings returns the stock rig tuning.
func DefaultSettings() Settings {
	return Settings{
		MouseSensitivity: 0.25,
		PanSensitivity:   0.01,
		ZoomSensitivity:  3,
		ZoomSpeed:        3,
	}
}

// RigState is a snapshot of a CameraRig's state block.
// ZoomDistance and TargetZoomDistance are negative offsets behind the pivot.
type RigState struct {
	Yaw                float32
	Pitch              float32
	PanOffset          mgl32.Vec2
	ZoomDistance       float32
	TargetZoomDistance float32
	PanLimits          PanLimits
	ZoomLimits         ZoomLimits
}

// ZoomLevel returns the live distance from the pivot, always non-negative.
func (s RigState) ZoomLevel() float32 {
	return common.Abs(s.ZoomDistance)
}

// Transform is the camera placement produced by a CameraRig.
type Transform struct {
	// Pivot is the world-space point the rig orbits.
	Pivot mgl32.Vec3
	// Orientation is the rotation built from yaw and pitch, without roll.
	Orientation mgl32.Quat
	// LocalPosition is the camera offset in the rotated pivot frame: (pan.x, pan.y, -zoomDistance).
	LocalPosition mgl32.Vec3
	// Position is the world-space camera position.
	Position mgl32.Vec3
	// Forward is the unit view direction.
	Forward mgl32.Vec3
	// Up is the unit camera up vector.
	Up mgl32.Vec3
}

// ViewMatrix returns the right-handed look-at matrix for the transform.
func (t Transform) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(t.Position, t.Position.Add(t.Forward), t.Up)
}

// CameraRig is an orbit/pan/zoom controller whose limits follow the bounds of the viewed target.
// A rig is driven from a single goroutine: Update, Zoom, ResetCamera and the target-changed
// callback must all run on the frame loop. It holds no locks.
type CameraRig interface {
	// Activate snapshots the default placement and subscribes to target changes.
	// Calling Activate on an active rig does nothing.
	Activate()

	// Deactivate unsubscribes from target changes using the token stored by Activate.
	Deactivate()

	// Active reports whether the rig is subscribed to target changes.
	//
	// Returns:
	//   - bool: true between Activate and Deactivate
	Active() bool

	// Update advances the rig by one frame.
	// Input is ignored while the pointer gate reports UI focus; smoothing and limit
	// recalculation run regardless.
	//
	// Parameters:
	//   - dt: frame time in seconds
	//   - input: the sampled pointer input for this frame
	Update(dt float32, input FrameInput)

	// Zoom applies one scroll event. Positive values move toward the pivot.
	// It may be called any number of times between updates; the last call wins.
	//
	// Parameters:
	//   - scroll: scroll wheel delta
	Zoom(scroll float32)

	// ResetCamera recomputes limits against the current target, restores the default
	// orientation, recentres pan and moves zoom to the midpoint of the zoom limits.
	ResetCamera()

	// Focus recentres the pan offset without touching orientation or zoom.
	Focus()

	// State returns a snapshot of the rig state.
	//
	// Returns:
	//   - RigState: the current state
	State() RigState

	// Transform returns the camera placement for the current state.
	//
	// Returns:
	//   - Transform: the camera transform
	Transform() Transform

	// Settings returns the active tuning.
	//
	// Returns:
	//   - Settings: the current settings
	Settings() Settings

	// ApplySettings replaces the tuning. Non-finite or negative values are rejected field by field
	// and the previous value kept.
	//
	// Parameters:
	//   - s: the new settings
	ApplySettings(s Settings)
}
