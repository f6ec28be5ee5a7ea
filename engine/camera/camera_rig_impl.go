package camera

import (
	"log/slog"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	defaultZoomDistance = -5
	defaultPanLimit     = 2
	defaultZoomFar      = -10
	defaultZoomNear     = -2
)

type cameraRigImpl struct {
	targets TargetProvider
	events  TargetEvents
	gate    PointerGate
	logger  *slog.Logger

	pivot    mgl32.Vec3
	hasPivot bool

	settings Settings

	yaw                float32
	pitch              float32
	pan                mgl32.Vec2
	zoomDistance       float32
	targetZoomDistance float32
	panLimits          PanLimits
	zoomLimits         ZoomLimits

	defaultYaw   float32
	defaultPitch float32
	defaultPan   mgl32.Vec2
	defaultZoom  float32

	active      bool
	snapshotted bool
	listenerID  common.ListenerID
}

var _ CameraRig = &cameraRigImpl{}

// NewCameraRig creates a CameraRig. It does nothing until Activate is called and Update is driven per frame.
//
// Parameters:
//   - options: functional options to configure the rig
//
// Returns:
//   - CameraRig: the newly created rig
func NewCameraRig(options ...CameraRigBuilderOption) CameraRig {
	r := &cameraRigImpl{
		logger:             slog.Default(),
		settings:           DefaultSettings(),
		zoomDistance:       defaultZoomDistance,
		targetZoomDistance: defaultZoomDistance,
		panLimits: PanLimits{
			XMin: -defaultPanLimit, XMax: defaultPanLimit,
			YMin: -defaultPanLimit, YMax: defaultPanLimit,
		},
		zoomLimits: ZoomLimits{Far: defaultZoomFar, Near: defaultZoomNear},
	}
	for _, option := range options {
		option(r)
	}
	r.logger = r.logger.With("component", "camera_rig")
	return r
}

func (r *cameraRigImpl) Activate() {
	if r.active {
		return
	}
	if !r.snapshotted {
		r.defaultYaw = r.yaw
		r.defaultPitch = r.pitch
		r.defaultPan = r.pan
		r.defaultZoom = r.zoomDistance
		r.snapshotted = true
	}
	if !r.hasPivot {
		r.logger.Warn("no pivot configured, rotation disabled")
	}
	if r.events != nil {
		r.listenerID = r.events.OnTargetChanged(r.ResetCamera)
	}
	r.active = true

	r.recalculateLimits()
	r.clampToLimits()
}

func (r *cameraRigImpl) Deactivate() {
	if !r.active {
		return
	}
	if r.events != nil {
		r.events.RemoveTargetChangedListener(r.listenerID)
	}
	r.listenerID = 0
	r.active = false
}

func (r *cameraRigImpl) Active() bool {
	return r.active
}

func (r *cameraRigImpl) Update(dt float32, input FrameInput) {
	if !common.IsFinite(dt) || dt < 0 {
		r.logger.Debug("dropping invalid frame time", "dt", dt)
		dt = 0
	}

	if r.gate == nil || !r.gate.PointerOverUI() {
		r.handleInput(dt, input)
	}

	r.smoothZoom(dt)
	r.recalculateLimits()
	r.clampToLimits()
}

func (r *cameraRigImpl) handleInput(dt float32, input FrameInput) {
	delta := input.PointerDelta
	if !common.IsFiniteVec2(delta) {
		r.logger.Debug("dropping invalid pointer delta", "dx", delta[0], "dy", delta[1])
		delta = mgl32.Vec2{}
	}

	if input.Rotating && r.hasPivot {
		r.orbit(delta)
	}
	if input.Panning {
		r.panBy(delta, dt)
	}
	if input.FocusPressed {
		r.Focus()
	}
	if input.ResetPressed {
		r.ResetCamera()
	}
}

func (r *cameraRigImpl) orbit(delta mgl32.Vec2) {
	s := r.settings.MouseSensitivity
	r.yaw += delta[0] * s
	r.pitch -= delta[1] * s
	if r.settings.ClampPitch {
		r.pitch = common.Clamp(r.pitch, -maxPitch, maxPitch)
	}
}

func (r *cameraRigImpl) panBy(delta mgl32.Vec2, dt float32) {
	s := r.settings.PanSensitivity
	if r.settings.PanFrameScaling {
		s *= dt
	}
	r.pan = r.panLimits.Clamp(r.pan.Sub(delta.Mul(s)))
}

func (r *cameraRigImpl) smoothZoom(dt float32) {
	k := common.SmoothingFactor(r.settings.ZoomSpeed, dt)
	r.zoomDistance += (r.targetZoomDistance - r.zoomDistance) * k
}

// recalculateLimits derives limits from the current target. Without usable bounds the previous limits stay.
func (r *cameraRigImpl) recalculateLimits() {
	if r.targets == nil {
		return
	}
	b, ok := r.targets.ViewTargetBounds()
	if !usableBounds(b, ok) {
		return
	}
	r.panLimits, r.zoomLimits = DeriveLimits(b, r.zoomDistance)
}

func (r *cameraRigImpl) clampToLimits() {
	r.pan = r.panLimits.Clamp(r.pan)
	r.targetZoomDistance = r.zoomLimits.Clamp(r.targetZoomDistance)
}

func (r *cameraRigImpl) Zoom(scroll float32) {
	if !common.IsFinite(scroll) {
		r.logger.Debug("dropping invalid scroll", "scroll", scroll)
		return
	}
	if scroll == 0 {
		return
	}
	if r.gate != nil && r.gate.PointerOverUI() {
		return
	}

	var b common.Bounds
	ok := false
	if r.targets != nil {
		b, ok = r.targets.ViewTargetBounds()
	}
	step := scroll * r.settings.ZoomSensitivity * ZoomMultiplier(b, ok)
	r.targetZoomDistance = r.zoomLimits.Clamp(r.zoomDistance + step)
	r.pan = r.panLimits.Clamp(r.pan)
}

func (r *cameraRigImpl) ResetCamera() {
	r.recalculateLimits()

	r.yaw = r.defaultYaw
	r.pitch = r.defaultPitch
	r.pan = r.defaultPan

	mid := r.zoomLimits.Midpoint()
	r.zoomDistance = mid
	r.targetZoomDistance = mid

	r.recalculateLimits()
	r.clampToLimits()

	r.logger.Debug("camera reset", "zoom", mid, "yaw", r.yaw, "pitch", r.pitch)
}

func (r *cameraRigImpl) Focus() {
	r.pan = r.panLimits.Clamp(mgl32.Vec2{})
}

func (r *cameraRigImpl) State() RigState {
	return RigState{
		Yaw:                r.yaw,
		Pitch:              r.pitch,
		PanOffset:          r.pan,
		ZoomDistance:       r.zoomDistance,
		TargetZoomDistance: r.targetZoomDistance,
		PanLimits:          r.panLimits,
		ZoomLimits:         r.zoomLimits,
	}
}

func (r *cameraRigImpl) Transform() Transform {
	yaw := mgl32.QuatRotate(mgl32.DegToRad(-r.yaw), mgl32.Vec3{0, 1, 0})
	pitch := mgl32.QuatRotate(mgl32.DegToRad(-r.pitch), mgl32.Vec3{1, 0, 0})
	q := yaw.Mul(pitch).Normalize()

	local := mgl32.Vec3{r.pan[0], r.pan[1], -r.zoomDistance}
	return Transform{
		Pivot:         r.pivot,
		Orientation:   q,
		LocalPosition: local,
		Position:      r.pivot.Add(q.Rotate(local)),
		Forward:       q.Rotate(mgl32.Vec3{0, 0, -1}),
		Up:            q.Rotate(mgl32.Vec3{0, 1, 0}),
	}
}

func (r *cameraRigImpl) Settings() Settings {
	return r.settings
}

func (r *cameraRigImpl) ApplySettings(s Settings) {
	r.settings.MouseSensitivity = acceptTuning(s.MouseSensitivity, r.settings.MouseSensitivity)
	r.settings.PanSensitivity = acceptTuning(s.PanSensitivity, r.settings.PanSensitivity)
	r.settings.ZoomSensitivity = acceptTuning(s.ZoomSensitivity, r.settings.ZoomSensitivity)
	r.settings.ZoomSpeed = acceptTuning(s.ZoomSpeed, r.settings.ZoomSpeed)
	r.settings.PanFrameScaling = s.PanFrameScaling
	r.settings.ClampPitch = s.ClampPitch
	if r.settings.ClampPitch {
		r.pitch = common.Clamp(r.pitch, -maxPitch, maxPitch)
	}
}

func acceptTuning(next, prev float32) float32 {
	if !common.IsFinite(next) || next < 0 {
		return prev
	}
	return next
}
