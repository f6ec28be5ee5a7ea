package camera

import (
	"io"
	"log/slog"
	"math/rand/v2"
	"testing"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const frame = float32(1.0 / 60.0)

type fakeTarget struct {
	bounds  common.Bounds
	ok      bool
	changed common.Event[struct{}]
}

func (f *fakeTarget) ViewTargetBounds() (common.Bounds, bool) {
	return f.bounds, f.ok
}

func (f *fakeTarget) OnTargetChanged(fn func()) common.ListenerID {
	return f.changed.Subscribe(func(struct{}) { fn() })
}

func (f *fakeTarget) RemoveTargetChangedListener(id common.ListenerID) {
	f.changed.Unsubscribe(id)
}

func (f *fakeTarget) swap(size mgl32.Vec3) {
	f.bounds = common.BoundsFromSize(size)
	f.ok = true
	f.changed.Emit(struct{}{})
}

type fakeGate struct {
	over bool
}

func (g *fakeGate) PointerOverUI() bool {
	return g.over
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestRig(target *fakeTarget, options ...CameraRigBuilderOption) CameraRig {
	base := []CameraRigBuilderOption{
		WithLogger(quietLogger()),
		WithPivot(mgl32.Vec3{}),
	}
	if target != nil {
		base = append(base, WithTargetProvider(target), WithTargetEvents(target))
	}
	rig := NewCameraRig(append(base, options...)...)
	rig.Activate()
	return rig
}

func TestDeriveLimitsForUnitCube(t *testing.T) {
	pan, zoom := DeriveLimits(common.BoundsFromSize(mgl32.Vec3{2, 2, 2}), 5)

	assert.Equal(t, PanLimits{XMin: -2, XMax: 2, YMin: -2, YMax: 2}, pan)
	assert.InDelta(t, -6.928, zoom.Far, 1e-3)
	assert.InDelta(t, -3.464, zoom.Near, 1e-3)
}

func TestDeriveLimitsIgnoresZoomSign(t *testing.T) {
	b := common.BoundsFromSize(mgl32.Vec3{2, 4, 1})
	negPan, negZoom := DeriveLimits(b, -5)
	posPan, posZoom := DeriveLimits(b, 5)

	assert.Equal(t, posPan, negPan)
	assert.Equal(t, posZoom, negZoom)
}

func TestLargerBoundsDeriveWiderLimits(t *testing.T) {
	small := common.BoundsFromSize(mgl32.Vec3{1, 1, 1})
	large := common.BoundsFromSize(mgl32.Vec3{2, 3, 2})
	require.Less(t, small.Magnitude(), large.Magnitude())

	for _, level := range []float32{0.5, 3, 5, 12} {
		smallPan, smallZoom := DeriveLimits(small, level)
		largePan, largeZoom := DeriveLimits(large, level)

		assert.Greater(t, largePan.XMax, smallPan.XMax)
		assert.Less(t, largePan.XMin, smallPan.XMin)
		assert.Greater(t, largePan.YMax, smallPan.YMax)
		assert.Less(t, largePan.YMin, smallPan.YMin)
		assert.Less(t, largeZoom.Far, smallZoom.Far)
		assert.Less(t, largeZoom.Near, smallZoom.Near)
		assert.Greater(t, largeZoom.Near-largeZoom.Far, smallZoom.Near-smallZoom.Far)
	}
}

func TestZoomMultiplier(t *testing.T) {
	assert.Equal(t, float32(1), ZoomMultiplier(common.Bounds{}, false))
	assert.Equal(t, float32(1), ZoomMultiplier(common.BoundsFromSize(mgl32.Vec3{1, 0, 0}), true))
	assert.Equal(t, float32(5), ZoomMultiplier(common.BoundsFromSize(mgl32.Vec3{40, 0, 0}), true))
	// half-diagonal 5.5 sits halfway between 1 and 10
	assert.InDelta(t, 3.0, ZoomMultiplier(common.BoundsFromSize(mgl32.Vec3{11, 0, 0}), true), 1e-5)
}

func TestZoomTargetClampedToFarLimit(t *testing.T) {
	rig := newTestRig(nil,
		WithZoomLimits(ZoomLimits{Far: -10, Near: -2}),
		WithZoomSensitivity(1),
	)

	rig.Zoom(-95)

	assert.Equal(t, float32(-10), rig.State().TargetZoomDistance)
}

func TestZoomLastWriteWins(t *testing.T) {
	rig := newTestRig(nil, WithZoomSensitivity(1))

	rig.Zoom(-1)
	rig.Zoom(-2)

	// both events are measured from the unchanged live distance of -5
	assert.Equal(t, float32(-7), rig.State().TargetZoomDistance)
}

func TestZoomUsesContentMultiplier(t *testing.T) {
	target := &fakeTarget{bounds: common.BoundsFromSize(mgl32.Vec3{11, 0, 0}), ok: true}
	rig := newTestRig(target, WithZoomSensitivity(1))
	rig.ResetCamera()
	live := rig.State().ZoomDistance
	require.Equal(t, float32(-16.5), live)

	rig.Zoom(-0.5)

	assert.InDelta(t, live-1.5, rig.State().TargetZoomDistance, 1e-4)
}

func TestZoomTargetStaysWithinLimits(t *testing.T) {
	target := &fakeTarget{bounds: common.BoundsFromSize(mgl32.Vec3{2, 2, 2}), ok: true}
	rig := newTestRig(target)
	rng := rand.New(rand.NewPCG(7, 11))

	for range 500 {
		rig.Zoom(rng.Float32()*20 - 10)
		s := rig.State()
		require.True(t, s.ZoomLimits.Contains(s.TargetZoomDistance), "target %v outside %+v", s.TargetZoomDistance, s.ZoomLimits)

		rig.Update(frame, FrameInput{})
		s = rig.State()
		require.True(t, s.ZoomLimits.Contains(s.TargetZoomDistance))
	}
}

func TestPanOffsetStaysWithinLimits(t *testing.T) {
	target := &fakeTarget{bounds: common.BoundsFromSize(mgl32.Vec3{2, 2, 2}), ok: true}
	rig := newTestRig(target)
	rng := rand.New(rand.NewPCG(3, 5))

	for i := range 500 {
		delta := mgl32.Vec2{rng.Float32()*1000 - 500, rng.Float32()*1000 - 500}
		if i%7 == 0 {
			rig.Zoom(rng.Float32()*6 - 3)
		}
		rig.Update(frame, FrameInput{PointerDelta: delta, Panning: true})

		s := rig.State()
		require.True(t, s.PanLimits.Contains(s.PanOffset), "pan %v outside %+v", s.PanOffset, s.PanLimits)
	}
}

func TestPanLimitsShrinkWhenZoomingIn(t *testing.T) {
	target := &fakeTarget{bounds: common.BoundsFromSize(mgl32.Vec3{2, 2, 2}), ok: true}
	rig := newTestRig(target)

	rig.Zoom(-100)
	for range 600 {
		rig.Update(frame, FrameInput{})
	}
	rig.Update(frame, FrameInput{PointerDelta: mgl32.Vec2{-10000, -10000}, Panning: true})
	far := rig.State()

	rig.Zoom(100)
	for range 600 {
		rig.Update(frame, FrameInput{})
	}
	near := rig.State()

	assert.Less(t, near.PanLimits.XMax, far.PanLimits.XMax)
	assert.Equal(t, near.PanLimits.XMax, near.PanOffset.X())
	assert.Equal(t, near.PanLimits.YMax, near.PanOffset.Y())
}

func TestPanDirectionAndFrameScaling(t *testing.T) {
	rig := newTestRig(nil, WithPanSensitivity(0.01))
	rig.Update(0.5, FrameInput{PointerDelta: mgl32.Vec2{10, -20}, Panning: true})
	assert.InDelta(t, -0.1, rig.State().PanOffset.X(), 1e-6)
	assert.InDelta(t, 0.2, rig.State().PanOffset.Y(), 1e-6)

	scaled := newTestRig(nil, WithPanSensitivity(0.01), WithPanFrameScaling(true))
	scaled.Update(0.5, FrameInput{PointerDelta: mgl32.Vec2{10, 0}, Panning: true})
	assert.InDelta(t, -0.05, scaled.State().PanOffset.X(), 1e-6)
}

func TestPointerOverUIIgnoresInput(t *testing.T) {
	gate := &fakeGate{over: true}
	rig := newTestRig(nil, WithPointerGate(gate), WithDefaultOrientation(15, -5))
	before := rig.State()

	rig.Update(frame, FrameInput{
		PointerDelta: mgl32.Vec2{50, 30},
		Rotating:     true,
		Panning:      true,
		FocusPressed: true,
	})
	after := rig.State()

	assert.Equal(t, before.Yaw, after.Yaw)
	assert.Equal(t, before.Pitch, after.Pitch)
	assert.Equal(t, before.PanOffset, after.PanOffset)
}

func TestPointerOverUIStillSmoothsZoom(t *testing.T) {
	gate := &fakeGate{}
	rig := newTestRig(nil, WithPointerGate(gate))
	rig.Zoom(1)
	gate.over = true

	rig.Zoom(-5)
	before := rig.State()
	rig.Update(frame, FrameInput{})
	after := rig.State()

	assert.Equal(t, before.TargetZoomDistance, after.TargetZoomDistance, "scroll over UI is ignored")
	assert.Greater(t, after.ZoomDistance, before.ZoomDistance)
}

func TestTargetChangeMidDragResetsThenAppliesDrag(t *testing.T) {
	target := &fakeTarget{bounds: common.BoundsFromSize(mgl32.Vec3{2, 2, 2}), ok: true}
	rig := newTestRig(target, WithDefaultOrientation(10, 5))
	drag := FrameInput{PointerDelta: mgl32.Vec2{40, 0}, Rotating: true}

	rig.Update(frame, drag)
	rig.Update(frame, FrameInput{PointerDelta: mgl32.Vec2{30, 30}, Panning: true})
	require.Equal(t, float32(20), rig.State().Yaw)
	require.NotEqual(t, mgl32.Vec2{}, rig.State().PanOffset)

	target.swap(mgl32.Vec3{4, 4, 4})
	reset := rig.State()
	assert.Equal(t, float32(10), reset.Yaw)
	assert.Equal(t, float32(5), reset.Pitch)
	assert.Equal(t, mgl32.Vec2{}, reset.PanOffset)
	assert.Equal(t, reset.ZoomLimits.Midpoint(), reset.ZoomDistance)
	assert.Equal(t, reset.ZoomDistance, reset.TargetZoomDistance)

	rig.Update(frame, drag)
	assert.Equal(t, float32(20), rig.State().Yaw)
	assert.Equal(t, float32(5), rig.State().Pitch)
}

func TestResetCameraIsIdempotent(t *testing.T) {
	target := &fakeTarget{bounds: common.BoundsFromSize(mgl32.Vec3{3, 1, 2}), ok: true}
	rig := newTestRig(target, WithDefaultOrientation(30, 10))
	rig.Update(frame, FrameInput{PointerDelta: mgl32.Vec2{100, 40}, Rotating: true, Panning: true})
	rig.Zoom(-4)
	rig.Update(frame, FrameInput{})

	rig.ResetCamera()
	once := rig.State()
	rig.ResetCamera()
	twice := rig.State()

	assert.Equal(t, once, twice)
	assert.Equal(t, float32(30), once.Yaw)
	assert.Equal(t, float32(10), once.Pitch)
}

func TestResetCameraWithoutTargetKeepsLimits(t *testing.T) {
	rig := newTestRig(nil, WithZoomLimits(ZoomLimits{Far: -10, Near: -2}))

	rig.ResetCamera()
	s := rig.State()

	assert.Equal(t, ZoomLimits{Far: -10, Near: -2}, s.ZoomLimits)
	assert.Equal(t, float32(-6), s.ZoomDistance)
	assert.Equal(t, float32(-6), s.TargetZoomDistance)
}

func TestResetPressedInFrameInput(t *testing.T) {
	rig := newTestRig(nil, WithDefaultOrientation(0, 0))
	rig.Update(frame, FrameInput{PointerDelta: mgl32.Vec2{20, 0}, Rotating: true})
	require.NotZero(t, rig.State().Yaw)

	rig.Update(frame, FrameInput{ResetPressed: true})

	assert.Zero(t, rig.State().Yaw)
}

func TestFocusRecentresPanOnly(t *testing.T) {
	rig := newTestRig(nil)
	rig.Update(frame, FrameInput{PointerDelta: mgl32.Vec2{50, 50}, Panning: true})
	rig.Zoom(2)
	before := rig.State()

	rig.Update(frame, FrameInput{FocusPressed: true})
	after := rig.State()

	assert.Equal(t, mgl32.Vec2{}, after.PanOffset)
	assert.Equal(t, before.TargetZoomDistance, after.TargetZoomDistance)
	assert.Equal(t, before.Yaw, after.Yaw)
}

func TestZoomSmoothingConvergesMonotonically(t *testing.T) {
	rig := newTestRig(nil)
	rig.Zoom(1)
	goal := rig.State().TargetZoomDistance
	require.Equal(t, float32(-2), goal)

	prevGap := math32.Abs(goal - rig.State().ZoomDistance)
	for range 600 {
		rig.Update(frame, FrameInput{})
		live := rig.State().ZoomDistance
		gap := math32.Abs(goal - live)

		require.LessOrEqual(t, gap, prevGap)
		require.LessOrEqual(t, live, goal, "live distance never passes the goal")
		prevGap = gap
	}
	assert.InDelta(t, goal, rig.State().ZoomDistance, 1e-3)
}

func TestOrbitAccumulatesAndTiltsUp(t *testing.T) {
	rig := newTestRig(nil, WithMouseSensitivity(0.5))

	rig.Update(frame, FrameInput{PointerDelta: mgl32.Vec2{20, 40}, Rotating: true})
	s := rig.State()

	assert.Equal(t, float32(10), s.Yaw)
	assert.Equal(t, float32(-20), s.Pitch)
	assert.Greater(t, rig.Transform().Forward.Y(), float32(0))
}

func TestPitchIsFreeUnlessClamped(t *testing.T) {
	free := newTestRig(nil, WithMouseSensitivity(1))
	free.Update(frame, FrameInput{PointerDelta: mgl32.Vec2{0, 200}, Rotating: true})
	assert.Equal(t, float32(-200), free.State().Pitch)

	clamped := newTestRig(nil, WithMouseSensitivity(1), WithPitchClamp(true))
	clamped.Update(frame, FrameInput{PointerDelta: mgl32.Vec2{0, 200}, Rotating: true})
	assert.Equal(t, float32(-90), clamped.State().Pitch)
}

func TestMissingPivotDisablesRotationOnly(t *testing.T) {
	rig := NewCameraRig(WithLogger(quietLogger()))
	rig.Activate()

	rig.Update(frame, FrameInput{PointerDelta: mgl32.Vec2{40, 40}, Rotating: true, Panning: true})
	s := rig.State()

	assert.Zero(t, s.Yaw)
	assert.Zero(t, s.Pitch)
	assert.NotEqual(t, mgl32.Vec2{}, s.PanOffset)
}

func TestNonFiniteInputIsDropped(t *testing.T) {
	rig := newTestRig(nil)
	before := rig.State()

	rig.Zoom(math32.NaN())
	rig.Zoom(math32.Inf(1))
	rig.Update(math32.NaN(), FrameInput{PointerDelta: mgl32.Vec2{math32.NaN(), 1}, Rotating: true, Panning: true})
	after := rig.State()

	assert.Equal(t, before, after)
	assert.True(t, common.IsFinite(after.ZoomDistance))
}

func TestActivateSubscribesOnceAndDeactivateUnsubscribes(t *testing.T) {
	target := &fakeTarget{}
	rig := newTestRig(target)
	rig.Activate()
	assert.Equal(t, 1, target.changed.Len())
	assert.True(t, rig.Active())

	rig.Deactivate()
	assert.Equal(t, 0, target.changed.Len())
	assert.False(t, rig.Active())

	target.swap(mgl32.Vec3{1, 1, 1})
	assert.Equal(t, float32(defaultZoomDistance), rig.State().ZoomDistance, "no reset after deactivation")
}

func TestTransformPlacesCameraBehindPivot(t *testing.T) {
	rig := newTestRig(nil, WithPivot(mgl32.Vec3{1, 2, 3}))
	tr := rig.Transform()

	assert.InDelta(t, 1, tr.Position.X(), 1e-5)
	assert.InDelta(t, 2, tr.Position.Y(), 1e-5)
	assert.InDelta(t, 8, tr.Position.Z(), 1e-5)
	assert.InDelta(t, -1, tr.Forward.Z(), 1e-5)

	eye := tr.ViewMatrix().Mul4x1(mgl32.Vec4{1, 2, 3, 1})
	assert.InDelta(t, -5, eye.Z(), 1e-4, "pivot sits in front of the camera")
}

func TestApplySettingsRejectsInvalidFields(t *testing.T) {
	rig := newTestRig(nil, WithDefaultOrientation(0, 120))

	rig.ApplySettings(Settings{
		MouseSensitivity: math32.NaN(),
		PanSensitivity:   0.5,
		ZoomSensitivity:  -1,
		ZoomSpeed:        8,
		ClampPitch:       true,
	})
	s := rig.Settings()

	assert.Equal(t, DefaultSettings().MouseSensitivity, s.MouseSensitivity)
	assert.Equal(t, float32(0.5), s.PanSensitivity)
	assert.Equal(t, DefaultSettings().ZoomSensitivity, s.ZoomSensitivity)
	assert.Equal(t, float32(8), s.ZoomSpeed)
	assert.Equal(t, float32(90), rig.State().Pitch)
}
