package engine

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/camera"
	"github.com/Carmen-Shannon/oxy-viewer/engine/input"
	"github.com/Carmen-Shannon/oxy-viewer/engine/selection"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	scroll     func(float32)
	keyDown    func(uint32)
	keyUp      func(uint32)
	buttonDown func(int, float32, float32)
	buttonUp   func(int, float32, float32)
	move       func(float32, float32)
}

func (f *fakeSource) SetScrollCallback(cb func(delta float32)) { f.scroll = cb }
func (f *fakeSource) SetKeyDownCallback(cb func(keyCode uint32)) { f.keyDown = cb }
func (f *fakeSource) SetKeyUpCallback(cb func(keyCode uint32)) { f.keyUp = cb }
func (f *fakeSource) SetMouseMoveCallback(cb func(x, y float32)) { f.move = cb }
func (f *fakeSource) SetMouseButtonDownCallback(cb func(int, float32, float32)) {
	f.buttonDown = cb
}
func (f *fakeSource) SetMouseButtonUpCallback(cb func(int, float32, float32)) {
	f.buttonUp = cb
}

func newHeadless(t *testing.T, options ...EngineBuilderOption) (Engine, *fakeSource) {
	t.Helper()
	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	targets := selection.NewManager(selection.WithLogger(quiet), selection.WithWorkers(2))
	require.NoError(t, targets.Preload(context.Background(), []selection.TargetSpec{
		{Name: "crate", Shape: selection.ShapeBox, Size: mgl32.Vec3{2, 2, 2}},
		{Name: "ring", Shape: selection.ShapeTorus, Size: mgl32.Vec3{8, 2, 8}},
	}))

	base := []EngineBuilderOption{
		WithLogger(quiet),
		WithTargets(targets),
		WithRigOptions(camera.WithPivot(mgl32.Vec3{})),
	}
	e := NewEngine(append(base, options...)...)
	src := &fakeSource{}
	e.Sampler().Attach(src)
	e.Rig().Activate()
	e.Rig().ResetCamera()
	t.Cleanup(e.Rig().Deactivate)
	return e, src
}

func TestStepOrbitsWhileDragging(t *testing.T) {
	e, src := newHeadless(t)

	src.move(100, 100)
	src.buttonDown(common.MouseLeft, 100, 100)
	src.move(140, 100)
	e.Step(0.016)

	assert.InDelta(t, 40*camera.DefaultSettings().MouseSensitivity, e.Rig().State().Yaw, 1e-5)
}

func TestStepNextTargetResetsBeforeDrag(t *testing.T) {
	e, src := newHeadless(t)
	src.move(0, 0)
	src.buttonDown(common.MouseLeft, 0, 0)
	src.move(20, 0)
	e.Step(0.016)
	require.NotZero(t, e.Rig().State().Yaw)

	src.keyDown(common.KeySpace)
	src.move(28, 0)
	e.Step(0.016)

	_, idx := e.Targets().Selected()
	assert.Equal(t, 1, idx)
	assert.InDelta(t, 8*camera.DefaultSettings().MouseSensitivity, e.Rig().State().Yaw, 1e-5,
		"orientation snaps to default, then the same frame's drag applies")
}

func TestStepScrollReachesRig(t *testing.T) {
	e, src := newHeadless(t)
	before := e.Rig().State().TargetZoomDistance

	src.scroll(-1)

	assert.Less(t, e.Rig().State().TargetZoomDistance, before)
}

func TestStepTogglesBackdrop(t *testing.T) {
	e, src := newHeadless(t)

	src.keyDown(common.KeyB)
	e.Step(0.016)

	assert.True(t, e.Backdrop().SolidBackground())
}

func TestStepDrainsTunings(t *testing.T) {
	ch := make(chan Tuning, 2)
	e, _ := newHeadless(t, WithTunings(ch))

	slow := camera.DefaultSettings()
	slow.MouseSensitivity = 0.1
	fast := camera.DefaultSettings()
	fast.MouseSensitivity = 2
	ch <- Tuning{Settings: slow, Bindings: input.DefaultBindings()}
	ch <- Tuning{Settings: fast, Bindings: input.DefaultBindings(), OverlayRegions: []input.Rect{{Width: 10, Height: 10}}}
	close(ch)

	e.Step(0.016)
	e.Step(0.016)

	assert.Equal(t, float32(2), e.Rig().Settings().MouseSensitivity)
}

func TestOverlayRegionGatesRig(t *testing.T) {
	e, src := newHeadless(t, WithOverlayRegions(input.Rect{X: 0, Y: 0, Width: 200, Height: 200}))

	src.move(10, 10)
	src.buttonDown(common.MouseLeft, 10, 10)
	src.move(50, 10)
	e.Step(0.016)

	assert.Zero(t, e.Rig().State().Yaw)
}

func TestQuitIsIdempotent(t *testing.T) {
	e, _ := newHeadless(t)

	assert.NotPanics(t, func() {
		e.Quit()
		e.Quit()
	})
}

func TestSetRenderFrameLimit(t *testing.T) {
	e, _ := newHeadless(t)
	impl := e.(*engine)

	e.SetRenderFrameLimit(50)
	assert.Equal(t, int64(20_000_000), impl.renderFrameLimit.Nanoseconds())

	e.SetRenderFrameLimit(0)
	assert.Zero(t, impl.renderFrameLimit)
}

func TestRebuildLinesFollowsSelection(t *testing.T) {
	e, _ := newHeadless(t)
	impl := e.(*engine)

	impl.rebuildLines()
	crate, _ := e.Targets().Selected()
	assert.Equal(t, crate.VertexCount+24+6, impl.lines.VertexCount())
	assert.False(t, impl.linesDirty)

	e.Targets().SelectNext()
	assert.True(t, impl.linesDirty)
}
