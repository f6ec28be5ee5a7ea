package selection

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/Carmen-Shannon/oxy-viewer/engine/camera"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSpecs() []TargetSpec {
	return []TargetSpec{
		{Name: "crate", Creator: "studio", Shape: ShapeBox, Size: mgl32.Vec3{2, 2, 2}},
		{Name: "globe", Shape: ShapeSphere, Size: mgl32.Vec3{4, 4, 4}, Segments: 16},
		{Name: "ring", Shape: ShapeTorus, Size: mgl32.Vec3{6, 1, 6}},
	}
}

func newTestManager(t *testing.T, options ...ManagerBuilderOption) Manager {
	t.Helper()
	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewManager(append([]ManagerBuilderOption{WithLogger(quiet), WithWorkers(2)}, options...)...)
}

func TestPreloadKeepsSpecOrderAndSelectsFirst(t *testing.T) {
	m := newTestManager(t)
	var changes []Change
	m.OnSelectionChanged(func(c Change) { changes = append(changes, c) })

	require.NoError(t, m.Preload(context.Background(), testSpecs()))

	targets := m.Targets()
	require.Len(t, targets, 3)
	assert.Equal(t, "crate", targets[0].Name)
	assert.Equal(t, "globe", targets[1].Name)
	assert.Equal(t, "ring", targets[2].Name)
	assert.False(t, m.Loading())

	sel, idx := m.Selected()
	require.NotNil(t, sel)
	assert.Equal(t, 0, idx)
	require.Len(t, changes, 1)
	assert.Equal(t, "crate", changes[0].Target.Name)
}

func TestPreloadComputesBoundsFromPoints(t *testing.T) {
	m := newTestManager(t)
	require.NoError(t, m.Preload(context.Background(), testSpecs()))
	targets := m.Targets()

	crate := targets[0]
	assert.Equal(t, mgl32.Vec3{2, 2, 2}, crate.Bounds.Size())
	assert.Equal(t, 24, crate.VertexCount)

	globe := targets[1].Bounds.Size()
	assert.InDelta(t, 4, globe.X(), 1e-4)
	assert.InDelta(t, 4, globe.Y(), 1e-4)

	ring := targets[2].Bounds.Size()
	assert.InDelta(t, 6, ring.X(), 1e-4)
	assert.InDelta(t, 1, ring.Y(), 1e-4)
}

func TestPreloadSkipsInvalidSpecs(t *testing.T) {
	m := newTestManager(t, WithAutoSelect(false))
	specs := append(testSpecs(),
		TargetSpec{Name: "flat", Shape: ShapeBox, Size: mgl32.Vec3{1, 0, 1}},
		TargetSpec{Name: "blob", Shape: "blob", Size: mgl32.Vec3{1, 1, 1}},
	)

	err := m.Preload(context.Background(), specs)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidSpec)
	assert.Contains(t, err.Error(), "flat")
	assert.Contains(t, err.Error(), "blob")
	assert.Len(t, m.Targets(), 3)
	_, idx := m.Selected()
	assert.Equal(t, -1, idx)
}

func TestPreloadCancelled(t *testing.T) {
	m := newTestManager(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := m.Preload(ctx, testSpecs())

	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, m.Targets())
}

func TestSelectOutOfRangeSelectsNothing(t *testing.T) {
	m := newTestManager(t)
	require.NoError(t, m.Preload(context.Background(), testSpecs()))
	var last Change
	m.OnSelectionChanged(func(c Change) { last = c })

	m.Select(7)

	sel, idx := m.Selected()
	assert.Nil(t, sel)
	assert.Equal(t, -1, idx)
	assert.Equal(t, Change{Index: -1}, last)
	_, ok := m.ViewTargetBounds()
	assert.False(t, ok)
}

func TestSelectNextWraps(t *testing.T) {
	m := newTestManager(t)
	require.NoError(t, m.Preload(context.Background(), testSpecs()))

	m.SelectNext()
	m.SelectNext()
	_, idx := m.Selected()
	assert.Equal(t, 2, idx)

	m.SelectNext()
	_, idx = m.Selected()
	assert.Equal(t, 0, idx)
}

func TestSelectNextOnEmptyManager(t *testing.T) {
	m := newTestManager(t)
	fired := 0
	m.OnTargetChanged(func() { fired++ })

	m.SelectNext()

	assert.Zero(t, fired)
}

func TestSelectTargetByName(t *testing.T) {
	m := newTestManager(t)
	require.NoError(t, m.Preload(context.Background(), testSpecs()))

	assert.True(t, m.SelectTarget("ring"))
	assert.False(t, m.SelectTarget("missing"))

	sel, idx := m.Selected()
	assert.Equal(t, 2, idx)
	assert.Equal(t, "ring", sel.Name)
}

func TestManagerDrivesCameraRigReset(t *testing.T) {
	m := newTestManager(t)
	require.NoError(t, m.Preload(context.Background(), testSpecs()))
	rig := camera.NewCameraRig(
		camera.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		camera.WithPivot(mgl32.Vec3{}),
		camera.WithTargetProvider(m),
		camera.WithTargetEvents(m),
	)
	rig.Activate()
	defer rig.Deactivate()

	rig.Update(0.016, camera.FrameInput{PointerDelta: mgl32.Vec2{80, 0}, Rotating: true})
	require.NotZero(t, rig.State().Yaw)

	m.SelectTarget("ring")
	s := rig.State()

	assert.Zero(t, s.Yaw)
	ring, _ := m.Selected()
	assert.InDelta(t, -1.5*ring.Bounds.Magnitude(), s.ZoomDistance, 1e-4)
}

func TestTargetChangedListenerRemoval(t *testing.T) {
	m := newTestManager(t)
	fired := 0
	id := m.OnTargetChanged(func() { fired++ })

	m.RemoveTargetChangedListener(id)
	require.NoError(t, m.Preload(context.Background(), testSpecs()))

	assert.Zero(t, fired)
}
