package input

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/chewxy/math32"
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

func attached(options ...SamplerBuilderOption) (Sampler, *fakeSource) {
	s := NewSampler(options...)
	src := &fakeSource{}
	s.Attach(src)
	return s, src
}

func TestSamplerAccumulatesYUpDelta(t *testing.T) {
	s, src := attached()

	src.move(100, 100)
	src.buttonDown(common.MouseLeft, 100, 100)
	src.move(110, 90)
	src.move(115, 80)
	f := s.Sample()

	assert.True(t, f.Camera.Rotating)
	assert.False(t, f.Camera.Panning)
	assert.Equal(t, mgl32.Vec2{15, 20}, f.Camera.PointerDelta)

	next := s.Sample()
	assert.Equal(t, mgl32.Vec2{}, next.Camera.PointerDelta, "delta is cleared by Sample")
	assert.True(t, next.Camera.Rotating, "held buttons carry over")
}

func TestSamplerButtonRelease(t *testing.T) {
	s, src := attached()

	src.buttonDown(common.MouseMiddle, 0, 0)
	assert.True(t, s.Sample().Camera.Panning)

	src.buttonUp(common.MouseMiddle, 0, 0)
	assert.False(t, s.Sample().Camera.Panning)
}

func TestSamplerKeyEdgesFireOncePerPress(t *testing.T) {
	s, src := attached()

	src.keyDown(common.KeyF)
	src.keyDown(common.KeyF) // repeat
	f := s.Sample()
	assert.True(t, f.Camera.FocusPressed)
	assert.False(t, s.Sample().Camera.FocusPressed)

	src.keyDown(common.KeyF)
	assert.False(t, s.Sample().Camera.FocusPressed, "still held")

	src.keyUp(common.KeyF)
	src.keyDown(common.KeyF)
	assert.True(t, s.Sample().Camera.FocusPressed)
}

func TestSamplerViewerActions(t *testing.T) {
	s, src := attached()

	src.keyDown(common.KeyR)
	src.keyDown(common.KeySpace)
	src.keyDown(common.KeyB)
	src.keyDown(common.KeyN)
	f := s.Sample()

	assert.True(t, f.Camera.ResetPressed)
	assert.True(t, f.NextTarget)
	assert.True(t, f.ToggleBackground)
	assert.True(t, f.NextEnvironment)
}

func TestSamplerForwardsScroll(t *testing.T) {
	var got []float32
	_, src := attached(WithZoomHandler(func(v float32) { got = append(got, v) }))

	src.scroll(1)
	src.scroll(math32.NaN())
	src.scroll(-2)

	assert.Equal(t, []float32{1, -2}, got)
}

func TestSamplerSetBindings(t *testing.T) {
	s, src := attached()
	b := DefaultBindings()
	b.RotateButton = common.MouseRight
	s.SetBindings(b)

	src.buttonDown(common.MouseLeft, 0, 0)
	src.buttonDown(common.MouseRight, 0, 0)
	f := s.Sample()

	assert.True(t, f.Camera.Rotating)
}

func TestParseBindings(t *testing.T) {
	b, err := ParseBindings(map[Action]string{
		ActionRotate: "right",
		ActionFocus:  "space",
	})
	require.NoError(t, err)
	assert.Equal(t, common.MouseRight, b.RotateButton)
	assert.Equal(t, common.KeySpace, b.FocusKey)
	assert.Equal(t, common.KeyR, b.ResetKey)

	_, err = ParseBindings(map[Action]string{ActionPan: "space"})
	assert.Error(t, err, "pan needs a mouse button")

	_, err = ParseBindings(map[Action]string{"jump": "space"})
	assert.Error(t, err)
}

func TestOverlayGate(t *testing.T) {
	cursor := mgl32.Vec2{10, 10}
	gate := NewOverlayGate(func() mgl32.Vec2 { return cursor }, Rect{X: 0, Y: 0, Width: 200, Height: 40})

	assert.True(t, gate.PointerOverUI())

	cursor = mgl32.Vec2{300, 300}
	assert.False(t, gate.PointerOverUI())

	gate.SetRegions([]Rect{{X: 250, Y: 250, Width: 100, Height: 100}})
	assert.True(t, gate.PointerOverUI())

	assert.False(t, NewOverlayGate(nil).PointerOverUI())
}
