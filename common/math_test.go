package common

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestClamp(t *testing.T) {
	assert.Equal(t, float32(2), Clamp(5, -2, 2))
	assert.Equal(t, float32(-2), Clamp(-5, -2, 2))
	assert.Equal(t, float32(0.5), Clamp(0.5, -2, 2))
	assert.Equal(t, float32(1), Clamp01(3))
}

func TestInverseLerp(t *testing.T) {
	assert.InDelta(t, 0.5, InverseLerp(1, 3, 2), 1e-6)
	assert.Equal(t, float32(0), InverseLerp(1, 10, -4))
	assert.Equal(t, float32(1), InverseLerp(1, 10, 40))
	assert.Equal(t, float32(0), InverseLerp(3, 3, 3), "degenerate range")
}

func TestLerp(t *testing.T) {
	assert.InDelta(t, 3.0, Lerp(1, 5, 0.5), 1e-6)
	assert.InDelta(t, 1.0, Lerp(1, 5, 0), 1e-6)
}

func TestSmoothingFactor(t *testing.T) {
	f := SmoothingFactor(3, 0.016)
	assert.Greater(t, f, float32(0))
	assert.Less(t, f, float32(1))

	assert.Equal(t, float32(0), SmoothingFactor(3, 0))
	assert.Equal(t, float32(0), SmoothingFactor(0, 0.1))
	assert.Equal(t, float32(0), SmoothingFactor(3, math32.NaN()))
	assert.Equal(t, float32(0), SmoothingFactor(3, math32.Inf(1)))
	assert.LessOrEqual(t, SmoothingFactor(3, 1000), float32(1))
}

func TestIsFinite(t *testing.T) {
	assert.True(t, IsFinite(1))
	assert.False(t, IsFinite(math32.NaN()))
	assert.False(t, IsFinite(math32.Inf(-1)))
	assert.False(t, IsFiniteVec2(mgl32.Vec2{0, math32.Inf(1)}))
}

func TestPerspectiveZOMapsNearAndFarToUnitDepth(t *testing.T) {
	proj := PerspectiveZO(mgl32.DegToRad(60), 16.0/9.0, 0.1, 100)

	near := proj.Mul4x1(mgl32.Vec4{0, 0, -0.1, 1})
	far := proj.Mul4x1(mgl32.Vec4{0, 0, -100, 1})

	assert.InDelta(t, 0.0, near.Z()/near.W(), 1e-5)
	assert.InDelta(t, 1.0, far.Z()/far.W(), 1e-4)
}
