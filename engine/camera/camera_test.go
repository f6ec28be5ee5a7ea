package camera

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestCameraWithoutRigKeepsIdentityView(t *testing.T) {
	cam := NewCamera()

	assert.Nil(t, cam.Rig())
	assert.Equal(t, mgl32.Ident4(), cam.ViewMatrix())
	cam.Update()
	assert.Equal(t, mgl32.Vec3{}, cam.Position())
}

func TestCameraProjectsPivotToScreenCentre(t *testing.T) {
	rig := newTestRig(nil, WithDefaultOrientation(35, -20))
	cam := NewCamera(WithRig(rig), WithAspect(16.0/9.0), WithClipPlanes(0.1, 100))

	rig.Update(frame, FrameInput{PointerDelta: mgl32.Vec2{60, 10}, Rotating: true})
	cam.Update()

	clip := cam.ViewProjectionMatrix().Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	ndc := clip.Vec3().Mul(1 / clip.W())
	assert.InDelta(t, 0, ndc.X(), 1e-4)
	assert.InDelta(t, 0, ndc.Y(), 1e-4)
	assert.Greater(t, ndc.Z(), float32(0))
	assert.Less(t, ndc.Z(), float32(1))
	assert.InDelta(t, 5, cam.Position().Len(), 1e-4)
}

func TestCameraSetAspectRejectsInvalid(t *testing.T) {
	cam := NewCamera(WithAspect(2))
	cam.SetAspect(0)
	assert.Equal(t, float32(2), cam.Aspect())
}

func TestCameraUniformMarshal(t *testing.T) {
	rig := newTestRig(nil)
	cam := NewCamera(WithRig(rig))
	u := cam.Uniform()

	buf := u.Marshal()

	assert.Len(t, buf, 80)
	assert.Equal(t, u.ViewProj[0], math.Float32frombits(binary.LittleEndian.Uint32(buf[0:])))
	assert.Equal(t, u.CameraPosition[2], math.Float32frombits(binary.LittleEndian.Uint32(buf[72:])))
	assert.Contains(t, GPUCameraUniformSource, "struct CameraUniform")
}
