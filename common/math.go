package common

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Clamp restricts x to the closed range [lo, hi].
// When lo > hi the range is treated as degenerate and lo wins, matching the order of the checks.
//
// Parameters:
//   - x: value to clamp
//   - lo: lower bound
//   - hi: upper bound
//
// Returns:
//   - float32: the clamped value
func Clamp(x, lo, hi float32) float32 {
	if x > hi {
		x = hi
	}
	if x < lo {
		x = lo
	}
	return x
}

// Clamp01 restricts x to [0, 1].
func Clamp01(x float32) float32 {
	return Clamp(x, 0, 1)
}

// Lerp linearly interpolates between a and b by t. t is not clamped.
func Lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

// InverseLerp returns where value lies between a and b as a fraction clamped to [0, 1].
// A degenerate range (a == b) yields 0.
//
// Parameters:
//   - a: value mapped to 0
//   - b: value mapped to 1
//   - value: the value to locate
//
// Returns:
//   - float32: the clamped interpolation parameter
func InverseLerp(a, b, value float32) float32 {
	if a == b {
		return 0
	}
	return Clamp01((value - a) / (b - a))
}

// SmoothingFactor converts a smoothing speed and a frame time into the fraction of the remaining
// distance covered this frame: 1 - e^(-speed*dt). The result is in [0, 1) for finite positive inputs
// and 0 for non-positive ones, so a value smoothed with it approaches its goal without overshooting.
//
// Parameters:
//   - speed: smoothing speed in 1/seconds
//   - dt: frame time in seconds
//
// Returns:
//   - float32: the per-frame blend factor
func SmoothingFactor(speed, dt float32) float32 {
	if speed <= 0 || dt <= 0 || !IsFinite(speed) || !IsFinite(dt) {
		return 0
	}
	return Clamp01(1 - math32.Exp(-speed*dt))
}

// IsFinite reports whether x is neither NaN nor an infinity.
func IsFinite(x float32) bool {
	return !math32.IsNaN(x) && !math32.IsInf(x, 0)
}

// IsFiniteVec2 reports whether both components of v are finite.
func IsFiniteVec2(v mgl32.Vec2) bool {
	return IsFinite(v[0]) && IsFinite(v[1])
}

// Abs returns the absolute value of x.
func Abs(x float32) float32 {
	return math32.Abs(x)
}

// PerspectiveZO builds a right-handed perspective projection that maps view depth to WebGPU's
// [0, 1] clip range. mgl32.Perspective targets OpenGL's [-1, 1] range, which would clip the near
// half of the frustum on a WebGPU surface.
//
// Parameters:
//   - fovY: vertical field of view in radians
//   - aspect: viewport aspect ratio (width/height)
//   - near: near clipping plane distance (must be > 0)
//   - far: far clipping plane distance (must be > near)
//
// Returns:
//   - mgl32.Mat4: the column-major projection matrix
func PerspectiveZO(fovY, aspect, near, far float32) mgl32.Mat4 {
	f := 1 / math32.Tan(fovY/2)
	var out mgl32.Mat4
	out[0] = f / aspect
	out[5] = f
	out[10] = far / (near - far)
	out[11] = -1
	out[14] = (near * far) / (near - far)
	return out
}
