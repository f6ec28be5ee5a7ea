package camera

import (
	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// panLimitZoomDivisor converts the zoom level into a pan-range scale.
	panLimitZoomDivisor = 5

	// The zoom multiplier ramps from minZoomMultiplier to maxZoomMultiplier as the
	// target's half-diagonal grows from minHalfDiagonal to maxHalfDiagonal.
	minZoomMultiplier = 1
	maxZoomMultiplier = 5
	minHalfDiagonal   = 1
	maxHalfDiagonal   = 10

	maxPitch = 90
)

// PanLimits bounds the pan offset on each axis.
type PanLimits struct {
	XMin, XMax float32
	YMin, YMax float32
}

// Clamp restricts v to the limits, each axis independently.
func (p PanLimits) Clamp(v mgl32.Vec2) mgl32.Vec2 {
	return mgl32.Vec2{
		common.Clamp(v[0], p.XMin, p.XMax),
		common.Clamp(v[1], p.YMin, p.YMax),
	}
}

// Contains reports whether v lies inside the limits.
func (p PanLimits) Contains(v mgl32.Vec2) bool {
	return v[0] >= p.XMin && v[0] <= p.XMax && v[1] >= p.YMin && v[1] <= p.YMax
}

// ZoomLimits bounds the (negative) zoom distance.
// Far is the most negative value and Near the value closest to zero.
type ZoomLimits struct {
	Far, Near float32
}

// Clamp restricts d to [Far, Near].
func (z ZoomLimits) Clamp(d float32) float32 {
	return common.Clamp(d, z.Far, z.Near)
}

// Contains reports whether d lies in [Far, Near].
func (z ZoomLimits) Contains(d float32) bool {
	return d >= z.Far && d <= z.Near
}

// Midpoint returns the distance halfway between Far and Near.
func (z ZoomLimits) Midpoint() float32 {
	return (z.Far + z.Near) / 2
}

// usableBounds reports whether b can drive limit derivation. Empty and zero-size boxes cannot.
func usableBounds(b common.Bounds, ok bool) bool {
	return ok && !b.IsEmpty() && b.Magnitude() > 0
}

// DeriveLimits computes pan and zoom limits for a target at the given zoom level.
// Pan range grows linearly with the distance to the subject; zoom range spans one to two
// bounding-box diagonals behind the pivot.
//
// Parameters:
//   - b: the target's bounding box
//   - zoomLevel: the current distance from the pivot (sign is ignored)
//
// Returns:
//   - PanLimits: the derived pan limits
//   - ZoomLimits: the derived zoom limits
func DeriveLimits(b common.Bounds, zoomLevel float32) (PanLimits, ZoomLimits) {
	size := b.Size()
	scale := common.Abs(zoomLevel) / panLimitZoomDivisor
	magnitude := b.Magnitude()

	pan := PanLimits{
		XMin: -size.X() * scale,
		XMax: size.X() * scale,
		YMin: -size.Y() * scale,
		YMax: size.Y() * scale,
	}
	zoom := ZoomLimits{
		Far:  -2 * magnitude,
		Near: -magnitude,
	}
	return pan, zoom
}

// ZoomMultiplier returns the content-aware zoom sensitivity multiplier for a target.
// Larger targets zoom faster so crossing their zoom range takes about the same number of scroll steps.
//
// Parameters:
//   - b: the target's bounding box
//   - ok: false when there is no target, which yields the minimum multiplier
//
// Returns:
//   - float32: a multiplier in [1, 5]
func ZoomMultiplier(b common.Bounds, ok bool) float32 {
	if !usableBounds(b, ok) {
		return minZoomMultiplier
	}
	t := common.InverseLerp(minHalfDiagonal, maxHalfDiagonal, b.Magnitude()/2)
	return common.Lerp(minZoomMultiplier, maxZoomMultiplier, t)
}
