package common

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Bounds is an axis-aligned bounding box in world space.
// The zero value is a degenerate box at the origin; use NewBounds for an empty box that
// any Extend call will replace.
type Bounds struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// NewBounds returns an empty (inverted) box ready to be grown with Extend.
func NewBounds() Bounds {
	return Bounds{
		Min: mgl32.Vec3{math32.MaxFloat32, math32.MaxFloat32, math32.MaxFloat32},
		Max: mgl32.Vec3{-math32.MaxFloat32, -math32.MaxFloat32, -math32.MaxFloat32},
	}
}

// BoundsFromSize returns a box of the given size centred on the origin.
//
// Parameters:
//   - size: full extents along X, Y and Z
//
// Returns:
//   - Bounds: the centred box
func BoundsFromSize(size mgl32.Vec3) Bounds {
	half := size.Mul(0.5)
	return Bounds{Min: half.Mul(-1), Max: half}
}

// BoundsFromPoints returns the smallest box enclosing all points.
// An empty slice yields an empty box (IsEmpty reports true).
func BoundsFromPoints(points []mgl32.Vec3) Bounds {
	b := NewBounds()
	for _, p := range points {
		b.Extend(p)
	}
	return b
}

// Extend grows the box to include p.
func (b *Bounds) Extend(p mgl32.Vec3) {
	for i := range 3 {
		if p[i] < b.Min[i] {
			b.Min[i] = p[i]
		}
		if p[i] > b.Max[i] {
			b.Max[i] = p[i]
		}
	}
}

// IsEmpty reports whether the box has never been extended (any Min component above its Max).
func (b Bounds) IsEmpty() bool {
	return b.Min[0] > b.Max[0] || b.Min[1] > b.Max[1] || b.Min[2] > b.Max[2]
}

// Size returns the box extents. An empty box has zero size.
func (b Bounds) Size() mgl32.Vec3 {
	if b.IsEmpty() {
		return mgl32.Vec3{}
	}
	return b.Max.Sub(b.Min)
}

// Center returns the midpoint of the box.
func (b Bounds) Center() mgl32.Vec3 {
	if b.IsEmpty() {
		return mgl32.Vec3{}
	}
	return b.Min.Add(b.Max).Mul(0.5)
}

// Magnitude returns the length of the box diagonal.
func (b Bounds) Magnitude() float32 {
	return b.Size().Len()
}

// Corners returns the eight box corners, bottom face first (counter-clockwise from Min),
// then the top face in the same order.
func (b Bounds) Corners() [8]mgl32.Vec3 {
	lo, hi := b.Min, b.Max
	return [8]mgl32.Vec3{
		{lo[0], lo[1], lo[2]}, {hi[0], lo[1], lo[2]}, {hi[0], lo[1], hi[2]}, {lo[0], lo[1], hi[2]},
		{lo[0], hi[1], lo[2]}, {hi[0], hi[1], lo[2]}, {hi[0], hi[1], hi[2]}, {lo[0], hi[1], hi[2]},
	}
}
