package selection

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Shape selects the procedural wireframe generated for a target.
type Shape string

const (
	ShapeBox    Shape = "box"
	ShapeSphere Shape = "sphere"
	ShapeTorus  Shape = "torus"
)

const defaultSegments = 24

// boxEdges indexes pairs of common.Bounds.Corners forming the twelve box edges.
var boxEdges = [12][2]int{
	{0, 1}, {1, 2}, {2, 3}, {3, 0},
	{4, 5}, {5, 6}, {6, 7}, {7, 4},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

// Box returns the line-list wireframe of a box with the given full extents, centred on the origin.
func Box(size mgl32.Vec3) []mgl32.Vec3 {
	return BoxEdges(common.BoundsFromSize(size))
}

// BoxEdges returns the line-list wireframe of an existing bounding box.
func BoxEdges(b common.Bounds) []mgl32.Vec3 {
	corners := b.Corners()
	points := make([]mgl32.Vec3, 0, len(boxEdges)*2)
	for _, e := range boxEdges {
		points = append(points, corners[e[0]], corners[e[1]])
	}
	return points
}

// Sphere returns a latitude/longitude line-list wireframe of a sphere.
//
// Parameters:
//   - radius: sphere radius
//   - segments: subdivisions around the equator; latitude bands use half as many
//
// Returns:
//   - []mgl32.Vec3: line-list vertices
func Sphere(radius float32, segments int) []mgl32.Vec3 {
	rings := max(segments/2, 2)
	var points []mgl32.Vec3

	// parallels
	for i := 1; i < rings; i++ {
		phi := math32.Pi * float32(i) / float32(rings)
		y := radius * math32.Cos(phi)
		r := radius * math32.Sin(phi)
		points = appendCircle(points, segments, func(theta float32) mgl32.Vec3 {
			return mgl32.Vec3{r * math32.Cos(theta), y, r * math32.Sin(theta)}
		})
	}

	// meridians
	for j := range segments {
		theta := 2 * math32.Pi * float32(j) / float32(segments)
		for i := range rings {
			p0 := math32.Pi * float32(i) / float32(rings)
			p1 := math32.Pi * float32(i+1) / float32(rings)
			points = append(points, spherePoint(radius, p0, theta), spherePoint(radius, p1, theta))
		}
	}
	return points
}

func spherePoint(radius, phi, theta float32) mgl32.Vec3 {
	s := math32.Sin(phi)
	return mgl32.Vec3{radius * s * math32.Cos(theta), radius * math32.Cos(phi), radius * s * math32.Sin(theta)}
}

// Torus returns a line-list wireframe of a torus lying in the XZ plane.
//
// Parameters:
//   - major: distance from the centre to the tube centre
//   - minor: tube radius
//   - segments: subdivisions around the ring; the tube uses half as many
//
// Returns:
//   - []mgl32.Vec3: line-list vertices
func Torus(major, minor float32, segments int) []mgl32.Vec3 {
	tube := max(segments/2, 3)
	var points []mgl32.Vec3

	for i := range segments {
		u := 2 * math32.Pi * float32(i) / float32(segments)
		cu, su := math32.Cos(u), math32.Sin(u)
		points = appendCircle(points, tube, func(v float32) mgl32.Vec3 {
			r := major + minor*math32.Cos(v)
			return mgl32.Vec3{r * cu, minor * math32.Sin(v), r * su}
		})
	}
	for j := range tube {
		v := 2 * math32.Pi * float32(j) / float32(tube)
		r := major + minor*math32.Cos(v)
		y := minor * math32.Sin(v)
		points = appendCircle(points, segments, func(u float32) mgl32.Vec3 {
			return mgl32.Vec3{r * math32.Cos(u), y, r * math32.Sin(u)}
		})
	}
	return points
}

func appendCircle(points []mgl32.Vec3, segments int, at func(angle float32) mgl32.Vec3) []mgl32.Vec3 {
	for k := range segments {
		a0 := 2 * math32.Pi * float32(k) / float32(segments)
		a1 := 2 * math32.Pi * float32(k+1) / float32(segments)
		points = append(points, at(a0), at(a1))
	}
	return points
}

// buildPoints generates the wireframe for spec.
func buildPoints(spec TargetSpec) ([]mgl32.Vec3, error) {
	segments := spec.Segments
	if segments <= 0 {
		segments = defaultSegments
	}
	if segments < 3 {
		return nil, fmt.Errorf("%w: %d segments", ErrInvalidSpec, segments)
	}
	for _, c := range spec.Size {
		if !(c > 0) || math32.IsInf(c, 0) {
			return nil, fmt.Errorf("%w: size %v", ErrInvalidSpec, spec.Size)
		}
	}

	switch spec.Shape {
	case ShapeBox:
		return Box(spec.Size), nil
	case ShapeSphere:
		return Sphere(spec.Size.X()/2, segments), nil
	case ShapeTorus:
		minor := spec.Size.Y() / 2
		major := spec.Size.X()/2 - minor
		if major <= 0 {
			return nil, fmt.Errorf("%w: torus tube wider than ring", ErrInvalidSpec)
		}
		return Torus(major, minor, segments), nil
	default:
		return nil, fmt.Errorf("%w: unknown shape %q", ErrInvalidSpec, spec.Shape)
	}
}
