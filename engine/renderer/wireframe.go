package renderer

import (
	_ "embed"
	"encoding/binary"
	"math"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/camera"
	"github.com/go-gl/mathgl/mgl32"
)

//go:embed assets/wireframe.wgsl
var wireframeSource string

// WireframeShaderSource returns the complete wireframe WGSL module, including the camera uniform struct.
func WireframeShaderSource() string {
	return camera.GPUCameraUniformSource + "\n" + wireframeSource
}

// LineVertexSize is the stride of one LineVertex in the vertex buffer.
const LineVertexSize = 24

// LineVertex is one end of a coloured line segment.
type LineVertex struct {
	Position mgl32.Vec3 // offset  0: vec3<f32>
	Color    mgl32.Vec3 // offset 12: vec3<f32>
}

// Wireframe collects coloured line segments for one frame.
type Wireframe struct {
	vertices []LineVertex
}

// Reset drops all segments but keeps the backing storage.
func (w *Wireframe) Reset() {
	w.vertices = w.vertices[:0]
}

// AddLines appends a line list. A trailing unpaired point is ignored.
//
// Parameters:
//   - points: consecutive pairs form one segment
//   - color: linear RGB
func (w *Wireframe) AddLines(points []mgl32.Vec3, color mgl32.Vec3) {
	n := len(points) &^ 1
	for _, p := range points[:n] {
		w.vertices = append(w.vertices, LineVertex{Position: p, Color: color})
	}
}

// AddBounds appends the twelve edges of b. Empty bounds add nothing.
func (w *Wireframe) AddBounds(b common.Bounds, color mgl32.Vec3) {
	if b.IsEmpty() {
		return
	}
	c := b.Corners()
	edges := [12][2]int{
		{0, 1}, {1, 2}, {2, 3}, {3, 0},
		{4, 5}, {5, 6}, {6, 7}, {7, 4},
		{0, 4}, {1, 5}, {2, 6}, {3, 7},
	}
	for _, e := range edges {
		w.vertices = append(w.vertices,
			LineVertex{Position: c[e[0]], Color: color},
			LineVertex{Position: c[e[1]], Color: color},
		)
	}
}

// AddAxes appends an RGB axis gizmo of the given length at origin.
func (w *Wireframe) AddAxes(origin mgl32.Vec3, length float32) {
	axes := [3]mgl32.Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	for _, axis := range axes {
		w.vertices = append(w.vertices,
			LineVertex{Position: origin, Color: axis},
			LineVertex{Position: origin.Add(axis.Mul(length)), Color: axis},
		)
	}
}

// VertexCount returns the number of vertices collected.
func (w *Wireframe) VertexCount() int {
	return len(w.vertices)
}

// Marshal serializes the vertices into a little-endian vertex buffer.
//
// Returns:
//   - []byte: VertexCount()*LineVertexSize bytes
func (w *Wireframe) Marshal() []byte {
	buf := make([]byte, len(w.vertices)*LineVertexSize)
	for i, v := range w.vertices {
		base := i * LineVertexSize
		for k := range 3 {
			binary.LittleEndian.PutUint32(buf[base+k*4:], math.Float32bits(v.Position[k]))
			binary.LittleEndian.PutUint32(buf[base+12+k*4:], math.Float32bits(v.Color[k]))
		}
	}
	return buf
}
