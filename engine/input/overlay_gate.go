package input

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-viewer/engine/camera"
	"github.com/go-gl/mathgl/mgl32"
)

// Rect is a screen rectangle in window pixels, origin top-left.
type Rect struct {
	X, Y          float32
	Width, Height float32
}

// Contains reports whether p lies inside the rectangle, edges included.
func (r Rect) Contains(p mgl32.Vec2) bool {
	return p[0] >= r.X && p[0] <= r.X+r.Width && p[1] >= r.Y && p[1] <= r.Y+r.Height
}

// OverlayGate reports UI focus when the cursor is inside any registered overlay region.
type OverlayGate struct {
	mu      sync.Mutex
	cursor  func() mgl32.Vec2
	regions []Rect
}

var _ camera.PointerGate = &OverlayGate{}

// NewOverlayGate creates a gate that reads the cursor through cursor.
//
// Parameters:
//   - cursor: returns the current cursor position
//   - regions: the initial overlay regions
//
// Returns:
//   - *OverlayGate: the gate
func NewOverlayGate(cursor func() mgl32.Vec2, regions ...Rect) *OverlayGate {
	return &OverlayGate{cursor: cursor, regions: regions}
}

// SetRegions replaces the overlay regions.
func (g *OverlayGate) SetRegions(regions []Rect) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.regions = append([]Rect(nil), regions...)
}

func (g *OverlayGate) PointerOverUI() bool {
	if g.cursor == nil {
		return false
	}
	p := g.cursor()
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, r := range g.regions {
		if r.Contains(p) {
			return true
		}
	}
	return false
}
