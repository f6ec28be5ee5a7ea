package input

import (
	"log/slog"
	"sync"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/camera"
	"github.com/go-gl/mathgl/mgl32"
)

// EventSource is the part of a window the sampler listens to.
type EventSource interface {
	SetScrollCallback(callback func(delta float32))
	SetKeyDownCallback(callback func(keyCode uint32))
	SetKeyUpCallback(callback func(keyCode uint32))
	SetMouseButtonDownCallback(callback func(button int, x, y float32))
	SetMouseButtonUpCallback(callback func(button int, x, y float32))
	SetMouseMoveCallback(callback func(x, y float32))
}

// Frame is everything sampled since the previous Sample call.
type Frame struct {
	Camera           camera.FrameInput
	NextTarget       bool
	ToggleBackground bool
	NextEnvironment  bool
}

type samplerImpl struct {
	mu *sync.Mutex

	bindings Bindings
	onZoom   func(scroll float32)
	logger   *slog.Logger

	buttons map[int]bool
	keys    map[int]bool
	edges   map[Action]bool

	cursor    mgl32.Vec2
	hasCursor bool
	delta     mgl32.Vec2
}

// Sampler turns window callbacks into per-frame input samples.
// Pointer motion accumulates between samples; key presses become one-shot edges that the next
// Sample consumes. Scroll is forwarded to the zoom handler as it arrives.
type Sampler interface {
	// Attach installs the sampler's callbacks on src, replacing any existing ones.
	//
	// Parameters:
	//   - src: the window to listen to
	Attach(src EventSource)

	// Sample returns the input gathered since the previous call and clears the accumulated
	// pointer delta and key edges. Held buttons carry over.
	//
	// Returns:
	//   - Frame: the sampled input
	Sample() Frame

	// Cursor returns the last cursor position in window pixels, origin top-left.
	//
	// Returns:
	//   - mgl32.Vec2: the cursor position
	Cursor() mgl32.Vec2

	// SetBindings replaces the bindings. Held buttons and pending edges are cleared.
	//
	// Parameters:
	//   - b: the new bindings
	SetBindings(b Bindings)

	// SetZoomHandler sets the function receiving scroll deltas.
	//
	// Parameters:
	//   - fn: the handler, or nil to drop scroll input
	SetZoomHandler(fn func(scroll float32))
}

var _ Sampler = &samplerImpl{}

// NewSampler creates a Sampler with default bindings.
//
// Parameters:
//   - options: functional options to configure the sampler
//
// Returns:
//   - Sampler: the newly created sampler
func NewSampler(options ...SamplerBuilderOption) Sampler {
	s := &samplerImpl{
		mu:       &sync.Mutex{},
		bindings: DefaultBindings(),
		logger:   slog.Default(),
		buttons:  make(map[int]bool),
		keys:     make(map[int]bool),
		edges:    make(map[Action]bool),
	}
	for _, option := range options {
		option(s)
	}
	return s
}

func (s *samplerImpl) Attach(src EventSource) {
	src.SetScrollCallback(s.handleScroll)
	src.SetKeyDownCallback(s.handleKeyDown)
	src.SetKeyUpCallback(s.handleKeyUp)
	src.SetMouseButtonDownCallback(s.handleButtonDown)
	src.SetMouseButtonUpCallback(s.handleButtonUp)
	src.SetMouseMoveCallback(s.handleMove)
}

func (s *samplerImpl) Sample() Frame {
	s.mu.Lock()
	defer s.mu.Unlock()

	f := Frame{
		Camera: camera.FrameInput{
			PointerDelta: s.delta,
			Rotating:     s.buttons[s.bindings.RotateButton],
			Panning:      s.buttons[s.bindings.PanButton],
			FocusPressed: s.edges[ActionFocus],
			ResetPressed: s.edges[ActionReset],
		},
		NextTarget:       s.edges[ActionNextTarget],
		ToggleBackground: s.edges[ActionToggleBackground],
		NextEnvironment:  s.edges[ActionNextEnvironment],
	}
	s.delta = mgl32.Vec2{}
	clear(s.edges)
	return f
}

func (s *samplerImpl) Cursor() mgl32.Vec2 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor
}

func (s *samplerImpl) SetBindings(b Bindings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bindings = b
	clear(s.buttons)
	clear(s.edges)
}

func (s *samplerImpl) SetZoomHandler(fn func(scroll float32)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onZoom = fn
}

func (s *samplerImpl) handleScroll(delta float32) {
	s.mu.Lock()
	fn := s.onZoom
	s.mu.Unlock()

	if !common.IsFinite(delta) {
		s.logger.Debug("dropping invalid scroll", "delta", delta)
		return
	}
	if fn != nil {
		fn(delta)
	}
}

func (s *samplerImpl) handleKeyDown(keyCode uint32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	code := int(keyCode)
	if s.keys[code] {
		return // repeat
	}
	s.keys[code] = true
	if action, ok := s.bindings.keyAction(code); ok {
		s.edges[action] = true
	}
}

func (s *samplerImpl) handleKeyUp(keyCode uint32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.keys, int(keyCode))
}

func (s *samplerImpl) handleButtonDown(button int, x, y float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buttons[button] = true
	s.moveTo(x, y)
}

func (s *samplerImpl) handleButtonUp(button int, x, y float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.buttons, button)
	s.moveTo(x, y)
}

func (s *samplerImpl) handleMove(x, y float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.moveTo(x, y)
}

// moveTo records a cursor position and accumulates the y-up delta from the previous one.
// Caller must hold the mutex.
func (s *samplerImpl) moveTo(x, y float32) {
	if !common.IsFinite(x) || !common.IsFinite(y) {
		return
	}
	p := mgl32.Vec2{x, y}
	if s.hasCursor {
		d := p.Sub(s.cursor)
		s.delta = s.delta.Add(mgl32.Vec2{d[0], -d[1]})
	}
	s.cursor = p
	s.hasCursor = true
}
