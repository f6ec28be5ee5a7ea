package backdrop

import (
	"log/slog"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

// Environment is a named backdrop. Color is linear RGBA.
type Environment struct {
	Name  string
	Color mgl32.Vec4
}

type backdropImpl struct {
	mu *sync.Mutex

	environments []Environment
	current      int

	from  mgl32.Vec4
	to    mgl32.Vec4
	blend Fader

	solidColor mgl32.Vec4
	solid      Fader

	speed  float32
	logger *slog.Logger
}

// Backdrop crossfades the viewer background between environments and a solid colour.
// Every transition is advanced by Update from the frame loop; nothing runs in the background.
type Backdrop interface {
	// Environments returns the configured environments.
	//
	// Returns:
	//   - []Environment: a copy of the environment list
	Environments() []Environment

	// Current returns the active environment and its index, or -1 when none are configured.
	//
	// Returns:
	//   - Environment: the active environment
	//   - int: its index
	Current() (Environment, int)

	// ChangeEnvironment starts a crossfade to the environment at index.
	// Out-of-range indices and the already-active environment are ignored.
	//
	// Parameters:
	//   - index: the environment index
	//
	// Returns:
	//   - bool: true if a transition started
	ChangeEnvironment(index int) bool

	// NextEnvironment crossfades to the following environment, wrapping around.
	//
	// Returns:
	//   - bool: true if a transition started
	NextEnvironment() bool

	// ToggleSolidBackground fades the solid colour in or out.
	//
	// Returns:
	//   - bool: true if the solid colour is now fading in
	ToggleSolidBackground() bool

	// SolidBackground reports whether the solid colour is shown or fading in.
	//
	// Returns:
	//   - bool: the solid background state
	SolidBackground() bool

	// Update advances all transitions by dt seconds.
	//
	// Parameters:
	//   - dt: frame time in seconds
	Update(dt float32)

	// Transitioning reports whether any fade is in progress.
	//
	// Returns:
	//   - bool: true while a fade is running
	Transitioning() bool

	// ClearColor returns the blended background colour for this frame.
	//
	// Returns:
	//   - mgl32.Vec4: linear RGBA
	ClearColor() mgl32.Vec4

	// SetTransitionSpeed changes the fade rate in blend units per second.
	//
	// Parameters:
	//   - speed: the new rate; non-positive values make fades instant
	SetTransitionSpeed(speed float32)
}

var _ Backdrop = &backdropImpl{}

// NewBackdrop creates a Backdrop showing the first environment.
//
// Parameters:
//   - options: functional options to configure the backdrop
//
// Returns:
//   - Backdrop: the newly created backdrop
func NewBackdrop(options ...BackdropBuilderOption) Backdrop {
	b := &backdropImpl{
		mu:         &sync.Mutex{},
		solidColor: mgl32.Vec4{0.1, 0.1, 0.1, 1},
		speed:      1,
		logger:     slog.Default(),
	}
	for _, option := range options {
		option(b)
	}
	b.logger = b.logger.With("component", "backdrop")
	b.blend = NewFader(1, b.speed)
	b.solid = NewFader(0, b.speed)
	b.current = -1
	if len(b.environments) > 0 {
		b.current = 0
		b.from = b.environments[0].Color
		b.to = b.environments[0].Color
	} else {
		b.from = b.solidColor
		b.to = b.solidColor
	}
	return b
}

func (b *backdropImpl) Environments() []Environment {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Environment, len(b.environments))
	copy(out, b.environments)
	return out
}

func (b *backdropImpl) Current() (Environment, int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.current < 0 {
		return Environment{}, -1
	}
	return b.environments[b.current], b.current
}

func (b *backdropImpl) ChangeEnvironment(index int) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.changeEnvironment(index)
}

// changeEnvironment restarts the blend from whatever is on screen now, so a change during a
// running fade never jumps. Caller must hold the mutex.
func (b *backdropImpl) changeEnvironment(index int) bool {
	if index < 0 || index >= len(b.environments) || index == b.current {
		return false
	}
	b.from = b.environmentColor()
	b.to = b.environments[index].Color
	b.blend.Reset(0)
	b.blend.FadeIn()
	b.current = index

	b.logger.Info("environment changed", "name", b.environments[index].Name, "index", index)
	return true
}

func (b *backdropImpl) NextEnvironment() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.environments) < 2 {
		return false
	}
	return b.changeEnvironment((b.current + 1) % len(b.environments))
}

func (b *backdropImpl) ToggleSolidBackground() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.solid.Heading() == 1 {
		b.solid.FadeOut()
	} else {
		b.solid.FadeIn()
	}
	on := b.solid.Heading() == 1
	b.logger.Info("solid background toggled", "enabled", on)
	return on
}

func (b *backdropImpl) SolidBackground() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.solid.Heading() == 1
}

func (b *backdropImpl) Update(dt float32) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.blend.Step(dt)
	b.solid.Step(dt)
}

func (b *backdropImpl) Transitioning() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.blend.Moving() || b.solid.Moving()
}

func (b *backdropImpl) ClearColor() mgl32.Vec4 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return lerpColor(b.environmentColor(), b.solidColor, b.solid.Value())
}

func (b *backdropImpl) SetTransitionSpeed(speed float32) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.speed = speed
	b.blend.SetRate(speed)
	b.solid.SetRate(speed)
}

// environmentColor returns the environment blend without the solid overlay. Caller must hold the mutex.
func (b *backdropImpl) environmentColor() mgl32.Vec4 {
	return lerpColor(b.from, b.to, b.blend.Value())
}

func lerpColor(a, c mgl32.Vec4, t float32) mgl32.Vec4 {
	return a.Add(c.Sub(a).Mul(t))
}
