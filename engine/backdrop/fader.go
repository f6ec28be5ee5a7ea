package backdrop

import "github.com/Carmen-Shannon/oxy-viewer/common"

// Fader moves a blend value between 0 and 1 at a fixed rate, one frame at a time.
type Fader struct {
	value     float32
	direction float32
	rate      float32
}

// NewFader returns a fader resting at value that moves at rate units per second.
func NewFader(value, rate float32) Fader {
	return Fader{value: common.Clamp01(value), rate: rate}
}

// FadeIn heads toward 1.
func (f *Fader) FadeIn() {
	f.direction = 1
}

// FadeOut heads toward 0.
func (f *Fader) FadeOut() {
	f.direction = -1
}

// Reset jumps to value and stops.
func (f *Fader) Reset(value float32) {
	f.value = common.Clamp01(value)
	f.direction = 0
}

// SetRate changes the fade speed in units per second.
func (f *Fader) SetRate(rate float32) {
	f.rate = rate
}

// Step advances the fader by dt seconds and stops it once it reaches an end.
//
// Parameters:
//   - dt: frame time in seconds
//
// Returns:
//   - bool: true while the fader is still moving
func (f *Fader) Step(dt float32) bool {
	if f.direction == 0 {
		return false
	}
	if !common.IsFinite(dt) || dt < 0 {
		dt = 0
	}
	f.value = common.Clamp01(f.value + f.direction*f.rate*dt)
	if (f.direction > 0 && f.value >= 1) || (f.direction < 0 && f.value <= 0) || f.rate <= 0 {
		if f.rate <= 0 {
			f.value = common.Clamp01(f.direction)
		}
		f.direction = 0
	}
	return f.direction != 0
}

// Value returns the current blend.
func (f Fader) Value() float32 {
	return f.value
}

// Moving reports whether the fader has not yet reached its end.
func (f Fader) Moving() bool {
	return f.direction != 0
}

// Heading returns 1 when the fader rests at or is moving toward 1, 0 otherwise.
func (f Fader) Heading() float32 {
	switch {
	case f.direction > 0:
		return 1
	case f.direction < 0:
		return 0
	case f.value >= 0.5:
		return 1
	default:
		return 0
	}
}
