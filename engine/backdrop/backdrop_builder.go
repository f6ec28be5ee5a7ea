package backdrop

import (
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"
)

type BackdropBuilderOption func(*backdropImpl)

// WithEnvironments sets the selectable environments. The first one is shown initially.
//
// Parameters:
//   - envs: the environments
//
// Returns:
//   - BackdropBuilderOption: a function that sets the environments
func WithEnvironments(envs ...Environment) BackdropBuilderOption {
	return func(b *backdropImpl) {
		b.environments = append([]Environment(nil), envs...)
	}
}

// WithSolidColor sets the colour shown when the solid background is enabled.
//
// Parameters:
//   - color: linear RGBA
//
// Returns:
//   - BackdropBuilderOption: a function that sets the solid colour
func WithSolidColor(color mgl32.Vec4) BackdropBuilderOption {
	return func(b *backdropImpl) {
		b.solidColor = color
	}
}

// WithTransitionSpeed sets the fade rate in blend units per second.
//
// Parameters:
//   - speed: the rate
//
// Returns:
//   - BackdropBuilderOption: a function that sets the fade rate
func WithTransitionSpeed(speed float32) BackdropBuilderOption {
	return func(b *backdropImpl) {
		b.speed = speed
	}
}

// WithLogger sets the backdrop's logger.
func WithLogger(logger *slog.Logger) BackdropBuilderOption {
	return func(b *backdropImpl) {
		if logger != nil {
			b.logger = logger
		}
	}
}
