package input

import "log/slog"

type SamplerBuilderOption func(*samplerImpl)

// WithBindings sets the initial bindings.
//
// Parameters:
//   - b: the bindings
//
// Returns:
//   - SamplerBuilderOption: a function that sets the bindings
func WithBindings(b Bindings) SamplerBuilderOption {
	return func(s *samplerImpl) {
		s.bindings = b
	}
}

// WithZoomHandler sets the function receiving scroll deltas.
//
// Parameters:
//   - fn: the handler
//
// Returns:
//   - SamplerBuilderOption: a function that sets the zoom handler
func WithZoomHandler(fn func(scroll float32)) SamplerBuilderOption {
	return func(s *samplerImpl) {
		s.onZoom = fn
	}
}

// WithLogger sets the sampler's logger.
func WithLogger(logger *slog.Logger) SamplerBuilderOption {
	return func(s *samplerImpl) {
		if logger != nil {
			s.logger = logger
		}
	}
}
