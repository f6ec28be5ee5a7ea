package selection

import "log/slog"

type ManagerBuilderOption func(*managerImpl)

// WithWorkers sets the number of preload workers.
//
// Parameters:
//   - n: worker count; values below 1 are ignored
//
// Returns:
//   - ManagerBuilderOption: a function that sets the worker count
func WithWorkers(n int) ManagerBuilderOption {
	return func(m *managerImpl) {
		if n > 0 {
			m.workers = n
		}
	}
}

// WithAutoSelect controls whether the first preloaded target is selected when nothing is selected yet.
//
// Parameters:
//   - enabled: true to select automatically
//
// Returns:
//   - ManagerBuilderOption: a function that sets auto selection
func WithAutoSelect(enabled bool) ManagerBuilderOption {
	return func(m *managerImpl) {
		m.autoSelect = enabled
	}
}

// WithLogger sets the manager's logger.
func WithLogger(logger *slog.Logger) ManagerBuilderOption {
	return func(m *managerImpl) {
		if logger != nil {
			m.logger = logger
		}
	}
}
