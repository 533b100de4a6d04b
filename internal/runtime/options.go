package runtime

import (
	"log/slog"

	"github.com/aretw0/tmsim/pkg/domain"
	"github.com/aretw0/tmsim/pkg/tape"
)

// Option configures a Simulator.
type Option func(*Simulator)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Simulator) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(s *Simulator) {
		s.hooks = hooks
	}
}

// WithStepLimit bounds the number of applied transitions per run.
// Zero means unbounded: the run may never end.
func WithStepLimit(n int) Option {
	return func(s *Simulator) {
		if n >= 0 {
			s.limit = n
		}
	}
}

// WithTapeOptions passes extra options to every tape the simulator loads.
func WithTapeOptions(opts ...tape.Option) Option {
	return func(s *Simulator) {
		s.tapeOpts = append(s.tapeOpts, opts...)
	}
}
