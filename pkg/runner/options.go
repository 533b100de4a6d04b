package runner

import (
	"log/slog"
	"time"

	"github.com/aretw0/tmsim/pkg/observability"
	"github.com/aretw0/tmsim/pkg/ports"
)

// DefaultLockTTL bounds how long a run may hold its result key.
const DefaultLockTTL = 30 * time.Second

// Option defines a functional option for configuring the Runner.
type Option func(*Runner)

// WithHandler configures where finished results go.
func WithHandler(h Handler) Option {
	return func(r *Runner) {
		r.Handler = h
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.Logger = logger
	}
}

// WithStore configures the ResultStore used to memoise runs.
func WithStore(store ports.ResultStore) Option {
	return func(r *Runner) {
		r.Store = store
	}
}

// WithLocker guards each result key with a distributed lock.
// It only has an effect together with WithStore.
func WithLocker(locker ports.DistributedLocker, ttl time.Duration) Option {
	return func(r *Runner) {
		r.Locker = locker
		r.LockTTL = ttl
	}
}

// WithFullTrace keeps every record of every run instead of the START and
// terminal records only.
func WithFullTrace(full bool) Option {
	return func(r *Runner) {
		r.FullTrace = full
	}
}

// WithParallelism sets how many tapes run at once. Values below 1 mean 1.
func WithParallelism(n int) Option {
	return func(r *Runner) {
		r.Parallelism = n
	}
}

// WithMetrics records cache hits and misses.
func WithMetrics(m *observability.Metrics) Option {
	return func(r *Runner) {
		r.Metrics = m
	}
}
