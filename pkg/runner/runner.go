package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/tmsim"
	"github.com/aretw0/tmsim/pkg/domain"
	"github.com/aretw0/tmsim/pkg/observability"
	"github.com/aretw0/tmsim/pkg/ports"
	"golang.org/x/sync/errgroup"
)

// Runner runs a Program over a batch of tapes.
type Runner struct {
	// Handler receives every result in input order. Defaults to Discard.
	Handler Handler

	// Logger is used for internal debug logging.
	// If nil, a no-op logger is used.
	Logger *slog.Logger

	// Store memoises results. If nil, every tape is computed.
	Store ports.ResultStore

	// Locker serialises computation of the same key across processes.
	Locker  ports.DistributedLocker
	LockTTL time.Duration

	// FullTrace keeps every record of every run. Otherwise results hold
	// only the START and terminal records.
	FullTrace bool

	Parallelism int
	Metrics     *observability.Metrics
}

// New creates a Runner.
func New(opts ...Option) *Runner {
	r := &Runner{}
	for _, opt := range opts {
		opt(r)
	}
	if r.Handler == nil {
		r.Handler = Discard
	}
	if r.Logger == nil {
		r.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if r.Parallelism < 1 {
		r.Parallelism = 1
	}
	if r.LockTTL <= 0 {
		r.LockTTL = DefaultLockTTL
	}
	return r
}

// Run executes prog on every tape and returns the results in input order.
// A failing run never aborts the others; the error is only non-nil when the
// Handler fails, in which case the remaining runs are canceled.
func (r *Runner) Run(ctx context.Context, prog *tmsim.Program, tapes []string) ([]*domain.Result, error) {
	if prog == nil {
		return nil, errors.New("runner: nil program")
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make([]*domain.Result, len(tapes))
	done := make([]chan struct{}, len(tapes))
	for i := range done {
		done[i] = make(chan struct{})
	}

	// Emit in order while later tapes are still running.
	emitted := make(chan error, 1)
	go func() {
		var handlerErr error
		for i := range tapes {
			<-done[i]
			if handlerErr != nil {
				continue
			}
			if err := r.Handler.Handle(ctx, results[i]); err != nil {
				handlerErr = fmt.Errorf("handle result %d: %w", i, err)
				cancel()
			}
		}
		emitted <- handlerErr
	}()

	var g errgroup.Group
	g.SetLimit(r.Parallelism)
	for i, input := range tapes {
		g.Go(func() error {
			defer close(done[i])
			results[i] = r.runOne(ctx, prog, input)
			return nil
		})
	}
	_ = g.Wait()

	return results, <-emitted
}

func (r *Runner) runOne(ctx context.Context, prog *tmsim.Program, input string) *domain.Result {
	if r.Store == nil {
		return r.execute(ctx, prog, input)
	}

	key := ports.ResultKey(prog.Fingerprint(), prog.StepLimit(), input)
	logger := r.Logger.With("key", key)

	if r.Locker != nil {
		unlock, err := r.Locker.Lock(ctx, key, r.LockTTL)
		if err != nil {
			logger.Warn("result lock unavailable, computing without it", "error", err)
		} else {
			defer func() {
				if err := unlock(context.WithoutCancel(ctx)); err != nil {
					logger.Warn("result unlock failed", "error", err)
				}
			}()
		}
	}

	cached, err := r.Store.Load(ctx, key)
	switch {
	case err == nil && r.FullTrace && !cached.Complete():
		logger.Debug("cached result holds a summary only, recomputing")
	case err == nil:
		logger.Debug("result cache hit")
		if r.Metrics != nil {
			r.Metrics.CacheHit()
		}
		if !r.FullTrace {
			cached = cached.Summary()
		}
		// Machines with identical rules share a key.
		cached.Machine = prog.ID()
		cached.Cached = true
		return cached
	case !errors.Is(err, domain.ErrResultNotFound):
		logger.Warn("result cache read failed", "error", err)
	}

	if r.Metrics != nil {
		r.Metrics.CacheMiss()
	}
	res := r.execute(ctx, prog, input)

	// A canceled run says nothing about the machine.
	if res.Status == domain.StatusCanceled {
		return res
	}
	if err := r.Store.Save(context.WithoutCancel(ctx), key, res); err != nil {
		logger.Warn("result cache write failed", "error", err)
	}
	return res
}

func (r *Runner) execute(ctx context.Context, prog *tmsim.Program, input string) *domain.Result {
	if r.FullTrace {
		return prog.Run(ctx, input)
	}
	return prog.Outcome(ctx, input)
}
