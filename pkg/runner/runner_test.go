package runner_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aretw0/tmsim"
	"github.com/aretw0/tmsim/pkg/adapters/memory"
	"github.com/aretw0/tmsim/pkg/domain"
	"github.com/aretw0/tmsim/pkg/observability"
	"github.com/aretw0/tmsim/pkg/ports"
	"github.com/aretw0/tmsim/pkg/runner"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const walkRight = `
1 1 1 r 1
1 0 0 r 1
1 _ _ l 2
`

func collect(out *[]string) runner.Handler {
	return runner.HandlerFunc(func(ctx context.Context, res *domain.Result) error {
		*out = append(*out, res.Input)
		return nil
	})
}

func TestRunner_Run(t *testing.T) {
	prog, err := tmsim.CompileText(walkRight)
	require.NoError(t, err)

	var seen []string
	r := runner.New(runner.WithHandler(collect(&seen)))

	results, err := r.Run(context.Background(), prog, []string{"1", "", "10"})
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, []string{"1", "", "10"}, seen)
	for _, res := range results {
		assert.Equal(t, domain.StatusHalted, res.Status)
		assert.False(t, res.Cached)
	}
	assert.Equal(t, 3, results[2].Steps)
}

func TestRunner_FailureDoesNotAbortOthers(t *testing.T) {
	prog, err := tmsim.CompileText("1 1 1 x 2\n1 0 0 r 2", tmsim.WithDeferredDirections())
	require.NoError(t, err)

	results, err := runner.New().Run(context.Background(), prog, []string{"1", "0"})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusFailed, results[0].Status)
	assert.ErrorIs(t, results[0].Err, domain.ErrInvalidDirection)
	assert.Equal(t, domain.StatusHalted, results[1].Status)
}

func TestRunner_ParallelPreservesOrder(t *testing.T) {
	prog, err := tmsim.CompileText(walkRight)
	require.NoError(t, err)

	var tapes []string
	for i := range 40 {
		// Longer tapes first so later ones tend to finish earlier.
		tapes = append(tapes, strings.Repeat("1", 400-i*10))
	}

	var seen []string
	r := runner.New(runner.WithHandler(collect(&seen)), runner.WithParallelism(8))
	results, err := r.Run(context.Background(), prog, tapes)
	require.NoError(t, err)

	assert.Equal(t, tapes, seen)
	for i, res := range results {
		assert.Equal(t, tapes[i], res.Input)
		assert.Equal(t, len(tapes[i])+1, res.Steps)
	}
}

func TestRunner_CachesResults(t *testing.T) {
	store := memory.NewStore()
	metrics := observability.NewMetrics(nil)

	var steps atomic.Int64
	hooks := domain.LifecycleHooks{
		OnStep: func(ctx context.Context, e *domain.StepEvent) { steps.Add(1) },
	}
	prog, err := tmsim.CompileText(walkRight, tmsim.WithLifecycleHooks(hooks))
	require.NoError(t, err)

	r := runner.New(runner.WithStore(store), runner.WithMetrics(metrics))

	first, err := r.Run(context.Background(), prog, []string{"101"})
	require.NoError(t, err)
	assert.False(t, first[0].Cached)
	assert.Equal(t, int64(4), steps.Load())

	second, err := r.Run(context.Background(), prog, []string{"101"})
	require.NoError(t, err)
	assert.True(t, second[0].Cached)
	assert.Equal(t, int64(4), steps.Load(), "a cached run does not execute")
	assert.Equal(t, first[0].Final, second[0].Final)

	key := ports.ResultKey(prog.Fingerprint(), 0, "101")
	_, err = store.Load(context.Background(), key)
	assert.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Cache.WithLabelValues("hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Cache.WithLabelValues("miss")))
}

func TestRunner_StepLimitIsPartOfKey(t *testing.T) {
	store := memory.NewStore()
	r := runner.New(runner.WithStore(store))

	loose, err := tmsim.CompileText(walkRight)
	require.NoError(t, err)
	tight, err := tmsim.CompileText(walkRight, tmsim.WithStepLimit(1))
	require.NoError(t, err)

	_, err = r.Run(context.Background(), loose, []string{"111"})
	require.NoError(t, err)
	results, err := r.Run(context.Background(), tight, []string{"111"})
	require.NoError(t, err)

	assert.False(t, results[0].Cached)
	assert.Equal(t, domain.StatusStepLimit, results[0].Status)
	assert.Equal(t, 2, store.Len())
}

func TestRunner_CanceledRunsAreNotCached(t *testing.T) {
	store := memory.NewStore()
	prog, err := tmsim.CompileText("1 _ _ r 1")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	results, err := runner.New(runner.WithStore(store)).Run(ctx, prog, []string{""})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusCanceled, results[0].Status)
	assert.Equal(t, 0, store.Len())
}

func TestRunner_HandlerErrorCancelsRemaining(t *testing.T) {
	// "1" halts at once, "" walks right over blanks forever.
	prog, err := tmsim.CompileText("1 1 1 r 2\n1 _ _ r 1")
	require.NoError(t, err)

	boom := errors.New("boom")
	failing := runner.HandlerFunc(func(ctx context.Context, res *domain.Result) error {
		return boom
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	r := runner.New(runner.WithHandler(failing), runner.WithParallelism(2))
	results, err := r.Run(ctx, prog, []string{"1", ""})

	assert.ErrorIs(t, err, boom)
	require.Len(t, results, 2)
	assert.Equal(t, domain.StatusHalted, results[0].Status)
	assert.Equal(t, domain.StatusCanceled, results[1].Status)
	assert.NoError(t, ctx.Err(), "the run stopped through the handler, not the deadline")
}

type recordingLocker struct {
	mu    sync.Mutex
	keys  []string
	freed int
}

func (l *recordingLocker) Lock(ctx context.Context, key string, ttl time.Duration) (ports.UnlockFunc, error) {
	l.mu.Lock()
	l.keys = append(l.keys, key)
	l.mu.Unlock()
	return func(ctx context.Context) error {
		l.mu.Lock()
		l.freed++
		l.mu.Unlock()
		return nil
	}, nil
}

func TestRunner_LocksEachKey(t *testing.T) {
	prog, err := tmsim.CompileText(walkRight)
	require.NoError(t, err)

	locker := &recordingLocker{}
	r := runner.New(
		runner.WithStore(memory.NewStore()),
		runner.WithLocker(locker, time.Second),
	)

	_, err = r.Run(context.Background(), prog, []string{"1", "0"})
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{
		ports.ResultKey(prog.Fingerprint(), 0, "1"),
		ports.ResultKey(prog.Fingerprint(), 0, "0"),
	}, locker.keys)
	assert.Equal(t, 2, locker.freed)
}

func TestRunner_NilProgram(t *testing.T) {
	_, err := runner.New().Run(context.Background(), nil, []string{"1"})
	assert.Error(t, err)
}

func TestRunner_KeepsSummaryByDefault(t *testing.T) {
	prog, err := tmsim.CompileText("1 _ 1 r 1", tmsim.WithStepLimit(5000))
	require.NoError(t, err)

	results, err := runner.New().Run(context.Background(), prog, []string{"", "1"})
	require.NoError(t, err)
	for _, res := range results {
		assert.Equal(t, domain.StatusStepLimit, res.Status)
		assert.Equal(t, 5000, res.Steps)
		require.Len(t, res.Records, 2)
		assert.Equal(t, domain.LabelStart, res.Records[0].Label)
		assert.Equal(t, res.Final, res.Records[1])
	}

	results, err = runner.New(runner.WithFullTrace(true)).Run(context.Background(), prog, []string{""})
	require.NoError(t, err)
	assert.Len(t, results[0].Records, 5002)
}

func TestRunner_CacheServesBothTraceModes(t *testing.T) {
	store := memory.NewStore()
	prog, err := tmsim.CompileText(walkRight)
	require.NoError(t, err)

	summary := runner.New(runner.WithStore(store))
	full := runner.New(runner.WithStore(store), runner.WithFullTrace(true))

	first, err := summary.Run(context.Background(), prog, []string{"11"})
	require.NoError(t, err)
	assert.Len(t, first[0].Records, 2)

	// The stored summary cannot answer a full trace.
	second, err := full.Run(context.Background(), prog, []string{"11"})
	require.NoError(t, err)
	assert.False(t, second[0].Cached)
	assert.Len(t, second[0].Records, 5)

	third, err := summary.Run(context.Background(), prog, []string{"11"})
	require.NoError(t, err)
	assert.True(t, third[0].Cached)
	assert.Len(t, third[0].Records, 2)
	assert.Equal(t, first[0].Final, third[0].Final)
}

func TestRunner_CacheHitKeepsMachineID(t *testing.T) {
	store := memory.NewStore()
	r := runner.New(runner.WithStore(store))

	twin := func(id string) *tmsim.Program {
		rules, err := tmsim.ParseRules(strings.NewReader(walkRight))
		require.NoError(t, err)
		prog, err := tmsim.Compile(&domain.Machine{ID: id, Rules: rules})
		require.NoError(t, err)
		return prog
	}
	left, right := twin("left"), twin("right")
	require.Equal(t, left.Fingerprint(), right.Fingerprint())

	_, err := r.Run(context.Background(), left, []string{"10"})
	require.NoError(t, err)
	results, err := r.Run(context.Background(), right, []string{"10"})
	require.NoError(t, err)

	assert.True(t, results[0].Cached)
	assert.Equal(t, "right", results[0].Machine)
}
