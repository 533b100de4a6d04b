package observability_test

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/aretw0/tmsim"
	"github.com/aretw0/tmsim/pkg/domain"
	"github.com/aretw0/tmsim/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Hooks(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := observability.NewMetrics(reg)

	prog, err := tmsim.CompileText("1 1 1 r 1\n1 _ _ l 2",
		tmsim.WithLifecycleHooks(m.Hooks("home")))
	require.NoError(t, err)

	prog.Run(context.Background(), "1")
	prog.Run(context.Background(), "111")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Runs.WithLabelValues("home", "halted")))
	assert.Equal(t, 6.0, testutil.ToFloat64(m.Steps.WithLabelValues("home")), "2 + 4 applied steps")
	assert.Equal(t, 0.0, testutil.ToFloat64(m.InFlight))
	assert.Equal(t, 1, testutil.CollectAndCount(m.Duration))

	err = testutil.GatherAndCompare(reg, strings.NewReader(`
# HELP tmsim_runs_total Total number of finished runs by terminal status
# TYPE tmsim_runs_total counter
tmsim_runs_total{machine="home",status="halted"} 2
`), "tmsim_runs_total")
	assert.NoError(t, err)
}

func TestMetrics_StatusLabels(t *testing.T) {
	m := observability.NewMetrics(nil)

	prog, err := tmsim.CompileText("1 _ _ r 1", tmsim.WithStepLimit(3),
		tmsim.WithLifecycleHooks(m.Hooks("")))
	require.NoError(t, err)
	prog.Run(context.Background(), "")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Runs.WithLabelValues("anonymous", string(domain.StatusStepLimit))))
}

func TestMetrics_Cache(t *testing.T) {
	m := observability.NewMetrics(nil)
	m.CacheHit()
	m.CacheHit()
	m.CacheMiss()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Cache.WithLabelValues("hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Cache.WithLabelValues("miss")))
}

func TestChainHooks(t *testing.T) {
	var order []string
	a := domain.LifecycleHooks{
		OnRunStart: func(ctx context.Context, e *domain.RunEvent) { order = append(order, "a-start") },
		OnStep:     func(ctx context.Context, e *domain.StepEvent) { order = append(order, "a-step") },
	}
	b := domain.LifecycleHooks{
		OnRunStart: func(ctx context.Context, e *domain.RunEvent) { order = append(order, "b-start") },
		OnRunStop:  func(ctx context.Context, e *domain.RunEvent) { order = append(order, "b-stop") },
	}

	prog, err := tmsim.CompileText("1 1 1 r 2", tmsim.WithLifecycleHooks(observability.ChainHooks(a, b)))
	require.NoError(t, err)
	prog.Run(context.Background(), "1")

	assert.Equal(t, []string{"a-start", "b-start", "a-step", "b-stop"}, order)
	assert.Nil(t, observability.ChainHooks().OnStep)
}

func TestLoggingHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	prog, err := tmsim.CompileText("1 1 0 r 2", tmsim.WithLifecycleHooks(observability.LoggingHooks(logger)))
	require.NoError(t, err)
	prog.Run(context.Background(), "1")

	out := buf.String()
	assert.Contains(t, out, "msg=run_start")
	assert.Contains(t, out, "msg=step")
	assert.Contains(t, out, "write=0")
	assert.Contains(t, out, "msg=run_stop")
	assert.Contains(t, out, "status=halted")
}
