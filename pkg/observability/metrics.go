package observability

import (
	"context"

	"github.com/aretw0/tmsim/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors fed by engine hooks.
type Metrics struct {
	Runs     *prometheus.CounterVec
	Steps    *prometheus.CounterVec
	Duration *prometheus.HistogramVec
	InFlight prometheus.Gauge
	Cache    *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg skips registration, which is useful in tests.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tmsim_runs_total",
				Help: "Total number of finished runs by terminal status",
			},
			[]string{"machine", "status"},
		),
		Steps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tmsim_steps_total",
				Help: "Total number of applied transitions",
			},
			[]string{"machine"},
		),
		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tmsim_run_duration_seconds",
				Help:    "Wall time of a run from START to its terminal record",
				Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
			},
			[]string{"machine"},
		),
		InFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "tmsim_runs_in_flight",
				Help: "Number of runs currently executing",
			},
		),
		Cache: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tmsim_result_cache_total",
				Help: "Result cache lookups by outcome (hit or miss)",
			},
			[]string{"outcome"},
		),
	}

	if reg != nil {
		reg.MustRegister(m.Runs, m.Steps, m.Duration, m.InFlight, m.Cache)
	}
	return m
}

// Hooks returns lifecycle hooks that record metrics under the machine label.
func (m *Metrics) Hooks(machine string) domain.LifecycleHooks {
	if machine == "" {
		machine = "anonymous"
	}
	return domain.LifecycleHooks{
		OnRunStart: func(ctx context.Context, e *domain.RunEvent) {
			m.InFlight.Inc()
		},
		OnStep: func(ctx context.Context, e *domain.StepEvent) {
			m.Steps.WithLabelValues(machine).Inc()
		},
		OnRunStop: func(ctx context.Context, e *domain.RunEvent) {
			m.InFlight.Dec()
			m.Runs.WithLabelValues(machine, string(e.Status)).Inc()
			m.Duration.WithLabelValues(machine).Observe(e.Took.Seconds())
		},
	}
}

// CacheHit records a result served from a ResultStore.
func (m *Metrics) CacheHit() { m.Cache.WithLabelValues("hit").Inc() }

// CacheMiss records a result that had to be computed.
func (m *Metrics) CacheMiss() { m.Cache.WithLabelValues("miss").Inc() }
