package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/tmsim/pkg/domain"
)

// LoggingHooks logs run boundaries at Info and every step at Debug.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnRunStart: func(ctx context.Context, e *domain.RunEvent) {
			logger.InfoContext(ctx, "run_start", "input", e.Input)
		},
		OnStep: func(ctx context.Context, e *domain.StepEvent) {
			logger.DebugContext(ctx, "step",
				"step", e.Step,
				"from", e.From,
				"read", e.Read.String(),
				"write", e.Transition.Write.String(),
				"move", string(e.Transition.Move),
				"next", e.Transition.Next,
			)
		},
		OnRunStop: func(ctx context.Context, e *domain.RunEvent) {
			attrs := []any{"input", e.Input, "status", e.Status, "steps", e.Steps, "took", e.Took}
			if e.Err != nil {
				attrs = append(attrs, "error", e.Err)
			}
			logger.InfoContext(ctx, "run_stop", attrs...)
		},
	}
}

// ChainHooks combines hook sets; callbacks fire in argument order.
func ChainHooks(sets ...domain.LifecycleHooks) domain.LifecycleHooks {
	var starts, stops []func(context.Context, *domain.RunEvent)
	var steps []func(context.Context, *domain.StepEvent)
	for _, h := range sets {
		if h.OnRunStart != nil {
			starts = append(starts, h.OnRunStart)
		}
		if h.OnStep != nil {
			steps = append(steps, h.OnStep)
		}
		if h.OnRunStop != nil {
			stops = append(stops, h.OnRunStop)
		}
	}

	var out domain.LifecycleHooks
	if len(starts) > 0 {
		out.OnRunStart = func(ctx context.Context, e *domain.RunEvent) {
			for _, f := range starts {
				f(ctx, e)
			}
		}
	}
	if len(steps) > 0 {
		out.OnStep = func(ctx context.Context, e *domain.StepEvent) {
			for _, f := range steps {
				f(ctx, e)
			}
		}
	}
	if len(stops) > 0 {
		out.OnRunStop = func(ctx context.Context, e *domain.RunEvent) {
			for _, f := range stops {
				f(ctx, e)
			}
		}
	}
	return out
}
