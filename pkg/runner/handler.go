package runner

import (
	"context"

	"github.com/aretw0/tmsim/pkg/domain"
)

// Handler defines the strategy for presenting finished runs.
// The runner calls Handle once per tape, in input order, from one goroutine.
type Handler interface {
	Handle(ctx context.Context, res *domain.Result) error
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(ctx context.Context, res *domain.Result) error

// Handle calls f(ctx, res).
func (f HandlerFunc) Handle(ctx context.Context, res *domain.Result) error {
	return f(ctx, res)
}

// Discard is a Handler that drops every result.
var Discard Handler = HandlerFunc(func(context.Context, *domain.Result) error { return nil })
