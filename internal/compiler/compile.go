package compiler

import (
	"fmt"
	"sort"

	"github.com/aretw0/tmsim/pkg/domain"
)

// DirectionPolicy decides when an invalid direction token is reported.
type DirectionPolicy int

const (
	// ValidateDirections rejects invalid directions while building the table.
	ValidateDirections DirectionPolicy = iota
	// DeferDirections keeps them in the table; the run fails when one executes.
	DeferDirections
)

type config struct {
	start  string
	blank  domain.Symbol
	policy DirectionPolicy
}

// Option configures Compile.
type Option func(*config)

// WithStart sets the entry state id (default "1").
func WithStart(id string) Option {
	return func(c *config) {
		if id != "" {
			c.start = id
		}
	}
}

// WithBlank sets the blank symbol recorded in the table.
func WithBlank(sym domain.Symbol) Option {
	return func(c *config) {
		if sym != 0 {
			c.blank = sym
		}
	}
}

// WithDirectionPolicy selects when invalid directions are reported.
func WithDirectionPolicy(p DirectionPolicy) Option {
	return func(c *config) {
		c.policy = p
	}
}

// Compile builds the instruction table in two passes so that rules may refer
// to states defined further down the listing.
// On error no table is returned.
func Compile(rules []domain.Rule, opts ...Option) (*domain.Table, error) {
	cfg := config{
		start: domain.DefaultStartState,
		blank: domain.DefaultBlank,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if len(rules) == 0 {
		return nil, domain.ErrNoRules
	}

	table := &domain.Table{
		Start:  cfg.start,
		Blank:  cfg.blank,
		States: make(map[string]*domain.State),
	}

	// 1. Intern every state mentioned as source or destination.
	intern := func(id string) {
		if _, ok := table.States[id]; !ok {
			table.States[id] = domain.NewState(id)
		}
	}
	for _, r := range rules {
		intern(r.State)
		intern(r.Next)
	}

	if _, ok := table.States[cfg.start]; !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownStartState, cfg.start)
	}

	// 2. Register transitions and link states.
	next := make(map[string]map[string]struct{})
	for _, r := range rules {
		if cfg.policy == ValidateDirections && !r.Move.Valid() {
			return nil, &domain.InvalidDirectionError{
				State:     r.State,
				Symbol:    r.Read,
				Direction: r.Move,
				Line:      r.Line,
			}
		}

		state := table.States[r.State]
		if _, exists := state.Transitions[r.Read]; exists {
			return nil, &domain.AmbiguousTransitionError{
				State:  r.State,
				Symbol: r.Read,
				Line:   r.Line,
			}
		}
		state.Transitions[r.Read] = domain.Transition{
			Write: r.Write,
			Move:  r.Move,
			Next:  r.Next,
		}

		table.States[r.Next].Reachable = true
		if next[r.State] == nil {
			next[r.State] = make(map[string]struct{})
		}
		next[r.State][r.Next] = struct{}{}
	}

	for id, set := range next {
		ids := make([]string, 0, len(set))
		for n := range set {
			ids = append(ids, n)
		}
		sort.Strings(ids)
		table.States[id].Next = ids
	}

	return table, nil
}
