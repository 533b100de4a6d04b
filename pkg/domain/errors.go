package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrAmbiguousTransition is returned when a state receives two rules for the same read symbol.
	ErrAmbiguousTransition = errors.New("ambiguous transition")

	// ErrInvalidDirection is returned when a rule moves the head anywhere but left or right.
	ErrInvalidDirection = errors.New("invalid direction")

	// ErrInvalidSymbol is returned when a tape symbol is not exactly one character.
	ErrInvalidSymbol = errors.New("symbol must be exactly one character")

	// ErrUnknownStartState is returned when no rule mentions the configured start state.
	ErrUnknownStartState = errors.New("unknown start state")

	// ErrNoRules is returned when an instruction listing is empty.
	ErrNoRules = errors.New("no instructions")

	// ErrNotRunning is returned when Step is called on a stopped or unloaded simulator.
	ErrNotRunning = errors.New("simulator is not running")

	// ErrMachineNotFound is returned when a loader has no machine with the given id.
	ErrMachineNotFound = errors.New("machine not found")

	// ErrResultNotFound is returned when a result store has no entry for the given key.
	ErrResultNotFound = errors.New("result not found")
)

// AmbiguousTransitionError reports a second rule for an existing (state, symbol) pair.
type AmbiguousTransitionError struct {
	State  string
	Symbol Symbol
	Line   int
}

func (e *AmbiguousTransitionError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %q tape input already exists in state %q", e.Line, e.Symbol, e.State)
	}
	return fmt.Sprintf("%q tape input already exists in state %q", e.Symbol, e.State)
}

func (e *AmbiguousTransitionError) Unwrap() error {
	return ErrAmbiguousTransition
}

// InvalidDirectionError reports a transition whose direction is neither left nor right.
type InvalidDirectionError struct {
	State     string
	Symbol    Symbol
	Direction Direction
	Line      int
}

func (e *InvalidDirectionError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %q is not a valid direction (state %q, symbol %q)", e.Line, string(e.Direction), e.State, e.Symbol)
	}
	return fmt.Sprintf("%q is not a valid direction (state %q, symbol %q)", string(e.Direction), e.State, e.Symbol)
}

func (e *InvalidDirectionError) Unwrap() error {
	return ErrInvalidDirection
}
