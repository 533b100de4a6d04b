package dsl

import "github.com/aretw0/tmsim/pkg/domain"

// StateBuilder provides a fluent API for configuring a state.
type StateBuilder struct {
	id      string
	rules   []domain.Rule
	builder *Builder
}

// On adds the rule: reading read, write write, move, then enter next.
// A second rule for the same read symbol is reported when the machine is compiled.
func (s *StateBuilder) On(read, write domain.Symbol, move domain.Direction, next string) *StateBuilder {
	s.rules = append(s.rules, domain.Rule{
		State: s.id,
		Read:  read,
		Write: write,
		Move:  move,
		Next:  next,
	})
	return s
}

// Keep adds a rule that leaves the symbol unchanged.
func (s *StateBuilder) Keep(read domain.Symbol, move domain.Direction, next string) *StateBuilder {
	return s.On(read, read, move, next)
}

// Halt documents a state with no instructions. Entering it stops the machine.
func (s *StateBuilder) Halt() *StateBuilder {
	s.rules = nil
	return s
}

// State switches to another state of the same machine.
func (s *StateBuilder) State(id string) *StateBuilder {
	return s.builder.State(id)
}

// Rules returns the rules added so far.
func (s *StateBuilder) Rules() []domain.Rule {
	return append([]domain.Rule(nil), s.rules...)
}
