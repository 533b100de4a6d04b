package dsl

import (
	"fmt"

	"github.com/aretw0/tmsim"
	"github.com/aretw0/tmsim/pkg/adapters/memory"
	"github.com/aretw0/tmsim/pkg/domain"
)

// Shorthands for head movements.
const (
	L = domain.DirectionLeft
	R = domain.DirectionRight
)

// Builder manages the machine construction.
type Builder struct {
	machine domain.Machine
	order   []string
	states  map[string]*StateBuilder
}

// New creates a new machine builder.
func New(id string) *Builder {
	return &Builder{
		machine: domain.Machine{ID: id},
		states:  make(map[string]*StateBuilder),
	}
}

// State returns the builder of a state, creating it on first use.
// The first state created is the start state unless Start says otherwise.
func (b *Builder) State(id string) *StateBuilder {
	if sb, ok := b.states[id]; ok {
		return sb
	}
	sb := &StateBuilder{id: id, builder: b}
	b.states[id] = sb
	b.order = append(b.order, id)
	return sb
}

// Start sets the entry state.
func (b *Builder) Start(id string) *Builder {
	b.machine.Start = id
	return b
}

// Blank sets the blank symbol.
func (b *Builder) Blank(sym domain.Symbol) *Builder {
	b.machine.Blank = sym
	return b
}

// Describe sets the human readable description.
func (b *Builder) Describe(text string) *Builder {
	b.machine.Description = text
	return b
}

// Tapes appends sample inputs stored with the machine.
func (b *Builder) Tapes(tapes ...string) *Builder {
	b.machine.Tapes = append(b.machine.Tapes, tapes...)
	return b
}

// Build returns the machine definition. Rules come out grouped by state in
// creation order.
func (b *Builder) Build() (*domain.Machine, error) {
	m := b.machine
	m.Rules = nil
	for _, id := range b.order {
		m.Rules = append(m.Rules, b.states[id].rules...)
	}
	if len(m.Rules) == 0 {
		return nil, fmt.Errorf("build %s: %w", m.ID, domain.ErrNoRules)
	}
	if m.Start == "" {
		m.Start = b.order[0]
	}
	m.Tapes = append([]string(nil), m.Tapes...)
	return &m, nil
}

// Compile builds the machine and compiles it into a Program.
func (b *Builder) Compile(opts ...tmsim.Option) (*tmsim.Program, error) {
	m, err := b.Build()
	if err != nil {
		return nil, err
	}
	return tmsim.Compile(m, opts...)
}

// Loader builds the machine into a memory loader holding just this machine.
func (b *Builder) Loader() (*memory.Loader, error) {
	m, err := b.Build()
	if err != nil {
		return nil, err
	}
	loader, err := memory.NewFromMachines(*m)
	if err != nil {
		return nil, fmt.Errorf("failed to build memory loader: %w", err)
	}
	return loader, nil
}
