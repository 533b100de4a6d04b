package memory

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/aretw0/tmsim/internal/compiler"
	"github.com/aretw0/tmsim/pkg/domain"
)

// Loader implements ports.MachineLoader using an in-memory map.
type Loader struct {
	machines map[string]*domain.Machine
	listings map[string]string
}

// NewLoader creates a Loader from instruction listings keyed by machine id.
// Listings are parsed on every GetMachine call.
func NewLoader(data map[string]string) *Loader {
	listings := make(map[string]string, len(data))
	for k, v := range data {
		listings[k] = v
	}
	return &Loader{
		machines: make(map[string]*domain.Machine),
		listings: listings,
	}
}

// NewFromMachines creates a Loader from domain objects.
func NewFromMachines(machines ...domain.Machine) (*Loader, error) {
	l := &Loader{
		machines: make(map[string]*domain.Machine, len(machines)),
		listings: make(map[string]string),
	}
	for _, m := range machines {
		if m.ID == "" {
			return nil, fmt.Errorf("machine missing ID")
		}
		if _, dup := l.machines[m.ID]; dup {
			return nil, fmt.Errorf("duplicate machine %s", m.ID)
		}
		l.machines[m.ID] = clone(&m)
	}
	return l, nil
}

// GetMachine returns a copy of the machine with the given id.
func (l *Loader) GetMachine(ctx context.Context, id string) (*domain.Machine, error) {
	if m, ok := l.machines[id]; ok {
		return clone(m), nil
	}

	listing, ok := l.listings[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrMachineNotFound, id)
	}
	rules, err := compiler.NewParser().ParseRules(strings.NewReader(listing))
	if err != nil {
		return nil, fmt.Errorf("machine %s: %w", id, err)
	}
	return &domain.Machine{ID: id, Rules: rules}, nil
}

// ListMachines returns all available machine IDs.
func (l *Loader) ListMachines(ctx context.Context) ([]string, error) {
	keys := make([]string, 0, len(l.machines)+len(l.listings))
	for k := range l.machines {
		keys = append(keys, k)
	}
	for k := range l.listings {
		if _, ok := l.machines[k]; !ok {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys) // Deterministic order
	return keys, nil
}

func clone(m *domain.Machine) *domain.Machine {
	c := *m
	c.Rules = slices.Clone(m.Rules)
	c.Tapes = slices.Clone(m.Tapes)
	return &c
}
