package domain

import "sort"

// State is a node of the transition graph.
type State struct {
	ID string `json:"id"`

	// Transitions holds at most one Transition per read Symbol.
	Transitions map[Symbol]Transition `json:"transitions"`

	// Next lists the ids of states this state can move to, sorted.
	Next []string `json:"next,omitempty"`

	// Reachable is true when at least one rule names this state as its destination.
	Reachable bool `json:"reachable"`
}

// NewState creates an empty state. A state without transitions halts.
func NewState(id string) *State {
	return &State{
		ID:          id,
		Transitions: make(map[Symbol]Transition),
	}
}

// Halting reports whether the state has no instructions at all.
func (s *State) Halting() bool {
	return len(s.Transitions) == 0
}

// Symbols returns the read symbols the state has instructions for, sorted.
func (s *State) Symbols() []Symbol {
	syms := make([]Symbol, 0, len(s.Transitions))
	for sym := range s.Transitions {
		syms = append(syms, sym)
	}
	sort.Slice(syms, func(i, j int) bool { return syms[i] < syms[j] })
	return syms
}

// Table is the compiled instruction table.
// It exclusively owns its States; states refer to each other by id only.
// A Table is never mutated after construction and may be shared freely
// between concurrent runs.
type Table struct {
	Start  string            `json:"start"`
	Blank  Symbol            `json:"blank"`
	States map[string]*State `json:"states"`
}

// State looks up a state by id.
func (t *Table) State(id string) (*State, bool) {
	s, ok := t.States[id]
	return s, ok
}

// Lookup returns the transition for (stateID, sym), if any.
func (t *Table) Lookup(stateID string, sym Symbol) (Transition, bool) {
	s, ok := t.States[stateID]
	if !ok {
		return Transition{}, false
	}
	tr, ok := s.Transitions[sym]
	return tr, ok
}

// IDs returns every state id in deterministic order.
func (t *Table) IDs() []string {
	ids := make([]string, 0, len(t.States))
	for id := range t.States {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of transitions in the table.
func (t *Table) Len() int {
	n := 0
	for _, s := range t.States {
		n += len(s.Transitions)
	}
	return n
}
