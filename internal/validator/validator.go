package validator

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/tmsim/pkg/domain"
)

// ErrWarnings is returned by Validate in strict mode when the report is not clean.
var ErrWarnings = errors.New("machine has warnings")

// Report describes the static shape of an instruction table.
type Report struct {
	Start       string          `json:"start"`
	Blank       domain.Symbol   `json:"blank"`
	States      []string        `json:"states"`
	Reachable   []string        `json:"reachable"`
	Unreachable []string        `json:"unreachable,omitempty"`
	Halting     []string        `json:"halting"`
	Alphabet    []domain.Symbol `json:"alphabet"`
	Transitions int             `json:"transitions"`

	// InvalidDirections is only populated for tables compiled with deferred
	// direction checks.
	InvalidDirections []*domain.InvalidDirectionError `json:"-"`
}

// Analyze inspects table without running it. It never rejects a table:
// anything suspicious ends up in Warnings.
func Analyze(table *domain.Table) *Report {
	r := &Report{
		Start:       table.Start,
		Blank:       table.Blank,
		States:      table.IDs(),
		Transitions: table.Len(),
	}

	visited := reach(table)
	alphabet := map[domain.Symbol]bool{table.Blank: true}

	for _, id := range r.States {
		state := table.States[id]
		if visited[id] {
			r.Reachable = append(r.Reachable, id)
		} else {
			r.Unreachable = append(r.Unreachable, id)
		}
		if state.Halting() {
			r.Halting = append(r.Halting, id)
		}
		for _, sym := range state.Symbols() {
			tr := state.Transitions[sym]
			alphabet[sym] = true
			alphabet[tr.Write] = true
			if !tr.Move.Valid() {
				r.InvalidDirections = append(r.InvalidDirections, &domain.InvalidDirectionError{
					State:     id,
					Symbol:    sym,
					Direction: tr.Move,
				})
			}
		}
	}

	for sym := range alphabet {
		r.Alphabet = append(r.Alphabet, sym)
	}
	sort.Slice(r.Alphabet, func(i, j int) bool { return r.Alphabet[i] < r.Alphabet[j] })

	return r
}

// reach walks the state graph breadth-first from the start state.
func reach(table *domain.Table) map[string]bool {
	visited := make(map[string]bool)
	queue := []string{table.Start}

	for len(queue) > 0 {
		currentID := queue[0]
		queue = queue[1:]

		if visited[currentID] {
			continue
		}
		visited[currentID] = true

		state, ok := table.State(currentID)
		if !ok {
			continue
		}
		for _, next := range state.Next {
			if !visited[next] {
				queue = append(queue, next)
			}
		}
	}
	return visited
}

// Warnings lists the findings worth showing to the author of the machine.
func (r *Report) Warnings() []string {
	var out []string
	for _, id := range r.Unreachable {
		out = append(out, fmt.Sprintf("state %q is unreachable from %q", id, r.Start))
	}
	for _, inv := range r.InvalidDirections {
		out = append(out, inv.Error())
	}
	if len(r.Halting) == 0 {
		out = append(out, "no state is free of instructions; the machine only halts on an unmatched symbol")
	}
	return out
}

// Validate analyzes table and, when strict is set, fails on any warning.
func Validate(table *domain.Table, strict bool) (*Report, error) {
	r := Analyze(table)
	if !strict {
		return r, nil
	}
	if warnings := r.Warnings(); len(warnings) > 0 {
		return r, fmt.Errorf("%w:\n- %s", ErrWarnings, strings.Join(warnings, "\n- "))
	}
	return r, nil
}
