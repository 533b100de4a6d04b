package graph

import (
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/aretw0/tmsim/pkg/domain"
)

// GraphOverlay contains run data to visualize on the graph.
type GraphOverlay struct {
	VisitedStates []string
	CurrentState  string
}

// OverlayFromResult marks every state a run went through and the state it
// stopped in.
func OverlayFromResult(res *domain.Result) *GraphOverlay {
	if res == nil {
		return nil
	}
	o := OverlayFromTrace(slices.Values(res.Records))
	o.CurrentState = res.Final.State
	return o
}

// OverlayFromTrace consumes a lazy trace and keeps only the states it went
// through, each once, in order of first visit.
func OverlayFromTrace(trace iter.Seq[domain.Record]) *GraphOverlay {
	o := &GraphOverlay{}
	seen := make(map[string]bool)
	for rec := range trace {
		if !seen[rec.State] {
			seen[rec.State] = true
			o.VisitedStates = append(o.VisitedStates, rec.State)
		}
		o.CurrentState = rec.State
	}
	return o
}

// GenerateMermaid produces a Mermaid flowchart of the instruction table.
// It applies semantic styling:
// - Start: ((Circle))
// - Halting (no instructions): (((Double circle)))
// - Default: [Rectangle]
// Edges sharing a source and destination are merged into one label.
func GenerateMermaid(table *domain.Table, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	for _, id := range table.IDs() {
		state := table.States[id]
		safeID := sanitizeMermaidID(id)

		opener, closer := "[", "]"
		switch {
		case id == table.Start:
			opener, closer = "((", "))"
		case state.Halting():
			opener, closer = "(((", ")))"
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", safeID, opener, escapeLabel(id), closer)
	}

	for _, id := range table.IDs() {
		state := table.States[id]

		// Group labels per destination so parallel edges collapse.
		labels := make(map[string][]string)
		var order []string
		for _, sym := range state.Symbols() {
			tr := state.Transitions[sym]
			if _, seen := labels[tr.Next]; !seen {
				order = append(order, tr.Next)
			}
			labels[tr.Next] = append(labels[tr.Next], edgeLabel(sym, tr))
		}

		for _, next := range order {
			arrow := "-->"
			if !allValid(state, next) {
				arrow = "-.->"
			}
			fmt.Fprintf(&sb, "    %s %s|\"%s\"| %s\n",
				sanitizeMermaidID(id), arrow, strings.Join(labels[next], "<br/>"), sanitizeMermaidID(next))
		}
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for contrast on both light and dark themes.
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		visitedSet := make(map[string]bool)
		for _, id := range overlay.VisitedStates {
			safeID := sanitizeMermaidID(id)
			if !visitedSet[safeID] && safeID != "" && id != overlay.CurrentState {
				visitedSet[safeID] = true
				fmt.Fprintf(&sb, "    class %s visited;\n", safeID)
			}
		}

		if overlay.CurrentState != "" {
			fmt.Fprintf(&sb, "    class %s current;\n", sanitizeMermaidID(overlay.CurrentState))
		}
	}

	return sb.String()
}

func edgeLabel(read domain.Symbol, tr domain.Transition) string {
	return escapeLabel(fmt.Sprintf("%c/%c,%s", read, tr.Write, tr.Move.Arrow()))
}

func allValid(state *domain.State, next string) bool {
	for _, tr := range state.Transitions {
		if tr.Next == next && !tr.Move.Valid() {
			return false
		}
	}
	return true
}

func escapeLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "#quot;")
}

// sanitizeMermaidID maps a state id onto the characters Mermaid accepts as a
// node id. The "s_" prefix keeps numeric ids and keywords like "end" valid.
func sanitizeMermaidID(id string) string {
	var sb strings.Builder
	sb.WriteString("s_")
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			sb.WriteRune(r)
		default:
			sb.WriteByte('_')
		}
	}
	return sb.String()
}
