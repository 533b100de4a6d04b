package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/tmsim/internal/validator"
	"github.com/aretw0/tmsim/pkg/domain"
)

// DescribeMarkdown documents a compiled machine: its summary, the
// instruction table and the analyzer warnings.
func DescribeMarkdown(machine domain.Machine, table *domain.Table, report *validator.Report) string {
	var sb strings.Builder

	title := machine.ID
	if title == "" {
		title = "machine"
	}
	fmt.Fprintf(&sb, "# %s\n\n", title)
	if machine.Description != "" {
		fmt.Fprintf(&sb, "%s\n\n", strings.TrimSpace(machine.Description))
	}

	fmt.Fprintf(&sb, "- **Start**: `%s`\n", table.Start)
	fmt.Fprintf(&sb, "- **Blank**: `%c`\n", table.Blank)
	fmt.Fprintf(&sb, "- **States**: %d (%d reachable)\n", len(report.States), len(report.Reachable))
	fmt.Fprintf(&sb, "- **Transitions**: %d\n", report.Transitions)
	fmt.Fprintf(&sb, "- **Alphabet**: %s\n", codeList(symbols(report.Alphabet)))
	if len(report.Halting) > 0 {
		fmt.Fprintf(&sb, "- **Halting states**: %s\n", codeList(report.Halting))
	}

	sb.WriteString("\n## Instructions\n\n")
	sb.WriteString("| State | Read | Write | Move | Next |\n")
	sb.WriteString("|---|---|---|---|---|\n")
	for _, id := range table.IDs() {
		state := table.States[id]
		for _, sym := range state.Symbols() {
			tr := state.Transitions[sym]
			fmt.Fprintf(&sb, "| `%s` | `%c` | `%c` | %s | `%s` |\n", id, sym, tr.Write, tr.Move.Arrow(), tr.Next)
		}
	}

	if warnings := report.Warnings(); len(warnings) > 0 {
		sb.WriteString("\n## Warnings\n\n")
		for _, w := range warnings {
			fmt.Fprintf(&sb, "- %s\n", w)
		}
	}

	if len(machine.Tapes) > 0 {
		sb.WriteString("\n## Tapes\n\n")
		for _, tp := range machine.Tapes {
			if tp == "" {
				sb.WriteString("- *(empty)*\n")
				continue
			}
			fmt.Fprintf(&sb, "- `%s`\n", tp)
		}
	}

	return sb.String()
}

func symbols(syms []domain.Symbol) []string {
	out := make([]string, len(syms))
	for i, s := range syms {
		out[i] = s.String()
	}
	return out
}

func codeList(items []string) string {
	quoted := make([]string, len(items))
	for i, it := range items {
		quoted[i] = "`" + it + "`"
	}
	return strings.Join(quoted, ", ")
}
