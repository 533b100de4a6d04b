package tui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// PrintBanner writes the tmsim banner to w. Nothing is written when w is not
// a terminal so that piped traces stay clean.
func PrintBanner(w io.Writer, version string) {
	if !IsTerminal(w) {
		return
	}
	p := termenv.ColorProfile()
	lines := []struct {
		text  string
		color string
	}{
		{"  _                  _", "#34d399"},
		{" | |_ _ __ ___  ___(_)_ __ ___", "#2dd4bf"},
		{" | __| '_ ` _ \\/ __| | '_ ` _ \\", "#22d3ee"},
		{" | |_| | | | | \\__ \\ | | | | | |", "#38bdf8"},
		{"  \\__|_| |_| |_|___/_|_| |_| |_|", "#60a5fa"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w, termenv.String("  v"+strings.TrimSpace(version)).Faint())
	fmt.Fprintln(w)
}
