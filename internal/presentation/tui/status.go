package tui

import (
	"github.com/aretw0/tmsim/pkg/domain"
	"github.com/muesli/termenv"
)

var statusColors = map[domain.Status]string{
	domain.StatusRunning:   "#60a5fa",
	domain.StatusHalted:    "#34d399",
	domain.StatusFailed:    "#f87171",
	domain.StatusStepLimit: "#fbbf24",
	domain.StatusCanceled:  "#a1a1aa",
}

// Status renders a run status, coloured when color is set.
func Status(status domain.Status, color bool) string {
	if !color {
		return string(status)
	}
	hex, ok := statusColors[status]
	if !ok {
		return string(status)
	}
	p := termenv.ColorProfile()
	return termenv.String(string(status)).Foreground(p.Color(hex)).Bold().String()
}
