package runner

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aretw0/tmsim/internal/presentation/tui"
	"github.com/aretw0/tmsim/pkg/domain"
)

// labelWidth is the column width of record labels.
const labelWidth = 10

// TextHandler prints each run as a tape listing with a caret under the head.
type TextHandler struct {
	Writer  io.Writer
	Verbose bool
	Color   bool

	count int
}

// TextHandlerOption defines configuration for TextHandler.
type TextHandlerOption func(*TextHandler)

// WithVerbose prints every record instead of only START and the last one.
func WithVerbose(verbose bool) TextHandlerOption {
	return func(h *TextHandler) {
		h.Verbose = verbose
	}
}

// WithColor colours the status line of runs that did not halt.
func WithColor(color bool) TextHandlerOption {
	return func(h *TextHandler) {
		h.Color = color
	}
}

// NewTextHandler creates a handler writing to w (stdout when nil).
func NewTextHandler(w io.Writer, opts ...TextHandlerOption) *TextHandler {
	if w == nil {
		w = os.Stdout
	}
	h := &TextHandler{Writer: w}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *TextHandler) Handle(ctx context.Context, res *domain.Result) error {
	var b strings.Builder
	if h.count > 0 {
		b.WriteString("\n")
	}
	h.count++

	for i, rec := range res.Records {
		last := i == len(res.Records)-1
		if !h.Verbose && i != 0 && !last {
			continue
		}
		writeRecord(&b, rec)
	}

	if res.Status != domain.StatusHalted {
		line := tui.Status(res.Status, h.Color)
		if res.Error != "" {
			line += ": " + res.Error
		}
		fmt.Fprintf(&b, "%-*s  %s\n", labelWidth, "", line)
	}

	_, err := io.WriteString(h.Writer, b.String())
	return err
}

func writeRecord(b *strings.Builder, rec domain.Record) {
	fmt.Fprintf(b, "%-*s: %s\n", labelWidth, rec.Label, rec.Tape)
	fmt.Fprintf(b, "%-*s  %s^\n", labelWidth, "", strings.Repeat(" ", rec.Caret))
}
