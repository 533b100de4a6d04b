package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aretw0/tmsim/internal/presentation/graph"
	"github.com/aretw0/tmsim/internal/presentation/tui"
	"github.com/aretw0/tmsim/internal/validator"
)

// Validate compiles the selected machine and prints its analysis.
// Strict mode turns warnings into an exit code of 1.
func Validate(ctx context.Context, opts RunOptions, strict bool) error {
	opts.defaults()
	machine, err := LoadMachine(ctx, opts)
	if err != nil {
		return err
	}
	prog, err := buildProgram(machine, opts, createLogger(opts.Debug), nil)
	if err != nil {
		return err
	}

	report, verr := validator.Validate(prog.Table(), strict)
	if opts.JSON {
		enc := json.NewEncoder(opts.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return err
		}
	} else {
		name := prog.ID()
		if name == "" {
			name = "machine"
		}
		fmt.Fprintf(opts.Stdout, "%s: %d states, %d transitions, alphabet %q\n",
			name, len(report.States), report.Transitions, symbolString(report))
		for _, w := range report.Warnings() {
			fmt.Fprintf(opts.Stdout, "warning: %s\n", w)
		}
	}

	if verr != nil {
		return &ExitError{Code: ExitLoadError, Msg: verr.Error()}
	}
	return nil
}

func symbolString(r *validator.Report) string {
	out := make([]rune, len(r.Alphabet))
	for i, s := range r.Alphabet {
		out[i] = rune(s)
	}
	return string(out)
}

// Graph prints the selected machine as a Mermaid flowchart. With a trace
// input the machine runs first and the path taken is highlighted.
func Graph(ctx context.Context, opts RunOptions, trace *string) error {
	opts.defaults()
	machine, err := LoadMachine(ctx, opts)
	if err != nil {
		return err
	}
	prog, err := buildProgram(machine, opts, createLogger(opts.Debug), nil)
	if err != nil {
		return err
	}

	var overlay *graph.GraphOverlay
	if trace != nil {
		overlay = graph.OverlayFromTrace(prog.Trace(ctx, *trace))
	}
	_, err = fmt.Fprint(opts.Stdout, graph.GenerateMermaid(prog.Table(), overlay))
	return err
}

// Describe renders a Markdown summary of the selected machine, styled for
// the terminal unless raw is set.
func Describe(ctx context.Context, opts RunOptions, raw bool) error {
	opts.defaults()
	machine, err := LoadMachine(ctx, opts)
	if err != nil {
		return err
	}
	prog, err := buildProgram(machine, opts, createLogger(opts.Debug), nil)
	if err != nil {
		return err
	}

	md := tui.DescribeMarkdown(prog.Machine(), prog.Table(), validator.Analyze(prog.Table()))
	if !raw {
		if md, err = tui.NewRenderer()(md); err != nil {
			return err
		}
	}
	_, err = fmt.Fprint(opts.Stdout, md)
	return err
}
