package tmsim

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"strings"

	"github.com/aretw0/tmsim/internal/compiler"
	"github.com/aretw0/tmsim/internal/runtime"
	"github.com/aretw0/tmsim/pkg/domain"
	"github.com/aretw0/tmsim/pkg/tape"
)

// Program is a compiled machine ready to run tapes.
// It wraps the internal compiler and runtime and is safe for concurrent use.
type Program struct {
	machine     domain.Machine
	table       *domain.Table
	fingerprint string

	start      string
	blank      domain.Symbol
	deferred   bool
	limit      int
	logger     *slog.Logger
	hooks      domain.LifecycleHooks
	runtimeOps []runtime.Option
}

// Option defines a functional option for configuring a Program.
type Option func(*Program)

// WithStart overrides the entry state of the machine.
func WithStart(id string) Option {
	return func(p *Program) {
		p.start = id
	}
}

// WithBlank overrides the blank symbol of the machine.
func WithBlank(sym domain.Symbol) Option {
	return func(p *Program) {
		p.blank = sym
	}
}

// WithStepLimit stops every run after n applied steps. Zero means unbounded.
func WithStepLimit(n int) Option {
	return func(p *Program) {
		p.limit = n
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Program) {
		p.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks fired by every run.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(p *Program) {
		p.hooks = hooks
	}
}

// WithDeferredDirections accepts rules with an invalid direction. A run fails
// when it executes one instead of the listing being rejected up front.
func WithDeferredDirections() Option {
	return func(p *Program) {
		p.deferred = true
	}
}

// WithTapeMargin sets the initial left margin of every tape.
func WithTapeMargin(n int) Option {
	return func(p *Program) {
		p.runtimeOps = append(p.runtimeOps, runtime.WithTapeOptions(tape.WithMargin(n)))
	}
}

// Compile builds a Program from a loaded machine.
// Options take precedence over the machine's own start and blank.
func Compile(machine *domain.Machine, opts ...Option) (*Program, error) {
	if machine == nil {
		return nil, fmt.Errorf("compile: %w", domain.ErrNoRules)
	}

	p := &Program{machine: *machine}
	for _, opt := range opts {
		opt(p)
	}

	if p.start == "" {
		p.start = machine.StartState()
	}
	if p.blank == 0 {
		p.blank = machine.BlankSymbol()
	}
	if p.logger == nil {
		p.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if machine.ID != "" {
		p.logger = p.logger.With("machine", machine.ID)
	}

	policy := compiler.ValidateDirections
	if p.deferred {
		policy = compiler.DeferDirections
	}

	table, err := compiler.Compile(machine.Rules,
		compiler.WithStart(p.start),
		compiler.WithBlank(p.blank),
		compiler.WithDirectionPolicy(policy),
	)
	if err != nil {
		if machine.ID != "" {
			return nil, fmt.Errorf("compile %s: %w", machine.ID, err)
		}
		return nil, fmt.Errorf("compile: %w", err)
	}

	p.table = table
	p.fingerprint = fingerprint(table, p.deferred)
	return p, nil
}

// CompileText parses an instruction listing and compiles it.
func CompileText(rules string, opts ...Option) (*Program, error) {
	return CompileReader(strings.NewReader(rules), opts...)
}

// CompileReader parses an instruction listing from r and compiles it.
func CompileReader(r io.Reader, opts ...Option) (*Program, error) {
	parsed, err := ParseRules(r)
	if err != nil {
		return nil, err
	}
	return Compile(&domain.Machine{Rules: parsed}, opts...)
}

// ParseRules reads an instruction listing without compiling it.
func ParseRules(r io.Reader) ([]domain.Rule, error) {
	return compiler.NewParser().ParseRules(r)
}

// ParseTapes reads one input tape per line.
func ParseTapes(r io.Reader) ([]string, error) {
	return compiler.NewParser().ParseTapes(r)
}

func (p *Program) simulator() *runtime.Simulator {
	opts := []runtime.Option{
		runtime.WithLogger(p.logger),
		runtime.WithLifecycleHooks(p.hooks),
		runtime.WithStepLimit(p.limit),
	}
	opts = append(opts, p.runtimeOps...)
	return runtime.NewSimulator(p.table, opts...)
}

// Run executes the machine on input until it stops and returns the full trace.
func (p *Program) Run(ctx context.Context, input string) *domain.Result {
	sim := p.simulator()
	sim.LoadTape(input)

	res := sim.Trace(ctx)
	res.Machine = p.machine.ID
	res.Fingerprint = p.fingerprint
	return res
}

// Outcome executes the machine on input and keeps only the START and the
// terminal records. Use it when the intermediate configurations are not
// needed: it does not render them.
func (p *Program) Outcome(ctx context.Context, input string) *domain.Result {
	sim := p.simulator()
	sim.LoadTape(input)

	res := sim.Outcome(ctx)
	res.Machine = p.machine.ID
	res.Fingerprint = p.fingerprint
	return res
}

// Trace executes the machine on input lazily, yielding one record per
// configuration. Breaking out of the loop stops the run.
func (p *Program) Trace(ctx context.Context, input string) iter.Seq[domain.Record] {
	sim := p.simulator()
	sim.LoadTape(input)
	return sim.Run(ctx)
}

// Table returns the compiled instruction table. It must not be modified.
func (p *Program) Table() *domain.Table { return p.table }

// Machine returns the definition the program was compiled from.
func (p *Program) Machine() domain.Machine { return p.machine }

// ID returns the machine id, empty for anonymous listings.
func (p *Program) ID() string { return p.machine.ID }

// StepLimit returns the configured step budget, 0 when unbounded.
func (p *Program) StepLimit() int { return p.limit }

// Deferred reports whether invalid directions are left for the runtime.
func (p *Program) Deferred() bool { return p.deferred }

// Fingerprint identifies the behaviour of the program: two programs with the
// same fingerprint produce the same trace for every input.
func (p *Program) Fingerprint() string { return p.fingerprint }

func fingerprint(table *domain.Table, deferred bool) string {
	h := sha256.New()
	fmt.Fprintf(h, "start=%s\nblank=%c\ndeferred=%t\n", table.Start, table.Blank, deferred)
	for _, id := range table.IDs() {
		state := table.States[id]
		for _, sym := range state.Symbols() {
			tr := state.Transitions[sym]
			fmt.Fprintf(h, "%s\x00%c\x00%c\x00%s\x00%s\n", id, sym, tr.Write, tr.Move, tr.Next)
		}
	}
	return hex.EncodeToString(h.Sum(nil))
}
