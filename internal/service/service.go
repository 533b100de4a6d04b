// Package service resolves machine requests and runs them. It backs the
// HTTP and MCP adapters so both expose the same semantics.
package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/aretw0/tmsim"
	"github.com/aretw0/tmsim/internal/presentation/graph"
	"github.com/aretw0/tmsim/internal/validator"
	"github.com/aretw0/tmsim/pkg/domain"
	"github.com/aretw0/tmsim/pkg/observability"
	"github.com/aretw0/tmsim/pkg/ports"
	"github.com/aretw0/tmsim/pkg/runner"
)

// DefaultMaxSteps caps runs served to remote callers.
const DefaultMaxSteps = 100_000

var (
	// ErrBadRequest is returned when a request names no machine or carries malformed options.
	ErrBadRequest = errors.New("bad request")

	// ErrInvalidMachine wraps every error raised while compiling a machine.
	ErrInvalidMachine = errors.New("invalid machine")
)

// MachineRequest selects a machine either by library id or by inline rules.
type MachineRequest struct {
	ID              string `json:"id,omitempty"`
	Rules           string `json:"rules,omitempty"`
	Start           string `json:"start,omitempty"`
	Blank           string `json:"blank,omitempty"`
	MaxSteps        int    `json:"max_steps,omitempty"`
	DeferDirections bool   `json:"defer_directions,omitempty"`
}

// RunRequest runs a machine over Tapes, or over the machine's own tapes when empty.
type RunRequest struct {
	MachineRequest
	Tapes []string `json:"tapes,omitempty"`

	// Trace keeps every record. Otherwise results hold the START and
	// terminal records only.
	Trace bool `json:"trace,omitempty"`
}

// ValidateResponse is the outcome of a static analysis.
type ValidateResponse struct {
	Machine     string            `json:"machine,omitempty"`
	Fingerprint string            `json:"fingerprint"`
	Valid       bool              `json:"valid"`
	Warnings    []string          `json:"warnings,omitempty"`
	Report      *validator.Report `json:"report"`
}

// Service compiles and runs machines for remote adapters.
type Service struct {
	Loader      ports.MachineLoader
	Store       ports.ResultStore
	Locker      ports.DistributedLocker
	Metrics     *observability.Metrics
	Logger      *slog.Logger
	MaxSteps    int
	Parallelism int
}

// Option defines a functional option for configuring the Service.
type Option func(*Service)

// WithLoader resolves machine ids.
func WithLoader(loader ports.MachineLoader) Option {
	return func(s *Service) { s.Loader = loader }
}

// WithStore memoises run results.
func WithStore(store ports.ResultStore) Option {
	return func(s *Service) { s.Store = store }
}

// WithLocker guards result keys across replicas.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(s *Service) { s.Locker = locker }
}

// WithMetrics records runs, steps and cache lookups.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Service) { s.Metrics = m }
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.Logger = logger }
}

// WithMaxSteps caps the step budget of every run. Zero disables the cap.
func WithMaxSteps(n int) Option {
	return func(s *Service) { s.MaxSteps = n }
}

// WithParallelism sets how many tapes of one request run at once.
func WithParallelism(n int) Option {
	return func(s *Service) { s.Parallelism = n }
}

// New creates a Service with DefaultMaxSteps.
func New(opts ...Option) *Service {
	s := &Service{MaxSteps: DefaultMaxSteps, Parallelism: 1}
	for _, opt := range opts {
		opt(s)
	}
	if s.Logger == nil {
		s.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return s
}

// Resolve loads (or parses) and compiles the requested machine.
func (s *Service) Resolve(ctx context.Context, req MachineRequest) (*tmsim.Program, error) {
	machine, err := s.machine(ctx, req)
	if err != nil {
		return nil, err
	}

	opts := []tmsim.Option{
		tmsim.WithLogger(s.Logger),
		tmsim.WithStepLimit(s.limit(req.MaxSteps)),
	}
	if req.Start != "" {
		opts = append(opts, tmsim.WithStart(req.Start))
	}
	if req.Blank != "" {
		sym, err := domain.ParseSymbol(req.Blank)
		if err != nil {
			return nil, fmt.Errorf("%w: blank: %w", ErrBadRequest, err)
		}
		opts = append(opts, tmsim.WithBlank(sym))
	}
	if req.DeferDirections {
		opts = append(opts, tmsim.WithDeferredDirections())
	}
	if s.Metrics != nil {
		opts = append(opts, tmsim.WithLifecycleHooks(s.Metrics.Hooks(machine.ID)))
	}

	prog, err := tmsim.Compile(machine, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidMachine, err)
	}
	return prog, nil
}

func (s *Service) machine(ctx context.Context, req MachineRequest) (*domain.Machine, error) {
	switch {
	case req.Rules != "" && req.ID != "":
		return nil, fmt.Errorf("%w: give either id or rules, not both", ErrBadRequest)
	case req.Rules != "":
		rules, err := tmsim.ParseRules(strings.NewReader(req.Rules))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidMachine, err)
		}
		return &domain.Machine{Rules: rules}, nil
	case req.ID != "":
		return s.GetMachine(ctx, req.ID)
	default:
		return nil, fmt.Errorf("%w: a machine id or rules are required", ErrBadRequest)
	}
}

func (s *Service) limit(requested int) int {
	if s.MaxSteps <= 0 {
		return requested
	}
	if requested <= 0 || requested > s.MaxSteps {
		return s.MaxSteps
	}
	return requested
}

// GetMachine returns a library machine.
func (s *Service) GetMachine(ctx context.Context, id string) (*domain.Machine, error) {
	if s.Loader == nil {
		return nil, fmt.Errorf("%w: %s (no machine library configured)", domain.ErrMachineNotFound, id)
	}
	return s.Loader.GetMachine(ctx, id)
}

// ListMachines returns the ids of every library machine.
func (s *Service) ListMachines(ctx context.Context) ([]string, error) {
	if s.Loader == nil {
		return []string{}, nil
	}
	return s.Loader.ListMachines(ctx)
}

// Run executes the machine over the requested tapes.
func (s *Service) Run(ctx context.Context, req RunRequest) ([]*domain.Result, error) {
	prog, err := s.Resolve(ctx, req.MachineRequest)
	if err != nil {
		return nil, err
	}

	tapes := req.Tapes
	if len(tapes) == 0 {
		tapes = prog.Machine().Tapes
	}
	if len(tapes) == 0 {
		return nil, fmt.Errorf("%w: no tapes to run", ErrBadRequest)
	}

	opts := []runner.Option{
		runner.WithLogger(s.Logger),
		runner.WithParallelism(s.Parallelism),
		runner.WithFullTrace(req.Trace),
	}
	if s.Store != nil {
		opts = append(opts, runner.WithStore(s.Store))
		if s.Locker != nil {
			opts = append(opts, runner.WithLocker(s.Locker, runner.DefaultLockTTL))
		}
	}
	if s.Metrics != nil {
		opts = append(opts, runner.WithMetrics(s.Metrics))
	}

	start := time.Now()
	results, err := runner.New(opts...).Run(ctx, prog, tapes)
	s.Logger.Debug("request served", "machine", prog.ID(), "tapes", len(tapes), "took", time.Since(start))
	return results, err
}

// Validate analyzes the machine. Strict analysis reports warnings as invalid.
func (s *Service) Validate(ctx context.Context, req MachineRequest, strict bool) (*ValidateResponse, error) {
	prog, err := s.Resolve(ctx, req)
	if err != nil {
		return nil, err
	}

	report, verr := validator.Validate(prog.Table(), strict)
	return &ValidateResponse{
		Machine:     prog.ID(),
		Fingerprint: prog.Fingerprint(),
		Valid:       verr == nil,
		Warnings:    report.Warnings(),
		Report:      report,
	}, nil
}

// Graph renders the machine as a Mermaid flowchart. When input is non-nil
// the machine is run on it first and the path taken is highlighted.
func (s *Service) Graph(ctx context.Context, req MachineRequest, input *string) (string, error) {
	prog, err := s.Resolve(ctx, req)
	if err != nil {
		return "", err
	}

	var overlay *graph.GraphOverlay
	if input != nil {
		overlay = graph.OverlayFromTrace(prog.Trace(ctx, *input))
	}
	return graph.GenerateMermaid(prog.Table(), overlay), nil
}
