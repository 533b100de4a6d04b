package runtime

import (
	"context"
	"errors"
	"io"
	"iter"
	"log/slog"
	"time"

	"github.com/aretw0/tmsim/pkg/domain"
	"github.com/aretw0/tmsim/pkg/tape"
)

// Simulator executes an instruction table against one tape at a time.
// The table is only read, so any number of simulators may share it;
// a Simulator itself is not safe for concurrent use.
type Simulator struct {
	table    *domain.Table
	logger   *slog.Logger
	hooks    domain.LifecycleHooks
	limit    int
	tapeOpts []tape.Option

	input  string
	tape   *tape.Tape
	state  string
	status domain.Status
	steps  int
	err    error
}

// NewSimulator creates a simulator for table. Call LoadTape before stepping.
func NewSimulator(table *domain.Table, opts ...Option) *Simulator {
	s := &Simulator{
		table:  table,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LoadTape resets the configuration: a fresh tape holding input, the head on
// its first cell and the start state current.
func (s *Simulator) LoadTape(input string) {
	opts := append([]tape.Option{tape.WithBlank(s.table.Blank)}, s.tapeOpts...)

	s.input = input
	s.tape = tape.New(input, opts...)
	s.state = s.table.Start
	s.status = domain.StatusRunning
	s.steps = 0
	s.err = nil
}

// Step applies at most one transition.
//
// It returns StatusHalted when the current state has no instruction for the
// symbol under the head, and StatusFailed with an error wrapping
// domain.ErrInvalidDirection when the matching transition cannot move the head.
func (s *Simulator) Step() (domain.Status, error) {
	return s.step(context.Background())
}

func (s *Simulator) step(ctx context.Context) (domain.Status, error) {
	if s.status != domain.StatusRunning {
		return s.status, domain.ErrNotRunning
	}

	read := s.tape.Current()
	tr, ok := s.table.Lookup(s.state, read)
	if !ok {
		s.status = domain.StatusHalted
		return s.status, nil
	}

	// A machine that halts right at the limit still halts.
	if s.limit > 0 && s.steps >= s.limit {
		s.status = domain.StatusStepLimit
		return s.status, nil
	}

	s.tape.Replace(tr.Write)
	if err := s.tape.Move(tr.Move); err != nil {
		s.status = domain.StatusFailed
		s.err = &domain.InvalidDirectionError{
			State:     s.state,
			Symbol:    read,
			Direction: tr.Move,
		}
		return s.status, s.err
	}

	from := s.state
	s.state = tr.Next
	s.steps++

	if s.hooks.OnStep != nil {
		s.hooks.OnStep(ctx, &domain.StepEvent{
			EventBase:  domain.EventBase{Timestamp: time.Now(), Type: domain.EventStep},
			Step:       s.steps,
			From:       from,
			Read:       read,
			Transition: tr,
		})
	}

	return s.status, nil
}

// Run returns the trace of the loaded input as a lazy sequence: the START
// record, one record per applied step and one terminal record. The sequence
// is restartable; every iteration reloads the input and replays the run.
func (s *Simulator) Run(ctx context.Context) iter.Seq[domain.Record] {
	return s.records(ctx, true)
}

// records drives one run. Unless every is set only the START and the
// terminal records are rendered.
func (s *Simulator) records(ctx context.Context, every bool) iter.Seq[domain.Record] {
	return func(yield func(domain.Record) bool) {
		if s.tape == nil {
			return
		}
		s.LoadTape(s.input)

		began := time.Now()
		s.logger.Debug("Run Started", "input", s.input, "start", s.state)
		if s.hooks.OnRunStart != nil {
			s.hooks.OnRunStart(ctx, &domain.RunEvent{
				EventBase: domain.EventBase{Timestamp: began, Type: domain.EventRunStart},
				Input:     s.input,
				Status:    s.status,
			})
		}

		if !yield(s.Snapshot(domain.LabelStart, 0)) {
			return
		}

		for {
			attempt := s.steps + 1
			if err := ctx.Err(); err != nil {
				s.status = domain.StatusCanceled
				s.err = err
			} else {
				_, _ = s.step(ctx)
			}

			if s.status.Terminal() {
				rec := s.Snapshot(domain.StepLabel(attempt), attempt)
				s.stop(ctx, began)
				yield(rec)
				return
			}
			if every && !yield(s.Snapshot(domain.StepLabel(attempt), attempt)) {
				return
			}
		}
	}
}

func (s *Simulator) stop(ctx context.Context, began time.Time) {
	took := time.Since(began)
	if s.err != nil && !errors.Is(s.err, context.Canceled) && !errors.Is(s.err, context.DeadlineExceeded) {
		s.logger.Warn("Run Failed", "input", s.input, "state", s.state, "steps", s.steps, "error", s.err)
	} else {
		s.logger.Debug("Run Stopped", "input", s.input, "status", s.status, "steps", s.steps, "took", took)
	}

	if s.hooks.OnRunStop != nil {
		s.hooks.OnRunStop(ctx, &domain.RunEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventRunStop},
			Input:     s.input,
			Status:    s.status,
			Steps:     s.steps,
			Err:       s.err,
			Took:      took,
		})
	}
}

// Trace runs the loaded input to completion and collects every record.
func (s *Simulator) Trace(ctx context.Context) *domain.Result {
	return s.collect(s.records(ctx, true))
}

// Outcome runs the loaded input to completion keeping only the START and the
// terminal records. Intermediate tapes are never rendered, so memory stays
// proportional to the tape rather than to the number of steps.
func (s *Simulator) Outcome(ctx context.Context) *domain.Result {
	return s.collect(s.records(ctx, false))
}

func (s *Simulator) collect(seq iter.Seq[domain.Record]) *domain.Result {
	res := &domain.Result{Input: s.input}
	for rec := range seq {
		res.Records = append(res.Records, rec)
	}
	if len(res.Records) > 0 {
		res.Final = res.Records[len(res.Records)-1]
	}
	res.Status = s.status
	res.Steps = s.steps
	res.Err = s.err
	if s.err != nil {
		res.Error = s.err.Error()
	}
	return res
}

// Snapshot captures the current configuration as a Record.
func (s *Simulator) Snapshot(label string, step int) domain.Record {
	rec := domain.Record{
		Label:   label,
		Step:    step,
		State:   s.state,
		Tape:    s.tape.String(),
		Pointer: s.tape.Pointer(),
		Caret:   s.tape.Caret(),
		Status:  s.status,
	}
	if s.err != nil {
		rec.Error = s.err.Error()
	}
	return rec
}

// Status returns the abstract state of the current run.
func (s *Simulator) Status() domain.Status { return s.status }

// State returns the id of the current state.
func (s *Simulator) State() string { return s.state }

// Steps returns the number of transitions applied so far.
func (s *Simulator) Steps() int { return s.steps }

// Err returns the error that failed or canceled the run, if any.
func (s *Simulator) Err() error { return s.err }

// Tape exposes the loaded tape for inspection.
func (s *Simulator) Tape() *tape.Tape { return s.tape }
