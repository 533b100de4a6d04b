package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/aretw0/tmsim/internal/logging"
	"github.com/aretw0/tmsim/pkg/domain"
)

// Exit codes of the run and validate commands.
const (
	ExitHalted    = 0
	ExitLoadError = 1
	ExitFailed    = 2
	ExitStepLimit = 3

	// ExitInterrupted follows the shell convention for SIGINT.
	ExitInterrupted = 130
)

// ExitError carries a process exit code out of a command.
type ExitError struct {
	Code int
	Msg  string
}

func (e *ExitError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

// ExitCode summarises a batch: any failed run wins over any step limit,
// which wins over interrupted runs.
func ExitCode(results []*domain.Result) int {
	code := ExitHalted
	for _, res := range results {
		switch res.Status {
		case domain.StatusFailed:
			return ExitFailed
		case domain.StatusStepLimit:
			code = ExitStepLimit
		case domain.StatusCanceled:
			if code == ExitHalted {
				code = ExitInterrupted
			}
		}
	}
	return code
}

// SignalContext wraps a context and captures the signal that cancelled it.
type SignalContext struct {
	context.Context
	Cancel func()
	stop   sync.Once
	sigCh  chan os.Signal
	sigVal os.Signal
	mu     sync.Mutex
}

// NewSignalContext creates a context that is cancelled on SIGINT or SIGTERM.
// It acts as a drop-in replacement for signal.NotifyContext but allows retrieving the signal.
func NewSignalContext(parent context.Context) *SignalContext {
	ctx, cancel := context.WithCancel(parent)
	sc := &SignalContext{
		Context: ctx,
		Cancel:  cancel,
		sigCh:   make(chan os.Signal, 1),
	}

	signal.Notify(sc.sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-sc.sigCh:
			sc.mu.Lock()
			sc.sigVal = sig
			sc.mu.Unlock()
			sc.Cancel()
		case <-sc.Context.Done():
		}
		sc.stop.Do(func() {
			signal.Stop(sc.sigCh)
		})
	}()

	return sc
}

// Signal returns the signal that caused the context to be cancelled, or nil.
func (sc *SignalContext) Signal() os.Signal {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.sigVal
}

// createLogger configures the application logger.
// In debug mode, it writes to Stderr (to keep Stdout for tapes).
func createLogger(debug bool) *slog.Logger {
	if debug {
		return logging.ForFlags(true)
	}
	return logging.NewNop()
}

// printSystemMessage prints a standardized system message.
func printSystemMessage(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, ">>> %s\n", fmt.Sprintf(format, args...))
}
