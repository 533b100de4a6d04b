package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aretw0/tmsim"
	"github.com/aretw0/tmsim/internal/presentation/tui"
	"github.com/aretw0/tmsim/pkg/adapters/file"
	"github.com/aretw0/tmsim/pkg/domain"
	"github.com/aretw0/tmsim/pkg/ports"
	"github.com/aretw0/tmsim/pkg/runner"
)

// RunOptions contains all the configuration for the run command.
type RunOptions struct {
	// Machine selection: a listing (plus tapes file), one machine file, or a
	// library directory with an optional id.
	Instructions string
	TapesFile    string
	MachineFile  string
	Dir          string
	ID           string

	// Tapes given on the command line replace any other source.
	Tapes []string

	Start           string
	Blank           string
	MaxSteps        int
	DeferDirections bool

	Verbose  bool
	JSON     bool
	Compact  bool
	Parallel int

	RedisURL string
	CacheDir string
	CacheTTL time.Duration

	Debug bool
	Watch bool

	Stdout io.Writer
	Stderr io.Writer
}

func (o *RunOptions) defaults() {
	if o.Stdout == nil {
		o.Stdout = os.Stdout
	}
	if o.Stderr == nil {
		o.Stderr = os.Stderr
	}
}

// Execute handles the run command, dispatching to watch mode when asked.
// The returned error is an *ExitError whenever the batch ran.
func Execute(ctx context.Context, opts RunOptions) error {
	opts.defaults()
	if opts.Watch {
		return RunWatch(ctx, opts)
	}

	results, err := runOnce(ctx, opts)
	if err != nil {
		return err
	}
	if code := ExitCode(results); code != ExitHalted {
		return &ExitError{Code: code}
	}
	return nil
}

func runOnce(ctx context.Context, opts RunOptions) ([]*domain.Result, error) {
	logger := createLogger(opts.Debug)

	machine, err := LoadMachine(ctx, opts)
	if err != nil {
		return nil, err
	}
	tapes, err := resolveTapes(opts, machine)
	if err != nil {
		return nil, err
	}

	prog, err := buildProgram(machine, opts, logger, nil)
	if err != nil {
		return nil, err
	}

	store, locker, closeStore, err := openStore(opts)
	if err != nil {
		return nil, err
	}
	defer closeStore()

	r := runner.New(createRunnerOptions(opts, store, locker)...)
	logger.Info("Running machine", "machine", prog.ID(), "tapes", len(tapes), "fingerprint", prog.Fingerprint())
	return r.Run(ctx, prog, tapes)
}

// createRunnerOptions prepares the functional options for the Runner.
func createRunnerOptions(opts RunOptions, store ports.ResultStore, locker ports.DistributedLocker) []runner.Option {
	rOpts := []runner.Option{
		runner.WithLogger(createLogger(opts.Debug)),
		runner.WithParallelism(opts.Parallel),
		runner.WithFullTrace(opts.Verbose || (opts.JSON && !opts.Compact)),
	}
	if opts.JSON {
		rOpts = append(rOpts, runner.WithHandler(runner.NewJSONHandler(opts.Stdout, opts.Compact)))
	} else {
		rOpts = append(rOpts, runner.WithHandler(runner.NewTextHandler(opts.Stdout,
			runner.WithVerbose(opts.Verbose),
			runner.WithColor(tui.IsTerminal(opts.Stdout)),
		)))
	}
	if store != nil {
		rOpts = append(rOpts, runner.WithStore(store))
		if locker != nil {
			rOpts = append(rOpts, runner.WithLocker(locker, runner.DefaultLockTTL))
		}
	}
	return rOpts
}

// LoadMachine resolves the machine selected by opts.
func LoadMachine(ctx context.Context, opts RunOptions) (*domain.Machine, error) {
	switch {
	case opts.MachineFile != "":
		return loadMachineFile(opts.MachineFile)
	case opts.Dir != "":
		loader, err := OpenLibrary(opts.Dir)
		if err != nil {
			return nil, err
		}
		id := opts.ID
		if id == "" {
			if id, err = determineEntryPoint(ctx, loader, opts.Dir); err != nil {
				return nil, err
			}
		}
		return loader.GetMachine(ctx, id)
	case opts.Instructions != "":
		return file.LoadPair(opts.Instructions, "")
	default:
		return nil, errors.New("no machine given: pass an instructions file, --machine or --dir")
	}
}

func loadMachineFile(path string) (*domain.Machine, error) {
	if filepath.Ext(path) != ".tm" {
		return file.LoadYAML(path, strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
	}
	tapes := strings.TrimSuffix(path, ".tm") + file.TapesExt
	if _, err := os.Stat(tapes); err != nil {
		tapes = ""
	}
	return file.LoadPair(path, tapes)
}

// resolveTapes picks the inputs: command-line tapes, then a tapes file,
// then the tapes stored with the machine.
func resolveTapes(opts RunOptions, machine *domain.Machine) ([]string, error) {
	if len(opts.Tapes) > 0 {
		return opts.Tapes, nil
	}
	if opts.TapesFile != "" {
		f, err := os.Open(opts.TapesFile)
		if err != nil {
			return nil, fmt.Errorf("failed to open tapes: %w", err)
		}
		defer f.Close()
		tapes, err := tmsim.ParseTapes(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", opts.TapesFile, err)
		}
		return tapes, nil
	}
	if len(machine.Tapes) > 0 {
		return machine.Tapes, nil
	}
	return nil, fmt.Errorf("machine %q has no tapes: pass a tapes file or --tape", machine.ID)
}
