package cli

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aretw0/tmsim"
	"github.com/aretw0/tmsim/pkg/adapters/file"
	"github.com/aretw0/tmsim/pkg/adapters/loam"
	"github.com/aretw0/tmsim/pkg/adapters/redis"
	"github.com/aretw0/tmsim/pkg/domain"
	"github.com/aretw0/tmsim/pkg/observability"
	"github.com/aretw0/tmsim/pkg/ports"
	backend "github.com/redis/go-redis/v9"
)

// OpenLibrary picks the loader for a machine directory: a Loam repository
// when it holds Markdown documents, plain machine files otherwise.
func OpenLibrary(dir string) (ports.MachineLoader, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("machine library: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("machine library: %s is not a directory", dir)
	}
	if hasMarkdown(dir) {
		return loam.Open(dir)
	}
	return file.NewLoader(dir), nil
}

func hasMarkdown(dir string) bool {
	found := false
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) == ".md" {
			found = true
			return fs.SkipAll
		}
		return nil
	})
	return found
}

// determineEntryPoint picks the machine to run when no id is given:
// "main", then "index", then the directory's own name, then the only
// machine of the library.
func determineEntryPoint(ctx context.Context, loader ports.MachineLoader, dir string) (string, error) {
	ids, err := loader.ListMachines(ctx)
	if err != nil {
		return "", err
	}

	known := make(map[string]bool, len(ids))
	for _, id := range ids {
		known[id] = true
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		abs = dir
	}
	for _, candidate := range []string{"main", "index", filepath.Base(abs)} {
		if known[candidate] {
			return candidate, nil
		}
	}
	if len(ids) == 1 {
		return ids[0], nil
	}
	if len(ids) == 0 {
		return "", fmt.Errorf("%w: library %s is empty", domain.ErrMachineNotFound, dir)
	}
	return "", fmt.Errorf("library %s holds %d machines (%s); choose one with --id",
		dir, len(ids), strings.Join(ids, ", "))
}

// openStore builds the result cache from flags. The returned close function
// is never nil.
func openStore(opts RunOptions) (ports.ResultStore, ports.DistributedLocker, func(), error) {
	switch {
	case opts.RedisURL != "":
		redisOpts, err := backend.ParseURL(opts.RedisURL)
		if err != nil {
			return nil, nil, func() {}, fmt.Errorf("invalid --redis url: %w", err)
		}
		client := backend.NewClient(redisOpts)
		store := redis.NewFromClient(client, redis.WithTTL(opts.CacheTTL))

		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := store.Ping(ctx); err != nil {
			_ = client.Close()
			return nil, nil, func() {}, fmt.Errorf("redis unavailable: %w", err)
		}
		locker := redis.NewLocker(client, "tmsim:lock:")
		return store, locker, func() { _ = client.Close() }, nil
	case opts.CacheDir != "":
		return file.NewStore(opts.CacheDir), nil, func() {}, nil
	default:
		return nil, nil, func() {}, nil
	}
}

// buildProgram compiles machine with the run flags applied.
func buildProgram(machine *domain.Machine, opts RunOptions, logger *slog.Logger, metrics *observability.Metrics) (*tmsim.Program, error) {
	progOpts := []tmsim.Option{
		tmsim.WithLogger(logger),
		tmsim.WithStepLimit(opts.MaxSteps),
	}
	if opts.Start != "" {
		progOpts = append(progOpts, tmsim.WithStart(opts.Start))
	}
	if opts.Blank != "" {
		sym, err := domain.ParseSymbol(opts.Blank)
		if err != nil {
			return nil, fmt.Errorf("--blank: %w", err)
		}
		progOpts = append(progOpts, tmsim.WithBlank(sym))
	}
	if opts.DeferDirections {
		progOpts = append(progOpts, tmsim.WithDeferredDirections())
	}

	var hooks []domain.LifecycleHooks
	if opts.Debug {
		hooks = append(hooks, observability.LoggingHooks(logger))
	}
	if metrics != nil {
		hooks = append(hooks, metrics.Hooks(machine.ID))
	}
	if len(hooks) > 0 {
		progOpts = append(progOpts, tmsim.WithLifecycleHooks(observability.ChainHooks(hooks...)))
	}

	return tmsim.Compile(machine, progOpts...)
}
