package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aretw0/tmsim/pkg/ports"
)

// reloadDelay lets editors finish writing before the library is re-read.
const reloadDelay = 100 * time.Millisecond

// RunWatch runs the selected library machine and runs it again every time
// the library changes, until ctx is canceled.
func RunWatch(ctx context.Context, opts RunOptions) error {
	opts.defaults()
	if opts.Dir == "" {
		return errors.New("--watch needs a machine library (--dir)")
	}
	logger := createLogger(opts.Debug)

	loader, err := OpenLibrary(opts.Dir)
	if err != nil {
		return err
	}
	watchable, ok := loader.(ports.Watchable)
	if !ok {
		return fmt.Errorf("library %s does not support watching; use a Loam (Markdown) library", opts.Dir)
	}

	events, err := watchable.Watch(ctx)
	if err != nil {
		return fmt.Errorf("watch %s: %w", opts.Dir, err)
	}

	logger.Info("Starting Watcher", "path", opts.Dir)
	printSystemMessage(opts.Stderr, "Watching '%s'.", opts.Dir)

	for {
		if _, err := runOnce(ctx, opts); err != nil {
			logger.Error("Run failed", "err", err)
			printSystemMessage(opts.Stderr, "Error: %v", err)
		}

		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-events:
			if !ok {
				return nil
			}
			logger.Info("Change detected, triggering reload", "event", event)
			printSystemMessage(opts.Stderr, "Change detected in '%s'.", event)
			drain(ctx, events, reloadDelay)
		}
	}
}

// drain swallows the burst of events a single save tends to produce.
func drain(ctx context.Context, events <-chan string, quiet time.Duration) {
	timer := time.NewTimer(quiet)
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
			return
		case _, ok := <-events:
			if !ok {
				return
			}
			timer.Reset(quiet)
		}
	}
}
