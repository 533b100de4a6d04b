package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/aretw0/tmsim"
	"github.com/aretw0/tmsim/internal/logging"
	"github.com/aretw0/tmsim/internal/presentation/tui"
	"github.com/aretw0/tmsim/internal/service"
	httpAdapter "github.com/aretw0/tmsim/pkg/adapters/http"
	"github.com/aretw0/tmsim/pkg/adapters/mcp"
	"github.com/aretw0/tmsim/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// ServeOptions configures the HTTP and MCP servers.
type ServeOptions struct {
	Dir      string
	Port     int
	RedisURL string
	CacheDir string
	CacheTTL time.Duration
	MaxSteps int
	Parallel int
	Debug    bool

	// Transport selects the MCP transport: "stdio" or "sse".
	Transport string

	Stderr io.Writer
}

// newService wires the library, the result cache and metrics.
func newService(opts ServeOptions, metrics *observability.Metrics, logger *slog.Logger) (*service.Service, func(), error) {
	svcOpts := []service.Option{
		service.WithLogger(logger),
		service.WithMaxSteps(opts.MaxSteps),
		service.WithParallelism(opts.Parallel),
	}
	if metrics != nil {
		svcOpts = append(svcOpts, service.WithMetrics(metrics))
	}
	if opts.Dir != "" {
		loader, err := OpenLibrary(opts.Dir)
		if err != nil {
			return nil, nil, err
		}
		svcOpts = append(svcOpts, service.WithLoader(loader))
	}

	store, locker, closeStore, err := openStore(RunOptions{
		RedisURL: opts.RedisURL,
		CacheDir: opts.CacheDir,
		CacheTTL: opts.CacheTTL,
	})
	if err != nil {
		return nil, nil, err
	}
	if store != nil {
		svcOpts = append(svcOpts, service.WithStore(store))
	}
	if locker != nil {
		svcOpts = append(svcOpts, service.WithLocker(locker))
	}
	return service.New(svcOpts...), closeStore, nil
}

// Serve runs the HTTP API until ctx is canceled.
func Serve(ctx context.Context, opts ServeOptions) error {
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	logger := serverLogger(opts.Debug)
	slog.SetDefault(logger)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := observability.NewMetrics(reg)

	svc, closeStore, err := newService(opts, metrics, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", opts.Port),
		Handler:           httpAdapter.NewHandler(svc, reg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	tui.PrintBanner(opts.Stderr, strings.TrimSpace(tmsim.Version))

	serverErrors := make(chan error, 1)
	go func() {
		printSystemMessage(opts.Stderr, "Listening on %s", srv.Addr)
		if opts.Dir != "" {
			printSystemMessage(opts.Stderr, "Serving machines from: %s", opts.Dir)
		}
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		printSystemMessage(opts.Stderr, "Shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			_ = srv.Close()
			return fmt.Errorf("graceful shutdown did not complete: %w", err)
		}
		if err := <-serverErrors; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// ServeMCP runs the MCP server on the selected transport.
func ServeMCP(ctx context.Context, opts ServeOptions) error {
	// Stdout carries JSON-RPC on stdio; logs always go to stderr.
	logger := serverLogger(opts.Debug)
	slog.SetDefault(logger)

	svc, closeStore, err := newService(opts, nil, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	srv := mcp.NewServer(svc)
	switch opts.Transport {
	case "", "stdio":
		slog.Info("Starting tmsim MCP Server (Stdio)...")
		return srv.ServeStdio()
	case "sse":
		return srv.ServeSSE(ctx, opts.Port)
	default:
		return fmt.Errorf("unknown transport %q (want stdio or sse)", opts.Transport)
	}
}

// serverLogger logs at Info on stderr, Debug with --debug.
func serverLogger(debug bool) *slog.Logger {
	if debug {
		return logging.New(slog.LevelDebug)
	}
	return logging.New(slog.LevelInfo)
}
