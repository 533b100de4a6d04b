package main

import (
	"github.com/aretw0/tmsim/internal/cli"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Serves the simulator as a JSON API with Prometheus metrics on /metrics.
Machines are given inline in each request or resolved from the --dir library.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.Serve(cmd.Context(), serveOptions(cmd))
	},
}

// serveOptions reads the flags shared by serve and mcp.
func serveOptions(cmd *cobra.Command) cli.ServeOptions {
	var opts cli.ServeOptions
	opts.Dir, _ = cmd.Flags().GetString("dir")
	opts.Debug, _ = cmd.Flags().GetBool("debug")
	opts.Port, _ = cmd.Flags().GetInt("port")
	opts.RedisURL, _ = cmd.Flags().GetString("redis")
	opts.CacheDir, _ = cmd.Flags().GetString("cache-dir")
	opts.CacheTTL, _ = cmd.Flags().GetDuration("cache-ttl")
	opts.MaxSteps, _ = cmd.Flags().GetInt("max-steps")
	opts.Parallel, _ = cmd.Flags().GetInt("parallel")
	opts.Stderr = cmd.ErrOrStderr()
	return opts
}

func addServeFlags(cmd *cobra.Command, port int) {
	cmd.Flags().IntP("port", "p", port, "Port to listen on")
	cmd.Flags().String("redis", "", "Redis URL used as a shared result cache")
	cmd.Flags().String("cache-dir", "", "Directory used as a local result cache")
	cmd.Flags().Duration("cache-ttl", 0, "Expiry of Redis cache entries (0 keeps them)")
	cmd.Flags().Int("max-steps", 100_000, "Step cap applied to every request (0 disables it)")
	cmd.Flags().Int("parallel", 4, "Number of tapes of one request to run at once")
}

func init() {
	rootCmd.AddCommand(serveCmd)
	addServeFlags(serveCmd, 8080)
}
