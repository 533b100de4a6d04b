package main

import (
	"github.com/aretw0/tmsim/internal/cli"
	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run [instructions] [tapes]",
	Short: "Run a machine over input tapes",
	Long: `Runs a machine over every input tape and prints START and the final
configuration of each run (every configuration with --verbose).

Exit status: 0 when every run halted, 1 when the machine could not be loaded,
2 when a run failed, 3 when a run exceeded --max-steps.`,
	Args: cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := machineOptions(cmd, args)
		opts.Tapes, _ = cmd.Flags().GetStringArray("tape")
		opts.Verbose, _ = cmd.Flags().GetBool("verbose")
		opts.JSON, _ = cmd.Flags().GetBool("json")
		opts.Compact, _ = cmd.Flags().GetBool("compact")
		opts.Parallel, _ = cmd.Flags().GetInt("parallel")
		opts.RedisURL, _ = cmd.Flags().GetString("redis")
		opts.CacheDir, _ = cmd.Flags().GetString("cache-dir")
		opts.CacheTTL, _ = cmd.Flags().GetDuration("cache-ttl")
		opts.Watch, _ = cmd.Flags().GetBool("watch")

		return cli.Execute(cmd.Context(), opts)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	addMachineFlags(runCmd)

	runCmd.Flags().StringArrayP("tape", "t", nil, "Input tape (repeatable); replaces the tapes file")
	runCmd.Flags().BoolP("verbose", "v", false, "Print every configuration")
	runCmd.Flags().Bool("json", false, "Print one JSON result per line (NDJSON)")
	runCmd.Flags().Bool("compact", false, "With --json, omit the per-step records")
	runCmd.Flags().Int("parallel", 1, "Number of tapes to run at once")
	runCmd.Flags().String("redis", "", "Redis URL used as a shared result cache (redis://host:port/db)")
	runCmd.Flags().String("cache-dir", "", "Directory used as a local result cache")
	runCmd.Flags().Duration("cache-ttl", 0, "Expiry of Redis cache entries (0 keeps them)")
	runCmd.Flags().BoolP("watch", "w", false, "Re-run whenever the --dir library changes (Loam libraries)")
}
