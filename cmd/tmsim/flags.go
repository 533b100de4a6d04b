package main

import (
	"github.com/aretw0/tmsim/internal/cli"
	"github.com/spf13/cobra"
)

// addMachineFlags registers the flags that select and configure a machine.
func addMachineFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("machine", "m", "", "Machine file (.yaml, .yml or .tm)")
	cmd.Flags().String("id", "", "Machine id inside --dir (defaults to main, index, the directory name or the only machine)")
	cmd.Flags().String("start", "", "Start state (default \"1\")")
	cmd.Flags().String("blank", "", "Blank symbol (default \"_\")")
	cmd.Flags().Int("max-steps", 0, "Stop a run after this many steps (0 means unbounded)")
	cmd.Flags().Bool("defer-directions", false, "Fail runs that execute an invalid direction instead of rejecting the listing")
}

// machineOptions reads the machine flags. Positional args are the
// instruction listing and the tapes file, as in the classic two-file layout.
func machineOptions(cmd *cobra.Command, args []string) cli.RunOptions {
	var opts cli.RunOptions
	opts.Dir, _ = cmd.Flags().GetString("dir")
	opts.Debug, _ = cmd.Flags().GetBool("debug")
	opts.MachineFile, _ = cmd.Flags().GetString("machine")
	opts.ID, _ = cmd.Flags().GetString("id")
	opts.Start, _ = cmd.Flags().GetString("start")
	opts.Blank, _ = cmd.Flags().GetString("blank")
	opts.MaxSteps, _ = cmd.Flags().GetInt("max-steps")
	opts.DeferDirections, _ = cmd.Flags().GetBool("defer-directions")

	if len(args) > 0 {
		opts.Instructions = args[0]
	}
	if len(args) > 1 {
		opts.TapesFile = args[1]
	}
	opts.Stdout = cmd.OutOrStdout()
	opts.Stderr = cmd.ErrOrStderr()
	return opts
}
