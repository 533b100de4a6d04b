package main

import (
	"github.com/aretw0/tmsim/internal/cli"
	"github.com/spf13/cobra"
)

var describeCmd = &cobra.Command{
	Use:   "describe [instructions]",
	Short: "Render a Markdown summary of a machine",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := machineOptions(cmd, args)
		raw, _ := cmd.Flags().GetBool("raw")
		return cli.Describe(cmd.Context(), opts, raw)
	},
}

func init() {
	rootCmd.AddCommand(describeCmd)
	addMachineFlags(describeCmd)
	describeCmd.Flags().Bool("raw", false, "Print plain Markdown instead of styled terminal output")
}
