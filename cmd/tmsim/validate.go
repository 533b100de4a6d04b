package main

import (
	"github.com/aretw0/tmsim/internal/cli"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [instructions]",
	Short: "Check a machine and report unreachable states and other warnings",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := machineOptions(cmd, args)
		opts.JSON, _ = cmd.Flags().GetBool("json")
		strict, _ := cmd.Flags().GetBool("strict")
		return cli.Validate(cmd.Context(), opts, strict)
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	addMachineFlags(validateCmd)
	validateCmd.Flags().Bool("strict", false, "Exit with status 1 on warnings")
	validateCmd.Flags().Bool("json", false, "Print the full analysis as JSON")
}
