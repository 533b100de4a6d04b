package main

import (
	"github.com/aretw0/tmsim/internal/cli"
	"github.com/spf13/cobra"
)

var graphCmd = &cobra.Command{
	Use:   "graph [instructions]",
	Short: "Export the machine as a Mermaid flowchart",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := machineOptions(cmd, args)
		var trace *string
		if cmd.Flags().Changed("trace") {
			input, _ := cmd.Flags().GetString("trace")
			trace = &input
		}
		return cli.Graph(cmd.Context(), opts, trace)
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	addMachineFlags(graphCmd)
	graphCmd.Flags().String("trace", "", "Run this input first and highlight the states it visits")
}
