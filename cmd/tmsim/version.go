package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/tmsim"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of tmsim",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "tmsim version %s\n", strings.TrimSpace(tmsim.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
