package main

import (
	"github.com/aretw0/tmsim/internal/cli"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Exposes the simulator as MCP tools (run_machine, validate_machine,
graph_machine, list_machines) so AI agents can run and inspect machines.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := serveOptions(cmd)
		opts.Transport, _ = cmd.Flags().GetString("transport")
		return cli.ServeMCP(cmd.Context(), opts)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
	addServeFlags(mcpCmd, 8081)
	mcpCmd.Flags().String("transport", "stdio", "Transport: stdio or sse")
}
