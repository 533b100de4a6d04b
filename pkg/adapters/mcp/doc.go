// Package mcp exposes the simulator to MCP clients.
//
// Tools: run_machine, validate_machine, graph_machine and list_machines.
// The server speaks stdio or SSE.
package mcp
