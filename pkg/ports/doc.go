/*
Package ports defines the driven ports (interfaces) of tmsim.

These interfaces decouple the engine from where machines come from and where
results are kept, so the same runner serves the CLI, the HTTP API and the
MCP server.

# Key Interfaces

  - MachineLoader: Loads machine definitions (e.g., from files, Loam or Memory).
  - Watchable: Optional loader capability that reports changed machines.
  - ResultStore: Caches the results of deterministic runs.
  - DistributedLocker: Serializes identical runs across replicas sharing a cache.
*/
package ports
