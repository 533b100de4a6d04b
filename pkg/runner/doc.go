/*
Package runner executes a compiled machine over a batch of input tapes.

It sits between a tmsim.Program and the outside world: each tape runs on a
fresh simulator, optionally in parallel, and finished results are handed to a
pluggable Handler strictly in input order. A ports.ResultStore memoises
results so identical runs are computed once, and a ports.DistributedLocker
extends that guarantee across processes sharing the store.

# Key Components

  - Runner: the batch orchestrator.
  - Handler: decouples how results are presented (text, JSON).
  - TextHandler: the classic tape listing with a caret under the head.
  - JSONHandler: one Result per line (NDJSON).

# Usage

	r := runner.New(
		runner.WithHandler(runner.NewTextHandler(os.Stdout, runner.WithVerbose(true))),
		runner.WithParallelism(4),
	)

	results, err := r.Run(ctx, prog, tapes)
*/
package runner
