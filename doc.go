/*
Package tmsim runs single-tape deterministic Turing machines.

A machine is a listing of five-field rules, one per line:

	state read write direction next

The machine starts in state "1" with the head on the first input symbol.
Each step looks up the rule for the current state and the symbol under the
head, writes a symbol, moves the head one cell left (l) or right (r) and
switches state. The machine halts as soon as no rule matches. Cells that
were never written hold the blank symbol "_".

# Usage

	prog, err := tmsim.CompileText("1 1 1 r 1\n1 _ _ l 2")
	if err != nil {
		log.Fatal(err)
	}

	res := prog.Run(ctx, "1")
	for _, rec := range res.Records {
		fmt.Printf("%-10s: %s\n", rec.Label, rec.Tape)
	}

A Program is immutable and may run any number of tapes concurrently. Each
call to Run or Trace owns its own tape.

# Termination

Nothing guarantees that a machine halts. Callers that run untrusted listings
should bound the run with WithStepLimit or cancel the context; both end the
run with a status distinct from a normal halt.

# Packages

  - pkg/domain: rules, tables, records and errors.
  - pkg/tape: the unbounded tape.
  - pkg/runner: batch execution with text and NDJSON output.
  - pkg/adapters: loaders, result stores, HTTP and MCP servers.
*/
package tmsim
