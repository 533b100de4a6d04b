/*
Package dsl provides a Go DSL for programmatically constructing Turing machines.

It lets developers define machines with a fluent builder instead of an
instruction listing. This is useful for generated machines, unit tests and
IDE autocompletion.

Example usage:

	b := dsl.New("increment")

	b.State("right").
		Keep('0', dsl.R, "right").
		Keep('1', dsl.R, "right").
		On('_', '_', dsl.L, "carry")

	b.State("carry").
		On('1', '0', dsl.L, "carry").
		On('0', '1', dsl.L, "done").
		On('_', '1', dsl.L, "done")

	b.State("done").Halt()
	b.Start("right").Tapes("1011")

	prog, err := b.Compile()
*/
package dsl
