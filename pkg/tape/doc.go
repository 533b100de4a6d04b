/*
Package tape implements the unbounded, bidirectional tape of a Turing machine.

The tape is a slice with a pre-allocated left margin of blank cells and a head
index into it. Moving left past the margin doubles the margin, so left growth
costs O(1) amortized; moving right past the end appends a single blank cell,
which the slice append already amortizes.

The margin is an implementation artifact: String and Cells only expose the
cells from the leftmost one ever visited to the rightmost one.
*/
package tape
