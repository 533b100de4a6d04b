/*
Package domain contains the core domain models of the tmsim engine.

It defines the fundamental entities of a single-tape deterministic Turing
machine: Symbols and Directions, the Rules read from an instruction listing,
the compiled Table of States and Transitions, and the Records a run emits.
This package is kept pure and free of external dependencies like I/O or
persistence.

# Key Entities

  - Rule: One parsed instruction line (state, read, write, direction, next).
  - Table: The immutable instruction table. It owns every State by id.
  - State: A node of the transition graph, holding at most one Transition per Symbol.
  - Record: A snapshot of a configuration (label, tape, head position, status).
  - Result: The complete outcome of running a machine against one input tape.
*/
package domain
