package domain

import (
	"fmt"
	"strings"
)

// Symbol is a single tape character.
type Symbol rune

// DefaultBlank fills every cell that was never written.
const DefaultBlank Symbol = '_'

func (s Symbol) String() string {
	return string(s)
}

// Direction is the head movement token of a rule, lower-cased.
// Only DirectionLeft and DirectionRight are valid; other tokens are kept
// verbatim so they can be reported where they are detected.
type Direction string

const (
	DirectionLeft  Direction = "l"
	DirectionRight Direction = "r"
)

// ParseDirection normalizes a raw direction token. It never fails:
// validity is checked with Valid.
func ParseDirection(token string) Direction {
	return Direction(strings.ToLower(strings.TrimSpace(token)))
}

// Valid reports whether d is Left or Right.
func (d Direction) Valid() bool {
	return d == DirectionLeft || d == DirectionRight
}

// Arrow returns a compact display form used by graph and table renderers.
func (d Direction) Arrow() string {
	switch d {
	case DirectionLeft:
		return "L"
	case DirectionRight:
		return "R"
	default:
		return "?" + string(d)
	}
}

// MarshalText encodes the symbol as its character so JSON and YAML carry
// "1" instead of the rune value.
func (s Symbol) MarshalText() ([]byte, error) {
	return []byte(string(s)), nil
}

// UnmarshalText accepts exactly one character.
func (s *Symbol) UnmarshalText(text []byte) error {
	sym, err := ParseSymbol(string(text))
	if err != nil {
		return err
	}
	*s = sym
	return nil
}

// ParseSymbol converts a one-character token into a Symbol.
func ParseSymbol(token string) (Symbol, error) {
	runes := []rune(token)
	if len(runes) != 1 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSymbol, token)
	}
	return Symbol(runes[0]), nil
}
