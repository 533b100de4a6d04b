package domain

import "fmt"

// Rule is one instruction as written in the source listing.
type Rule struct {
	State string    `json:"state" yaml:"state"`
	Read  Symbol    `json:"read" yaml:"read"`
	Write Symbol    `json:"write" yaml:"write"`
	Move  Direction `json:"move" yaml:"move"`
	Next  string    `json:"next" yaml:"next"`

	// Line is the 1-based source line, 0 when the rule was built in code.
	Line int `json:"line,omitempty" yaml:"-"`
}

// String renders the rule back into its five-field text form.
func (r Rule) String() string {
	return fmt.Sprintf("%s %c %c %s %s", r.State, r.Read, r.Write, r.Move, r.Next)
}

// Transition is what a State does when it reads a given Symbol.
type Transition struct {
	Write Symbol    `json:"write"`
	Move  Direction `json:"move"`
	Next  string    `json:"next"`
}
