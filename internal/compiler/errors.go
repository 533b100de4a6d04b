package compiler

import "fmt"

// SyntaxError represents a single malformed instruction line.
type SyntaxError struct {
	Line   int    // 1-based line number
	Text   string // The offending line, trimmed
	Reason string // Human-readable reason for failure
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d: %s: %q", e.Line, e.Reason, e.Text)
}

// AggregateError represents multiple parse failures.
type AggregateError struct {
	Errors []error
}

func (e *AggregateError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	msg := fmt.Sprintf("%d syntax errors:\n", len(e.Errors))
	for i, err := range e.Errors {
		msg += fmt.Sprintf("  %d. %s\n", i+1, err.Error())
	}
	return msg
}

// Unwrap exposes the individual errors to errors.Is and errors.As.
func (e *AggregateError) Unwrap() []error {
	return e.Errors
}

// SyntaxErrors returns all syntax errors if err is an AggregateError.
// Otherwise returns nil.
func SyntaxErrors(err error) []error {
	if aggr, ok := err.(*AggregateError); ok {
		return aggr.Errors
	}
	return nil
}
