package compiler

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/tmsim/pkg/domain"
)

// Parser is responsible for converting instruction listings into Rules.
type Parser struct {
	// Comment is the line prefix that marks a comment. Empty disables comments.
	Comment string
}

// NewParser creates a new parser instance.
func NewParser() *Parser {
	return &Parser{Comment: "#"}
}

// ParseRules reads one rule per line: "state read write direction next".
// Fields are separated by any whitespace. Blank lines and comments are skipped.
// Every malformed line is reported; the rules are only returned when none is.
func (p *Parser) ParseRules(r io.Reader) ([]domain.Rule, error) {
	var rules []domain.Rule
	var errs []error

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || (p.Comment != "" && strings.HasPrefix(text, p.Comment)) {
			continue
		}

		rule, err := ParseRule(text)
		if err != nil {
			errs = append(errs, &SyntaxError{Line: line, Text: text, Reason: err.Error()})
			continue
		}
		rule.Line = line
		rules = append(rules, rule)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read instructions: %w", err)
	}

	if len(errs) > 0 {
		return nil, &AggregateError{Errors: errs}
	}
	if len(rules) == 0 {
		return nil, domain.ErrNoRules
	}
	return rules, nil
}

// ParseRule parses a single five-field instruction.
// The direction is normalized but not validated; see Compile.
func ParseRule(text string) (domain.Rule, error) {
	fields := strings.Fields(text)
	if len(fields) != 5 {
		return domain.Rule{}, fmt.Errorf("expected 5 fields (state read write direction next), got %d", len(fields))
	}

	read, err := domain.ParseSymbol(fields[1])
	if err != nil {
		return domain.Rule{}, fmt.Errorf("read symbol: %w", err)
	}
	write, err := domain.ParseSymbol(fields[2])
	if err != nil {
		return domain.Rule{}, fmt.Errorf("write symbol: %w", err)
	}

	return domain.Rule{
		State: fields[0],
		Read:  read,
		Write: write,
		Move:  domain.ParseDirection(fields[3]),
		Next:  fields[4],
	}, nil
}

// ParseTapes reads one input tape per line. Surrounding whitespace is
// trimmed and leading or trailing blank lines are dropped; blank lines in
// between are kept as empty tapes.
func (p *Parser) ParseTapes(r io.Reader) ([]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read tapes: %w", err)
	}

	raw := strings.TrimSpace(string(data))
	if raw == "" {
		return nil, nil
	}

	lines := strings.Split(raw, "\n")
	tapes := make([]string, 0, len(lines))
	for _, l := range lines {
		tapes = append(tapes, strings.TrimSpace(l))
	}
	return tapes, nil
}
