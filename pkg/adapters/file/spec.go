package file

import (
	"fmt"
	"strings"

	"github.com/aretw0/tmsim/internal/compiler"
	"github.com/aretw0/tmsim/pkg/domain"
	"github.com/mitchellh/mapstructure"
)

// Spec is the on-disk shape of a machine definition.
//
// Rules may be written as a block string holding a whole listing, as a list
// of one-line rules, or as a list of maps with the keys state, read, write,
// move and next. The forms may be mixed inside a list.
type Spec struct {
	ID          string   `yaml:"id" mapstructure:"id"`
	Description string   `yaml:"description" mapstructure:"description"`
	Start       string   `yaml:"start" mapstructure:"start"`
	Blank       string   `yaml:"blank" mapstructure:"blank"`
	Rules       any      `yaml:"rules" mapstructure:"rules"`
	Tapes       []string `yaml:"tapes" mapstructure:"tapes"`
}

// RuleSpec is the map form of a single rule.
type RuleSpec struct {
	State string `mapstructure:"state"`
	Read  string `mapstructure:"read"`
	Write string `mapstructure:"write"`
	Move  string `mapstructure:"move"`
	Next  string `mapstructure:"next"`
}

// DecodeSpec decodes loosely typed metadata (e.g. frontmatter) into a Spec.
// Scalars are converted to strings, so `start: 1` and `start: "1"` agree.
func DecodeSpec(raw map[string]any) (*Spec, error) {
	var spec Spec
	if err := weakDecode(raw, &spec, false); err != nil {
		return nil, fmt.Errorf("failed to decode machine: %w", err)
	}
	return &spec, nil
}

func weakDecode(input, output any, strict bool) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		ErrorUnused:      strict,
		Result:           output,
	})
	if err != nil {
		return err
	}
	return dec.Decode(input)
}

// Machine converts the spec into a domain.Machine. fallbackID is used when
// the spec does not name itself.
func (s *Spec) Machine(fallbackID string) (*domain.Machine, error) {
	m := &domain.Machine{
		ID:          s.ID,
		Description: strings.TrimSpace(s.Description),
		Start:       strings.TrimSpace(s.Start),
		Tapes:       s.Tapes,
	}
	if m.ID == "" {
		m.ID = fallbackID
	}

	if s.Blank != "" {
		blank, err := domain.ParseSymbol(s.Blank)
		if err != nil {
			return nil, fmt.Errorf("machine %s: blank: %w", m.ID, err)
		}
		m.Blank = blank
	}

	rules, err := decodeRules(s.Rules)
	if err != nil {
		return nil, fmt.Errorf("machine %s: %w", m.ID, err)
	}
	m.Rules = rules
	return m, nil
}

func decodeRules(raw any) ([]domain.Rule, error) {
	switch v := raw.(type) {
	case nil:
		return nil, domain.ErrNoRules
	case string:
		return compiler.NewParser().ParseRules(strings.NewReader(v))
	case []string:
		items := make([]any, len(v))
		for i, s := range v {
			items[i] = s
		}
		return decodeRuleList(items)
	case []any:
		return decodeRuleList(v)
	default:
		return nil, fmt.Errorf("rules: unsupported type %T", raw)
	}
}

func decodeRuleList(items []any) ([]domain.Rule, error) {
	var rules []domain.Rule
	var errs []error

	for i, item := range items {
		line := i + 1
		rule, err := decodeRule(item)
		if err != nil {
			errs = append(errs, &compiler.SyntaxError{Line: line, Text: fmt.Sprint(item), Reason: err.Error()})
			continue
		}
		rule.Line = line
		rules = append(rules, rule)
	}

	if len(errs) > 0 {
		return nil, &compiler.AggregateError{Errors: errs}
	}
	if len(rules) == 0 {
		return nil, domain.ErrNoRules
	}
	return rules, nil
}

func decodeRule(item any) (domain.Rule, error) {
	if text, ok := item.(string); ok {
		return compiler.ParseRule(text)
	}

	var rs RuleSpec
	if err := weakDecode(item, &rs, true); err != nil {
		return domain.Rule{}, err
	}
	if rs.State == "" || rs.Next == "" {
		return domain.Rule{}, fmt.Errorf("state and next are required")
	}

	read, err := domain.ParseSymbol(rs.Read)
	if err != nil {
		return domain.Rule{}, fmt.Errorf("read symbol: %w", err)
	}
	write, err := domain.ParseSymbol(rs.Write)
	if err != nil {
		return domain.Rule{}, fmt.Errorf("write symbol: %w", err)
	}

	return domain.Rule{
		State: rs.State,
		Read:  read,
		Write: write,
		Move:  domain.ParseDirection(rs.Move),
		Next:  rs.Next,
	}, nil
}
