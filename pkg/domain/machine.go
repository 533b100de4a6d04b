package domain

// DefaultStartState is the conventional entry state of an instruction listing.
const DefaultStartState = "1"

// Machine is a loaded, not yet compiled, machine definition.
type Machine struct {
	ID          string   `json:"id" yaml:"id"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Start       string   `json:"start,omitempty" yaml:"start,omitempty"`
	Blank       Symbol   `json:"blank,omitempty" yaml:"blank,omitempty"`
	Rules       []Rule   `json:"rules" yaml:"rules"`
	Tapes       []string `json:"tapes,omitempty" yaml:"tapes,omitempty"`
}

// StartState returns Start or the default "1".
func (m *Machine) StartState() string {
	if m.Start == "" {
		return DefaultStartState
	}
	return m.Start
}

// BlankSymbol returns Blank or DefaultBlank.
func (m *Machine) BlankSymbol() Symbol {
	if m.Blank == 0 {
		return DefaultBlank
	}
	return m.Blank
}
