package loam

// MachineMetadata is the frontmatter of a machine document.
// It uses "mapstructure" tags to match standard Frontmatter/YAML keys.
// Scalars are kept loosely typed because strict mode turns numbers into
// json.Number; file.DecodeSpec normalizes them.
type MachineMetadata struct {
	ID          string `json:"id" mapstructure:"id"`
	Description string `json:"description" mapstructure:"description"`
	Start       any    `json:"start" mapstructure:"start"`
	Blank       any    `json:"blank" mapstructure:"blank"`

	// Rules is optional; without it the listing is read from the document body.
	Rules any   `json:"rules" mapstructure:"rules"`
	Tapes []any `json:"tapes" mapstructure:"tapes"`
}

func (m MachineMetadata) raw() map[string]any {
	raw := map[string]any{
		"id":          m.ID,
		"description": m.Description,
		"rules":       m.Rules,
		"tapes":       m.Tapes,
	}
	if m.Start != nil {
		raw["start"] = m.Start
	}
	if m.Blank != nil {
		raw["blank"] = m.Blank
	}
	return raw
}
