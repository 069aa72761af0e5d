package component

import (
	"encoding/json"
	"fmt"
	"os"
)

// Validate checks a Metadata record for internal consistency.
// Returns a slice of validation errors (empty slice if valid).
func (m *Metadata) Validate() []error {
	var errs []error

	if m.Name == "" {
		errs = append(errs, fmt.Errorf("component name is required"))
	}
	switch m.Framework {
	case FrameworkReact, FrameworkVue, FrameworkSvelte:
	default:
		errs = append(errs, fmt.Errorf("unknown framework %q", m.Framework))
	}

	seen := make(map[string]bool, len(m.Props))
	for i, p := range m.Props {
		if p.Name == "" {
			errs = append(errs, fmt.Errorf("props[%d]: name is required", i))
			continue
		}
		if seen[p.Name] {
			errs = append(errs, fmt.Errorf("prop %q: duplicate prop name", p.Name))
			continue
		}
		seen[p.Name] = true
		if p.DefaultValue != "" && p.Required {
			errs = append(errs, fmt.Errorf("prop %q: has a default value but is marked required", p.Name))
		}
	}
	return errs
}

// MarshalIndent serializes the metadata as indented JSON.
func (m *Metadata) MarshalIndent() ([]byte, error) {
	return json.MarshalIndent(m, "", "  ")
}

// FromBytes parses metadata from JSON bytes. The result is validated; any
// validation error fails the load so that a corrupt record never reaches
// downstream stages.
func FromBytes(data []byte) (*Metadata, error) {
	var m Metadata
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse metadata: %w", err)
	}
	if errs := m.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("invalid metadata: %v", errs[0])
	}
	return &m, nil
}

// FromFile loads metadata from a JSON file.
func FromFile(path string) (*Metadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read metadata file: %w", err)
	}
	return FromBytes(data)
}
