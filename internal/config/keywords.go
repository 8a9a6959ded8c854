package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FieldKeywords maps form-field intents to the substrings used to classify
// unlabeled controls in the application flow. Matching is case-insensitive
// substring matching. The sets are configuration rather than literals so
// tests and operators can swap them without touching the driver.
type FieldKeywords struct {
	// Narrative matches free-text areas meant for a cover note, by
	// placeholder or name attribute.
	Narrative []string `yaml:"narrative"`
	// Phone matches telephone inputs by name or id.
	Phone []string `yaml:"phone"`
	// Terminal matches the label of the final submit control.
	Terminal []string `yaml:"terminal"`
	// Advance lists the labels of wizard-advance controls, tried in order.
	Advance []string `yaml:"advance"`
}

// DefaultFieldKeywords returns the built-in classification sets.
func DefaultFieldKeywords() FieldKeywords {
	return FieldKeywords{
		Narrative: []string{"cover", "message", "note", "why", "summary", "additional", "about"},
		Phone:     []string{"phone"},
		Terminal:  []string{"submit", "apply", "done"},
		Advance:   []string{"Next", "Continue"},
	}
}

// LoadFieldKeywords reads keyword sets from a YAML file. Sets missing from
// the file keep their built-in defaults.
func LoadFieldKeywords(path string) (FieldKeywords, error) {
	kw := DefaultFieldKeywords()

	data, err := os.ReadFile(path)
	if err != nil {
		return kw, fmt.Errorf("failed to read keyword config %s: %w", path, err)
	}

	var loaded FieldKeywords
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return kw, fmt.Errorf("failed to parse keyword config %s: %w", path, err)
	}

	if len(loaded.Narrative) > 0 {
		kw.Narrative = loaded.Narrative
	}
	if len(loaded.Phone) > 0 {
		kw.Phone = loaded.Phone
	}
	if len(loaded.Terminal) > 0 {
		kw.Terminal = loaded.Terminal
	}
	if len(loaded.Advance) > 0 {
		kw.Advance = loaded.Advance
	}
	return kw, nil
}
