// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
)

// Config represents the CLI configuration that can be loaded from a JSON
// file. All fields are optional; missing values use defaults or must be
// provided via CLI flags.
type Config struct {
	// Inputs
	Resume    string `json:"resume,omitempty"`     // Path to resume document (pdf/docx/plain text)
	Keywords  string `json:"keywords,omitempty"`   // Comma-separated search keywords
	Location  string `json:"location,omitempty"`   // Optional search location
	CoverFile string `json:"cover_file,omitempty"` // Path to cover letter text file
	CoverText string `json:"cover_text,omitempty"` // Inline cover text (used if cover_file not provided)
	Phone     string `json:"phone,omitempty"`      // Phone number to fill if a phone field is present

	// Limits
	Collect int `json:"collect,omitempty" validate:"omitempty,min=1"` // Max job links to collect per keyword
	Top     int `json:"top,omitempty" validate:"omitempty,min=1"`    // Shortlist size

	// Browser session
	Profile    string `json:"profile,omitempty"`     // Chrome user-data-dir (so the session is already authenticated)
	ProfileDir string `json:"profile_dir,omitempty"` // Chrome profile directory name
	Headless   bool   `json:"headless,omitempty"`

	// Behavior
	Apply         bool   `json:"apply,omitempty"`          // Run the application flow on the shortlist
	AutoSubmit    bool   `json:"auto_submit,omitempty"`    // Allow the driver to press the final submit control
	Out           string `json:"out,omitempty"`            // Shortlist output file
	KeywordConfig string `json:"keyword_config,omitempty"` // YAML file overriding field-classification keyword sets
	Verbose       bool   `json:"verbose,omitempty"`
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values. Required-field
// enforcement happens after flag merging; this validates what is present.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	if c.CoverFile != "" && c.CoverText != "" {
		return fmt.Errorf("config error: 'cover_file' and 'cover_text' are mutually exclusive")
	}

	// Validate file paths exist (if specified)
	if c.Resume != "" {
		if _, err := os.Stat(c.Resume); os.IsNotExist(err) {
			return fmt.Errorf("config error: resume file not found: %s", c.Resume)
		}
	}
	if c.CoverFile != "" {
		if _, err := os.Stat(c.CoverFile); os.IsNotExist(err) {
			return fmt.Errorf("config error: cover file not found: %s", c.CoverFile)
		}
	}
	if c.KeywordConfig != "" {
		if _, err := os.Stat(c.KeywordConfig); os.IsNotExist(err) {
			return fmt.Errorf("config error: keyword config file not found: %s", c.KeywordConfig)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from
// defaults. This is used to apply config file values as defaults for CLI
// flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Resume == "" {
		result.Resume = defaults.Resume
	}
	if result.Keywords == "" {
		result.Keywords = defaults.Keywords
	}
	if result.Location == "" {
		result.Location = defaults.Location
	}
	if result.CoverFile == "" {
		result.CoverFile = defaults.CoverFile
	}
	if result.CoverText == "" {
		result.CoverText = defaults.CoverText
	}
	if result.Phone == "" {
		result.Phone = defaults.Phone
	}
	if result.Profile == "" {
		result.Profile = defaults.Profile
	}
	if result.ProfileDir == "" {
		result.ProfileDir = defaults.ProfileDir
	}
	if result.Out == "" {
		result.Out = defaults.Out
	}
	if result.KeywordConfig == "" {
		result.KeywordConfig = defaults.KeywordConfig
	}

	// Int fields: use default if zero
	if result.Collect == 0 {
		result.Collect = defaults.Collect
	}
	if result.Top == 0 {
		result.Top = defaults.Top
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
