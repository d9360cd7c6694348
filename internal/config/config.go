// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"ownerparse/internal/extract"
	"ownerparse/internal/paths"
	"ownerparse/internal/personname"
	"ownerparse/internal/vocabulary"

	"gopkg.in/yaml.v3"
)

// ConfigFileEnv names a config file explicitly.
const ConfigFileEnv = "OWNERPARSE_CONFIG"

// Config represents the application configuration
type Config struct {
	// Default settings
	Defaults Defaults `yaml:"defaults"`

	// Profiles for different jurisdictions
	Profiles map[string]Profile `yaml:"profiles"`
}

// Defaults are used when neither a flag nor the active profile sets a value
type Defaults struct {
	Format    string `yaml:"format"`
	Output    string `yaml:"output"`
	Debug     bool   `yaml:"debug"`
	NoColor   bool   `yaml:"no_color"`
	Quiet     bool   `yaml:"quiet"`
	Recursive bool   `yaml:"recursive"`
	Workers   int    `yaml:"workers"`
	Profile   string `yaml:"profile"`
}

// Profile holds the settings of one jurisdiction (a county appraisal
// district, a recorder's office)
type Profile struct {
	Description string `yaml:"description"`
	Format      string `yaml:"format"`
	NoColor     bool   `yaml:"no_color"`
	Workers     int    `yaml:"workers"`
	// case | comma | first_last | last_first
	NameOrder  string              `yaml:"name_order"`
	Vocabulary vocabulary.Override `yaml:"vocabulary"`
	// Optional HTML selectors; empty fields keep the defaults
	Selectors *extract.Selectors `yaml:"selectors,omitempty"`
}

// LoadConfig loads configuration from the specified file path
func LoadConfig(configPath string) (*Config, error) {
	// Default configuration
	config := &Config{
		Profiles: make(map[string]Profile),
	}

	// Set default values
	config.Defaults.Format = "text"
	config.Defaults.Debug = false
	config.Defaults.NoColor = false
	config.Defaults.Workers = 4

	// Built-in profile for sources that always record the surname first
	config.Profiles["recorded"] = Profile{
		Description: "Recorded instruments listing the surname first regardless of case",
		NameOrder:   "last_first",
	}

	// If no config file specified, return default config
	if configPath == "" {
		return config, nil
	}

	// Read config file
	cleanPath := filepath.Clean(configPath)
	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Parse YAML
	err = yaml.Unmarshal(data, config)
	if err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	// Validate the configuration
	if err := ValidateConfig(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// FindConfigFile looks for a configuration file in standard locations
func FindConfigFile() string {
	if env := os.Getenv(ConfigFileEnv); env != "" {
		return env
	}

	// Project-specific config in the current directory
	for _, name := range []string{"ownerparse.yaml", "ownerparse.yml", ".ownerparse.yaml", ".ownerparse.yml"} {
		if fileExists(name) {
			return name
		}
	}

	// Check standard location
	if standardConfig := paths.GetConfigFile(); fileExists(standardConfig) {
		return standardConfig
	}
	return ""
}

// fileExists checks if a file exists and is not a directory
func fileExists(filename string) bool {
	info, err := os.Stat(filename)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// ListProfiles returns the available profile names in sorted order
func (c *Config) ListProfiles() []string {
	profiles := make([]string, 0, len(c.Profiles))
	for name := range c.Profiles {
		profiles = append(profiles, name)
	}
	sort.Strings(profiles)
	return profiles
}

// GetProfile returns a profile by name, or nil if not found
func (c *Config) GetProfile(name string) *Profile {
	if profile, exists := c.Profiles[name]; exists {
		return &profile
	}
	return nil
}

// OrderDetector resolves the profile's name order
func (p *Profile) OrderDetector() (personname.OrderDetector, error) {
	if p == nil {
		return personname.DefaultOrder(), nil
	}
	return personname.ParseOrder(p.NameOrder)
}

// BuildVocabulary applies the profile's vocabulary override to base
func (p *Profile) BuildVocabulary(base *vocabulary.Vocabulary) (*vocabulary.Vocabulary, error) {
	if p == nil {
		return base, nil
	}
	return base.With(p.Vocabulary)
}

// HTMLSelectors returns the default selectors with the profile's non-empty
// fields applied
func (p *Profile) HTMLSelectors() extract.Selectors {
	sel := extract.DefaultSelectors()
	if p == nil || p.Selectors == nil {
		return sel
	}
	o := p.Selectors
	if o.PropertyID != "" {
		sel.PropertyID = o.PropertyID
	}
	if o.SalesTable != "" {
		sel.SalesTable = o.SalesTable
	}
	if len(o.DateHeaders) > 0 {
		sel.DateHeaders = o.DateHeaders
	}
	if len(o.GranteeHeaders) > 0 {
		sel.GranteeHeaders = o.GranteeHeaders
	}
	if o.CurrentOwner != "" {
		sel.CurrentOwner = o.CurrentOwner
	}
	return sel
}

// ValidateConfig validates the configuration
func ValidateConfig(config *Config) error {
	if config == nil {
		return fmt.Errorf("configuration cannot be nil")
	}

	if config.Defaults.Workers <= 0 {
		return fmt.Errorf("defaults.workers must be positive, got %d", config.Defaults.Workers)
	}
	if err := paths.ValidatePath(config.Defaults.Output); err != nil {
		return fmt.Errorf("invalid default output path: %w", err)
	}
	if config.Defaults.Profile != "" {
		if _, ok := config.Profiles[config.Defaults.Profile]; !ok {
			return fmt.Errorf("default profile '%s' is not defined", config.Defaults.Profile)
		}
	}

	base, err := vocabulary.Default()
	if err != nil {
		return err
	}
	for name, profile := range config.Profiles {
		if profile.Workers < 0 {
			return fmt.Errorf("profile '%s': workers must not be negative", name)
		}
		if _, err := personname.ParseOrder(profile.NameOrder); err != nil {
			return fmt.Errorf("profile '%s': %w", name, err)
		}
		if _, err := profile.BuildVocabulary(base); err != nil {
			return fmt.Errorf("profile '%s': %w", name, err)
		}
	}

	return nil
}

// LoadConfigOrDefault loads configuration from configFile (or searches standard locations
// when configFile is empty). If loading fails, it returns a default configuration.
func LoadConfigOrDefault(configFile string) *Config {
	configPath := configFile
	if configPath == "" {
		configPath = FindConfigFile()
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		// Fall back to defaults so a bad config file never stops a run
		cfg, _ = LoadConfig("")
	}
	return cfg
}
