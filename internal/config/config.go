package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file looked up in the working directory.
const DefaultPath = ".localecheck.yaml"

// Config holds all localecheck configuration.
type Config struct {
	// Directory holding the locale files
	Dir string `yaml:"dir"`

	// Reference locale whose keys define completeness
	Reference string `yaml:"reference"`

	// Target locales, checked in order. An empty list means every *.json in Dir.
	Locales []string `yaml:"locales"`

	// Output
	Format    string `yaml:"format"` // text, json
	ShowExtra bool   `yaml:"show_extra"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// DefaultLocales is the built-in target list.
var DefaultLocales = []string{
	"de.json", "es.json", "fr.json", "it.json",
	"ja.json", "nl.json", "pt.json", "ru.json",
}

// ValidFormats lists the supported report formats.
var ValidFormats = []string{"text", "json"}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Dir:       ".",
		Reference: "en.json",
		Locales:   append([]string(nil), DefaultLocales...),
		Format:    "text",

		Logging: LoggingConfig{
			Level:  "warn",
			Format: "console",
		},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Return defaults if config file doesn't exist
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("read localecheck config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse localecheck config %s: %w", path, err)
	}

	// Override with environment variables
	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create config dir %s: %w", dir, err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode localecheck config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write localecheck config %s: %w", path, err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if dir := os.Getenv("LOCALECHECK_DIR"); dir != "" {
		c.Dir = dir
	}
	if ref := os.Getenv("LOCALECHECK_REFERENCE"); ref != "" {
		c.Reference = ref
	}
	if list, ok := os.LookupEnv("LOCALECHECK_LOCALES"); ok && list != "" {
		c.Locales = SplitList(list)
	}
	if format := os.Getenv("LOCALECHECK_FORMAT"); format != "" {
		c.Format = format
	}
}

// SplitList splits a comma-separated list, dropping blanks.
func SplitList(s string) []string {
	var out []string
	for _, token := range strings.Split(s, ",") {
		if name := strings.TrimSpace(token); name != "" {
			out = append(out, name)
		}
	}
	return out
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Reference) == "" {
		return fmt.Errorf("reference locale not configured")
	}

	validFormat := false
	for _, f := range ValidFormats {
		if strings.EqualFold(c.Format, f) {
			validFormat = true
			break
		}
	}
	if !validFormat {
		return fmt.Errorf("invalid format: %s (valid: %v)", c.Format, ValidFormats)
	}

	ref := filepath.Clean(c.Reference)
	seen := make(map[string]struct{}, len(c.Locales))
	for _, name := range c.Locales {
		clean := filepath.Clean(name)
		if clean == ref {
			return fmt.Errorf("reference %s is also listed as a target locale", name)
		}
		if _, dup := seen[clean]; dup {
			return fmt.Errorf("duplicate target locale: %s", name)
		}
		seen[clean] = struct{}{}
	}

	return c.Logging.Validate()
}

// Discover reports whether targets should be discovered from Dir.
func (c *Config) Discover() bool {
	return len(c.Locales) == 0
}
