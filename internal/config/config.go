// Package config handles the global citationweb configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents configuration stored in ~/.config/cw/config.yml.
type Config struct {
	// MinDOIScore is the minimum acceptable CrossRef search score.
	MinDOIScore float64 `yaml:"min_doi_score"`

	// RequireScore makes score-less search results a hard error.
	RequireScore bool `yaml:"require_score"`

	// MaxPDFPages is the page ceiling above which a PDF is skipped.
	MaxPDFPages int `yaml:"max_pdf_pages"`

	// Separators accepted when parsing list fields; the first is
	// canonical on output.
	Separators []string `yaml:"separators,omitempty"`

	// SourceFormat selects the attached-file resolver (bibdesk, plain).
	SourceFormat string `yaml:"source_format"`

	// CrossrefMailto is the contact address for the CrossRef polite pool.
	CrossrefMailto string `yaml:"crossref_mailto,omitempty"`

	// ExtractTool overrides the pdf-extract tool name or path.
	ExtractTool string `yaml:"extract_tool,omitempty"`
}

const (
	// GlobalConfigDir is the directory name under XDG_CONFIG_HOME.
	GlobalConfigDir = "cw"
	// GlobalConfigFile is the config file name.
	GlobalConfigFile = "config.yml"
)

// Default returns the built-in defaults, used when no config file exists.
func Default() *Config {
	return &Config{
		MinDOIScore:  1.0,
		RequireScore: false,
		MaxPDFPages:  42,
		Separators:   []string{",", ";"},
		SourceFormat: "bibdesk",
	}
}

// globalConfigCache caches the loaded global config.
var globalConfigCache *Config

// GlobalConfigPath returns the path to the global config file. Respects
// XDG_CONFIG_HOME, defaults to ~/.config/cw/config.yml.
func GlobalConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, GlobalConfigDir, GlobalConfigFile)
}

// Load loads the global configuration, filling defaults for unset values.
// Returns the defaults (not an error) if the file doesn't exist.
func Load() (*Config, error) {
	if globalConfigCache != nil {
		return globalConfigCache, nil
	}

	cfg := Default()

	path := GlobalConfigPath()
	if path == "" {
		globalConfigCache = cfg
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			globalConfigCache = cfg
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if len(cfg.Separators) == 0 {
		cfg.Separators = Default().Separators
	}

	globalConfigCache = cfg
	return cfg, nil
}

// ResetCache clears the cached global config. Useful for testing.
func ResetCache() {
	globalConfigCache = nil
}

// Save writes the configuration to the global config path, creating the
// directory if needed.
func (c *Config) Save() error {
	path := GlobalConfigPath()
	if path == "" {
		return fmt.Errorf("cannot determine config path")
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
