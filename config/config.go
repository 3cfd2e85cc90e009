// Package config provides configuration loading and management for semowl.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"gopkg.in/yaml.v3"
)

// Extension names accepted in ExtensionsConfig.Enabled.
const (
	ExtensionSKOS = "skos"
	ExtensionTime = "time"
	ExtensionGeo  = "geo"
)

// Storage backends.
const (
	BackendSQLite = "sqlite"
	BackendNATS   = "nats"
)

// Config represents the complete semowl configuration
type Config struct {
	Reasoner   ReasonerConfig   `yaml:"reasoner"`
	Validator  ValidatorConfig  `yaml:"validator"`
	Extensions ExtensionsConfig `yaml:"extensions"`
	Export     ExportConfig     `yaml:"export"`
	NATS       NATSConfig       `yaml:"nats"`
	Storage    StorageConfig    `yaml:"storage"`
	Watch      WatchConfig      `yaml:"watch"`
}

// ReasonerConfig configures inference runs
type ReasonerConfig struct {
	// MaxIterations bounds the number of fixpoint rounds
	MaxIterations int `yaml:"max_iterations"`
	// Workers is the number of rules evaluated concurrently
	Workers int `yaml:"workers"`
	// Rules restricts the built-in rules by name (empty = all)
	Rules []string `yaml:"rules"`
	// DisableSWRL skips the ontology's own SWRL rules
	DisableSWRL bool `yaml:"disable_swrl"`
	// Timeout bounds a single reasoning run
	Timeout time.Duration `yaml:"timeout"`
}

// ValidatorConfig configures validation runs
type ValidatorConfig struct {
	// Rules restricts the validator rules by name (empty = all)
	Rules []string `yaml:"rules"`
	// Workers is the number of rules evaluated concurrently
	Workers int `yaml:"workers"`
	// FailOnWarning makes warnings fail the validate command
	FailOnWarning bool `yaml:"fail_on_warning"`
}

// ExtensionsConfig selects the vocabulary extensions whose rules are loaded
type ExtensionsConfig struct {
	// Enabled lists extension names: skos, time, geo
	Enabled []string `yaml:"enabled"`
}

// ExportConfig configures serialization defaults
type ExportConfig struct {
	// Format is the default output format (turtle, ntriples, jsonld, owlxml)
	Format string `yaml:"format"`
	// Profile selects asserted, inferred or all axioms
	Profile string `yaml:"profile"`
}

// NATSConfig configures the NATS connection
type NATSConfig struct {
	// URL is the NATS server URL (empty = start an embedded server)
	URL string `yaml:"url"`
	// Subject is the subject prefix inferences are published under
	Subject string `yaml:"subject"`
	// Bucket prefixes the JetStream KV buckets of the nats storage backend
	Bucket string `yaml:"bucket"`
	// StoreDir is where the embedded server keeps JetStream data
	StoreDir string `yaml:"store_dir"`
}

// StorageConfig configures ontology persistence
type StorageConfig struct {
	// Backend is sqlite or nats
	Backend string `yaml:"backend"`
	// Path is the SQLite database file
	Path string `yaml:"path"`
}

// WatchConfig configures watch mode
type WatchConfig struct {
	// Root is the directory watched (auto-detected from git if empty)
	Root string `yaml:"root"`
	// Patterns are doublestar globs relative to Root
	Patterns []string `yaml:"patterns"`
	// Debounce delays re-validation after a burst of changes
	Debounce time.Duration `yaml:"debounce"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Reasoner: ReasonerConfig{
			MaxIterations: 64,
			Workers:       4,
			Timeout:       2 * time.Minute,
		},
		Validator: ValidatorConfig{
			Workers: 4,
		},
		Extensions: ExtensionsConfig{
			Enabled: []string{ExtensionSKOS, ExtensionTime, ExtensionGeo},
		},
		Export: ExportConfig{
			Format:  "turtle",
			Profile: "all",
		},
		NATS: NATSConfig{
			URL:      "",
			Subject:  "semowl.inferences",
			Bucket:   "SEMOWL",
			StoreDir: filepath.Join(".semowl", "nats"),
		},
		Storage: StorageConfig{
			Backend: BackendSQLite,
			Path:    filepath.Join(".semowl", "ontologies.db"),
		},
		Watch: WatchConfig{
			Root:     "", // Auto-detect
			Patterns: []string{"**/*.owx", "**/*.owl"},
			Debounce: 300 * time.Millisecond,
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Reasoner.MaxIterations < 1 {
		return fmt.Errorf("reasoner.max_iterations must be positive")
	}
	if c.Reasoner.Workers < 1 {
		return fmt.Errorf("reasoner.workers must be positive")
	}
	if c.Validator.Workers < 1 {
		return fmt.Errorf("validator.workers must be positive")
	}
	for _, ext := range c.Extensions.Enabled {
		if !slices.Contains([]string{ExtensionSKOS, ExtensionTime, ExtensionGeo}, ext) {
			return fmt.Errorf("extensions.enabled: unknown extension %q", ext)
		}
	}
	switch c.Storage.Backend {
	case BackendSQLite:
		if c.Storage.Path == "" {
			return fmt.Errorf("storage.path is required for the sqlite backend")
		}
	case BackendNATS:
		if c.NATS.URL == "" && c.NATS.StoreDir == "" {
			return fmt.Errorf("nats.url or nats.store_dir is required for the nats backend")
		}
		if c.NATS.Bucket == "" {
			return fmt.Errorf("nats.bucket is required for the nats backend")
		}
	default:
		return fmt.Errorf("storage.backend must be %s or %s", BackendSQLite, BackendNATS)
	}
	if c.Watch.Debounce < 0 {
		return fmt.Errorf("watch.debounce must not be negative")
	}
	return nil
}

// ExtensionEnabled reports whether an extension is enabled.
func (c *Config) ExtensionEnabled(name string) bool {
	return slices.Contains(c.Extensions.Enabled, name)
}

// LoadFromFile loads configuration from a YAML file on top of the defaults
func LoadFromFile(path string) (*Config, error) {
	return decodeFile(path, DefaultConfig())
}

// loadLayer decodes a YAML file into a zero Config, so only the keys the
// file sets are non-zero and Merge leaves the other layers alone.
func loadLayer(path string) (*Config, error) {
	return decodeFile(path, &Config{})
}

func decodeFile(path string, config *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one (other takes precedence for non-zero values)
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	// Reasoner
	if other.Reasoner.MaxIterations != 0 {
		c.Reasoner.MaxIterations = other.Reasoner.MaxIterations
	}
	if other.Reasoner.Workers != 0 {
		c.Reasoner.Workers = other.Reasoner.Workers
	}
	if len(other.Reasoner.Rules) > 0 {
		c.Reasoner.Rules = other.Reasoner.Rules
	}
	if other.Reasoner.DisableSWRL {
		c.Reasoner.DisableSWRL = true
	}
	if other.Reasoner.Timeout != 0 {
		c.Reasoner.Timeout = other.Reasoner.Timeout
	}

	// Validator
	if len(other.Validator.Rules) > 0 {
		c.Validator.Rules = other.Validator.Rules
	}
	if other.Validator.Workers != 0 {
		c.Validator.Workers = other.Validator.Workers
	}
	if other.Validator.FailOnWarning {
		c.Validator.FailOnWarning = true
	}

	// Extensions
	if other.Extensions.Enabled != nil {
		c.Extensions.Enabled = other.Extensions.Enabled
	}

	// Export
	if other.Export.Format != "" {
		c.Export.Format = other.Export.Format
	}
	if other.Export.Profile != "" {
		c.Export.Profile = other.Export.Profile
	}

	// NATS
	if other.NATS.URL != "" {
		c.NATS.URL = other.NATS.URL
	}
	if other.NATS.Subject != "" {
		c.NATS.Subject = other.NATS.Subject
	}
	if other.NATS.Bucket != "" {
		c.NATS.Bucket = other.NATS.Bucket
	}
	if other.NATS.StoreDir != "" {
		c.NATS.StoreDir = other.NATS.StoreDir
	}

	// Storage
	if other.Storage.Backend != "" {
		c.Storage.Backend = other.Storage.Backend
	}
	if other.Storage.Path != "" {
		c.Storage.Path = other.Storage.Path
	}

	// Watch
	if other.Watch.Root != "" {
		c.Watch.Root = other.Watch.Root
	}
	if len(other.Watch.Patterns) > 0 {
		c.Watch.Patterns = other.Watch.Patterns
	}
	if other.Watch.Debounce != 0 {
		c.Watch.Debounce = other.Watch.Debounce
	}
}
