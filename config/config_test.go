package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Reasoner.MaxIterations != 64 {
		t.Errorf("expected 64 max iterations, got %d", cfg.Reasoner.MaxIterations)
	}
	if cfg.Reasoner.DisableSWRL {
		t.Error("expected SWRL rules enabled by default")
	}
	if cfg.Storage.Backend != BackendSQLite {
		t.Errorf("expected sqlite backend, got %s", cfg.Storage.Backend)
	}
	for _, ext := range []string{ExtensionSKOS, ExtensionTime, ExtensionGeo} {
		if !cfg.ExtensionEnabled(ext) {
			t.Errorf("expected extension %s enabled by default", ext)
		}
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid default config",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "zero iterations",
			modify:  func(c *Config) { c.Reasoner.MaxIterations = 0 },
			wantErr: true,
		},
		{
			name:    "zero reasoner workers",
			modify:  func(c *Config) { c.Reasoner.Workers = 0 },
			wantErr: true,
		},
		{
			name:    "zero validator workers",
			modify:  func(c *Config) { c.Validator.Workers = 0 },
			wantErr: true,
		},
		{
			name:    "unknown extension",
			modify:  func(c *Config) { c.Extensions.Enabled = []string{"foaf"} },
			wantErr: true,
		},
		{
			name:    "no extensions",
			modify:  func(c *Config) { c.Extensions.Enabled = nil },
			wantErr: false,
		},
		{
			name: "nats backend without url or store dir",
			modify: func(c *Config) {
				c.Storage.Backend = BackendNATS
				c.NATS.StoreDir = ""
			},
			wantErr: true,
		},
		{
			name:    "nats backend with embedded server",
			modify:  func(c *Config) { c.Storage.Backend = BackendNATS },
			wantErr: false,
		},
		{
			name: "nats backend without bucket",
			modify: func(c *Config) {
				c.Storage.Backend = BackendNATS
				c.NATS.Bucket = ""
			},
			wantErr: true,
		},
		{
			name: "nats backend with url",
			modify: func(c *Config) {
				c.Storage.Backend = BackendNATS
				c.NATS.URL = "nats://localhost:4222"
			},
			wantErr: false,
		},
		{
			name:    "sqlite backend without path",
			modify:  func(c *Config) { c.Storage.Path = "" },
			wantErr: true,
		},
		{
			name:    "unknown backend",
			modify:  func(c *Config) { c.Storage.Backend = "postgres" },
			wantErr: true,
		},
		{
			name:    "negative debounce",
			modify:  func(c *Config) { c.Watch.Debounce = -time.Second },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	content := `
reasoner:
  max_iterations: 8
  workers: 2
  disable_swrl: true
  rules: [SubClassOf, ClassAssertion]
  timeout: 30s
validator:
  fail_on_warning: true
extensions:
  enabled: [skos]
export:
  format: jsonld
nats:
  url: "nats://test:4222"
storage:
  backend: nats
watch:
  patterns: ["ontologies/**/*.owx"]
  debounce: 1s
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}

	if cfg.Reasoner.MaxIterations != 8 {
		t.Errorf("expected 8 max iterations, got %d", cfg.Reasoner.MaxIterations)
	}
	if !cfg.Reasoner.DisableSWRL {
		t.Error("expected SWRL disabled")
	}
	if len(cfg.Reasoner.Rules) != 2 {
		t.Errorf("expected 2 reasoner rules, got %d", len(cfg.Reasoner.Rules))
	}
	if cfg.Reasoner.Timeout != 30*time.Second {
		t.Errorf("expected timeout 30s, got %v", cfg.Reasoner.Timeout)
	}
	if !cfg.Validator.FailOnWarning {
		t.Error("expected fail_on_warning")
	}
	if cfg.Validator.Workers != 4 {
		t.Errorf("expected default validator workers, got %d", cfg.Validator.Workers)
	}
	if !cfg.ExtensionEnabled(ExtensionSKOS) || cfg.ExtensionEnabled(ExtensionGeo) {
		t.Errorf("expected only skos enabled, got %v", cfg.Extensions.Enabled)
	}
	if cfg.Export.Format != "jsonld" {
		t.Errorf("expected jsonld export, got %s", cfg.Export.Format)
	}
	if cfg.NATS.URL != "nats://test:4222" {
		t.Errorf("expected NATS URL nats://test:4222, got %s", cfg.NATS.URL)
	}
	if cfg.NATS.Bucket != "SEMOWL" {
		t.Errorf("expected default bucket, got %s", cfg.NATS.Bucket)
	}
	if cfg.Watch.Debounce != time.Second {
		t.Errorf("expected debounce 1s, got %v", cfg.Watch.Debounce)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("loaded config invalid: %v", err)
	}
}

func TestLoadFromFileErrors(t *testing.T) {
	if _, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("reasoner: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFromFile(bad); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestConfigMerge(t *testing.T) {
	base := DefaultConfig()
	override := &Config{
		Reasoner: ReasonerConfig{
			Workers: 16,
		},
		Storage: StorageConfig{
			Path: "/override/db.sqlite",
		},
		Watch: WatchConfig{
			Patterns: []string{"*.owx"},
		},
	}

	base.Merge(override)

	if base.Reasoner.Workers != 16 {
		t.Errorf("expected 16 workers, got %d", base.Reasoner.Workers)
	}
	// Fields the override leaves zero keep their base values
	if base.Reasoner.MaxIterations != 64 {
		t.Errorf("expected max iterations to remain default, got %d", base.Reasoner.MaxIterations)
	}
	if base.Reasoner.DisableSWRL {
		t.Error("a zero override must not disable SWRL")
	}
	if len(base.Extensions.Enabled) != 3 {
		t.Errorf("expected extensions to remain default, got %v", base.Extensions.Enabled)
	}
	if base.Storage.Path != "/override/db.sqlite" {
		t.Errorf("expected storage path /override/db.sqlite, got %s", base.Storage.Path)
	}
	if base.Storage.Backend != BackendSQLite {
		t.Errorf("expected backend to remain sqlite, got %s", base.Storage.Backend)
	}
	if len(base.Watch.Patterns) != 1 {
		t.Errorf("expected overridden watch patterns, got %v", base.Watch.Patterns)
	}

	base.Merge(nil)
}

func TestConfigSaveToFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "subdir", "config.yaml")

	cfg := DefaultConfig()
	cfg.Export.Profile = "inferred"

	if err := cfg.SaveToFile(configPath); err != nil {
		t.Fatalf("SaveToFile() error = %v", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Error("config file was not created")
	}

	loaded, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("failed to load saved config: %v", err)
	}
	if loaded.Export.Profile != "inferred" {
		t.Errorf("expected profile inferred, got %s", loaded.Export.Profile)
	}
}
