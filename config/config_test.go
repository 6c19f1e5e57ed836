package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if len(cfg.Source.Includes) != 1 || cfg.Source.Includes[0] != "**/*.bsl" {
		t.Errorf("expected Includes=[**/*.bsl], got %v", cfg.Source.Includes)
	}
	if cfg.Rules.ClientModule != "МодульОбъектаКлиент" {
		t.Errorf("expected ClientModule=МодульОбъектаКлиент, got %s", cfg.Rules.ClientModule)
	}
	if cfg.Rules.ServerModule != "ObjectModule" {
		t.Errorf("expected ServerModule=ObjectModule, got %s", cfg.Rules.ServerModule)
	}
	if cfg.Report.LogFile != filepath.Join("Build", "code-analysis.log") {
		t.Errorf("unexpected LogFile %s", cfg.Report.LogFile)
	}
	if cfg.Git.Timeout != 30*time.Second {
		t.Errorf("expected Timeout=30s, got %v", cfg.Git.Timeout)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestLoad_NonExistent(t *testing.T) {
	cfg, err := Load("/nonexistent/path/config.yaml")
	if err != nil {
		t.Errorf("expected no error for non-existent file, got %v", err)
	}
	if cfg == nil {
		t.Error("expected default config, got nil")
	}
}

func TestLoad_ValidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "bslcheck.yaml")

	content := `
source:
  excludes: ["Templates/**"]
rules:
  server_module: МодульОбъекта
git:
  timeout: 5s
report:
  notify: console
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Rules.ServerModule != "МодульОбъекта" {
		t.Errorf("expected ServerModule=МодульОбъекта, got %s", cfg.Rules.ServerModule)
	}
	if cfg.Rules.ClientModule != "МодульОбъектаКлиент" {
		t.Errorf("expected default ClientModule to survive, got %s", cfg.Rules.ClientModule)
	}
	if len(cfg.Source.Excludes) != 1 || cfg.Source.Excludes[0] != "Templates/**" {
		t.Errorf("unexpected Excludes %v", cfg.Source.Excludes)
	}
	if cfg.Git.Timeout != 5*time.Second {
		t.Errorf("expected Timeout=5s, got %v", cfg.Git.Timeout)
	}
	if cfg.Report.Notify != "console" {
		t.Errorf("expected Notify=console, got %s", cfg.Report.Notify)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "bslcheck.yaml")
	if err := os.WriteFile(configPath, []byte("rules: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(configPath); err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestLoadFromDir(t *testing.T) {
	tmpDir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(tmpDir, ".bslcheck"), 0755); err != nil {
		t.Fatal(err)
	}

	content := `
report:
  log_file: out/check.log
`
	if err := os.WriteFile(filepath.Join(tmpDir, ".bslcheck", "config.yaml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromDir(tmpDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Report.LogFile != "out/check.log" {
		t.Errorf("expected LogFile=out/check.log, got %s", cfg.Report.LogFile)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bslcheck.yaml")

	cfg := DefaultConfig()
	cfg.Rules.Tag = "@shared"
	if err := cfg.Save(path); err != nil {
		t.Fatal(err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Rules.Tag != "@shared" {
		t.Errorf("expected Tag=@shared, got %s", loaded.Rules.Tag)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		errMsg string
	}{
		{"empty includes", func(c *Config) { c.Source.Includes = nil }, "source.includes"},
		{"bad glob", func(c *Config) { c.Source.Excludes = []string{"[a"} }, "invalid glob"},
		{"empty client", func(c *Config) { c.Rules.ClientModule = "" }, "client_module"},
		{"empty server", func(c *Config) { c.Rules.ServerModule = "" }, "server_module"},
		{"bad managed form", func(c *Config) { c.Rules.ManagedForm = "(" }, "managed_form"},
		{"empty tag", func(c *Config) { c.Rules.Tag = "" }, "rules.tag"},
		{"bad notify", func(c *Config) { c.Report.Notify = "popup" }, "report.notify"},
		{"empty log", func(c *Config) { c.Report.LogFile = "" }, "log_file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("expected error containing %q, got %v", tt.errMsg, err)
			}
		})
	}
}
