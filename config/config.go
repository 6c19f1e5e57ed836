package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for bslcheck.
type Config struct {
	Source  SourceConfig  `yaml:"source"`
	Rules   RulesConfig   `yaml:"rules"`
	Git     GitConfig     `yaml:"git"`
	Report  ReportConfig  `yaml:"report"`
	Logging LoggingConfig `yaml:"logging"`
}

// SourceConfig selects the modules to analyze.
type SourceConfig struct {
	Includes         []string `yaml:"includes"`
	Excludes         []string `yaml:"excludes"`
	RespectGitignore bool     `yaml:"respect_gitignore"`
}

// RulesConfig holds the patterns the checkers rely on.
type RulesConfig struct {
	ClientModule string `yaml:"client_module"` // Substring of the client object module path
	ServerModule string `yaml:"server_module"` // Substring of the server object module path
	ManagedForm  string `yaml:"managed_form"`  // Regexp matched against module paths
	Tag          string `yaml:"tag"`           // Regexp marking methods shared by client and server
}

// GitConfig holds diff settings.
type GitConfig struct {
	RepoDir  string        `yaml:"repo_dir"` // Empty means resolve from the source root
	Pathspec []string      `yaml:"pathspec"`
	Timeout  time.Duration `yaml:"timeout"`
}

// ReportConfig holds output settings.
type ReportConfig struct {
	LogFile string `yaml:"log_file"`
	Notify  string `yaml:"notify"` // "dialog", "console", "none"
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Source: SourceConfig{
			Includes: []string{"**/*.bsl"},
		},
		Rules: RulesConfig{
			ClientModule: "МодульОбъектаКлиент",
			ServerModule: "ObjectModule",
			ManagedForm:  `.*Форма.bsl$`,
			Tag:          `Метод присутствует в клиентском и серверном модулях`,
		},
		Git: GitConfig{
			Pathspec: []string{"*.bsl"},
			Timeout:  30 * time.Second,
		},
		Report: ReportConfig{
			LogFile: filepath.Join("Build", "code-analysis.log"),
			Notify:  "dialog",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Return defaults if no config file
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromDir loads configuration from a directory (looks for bslcheck.yaml).
func LoadFromDir(dir string) (*Config, error) {
	path := filepath.Join(dir, "bslcheck.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	path = filepath.Join(dir, ".bslcheck", "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	return DefaultConfig(), nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks patterns and enumerations before any module is read.
func (c *Config) Validate() error {
	if len(c.Source.Includes) == 0 {
		return fmt.Errorf("source.includes must not be empty")
	}
	for _, p := range append(append([]string{}, c.Source.Includes...), c.Source.Excludes...) {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("invalid glob pattern %q", p)
		}
	}

	if c.Rules.ClientModule == "" {
		return fmt.Errorf("rules.client_module must not be empty")
	}
	if c.Rules.ServerModule == "" {
		return fmt.Errorf("rules.server_module must not be empty")
	}
	if _, err := regexp.Compile(c.Rules.ManagedForm); err != nil {
		return fmt.Errorf("invalid rules.managed_form: %w", err)
	}
	if c.Rules.Tag == "" {
		return fmt.Errorf("rules.tag must not be empty")
	}
	if _, err := regexp.Compile(c.Rules.Tag); err != nil {
		return fmt.Errorf("invalid rules.tag: %w", err)
	}

	switch c.Report.Notify {
	case "dialog", "console", "none":
	default:
		return fmt.Errorf("unsupported report.notify: %s", c.Report.Notify)
	}
	if c.Report.LogFile == "" {
		return fmt.Errorf("report.log_file must not be empty")
	}

	return nil
}
