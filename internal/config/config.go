package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all sitewise configuration.
type Config struct {
	// Site layout conventions
	Site SiteConfig `yaml:"site"`

	// Report output
	Report ReportConfig `yaml:"report"`

	// Watch mode
	Watch WatchConfig `yaml:"watch"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// SiteConfig describes where the audited site keeps its sources. Relative
// paths are resolved against the workspace root.
type SiteConfig struct {
	// Domain is the host treated as internal when classifying links.
	// Empty means every absolute link counts as external.
	Domain       string `yaml:"domain"`
	TemplatesDir string `yaml:"templates_dir"`
	StaticDir    string `yaml:"static_dir"`
	BaseTemplate string `yaml:"base_template"`
	Stylesheet   string `yaml:"stylesheet"`
}

// ReportConfig configures report destinations and the default format.
type ReportConfig struct {
	AuditFile    string `yaml:"audit_file"`
	PerfFile     string `yaml:"perf_file"`
	OptimizeFile string `yaml:"optimize_file"`
	Format       string `yaml:"format"` // markdown, html, term
}

// WatchConfig configures the change watcher.
type WatchConfig struct {
	// Debounce is how long a path must stay quiet before it re-audits.
	Debounce string `yaml:"debounce"`
	// Sweep is how often settled paths are collected.
	Sweep string `yaml:"sweep"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, text
	File   string `yaml:"file"`
}

// DefaultConfig returns the default configuration. The defaults match the
// portfolio site layout, so the tool runs without any config file present.
func DefaultConfig() *Config {
	return &Config{
		Site: SiteConfig{
			Domain:       "",
			TemplatesDir: "templates",
			StaticDir:    "static",
			BaseTemplate: filepath.Join("templates", "base.html"),
			Stylesheet:   filepath.Join("static", "css", "styles.css"),
		},

		Report: ReportConfig{
			AuditFile:    "accessibility_report.md",
			PerfFile:     "performance_test_report.md",
			OptimizeFile: "performance_report.md",
			Format:       "markdown",
		},

		Watch: WatchConfig{
			Debounce: "500ms",
			Sweep:    "100ms",
		},

		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			File:   "",
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
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Override with environment variables
	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if domain := os.Getenv("SITEWISE_DOMAIN"); domain != "" {
		c.Site.Domain = domain
	}
	if dir := os.Getenv("SITEWISE_TEMPLATES_DIR"); dir != "" {
		c.Site.TemplatesDir = dir
	}
	if dir := os.Getenv("SITEWISE_STATIC_DIR"); dir != "" {
		c.Site.StaticDir = dir
	}
	if format := os.Getenv("SITEWISE_FORMAT"); format != "" {
		c.Report.Format = format
	}
	if level := os.Getenv("SITEWISE_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
}

// Resolve returns a copy with every relative site path joined to root.
// Absolute paths and an empty root pass through unchanged.
func (c *Config) Resolve(root string) *Config {
	out := *c
	if root == "" {
		return &out
	}
	join := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(root, p)
	}
	out.Site.TemplatesDir = join(c.Site.TemplatesDir)
	out.Site.StaticDir = join(c.Site.StaticDir)
	out.Site.BaseTemplate = join(c.Site.BaseTemplate)
	out.Site.Stylesheet = join(c.Site.Stylesheet)
	return &out
}

// DebounceInterval returns the watch debounce as a duration.
func (c *Config) DebounceInterval() time.Duration {
	d, err := time.ParseDuration(c.Watch.Debounce)
	if err != nil {
		return 500 * time.Millisecond
	}
	return d
}

// SweepInterval returns the watch sweep tick as a duration.
func (c *Config) SweepInterval() time.Duration {
	d, err := time.ParseDuration(c.Watch.Sweep)
	if err != nil {
		return 100 * time.Millisecond
	}
	return d
}

// ValidFormats lists all supported report formats.
var ValidFormats = []string{"markdown", "html", "term"}

// Validate validates the configuration.
func (c *Config) Validate() error {
	validFormat := false
	for _, f := range ValidFormats {
		if c.Report.Format == f {
			validFormat = true
			break
		}
	}
	if !validFormat {
		return fmt.Errorf("invalid report format: %s (valid: %v)", c.Report.Format, ValidFormats)
	}

	if _, err := time.ParseDuration(c.Watch.Debounce); c.Watch.Debounce != "" && err != nil {
		return fmt.Errorf("invalid watch debounce: %w", err)
	}
	if _, err := time.ParseDuration(c.Watch.Sweep); c.Watch.Sweep != "" && err != nil {
		return fmt.Errorf("invalid watch sweep: %w", err)
	}

	return nil
}
