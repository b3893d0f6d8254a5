package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/ajustes-contables/rt6/internal/indices"
)

// FileName is the workspace configuration file.
const FileName = "rt6.yaml"

// EnvPrefix prefixes every environment override, e.g. RT6_CLOSING_DATE.
const EnvPrefix = "RT6"

const dateFormat = "2006-01-02"

// Config represents the top-level rt6.yaml configuration.
type Config struct {
	Business BusinessConfig `yaml:"business"`
	Period   PeriodConfig   `yaml:"period"`
	RT6      RT6Config      `yaml:"rt6"`
	Log      LogConfig      `yaml:"log"`
	Git      GitConfig      `yaml:"git"`
}

// BusinessConfig identifies the business entity.
type BusinessConfig struct {
	Name       string `yaml:"name"`
	EntityType string `yaml:"entity_type"`
}

// PeriodConfig defines the fiscal year being restated.
type PeriodConfig struct {
	FiscalYearStart string `yaml:"fiscal_year_start"` // "MM-DD" format, e.g. "01-01"
	ClosingDate     string `yaml:"closing_date"`      // "YYYY-MM-DD"
}

// RT6Config tunes the restatement heuristics.
type RT6Config struct {
	CapitalRubros        []string `yaml:"capital_rubros,omitempty"`
	FXKeywords           []string `yaml:"fx_keywords,omitempty"`
	ClosingEntryKeywords []string `yaml:"closing_entry_keywords,omitempty"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Format string `yaml:"format"` // "text" or "json"
	Level  string `yaml:"level"`
}

// GitConfig controls git integration.
type GitConfig struct {
	AutoCommit  bool   `yaml:"auto_commit"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// envOverrides are read from RT6_* variables and win over the file.
type envOverrides struct {
	ClosingDate   string `envconfig:"CLOSING_DATE"`
	LogFormat     string `envconfig:"LOG_FORMAT"`
	LogLevel      string `envconfig:"LOG_LEVEL"`
	GitAutoCommit *bool  `envconfig:"GIT_AUTO_COMMIT"`
}

// Path returns the config path inside a workspace.
func Path(repoRoot string) string {
	return filepath.Join(repoRoot, FileName)
}

// Load reads an rt6.yaml file from disk and applies environment overrides.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ApplyEnv overlays RT6_* environment variables onto c.
func (c *Config) ApplyEnv() error {
	var env envOverrides
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return fmt.Errorf("reading environment: %w", err)
	}
	if env.ClosingDate != "" {
		c.Period.ClosingDate = env.ClosingDate
	}
	if env.LogFormat != "" {
		c.Log.Format = env.LogFormat
	}
	if env.LogLevel != "" {
		c.Log.Level = env.LogLevel
	}
	if env.GitAutoCommit != nil {
		c.Git.AutoCommit = *env.GitAutoCommit
	}
	return nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// ClosingDate parses the configured closing date.
func (c *Config) ClosingDate() (time.Time, error) {
	if c.Period.ClosingDate == "" {
		return time.Time{}, fmt.Errorf("period.closing_date is not set")
	}
	d, err := time.Parse(dateFormat, c.Period.ClosingDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing closing date %q: %w", c.Period.ClosingDate, err)
	}
	return d, nil
}

// ClosingPeriod is the index period of the closing date.
func (c *Config) ClosingPeriod() (indices.Period, error) {
	d, err := c.ClosingDate()
	if err != nil {
		return "", err
	}
	return indices.PeriodOf(d), nil
}

// Default returns a Config with sensible defaults for a new workspace whose
// fiscal year closes on December 31 of year.
func Default(businessName, entityType string, year int) *Config {
	return &Config{
		Business: BusinessConfig{
			Name:       businessName,
			EntityType: entityType,
		},
		Period: PeriodConfig{
			FiscalYearStart: "01-01",
			ClosingDate:     fmt.Sprintf("%04d-12-31", year),
		},
		Log: LogConfig{
			Format: "text",
			Level:  "info",
		},
		Git: GitConfig{
			AutoCommit:  false,
			AuthorName:  "RT6",
			AuthorEmail: "rt6@localhost",
		},
	}
}
