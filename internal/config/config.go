package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"stockwatch/internal/model"
)

// MaxAlertRules bounds how many alert rules may coexist.
const MaxAlertRules = 5

var symbolPattern = regexp.MustCompile(`^\d{6}$`)

// Config holds all application configuration.
type Config struct {
	Symbol       string            `yaml:"symbol" envconfig:"SYMBOL"`
	NotifyTimes  []string          `yaml:"notify_times" envconfig:"NOTIFY_TIMES"`
	Periods      []int             `yaml:"periods" envconfig:"PERIODS"`
	DataFile     string            `yaml:"data_file" envconfig:"DATA_FILE"`
	Alerts       []model.AlertRule `yaml:"alerts" ignored:"true"`
	RunAtStartup bool              `yaml:"run_at_startup" envconfig:"RUN_AT_STARTUP"`

	Telegram struct {
		BotToken string `yaml:"bot_token" envconfig:"TELEGRAM_BOT_TOKEN"`
		ChatID   string `yaml:"chat_id" envconfig:"TELEGRAM_CHAT_ID"`
	} `yaml:"telegram"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path" envconfig:"SQLITE_PATH"`
	} `yaml:"database"`
	Chart struct {
		Path string `yaml:"path" envconfig:"CHART_PATH"`
	} `yaml:"chart"`
	Proxy string `yaml:"proxy" envconfig:"HTTPS_PROXY"`
}

// ValidationError reports one rejected configuration field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Load reads config from a YAML file, then applies environment
// variable overrides (STOCKWATCH_* prefix) and defaults. Validation
// is a separate step so callers decide how rejection is handled.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := envconfig.Process("stockwatch", cfg); err != nil {
		return nil, fmt.Errorf("env overrides: %w", err)
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Symbol == "" {
		c.Symbol = "005930"
	}
	if len(c.NotifyTimes) == 0 {
		c.NotifyTimes = []string{"09:00", "10:00", "11:00", "12:00", "13:00", "14:00", "15:00", "15:30"}
	}
	if len(c.Periods) == 0 {
		c.Periods = []int{20, 120, 250}
	}
	if c.DataFile == "" {
		c.DataFile = "data/stock_data.csv"
	}
	if len(c.Alerts) == 0 {
		c.Alerts = []model.AlertRule{{Period: 20, MaxDropPct: 5.0, MinRisePct: 5.0}}
	}
}

// Validate checks every user-facing field. It returns the first
// violation as a *ValidationError.
func (c *Config) Validate() error {
	if !symbolPattern.MatchString(c.Symbol) {
		return &ValidationError{Field: "symbol", Reason: "must be exactly 6 digits"}
	}

	if len(c.NotifyTimes) == 0 {
		return &ValidationError{Field: "notify_times", Reason: "at least one trigger time is required"}
	}
	for _, t := range c.NotifyTimes {
		if _, err := time.Parse("15:04", t); err != nil {
			return &ValidationError{Field: "notify_times", Reason: fmt.Sprintf("%q is not a valid HH:MM time", t)}
		}
	}

	if len(c.Periods) == 0 {
		return &ValidationError{Field: "periods", Reason: "at least one analysis period is required"}
	}
	for _, p := range c.Periods {
		if p <= 0 {
			return &ValidationError{Field: "periods", Reason: fmt.Sprintf("%d is not a positive integer", p)}
		}
	}

	if c.DataFile == "" {
		return &ValidationError{Field: "data_file", Reason: "output file path is required"}
	}
	if dir := filepath.Dir(c.DataFile); dir != "." {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			return &ValidationError{Field: "data_file", Reason: fmt.Sprintf("parent directory %q does not exist", dir)}
		}
	}

	if len(c.Alerts) == 0 {
		return &ValidationError{Field: "alerts", Reason: "at least one alert rule is required"}
	}
	if len(c.Alerts) > MaxAlertRules {
		return &ValidationError{Field: "alerts", Reason: fmt.Sprintf("at most %d alert rules are allowed", MaxAlertRules)}
	}
	for i, rule := range c.Alerts {
		if rule.Period <= 0 {
			return &ValidationError{Field: fmt.Sprintf("alerts[%d].period", i), Reason: "must be a positive integer"}
		}
		if rule.MaxDropPct < 0 {
			return &ValidationError{Field: fmt.Sprintf("alerts[%d].max_drop_pct", i), Reason: "must not be negative"}
		}
		if rule.MinRisePct < 0 {
			return &ValidationError{Field: fmt.Sprintf("alerts[%d].min_rise_pct", i), Reason: "must not be negative"}
		}
	}

	return nil
}

// MaxPeriod returns the largest configured period across analysis
// windows and alert rules, used to size the historical backfill.
func (c *Config) MaxPeriod() int {
	max := 0
	for _, p := range c.Periods {
		if p > max {
			max = p
		}
	}
	for _, r := range c.Alerts {
		if r.Period > max {
			max = r.Period
		}
	}
	return max
}

// AnalysisPeriods returns the union of display periods and alert rule
// periods, deduplicated, so the analyzer covers every consumer.
func (c *Config) AnalysisPeriods() []int {
	seen := make(map[int]bool)
	var periods []int
	for _, p := range c.Periods {
		if !seen[p] {
			seen[p] = true
			periods = append(periods, p)
		}
	}
	for _, r := range c.Alerts {
		if !seen[r.Period] {
			seen[r.Period] = true
			periods = append(periods, r.Period)
		}
	}
	return periods
}
