package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Rule declares one recurring action the scheduler fires on a cron spec.
type Rule struct {
	Cron    string  `yaml:"cron"`
	Action  string  `yaml:"action"` // "deposit", "withdraw" or "transfer"
	Account string  `yaml:"account"`
	From    string  `yaml:"from"`
	To      string  `yaml:"to"`
	Amount  float64 `yaml:"amount"`
}

// Config holds all application configuration.
type Config struct {
	Budget struct {
		File       string `yaml:"file"`
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"budget"`
	Script struct {
		Path string `yaml:"path"`
	} `yaml:"script"`
	Schedule []Rule `yaml:"schedule"`
	RunOnce  bool   `yaml:"run_once"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides. A missing file just yields the defaults.
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

	// Environment variable overrides
	if v := os.Getenv("BUDGET_FILE"); v != "" {
		cfg.Budget.File = v
	}
	if v := os.Getenv("BUDGET_SQLITE_PATH"); v != "" {
		cfg.Budget.SQLitePath = v
	}
	if v := os.Getenv("SCRIPT_PATH"); v != "" {
		cfg.Script.Path = v
	}
	if os.Getenv("RUN_ONCE") == "true" {
		cfg.RunOnce = true
	}

	// Defaults
	if cfg.Budget.File == "" && cfg.Budget.SQLitePath == "" {
		cfg.Budget.File = "data/budget.yaml"
	}

	return cfg, nil
}

// Validate checks the schedule rules. An empty schedule is fine; the
// daemon then only serves scripted and one-shot runs.
func (c *Config) Validate() error {
	for i, r := range c.Schedule {
		if r.Cron == "" {
			return fmt.Errorf("schedule[%d]: cron spec is required", i)
		}
		switch r.Action {
		case "deposit":
		case "withdraw":
			if r.Account == "" {
				return fmt.Errorf("schedule[%d]: withdraw requires an account", i)
			}
		case "transfer":
			if r.From == "" {
				return fmt.Errorf("schedule[%d]: transfer requires a source account", i)
			}
		default:
			return fmt.Errorf("schedule[%d]: unknown action %q", i, r.Action)
		}
		if r.Amount <= 0 {
			return fmt.Errorf("schedule[%d]: amount must be positive", i)
		}
	}
	return nil
}
