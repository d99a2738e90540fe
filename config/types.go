package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	APIVideo APIVideoConfig `mapstructure:"apivideo"`
	Search   SearchConfig   `mapstructure:"search"`
	Filters  FilterConfig   `mapstructure:"filters"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// APIVideoConfig holds api.video API connection details
type APIVideoConfig struct {
	APIKey      string        `mapstructure:"api_key"`
	Environment string        `mapstructure:"environment"`
	BaseURL     string        `mapstructure:"base_url"`
	Timeout     time.Duration `mapstructure:"timeout"`
	MaxRetries  int           `mapstructure:"max_retries"`
	RetryDelay  time.Duration `mapstructure:"retry_delay"`
}

// SearchConfig contains list defaults
type SearchConfig struct {
	PageSize int `mapstructure:"page_size"`
}

// FilterConfig maps filter names to expressions usable with --filter
type FilterConfig map[string]string

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}
