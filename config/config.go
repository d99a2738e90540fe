package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/s0up4200/apivideo/browser"
)

// Environments selectable with apivideo.environment
const (
	EnvironmentProduction = "production"
	EnvironmentSandbox    = "sandbox"
)

// MaxPageSize is the largest page the API serves
const MaxPageSize = 100

// Load loads the configuration from file, .env and environment variables.
// Without an explicit path a missing config file is not an error.
func Load(configPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error reading .env: %w", err)
	}

	v := viper.New()

	// Set default values
	setDefaults(v)
	bindEnv(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Look for config in standard locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		// Check current directory first
		v.AddConfigPath(".")

		// Check home directory
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".apivideo"))
		}

		// Check /etc
		v.AddConfigPath("/etc/apivideo/")
	}

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// api.video defaults
	v.SetDefault("apivideo.environment", EnvironmentProduction)
	v.SetDefault("apivideo.timeout", browser.DefaultTimeout)
	v.SetDefault("apivideo.max_retries", 2)
	v.SetDefault("apivideo.retry_delay", browser.DefaultRetryDelay)

	// Search defaults
	v.SetDefault("search.page_size", MaxPageSize)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
}

// bindEnv maps the supported environment variables onto config keys
func bindEnv(v *viper.Viper) {
	_ = v.BindEnv("apivideo.api_key", "APIVIDEO_API_KEY")
	_ = v.BindEnv("apivideo.environment", "APIVIDEO_ENVIRONMENT")
	_ = v.BindEnv("apivideo.base_url", "APIVIDEO_BASE_URL")
	_ = v.BindEnv("logging.level", "APIVIDEO_LOG_LEVEL")
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if cfg.APIVideo.APIKey == "" || cfg.APIVideo.APIKey == "your-api-key-here" {
		return fmt.Errorf("apivideo.api_key must be set to a valid API key")
	}

	validEnvironments := map[string]bool{
		EnvironmentProduction: true,
		EnvironmentSandbox:    true,
	}
	if !validEnvironments[cfg.APIVideo.Environment] {
		return fmt.Errorf("invalid apivideo.environment: %s (must be '%s' or '%s')",
			cfg.APIVideo.Environment, EnvironmentProduction, EnvironmentSandbox)
	}

	if cfg.APIVideo.MaxRetries < 0 {
		return fmt.Errorf("apivideo.max_retries must not be negative")
	}

	if cfg.Search.PageSize < 1 || cfg.Search.PageSize > MaxPageSize {
		return fmt.Errorf("search.page_size must be between 1 and %d", MaxPageSize)
	}

	// Validate logging level
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	// Validate logging format
	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	return nil
}

// Endpoint returns the base URL selected by base_url or environment
func (c APIVideoConfig) Endpoint() string {
	if c.BaseURL != "" {
		return c.BaseURL
	}
	if c.Environment == EnvironmentSandbox {
		return browser.SandboxBaseURL
	}
	return browser.ProductionBaseURL
}

// UseSandbox switches to the sandbox environment. A base_url pointing
// anywhere else conflicts with it.
func (c *APIVideoConfig) UseSandbox() error {
	if c.BaseURL != "" && strings.TrimRight(c.BaseURL, "/") != browser.SandboxBaseURL {
		return fmt.Errorf("sandbox environment conflicts with apivideo.base_url %s", c.BaseURL)
	}
	c.Environment = EnvironmentSandbox
	c.BaseURL = ""
	return nil
}

// BrowserOptions converts the connection settings into browser options
func (c APIVideoConfig) BrowserOptions() []browser.Option {
	opts := []browser.Option{
		browser.WithBaseURL(c.Endpoint()),
		browser.WithMaxRetries(c.MaxRetries),
	}
	if c.Timeout > 0 {
		opts = append(opts, browser.WithTimeout(c.Timeout))
	}
	if c.RetryDelay > 0 {
		opts = append(opts, browser.WithRetryDelay(c.RetryDelay))
	}
	return opts
}
