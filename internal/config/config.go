// Package config provides configuration management for the payoff CLI.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	apperrors "hedgeviz/internal/errors"
)

// Config holds all application configuration.
type Config struct {
	General     GeneralConfig `mapstructure:"general"`
	Chart       ChartConfig   `mapstructure:"chart"`
	Quote       QuoteConfig   `mapstructure:"quote"`
	Kite        KiteConfig    `mapstructure:"kite"`
	Storage     StorageConfig `mapstructure:"storage"`
	Credentials Credentials   `mapstructure:"-" json:"-"` // Loaded separately, never serialized
}

// GeneralConfig holds top-level application settings.
type GeneralConfig struct {
	DefaultBook string `mapstructure:"default_book"`
	LogLevel    string `mapstructure:"log_level"`
	LogToFile   bool   `mapstructure:"log_to_file"`
}

// ChartConfig holds payoff chart rendering settings.
type ChartConfig struct {
	Width  int  `mapstructure:"width"`
	Height int  `mapstructure:"height"`
	Color  bool `mapstructure:"color"`
}

// QuoteConfig holds quote provider settings.
type QuoteConfig struct {
	Provider       string `mapstructure:"provider"` // "yahoo", "kite"
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
	MaxRetries     int    `mapstructure:"max_retries"`
}

// KiteConfig holds Kite Connect provider settings.
type KiteConfig struct {
	Exchange string `mapstructure:"exchange"` // NSE, BSE
}

// StorageConfig holds session store settings.
type StorageConfig struct {
	Path string `mapstructure:"path"` // empty uses <config dir>/books.db
}

// Credentials holds API credentials.
type Credentials struct {
	Kite KiteCredentials `mapstructure:"kite"`
}

// KiteCredentials holds Kite Connect API credentials.
type KiteCredentials struct {
	APIKey      string `mapstructure:"api_key"`
	AccessToken string `mapstructure:"access_token"`
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/hedgeviz"
	}
	return filepath.Join(home, ".config", "hedgeviz")
}

// Load loads configuration from the specified directory.
// If configDir is empty, uses the default config directory.
// Missing files are created from templates and the load continues on
// defaults, so a first run works without any setup.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	cfg := &Config{}

	// Load main config
	if err := loadConfigFile(configDir, cfg); err != nil {
		return nil, fmt.Errorf("loading config.toml: %w", err)
	}

	// Load credentials
	if err := loadCredentials(configDir, &cfg.Credentials); err != nil {
		return nil, fmt.Errorf("loading credentials.toml: %w", err)
	}

	// Apply environment variable overrides
	applyEnvOverrides(cfg)

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func loadConfigFile(configDir string, cfg *Config) error {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			if werr := createTemplateConfig(configDir); werr != nil {
				return werr
			}
			return v.Unmarshal(cfg)
		}
		return err
	}

	return v.Unmarshal(cfg)
}

func loadCredentials(configDir string, creds *Credentials) error {
	v := viper.New()
	v.SetConfigName("credentials")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return createTemplateCredentials(configDir)
		}
		return err
	}

	return v.Unmarshal(creds)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("general.default_book", "default")
	v.SetDefault("general.log_level", "info")
	v.SetDefault("general.log_to_file", false)

	v.SetDefault("chart.width", 72)
	v.SetDefault("chart.height", 20)
	v.SetDefault("chart.color", true)

	v.SetDefault("quote.provider", "yahoo")
	v.SetDefault("quote.timeout_seconds", 10)
	v.SetDefault("quote.max_retries", 3)

	v.SetDefault("kite.exchange", "NSE")
}

func applyEnvOverrides(cfg *Config) {
	// Kite credentials
	if v := os.Getenv("KITE_API_KEY"); v != "" {
		cfg.Credentials.Kite.APIKey = v
	}
	if v := os.Getenv("KITE_ACCESS_TOKEN"); v != "" {
		cfg.Credentials.Kite.AccessToken = v
	}

	// Quote provider
	if v := os.Getenv("HEDGEVIZ_QUOTE_PROVIDER"); v != "" {
		cfg.Quote.Provider = v
	}

	// Log level
	if v := os.Getenv("HEDGEVIZ_LOG_LEVEL"); v != "" {
		cfg.General.LogLevel = v
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	switch c.Quote.Provider {
	case "", "yahoo", "kite":
	default:
		return apperrors.NewValidationError("quote.provider", c.Quote.Provider, "must be 'yahoo' or 'kite'")
	}

	if c.Quote.TimeoutSeconds < 0 {
		return apperrors.NewValidationError("quote.timeout_seconds", c.Quote.TimeoutSeconds, "must be non-negative")
	}
	if c.Quote.MaxRetries < 0 || c.Quote.MaxRetries > 10 {
		return apperrors.NewValidationError("quote.max_retries", c.Quote.MaxRetries, "must be between 0 and 10")
	}

	if c.Chart.Width < 40 || c.Chart.Width > 240 {
		return apperrors.NewValidationError("chart.width", c.Chart.Width, "must be between 40 and 240")
	}
	if c.Chart.Height < 10 || c.Chart.Height > 80 {
		return apperrors.NewValidationError("chart.height", c.Chart.Height, "must be between 10 and 80")
	}

	switch c.General.LogLevel {
	case "", "trace", "debug", "info", "warn", "error":
	default:
		return apperrors.NewValidationError("general.log_level", c.General.LogLevel, "must be one of trace, debug, info, warn, error")
	}

	return nil
}

// QuoteTimeout returns the configured quote timeout as a duration.
func (c *Config) QuoteTimeout() time.Duration {
	if c.Quote.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.Quote.TimeoutSeconds) * time.Second
}

// DBPath returns the session database path, defaulting to books.db in
// the default config directory.
func (c *Config) DBPath() string {
	if c.Storage.Path != "" {
		return c.Storage.Path
	}
	return filepath.Join(DefaultConfigDir(), "books.db")
}
