// Package config provides application configuration loading and validation.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the complete application configuration.
type Config struct {
	Server   ServerConfig
	Monobank MonobankConfig
	Refresh  RefreshConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// MonobankConfig holds settings for the Monobank rate provider.
type MonobankConfig struct {
	BaseURL    string `mapstructure:"base_url"`
	TimeoutSec int    `mapstructure:"timeout_sec"`
}

// RefreshConfig holds refresh throttle and auto-refresh scheduler settings.
type RefreshConfig struct {
	WindowSec int    `mapstructure:"window_sec"` // minimum interval between provider fetches
	Auto      bool   `mapstructure:"auto"`
	CronSpec  string `mapstructure:"cron_spec"`
}

// LoadConfig reads configuration from config files, environment variables, and defaults.
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		fmt.Printf("No .env file found or error loading it: %v\n", err)
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Config search paths
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("./internal/config")

	viper.SetEnvPrefix("RATEWATCH")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// default values
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("monobank.base_url", "https://api.monobank.ua")
	viper.SetDefault("monobank.timeout_sec", 15)
	viper.SetDefault("refresh.window_sec", 300)
	viper.SetDefault("refresh.auto", true)
	viper.SetDefault("refresh.cron_spec", "@every 5m")

	if err := viper.ReadInConfig(); err != nil {
		// It's okay if no config file, we have defaults and env
		fmt.Printf("Config file not found: %v\n", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// Validate checks that all required configuration fields are set and valid.
func (c *Config) Validate() error {
	var errs []error
	if c.Server.Port <= 0 {
		errs = append(errs, fmt.Errorf("server.port must be positive, got %d", c.Server.Port))
	}

	if c.Monobank.BaseURL == "" {
		errs = append(errs, fmt.Errorf("monobank.base_url is required"))
	}
	if c.Monobank.TimeoutSec <= 0 {
		errs = append(errs, fmt.Errorf("monobank.timeout_sec must be positive, got %d", c.Monobank.TimeoutSec))
	}

	if c.Refresh.WindowSec <= 0 {
		errs = append(errs, fmt.Errorf("refresh.window_sec must be positive, got %d", c.Refresh.WindowSec))
	}
	if c.Refresh.Auto && c.Refresh.CronSpec == "" {
		errs = append(errs, fmt.Errorf("refresh.cron_spec is required when refresh.auto is enabled"))
	}

	return errors.Join(errs...)
}
