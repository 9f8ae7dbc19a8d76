// Package config handles application configuration from a .env file, an
// optional calendarium.yaml and environment variables.
package config

import (
	"errors"
	"fmt"
	"time"
	_ "time/tzdata" // TIMEZONE must resolve on hosts without zoneinfo

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	// Server settings
	Port int    // HTTP port to listen on
	Env  string // development, staging, production

	// Database
	DatabasePath string // Path to SQLite file

	// Authentication
	APIKey string // API key for the feast upload endpoint

	// Logging
	LogLevel  string // debug, info, warn, error
	LogFormat string // json, text

	// Calendar
	FeastsPath  string // CSV, YAML or TOML feast overlay
	WatchFeasts bool   // reload the overlay when the file changes
	RefreshCron string // schedule for rebuilding the current year; empty disables it
	Timezone    string // zone used to turn the wall clock into today's date
}

// Environment constants
const (
	EnvDevelopment = "development"
	EnvStaging     = "staging"
	EnvProduction  = "production"
)

// defaults maps viper keys to their default values. Each key is also read from the
// environment variable of the same name in upper case.
var defaults = map[string]any{
	"port":          8080,
	"env":           EnvDevelopment,
	"database_path": "./data/calendarium.db",
	"api_key":       "",
	"log_level":     "info",
	"log_format":    "text",
	"feasts_path":   "./data/feasts.csv",
	"watch_feasts":  true,
	"refresh_cron":  "@daily",
	"timezone":      "UTC",
}

// Load reads configuration. Values come from, in increasing priority:
// defaults, calendarium.yaml (or the file named by CONFIG_FILE), .env and
// the process environment.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	if file := v.GetString("config_file"); file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("calendarium")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := &Config{
		Port:         v.GetInt("port"),
		Env:          v.GetString("env"),
		DatabasePath: v.GetString("database_path"),
		APIKey:       v.GetString("api_key"),
		LogLevel:     v.GetString("log_level"),
		LogFormat:    v.GetString("log_format"),
		FeastsPath:   v.GetString("feasts_path"),
		WatchFeasts:  v.GetBool("watch_feasts"),
		RefreshCron:  v.GetString("refresh_cron"),
		Timezone:     v.GetString("timezone"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required configuration is present and valid.
func (c *Config) Validate() error {
	var errs []error

	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Port))
	}

	switch c.Env {
	case EnvDevelopment, EnvStaging, EnvProduction:
	default:
		errs = append(errs, fmt.Errorf("ENV must be one of: development, staging, production; got %q", c.Env))
	}

	if c.DatabasePath == "" {
		errs = append(errs, errors.New("DATABASE_PATH is required"))
	}

	// API key is required in production
	if c.Env == EnvProduction && c.APIKey == "" {
		errs = append(errs, errors.New("API_KEY is required in production"))
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("LOG_LEVEL must be one of: debug, info, warn, error; got %q", c.LogLevel))
	}

	switch c.LogFormat {
	case "json", "text":
	default:
		errs = append(errs, fmt.Errorf("LOG_FORMAT must be one of: json, text; got %q", c.LogFormat))
	}

	if c.RefreshCron != "" {
		if _, err := cron.ParseStandard(c.RefreshCron); err != nil {
			errs = append(errs, fmt.Errorf("REFRESH_CRON is not a valid schedule: %w", err))
		}
	}

	if _, err := c.Location(); err != nil {
		errs = append(errs, fmt.Errorf("TIMEZONE: %w", err))
	}

	return errors.Join(errs...)
}

// Location returns the configured time zone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(c.Timezone)
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == EnvDevelopment
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}
