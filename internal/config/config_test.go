package config

import (
	"os"
	"path/filepath"
	"testing"
)

var envKeys = []string{
	"PORT", "ENV", "DATABASE_PATH", "API_KEY", "LOG_LEVEL", "LOG_FORMAT",
	"FEASTS_PATH", "WATCH_FEASTS", "REFRESH_CRON", "TIMEZONE", "CONFIG_FILE",
}

// clearEnv unsets every configuration variable for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range envKeys {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() with defaults failed: %v", err)
	}

	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}
	if cfg.Env != EnvDevelopment {
		t.Errorf("Env = %q, want %q", cfg.Env, EnvDevelopment)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "info")
	}
	if cfg.LogFormat != "text" {
		t.Errorf("LogFormat = %q, want %q", cfg.LogFormat, "text")
	}
	if cfg.FeastsPath != "./data/feasts.csv" {
		t.Errorf("FeastsPath = %q", cfg.FeastsPath)
	}
	if !cfg.WatchFeasts {
		t.Error("WatchFeasts = false, want true")
	}
	if cfg.RefreshCron != "@daily" {
		t.Errorf("RefreshCron = %q, want @daily", cfg.RefreshCron)
	}
}

func TestLoad_FromEnv(t *testing.T) {
	clearEnv(t)

	t.Setenv("PORT", "3000")
	t.Setenv("ENV", "production")
	t.Setenv("DATABASE_PATH", "/data/test.db")
	t.Setenv("API_KEY", "secret-key-123")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("FEASTS_PATH", "/etc/calendarium/feasts.yaml")
	t.Setenv("WATCH_FEASTS", "false")
	t.Setenv("REFRESH_CRON", "0 3 * * *")
	t.Setenv("TIMEZONE", "America/Chicago")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Port != 3000 {
		t.Errorf("Port = %d, want 3000", cfg.Port)
	}
	if cfg.Env != EnvProduction {
		t.Errorf("Env = %q, want %q", cfg.Env, EnvProduction)
	}
	if cfg.DatabasePath != "/data/test.db" {
		t.Errorf("DatabasePath = %q, want %q", cfg.DatabasePath, "/data/test.db")
	}
	if cfg.APIKey != "secret-key-123" {
		t.Errorf("APIKey = %q, want %q", cfg.APIKey, "secret-key-123")
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "debug")
	}
	if cfg.FeastsPath != "/etc/calendarium/feasts.yaml" {
		t.Errorf("FeastsPath = %q", cfg.FeastsPath)
	}
	if cfg.WatchFeasts {
		t.Error("WatchFeasts = true, want false")
	}
	if cfg.RefreshCron != "0 3 * * *" {
		t.Errorf("RefreshCron = %q", cfg.RefreshCron)
	}
	if loc, err := cfg.Location(); err != nil || loc.String() != "America/Chicago" {
		t.Errorf("Location() = %v, %v", loc, err)
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "calendarium.yaml")
	content := "port: 9090\nfeasts_path: /srv/feasts.toml\nlog_format: json\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("LOG_FORMAT", "text") // environment wins over the file

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Port != 9090 {
		t.Errorf("Port = %d, want 9090", cfg.Port)
	}
	if cfg.FeastsPath != "/srv/feasts.toml" {
		t.Errorf("FeastsPath = %q", cfg.FeastsPath)
	}
	if cfg.LogFormat != "text" {
		t.Errorf("LogFormat = %q, want text", cfg.LogFormat)
	}
}

func TestLoad_Invalid(t *testing.T) {
	clearEnv(t)
	t.Setenv("ENV", "production") // no API key

	if _, err := Load(); err == nil {
		t.Error("Load() should fail without API_KEY in production")
	}
}

func validConfig() Config {
	return Config{
		Port:         8080,
		Env:          EnvDevelopment,
		DatabasePath: "./data/test.db",
		LogLevel:     "info",
		LogFormat:    "text",
		RefreshCron:  "@daily",
		Timezone:     "UTC",
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"valid development config", func(c *Config) {}, false},
		{"valid production config", func(c *Config) {
			c.Env, c.APIKey, c.LogFormat = EnvProduction, "required-in-prod", "json"
		}, false},
		{"production requires API key", func(c *Config) { c.Env = EnvProduction }, true},
		{"invalid port - too low", func(c *Config) { c.Port = 0 }, true},
		{"invalid port - too high", func(c *Config) { c.Port = 70000 }, true},
		{"invalid environment", func(c *Config) { c.Env = "invalid" }, true},
		{"invalid log level", func(c *Config) { c.LogLevel = "verbose" }, true},
		{"invalid log format", func(c *Config) { c.LogFormat = "xml" }, true},
		{"empty database path", func(c *Config) { c.DatabasePath = "" }, true},
		{"invalid cron", func(c *Config) { c.RefreshCron = "every day" }, true},
		{"empty cron disables refresh", func(c *Config) { c.RefreshCron = "" }, false},
		{"unknown timezone", func(c *Config) { c.Timezone = "Mars/Olympus" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_IsDevelopment(t *testing.T) {
	cfg := &Config{Env: EnvDevelopment}
	if !cfg.IsDevelopment() {
		t.Error("IsDevelopment() = false, want true")
	}

	cfg.Env = EnvProduction
	if cfg.IsDevelopment() || !cfg.IsProduction() {
		t.Error("production config reported as development")
	}
}
