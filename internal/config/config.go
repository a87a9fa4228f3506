package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/robfig/cron/v3"
)

// EnvPrefix is stripped from environment variables before they are mapped onto config keys.
const EnvPrefix = "PORTAL_"

// Config holds the application configuration.
type Config struct {
	ServerPort int    `koanf:"port"`
	AppEnv     string `koanf:"app_env"`
	LogLevel   string `koanf:"log_level"`

	APIBaseURL string        `koanf:"api_base_url"`
	APITimeout time.Duration `koanf:"api_timeout"`

	DatabasePath   string   `koanf:"database_path"`
	DocumentsPath  string   `koanf:"documents_path"`
	AllowedOrigins []string `koanf:"allowed_origins"`

	SessionTTL       time.Duration `koanf:"session_ttl"`
	MaxLoginAttempts int           `koanf:"max_login_attempts"`
	LoginLockout     time.Duration `koanf:"login_lockout"`

	NewsPageSize int `koanf:"news_page_size"`

	CountdownTitle    string `koanf:"countdown_title"`
	CountdownTarget   string `koanf:"countdown_target"`   // RFC 3339
	CountdownSchedule string `koanf:"countdown_schedule"` // standard cron, overrides the target
}

var defaults = map[string]interface{}{
	"port":               8080,
	"app_env":            "development",
	"log_level":          "info",
	"api_base_url":       "http://localhost:8000",
	"api_timeout":        "10s",
	"database_path":      "./portal.db",
	"documents_path":     "./documents",
	"allowed_origins":    "http://localhost:3000",
	"session_ttl":        "720h",
	"max_login_attempts": 3,
	"login_lockout":      "15m",
	"news_page_size":     10,
	"countdown_title":    "Company anniversary",
	"countdown_target":   "2025-03-02T00:00:00+03:00",
}

// Load reads the optional config file and PORTAL_* environment variables, in that order.
func Load() (*Config, error) {
	k := koanf.New(".")

	path := os.Getenv(EnvPrefix + "CONFIG_FILE")
	if path == "" {
		if _, err := os.Stat("config.yaml"); err == nil {
			path = "config.yaml"
		}
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	for key, value := range defaults {
		if !k.Exists(key) {
			k.Set(key, value)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Env and flat YAML values arrive as a comma-separated string.
	if origins, ok := k.Get("allowed_origins").(string); ok {
		cfg.AllowedOrigins = splitList(origins)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the values that would otherwise fail later at request time.
func (c *Config) Validate() error {
	if c.ServerPort <= 0 || c.ServerPort > 65535 {
		return fmt.Errorf("invalid port %d", c.ServerPort)
	}
	u, err := url.Parse(c.APIBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid api_base_url %q", c.APIBaseURL)
	}
	if c.APITimeout <= 0 {
		return fmt.Errorf("api_timeout must be positive")
	}
	if c.MaxLoginAttempts <= 0 {
		return fmt.Errorf("max_login_attempts must be positive")
	}
	if c.NewsPageSize <= 0 {
		return fmt.Errorf("news_page_size must be positive")
	}
	if c.CountdownSchedule != "" {
		if _, err := cron.ParseStandard(c.CountdownSchedule); err != nil {
			return fmt.Errorf("invalid countdown_schedule: %w", err)
		}
	} else if _, err := c.CountdownTargetTime(); err != nil {
		return err
	}
	return nil
}

// CountdownTargetTime parses the fixed countdown target.
func (c *Config) CountdownTargetTime() (time.Time, error) {
	t, err := time.Parse(time.RFC3339, c.CountdownTarget)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid countdown_target %q: %w", c.CountdownTarget, err)
	}
	return t, nil
}

// IsProduction reports whether cookies should be marked Secure and logs emitted as JSON.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
