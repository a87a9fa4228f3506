package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, "http://localhost:8000", cfg.APIBaseURL)
	assert.Equal(t, 10*time.Second, cfg.APITimeout)
	assert.Equal(t, 3, cfg.MaxLoginAttempts)
	assert.Equal(t, 15*time.Minute, cfg.LoginLockout)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.AllowedOrigins)
	assert.False(t, cfg.IsProduction())

	target, err := cfg.CountdownTargetTime()
	require.NoError(t, err)
	assert.Equal(t, 2025, target.Year())
	assert.Equal(t, time.March, target.Month())
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PORTAL_PORT", "9090")
	t.Setenv("PORTAL_APP_ENV", "production")
	t.Setenv("PORTAL_API_BASE_URL", "https://staff.example.com/api")
	t.Setenv("PORTAL_API_TIMEOUT", "3s")
	t.Setenv("PORTAL_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")
	t.Setenv("PORTAL_MAX_LOGIN_ATTEMPTS", "5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.ServerPort)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "https://staff.example.com/api", cfg.APIBaseURL)
	assert.Equal(t, 3*time.Second, cfg.APITimeout)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.AllowedOrigins)
	assert.Equal(t, 5, cfg.MaxLoginAttempts)
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := dir + "/portal.yaml"
	require.NoError(t, writeFile(path, "port: 7000\nnews_page_size: 5\ncountdown_title: Launch\n"))
	t.Setenv("PORTAL_CONFIG_FILE", path)
	t.Setenv("PORTAL_NEWS_PAGE_SIZE", "7")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 7000, cfg.ServerPort)
	assert.Equal(t, "Launch", cfg.CountdownTitle)
	assert.Equal(t, 7, cfg.NewsPageSize, "environment wins over the file")
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"relative backend url", "PORTAL_API_BASE_URL", "not a url"},
		{"port out of range", "PORTAL_PORT", "70000"},
		{"zero attempts", "PORTAL_MAX_LOGIN_ATTEMPTS", "0"},
		{"bad countdown target", "PORTAL_COUNTDOWN_TARGET", "next spring"},
		{"bad countdown schedule", "PORTAL_COUNTDOWN_SCHEDULE", "every day"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Chdir(t.TempDir())
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestScheduleSkipsTargetValidation(t *testing.T) {
	cfg := Config{
		ServerPort:        8080,
		APIBaseURL:        "http://localhost:8000",
		APITimeout:        time.Second,
		MaxLoginAttempts:  3,
		NewsPageSize:      10,
		CountdownSchedule: "0 9 * * 1",
	}
	assert.NoError(t, cfg.Validate())
}

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o644)
}
