package config

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("APP_NAME", "talent-hive")
	t.Setenv("APP_ENV", "test")
	t.Setenv("HTTP_PORT", "8080")
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("APP_NAME", "")
	t.Setenv("APP_ENV", "")
	t.Setenv("HTTP_PORT", "")

	_, err := Load()
	require.Error(t, err)
	assert.True(t, errors.Is(err, errMissingRequiredEnv))
	assert.Contains(t, err.Error(), "APP_NAME")
	assert.Contains(t, err.Error(), "HTTP_PORT")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)
	t.Setenv("EMAIL_HOST", "")
	t.Setenv("EMAIL_USER", "hr@talenthive.test")
	t.Setenv("EMAIL_FROM", "")
	t.Setenv("EMAIL_FROM_NAME", "")
	t.Setenv("RESOURCES_FRESHNESS_HOURS", "")
	t.Setenv("DISPATCH_WORKERS", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DefaultFreshnessWindow, cfg.Resources.FreshnessWindow)
	assert.Equal(t, 7*24*time.Hour, cfg.Resources.FreshnessWindow)
	assert.False(t, cfg.SMTP.Enabled())
	assert.Equal(t, 587, cfg.SMTP.Port)
	assert.Equal(t, "TalentHive", cfg.SMTP.FromName)
	assert.Equal(t, "hr@talenthive.test", cfg.SMTP.From)
	assert.Equal(t, 4, cfg.Dispatch.Workers)
	assert.Equal(t, 30*time.Second, cfg.Dispatch.TaskTimeout)
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("RESOURCES_FRESHNESS_HOURS", "48")
	t.Setenv("EMAIL_HOST", "smtp.example.com")
	t.Setenv("EMAIL_PORT", "465")
	t.Setenv("DISPATCH_WORKERS", "not-a-number")
	t.Setenv("WS_ALLOWED_ORIGINS", " https://talenthive.test, ,https://admin.talenthive.test ")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 48*time.Hour, cfg.Resources.FreshnessWindow)
	assert.True(t, cfg.SMTP.Enabled())
	assert.Equal(t, 465, cfg.SMTP.Port)
	assert.Equal(t, 4, cfg.Dispatch.Workers)
	assert.Equal(t, []string{"https://talenthive.test", "https://admin.talenthive.test"}, cfg.App.WSAllowedOrigins)
}
