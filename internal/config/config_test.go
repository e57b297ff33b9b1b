package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "postgres", cfg.Store)
	assert.Equal(t, 15*time.Minute, cfg.ResetTokenTTL)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 4, cfg.PasswordMinLen)
	assert.Equal(t, "nutrifit_session", cfg.SessionCookie)
	assert.False(t, cfg.CookieSecure)
	assert.False(t, cfg.MailEnabled())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ENV", "prod")
	t.Setenv("STORE", "memory")
	t.Setenv("RESET_TOKEN_TTL", "30m")
	t.Setenv("SESSION_TTL", "2h")
	t.Setenv("PASSWORD_MIN_LEN", "10")
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://app.example.com, https://admin.example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "memory", cfg.Store)
	assert.Equal(t, 30*time.Minute, cfg.ResetTokenTTL)
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 10, cfg.PasswordMinLen)
	assert.True(t, cfg.CookieSecure)
	assert.True(t, cfg.MailEnabled())
	assert.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, cfg.AllowedOrigins)
}

func TestLoadRejectsBadStore(t *testing.T) {
	t.Setenv("STORE", "cassandra")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadProdRequiresSMTP(t *testing.T) {
	t.Setenv("ENV", "prod")
	t.Setenv("SMTP_HOST", "")

	_, err := Load()
	assert.Error(t, err)
}
