package config

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSessionConfigDevelopment(t *testing.T) {
	t.Setenv("SESSION_COOKIE_SECURE", "")
	t.Setenv("SESSION_COOKIE_SAMESITE", "")

	s := LoadSessionConfig("development")
	assert.Equal(t, "token", s.CookieName)
	assert.False(t, s.Secure)
	assert.Equal(t, http.SameSiteStrictMode, s.SameSite)
}

func TestLoadSessionConfigProduction(t *testing.T) {
	t.Setenv("SESSION_COOKIE_SECURE", "")
	t.Setenv("SESSION_COOKIE_SAMESITE", "")

	s := LoadSessionConfig("production")
	assert.True(t, s.Secure)
	assert.Equal(t, http.SameSiteNoneMode, s.SameSite)
}

func TestLoadSessionConfigOverrides(t *testing.T) {
	t.Setenv("SESSION_COOKIE_SECURE", "true")
	t.Setenv("SESSION_COOKIE_SAMESITE", "Lax")

	s := LoadSessionConfig("development")
	assert.True(t, s.Secure)
	assert.Equal(t, http.SameSiteLaxMode, s.SameSite)
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("ACCESS_TOKEN_SECRET", "")
	t.Setenv("JWT_EXPIRY_HOURS", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 10*time.Hour, cfg.JWT.TTL())
	assert.False(t, cfg.IsProduction())
}

func TestValidateRejectsDefaultSecretInProduction(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("ACCESS_TOKEN_SECRET", "")
	t.Setenv("SESSION_COOKIE_SECURE", "")
	t.Setenv("SESSION_COOKIE_SAMESITE", "")

	_, err := Load()
	assert.Error(t, err)

	t.Setenv("JWT_SECRET", "a-real-secret")
	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.Session.Secure)
}

func TestValidateSameSiteNoneNeedsSecure(t *testing.T) {
	cfg := &Config{
		App:     AppConfig{Environment: "development"},
		JWT:     JWTConfig{Secret: "s", ExpiryHours: 10},
		Session: SessionConfig{SameSite: http.SameSiteNoneMode, Secure: false},
	}
	assert.Error(t, cfg.Validate())
}

func TestGetEnvList(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", " http://a.test, ,http://b.test ")
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, getEnvList("CORS_ALLOWED_ORIGINS", nil))
}
