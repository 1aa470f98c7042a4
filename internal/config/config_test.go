package config

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "dev")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.AppEnv)
	assert.Equal(t, 15*time.Minute, cfg.Auth.AccessTTL)
	assert.Equal(t, 7*24*time.Hour, cfg.Auth.RefreshTTL)
	assert.Equal(t, "/api/v1/auth", cfg.Auth.CookiePath)
	assert.Equal(t, http.SameSiteLaxMode, cfg.Auth.SameSite())
	assert.False(t, cfg.Auth.CookieSecure)
	assert.False(t, cfg.IsProdLike())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_ACCESS_TTL", "5m")
	t.Setenv("REFRESH_TTL", "24h")
	t.Setenv("COOKIE_SAMESITE", "Strict")
	t.Setenv("BACKEND_CORS_ORIGINS", "https://a.example, https://b.example ,")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5*time.Minute, cfg.Auth.AccessTTL)
	assert.Equal(t, 24*time.Hour, cfg.Auth.RefreshTTL)
	assert.Equal(t, http.SameSiteStrictMode, cfg.Auth.SameSite())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
	}{
		{name: "bad samesite", env: map[string]string{"COOKIE_SAMESITE": "sometimes"}},
		{name: "none without secure", env: map[string]string{"COOKIE_SAMESITE": "None", "COOKIE_SECURE": "false"}},
		{name: "zero access ttl", env: map[string]string{"JWT_ACCESS_TTL": "0s"}},
		{name: "prod with default secret", env: map[string]string{"APP_ENV": "production", "COOKIE_SECURE": "true", "REFRESH_TOKEN_PEPPER": "p"}},
		{name: "prod without secure cookie", env: map[string]string{"APP_ENV": "prod", "JWT_SECRET": "s3cret", "REFRESH_TOKEN_PEPPER": "p"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoad_ProdLikeAccepted(t *testing.T) {
	t.Setenv("APP_ENV", "release")
	t.Setenv("JWT_SECRET", "a-real-secret")
	t.Setenv("REFRESH_TOKEN_PEPPER", "a-real-pepper")
	t.Setenv("COOKIE_SECURE", "true")
	t.Setenv("COOKIE_SAMESITE", "None")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsProdLike())
	assert.Equal(t, http.SameSiteNoneMode, cfg.Auth.SameSite())
}
