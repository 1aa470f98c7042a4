package config

import (
	"fmt"
	"net/http"
	"strings"
	"time"
)

const (
	DefaultJWTSecret          = "change-me-jwt-secret"
	DefaultRefreshTokenPepper = "change-me-refresh-pepper"
)

// AuthConfig holds token lifetimes, secrets and refresh cookie settings.
type AuthConfig struct {
	JWTSecret          string        `env:"JWT_SECRET" env-default:"change-me-jwt-secret"`
	AccessTTL          time.Duration `env:"JWT_ACCESS_TTL" env-default:"15m"`
	RefreshTTL         time.Duration `env:"REFRESH_TTL" env-default:"168h"`
	RefreshTokenPepper string        `env:"REFRESH_TOKEN_PEPPER" env-default:"change-me-refresh-pepper"`

	// Cleanup windows for the refresh_tokens table.
	ExpiredGrace     time.Duration `env:"REFRESH_EXPIRED_GRACE" env-default:"168h"`
	RevokedRetention time.Duration `env:"REFRESH_REVOKED_RETENTION" env-default:"720h"`

	CookieSecure   bool   `env:"COOKIE_SECURE" env-default:"false"`
	CookieSameSite string `env:"COOKIE_SAMESITE" env-default:"Lax"`
	CookiePath     string `env:"COOKIE_PATH" env-default:"/api/v1/auth"`
	CookieDomain   string `env:"COOKIE_DOMAIN"`
}

func (a *AuthConfig) validate(prodLike bool) error {
	a.JWTSecret = strings.TrimSpace(a.JWTSecret)
	a.RefreshTokenPepper = strings.TrimSpace(a.RefreshTokenPepper)
	a.CookieSameSite = strings.TrimSpace(a.CookieSameSite)
	a.CookiePath = strings.TrimSpace(a.CookiePath)

	if a.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET must not be empty")
	}
	if a.AccessTTL <= 0 {
		return fmt.Errorf("JWT_ACCESS_TTL must be > 0")
	}
	if a.RefreshTTL <= 0 {
		return fmt.Errorf("REFRESH_TTL must be > 0")
	}
	if a.ExpiredGrace < 0 || a.RevokedRetention < 0 {
		return fmt.Errorf("refresh token cleanup windows must not be negative")
	}
	if a.CookiePath == "" {
		return fmt.Errorf("COOKIE_PATH must not be empty")
	}
	sameSite := strings.ToLower(a.CookieSameSite)
	if sameSite != "lax" && sameSite != "none" && sameSite != "strict" {
		return fmt.Errorf("COOKIE_SAMESITE must be one of: Lax, None, Strict")
	}
	if sameSite == "none" && !a.CookieSecure {
		return fmt.Errorf("COOKIE_SECURE must be true when COOKIE_SAMESITE=None")
	}

	if prodLike {
		if a.JWTSecret == DefaultJWTSecret {
			return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
		}
		if a.RefreshTokenPepper == "" || a.RefreshTokenPepper == DefaultRefreshTokenPepper {
			return fmt.Errorf("in prod/release REFRESH_TOKEN_PEPPER must be set and not default")
		}
		if !a.CookieSecure {
			return fmt.Errorf("in prod/release COOKIE_SECURE must be true")
		}
	}
	return nil
}

// SameSite converts the configured value to the net/http constant gin expects.
func (a AuthConfig) SameSite() http.SameSite {
	switch strings.ToLower(a.CookieSameSite) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
