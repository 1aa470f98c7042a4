package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config is the whole runtime configuration of the service. It is built once
// at startup and handed to constructors explicitly.
type Config struct {
	AppEnv   string `env:"APP_ENV" env-default:"dev"`
	AppName  string `env:"APP_NAME" env-default:"Public Square API"`
	Version  string `env:"APP_VERSION" env-default:"0.1.0"`
	HTTPAddr string `env:"HTTP_ADDR" env-default:":8080"`

	DatabaseURL string `env:"DATABASE_URL" env-default:"publicsquare.db"`

	CORSOrigins []string `env:"BACKEND_CORS_ORIGINS" env-separator:","`

	OpenLibraryBaseURL string        `env:"OPENLIBRARY_BASE_URL" env-default:"https://openlibrary.org"`
	OpenLibraryTimeout time.Duration `env:"OPENLIBRARY_TIMEOUT" env-default:"10s"`

	Auth AuthConfig
}

// Load reads an optional .env file and then the process environment.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load env file: %w", err)
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}
	cfg.AppEnv = strings.ToLower(strings.TrimSpace(cfg.AppEnv))
	cfg.CORSOrigins = trimList(cfg.CORSOrigins)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log.Printf("auth cookie config: secure=%t, sameSite=%s, path=%s", cfg.Auth.CookieSecure, cfg.Auth.CookieSameSite, cfg.Auth.CookiePath)
	return &cfg, nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return fmt.Errorf("DATABASE_URL must not be empty")
	}
	if c.OpenLibraryTimeout <= 0 {
		return fmt.Errorf("OPENLIBRARY_TIMEOUT must be > 0")
	}
	return c.Auth.validate(c.IsProdLike())
}

// IsProdLike reports whether the service runs in a production-like environment.
func (c *Config) IsProdLike() bool {
	return isProdLike(c.AppEnv)
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func trimList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
