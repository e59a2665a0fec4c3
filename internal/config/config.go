// Package config loads the service configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

type DBConfig struct {
	URL         string        `env:"DATABASE_URL,required"`
	MaxOpen     int           `env:"DB_MAX_OPEN,default=25"`
	MaxIdle     int           `env:"DB_MAX_IDLE,default=25"`
	MaxLifetime time.Duration `env:"DB_MAX_LIFETIME,default=5m"`
	Migrate     bool          `env:"DB_MIGRATE,default=true"`
}

type SessionConfig struct {
	Secret       string        `env:"SESSION_SECRET,required"`
	CookieName   string        `env:"SESSION_COOKIE,default=session"`
	TTL          time.Duration `env:"SESSION_TTL,default=24h"`
	RememberTTL  time.Duration `env:"SESSION_REMEMBER_TTL,default=720h"`
	SecureCookie bool          `env:"SESSION_SECURE_COOKIE,default=false"`
}

type RateLimitConfig struct {
	PerSecond float64 `env:"AUTH_RATE_LIMIT,default=1"`
	Burst     int     `env:"AUTH_RATE_BURST,default=5"`
}

type Config struct {
	Port        string   `env:"PORT,default=4000"`
	PictureDir  string   `env:"PICTURE_DIR,default=static/profile_pics"`
	LogLevel    string   `env:"LOG_LEVEL,default=info"`
	LogFormat   string   `env:"LOG_FORMAT,default=text"`
	CORSOrigins []string `env:"CORS_ALLOWED_ORIGINS,default=*"`

	DB        DBConfig
	Session   SessionConfig
	RateLimit RateLimitConfig
}

// Load reads an optional .env file, then decodes and validates the environment.
func Load() (*Config, error) {
	// a missing .env is normal outside development
	_ = godotenv.Load()

	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var problems []string

	if c.DB.URL == "" {
		problems = append(problems, "DATABASE_URL is required")
	}
	if len(c.Session.Secret) < 16 {
		problems = append(problems, "SESSION_SECRET must be at least 16 characters")
	}
	if c.Session.TTL <= 0 {
		problems = append(problems, "SESSION_TTL must be positive")
	}
	if c.Session.RememberTTL < c.Session.TTL {
		problems = append(problems, "SESSION_REMEMBER_TTL must not be shorter than SESSION_TTL")
	}
	if c.DB.MaxOpen < 1 {
		problems = append(problems, "DB_MAX_OPEN must be at least 1")
	}
	if c.RateLimit.PerSecond <= 0 || c.RateLimit.Burst < 1 {
		problems = append(problems, "AUTH_RATE_LIMIT and AUTH_RATE_BURST must be positive")
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		problems = append(problems, fmt.Sprintf("LOG_FORMAT must be text or json, got %q", c.LogFormat))
	}

	if len(problems) > 0 {
		return errors.New("configuration errors:\n- " + strings.Join(problems, "\n- "))
	}
	return nil
}
