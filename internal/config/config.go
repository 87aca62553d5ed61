package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds process configuration read from the environment at startup.
type Config struct {
	Port         string `env:"PORT"          envDefault:"8080"`
	DatabasePath string `env:"DATABASE_PATH" envDefault:"eventpass.db"`
	// DatabaseURL selects the PostgreSQL backend when set.
	DatabaseURL string `env:"DATABASE_URL"`

	JWTSecret string `env:"JWT_SECRET"`
	// Default to secure cookies; disable only for local development.
	CookieSecure bool `env:"COOKIE_SECURE" envDefault:"true"`
	BcryptCost   int  `env:"BCRYPT_COST"   envDefault:"12"`

	Environment   string `env:"APP_ENV"        envDefault:"production"`
	OperatorEmail string `env:"OPERATOR_EMAIL" envDefault:"delivered@resend.dev"`
	MailFrom      string `env:"MAIL_FROM"      envDefault:"Event Team <onboarding@resend.dev>"`
	ResendAPIKey  string `env:"RESEND_API_KEY"`

	AdminEmail    string `env:"ADMIN_EMAIL"`
	AdminPassword string `env:"ADMIN_PASSWORD"`
	AdminName     string `env:"ADMIN_NAME" envDefault:"Administrator"`

	SubmitRate       float64       `env:"SUBMIT_RATE"        envDefault:"0.2"`
	SubmitBurst      int           `env:"SUBMIT_BURST"       envDefault:"5"`
	CategoryCacheTTL time.Duration `env:"CATEGORY_CACHE_TTL" envDefault:"5m"`
}

// Development reports whether the process runs in a development environment.
func (c Config) Development() bool {
	return c.Environment == "development"
}

// Load parses the environment and validates the result.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the values env tags cannot express.
func (c Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET environment variable is required")
	}
	if len(c.JWTSecret) < 32 {
		return errors.New("JWT_SECRET must be at least 32 characters for HMAC-SHA256 security")
	}
	if c.BcryptCost < 4 || c.BcryptCost > 14 {
		return fmt.Errorf("BCRYPT_COST must be between 4 and 14, got %d", c.BcryptCost)
	}
	if c.Development() && c.OperatorEmail == "" {
		return errors.New("OPERATOR_EMAIL is required when APP_ENV=development")
	}
	if (c.AdminEmail == "") != (c.AdminPassword == "") {
		return errors.New("ADMIN_EMAIL and ADMIN_PASSWORD must be set together")
	}
	if c.SubmitRate <= 0 || c.SubmitBurst < 1 {
		return errors.New("SUBMIT_RATE must be positive and SUBMIT_BURST at least 1")
	}
	return nil
}
