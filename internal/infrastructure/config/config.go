package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds all application configuration.
type Config struct {
	// Storage
	DataDir string `env:"DATA_DIR" envDefault:"data"`

	// Store retries
	StoreRetryMax      int           `env:"STORE_RETRY_MAX"      envDefault:"3"`
	StoreRetryInterval time.Duration `env:"STORE_RETRY_INTERVAL" envDefault:"20ms"`
	StoreRetryMaxWait  time.Duration `env:"STORE_RETRY_MAX_WAIT" envDefault:"5s"`

	// Calendar
	Timezone string `env:"TZ_BUSINESS" envDefault:"Asia/Kathmandu"`

	// Redis (optional - leave empty to disable idempotency keys)
	RedisURL string `env:"REDIS_URL" envDefault:""`

	// HTTP Server
	HTTPPort            string        `env:"HTTP_PORT"             envDefault:"8080"`
	HTTPReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT"     envDefault:"30s"`
	HTTPWriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT"    envDefault:"30s"`
	HTTPIdleTimeout     time.Duration `env:"HTTP_IDLE_TIMEOUT"     envDefault:"60s"`
	HTTPShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL"  envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// Idempotency
	IdempotencyTTL time.Duration `env:"IDEMPOTENCY_TTL" envDefault:"24h"`

	// Login rate limiting
	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS"   envDefault:"1"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST" envDefault:"5"`

	// Authentication
	JWTSecret     string        `env:"JWT_SECRET"     envDefault:""`
	JWTExpiration time.Duration `env:"JWT_EXPIRATION" envDefault:"12h"`
	AuthEnabled   bool          `env:"AUTH_ENABLED"   envDefault:"true"`

	// Set when the pages are served over HTTPS
	SessionCookieSecure bool `env:"SESSION_COOKIE_SECURE" envDefault:"false"`

	// Bootstrap admin, created when users.json has no admin
	AdminID       string `env:"ADMIN_ID"       envDefault:"admin"`
	AdminName     string `env:"ADMIN_NAME"     envDefault:"Administrator"`
	AdminPassword string `env:"ADMIN_PASSWORD" envDefault:""`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	err := env.Parse(cfg)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks settings that depend on each other.
func (c *Config) Validate() error {
	if c.AuthEnabled && len(c.JWTSecret) < 16 {
		return fmt.Errorf("JWT_SECRET must be at least 16 characters when AUTH_ENABLED is true")
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst <= 0 {
		return fmt.Errorf("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("invalid TZ_BUSINESS %q: %w", c.Timezone, err)
	}
	return nil
}

// Location returns the business time zone. Validate guarantees it loads.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
