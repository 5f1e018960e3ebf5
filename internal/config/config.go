package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// MinSessionSecretLen is the minimum SESSION_SECRET length outside demo mode.
const MinSessionSecretLen = 32

var (
	ErrMissingSessionSecret = errors.New("SESSION_SECRET must be at least 32 bytes when DATABASE_URL is set")
	ErrInvalidSessionTTL    = errors.New("SESSION_TTL must be positive")
	ErrInvalidLoginRate     = errors.New("LOGIN_RATE_PER_MINUTE and LOGIN_BURST must be positive")
)

// Config holds application configuration loaded from environment variables.
//
// Environment variables:
//   - PORT: listen port (default: 5050)
//   - DATABASE_URL: postgres URL or sqlite://path; empty enables demo mode
//   - SESSION_SECRET: HMAC key for employee session tokens
//   - SESSION_TTL: upper bound on a session token's lifetime (default: 12h)
//   - SECURE_COOKIES: mark session cookies Secure (default: false)
//   - LOG_LEVEL: debug, info, warn or error (default: info)
//   - ALLOWED_ORIGINS: comma separated CORS allow-list
//   - LOGIN_RATE_PER_MINUTE, LOGIN_BURST: per-IP login attempt budget
//   - TRUSTED_PROXIES: comma separated addresses or CIDRs whose X-Forwarded-For is believed
//   - COMPANY_PROFILE: optional YAML file overriding the built-in company profile
type Config struct {
	Port               string        `envconfig:"PORT" default:"5050"`
	DatabaseURL        string        `envconfig:"DATABASE_URL"`
	SessionSecret      string        `envconfig:"SESSION_SECRET"`
	SessionTTL         time.Duration `envconfig:"SESSION_TTL" default:"12h"`
	SecureCookies      bool          `envconfig:"SECURE_COOKIES" default:"false"`
	LogLevel           string        `envconfig:"LOG_LEVEL" default:"info"`
	AllowedOrigins     []string      `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:3000,http://localhost:5173"`
	LoginRatePerMinute int           `envconfig:"LOGIN_RATE_PER_MINUTE" default:"10"`
	LoginBurst         int           `envconfig:"LOGIN_BURST" default:"5"`
	TrustedProxies     []string      `envconfig:"TRUSTED_PROXIES"`
	CompanyProfile     string        `envconfig:"COMPANY_PROFILE"`

	// DemoModeEnabled is derived once in Load: no DATABASE_URL means no
	// employee directory and only the built-in demo credential.
	DemoModeEnabled bool `ignored:"true"`

	// GeneratedSecret is set when Load had to make up a session secret.
	GeneratedSecret bool `ignored:"true"`
}

// Load reads configuration from environment variables into a Config struct.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}

	cfg.DatabaseURL = strings.TrimSpace(cfg.DatabaseURL)
	cfg.DemoModeEnabled = cfg.DatabaseURL == ""

	if cfg.DemoModeEnabled && cfg.SessionSecret == "" {
		secret, err := randomSecret()
		if err != nil {
			return nil, err
		}
		cfg.SessionSecret = secret
		cfg.GeneratedSecret = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the invariants Load cannot express with struct tags.
func (c Config) Validate() error {
	if !c.DemoModeEnabled && len(c.SessionSecret) < MinSessionSecretLen {
		return ErrMissingSessionSecret
	}
	if c.SessionTTL <= 0 {
		return ErrInvalidSessionTTL
	}
	if c.LoginRatePerMinute <= 0 || c.LoginBurst <= 0 {
		return ErrInvalidLoginRate
	}
	return nil
}

// Addr returns the listen address for the HTTP server.
func (c Config) Addr() string {
	return "0.0.0.0:" + c.Port
}

func randomSecret() (string, error) {
	b := make([]byte, MinSessionSecretLen)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generating session secret: %w", err)
	}
	return hex.EncodeToString(b), nil
}
