package config

import (
	"fmt"
	"net/url"

	"golang.org/x/text/language"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Database.DSN == "" {
		return fmt.Errorf("database.dsn must not be empty")
	}

	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	if c.RateLimit.RequestsPerMinute <= 0 {
		return fmt.Errorf("rate_limit.requests_per_minute must be > 0 (got %d)", c.RateLimit.RequestsPerMinute)
	}

	if err := c.Lookup.validate(); err != nil {
		return fmt.Errorf("lookup: %w", err)
	}

	return nil
}

// Validate checks the CLI configuration. LoadClient calls it automatically.
func (c *ClientConfig) Validate() error {
	if err := c.Lookup.validate(); err != nil {
		return fmt.Errorf("lookup: %w", err)
	}

	if err := validateURL(c.Gateway.BaseURL); err != nil {
		return fmt.Errorf("gateway.base_url: %w", err)
	}
	if c.Gateway.Timeout <= 0 {
		return fmt.Errorf("gateway.timeout must be > 0 (got %v)", c.Gateway.Timeout)
	}

	if _, err := language.Parse(c.Vocabulary.Locale); err != nil {
		return fmt.Errorf("vocabulary.locale %q: %w", c.Vocabulary.Locale, err)
	}
	if c.Vocabulary.LookupConcurrency < 1 {
		return fmt.Errorf("vocabulary.lookup_concurrency must be >= 1 (got %d)", c.Vocabulary.LookupConcurrency)
	}

	return nil
}

func (l *LookupConfig) validate() error {
	if err := validateURL(l.BaseURL); err != nil {
		return fmt.Errorf("base_url: %w", err)
	}
	if l.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0 (got %v)", l.Timeout)
	}
	if l.RetryDelay < 0 {
		return fmt.Errorf("retry_delay must be >= 0 (got %v)", l.RetryDelay)
	}
	return nil
}

func validateURL(raw string) error {
	if raw == "" {
		return fmt.Errorf("must not be empty")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("missing host")
	}
	return nil
}
