package config

import (
	"fmt"

	"golang.org/x/text/language"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	if c.Database.MaxConns <= 0 {
		return fmt.Errorf("database.max_conns must be > 0 (got %d)", c.Database.MaxConns)
	}
	if c.Database.MinConns < 0 || c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("database.min_conns must be within [0, max_conns] (got %d)", c.Database.MinConns)
	}

	if err := c.Search.validate(); err != nil {
		return fmt.Errorf("search: %w", err)
	}

	if c.RateLimit.Enabled && c.RateLimit.RequestsPerMinute <= 0 {
		return fmt.Errorf("ratelimit.requests_per_minute must be > 0 (got %d)", c.RateLimit.RequestsPerMinute)
	}

	return nil
}

func (s *SearchConfig) validate() error {
	if s.MaxQueryLength <= 0 {
		return fmt.Errorf("max_query_length must be > 0 (got %d)", s.MaxQueryLength)
	}
	if s.MaxFilterValues <= 0 {
		return fmt.Errorf("max_filter_values must be > 0 (got %d)", s.MaxFilterValues)
	}
	if s.MaxLimit <= 0 {
		return fmt.Errorf("max_limit must be > 0 (got %d)", s.MaxLimit)
	}
	if s.DefaultLimit <= 0 || s.DefaultLimit > s.MaxLimit {
		return fmt.Errorf("default_limit must be within [1, max_limit] (got %d)", s.DefaultLimit)
	}
	if _, err := language.Parse(s.CollationLocale); err != nil {
		return fmt.Errorf("collation_locale %q: %w", s.CollationLocale, err)
	}
	if s.WordOfDayCache <= 0 {
		return fmt.Errorf("word_of_day_cache must be > 0 (got %d)", s.WordOfDayCache)
	}
	return nil
}
