package config

import "fmt"

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	if c.Auth.AccessTokenTTL <= 0 {
		return fmt.Errorf("auth.access_token_ttl must be positive (got %v)", c.Auth.AccessTokenTTL)
	}
	if c.Auth.RefreshTokenTTL <= c.Auth.AccessTokenTTL {
		return fmt.Errorf("auth.refresh_token_ttl must exceed access_token_ttl")
	}

	if c.Emissions.FactorYear < 2000 || c.Emissions.FactorYear > 2100 {
		return fmt.Errorf("emissions.factor_year out of range (got %d)", c.Emissions.FactorYear)
	}
	if c.Emissions.MaxRecordsPerList <= 0 {
		return fmt.Errorf("emissions.max_records_per_list must be positive (got %d)", c.Emissions.MaxRecordsPerList)
	}

	if c.RateLimit.Enabled {
		if c.RateLimit.PerMinute <= 0 {
			return fmt.Errorf("rate_limit.per_minute must be positive when enabled (got %d)", c.RateLimit.PerMinute)
		}
		if c.RateLimit.LookupPerMinute <= 0 {
			return fmt.Errorf("rate_limit.lookup_per_minute must be positive when enabled (got %d)", c.RateLimit.LookupPerMinute)
		}
	}

	return nil
}
