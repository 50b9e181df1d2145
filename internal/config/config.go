package config

import "time"

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Auth      AuthConfig      `yaml:"auth"`
	Emissions EmissionsConfig `yaml:"emissions"`
	Log       LogConfig       `yaml:"log"`
	CORS      CORSConfig      `yaml:"cors"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// AuthConfig holds authentication settings.
type AuthConfig struct {
	JWTSecret       string        `yaml:"jwt_secret"        env:"AUTH_JWT_SECRET"        env-required:"true"`
	JWTIssuer       string        `yaml:"jwt_issuer"        env:"AUTH_JWT_ISSUER"        env-default:"carbon-aegis"`
	AccessTokenTTL  time.Duration `yaml:"access_token_ttl"  env:"AUTH_ACCESS_TOKEN_TTL"  env-default:"15m"`
	RefreshTokenTTL time.Duration `yaml:"refresh_token_ttl" env:"AUTH_REFRESH_TOKEN_TTL" env-default:"720h"`

	// PasswordHashCost is the bcrypt cost factor for password hashing.
	PasswordHashCost int `yaml:"password_hash_cost" env:"AUTH_PASSWORD_HASH_COST" env-default:"10"`
}

// EmissionsConfig holds emission workflow settings.
type EmissionsConfig struct {
	// LegacyZeroFill restores the historical behavior of saving records with
	// a zero factor when no emission factor matches. Off by default: an
	// unresolved factor blocks the save with an explicit error.
	LegacyZeroFill bool `yaml:"legacy_zero_fill" env:"EMISSIONS_LEGACY_ZERO_FILL" env-default:"false"`
	// FactorYear selects the factor dataset vintage used for lookups.
	FactorYear int `yaml:"factor_year" env:"EMISSIONS_FACTOR_YEAR" env-default:"2024"`
	// MaxRecordsPerList caps page sizes on the emissions list endpoint.
	MaxRecordsPerList int `yaml:"max_records_per_list" env:"EMISSIONS_MAX_RECORDS_PER_LIST" env-default:"200"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type,X-Client-Org"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// RateLimitConfig holds per-client rate limiting settings.
type RateLimitConfig struct {
	Enabled   bool `yaml:"enabled"    env:"RATE_LIMIT_ENABLED"    env-default:"true"`
	PerMinute int  `yaml:"per_minute" env:"RATE_LIMIT_PER_MINUTE" env-default:"120"`
	// Burst caps how many requests may arrive back to back before the
	// sustained rate applies. Zero means the full per-minute budget.
	Burst int `yaml:"burst" env:"RATE_LIMIT_BURST" env-default:"0"`
	// LookupPerMinute is a separate budget for the emission factor lookup
	// endpoints, which hit the factor table on every request.
	LookupPerMinute int `yaml:"lookup_per_minute" env:"RATE_LIMIT_LOOKUP_PER_MINUTE" env-default:"60"`
	// IdleTTL is how long an idle client keeps its bucket before eviction.
	IdleTTL         time.Duration `yaml:"idle_ttl"         env:"RATE_LIMIT_IDLE_TTL"         env-default:"10m"`
	CleanupInterval time.Duration `yaml:"cleanup_interval" env:"RATE_LIMIT_CLEANUP_INTERVAL" env-default:"5m"`
}
