package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// loads configuration from the environment (and .env when present)
func LoadEnvironmentVariables() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		_ = err // not an error - production environments may not have .env file
	}

	return Parse()
}

// parses the current process environment without touching .env
func Parse() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	cfg.StoreDriver = strings.ToLower(strings.TrimSpace(cfg.StoreDriver))
	cfg.GenerationBaseURL = strings.TrimRight(cfg.GenerationBaseURL, "/")

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.GenerationBaseURL == "" {
		return fmt.Errorf("API_URL environment variable is required")
	}

	if c.GenerationMaxAttempts < 1 {
		return fmt.Errorf("GENERATION_MAX_ATTEMPTS must be at least 1")
	}

	if c.GenerationRateLimit < 0 {
		return fmt.Errorf("GENERATION_RATE_LIMIT must not be negative")
	}

	// a zero burst would make every limited call fail without reaching upstream
	if c.GenerationRateLimit > 0 && c.GenerationRateBurst < 1 {
		return fmt.Errorf("GENERATION_RATE_BURST must be at least 1 when GENERATION_RATE_LIMIT is set")
	}

	switch c.StoreDriver {
	case DriverMemory:
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL environment variable is required for the postgres store")
		}
	case DriverRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("REDIS_URL environment variable is required for the redis store")
		}
	case DriverMongo:
		if c.MongoURL == "" {
			return fmt.Errorf("MONGO_URL environment variable is required for the mongo store")
		}
	default:
		return fmt.Errorf("unsupported STORE_DRIVER: %q", c.StoreDriver)
	}

	if c.IsProduction() && c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET environment variable is required in production")
	}

	return nil
}
