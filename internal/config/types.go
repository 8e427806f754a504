package config

import "time"

// supported entity store backends
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
	DriverMongo    = "mongo"
)

type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	Port        string `env:"PORT" envDefault:"8080"`
	LogLevel    string `env:"LOG_LEVEL"`

	// remote structured-generation service
	GenerationBaseURL           string        `env:"API_URL" envDefault:"http://localhost:3001/api"`
	GenerationAPIKey            string        `env:"GENERATION_API_KEY"`
	GenerationTimeout           time.Duration `env:"GENERATION_TIMEOUT" envDefault:"60s"`
	GenerationValidateResponses bool          `env:"GENERATION_VALIDATE_RESPONSES" envDefault:"false"`
	GenerationMaxAttempts       int           `env:"GENERATION_MAX_ATTEMPTS" envDefault:"1"`
	GenerationRateLimit         float64       `env:"GENERATION_RATE_LIMIT" envDefault:"0"` // requests/second, 0 = unlimited
	GenerationRateBurst         int           `env:"GENERATION_RATE_BURST" envDefault:"5"`

	// entity store
	StoreDriver   string `env:"STORE_DRIVER" envDefault:"memory"`
	DatabaseURL   string `env:"DATABASE_URL"`
	RedisURL      string `env:"REDIS_URL"`
	MongoURL      string `env:"MONGO_URL"`
	MongoDatabase string `env:"MONGO_DATABASE" envDefault:"krishisakhi"`

	// HTTP surface
	JWTSecret       string   `env:"JWT_SECRET"`
	RateLimit       string   `env:"RATE_LIMIT" envDefault:"120-M"`
	CORSOrigins     []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`
	DefaultLanguage string   `env:"DEFAULT_LANGUAGE" envDefault:"en"`
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

type Flags struct {
	Path  string
	Clear bool
}
