package store

import (
	"context"
	"fmt"

	"codeberg.org/krishisakhi/server/internal/config"
)

// builds the backend selected by cfg.StoreDriver
func Open(ctx context.Context, cfg *config.Config) (Backend, error) {
	switch cfg.StoreDriver {
	case config.DriverMemory, "":
		return NewMemoryBackend(), nil
	case config.DriverPostgres:
		return NewPostgresBackendFromURL(ctx, cfg.DatabaseURL)
	case config.DriverRedis:
		return NewRedisBackendFromURL(cfg.RedisURL)
	case config.DriverMongo:
		return NewMongoBackendFromURL(ctx, cfg.MongoURL, cfg.MongoDatabase)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}
