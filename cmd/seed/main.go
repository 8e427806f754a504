package main

import (
	"context"
	"time"

	"codeberg.org/krishisakhi/server/internal/config"
	"codeberg.org/krishisakhi/server/internal/logger"
	"codeberg.org/krishisakhi/server/internal/store"
)

func main() {
	flags := config.ParseSeedFlags()

	// load environment variables
	cfg, err := config.LoadEnvironmentVariables()
	if err != nil {
		logger.Fatal("failed to load configuration", "error", err)
	}

	logger.Setup(cfg.Environment, cfg.LogLevel)

	if cfg.StoreDriver == config.DriverMemory {
		logger.Warn("seeding the memory store, records are lost when this process exits")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	backend, err := store.Open(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to open store", "driver", cfg.StoreDriver, "error", err)
	}

	defer backend.Close() //nolint:errcheck

	logger.Info("seeding sample data", "driver", cfg.StoreDriver, "path", flags.Path, "clear", flags.Clear)

	if _, err := Seed(ctx, backend, flags); err != nil {
		logger.FatalErr(err, "failed to seed sample data")
	}

	logger.Info("seeding complete")
}
