package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"time"

	"codeberg.org/krishisakhi/server/farm/users"
	"codeberg.org/krishisakhi/server/internal/auth"
	"codeberg.org/krishisakhi/server/internal/config"
	"codeberg.org/krishisakhi/server/internal/logger"
	"codeberg.org/krishisakhi/server/internal/store"
)

// prints a JWT for a user profile, creating the profile when it is missing
func main() {
	email := flag.String("email", "farmer@demo.com", "email of the user to issue a token for")
	name := flag.String("name", "Demo Farmer", "full name used when the user is created")
	flag.Parse()

	cfg, err := config.LoadEnvironmentVariables()
	if err != nil {
		logger.Fatal("failed to load configuration", "error", err)
	}

	logger.Setup(cfg.Environment, cfg.LogLevel)

	authn := auth.New(cfg.JWTSecret)
	if !authn.Enabled() {
		logger.FatalErr(auth.ErrMissingSecret, "cannot sign tokens")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	backend, err := store.Open(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to open store", "driver", cfg.StoreDriver, "error", err)
	}

	defer backend.Close() //nolint:errcheck

	userRepo := users.NewRepository(store.NewCollection[users.User](backend, users.Kind))

	user, err := userRepo.FindByEmail(ctx, *email)
	switch {
	case errors.Is(err, store.ErrNotFound):
		user, err = userRepo.Create(ctx, users.CreateUserRequest{FullName: *name, Email: *email})
		if err != nil {
			logger.FatalErr(err, "failed to create user")
		}

		fmt.Printf("Created user %s (ID: %s)\n", user.Email, user.ID)
	case err != nil:
		logger.FatalErr(err, "failed to look up user")
	default:
		fmt.Printf("Using existing user %s (ID: %s)\n", user.Email, user.ID)
	}

	token, err := authn.GenerateJWT(auth.Identity{UserID: user.ID, Email: user.Email, Name: user.FullName})
	if err != nil {
		logger.FatalErr(err, "failed to generate JWT")
	}

	fmt.Printf("\nJWT:\n%s\n\n", token)
	fmt.Printf("Export this token for testing:\nexport TEST_TOKEN=\"%s\"\n", token)
}
