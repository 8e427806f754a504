package main

import (
	"context"
	"fmt"
	"time"

	"codeberg.org/krishisakhi/server/farm/community"
	"codeberg.org/krishisakhi/server/farm/crops"
	"codeberg.org/krishisakhi/server/farm/detections"
	"codeberg.org/krishisakhi/server/farm/tips"
	"codeberg.org/krishisakhi/server/farm/users"
	"codeberg.org/krishisakhi/server/internal/auth"
	"codeberg.org/krishisakhi/server/internal/config"
	"codeberg.org/krishisakhi/server/internal/i18n"
	"codeberg.org/krishisakhi/server/internal/logger"
	"codeberg.org/krishisakhi/server/internal/metrics"
	"codeberg.org/krishisakhi/server/internal/ratelimit"
	"codeberg.org/krishisakhi/server/internal/store"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// how long startup may spend connecting to the store
const storeConnectTimeout = 15 * time.Second

// creates and configures a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	ctx, cancel := context.WithTimeout(context.Background(), storeConnectTimeout)
	defer cancel()

	backend, err := store.Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", cfg.StoreDriver, err)
	}

	logger.Info("store opened", "driver", cfg.StoreDriver)

	m := metrics.New()
	repos := newRepositories(backend, m)

	services, err := InitializeServices(cfg, repos, m)
	if err != nil {
		backend.Close() //nolint:errcheck,gosec // best-effort cleanup on init failure
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	catalog, err := i18n.NewCatalog(cfg.DefaultLanguage)
	if err != nil {
		backend.Close() //nolint:errcheck,gosec // best-effort cleanup on init failure
		return nil, fmt.Errorf("failed to load translations: %w", err)
	}

	authn := auth.New(cfg.JWTSecret)
	if !authn.Enabled() {
		logger.Warn("JWT_SECRET not set, authenticated routes will reject every request")
	}

	// share the store's redis connection so limits hold across instances
	var redisClient *redis.Client
	if rb, ok := backend.(*store.RedisBackend); ok {
		redisClient = rb.Client()
	}

	rateLimitConfig := ratelimit.DefaultConfig()
	rateLimitConfig.Rate = cfg.RateLimit

	limiter, err := ratelimit.New(rateLimitConfig, redisClient)
	if err != nil {
		backend.Close() //nolint:errcheck,gosec // best-effort cleanup on init failure
		return nil, fmt.Errorf("failed to initialize rate limiter: %w", err)
	}

	logger.Info("rate limiting initialized",
		"enabled", rateLimitConfig.Enabled,
		"rate", rateLimitConfig.Rate,
		"shared", redisClient != nil,
	)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	server := &Server{
		config:   cfg,
		backend:  backend,
		repos:    repos,
		services: services,
		catalog:  catalog,
		authn:    authn,
		metrics:  m,
		limiter:  limiter,
		router:   gin.Default(),
	}

	RegisterRoutes(server.router, server)

	return server, nil
}

// wraps every collection with store metrics before handing it to its repository
func newRepositories(backend store.Backend, m *metrics.Metrics) *Repositories {
	return &Repositories{
		Crops:      crops.NewRepository(instrumented[crops.Crop](backend, crops.Kind, m)),
		Community:  community.NewRepository(instrumented[community.Post](backend, community.Kind, m)),
		Detections: detections.NewRepository(instrumented[detections.Detection](backend, detections.Kind, m)),
		Tips:       tips.NewRepository(instrumented[tips.Tip](backend, tips.Kind, m)),
		Users:      users.NewRepository(instrumented[users.User](backend, users.Kind, m)),
	}
}

func instrumented[T any](backend store.Backend, kind string, m *metrics.Metrics) store.Store[T] {
	return metrics.NewInstrumentedStore[T](store.NewCollection[T](backend, kind), kind, m)
}
