package ratelimit

import (
	"fmt"
	"net/http"

	"codeberg.org/krishisakhi/server/internal/logger"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"
)

const storePrefix = "krishisakhi:ratelimit"

// per-client-IP request limiting for the HTTP API
type Limiter struct {
	config     *Config
	middleware gin.HandlerFunc
}

// creates a limiter; counters live in redis when client is non-nil so
// limits hold across instances, otherwise in process memory
func New(config *Config, client *redis.Client) (*Limiter, error) {
	rate, err := limiter.NewRateFromFormatted(config.Rate)
	if err != nil {
		return nil, fmt.Errorf("invalid rate %q: %w", config.Rate, err)
	}

	var store limiter.Store
	if client != nil {
		store, err = sredis.NewStoreWithOptions(client, limiter.StoreOptions{Prefix: storePrefix})
		if err != nil {
			return nil, fmt.Errorf("failed to create redis rate limit store: %w", err)
		}
	} else {
		store = memory.NewStoreWithOptions(limiter.StoreOptions{Prefix: storePrefix})
	}

	instance := limiter.New(store, rate)

	return &Limiter{
		config: config,
		middleware: mgin.NewMiddleware(instance,
			mgin.WithLimitReachedHandler(handleRateLimited),
			mgin.WithErrorHandler(handleStoreError),
		),
	}, nil
}

// returns a Gin middleware that enforces the rate
func (l *Limiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.config.Enabled || l.config.IsExemptPath(c.Request.URL.Path) {
			c.Next()
			return
		}

		l.middleware(c)
	}
}

func handleRateLimited(c *gin.Context) {
	logger.Warn("rate limit exceeded", "ip", c.ClientIP(), "path", c.Request.URL.Path)

	c.Header("Retry-After", "60")
	c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
		"error":   "rate_limit_exceeded",
		"message": "too many requests. please slow down.",
	})
}

// a broken counter store must not take the API down
func handleStoreError(c *gin.Context, err error) {
	logger.ErrorErr(err, "rate limit store failed", "ip", c.ClientIP())
	c.Next()
}
