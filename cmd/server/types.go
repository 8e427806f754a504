package main

import (
	"codeberg.org/krishisakhi/server/farm/community"
	"codeberg.org/krishisakhi/server/farm/crops"
	"codeberg.org/krishisakhi/server/farm/dashboard"
	"codeberg.org/krishisakhi/server/farm/detections"
	"codeberg.org/krishisakhi/server/farm/tips"
	"codeberg.org/krishisakhi/server/farm/users"
	"codeberg.org/krishisakhi/server/farm/weather"
	"codeberg.org/krishisakhi/server/internal/auth"
	"codeberg.org/krishisakhi/server/internal/config"
	"codeberg.org/krishisakhi/server/internal/generation"
	"codeberg.org/krishisakhi/server/internal/i18n"
	"codeberg.org/krishisakhi/server/internal/metrics"
	"codeberg.org/krishisakhi/server/internal/ratelimit"
	"codeberg.org/krishisakhi/server/internal/store"
	"github.com/gin-gonic/gin"
)

// holds all dependencies and state for the API server
type Server struct {
	config   *config.Config
	backend  store.Backend
	repos    *Repositories
	services *Services
	catalog  *i18n.Catalog
	authn    *auth.Authenticator
	metrics  *metrics.Metrics
	limiter  *ratelimit.Limiter
	router   *gin.Engine
}

// one repository per record kind, all over the same backend
type Repositories struct {
	Crops      *crops.Repository
	Community  *community.Repository
	Detections *detections.Repository
	Tips       *tips.Repository
	Users      *users.Repository
}

// holds the generation client and the services built on it
type Services struct {
	Generator generation.Generator
	Uploader  generation.Uploader
	Analyzer  *detections.Analyzer
	Weather   *weather.Service
	Dashboard *dashboard.Service
}
