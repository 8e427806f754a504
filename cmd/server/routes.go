package main

import (
	"codeberg.org/krishisakhi/server/api/rest/community"
	"codeberg.org/krishisakhi/server/api/rest/crops"
	"codeberg.org/krishisakhi/server/api/rest/dashboard"
	"codeberg.org/krishisakhi/server/api/rest/detections"
	"codeberg.org/krishisakhi/server/api/rest/health"
	"codeberg.org/krishisakhi/server/api/rest/i18n"
	"codeberg.org/krishisakhi/server/api/rest/integrations"
	"codeberg.org/krishisakhi/server/api/rest/pages"
	"codeberg.org/krishisakhi/server/api/rest/tips"
	"codeberg.org/krishisakhi/server/api/rest/users"
	"codeberg.org/krishisakhi/server/api/rest/weather"
	"github.com/gin-gonic/gin"
)

// sets up all API routes and middleware
func RegisterRoutes(router *gin.Engine, server *Server) {
	router.Use(CORSMiddleware(server.config.CORSOrigins))
	router.Use(server.metrics.Middleware())
	router.Use(server.limiter.Middleware())
	router.Use(server.catalog.Middleware())

	router.GET("/health", health.Handler(server.config.StoreDriver))
	router.GET("/metrics", gin.WrapH(server.metrics.Handler()))

	v1 := router.Group("/api/v1")

	{
		v1.GET("/ping", health.PingHandler)

		integrations.RegisterRoutes(v1, server.services.Generator, server.services.Uploader)
		crops.RegisterRoutes(v1, server.repos.Crops)
		community.RegisterRoutes(v1, server.repos.Community, server.authn)
		detections.RegisterRoutes(v1, server.repos.Detections, server.services.Analyzer)
		tips.RegisterRoutes(v1, server.repos.Tips)
		users.RegisterRoutes(v1, server.repos.Users, server.authn)
		weather.RegisterRoutes(v1, server.services.Weather)
		dashboard.RegisterRoutes(v1, server.services.Dashboard, server.catalog, server.authn)
		i18n.RegisterRoutes(v1, server.catalog)
		pages.RegisterRoutes(v1, server.catalog)
	}
}
