package pages

import (
	"codeberg.org/krishisakhi/server/internal/i18n"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.RouterGroup, catalog *i18n.Catalog) {
	router.GET("/pages", NavigationHandler(catalog))
}
