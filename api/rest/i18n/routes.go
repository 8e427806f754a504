package i18n

import (
	"codeberg.org/krishisakhi/server/internal/i18n"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.RouterGroup, catalog *i18n.Catalog) {
	router.GET("/i18n", ListLanguagesHandler(catalog))
	router.GET("/i18n/:lang", MessagesHandler(catalog))
}
