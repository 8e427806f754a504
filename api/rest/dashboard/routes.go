package dashboard

import (
	"codeberg.org/krishisakhi/server/farm/dashboard"
	"codeberg.org/krishisakhi/server/internal/auth"
	"codeberg.org/krishisakhi/server/internal/i18n"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.RouterGroup, dashboardSvc *dashboard.Service, catalog *i18n.Catalog, authn *auth.Authenticator) {
	// signed-in users are greeted by name
	router.GET("/dashboard", authn.OptionalMiddleware(), GetDashboard(dashboardSvc, catalog))
}
