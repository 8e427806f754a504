package weather

import (
	"codeberg.org/krishisakhi/server/farm/weather"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.RouterGroup, weatherSvc *weather.Service) {
	router.GET("/weather", ReportHandler(weatherSvc))
	router.GET("/weather/brief", BriefHandler(weatherSvc))
}
