package crops

import (
	"codeberg.org/krishisakhi/server/farm/crops"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.RouterGroup, cropRepo *crops.Repository) {
	cropsGroup := router.Group("/crops")
	{
		cropsGroup.GET("", ListCropsHandler(cropRepo))
		cropsGroup.POST("", CreateCropHandler(cropRepo))
		cropsGroup.GET("/summary", SummaryHandler(cropRepo))
		cropsGroup.GET("/:id", GetCropHandler(cropRepo))
		cropsGroup.PUT("/:id", UpdateCropHandler(cropRepo))
		cropsGroup.PATCH("/:id/status", SetStatusHandler(cropRepo))
		cropsGroup.DELETE("/:id", DeleteCropHandler(cropRepo))
	}
}
