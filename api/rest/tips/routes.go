package tips

import (
	"codeberg.org/krishisakhi/server/farm/tips"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.RouterGroup, tipRepo *tips.Repository) {
	tipsGroup := router.Group("/tips")
	{
		tipsGroup.GET("", ListTipsHandler(tipRepo))
		tipsGroup.POST("", CreateTipHandler(tipRepo))
		tipsGroup.GET("/:id", GetTipHandler(tipRepo))
		tipsGroup.PUT("/:id", UpdateTipHandler(tipRepo))
		tipsGroup.DELETE("/:id", DeleteTipHandler(tipRepo))
	}
}
