package detections

import (
	"codeberg.org/krishisakhi/server/farm/detections"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.RouterGroup, detectionRepo *detections.Repository, analyzer *detections.Analyzer) {
	detectionsGroup := router.Group("/detections")
	{
		detectionsGroup.GET("", ListDetectionsHandler(detectionRepo))
		detectionsGroup.POST("/analyze", AnalyzeHandler(analyzer))
		detectionsGroup.GET("/:id", GetDetectionHandler(detectionRepo))
		detectionsGroup.DELETE("/:id", DeleteDetectionHandler(detectionRepo))
	}
}
