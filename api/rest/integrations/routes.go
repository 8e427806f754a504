package integrations

import (
	"codeberg.org/krishisakhi/server/internal/generation"
	"github.com/gin-gonic/gin"
)

// exposes the generation client with the same wire shapes it speaks upstream
func RegisterRoutes(router *gin.RouterGroup, generator generation.Generator, uploader generation.Uploader) {
	router.POST("/llm/invoke", InvokeHandler(generator))
	router.POST("/upload", UploadHandler(uploader))
}
