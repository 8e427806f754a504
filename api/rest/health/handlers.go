package health

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	serviceName = "krishisakhi"
	version     = "1.0.0"
)

// Handler godoc
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} Response
// @Router /health [get]
func Handler(storeDriver string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, Response{
			Status:  "healthy",
			Service: serviceName,
			Version: version,
			Store:   storeDriver,
		})
	}
}

// responds with pong for testing
func PingHandler(c *gin.Context) {
	c.JSON(http.StatusOK, PingResponse{
		Message: "pong",
	})
}
