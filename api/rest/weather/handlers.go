package weather

import (
	"net/http"

	"codeberg.org/krishisakhi/server/farm/weather"
	"codeberg.org/krishisakhi/server/internal/errors"
	"github.com/gin-gonic/gin"
)

// ReportHandler godoc
// @Summary Farming weather report
// @Description Current conditions, a 7-day forecast, alerts and best times for field work
// @Tags weather
// @Produce json
// @Param location query string false "place name; empty lets the service infer one"
// @Success 200 {object} weather.Report
// @Failure 502 {object} errors.ErrorResponse
// @Router /api/v1/weather [get]
func ReportHandler(weatherSvc *weather.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var q weather.Query
		if err := c.ShouldBindQuery(&q); err != nil {
			errors.ValidationError(c, err)
			return
		}

		report, err := weatherSvc.Report(c.Request.Context(), q.Location)
		if err != nil {
			errors.Generation(c, err)
			return
		}

		c.JSON(http.StatusOK, report)
	}
}

// BriefHandler returns the short conditions summary used on the dashboard
func BriefHandler(weatherSvc *weather.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var q weather.Query
		if err := c.ShouldBindQuery(&q); err != nil {
			errors.ValidationError(c, err)
			return
		}

		brief, err := weatherSvc.Brief(c.Request.Context(), q.Location)
		if err != nil {
			errors.Generation(c, err)
			return
		}

		c.JSON(http.StatusOK, brief)
	}
}
