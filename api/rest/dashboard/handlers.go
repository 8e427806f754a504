package dashboard

import (
	"net/http"

	"codeberg.org/krishisakhi/server/farm/dashboard"
	"codeberg.org/krishisakhi/server/internal/auth"
	"codeberg.org/krishisakhi/server/internal/errors"
	"codeberg.org/krishisakhi/server/internal/i18n"
	"codeberg.org/krishisakhi/server/internal/logger"
	"github.com/gin-gonic/gin"
)

// GetDashboard godoc
// @Summary Home screen
// @Description Greeting, quick actions, active crops, recent detections, featured tips and a weather brief
// @Tags dashboard
// @Produce json
// @Param location query string false "place name for the weather brief"
// @Param lang query string false "response language"
// @Success 200 {object} dashboard.Dashboard
// @Router /api/v1/dashboard [get]
func GetDashboard(dashboardSvc *dashboard.Service, catalog *i18n.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		var q Query
		if err := c.ShouldBindQuery(&q); err != nil {
			errors.ValidationError(c, err)
			return
		}

		userID, _ := auth.GetUserID(c)

		d, err := dashboardSvc.Load(c.Request.Context(), dashboard.Options{
			UserID:     userID,
			Location:   q.Location,
			Translator: i18n.FromContext(c, catalog),
		})
		if err != nil {
			errors.InternalError(c, "failed to load dashboard", err)
			return
		}

		// the page still renders without weather
		if werr := d.WeatherErr(); werr != nil {
			logger.Warn("dashboard weather unavailable",
				"error", werr.Error(),
				"location", q.Location,
			)
		}

		c.JSON(http.StatusOK, d)
	}
}
