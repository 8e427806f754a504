package pages

import (
	"net/http"

	"codeberg.org/krishisakhi/server/internal/i18n"
	"codeberg.org/krishisakhi/server/internal/pages"
	"github.com/gin-gonic/gin"
)

// NavigationHandler godoc
// @Summary App navigation
// @Description The main navigation in display order; ?path= marks the page it belongs to
// @Tags pages
// @Produce json
// @Param path query string false "current client path, e.g. /weather"
// @Param lang query string false "response language"
// @Success 200 {object} NavigationResponse
// @Router /api/v1/pages [get]
func NavigationHandler(catalog *i18n.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		t := i18n.FromContext(c, catalog)

		items := pages.Navigation()
		entries := make([]NavEntry, len(items))
		for i, item := range items {
			entries[i] = NavEntry{
				Page:     item.Page,
				Title:    t.T(item.TitleKey),
				TitleKey: item.TitleKey,
				URL:      item.URL,
			}
		}

		resp := NavigationResponse{
			Language:   t.Language(),
			Navigation: entries,
		}

		if path := c.Query("path"); path != "" {
			resp.Current = pages.FromPath(path)
		}

		c.JSON(http.StatusOK, resp)
	}
}
