package tips

import (
	"net/http"

	"codeberg.org/krishisakhi/server/api/rest/pagination"
	"codeberg.org/krishisakhi/server/farm/tips"
	"codeberg.org/krishisakhi/server/internal/errors"
	"github.com/gin-gonic/gin"
)

// ListTipsHandler godoc
// @Summary List expert tips
// @Description Lists tips by category, difficulty or season; a season also matches all-season tips
// @Tags tips
// @Produce json
// @Param category query string false "tip category"
// @Param difficulty query string false "beginner, intermediate or advanced"
// @Param season query string false "spring, summer, autumn, winter or all_seasons"
// @Param q query string false "search in title, content and crop types"
// @Success 200 {object} TipsListResponse
// @Router /api/v1/tips [get]
func ListTipsHandler(tipRepo *tips.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var filter tips.ListFilter
		if err := c.ShouldBindQuery(&filter); err != nil {
			errors.ValidationError(c, err)
			return
		}

		params := pagination.FromQuery(c)

		list, err := tipRepo.List(c.Request.Context(), filter, params.Order, params.Limit)
		if err != nil {
			errors.InternalError(c, "failed to list tips", err)
			return
		}

		c.JSON(http.StatusOK, TipsListResponse{
			Tips:       list,
			Pagination: pagination.NewMeta(params, len(list)),
		})
	}
}

// GetTipHandler returns a tip with its markdown rendered as content_html
func GetTipHandler(tipRepo *tips.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		detail, err := tipRepo.GetDetail(c.Request.Context(), c.Param("id"))
		if err != nil {
			errors.Store(c, "tip", err)
			return
		}

		c.JSON(http.StatusOK, detail)
	}
}

func CreateTipHandler(tipRepo *tips.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req tips.CreateTipRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		tip, err := tipRepo.Create(c.Request.Context(), req)
		if err != nil {
			errors.InternalError(c, "failed to create tip", err)
			return
		}

		c.JSON(http.StatusCreated, tip)
	}
}

func UpdateTipHandler(tipRepo *tips.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req tips.UpdateTipRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		tip, err := tipRepo.Update(c.Request.Context(), c.Param("id"), req)
		if err != nil {
			errors.Store(c, "tip", err)
			return
		}

		c.JSON(http.StatusOK, tip)
	}
}

func DeleteTipHandler(tipRepo *tips.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := tipRepo.Delete(c.Request.Context(), c.Param("id")); err != nil {
			errors.Store(c, "tip", err)
			return
		}

		c.JSON(http.StatusOK, MessageResponse{Message: "tip deleted"})
	}
}
