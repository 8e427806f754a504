package crops

import (
	"net/http"

	"codeberg.org/krishisakhi/server/api/rest/pagination"
	"codeberg.org/krishisakhi/server/farm/crops"
	"codeberg.org/krishisakhi/server/internal/errors"
	"github.com/gin-gonic/gin"
)

// ListCropsHandler godoc
// @Summary List crops
// @Description Lists crops, optionally filtered by status
// @Tags crops
// @Produce json
// @Param status query string false "active, harvested or failed"
// @Param order query string false "sort field, '-' prefix for descending" default(-created_date)
// @Param limit query int false "max results" default(50)
// @Success 200 {object} CropsListResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /api/v1/crops [get]
func ListCropsHandler(cropRepo *crops.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var filter crops.ListFilter
		if err := c.ShouldBindQuery(&filter); err != nil {
			errors.ValidationError(c, err)
			return
		}

		params := pagination.FromQuery(c)

		list, err := cropRepo.List(c.Request.Context(), filter, params.Order, params.Limit)
		if err != nil {
			errors.InternalError(c, "failed to list crops", err)
			return
		}

		c.JSON(http.StatusOK, CropsListResponse{
			Crops:      list,
			Pagination: pagination.NewMeta(params, len(list)),
		})
	}
}

// CreateCropHandler godoc
// @Summary Register a crop
// @Tags crops
// @Accept json
// @Produce json
// @Param request body crops.CreateCropRequest true "Crop"
// @Success 201 {object} crops.Crop
// @Failure 400 {object} errors.ErrorResponse
// @Router /api/v1/crops [post]
func CreateCropHandler(cropRepo *crops.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req crops.CreateCropRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		crop, err := cropRepo.Create(c.Request.Context(), req)
		if err != nil {
			errors.InternalError(c, "failed to create crop", err)
			return
		}

		c.JSON(http.StatusCreated, crop)
	}
}

// GetCropHandler gets a single crop by ID
func GetCropHandler(cropRepo *crops.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		crop, err := cropRepo.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			errors.Store(c, "crop", err)
			return
		}

		c.JSON(http.StatusOK, crop)
	}
}

// UpdateCropHandler changes only the supplied fields of a crop
func UpdateCropHandler(cropRepo *crops.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req crops.UpdateCropRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		crop, err := cropRepo.Update(c.Request.Context(), c.Param("id"), req)
		if err != nil {
			errors.Store(c, "crop", err)
			return
		}

		c.JSON(http.StatusOK, crop)
	}
}

// SetStatusHandler godoc
// @Summary Mark a crop active, harvested or failed
// @Tags crops
// @Accept json
// @Produce json
// @Param id path string true "Crop ID"
// @Param request body crops.SetStatusRequest true "Status"
// @Success 200 {object} crops.Crop
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /api/v1/crops/{id}/status [patch]
func SetStatusHandler(cropRepo *crops.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req crops.SetStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		crop, err := cropRepo.SetStatus(c.Request.Context(), c.Param("id"), req.Status)
		if err != nil {
			errors.Store(c, "crop", err)
			return
		}

		c.JSON(http.StatusOK, crop)
	}
}

// DeleteCropHandler deletes a crop
func DeleteCropHandler(cropRepo *crops.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := cropRepo.Delete(c.Request.Context(), c.Param("id")); err != nil {
			errors.Store(c, "crop", err)
			return
		}

		c.JSON(http.StatusOK, MessageResponse{Message: "crop deleted"})
	}
}

// SummaryHandler returns totals and the health score over active crops
func SummaryHandler(cropRepo *crops.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		summary, err := cropRepo.Summary(c.Request.Context())
		if err != nil {
			errors.InternalError(c, "failed to summarize crops", err)
			return
		}

		c.JSON(http.StatusOK, summary)
	}
}
