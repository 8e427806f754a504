package detections

import (
	"fmt"
	"io"
	"net/http"

	"codeberg.org/krishisakhi/server/api/rest/pagination"
	"codeberg.org/krishisakhi/server/farm/detections"
	"codeberg.org/krishisakhi/server/internal/errors"
	"github.com/gin-gonic/gin"
)

// ListDetectionsHandler lists past diagnoses, newest first by default
func ListDetectionsHandler(detectionRepo *detections.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var filter detections.ListFilter
		if err := c.ShouldBindQuery(&filter); err != nil {
			errors.ValidationError(c, err)
			return
		}

		params := pagination.FromQuery(c)

		list, err := detectionRepo.List(c.Request.Context(), filter, params.Order, params.Limit)
		if err != nil {
			errors.InternalError(c, "failed to list detections", err)
			return
		}

		c.JSON(http.StatusOK, DetectionsListResponse{
			Detections: list,
			Pagination: pagination.NewMeta(params, len(list)),
		})
	}
}

func GetDetectionHandler(detectionRepo *detections.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		detection, err := detectionRepo.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			errors.Store(c, "detection", err)
			return
		}

		c.JSON(http.StatusOK, detection)
	}
}

func DeleteDetectionHandler(detectionRepo *detections.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := detectionRepo.Delete(c.Request.Context(), c.Param("id")); err != nil {
			errors.Store(c, "detection", err)
			return
		}

		c.JSON(http.StatusOK, MessageResponse{Message: "detection deleted"})
	}
}

// AnalyzeHandler godoc
// @Summary Diagnose a plant photo
// @Description Uploads the image, asks for a structured diagnosis and records it
// @Tags detections
// @Accept multipart/form-data
// @Produce json
// @Param image formData file true "Plant photo"
// @Success 201 {object} detections.Diagnosis
// @Failure 400 {object} errors.ErrorResponse
// @Failure 502 {object} errors.ErrorResponse
// @Router /api/v1/detections/analyze [post]
func AnalyzeHandler(analyzer *detections.Analyzer) gin.HandlerFunc {
	return func(c *gin.Context) {
		file, err := c.FormFile("image")
		if err != nil {
			errors.BadRequest(c, "image file required", err)
			return
		}

		if file.Size > maxImageSize {
			errors.BadRequest(c, fmt.Sprintf("image larger than %d MB", maxImageSize>>20), nil)
			return
		}

		f, err := file.Open()
		if err != nil {
			errors.BadRequest(c, "failed to read image", err)
			return
		}
		defer f.Close() //nolint:errcheck

		image, err := io.ReadAll(io.LimitReader(f, maxImageSize))
		if err != nil {
			errors.BadRequest(c, "failed to read image", err)
			return
		}

		diagnosis, err := analyzer.Diagnose(c.Request.Context(), image, file.Filename)
		if err != nil {
			errors.Generation(c, err)
			return
		}

		c.JSON(http.StatusCreated, diagnosis)
	}
}
