package integrations

import (
	"io"
	"net/http"

	"codeberg.org/krishisakhi/server/internal/errors"
	"codeberg.org/krishisakhi/server/internal/generation"
	"github.com/gin-gonic/gin"
)

// InvokeHandler godoc
// @Summary Structured generation
// @Description Forwards a prompt and optional JSON schema to the generation service and returns its JSON answer
// @Tags integrations
// @Accept json
// @Produce json
// @Param request body generation.Request true "Generation request"
// @Success 200 {object} object
// @Failure 400 {object} errors.ErrorResponse
// @Failure 502 {object} errors.ErrorResponse
// @Failure 504 {object} errors.ErrorResponse
// @Router /api/v1/llm/invoke [post]
func InvokeHandler(generator generation.Generator) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req generation.Request
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		resp, err := generator.Generate(c.Request.Context(), &req)
		if err != nil {
			errors.Generation(c, err)
			return
		}

		c.Data(http.StatusOK, "application/json; charset=utf-8", resp.Body)
	}
}

// UploadHandler godoc
// @Summary Upload a file
// @Description Stores a file with the generation service and returns a URL usable as an attachment
// @Tags integrations
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "File"
// @Success 200 {object} generation.UploadResult
// @Failure 400 {object} errors.ErrorResponse
// @Failure 502 {object} errors.ErrorResponse
// @Router /api/v1/upload [post]
func UploadHandler(uploader generation.Uploader) gin.HandlerFunc {
	return func(c *gin.Context) {
		file, err := c.FormFile("file")
		if err != nil {
			errors.BadRequest(c, "file required", err)
			return
		}

		if file.Size > maxUploadSize {
			errors.BadRequest(c, "file too large", nil)
			return
		}

		f, err := file.Open()
		if err != nil {
			errors.BadRequest(c, "failed to read file", err)
			return
		}
		defer f.Close() //nolint:errcheck

		data, err := io.ReadAll(io.LimitReader(f, maxUploadSize))
		if err != nil {
			errors.BadRequest(c, "failed to read file", err)
			return
		}

		result, err := uploader.Upload(c.Request.Context(), data, file.Filename)
		if err != nil {
			errors.Generation(c, err)
			return
		}

		c.JSON(http.StatusOK, result)
	}
}
