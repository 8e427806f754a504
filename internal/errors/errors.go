package errors

import (
	"errors"
	"fmt"
	"net/http"

	"codeberg.org/krishisakhi/server/internal/generation"
	"codeberg.org/krishisakhi/server/internal/logger"
	"codeberg.org/krishisakhi/server/internal/store"
	"github.com/gin-gonic/gin"
)

// Error Handling Guidelines:
//
// For HTTP REST handlers:
//   - Use errors.InternalError(), errors.BadRequest(), etc. for critical errors
//     These functions handle both logging and HTTP response automatically
//   - Use errors.Generation() for anything returned by the generation client
//     and errors.Store() for anything returned by a repository
//   - Never call both logger.ErrorErr() and errors.InternalError() for the same error
//
// For services/repositories/internal packages:
//   - Return wrapped errors with context using fmt.Errorf("context: %w", err)
//   - Let the caller (handler) decide how to log and respond

// returns a 401 unauthorized error
func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "authentication required"
	}

	c.JSON(http.StatusUnauthorized, ErrorResponse{
		Error:   CodeUnauthorized,
		Message: message,
	})
}

// returns a 404 not found error
func NotFound(c *gin.Context, resource string) {
	message := "resource not found"

	if resource != "" {
		message = resource + " not found"
	}

	c.JSON(http.StatusNotFound, ErrorResponse{
		Error:   CodeNotFound,
		Message: message,
	})
}

// returns a 400 bad request error
func BadRequest(c *gin.Context, message string, err error) {
	if message == "" {
		message = "invalid request"
	}

	response := ErrorResponse{
		Error:   CodeBadRequest,
		Message: message,
	}

	if err != nil {
		response.Details = sanitizeError(err)
	}

	c.JSON(http.StatusBadRequest, response)
}

// returns a 400 bad request error for binding failures
func ValidationError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:   CodeValidationError,
		Message: "request validation failed",
		Details: sanitizeError(err),
	})
}

// returns a 500 internal server error
func InternalError(c *gin.Context, message string, err error) {
	if message == "" {
		message = "an error occurred"
	}

	// log full error server-side with context
	logger.ErrorErr(err, message,
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
		"user_id", c.GetString("user_id"),
	)

	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error:   CodeServerError,
		Message: message,
		Details: sanitizeError(err),
	})
}

// returns a 409 conflict error
func Conflict(c *gin.Context, message string) {
	if message == "" {
		message = "resource conflict"
	}

	c.JSON(http.StatusConflict, ErrorResponse{
		Error:   CodeConflict,
		Message: message,
	})
}

// responds to an error returned by a repository
func Store(c *gin.Context, resource string, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		NotFound(c, resource)
	case errors.Is(err, store.ErrConflict):
		Conflict(c, resource+" already exists")
	default:
		InternalError(c, "failed to access "+resource, err)
	}
}

// responds to an error returned by the generation client
func Generation(c *gin.Context, err error) {
	var genErr *generation.Error
	if !errors.As(err, &genErr) {
		InternalError(c, "generation failed", err)
		return
	}

	fields := []any{
		"path", c.Request.URL.Path,
		"op", genErr.Op,
		"kind", genErr.Kind,
	}

	switch genErr.Kind {
	case generation.KindInvalidRequest:
		// caller input; the message is safe to return
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   CodeInvalidRequest,
			Message: "invalid generation request",
			Details: genErr.Error(),
		})

	case generation.KindUpstream:
		logger.ErrorErr(err, "generation service returned an error", append(fields, "status", genErr.Status, "body", genErr.Body)...)
		c.JSON(http.StatusBadGateway, ErrorResponse{
			Error:   CodeUpstreamError,
			Message: "generation service returned an error",
			Details: fmt.Sprintf("upstream status %d", genErr.Status),
		})

	case generation.KindNetwork:
		logger.ErrorErr(err, "generation service unreachable", fields...)
		if genErr.Timeout() {
			c.JSON(http.StatusGatewayTimeout, ErrorResponse{
				Error:   CodeTimeout,
				Message: "generation service timed out",
			})
			return
		}

		c.JSON(http.StatusBadGateway, ErrorResponse{
			Error:   CodeNetworkError,
			Message: "generation service unreachable",
			Details: sanitizeError(genErr.Err),
		})

	case generation.KindMalformedResponse:
		logger.ErrorErr(err, "generation service returned a malformed response", fields...)
		c.JSON(http.StatusBadGateway, ErrorResponse{
			Error:   CodeMalformedResponse,
			Message: "generation service returned a malformed response",
			Details: sanitizeError(genErr.Err),
		})

	case generation.KindCancelled:
		logger.Debug("generation cancelled by client", fields...)
		c.JSON(StatusClientClosedRequest, ErrorResponse{
			Error:   CodeCancelled,
			Message: "request cancelled",
		})

	default:
		InternalError(c, "generation failed", err)
	}
}
