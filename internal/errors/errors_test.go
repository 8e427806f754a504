package errors

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"codeberg.org/krishisakhi/server/internal/generation"
	"codeberg.org/krishisakhi/server/internal/store"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func respond(t *testing.T, fn func(c *gin.Context)) (int, ErrorResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/llm/invoke", nil)

	fn(c)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	return w.Code, body
}

func TestGeneration_MapsEveryKind(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{
			name:   "invalid request",
			err:    &generation.Error{Op: generation.OpGenerate, Kind: generation.KindInvalidRequest, Err: fmt.Errorf("prompt is required")},
			status: http.StatusBadRequest,
			code:   CodeInvalidRequest,
		},
		{
			name:   "upstream",
			err:    &generation.Error{Op: generation.OpGenerate, Kind: generation.KindUpstream, Status: 503},
			status: http.StatusBadGateway,
			code:   CodeUpstreamError,
		},
		{
			name:   "network",
			err:    &generation.Error{Op: generation.OpGenerate, Kind: generation.KindNetwork, Err: fmt.Errorf("connection refused")},
			status: http.StatusBadGateway,
			code:   CodeNetworkError,
		},
		{
			name:   "timeout",
			err:    &generation.Error{Op: generation.OpGenerate, Kind: generation.KindNetwork, Err: context.DeadlineExceeded},
			status: http.StatusGatewayTimeout,
			code:   CodeTimeout,
		},
		{
			name:   "malformed",
			err:    &generation.Error{Op: generation.OpUpload, Kind: generation.KindMalformedResponse, Err: fmt.Errorf("missing file_url")},
			status: http.StatusBadGateway,
			code:   CodeMalformedResponse,
		},
		{
			name:   "cancelled",
			err:    &generation.Error{Op: generation.OpGenerate, Kind: generation.KindCancelled, Err: context.Canceled},
			status: StatusClientClosedRequest,
			code:   CodeCancelled,
		},
		{
			name:   "foreign error",
			err:    fmt.Errorf("boom"),
			status: http.StatusInternalServerError,
			code:   CodeServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := respond(t, func(c *gin.Context) { Generation(c, tt.err) })

			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, body.Error)
		})
	}
}

func TestGeneration_UpstreamStatusInDetails(t *testing.T) {
	err := fmt.Errorf("diagnose: %w", &generation.Error{Op: generation.OpGenerate, Kind: generation.KindUpstream, Status: 429})

	_, body := respond(t, func(c *gin.Context) { Generation(c, err) })

	assert.Equal(t, "upstream status 429", body.Details)
}

func TestStore_MapsSentinels(t *testing.T) {
	status, body := respond(t, func(c *gin.Context) {
		Store(c, "crop", fmt.Errorf("failed to get crops x: %w", store.ErrNotFound))
	})
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "crop not found", body.Message)

	status, _ = respond(t, func(c *gin.Context) { Store(c, "crop", store.ErrConflict) })
	assert.Equal(t, http.StatusConflict, status)

	status, _ = respond(t, func(c *gin.Context) { Store(c, "crop", fmt.Errorf("disk on fire")) })
	assert.Equal(t, http.StatusInternalServerError, status)
}

func TestSanitizeError_Production(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")

	assert.Equal(t, "resource not found", sanitizeError(store.ErrNotFound))
	assert.Equal(t, "request timed out", sanitizeError(context.DeadlineExceeded))
	assert.Equal(t, "database operation failed", sanitizeError(fmt.Errorf("postgres: relation missing")))
	assert.Equal(t, "an error occurred", sanitizeError(fmt.Errorf("something odd")))
}

func TestSanitizeError_Development(t *testing.T) {
	t.Setenv("ENVIRONMENT", "development")

	assert.Equal(t, "postgres: relation missing", sanitizeError(fmt.Errorf("postgres: relation missing")))
	assert.Empty(t, sanitizeError(nil))
}
