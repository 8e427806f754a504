package pagination

import (
	"net/http/httptest"
	"testing"

	"codeberg.org/krishisakhi/server/internal/store"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestDefaultParams(t *testing.T) {
	tests := []struct {
		name      string
		order     string
		limit     int
		wantOrder store.Order
		wantLimit int
	}{
		{"defaults", "", 0, store.Order{Field: "created_date", Desc: true}, 10},
		{"ascending field", "name", 5, store.Order{Field: "name"}, 5},
		{"descending field", "-likes_count", 5, store.Order{Field: "likes_count", Desc: true}, 5},
		{"clamped", "", 500, store.Order{Field: "created_date", Desc: true}, 100},
		{"negative", "", -3, store.Order{Field: "created_date", Desc: true}, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := DefaultParams(tt.order, tt.limit, 10, 100)
			assert.Equal(t, tt.wantOrder, params.Order)
			assert.Equal(t, tt.wantLimit, params.Limit)
		})
	}
}

func TestFromQuery(t *testing.T) {
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/crops?order=-planting_date&limit=abc", nil)

	params := FromQuery(c)
	assert.Equal(t, store.Order{Field: "planting_date", Desc: true}, params.Order)
	assert.Equal(t, DefaultLimit, params.Limit)

	meta := NewMeta(params, 3)
	assert.Equal(t, Meta{Order: "-planting_date", Limit: DefaultLimit, Count: 3}, meta)
}
