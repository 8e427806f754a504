package tips

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"codeberg.org/krishisakhi/server/farm/tips"
	"codeberg.org/krishisakhi/server/internal/store"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := tips.NewRepository(store.NewCollection[tips.Tip](store.NewMemoryBackend(), tips.Kind))

	r := gin.New()
	RegisterRoutes(r.Group("/api/v1"), repo)

	return r
}

func do(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	r.ServeHTTP(w, req)

	return w
}

func TestGetTip_RendersMarkdown(t *testing.T) {
	r := newTestRouter(t)

	w := do(r, http.MethodPost, "/api/v1/tips", `{"title":"Neem spray","content":"Mix **neem oil** with water","category":"pest_control"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var tip tips.Tip
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tip))
	assert.Equal(t, tips.SeasonAllSeasons, tip.Season)

	w = do(r, http.MethodGet, "/api/v1/tips/"+tip.ID, "")
	require.Equal(t, http.StatusOK, w.Code)

	var detail tips.Detail
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &detail))
	assert.Contains(t, detail.ContentHTML, "<strong>neem oil</strong>")
	assert.Equal(t, "Neem spray", detail.Title)
}

func TestListTips_SeasonIncludesAllSeasons(t *testing.T) {
	r := newTestRouter(t)

	do(r, http.MethodPost, "/api/v1/tips", `{"title":"Mulching","content":"Keep soil moist","category":"soil_management","season":"summer"}`)
	do(r, http.MethodPost, "/api/v1/tips", `{"title":"Frost cover","content":"Cover seedlings","category":"planting","season":"winter"}`)
	do(r, http.MethodPost, "/api/v1/tips", `{"title":"Compost","content":"Add organic matter","category":"fertilization"}`)

	w := do(r, http.MethodGet, "/api/v1/tips?season=summer&order=title", "")
	require.Equal(t, http.StatusOK, w.Code)

	var list TipsListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list.Tips, 2)
	assert.Equal(t, "Compost", list.Tips[0].Title)
	assert.Equal(t, "Mulching", list.Tips[1].Title)

	w = do(r, http.MethodGet, "/api/v1/tips?difficulty=expert", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
