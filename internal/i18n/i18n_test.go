package i18n

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCatalog(t *testing.T) *Catalog {
	t.Helper()

	c, err := NewCatalog("en")
	require.NoError(t, err)

	return c
}

func TestNewCatalog_LoadsEmbeddedLocales(t *testing.T) {
	c := newTestCatalog(t)

	assert.Equal(t, []string{"en", "hi"}, c.Languages())
	assert.Equal(t, "Disease Detection", c.Translator("en").T("diseaseDetection"))
	assert.Equal(t, "रोग पहचान", c.Translator("hi").T("diseaseDetection"))

	// every english key has a hindi translation
	for key := range c.messages["en"] {
		assert.Contains(t, c.messages["hi"], key)
	}
}

func TestNewCatalog_RejectsUnknownDefault(t *testing.T) {
	_, err := NewCatalog("fr")
	assert.Error(t, err)
}

func TestTranslator_FallsBack(t *testing.T) {
	c, err := newCatalog("en", map[string]map[string]string{
		"en": {"greetingMorning": "Good morning", "farmer": "Farmer"},
		"hi": {"greetingMorning": "सुप्रभात", "farmer": ""},
	})
	require.NoError(t, err)

	hi := c.Translator("hi")
	assert.Equal(t, "सुप्रभात", hi.T("greetingMorning"))
	assert.Equal(t, "Farmer", hi.T("farmer"), "empty translation falls back to default language")
	assert.Equal(t, "unknownKey", hi.T("unknownKey"), "unknown key falls back to itself")

	assert.Equal(t, "en", c.Translator("ta").Language())
	assert.Equal(t, "key", Translator{}.T("key"))
}

func TestCatalog_Match(t *testing.T) {
	c := newTestCatalog(t)

	tests := []struct {
		name        string
		preferences []string
		want        string
	}{
		{"query code", []string{"hi", "en-US"}, "hi"},
		{"accept language", []string{"", "hi-IN,hi;q=0.9,en;q=0.8"}, "hi"},
		{"regional english", []string{"", "en-GB"}, "en"},
		{"unsupported", []string{"fr", "de-DE"}, "en"},
		{"garbage", []string{"!!", ""}, "en"},
		{"nothing", nil, "en"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Match(tt.preferences...))
		})
	}
}

func TestCatalog_MessagesFillsMissingKeys(t *testing.T) {
	c, err := newCatalog("en", map[string]map[string]string{
		"en": {"a": "A", "b": "B"},
		"hi": {"a": "अ"},
	})
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"a": "अ", "b": "B"}, c.Messages("hi"))
}

func TestMiddleware_NegotiatesLanguage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c := newTestCatalog(t)

	r := gin.New()
	r.Use(c.Middleware())
	r.GET("/greet", func(ctx *gin.Context) {
		ctx.String(http.StatusOK, FromContext(ctx, c).T("greetingEvening"))
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/greet", nil)
	req.Header.Set("Accept-Language", "hi")
	r.ServeHTTP(w, req)

	assert.Equal(t, "शुभ संध्या", w.Body.String())
	assert.Equal(t, "hi", w.Header().Get("Content-Language"))

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/greet?lang=en", nil)
	req.Header.Set("Accept-Language", "hi")
	r.ServeHTTP(w, req)

	assert.Equal(t, "Good evening", w.Body.String())
}
