package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-testing"

var testIdentity = Identity{UserID: "user-123", Email: "test@example.com", Name: "Ravi Kumar"}

func TestGenerateJWT_Success(t *testing.T) {
	token, err := New(testSecret).GenerateJWT(testIdentity)

	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, 3, len(strings.Split(token, ".")), "JWT should have 3 parts")
}

func TestGenerateJWT_MissingSecret(t *testing.T) {
	_, err := New("").GenerateJWT(testIdentity)

	assert.ErrorIs(t, err, ErrMissingSecret)
}

func TestValidateJWT_ValidToken(t *testing.T) {
	a := New(testSecret)

	token, err := a.GenerateJWT(testIdentity)
	require.NoError(t, err)

	claims, err := a.ValidateJWT(token)

	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "test@example.com", claims.Email)
	assert.Equal(t, "Ravi Kumar", claims.Name)
}

func TestValidateJWT_ExpiredToken(t *testing.T) {
	claims := Claims{
		UserID: "user-123",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-1 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = New(testSecret).ValidateJWT(tokenString)

	assert.Error(t, err, "expired token should be rejected")
}

func TestValidateJWT_TamperedToken(t *testing.T) {
	a := New(testSecret)

	token, err := a.GenerateJWT(testIdentity)
	require.NoError(t, err)

	tamperedToken := token[:len(token)-5] + "XXXXX"

	_, err = a.ValidateJWT(tamperedToken)
	assert.Error(t, err, "tampered token should be rejected")
}

func TestValidateJWT_WrongSecret(t *testing.T) {
	token, err := New(testSecret).GenerateJWT(testIdentity)
	require.NoError(t, err)

	_, err = New("different-secret-key").ValidateJWT(token)

	assert.Error(t, err, "token signed with different secret should be rejected")
}

func TestValidateJWT_AlgorithmConfusionAttack(t *testing.T) {
	claims := Claims{
		UserID: "attacker",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodNone, claims)
	tokenString, _ := token.SignedString(jwt.UnsafeAllowNoneSignatureType) //nolint:errcheck // test code

	_, err := New(testSecret).ValidateJWT(tokenString)
	assert.Error(t, err, "token with 'none' algorithm should be rejected")
}

func TestValidateJWT_MalformedToken(t *testing.T) {
	a := New(testSecret)

	for _, token := range []string{"", "not.a.jwt", "only.two", "<script>alert('xss')</script>"} {
		_, err := a.ValidateJWT(token)
		assert.Error(t, err, "malformed token '%s' should be rejected", token)
	}
}

func TestJWT_TokenExpiration(t *testing.T) {
	a := New(testSecret)

	token, err := a.GenerateJWT(testIdentity)
	require.NoError(t, err)

	claims, err := a.ValidateJWT(token)
	require.NoError(t, err)

	expectedExpiry := time.Now().Add(7 * 24 * time.Hour)
	timeDiff := claims.ExpiresAt.Time.Sub(expectedExpiry).Abs()

	assert.Less(t, timeDiff, 5*time.Second, "expiration should be approximately 7 days from now")
}

func newTestRouter(a *Authenticator, mw gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/me", mw, func(c *gin.Context) {
		id, ok := GetIdentity(c)
		c.JSON(http.StatusOK, gin.H{"authenticated": ok, "user_id": id.UserID, "name": id.Name})
	})

	return r
}

func TestMiddleware(t *testing.T) {
	a := New(testSecret)
	token, err := a.GenerateJWT(testIdentity)
	require.NoError(t, err)

	r := newTestRouter(a, a.Middleware())

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"bad token", "Bearer nope", http.StatusUnauthorized},
		{"valid token", "Bearer " + token, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusOK {
				assert.Contains(t, w.Body.String(), `"user_id":"user-123"`)
				assert.Contains(t, w.Body.String(), `"name":"Ravi Kumar"`)
			}
		})
	}
}

func TestOptionalMiddleware_AllowsAnonymous(t *testing.T) {
	a := New(testSecret)
	r := newTestRouter(a, a.OptionalMiddleware())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"authenticated":false`)
}
