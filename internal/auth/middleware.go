package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	keyUserID    = "user_id"
	keyUserEmail = "user_email"
	keyUserName  = "user_name"
)

// validates JWT tokens and adds user info to context
func (a *Authenticator) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized", "message": "authorization header required"})
			c.Abort()
			return
		}

		token, ok := bearerToken(authHeader)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized", "message": "invalid authorization header format"})
			c.Abort()
			return
		}

		claims, err := a.ValidateJWT(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized", "message": "invalid or expired token"})
			c.Abort()
			return
		}

		setIdentity(c, claims)
		c.Next()
	}
}

// validates JWT if present but doesn't require it
func (a *Authenticator) OptionalMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := bearerToken(c.GetHeader("Authorization")); ok {
			if claims, err := a.ValidateJWT(token); err == nil {
				setIdentity(c, claims)
			}
		}

		c.Next()
	}
}

// extracts user_id from context after Middleware
func GetUserID(c *gin.Context) (string, bool) {
	userID := c.GetString(keyUserID)
	return userID, userID != ""
}

// extracts the full identity from context after Middleware
func GetIdentity(c *gin.Context) (Identity, bool) {
	id := Identity{
		UserID: c.GetString(keyUserID),
		Email:  c.GetString(keyUserEmail),
		Name:   c.GetString(keyUserName),
	}

	return id, id.UserID != ""
}

func bearerToken(header string) (string, bool) {
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}

	return parts[1], true
}

func setIdentity(c *gin.Context, claims *Claims) {
	c.Set(keyUserID, claims.UserID)
	c.Set(keyUserEmail, claims.Email)
	c.Set(keyUserName, claims.Name)
}
