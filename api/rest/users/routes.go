package users

import (
	"codeberg.org/krishisakhi/server/farm/users"
	"codeberg.org/krishisakhi/server/internal/auth"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.RouterGroup, userRepo *users.Repository, authn *auth.Authenticator) {
	usersGroup := router.Group("/users")
	{
		usersGroup.GET("/me", authn.Middleware(), GetMe(userRepo))
		usersGroup.GET("", ListUsers(userRepo))
		usersGroup.POST("", CreateUser(userRepo))
		usersGroup.PUT("/:id", UpdateUser(userRepo))
		usersGroup.DELETE("/:id", DeleteUser(userRepo))
	}
}
