package community

import (
	"codeberg.org/krishisakhi/server/farm/community"
	"codeberg.org/krishisakhi/server/internal/auth"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.RouterGroup, postRepo *community.Repository, authn *auth.Authenticator) {
	communityGroup := router.Group("/community")
	{
		communityGroup.GET("/stats", StatsHandler(postRepo))
		communityGroup.GET("/posts", ListPostsHandler(postRepo))
		// author comes from the token when one is sent
		communityGroup.POST("/posts", authn.OptionalMiddleware(), CreatePostHandler(postRepo))
		communityGroup.GET("/posts/:id", GetPostHandler(postRepo))
		communityGroup.PUT("/posts/:id", UpdatePostHandler(postRepo))
		communityGroup.DELETE("/posts/:id", DeletePostHandler(postRepo))
		communityGroup.POST("/posts/:id/like", LikePostHandler(postRepo))
		communityGroup.POST("/posts/:id/resolve", ResolvePostHandler(postRepo))
	}
}
