package community

import (
	"net/http"

	"codeberg.org/krishisakhi/server/api/rest/pagination"
	"codeberg.org/krishisakhi/server/farm/community"
	"codeberg.org/krishisakhi/server/internal/auth"
	"codeberg.org/krishisakhi/server/internal/errors"
	"github.com/gin-gonic/gin"
)

// ListPostsHandler godoc
// @Summary List community posts
// @Description Lists posts, optionally by category or matching a search term
// @Tags community
// @Produce json
// @Param category query string false "post category"
// @Param q query string false "search in title, content and tags"
// @Param order query string false "sort field" default(-created_date)
// @Param limit query int false "max results" default(50)
// @Success 200 {object} PostsListResponse
// @Router /api/v1/community/posts [get]
func ListPostsHandler(postRepo *community.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var filter community.ListFilter
		if err := c.ShouldBindQuery(&filter); err != nil {
			errors.ValidationError(c, err)
			return
		}

		params := pagination.FromQuery(c)

		posts, err := postRepo.List(c.Request.Context(), filter, params.Order, params.Limit)
		if err != nil {
			errors.InternalError(c, "failed to list posts", err)
			return
		}

		c.JSON(http.StatusOK, PostsListResponse{
			Posts:      posts,
			Pagination: pagination.NewMeta(params, len(posts)),
		})
	}
}

// CreatePostHandler publishes a post; signed-in users post under their name
func CreatePostHandler(postRepo *community.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req community.CreatePostRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		var author string
		if identity, ok := auth.GetIdentity(c); ok {
			author = identity.Name
		}

		post, err := postRepo.Create(c.Request.Context(), author, req)
		if err != nil {
			errors.InternalError(c, "failed to create post", err)
			return
		}

		c.JSON(http.StatusCreated, post)
	}
}

func GetPostHandler(postRepo *community.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		post, err := postRepo.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			errors.Store(c, "post", err)
			return
		}

		c.JSON(http.StatusOK, post)
	}
}

func UpdatePostHandler(postRepo *community.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req community.UpdatePostRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		post, err := postRepo.Update(c.Request.Context(), c.Param("id"), req)
		if err != nil {
			errors.Store(c, "post", err)
			return
		}

		c.JSON(http.StatusOK, post)
	}
}

func DeletePostHandler(postRepo *community.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := postRepo.Delete(c.Request.Context(), c.Param("id")); err != nil {
			errors.Store(c, "post", err)
			return
		}

		c.JSON(http.StatusOK, MessageResponse{Message: "post deleted"})
	}
}

// LikePostHandler godoc
// @Summary Like a post
// @Tags community
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} community.Post
// @Failure 404 {object} errors.ErrorResponse
// @Router /api/v1/community/posts/{id}/like [post]
func LikePostHandler(postRepo *community.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		post, err := postRepo.Like(c.Request.Context(), c.Param("id"))
		if err != nil {
			errors.Store(c, "post", err)
			return
		}

		c.JSON(http.StatusOK, post)
	}
}

// ResolvePostHandler marks a question as answered
func ResolvePostHandler(postRepo *community.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		post, err := postRepo.Resolve(c.Request.Context(), c.Param("id"))
		if err != nil {
			errors.Store(c, "post", err)
			return
		}

		c.JSON(http.StatusOK, post)
	}
}

// StatsHandler returns post, question, resolved and like totals
func StatsHandler(postRepo *community.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := postRepo.Stats(c.Request.Context())
		if err != nil {
			errors.InternalError(c, "failed to compute community stats", err)
			return
		}

		c.JSON(http.StatusOK, stats)
	}
}
