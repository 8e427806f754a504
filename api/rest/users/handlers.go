package users

import (
	"net/http"

	"codeberg.org/krishisakhi/server/api/rest/pagination"
	"codeberg.org/krishisakhi/server/farm/users"
	"codeberg.org/krishisakhi/server/internal/auth"
	"codeberg.org/krishisakhi/server/internal/errors"
	"github.com/gin-gonic/gin"
)

// GetMe godoc
// @Summary Get the current user's profile
// @Tags users
// @Produce json
// @Success 200 {object} users.User
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /api/v1/users/me [get]
// @Security BearerAuth
func GetMe(userRepo *users.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := auth.GetUserID(c)
		if !ok {
			errors.Unauthorized(c, "user not authenticated")
			return
		}

		user, err := userRepo.Me(c.Request.Context(), userID)
		if err != nil {
			errors.Store(c, "user", err)
			return
		}

		c.JSON(http.StatusOK, user)
	}
}

func ListUsers(userRepo *users.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		params := pagination.FromQuery(c)

		list, err := userRepo.List(c.Request.Context(), params.Order, params.Limit)
		if err != nil {
			errors.InternalError(c, "failed to list users", err)
			return
		}

		c.JSON(http.StatusOK, UsersListResponse{
			Users:      list,
			Pagination: pagination.NewMeta(params, len(list)),
		})
	}
}

// CreateUser godoc
// @Summary Register a farmer profile
// @Tags users
// @Accept json
// @Produce json
// @Param request body users.CreateUserRequest true "Profile"
// @Success 201 {object} users.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /api/v1/users [post]
func CreateUser(userRepo *users.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req users.CreateUserRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		user, err := userRepo.Create(c.Request.Context(), req)
		if err != nil {
			errors.Store(c, "user", err)
			return
		}

		c.JSON(http.StatusCreated, user)
	}
}

func UpdateUser(userRepo *users.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req users.UpdateUserRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		user, err := userRepo.Update(c.Request.Context(), c.Param("id"), req)
		if err != nil {
			errors.Store(c, "user", err)
			return
		}

		c.JSON(http.StatusOK, user)
	}
}

func DeleteUser(userRepo *users.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := userRepo.Delete(c.Request.Context(), c.Param("id")); err != nil {
			errors.Store(c, "user", err)
			return
		}

		c.JSON(http.StatusOK, MessageResponse{Message: "user deleted"})
	}
}
