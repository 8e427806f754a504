package users

import (
	"codeberg.org/krishisakhi/server/api/rest/pagination"
	"codeberg.org/krishisakhi/server/farm/users"
)

// UsersListResponse wraps a list of users with list metadata
type UsersListResponse struct {
	Users      []users.User    `json:"users"`
	Pagination pagination.Meta `json:"pagination"`
}

// MessageResponse for simple success messages
type MessageResponse struct {
	Message string `json:"message"`
}
