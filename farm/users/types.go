package users

import (
	"codeberg.org/krishisakhi/server/internal/store"
)

// store kind for user profiles
const Kind = "users"

type Repository struct {
	store store.Store[User]
}

type User struct {
	ID          string `json:"id"`
	FullName    string `json:"full_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone,omitempty"`
	Location    string `json:"location,omitempty"`
	CreatedDate string `json:"created_date"`
	UpdatedDate string `json:"updated_date,omitempty"`
}

type CreateUserRequest struct {
	FullName string `json:"full_name" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email,max=254"`
	Phone    string `json:"phone,omitempty" binding:"max=20"`
	Location string `json:"location,omitempty" binding:"max=200"`
}

type UpdateUserRequest struct {
	FullName *string `json:"full_name,omitempty" binding:"omitempty,min=1,max=100"`
	Email    *string `json:"email,omitempty" binding:"omitempty,email,max=254"`
	Phone    *string `json:"phone,omitempty" binding:"omitempty,max=20"`
	Location *string `json:"location,omitempty" binding:"omitempty,max=200"`
}
