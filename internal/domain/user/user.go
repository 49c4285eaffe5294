package user

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	DisplayName  string    `json:"display_name"`
	IsAdmin      bool      `json:"is_admin"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
}

type CreateUserInput struct {
	Username     string
	PasswordHash string
	DisplayName  string
	IsAdmin      bool
}

type UpdateUserInput struct {
	DisplayName *string
	IsAdmin     *bool
	Active      *bool
}
