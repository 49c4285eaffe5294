package project

import (
	"time"

	"github.com/google/uuid"
)

// Project belongs to exactly one client. Soft-deleted via the active flag.
type Project struct {
	ID        uuid.UUID `json:"id"`
	ClientID  uuid.UUID `json:"client_id"`
	Name      string    `json:"name"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateProjectInput struct {
	ClientID uuid.UUID
	Name     string
}

type UpdateProjectInput struct {
	Name   *string
	Active *bool
}
