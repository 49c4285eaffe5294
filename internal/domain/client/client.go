package client

import (
	"time"

	"github.com/google/uuid"
)

// Client is a billable customer. Deactivation hides it from pickers but
// keeps historical time entries intact.
type Client struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateClientInput struct {
	Name string
}

type UpdateClientInput struct {
	Name   *string
	Active *bool
}
