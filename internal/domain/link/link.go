package link

import (
	"time"

	"github.com/google/uuid"
)

// Link is a shared reference URL shown on the dashboard.
type Link struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	Description *string   `json:"description"`
	SortOrder   int       `json:"sort_order"`
	CreatedAt   time.Time `json:"created_at"`
}

type CreateLinkInput struct {
	Title       string
	URL         string
	Description *string
	SortOrder   int
}

type UpdateLinkInput struct {
	Title       *string
	URL         *string
	Description *string
	SortOrder   *int
}
