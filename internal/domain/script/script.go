package script

import (
	"time"

	"github.com/google/uuid"
)

// Script is a teleprompter script. A nil OwnerID marks a public script,
// visible to everyone and managed by admins. Soft-deleted via active.
type Script struct {
	ID          uuid.UUID  `json:"id"`
	OwnerID     *uuid.UUID `json:"owner_id"`
	Title       string     `json:"title"`
	Content     string     `json:"content"`
	FontSize    int        `json:"font_size"`
	FgColor     string     `json:"fg_color"`
	BgColor     string     `json:"bg_color"`
	ScrollSpeed int        `json:"scroll_speed"`
	SortOrder   int        `json:"sort_order"`
	Active      bool       `json:"active"`
	CreatedAt   time.Time  `json:"created_at"`

	OwnerDisplayName *string `json:"owner_display_name,omitempty"`
}

type CreateScriptInput struct {
	OwnerID     *uuid.UUID
	Title       string
	Content     string
	FontSize    int
	FgColor     string
	BgColor     string
	ScrollSpeed int
	SortOrder   int
}

type UpdateScriptInput struct {
	OwnerID     *uuid.UUID
	Title       string
	Content     string
	FontSize    int
	FgColor     string
	BgColor     string
	ScrollSpeed int
	SortOrder   int
}

const (
	DefaultFontSize    = 32
	DefaultFgColor     = "#FFFFFF"
	DefaultBgColor     = "#000000"
	DefaultScrollSpeed = 3
)
