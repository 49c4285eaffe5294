package timeentry

import (
	"time"

	"github.com/google/uuid"
)

// TimeEntry is one recorded work interval. Dates are ISO calendar dates
// (YYYY-MM-DD) and start/stop are wall-clock times (HH:MM) on that date.
// DurationHours is nil while the entry is open (no stop time yet); a
// non-nil value is always a multiple of 0.25.
type TimeEntry struct {
	ID            uuid.UUID  `json:"id"`
	UserID        uuid.UUID  `json:"user_id"`
	ClientID      uuid.UUID  `json:"client_id"`
	ProjectID     *uuid.UUID `json:"project_id"`
	EntryDate     string     `json:"entry_date"`
	StartTime     *string    `json:"start_time"`
	StopTime      *string    `json:"stop_time"`
	SalesCount    *int       `json:"sales_count"`
	DurationHours *float64   `json:"duration_hours"`
	Notes         string     `json:"notes"`
	CreatedAt     time.Time  `json:"created_at"`

	// Denormalized names resolved by the list queries; empty when the
	// referenced row is gone.
	ClientName  string `json:"client_name,omitempty"`
	ProjectName string `json:"project_name,omitempty"`
	UserName    string `json:"user_name,omitempty"`
}

type CreateTimeEntryInput struct {
	UserID        uuid.UUID
	ClientID      uuid.UUID
	ProjectID     *uuid.UUID
	EntryDate     string
	StartTime     *string
	StopTime      *string
	SalesCount    *int
	DurationHours *float64
	Notes         string
}

// UpdateTimeEntryInput carries the full post-merge state of an entry.
// The handler merges the request over the stored row and recomputes the
// duration before calling the repository.
type UpdateTimeEntryInput struct {
	ClientID      uuid.UUID
	ProjectID     *uuid.UUID
	EntryDate     string
	StartTime     *string
	StopTime      *string
	SalesCount    *int
	DurationHours *float64
	Notes         string
}

// ListFilter narrows entry queries. A nil field means "no constraint".
type ListFilter struct {
	UserID    *uuid.UUID
	ClientID  *uuid.UUID
	Date      *string
	StartDate *string
	EndDate   *string
}

// PurgeFilter scopes a bulk hard delete.
type PurgeFilter struct {
	UserID    *uuid.UUID
	StartDate *string
	EndDate   *string
}

// DayTotal is one row of the 30-day history sidebar.
type DayTotal struct {
	EntryDate  string  `json:"entry_date"`
	EntryCount int     `json:"entry_count"`
	TotalHours float64 `json:"total_hours"`
}
