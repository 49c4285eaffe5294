package payperiod

import (
	"time"

	"github.com/google/uuid"
)

// PayPeriod is an inclusive date range used to bucket entries for payroll.
// Period numbers increase monotonically across years.
type PayPeriod struct {
	ID           uuid.UUID `json:"id"`
	PeriodNumber int       `json:"period_number"`
	StartDate    string    `json:"start_date"`
	EndDate      string    `json:"end_date"`
	Label        *string   `json:"label"`
	CreatedAt    time.Time `json:"created_at"`
}

type CreatePayPeriodInput struct {
	PeriodNumber int
	StartDate    string
	EndDate      string
	Label        *string
}

type UpdatePayPeriodInput struct {
	PeriodNumber *int
	StartDate    *string
	EndDate      *string
	Label        *string
}
