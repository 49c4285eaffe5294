package handler

import (
	"context"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"timekeep/internal/audit"
	"timekeep/internal/domain/client"
	"timekeep/internal/domain/link"
	"timekeep/internal/domain/payperiod"
	"timekeep/internal/domain/project"
	"timekeep/internal/domain/script"
	"timekeep/internal/domain/timeentry"
	"timekeep/internal/domain/user"
	"timekeep/internal/payroll"
)

// Consumer-side interfaces defined by handlers
// Each interface contains only the methods needed by the specific handler

type UserRepository interface {
	Create(ctx context.Context, input user.CreateUserInput) (*user.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	GetByUsername(ctx context.Context, username string) (*user.User, error)
	List(ctx context.Context) ([]*user.User, error)
	Update(ctx context.Context, id uuid.UUID, input user.UpdateUserInput) error
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
}

type UserGetter interface {
	GetByID(ctx context.Context, id uuid.UUID) (*user.User, error)
}

type ClientRepository interface {
	Create(ctx context.Context, input client.CreateClientInput) (*client.Client, error)
	GetByID(ctx context.Context, id uuid.UUID) (*client.Client, error)
	List(ctx context.Context) ([]*client.Client, error)
	Update(ctx context.Context, id uuid.UUID, input client.UpdateClientInput) error
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type ClientGetter interface {
	GetByID(ctx context.Context, id uuid.UUID) (*client.Client, error)
}

type ProjectRepository interface {
	Create(ctx context.Context, input project.CreateProjectInput) (*project.Project, error)
	GetByID(ctx context.Context, id uuid.UUID) (*project.Project, error)
	List(ctx context.Context, clientID *uuid.UUID) ([]*project.Project, error)
	Update(ctx context.Context, id uuid.UUID, input project.UpdateProjectInput) error
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type ProjectGetter interface {
	GetByID(ctx context.Context, id uuid.UUID) (*project.Project, error)
}

type TimeEntryRepository interface {
	Create(ctx context.Context, input timeentry.CreateTimeEntryInput) (*timeentry.TimeEntry, error)
	GetByID(ctx context.Context, id uuid.UUID) (*timeentry.TimeEntry, error)
	ListForDay(ctx context.Context, userID uuid.UUID, date *string) ([]timeentry.TimeEntry, error)
	ListResolved(ctx context.Context, filter timeentry.ListFilter) ([]timeentry.TimeEntry, error)
	History(ctx context.Context, userID uuid.UUID) ([]timeentry.DayTotal, error)
	Update(ctx context.Context, id uuid.UUID, input timeentry.UpdateTimeEntryInput) error
	Delete(ctx context.Context, id uuid.UUID) error
	Purge(ctx context.Context, filter timeentry.PurgeFilter) (int64, error)
}

type ReportSource interface {
	ListResolved(ctx context.Context, filter timeentry.ListFilter) ([]timeentry.TimeEntry, error)
}

type PayPeriodRepository interface {
	Create(ctx context.Context, input payperiod.CreatePayPeriodInput) (*payperiod.PayPeriod, error)
	GetByID(ctx context.Context, id uuid.UUID) (*payperiod.PayPeriod, error)
	List(ctx context.Context) ([]*payperiod.PayPeriod, error)
	ForDate(ctx context.Context, date string) (*payperiod.PayPeriod, error)
	Update(ctx context.Context, id uuid.UUID, input payperiod.UpdatePayPeriodInput) error
	Delete(ctx context.Context, id uuid.UUID) error
	MaxPeriodNumber(ctx context.Context) (int, error)
	GenerateYear(ctx context.Context, year int, specs []payroll.PeriodSpec) ([]*payperiod.PayPeriod, error)
}

type LinkRepository interface {
	Create(ctx context.Context, input link.CreateLinkInput) (*link.Link, error)
	GetByID(ctx context.Context, id uuid.UUID) (*link.Link, error)
	List(ctx context.Context) ([]*link.Link, error)
	Update(ctx context.Context, id uuid.UUID, input link.UpdateLinkInput) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type ScriptRepository interface {
	Create(ctx context.Context, input script.CreateScriptInput) (*script.Script, error)
	GetByID(ctx context.Context, id uuid.UUID) (*script.Script, error)
	ListVisible(ctx context.Context, viewerID uuid.UUID, isAdmin bool) ([]*script.Script, error)
	Update(ctx context.Context, id uuid.UUID, input script.UpdateScriptInput) error
	Deactivate(ctx context.Context, id uuid.UUID) error
}

// AuditQuerier reads back recorded audit events for the admin trail view.
type AuditQuerier interface {
	Query(ctx context.Context, filter audit.QueryFilter) ([]*audit.Event, error)
}

// AuditLogger records security-relevant events without blocking requests.
type AuditLogger interface {
	LogFromContext(c echo.Context, resourceType audit.ResourceType, resourceID *uuid.UUID, action audit.Action, status audit.Status, metadata map[string]any) error
	LogError(c echo.Context, resourceType audit.ResourceType, resourceID *uuid.UUID, action audit.Action, err error) error
}

// ExportArchiver keeps a copy of generated export documents in object
// storage and hands out short-lived download URLs for stored copies. A nil
// archiver disables archiving.
type ExportArchiver interface {
	Store(ctx context.Context, name, contentType string, body []byte) (string, error)
	DownloadURL(ctx context.Context, key string) (string, error)
}
