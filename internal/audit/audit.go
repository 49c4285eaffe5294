package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"

	"timekeep/internal/auth"
)

// ResourceType represents the type of resource being acted upon
type ResourceType string

const (
	ResourceTypeUser      ResourceType = "user"
	ResourceTypeClient    ResourceType = "client"
	ResourceTypeProject   ResourceType = "project"
	ResourceTypeTimeEntry ResourceType = "time_entry"
	ResourceTypePayPeriod ResourceType = "pay_period"
	ResourceTypeLink      ResourceType = "link"
	ResourceTypeScript    ResourceType = "script"
	ResourceTypeSession   ResourceType = "session"
	ResourceTypeReport    ResourceType = "report"
)

// Action represents the action being performed
type Action string

const (
	ActionCreate         Action = "create"
	ActionUpdate         Action = "update"
	ActionDelete         Action = "delete"
	ActionLogin          Action = "login"
	ActionPurge          Action = "purge"
	ActionGenerate       Action = "generate"
	ActionExport         Action = "export"
	ActionPasswordChange Action = "password_change"
)

// Status represents the outcome of an action
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailure Status = "failure"
	StatusDenied  Status = "denied"
)

// Event represents an audit event
type Event struct {
	ID           uuid.UUID      `json:"id"`
	EventType    string         `json:"event_type"`
	ActorID      *uuid.UUID     `json:"actor_id"`
	ResourceType ResourceType   `json:"resource_type"`
	ResourceID   *uuid.UUID     `json:"resource_id"`
	Action       Action         `json:"action"`
	Status       Status         `json:"status"`
	IPAddress    string         `json:"ip_address"`
	UserAgent    string         `json:"user_agent"`
	RequestID    string         `json:"request_id"`
	Metadata     map[string]any `json:"metadata,omitempty"`
	ErrorMessage string         `json:"error_message,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
}

// Logger records audit events to the audit_events table.
type Logger struct {
	pool *pgxpool.Pool
}

func NewLogger(pool *pgxpool.Pool) *Logger {
	return &Logger{pool: pool}
}

// Log records an audit event
func (l *Logger) Log(ctx context.Context, event *Event) error {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	var metadataJSON []byte
	var err error
	if event.Metadata != nil {
		metadataJSON, err = json.Marshal(event.Metadata)
		if err != nil {
			return err
		}
	}

	query := `
		INSERT INTO audit_events (
			id, event_type, actor_id, resource_type, resource_id,
			action, status, ip_address, user_agent, request_id, metadata, error_message, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err = l.pool.Exec(ctx, query,
		event.ID,
		event.EventType,
		event.ActorID,
		event.ResourceType,
		event.ResourceID,
		event.Action,
		event.Status,
		event.IPAddress,
		event.UserAgent,
		event.RequestID,
		metadataJSON,
		event.ErrorMessage,
		event.CreatedAt,
	)

	return err
}

// LogFromContext creates and logs an audit event from an Echo context
// asynchronously. The request never waits on the audit write.
func (l *Logger) LogFromContext(c echo.Context, resourceType ResourceType, resourceID *uuid.UUID, action Action, status Status, metadata map[string]any) error {
	event := l.buildEvent(c, resourceType, resourceID, action, status, metadata)
	l.logAsync(c, event)
	return nil
}

// LogError logs a failed action with error details asynchronously
func (l *Logger) LogError(c echo.Context, resourceType ResourceType, resourceID *uuid.UUID, action Action, err error) error {
	event := l.buildEvent(c, resourceType, resourceID, action, StatusFailure, map[string]any{
		"error": err.Error(),
	})
	event.ErrorMessage = err.Error()
	l.logAsync(c, event)
	return nil
}

func (l *Logger) buildEvent(c echo.Context, resourceType ResourceType, resourceID *uuid.UUID, action Action, status Status, metadata map[string]any) *Event {
	event := &Event{
		EventType:    string(action) + "_" + string(resourceType),
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Action:       action,
		Status:       status,
		IPAddress:    c.RealIP(),
		UserAgent:    c.Request().UserAgent(),
		RequestID:    c.Response().Header().Get(echo.HeaderXRequestID),
		Metadata:     metadata,
	}

	if identity, err := auth.GetIdentity(c); err == nil {
		actorID := identity.UserID
		event.ActorID = &actorID
	}

	return event
}

func (l *Logger) logAsync(c echo.Context, event *Event) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	go func() {
		defer cancel()
		if err := l.Log(ctx, event); err != nil {
			// Never block or fail the request on an audit write.
			fmt.Fprintf(c.Logger().Output(), "audit log failed: %v\n", err)
		}
	}()
}

// QueryFilter narrows an audit query. Zero-valued fields are ignored.
type QueryFilter struct {
	ActorID      *uuid.UUID
	ResourceType *ResourceType
	Action       *Action
	Status       *Status
	StartTime    *time.Time
	EndTime      *time.Time
	Limit        int
	Offset       int
}

// Query retrieves audit events, newest first.
func (l *Logger) Query(ctx context.Context, filter QueryFilter) ([]*Event, error) {
	query := `
		SELECT id, event_type, actor_id, resource_type, resource_id,
		       action, status, ip_address, user_agent, request_id, metadata, error_message, created_at
		FROM audit_events
		WHERE 1=1
	`
	args := []any{}
	argCount := 1

	if filter.ActorID != nil {
		query += fmt.Sprintf(" AND actor_id = $%d", argCount)
		args = append(args, filter.ActorID)
		argCount++
	}

	if filter.ResourceType != nil {
		query += fmt.Sprintf(" AND resource_type = $%d", argCount)
		args = append(args, filter.ResourceType)
		argCount++
	}

	if filter.Action != nil {
		query += fmt.Sprintf(" AND action = $%d", argCount)
		args = append(args, filter.Action)
		argCount++
	}

	if filter.Status != nil {
		query += fmt.Sprintf(" AND status = $%d", argCount)
		args = append(args, filter.Status)
		argCount++
	}

	if filter.StartTime != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", argCount)
		args = append(args, filter.StartTime)
		argCount++
	}

	if filter.EndTime != nil {
		query += fmt.Sprintf(" AND created_at <= $%d", argCount)
		args = append(args, filter.EndTime)
		argCount++
	}

	query += " ORDER BY created_at DESC"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argCount)
		args = append(args, filter.Limit)
		argCount++
	} else {
		query += " LIMIT 100"
	}

	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argCount)
		args = append(args, filter.Offset)
	}

	rows, err := l.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := []*Event{}
	for rows.Next() {
		event := &Event{}
		var metadataJSON []byte

		err := rows.Scan(
			&event.ID,
			&event.EventType,
			&event.ActorID,
			&event.ResourceType,
			&event.ResourceID,
			&event.Action,
			&event.Status,
			&event.IPAddress,
			&event.UserAgent,
			&event.RequestID,
			&metadataJSON,
			&event.ErrorMessage,
			&event.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		if len(metadataJSON) > 0 {
			if err := json.Unmarshal(metadataJSON, &event.Metadata); err != nil {
				return nil, err
			}
		}

		events = append(events, event)
	}

	return events, rows.Err()
}
