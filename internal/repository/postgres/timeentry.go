package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"timekeep/internal/domain/timeentry"
	apperrors "timekeep/pkg/errors"
)

type TimeEntryRepository struct {
	db *DB
}

func NewTimeEntryRepository(db *DB) *TimeEntryRepository {
	return &TimeEntryRepository{db: db}
}

// resolvedColumns selects entries joined with their denormalized names.
// Deactivated or deleted references resolve to an empty name, which the
// aggregator maps to its fallbacks.
const resolvedColumns = `
	te.id, te.user_id, te.client_id, te.project_id, te.entry_date,
	te.start_time, te.stop_time, te.sales_count, te.duration_hours,
	te.notes, te.created_at,
	COALESCE(c.name, '') AS client_name,
	COALESCE(p.name, '') AS project_name,
	COALESCE(u.display_name, '') AS user_name
`

const resolvedJoins = `
	FROM time_entries te
	LEFT JOIN clients c ON te.client_id = c.id
	LEFT JOIN projects p ON te.project_id = p.id
	LEFT JOIN users u ON te.user_id = u.id
`

func scanResolvedEntry(rows pgx.Rows) (*timeentry.TimeEntry, error) {
	e := &timeentry.TimeEntry{}
	err := rows.Scan(
		&e.ID,
		&e.UserID,
		&e.ClientID,
		&e.ProjectID,
		&e.EntryDate,
		&e.StartTime,
		&e.StopTime,
		&e.SalesCount,
		&e.DurationHours,
		&e.Notes,
		&e.CreatedAt,
		&e.ClientName,
		&e.ProjectName,
		&e.UserName,
	)
	if err != nil {
		return nil, errFailedScanEntry(err)
	}
	return e, nil
}

func (r *TimeEntryRepository) Create(ctx context.Context, input timeentry.CreateTimeEntryInput) (*timeentry.TimeEntry, error) {
	query := `
		INSERT INTO time_entries
			(user_id, client_id, project_id, entry_date, start_time, stop_time, sales_count, duration_hours, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`

	var id uuid.UUID
	err := r.db.Pool.QueryRow(ctx, query,
		input.UserID,
		input.ClientID,
		input.ProjectID,
		input.EntryDate,
		input.StartTime,
		input.StopTime,
		input.SalesCount,
		input.DurationHours,
		input.Notes,
	).Scan(&id)

	if err != nil {
		return nil, errFailedCreateEntry(err)
	}

	return r.GetByID(ctx, id)
}

func (r *TimeEntryRepository) GetByID(ctx context.Context, id uuid.UUID) (*timeentry.TimeEntry, error) {
	query := "SELECT " + resolvedColumns + resolvedJoins + " WHERE te.id = $1"

	rows, err := r.db.Pool.Query(ctx, query, id)
	if err != nil {
		return nil, errFailedGetEntry(err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, errFailedGetEntry(err)
		}
		return nil, apperrors.NotFound(errEntryNotFound)
	}

	return scanResolvedEntry(rows)
}

// ListForDay returns one user's entries, optionally narrowed to a single
// date, ordered by start time then id for a stable timesheet layout.
func (r *TimeEntryRepository) ListForDay(ctx context.Context, userID uuid.UUID, date *string) ([]timeentry.TimeEntry, error) {
	query := "SELECT " + resolvedColumns + resolvedJoins + " WHERE te.user_id = $1"
	args := []interface{}{userID}

	if date != nil {
		query += " AND te.entry_date = $2"
		args = append(args, *date)
	}
	query += " ORDER BY te.start_time ASC NULLS LAST, te.id ASC"

	return r.list(ctx, query, args)
}

// ListResolved feeds the report aggregator and the export renderers. The
// ordering here (entry date, client name, project name) is what the
// aggregator's insertion-order grouping preserves.
func (r *TimeEntryRepository) ListResolved(ctx context.Context, filter timeentry.ListFilter) ([]timeentry.TimeEntry, error) {
	query := "SELECT " + resolvedColumns + resolvedJoins
	var conditions []string
	var args []interface{}

	appendCondition := func(column, op string, value interface{}) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf("%s %s $%d", column, op, len(args)))
	}

	if filter.StartDate != nil {
		appendCondition("te.entry_date", ">=", *filter.StartDate)
	}
	if filter.EndDate != nil {
		appendCondition("te.entry_date", "<=", *filter.EndDate)
	}
	if filter.Date != nil {
		appendCondition("te.entry_date", "=", *filter.Date)
	}
	if filter.ClientID != nil {
		appendCondition("te.client_id", "=", *filter.ClientID)
	}
	if filter.UserID != nil {
		appendCondition("te.user_id", "=", *filter.UserID)
	}

	for i, cond := range conditions {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += " ORDER BY te.entry_date ASC, c.name ASC, p.name ASC"

	return r.list(ctx, query, args)
}

func (r *TimeEntryRepository) list(ctx context.Context, query string, args []interface{}) ([]timeentry.TimeEntry, error) {
	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, errFailedListEntries(err)
	}
	defer rows.Close()

	var entries []timeentry.TimeEntry
	for rows.Next() {
		e, err := scanResolvedEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *e)
	}

	if err := rows.Err(); err != nil {
		return nil, errFailedListEntries(err)
	}

	return entries, nil
}

// History returns per-date totals for the user's last 30 days.
func (r *TimeEntryRepository) History(ctx context.Context, userID uuid.UUID) ([]timeentry.DayTotal, error) {
	query := `
		SELECT entry_date, COUNT(*) AS entry_count, COALESCE(SUM(duration_hours), 0) AS total_hours
		FROM time_entries
		WHERE user_id = $1 AND entry_date >= to_char(CURRENT_DATE - 30, 'YYYY-MM-DD')
		GROUP BY entry_date
		ORDER BY entry_date DESC
	`

	rows, err := r.db.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, errFailedHistory(err)
	}
	defer rows.Close()

	var totals []timeentry.DayTotal
	for rows.Next() {
		var t timeentry.DayTotal
		if err := rows.Scan(&t.EntryDate, &t.EntryCount, &t.TotalHours); err != nil {
			return nil, errFailedHistory(err)
		}
		totals = append(totals, t)
	}

	if err := rows.Err(); err != nil {
		return nil, errFailedHistory(err)
	}

	return totals, nil
}

// Update writes the full post-merge state. Concurrent edits to the same
// entry are last-write-wins; there is no conflict detection.
func (r *TimeEntryRepository) Update(ctx context.Context, id uuid.UUID, input timeentry.UpdateTimeEntryInput) error {
	query := `
		UPDATE time_entries
		SET client_id = $2, project_id = $3, entry_date = $4, start_time = $5,
			stop_time = $6, sales_count = $7, duration_hours = $8, notes = $9
		WHERE id = $1
	`

	result, err := r.db.Pool.Exec(ctx, query,
		id,
		input.ClientID,
		input.ProjectID,
		input.EntryDate,
		input.StartTime,
		input.StopTime,
		input.SalesCount,
		input.DurationHours,
		input.Notes,
	)

	if err != nil {
		return errFailedUpdateEntry(err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.NotFound(errEntryNotFound)
	}

	return nil
}

func (r *TimeEntryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := "DELETE FROM time_entries WHERE id = $1"

	result, err := r.db.Pool.Exec(ctx, query, id)
	if err != nil {
		return errFailedDeleteEntry(err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.NotFound(errEntryNotFound)
	}

	return nil
}

// Purge hard-deletes entries matching the filter in a single statement and
// returns the number of rows removed.
func (r *TimeEntryRepository) Purge(ctx context.Context, filter timeentry.PurgeFilter) (int64, error) {
	query := "DELETE FROM time_entries"
	var conditions []string
	var args []interface{}

	appendCondition := func(column, op string, value interface{}) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf("%s %s $%d", column, op, len(args)))
	}

	if filter.UserID != nil {
		appendCondition("user_id", "=", *filter.UserID)
	}
	if filter.StartDate != nil {
		appendCondition("entry_date", ">=", *filter.StartDate)
	}
	if filter.EndDate != nil {
		appendCondition("entry_date", "<=", *filter.EndDate)
	}

	for i, cond := range conditions {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}

	result, err := r.db.Pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, errFailedPurgeEntries(err)
	}

	return result.RowsAffected(), nil
}
