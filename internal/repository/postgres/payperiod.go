package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"timekeep/internal/domain/payperiod"
	"timekeep/internal/payroll"
	apperrors "timekeep/pkg/errors"
)

type PayPeriodRepository struct {
	db *DB
}

func NewPayPeriodRepository(db *DB) *PayPeriodRepository {
	return &PayPeriodRepository{db: db}
}

const payPeriodColumns = "id, period_number, start_date, end_date, label, created_at"

func (r *PayPeriodRepository) Create(ctx context.Context, input payperiod.CreatePayPeriodInput) (*payperiod.PayPeriod, error) {
	query := `
		INSERT INTO pay_periods (period_number, start_date, end_date, label)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + payPeriodColumns

	p := &payperiod.PayPeriod{}
	err := r.db.Pool.QueryRow(ctx, query, input.PeriodNumber, input.StartDate, input.EndDate, input.Label).Scan(
		&p.ID,
		&p.PeriodNumber,
		&p.StartDate,
		&p.EndDate,
		&p.Label,
		&p.CreatedAt,
	)

	if err != nil {
		return nil, errFailedCreatePayPeriod(err)
	}

	return p, nil
}

func (r *PayPeriodRepository) GetByID(ctx context.Context, id uuid.UUID) (*payperiod.PayPeriod, error) {
	query := "SELECT " + payPeriodColumns + " FROM pay_periods WHERE id = $1"

	p := &payperiod.PayPeriod{}
	err := r.db.Pool.QueryRow(ctx, query, id).Scan(
		&p.ID,
		&p.PeriodNumber,
		&p.StartDate,
		&p.EndDate,
		&p.Label,
		&p.CreatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NotFound(errPayPeriodNotFound)
		}
		return nil, errFailedGetPayPeriod(err)
	}

	return p, nil
}

func (r *PayPeriodRepository) List(ctx context.Context) ([]*payperiod.PayPeriod, error) {
	query := "SELECT " + payPeriodColumns + " FROM pay_periods ORDER BY start_date ASC"

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, errFailedListPayPeriods(err)
	}
	defer rows.Close()

	var periods []*payperiod.PayPeriod
	for rows.Next() {
		p := &payperiod.PayPeriod{}
		if err := rows.Scan(&p.ID, &p.PeriodNumber, &p.StartDate, &p.EndDate, &p.Label, &p.CreatedAt); err != nil {
			return nil, errFailedScanPayPeriod(err)
		}
		periods = append(periods, p)
	}

	if err := rows.Err(); err != nil {
		return nil, errFailedListPayPeriods(err)
	}

	return periods, nil
}

// ForDate finds the period whose inclusive range contains the ISO date.
// Dates are stored as ISO text, so range comparison works lexicographically.
func (r *PayPeriodRepository) ForDate(ctx context.Context, date string) (*payperiod.PayPeriod, error) {
	query := "SELECT " + payPeriodColumns + " FROM pay_periods WHERE start_date <= $1 AND end_date >= $1"

	p := &payperiod.PayPeriod{}
	err := r.db.Pool.QueryRow(ctx, query, date).Scan(
		&p.ID,
		&p.PeriodNumber,
		&p.StartDate,
		&p.EndDate,
		&p.Label,
		&p.CreatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NotFound(errPayPeriodNotFound)
		}
		return nil, errFailedGetPayPeriod(err)
	}

	return p, nil
}

func (r *PayPeriodRepository) Update(ctx context.Context, id uuid.UUID, input payperiod.UpdatePayPeriodInput) error {
	query := "UPDATE pay_periods SET id = id"
	args := []interface{}{id}
	argCount := 1

	if input.PeriodNumber != nil {
		argCount++
		query += fmt.Sprintf(", period_number = $%d", argCount)
		args = append(args, *input.PeriodNumber)
	}

	if input.StartDate != nil {
		argCount++
		query += fmt.Sprintf(", start_date = $%d", argCount)
		args = append(args, *input.StartDate)
	}

	if input.EndDate != nil {
		argCount++
		query += fmt.Sprintf(", end_date = $%d", argCount)
		args = append(args, *input.EndDate)
	}

	if input.Label != nil {
		argCount++
		query += fmt.Sprintf(", label = $%d", argCount)
		args = append(args, *input.Label)
	}

	query += " WHERE id = $1"

	result, err := r.db.Pool.Exec(ctx, query, args...)
	if err != nil {
		return errFailedUpdatePayPeriod(err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.NotFound(errPayPeriodNotFound)
	}

	return nil
}

func (r *PayPeriodRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := "DELETE FROM pay_periods WHERE id = $1"

	result, err := r.db.Pool.Exec(ctx, query, id)
	if err != nil {
		return errFailedDeletePayPeriod(err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.NotFound(errPayPeriodNotFound)
	}

	return nil
}

// MaxPeriodNumber returns the highest period number on record, 0 when the
// table is empty. Year generation continues numbering from here.
func (r *PayPeriodRepository) MaxPeriodNumber(ctx context.Context) (int, error) {
	query := "SELECT COALESCE(MAX(period_number), 0) FROM pay_periods"

	var max int
	if err := r.db.Pool.QueryRow(ctx, query).Scan(&max); err != nil {
		return 0, errFailedMaxPeriodNumber(err)
	}

	return max, nil
}

// GenerateYear inserts a full year of periods in one transaction. The
// duplicate-year guard runs inside the transaction so two concurrent
// generations of the same year cannot both commit.
func (r *PayPeriodRepository) GenerateYear(ctx context.Context, year int, specs []payroll.PeriodSpec) ([]*payperiod.PayPeriod, error) {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return nil, errFailedStartTransaction(err)
	}
	defer tx.Rollback(ctx)

	var existing int
	countQuery := "SELECT COUNT(*) FROM pay_periods WHERE start_date LIKE $1"
	if err := tx.QueryRow(ctx, countQuery, fmt.Sprintf("%d-%%", year)).Scan(&existing); err != nil {
		return nil, errFailedCountYear(err)
	}
	if existing > 0 {
		return nil, apperrors.Conflict(fmt.Sprintf("pay periods for %d already exist", year))
	}

	insertQuery := `
		INSERT INTO pay_periods (period_number, start_date, end_date, label)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + payPeriodColumns

	periods := make([]*payperiod.PayPeriod, 0, len(specs))
	for _, spec := range specs {
		p := &payperiod.PayPeriod{}
		err := tx.QueryRow(ctx, insertQuery, spec.Number, spec.StartDate, spec.EndDate, spec.Label).Scan(
			&p.ID,
			&p.PeriodNumber,
			&p.StartDate,
			&p.EndDate,
			&p.Label,
			&p.CreatedAt,
		)
		if err != nil {
			return nil, errFailedCreatePayPeriod(err)
		}
		periods = append(periods, p)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, errFailedCommitTransaction(err)
	}

	return periods, nil
}
