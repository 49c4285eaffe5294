package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"timekeep/internal/domain/link"
	apperrors "timekeep/pkg/errors"
)

type LinkRepository struct {
	db *DB
}

func NewLinkRepository(db *DB) *LinkRepository {
	return &LinkRepository{db: db}
}

const linkColumns = "id, title, url, description, sort_order, created_at"

func (r *LinkRepository) Create(ctx context.Context, input link.CreateLinkInput) (*link.Link, error) {
	query := `
		INSERT INTO links (title, url, description, sort_order)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + linkColumns

	l := &link.Link{}
	err := r.db.Pool.QueryRow(ctx, query, input.Title, input.URL, input.Description, input.SortOrder).Scan(
		&l.ID,
		&l.Title,
		&l.URL,
		&l.Description,
		&l.SortOrder,
		&l.CreatedAt,
	)

	if err != nil {
		return nil, errFailedCreateLink(err)
	}

	return l, nil
}

func (r *LinkRepository) GetByID(ctx context.Context, id uuid.UUID) (*link.Link, error) {
	query := "SELECT " + linkColumns + " FROM links WHERE id = $1"

	l := &link.Link{}
	err := r.db.Pool.QueryRow(ctx, query, id).Scan(
		&l.ID,
		&l.Title,
		&l.URL,
		&l.Description,
		&l.SortOrder,
		&l.CreatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NotFound(errLinkNotFound)
		}
		return nil, errFailedGetLink(err)
	}

	return l, nil
}

func (r *LinkRepository) List(ctx context.Context) ([]*link.Link, error) {
	query := "SELECT " + linkColumns + " FROM links ORDER BY sort_order ASC, created_at ASC"

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, errFailedListLinks(err)
	}
	defer rows.Close()

	var links []*link.Link
	for rows.Next() {
		l := &link.Link{}
		if err := rows.Scan(&l.ID, &l.Title, &l.URL, &l.Description, &l.SortOrder, &l.CreatedAt); err != nil {
			return nil, errFailedScanLink(err)
		}
		links = append(links, l)
	}

	if err := rows.Err(); err != nil {
		return nil, errFailedListLinks(err)
	}

	return links, nil
}

func (r *LinkRepository) Update(ctx context.Context, id uuid.UUID, input link.UpdateLinkInput) error {
	query := "UPDATE links SET id = id"
	args := []interface{}{id}
	argCount := 1

	if input.Title != nil {
		argCount++
		query += fmt.Sprintf(", title = $%d", argCount)
		args = append(args, *input.Title)
	}

	if input.URL != nil {
		argCount++
		query += fmt.Sprintf(", url = $%d", argCount)
		args = append(args, *input.URL)
	}

	if input.Description != nil {
		argCount++
		query += fmt.Sprintf(", description = $%d", argCount)
		args = append(args, *input.Description)
	}

	if input.SortOrder != nil {
		argCount++
		query += fmt.Sprintf(", sort_order = $%d", argCount)
		args = append(args, *input.SortOrder)
	}

	query += " WHERE id = $1"

	result, err := r.db.Pool.Exec(ctx, query, args...)
	if err != nil {
		return errFailedUpdateLink(err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.NotFound(errLinkNotFound)
	}

	return nil
}

func (r *LinkRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := "DELETE FROM links WHERE id = $1"

	result, err := r.db.Pool.Exec(ctx, query, id)
	if err != nil {
		return errFailedDeleteLink(err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.NotFound(errLinkNotFound)
	}

	return nil
}
