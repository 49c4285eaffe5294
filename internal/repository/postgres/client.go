package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"timekeep/internal/domain/client"
	apperrors "timekeep/pkg/errors"
)

type ClientRepository struct {
	db *DB
}

func NewClientRepository(db *DB) *ClientRepository {
	return &ClientRepository{db: db}
}

func (r *ClientRepository) Create(ctx context.Context, input client.CreateClientInput) (*client.Client, error) {
	query := `
		INSERT INTO clients (name)
		VALUES ($1)
		RETURNING id, name, active, created_at
	`

	c := &client.Client{}
	err := r.db.Pool.QueryRow(ctx, query, input.Name).Scan(
		&c.ID,
		&c.Name,
		&c.Active,
		&c.CreatedAt,
	)

	if err != nil {
		return nil, errFailedCreateClient(err)
	}

	return c, nil
}

func (r *ClientRepository) GetByID(ctx context.Context, id uuid.UUID) (*client.Client, error) {
	query := `
		SELECT id, name, active, created_at
		FROM clients
		WHERE id = $1
	`

	c := &client.Client{}
	err := r.db.Pool.QueryRow(ctx, query, id).Scan(
		&c.ID,
		&c.Name,
		&c.Active,
		&c.CreatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NotFound(errClientNotFound)
		}
		return nil, errFailedGetClient(err)
	}

	return c, nil
}

func (r *ClientRepository) List(ctx context.Context) ([]*client.Client, error) {
	query := `
		SELECT id, name, active, created_at
		FROM clients
		ORDER BY name ASC
	`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, errFailedListClients(err)
	}
	defer rows.Close()

	var clients []*client.Client
	for rows.Next() {
		c := &client.Client{}
		if err := rows.Scan(&c.ID, &c.Name, &c.Active, &c.CreatedAt); err != nil {
			return nil, errFailedScanClient(err)
		}
		clients = append(clients, c)
	}

	if err := rows.Err(); err != nil {
		return nil, errFailedListClients(err)
	}

	return clients, nil
}

func (r *ClientRepository) Update(ctx context.Context, id uuid.UUID, input client.UpdateClientInput) error {
	query := "UPDATE clients SET id = id"
	args := []interface{}{id}
	argCount := 1

	if input.Name != nil {
		argCount++
		query += fmt.Sprintf(", name = $%d", argCount)
		args = append(args, *input.Name)
	}

	if input.Active != nil {
		argCount++
		query += fmt.Sprintf(", active = $%d", argCount)
		args = append(args, *input.Active)
	}

	query += " WHERE id = $1"

	result, err := r.db.Pool.Exec(ctx, query, args...)
	if err != nil {
		return errFailedUpdateClient(err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.NotFound(errClientNotFound)
	}

	return nil
}

// Deactivate soft-deletes a client. Historical time entries keep their
// reference; the client just disappears from pickers.
func (r *ClientRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	query := "UPDATE clients SET active = FALSE WHERE id = $1"

	result, err := r.db.Pool.Exec(ctx, query, id)
	if err != nil {
		return errFailedUpdateClient(err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.NotFound(errClientNotFound)
	}

	return nil
}
