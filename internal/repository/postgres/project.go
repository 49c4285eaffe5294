package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"timekeep/internal/domain/project"
	apperrors "timekeep/pkg/errors"
)

type ProjectRepository struct {
	db *DB
}

func NewProjectRepository(db *DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) Create(ctx context.Context, input project.CreateProjectInput) (*project.Project, error) {
	query := `
		INSERT INTO projects (client_id, name)
		VALUES ($1, $2)
		RETURNING id, client_id, name, active, created_at
	`

	p := &project.Project{}
	err := r.db.Pool.QueryRow(ctx, query, input.ClientID, input.Name).Scan(
		&p.ID,
		&p.ClientID,
		&p.Name,
		&p.Active,
		&p.CreatedAt,
	)

	if err != nil {
		return nil, errFailedCreateProject(err)
	}

	return p, nil
}

func (r *ProjectRepository) GetByID(ctx context.Context, id uuid.UUID) (*project.Project, error) {
	query := `
		SELECT id, client_id, name, active, created_at
		FROM projects
		WHERE id = $1
	`

	p := &project.Project{}
	err := r.db.Pool.QueryRow(ctx, query, id).Scan(
		&p.ID,
		&p.ClientID,
		&p.Name,
		&p.Active,
		&p.CreatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NotFound(errProjectNotFound)
		}
		return nil, errFailedGetProject(err)
	}

	return p, nil
}

// List returns all projects, optionally narrowed to one client.
func (r *ProjectRepository) List(ctx context.Context, clientID *uuid.UUID) ([]*project.Project, error) {
	query := `
		SELECT id, client_id, name, active, created_at
		FROM projects
	`
	var args []interface{}

	if clientID != nil {
		query += " WHERE client_id = $1"
		args = append(args, *clientID)
	}
	query += " ORDER BY name ASC"

	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, errFailedListProjects(err)
	}
	defer rows.Close()

	var projects []*project.Project
	for rows.Next() {
		p := &project.Project{}
		if err := rows.Scan(&p.ID, &p.ClientID, &p.Name, &p.Active, &p.CreatedAt); err != nil {
			return nil, errFailedScanProject(err)
		}
		projects = append(projects, p)
	}

	if err := rows.Err(); err != nil {
		return nil, errFailedListProjects(err)
	}

	return projects, nil
}

func (r *ProjectRepository) Update(ctx context.Context, id uuid.UUID, input project.UpdateProjectInput) error {
	query := "UPDATE projects SET id = id"
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
		return errFailedUpdateProject(err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.NotFound(errProjectNotFound)
	}

	return nil
}

func (r *ProjectRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	query := "UPDATE projects SET active = FALSE WHERE id = $1"

	result, err := r.db.Pool.Exec(ctx, query, id)
	if err != nil {
		return errFailedUpdateProject(err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.NotFound(errProjectNotFound)
	}

	return nil
}
