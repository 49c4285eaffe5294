package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"timekeep/internal/domain/user"
	apperrors "timekeep/pkg/errors"
)

type UserRepository struct {
	db *DB
}

func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, input user.CreateUserInput) (*user.User, error) {
	query := `
		INSERT INTO users (username, password_hash, display_name, is_admin)
		VALUES ($1, $2, $3, $4)
		RETURNING id, username, password_hash, display_name, is_admin, active, created_at
	`

	u := &user.User{}
	err := r.db.Pool.QueryRow(ctx, query, input.Username, input.PasswordHash, input.DisplayName, input.IsAdmin).Scan(
		&u.ID,
		&u.Username,
		&u.PasswordHash,
		&u.DisplayName,
		&u.IsAdmin,
		&u.Active,
		&u.CreatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.Conflict("username already exists")
		}
		return nil, errFailedCreateUser(err)
	}

	return u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	query := `
		SELECT id, username, password_hash, display_name, is_admin, active, created_at
		FROM users
		WHERE id = $1
	`

	u := &user.User{}
	err := r.db.Pool.QueryRow(ctx, query, id).Scan(
		&u.ID,
		&u.Username,
		&u.PasswordHash,
		&u.DisplayName,
		&u.IsAdmin,
		&u.Active,
		&u.CreatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NotFound(errUserNotFound)
		}
		return nil, errFailedGetUser(err)
	}

	return u, nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	query := `
		SELECT id, username, password_hash, display_name, is_admin, active, created_at
		FROM users
		WHERE username = $1
	`

	u := &user.User{}
	err := r.db.Pool.QueryRow(ctx, query, username).Scan(
		&u.ID,
		&u.Username,
		&u.PasswordHash,
		&u.DisplayName,
		&u.IsAdmin,
		&u.Active,
		&u.CreatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NotFound(errUserNotFound)
		}
		return nil, errFailedGetUser(err)
	}

	return u, nil
}

func (r *UserRepository) List(ctx context.Context) ([]*user.User, error) {
	query := `
		SELECT id, username, password_hash, display_name, is_admin, active, created_at
		FROM users
		ORDER BY created_at ASC
	`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, errFailedListUsers(err)
	}
	defer rows.Close()

	var users []*user.User
	for rows.Next() {
		u := &user.User{}
		if err := rows.Scan(
			&u.ID,
			&u.Username,
			&u.PasswordHash,
			&u.DisplayName,
			&u.IsAdmin,
			&u.Active,
			&u.CreatedAt,
		); err != nil {
			return nil, errFailedScanUser(err)
		}
		users = append(users, u)
	}

	if err := rows.Err(); err != nil {
		return nil, errFailedListUsers(err)
	}

	return users, nil
}

func (r *UserRepository) Update(ctx context.Context, id uuid.UUID, input user.UpdateUserInput) error {
	query := "UPDATE users SET id = id"
	args := []interface{}{id}
	argCount := 1

	if input.DisplayName != nil {
		argCount++
		query += fmt.Sprintf(", display_name = $%d", argCount)
		args = append(args, *input.DisplayName)
	}

	if input.IsAdmin != nil {
		argCount++
		query += fmt.Sprintf(", is_admin = $%d", argCount)
		args = append(args, *input.IsAdmin)
	}

	if input.Active != nil {
		argCount++
		query += fmt.Sprintf(", active = $%d", argCount)
		args = append(args, *input.Active)
	}

	query += " WHERE id = $1"

	result, err := r.db.Pool.Exec(ctx, query, args...)
	if err != nil {
		return errFailedUpdateUser(err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.NotFound(errUserNotFound)
	}

	return nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	query := "UPDATE users SET password_hash = $2 WHERE id = $1"

	result, err := r.db.Pool.Exec(ctx, query, id, passwordHash)
	if err != nil {
		return errFailedUpdateUser(err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.NotFound(errUserNotFound)
	}

	return nil
}
