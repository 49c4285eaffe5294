package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"timekeep/internal/domain/script"
	apperrors "timekeep/pkg/errors"
)

type ScriptRepository struct {
	db *DB
}

func NewScriptRepository(db *DB) *ScriptRepository {
	return &ScriptRepository{db: db}
}

const scriptColumns = `
	s.id, s.owner_id, s.title, s.content, s.font_size, s.fg_color,
	s.bg_color, s.scroll_speed, s.sort_order, s.active, s.created_at,
	u.display_name AS owner_display_name
`

const scriptJoins = `
	FROM scripts s
	LEFT JOIN users u ON s.owner_id = u.id
`

func scanScript(row pgx.Row) (*script.Script, error) {
	s := &script.Script{}
	err := row.Scan(
		&s.ID,
		&s.OwnerID,
		&s.Title,
		&s.Content,
		&s.FontSize,
		&s.FgColor,
		&s.BgColor,
		&s.ScrollSpeed,
		&s.SortOrder,
		&s.Active,
		&s.CreatedAt,
		&s.OwnerDisplayName,
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *ScriptRepository) Create(ctx context.Context, input script.CreateScriptInput) (*script.Script, error) {
	query := `
		INSERT INTO scripts (owner_id, title, content, font_size, fg_color, bg_color, scroll_speed, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	var id uuid.UUID
	err := r.db.Pool.QueryRow(ctx, query,
		input.OwnerID,
		input.Title,
		input.Content,
		input.FontSize,
		input.FgColor,
		input.BgColor,
		input.ScrollSpeed,
		input.SortOrder,
	).Scan(&id)

	if err != nil {
		return nil, errFailedCreateScript(err)
	}

	return r.GetByID(ctx, id)
}

func (r *ScriptRepository) GetByID(ctx context.Context, id uuid.UUID) (*script.Script, error) {
	query := "SELECT " + scriptColumns + scriptJoins + " WHERE s.id = $1"

	s, err := scanScript(r.db.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NotFound(errScriptNotFound)
		}
		return nil, errFailedGetScript(err)
	}

	return s, nil
}

// ListVisible returns active scripts the viewer may see: admins see all,
// regular users see public scripts plus their own.
func (r *ScriptRepository) ListVisible(ctx context.Context, viewerID uuid.UUID, isAdmin bool) ([]*script.Script, error) {
	query := "SELECT " + scriptColumns + scriptJoins + " WHERE s.active = TRUE"
	var args []interface{}

	if !isAdmin {
		query += " AND (s.owner_id IS NULL OR s.owner_id = $1)"
		args = append(args, viewerID)
	}
	query += " ORDER BY s.sort_order ASC, s.title ASC"

	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, errFailedListScripts(err)
	}
	defer rows.Close()

	var scripts []*script.Script
	for rows.Next() {
		s, err := scanScript(rows)
		if err != nil {
			return nil, errFailedScanScript(err)
		}
		scripts = append(scripts, s)
	}

	if err := rows.Err(); err != nil {
		return nil, errFailedListScripts(err)
	}

	return scripts, nil
}

// Update writes the full script state; callers merge before saving.
func (r *ScriptRepository) Update(ctx context.Context, id uuid.UUID, input script.UpdateScriptInput) error {
	query := `
		UPDATE scripts
		SET owner_id = $2, title = $3, content = $4, font_size = $5,
			fg_color = $6, bg_color = $7, scroll_speed = $8, sort_order = $9
		WHERE id = $1
	`

	result, err := r.db.Pool.Exec(ctx, query,
		id,
		input.OwnerID,
		input.Title,
		input.Content,
		input.FontSize,
		input.FgColor,
		input.BgColor,
		input.ScrollSpeed,
		input.SortOrder,
	)

	if err != nil {
		return errFailedUpdateScript(err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.NotFound(errScriptNotFound)
	}

	return nil
}

func (r *ScriptRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	query := "UPDATE scripts SET active = FALSE WHERE id = $1"

	result, err := r.db.Pool.Exec(ctx, query, id)
	if err != nil {
		return errFailedUpdateScript(err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.NotFound(errScriptNotFound)
	}

	return nil
}
