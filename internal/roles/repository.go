package roles

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/docuflow/docuflow/internal/platform/db"
	"github.com/docuflow/docuflow/internal/shared"
)

// Repository provides PostgreSQL backed persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const roleColumns = `id, name, description, is_system, created_at, updated_at`

func scanRole(row pgx.Row) (Role, error) {
	var role Role
	err := row.Scan(&role.ID, &role.Name, &role.Description, &role.IsSystem, &role.CreatedAt, &role.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Role{}, shared.ErrNotFound
		}
		return Role{}, err
	}
	return role, nil
}

// List returns all roles ordered by name.
func (r *Repository) List(ctx context.Context) ([]Role, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+roleColumns+` FROM roles ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	roles := []Role{}
	for rows.Next() {
		var role Role
		if err := rows.Scan(&role.ID, &role.Name, &role.Description, &role.IsSystem, &role.CreatedAt, &role.UpdatedAt); err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

// Get fetches a role by ID.
func (r *Repository) Get(ctx context.Context, id int64) (Role, error) {
	return scanRole(r.pool.QueryRow(ctx, `SELECT `+roleColumns+` FROM roles WHERE id = $1`, id))
}

// Create inserts a user-defined role.
func (r *Repository) Create(ctx context.Context, name, description string) (Role, error) {
	role, err := scanRole(r.pool.QueryRow(ctx, `
		INSERT INTO roles (name, description, is_system)
		VALUES ($1, $2, FALSE)
		RETURNING `+roleColumns,
		strings.TrimSpace(name), strings.TrimSpace(description)))
	if err != nil {
		if db.IsUniqueViolation(err) {
			return Role{}, shared.ErrDuplicate
		}
		return Role{}, err
	}
	return role, nil
}

// Update applies partial changes to a role.
func (r *Repository) Update(ctx context.Context, id int64, name, description *string) (Role, error) {
	role, err := scanRole(r.pool.QueryRow(ctx, `
		UPDATE roles SET
			name        = COALESCE($2, name),
			description = COALESCE($3, description),
			updated_at  = now()
		WHERE id = $1
		RETURNING `+roleColumns,
		id, name, description))
	if err != nil {
		if db.IsUniqueViolation(err) {
			return Role{}, shared.ErrDuplicate
		}
		return Role{}, err
	}
	return role, nil
}

// Delete removes a role by ID.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM roles WHERE id = $1`, id)
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			return shared.ErrRoleInUse
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// AssignmentCount reports how many users currently hold the role.
func (r *Repository) AssignmentCount(ctx context.Context, id int64) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM user_roles WHERE role_id = $1`, id).Scan(&count)
	return count, err
}
