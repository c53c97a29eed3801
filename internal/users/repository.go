package users

import (
	"context"
	"errors"

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

const userColumns = `id, email, username, first_name, last_name, is_active, last_login_at, created_at, updated_at`

func scanUser(row pgx.Row) (User, error) {
	var user User
	err := row.Scan(&user.ID, &user.Email, &user.Username, &user.FirstName, &user.LastName, &user.IsActive, &user.LastLoginAt, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, shared.ErrNotFound
		}
		return User{}, err
	}
	return user, nil
}

// List returns users page by page together with the total count.
func (r *Repository) List(ctx context.Context, limit, offset int) ([]User, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM users`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY id LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	users := []User{}
	for rows.Next() {
		var user User
		if err := rows.Scan(&user.ID, &user.Email, &user.Username, &user.FirstName, &user.LastName, &user.IsActive, &user.LastLoginAt, &user.CreatedAt, &user.UpdatedAt); err != nil {
			return nil, 0, err
		}
		users = append(users, user)
	}
	return users, total, rows.Err()
}

// Get fetches a single user.
func (r *Repository) Get(ctx context.Context, id int64) (User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

// Create inserts a provisioned account.
func (r *Repository) Create(ctx context.Context, req CreateUserRequest, passwordHash string) (User, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (email, username, first_name, last_name, password_hash, is_active)
		VALUES ($1, $2, $3, $4, $5, TRUE)
		RETURNING `+userColumns,
		req.Email, req.Username, req.FirstName, req.LastName, passwordHash)
	user, err := scanUser(row)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return User{}, shared.ErrDuplicate
		}
		return User{}, err
	}
	return user, nil
}

// Update applies partial profile changes.
func (r *Repository) Update(ctx context.Context, id int64, req UpdateUserRequest) (User, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE users SET
			username   = COALESCE($2, username),
			first_name = COALESCE($3, first_name),
			last_name  = COALESCE($4, last_name),
			is_active  = COALESCE($5, is_active),
			updated_at = now()
		WHERE id = $1
		RETURNING `+userColumns,
		id, req.Username, req.FirstName, req.LastName, req.IsActive)
	user, err := scanUser(row)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return User{}, shared.ErrDuplicate
		}
		return User{}, err
	}
	return user, nil
}

// Deactivate soft-deletes an account. Records are never hard-deleted.
func (r *Repository) Deactivate(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `UPDATE users SET is_active = FALSE, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}
