package auth

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/docuflow/docuflow/internal/shared"
)

// Repository defines persistence operations for the auth module.
type Repository interface {
	FindByEmail(ctx context.Context, email string) (*Account, error)
	FindByID(ctx context.Context, id int64, activeOnly bool) (*Account, error)
	UpdateLastLogin(ctx context.Context, id int64, at time.Time) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

const accountColumns = `id, email, username, first_name, last_name, password_hash, is_active, last_login_at, created_at, updated_at`

func scanAccount(row pgx.Row) (*Account, error) {
	var account Account
	err := row.Scan(
		&account.ID,
		&account.Email,
		&account.Username,
		&account.FirstName,
		&account.LastName,
		&account.PasswordHash,
		&account.IsActive,
		&account.LastLoginAt,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &account, nil
}

// FindByEmail fetches an account by login handle.
func (r *PGRepository) FindByEmail(ctx context.Context, email string) (*Account, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+accountColumns+` FROM users WHERE email = $1`, email)
	return scanAccount(row)
}

// FindByID fetches an account by ID. With activeOnly set, a deactivated
// account is reported as not found.
func (r *PGRepository) FindByID(ctx context.Context, id int64, activeOnly bool) (*Account, error) {
	query := `SELECT ` + accountColumns + ` FROM users WHERE id = $1`
	if activeOnly {
		query += ` AND is_active`
	}
	return scanAccount(r.pool.QueryRow(ctx, query, id))
}

// UpdateLastLogin records the most recent successful authentication.
func (r *PGRepository) UpdateLastLogin(ctx context.Context, id int64, at time.Time) error {
	_, err := r.pool.Exec(ctx, `UPDATE users SET last_login_at = $2, updated_at = now() WHERE id = $1`, id, at.UTC())
	return err
}

// UpdatePassword replaces the stored password hash.
func (r *PGRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE users SET password_hash = $2, updated_at = now() WHERE id = $1`, id, passwordHash)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ Repository = (*PGRepository)(nil)
