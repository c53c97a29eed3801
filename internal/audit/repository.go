package audit

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository provides PostgreSQL backed persistence for audit events.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Insert stores an audit event.
func (r *Repository) Insert(ctx context.Context, event Event) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO auth_events (user_id, kind, email, ip, user_agent, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		event.UserID, event.Kind, event.Email, event.IP, event.UserAgent, event.CreatedAt.UTC())
	return err
}

// PurgeOlderThan deletes events created before the cutoff and reports how
// many rows were removed.
func (r *Repository) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM auth_events WHERE created_at < $1`, cutoff.UTC())
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// List returns the most recent events, newest first.
func (r *Repository) List(ctx context.Context, limit, offset int) ([]Event, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, kind, email, ip, user_agent, created_at
		FROM auth_events
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var events []Event
	for rows.Next() {
		var event Event
		if err := rows.Scan(&event.ID, &event.UserID, &event.Kind, &event.Email, &event.IP, &event.UserAgent, &event.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, rows.Err()
}
