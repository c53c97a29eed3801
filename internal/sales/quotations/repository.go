package quotations

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

const quotationColumns = `id, number, customer_id, status, issue_date, valid_until, lines, total, notes, created_by, created_at, updated_at`

func scanQuotation(row pgx.Row) (Quotation, error) {
	var q Quotation
	err := row.Scan(&q.ID, &q.Number, &q.CustomerID, &q.Status, &q.IssueDate, &q.ValidUntil,
		&q.Lines, &q.Total, &q.Notes, &q.CreatedBy, &q.CreatedAt, &q.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Quotation{}, shared.ErrNotFound
		}
		return Quotation{}, err
	}
	return q, nil
}

// ListFilter narrows a quotation listing.
type ListFilter struct {
	CustomerID *int64
	Status     *Status
	Limit      int
	Offset     int
}

// List returns quotations newest first.
func (r *Repository) List(ctx context.Context, f ListFilter) ([]Quotation, int, error) {
	var total int
	err := r.pool.QueryRow(ctx, `
		SELECT count(*) FROM quotations
		WHERE ($1::bigint IS NULL OR customer_id = $1)
		  AND ($2::text IS NULL OR status = $2)`, f.CustomerID, f.Status).Scan(&total)
	if err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, `
		SELECT `+quotationColumns+` FROM quotations
		WHERE ($1::bigint IS NULL OR customer_id = $1)
		  AND ($2::text IS NULL OR status = $2)
		ORDER BY id DESC LIMIT $3 OFFSET $4`, f.CustomerID, f.Status, f.Limit, f.Offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	quotations := []Quotation{}
	for rows.Next() {
		var q Quotation
		if err := rows.Scan(&q.ID, &q.Number, &q.CustomerID, &q.Status, &q.IssueDate, &q.ValidUntil,
			&q.Lines, &q.Total, &q.Notes, &q.CreatedBy, &q.CreatedAt, &q.UpdatedAt); err != nil {
			return nil, 0, err
		}
		quotations = append(quotations, q)
	}
	return quotations, total, rows.Err()
}

// Get fetches a single quotation.
func (r *Repository) Get(ctx context.Context, id int64) (Quotation, error) {
	return scanQuotation(r.pool.QueryRow(ctx, `SELECT `+quotationColumns+` FROM quotations WHERE id = $1`, id))
}

// Create inserts a draft quotation with a generated number.
func (r *Repository) Create(ctx context.Context, req CreateQuotationRequest, createdBy int64) (Quotation, error) {
	q, err := scanQuotation(r.pool.QueryRow(ctx, `
		INSERT INTO quotations (number, customer_id, status, issue_date, valid_until, lines, total, notes, created_by)
		VALUES ('QUO-' || to_char(now(), 'YYYY') || '-' || lpad(nextval('quotation_numbers')::text, 5, '0'),
			$1, 'draft', $2, $3, $4, $5, $6, $7)
		RETURNING `+quotationColumns,
		req.CustomerID, req.IssueDate, req.ValidUntil, req.Lines, req.Total, req.Notes, createdBy))
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			return Quotation{}, shared.ErrNotFound
		}
		return Quotation{}, err
	}
	return q, nil
}

// Update applies partial changes to a draft quotation.
func (r *Repository) Update(ctx context.Context, id int64, req UpdateQuotationRequest) (Quotation, error) {
	q, err := scanQuotation(r.pool.QueryRow(ctx, `
		UPDATE quotations SET
			customer_id = COALESCE($2, customer_id),
			issue_date  = COALESCE($3, issue_date),
			valid_until = COALESCE($4, valid_until),
			lines       = COALESCE($5, lines),
			total       = COALESCE($6, total),
			notes       = COALESCE($7, notes),
			updated_at  = now()
		WHERE id = $1
		RETURNING `+quotationColumns,
		id, req.CustomerID, req.IssueDate, req.ValidUntil, req.Lines, req.Total, req.Notes))
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			return Quotation{}, shared.ErrNotFound
		}
		return Quotation{}, err
	}
	return q, nil
}

// SetStatus moves a quotation to a new status.
func (r *Repository) SetStatus(ctx context.Context, id int64, status Status) (Quotation, error) {
	return scanQuotation(r.pool.QueryRow(ctx, `
		UPDATE quotations SET status = $2, updated_at = now()
		WHERE id = $1
		RETURNING `+quotationColumns, id, status))
}

// Delete removes a quotation.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM quotations WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}
