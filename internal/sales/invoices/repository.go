package invoices

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

const invoiceColumns = `id, number, customer_id, quotation_id, status, issue_date, due_date, paid_at, lines, total, notes, created_by, created_at, updated_at`

func scanInvoice(row pgx.Row) (Invoice, error) {
	var inv Invoice
	err := row.Scan(&inv.ID, &inv.Number, &inv.CustomerID, &inv.QuotationID, &inv.Status, &inv.IssueDate,
		&inv.DueDate, &inv.PaidAt, &inv.Lines, &inv.Total, &inv.Notes, &inv.CreatedBy, &inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Invoice{}, shared.ErrNotFound
		}
		return Invoice{}, err
	}
	return inv, nil
}

// ListFilter narrows an invoice listing.
type ListFilter struct {
	CustomerID *int64
	Status     *Status
	Limit      int
	Offset     int
}

// List returns invoices newest first.
func (r *Repository) List(ctx context.Context, f ListFilter) ([]Invoice, int, error) {
	var total int
	err := r.pool.QueryRow(ctx, `
		SELECT count(*) FROM invoices
		WHERE ($1::bigint IS NULL OR customer_id = $1)
		  AND ($2::text IS NULL OR status = $2)`, f.CustomerID, f.Status).Scan(&total)
	if err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, `
		SELECT `+invoiceColumns+` FROM invoices
		WHERE ($1::bigint IS NULL OR customer_id = $1)
		  AND ($2::text IS NULL OR status = $2)
		ORDER BY id DESC LIMIT $3 OFFSET $4`, f.CustomerID, f.Status, f.Limit, f.Offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	invoices := []Invoice{}
	for rows.Next() {
		var inv Invoice
		if err := rows.Scan(&inv.ID, &inv.Number, &inv.CustomerID, &inv.QuotationID, &inv.Status, &inv.IssueDate,
			&inv.DueDate, &inv.PaidAt, &inv.Lines, &inv.Total, &inv.Notes, &inv.CreatedBy, &inv.CreatedAt, &inv.UpdatedAt); err != nil {
			return nil, 0, err
		}
		invoices = append(invoices, inv)
	}
	return invoices, total, rows.Err()
}

// Get fetches a single invoice.
func (r *Repository) Get(ctx context.Context, id int64) (Invoice, error) {
	return scanInvoice(r.pool.QueryRow(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE id = $1`, id))
}

// Create inserts a draft invoice with a generated number.
func (r *Repository) Create(ctx context.Context, req CreateInvoiceRequest, createdBy int64) (Invoice, error) {
	inv, err := scanInvoice(r.pool.QueryRow(ctx, `
		INSERT INTO invoices (number, customer_id, quotation_id, status, issue_date, due_date, lines, total, notes, created_by)
		VALUES ('INV-' || to_char(now(), 'YYYY') || '-' || lpad(nextval('invoice_numbers')::text, 5, '0'),
			$1, $2, 'draft', $3, $4, $5, $6, $7, $8)
		RETURNING `+invoiceColumns,
		req.CustomerID, req.QuotationID, req.IssueDate, req.DueDate, req.Lines, req.Total, req.Notes, createdBy))
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			return Invoice{}, shared.ErrNotFound
		}
		return Invoice{}, err
	}
	return inv, nil
}

// Update applies partial changes to a draft invoice.
func (r *Repository) Update(ctx context.Context, id int64, req UpdateInvoiceRequest) (Invoice, error) {
	inv, err := scanInvoice(r.pool.QueryRow(ctx, `
		UPDATE invoices SET
			customer_id = COALESCE($2, customer_id),
			issue_date  = COALESCE($3, issue_date),
			due_date    = COALESCE($4, due_date),
			lines       = COALESCE($5, lines),
			total       = COALESCE($6, total),
			notes       = COALESCE($7, notes),
			updated_at  = now()
		WHERE id = $1
		RETURNING `+invoiceColumns,
		id, req.CustomerID, req.IssueDate, req.DueDate, req.Lines, req.Total, req.Notes))
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			return Invoice{}, shared.ErrNotFound
		}
		return Invoice{}, err
	}
	return inv, nil
}

// SetStatus moves an invoice to a new status. Paid invoices record paid_at.
func (r *Repository) SetStatus(ctx context.Context, id int64, status Status) (Invoice, error) {
	return scanInvoice(r.pool.QueryRow(ctx, `
		UPDATE invoices SET
			status     = $2,
			paid_at    = CASE WHEN $2 = 'paid' THEN now() ELSE paid_at END,
			updated_at = now()
		WHERE id = $1
		RETURNING `+invoiceColumns, id, status))
}

// Delete removes an invoice.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM invoices WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}
