package deliveries

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

const deliveryColumns = `id, number, customer_id, invoice_id, status, issue_date, shipped_at, delivered_at, lines, notes, created_by, created_at, updated_at`

func scanDelivery(row pgx.Row) (Delivery, error) {
	var d Delivery
	err := row.Scan(&d.ID, &d.Number, &d.CustomerID, &d.InvoiceID, &d.Status, &d.IssueDate,
		&d.ShippedAt, &d.DeliveredAt, &d.Lines, &d.Notes, &d.CreatedBy, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Delivery{}, shared.ErrNotFound
		}
		return Delivery{}, err
	}
	return d, nil
}

// ListFilter narrows a delivery listing.
type ListFilter struct {
	CustomerID *int64
	Status     *Status
	Limit      int
	Offset     int
}

// List returns delivery notes newest first.
func (r *Repository) List(ctx context.Context, f ListFilter) ([]Delivery, int, error) {
	var total int
	err := r.pool.QueryRow(ctx, `
		SELECT count(*) FROM deliveries
		WHERE ($1::bigint IS NULL OR customer_id = $1)
		  AND ($2::text IS NULL OR status = $2)`, f.CustomerID, f.Status).Scan(&total)
	if err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, `
		SELECT `+deliveryColumns+` FROM deliveries
		WHERE ($1::bigint IS NULL OR customer_id = $1)
		  AND ($2::text IS NULL OR status = $2)
		ORDER BY id DESC LIMIT $3 OFFSET $4`, f.CustomerID, f.Status, f.Limit, f.Offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	deliveries := []Delivery{}
	for rows.Next() {
		var d Delivery
		if err := rows.Scan(&d.ID, &d.Number, &d.CustomerID, &d.InvoiceID, &d.Status, &d.IssueDate,
			&d.ShippedAt, &d.DeliveredAt, &d.Lines, &d.Notes, &d.CreatedBy, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, 0, err
		}
		deliveries = append(deliveries, d)
	}
	return deliveries, total, rows.Err()
}

// Get fetches a single delivery note.
func (r *Repository) Get(ctx context.Context, id int64) (Delivery, error) {
	return scanDelivery(r.pool.QueryRow(ctx, `SELECT `+deliveryColumns+` FROM deliveries WHERE id = $1`, id))
}

// Create inserts a draft delivery note with a generated number.
func (r *Repository) Create(ctx context.Context, req CreateDeliveryRequest, createdBy int64) (Delivery, error) {
	d, err := scanDelivery(r.pool.QueryRow(ctx, `
		INSERT INTO deliveries (number, customer_id, invoice_id, status, issue_date, lines, notes, created_by)
		VALUES ('DLV-' || to_char(now(), 'YYYY') || '-' || lpad(nextval('delivery_numbers')::text, 5, '0'),
			$1, $2, 'draft', $3, $4, $5, $6)
		RETURNING `+deliveryColumns,
		req.CustomerID, req.InvoiceID, req.IssueDate, req.Lines, req.Notes, createdBy))
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			return Delivery{}, shared.ErrNotFound
		}
		return Delivery{}, err
	}
	return d, nil
}

// Update applies partial changes to a draft delivery note.
func (r *Repository) Update(ctx context.Context, id int64, req UpdateDeliveryRequest) (Delivery, error) {
	d, err := scanDelivery(r.pool.QueryRow(ctx, `
		UPDATE deliveries SET
			customer_id = COALESCE($2, customer_id),
			invoice_id  = COALESCE($3, invoice_id),
			issue_date  = COALESCE($4, issue_date),
			lines       = COALESCE($5, lines),
			notes       = COALESCE($6, notes),
			updated_at  = now()
		WHERE id = $1
		RETURNING `+deliveryColumns,
		id, req.CustomerID, req.InvoiceID, req.IssueDate, req.Lines, req.Notes))
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			return Delivery{}, shared.ErrNotFound
		}
		return Delivery{}, err
	}
	return d, nil
}

// SetStatus moves a delivery note forward, stamping shipped_at and delivered_at.
func (r *Repository) SetStatus(ctx context.Context, id int64, status Status) (Delivery, error) {
	return scanDelivery(r.pool.QueryRow(ctx, `
		UPDATE deliveries SET
			status       = $2,
			shipped_at   = CASE WHEN $2 = 'shipped' THEN now() ELSE shipped_at END,
			delivered_at = CASE WHEN $2 = 'delivered' THEN now() ELSE delivered_at END,
			updated_at   = now()
		WHERE id = $1
		RETURNING `+deliveryColumns, id, status))
}

// Delete removes a delivery note.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM deliveries WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}
