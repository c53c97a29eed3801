package customers

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

const customerColumns = `id, name, email, phone, address, city, country, tax_id, created_at, updated_at`

func scanCustomer(row pgx.Row) (Customer, error) {
	var c Customer
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Address, &c.City, &c.Country, &c.TaxID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Customer{}, shared.ErrNotFound
		}
		return Customer{}, err
	}
	return c, nil
}

// List returns customers page by page, optionally filtered by a name search.
func (r *Repository) List(ctx context.Context, search string, limit, offset int) ([]Customer, int, error) {
	pattern := "%" + search + "%"
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM customers WHERE name ILIKE $1`, pattern).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, `
		SELECT `+customerColumns+` FROM customers
		WHERE name ILIKE $1
		ORDER BY name LIMIT $2 OFFSET $3`, pattern, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	customers := []Customer{}
	for rows.Next() {
		var c Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Address, &c.City, &c.Country, &c.TaxID, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, 0, err
		}
		customers = append(customers, c)
	}
	return customers, total, rows.Err()
}

// Get fetches a single customer.
func (r *Repository) Get(ctx context.Context, id int64) (Customer, error) {
	return scanCustomer(r.pool.QueryRow(ctx, `SELECT `+customerColumns+` FROM customers WHERE id = $1`, id))
}

// Create inserts a customer.
func (r *Repository) Create(ctx context.Context, req CreateCustomerRequest) (Customer, error) {
	c, err := scanCustomer(r.pool.QueryRow(ctx, `
		INSERT INTO customers (name, email, phone, address, city, country, tax_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+customerColumns,
		req.Name, req.Email, req.Phone, req.Address, req.City, req.Country, req.TaxID))
	if err != nil {
		if db.IsUniqueViolation(err) {
			return Customer{}, shared.ErrDuplicate
		}
		return Customer{}, err
	}
	return c, nil
}

// Update applies partial changes.
func (r *Repository) Update(ctx context.Context, id int64, req UpdateCustomerRequest) (Customer, error) {
	c, err := scanCustomer(r.pool.QueryRow(ctx, `
		UPDATE customers SET
			name       = COALESCE($2, name),
			email      = COALESCE($3, email),
			phone      = COALESCE($4, phone),
			address    = COALESCE($5, address),
			city       = COALESCE($6, city),
			country    = COALESCE($7, country),
			tax_id     = COALESCE($8, tax_id),
			updated_at = now()
		WHERE id = $1
		RETURNING `+customerColumns,
		id, req.Name, req.Email, req.Phone, req.Address, req.City, req.Country, req.TaxID))
	if err != nil {
		if db.IsUniqueViolation(err) {
			return Customer{}, shared.ErrDuplicate
		}
		return Customer{}, err
	}
	return c, nil
}

// Delete removes a customer with no documents attached.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			return shared.ErrInUse
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}
