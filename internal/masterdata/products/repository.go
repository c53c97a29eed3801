package products

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

const productColumns = `id, sku, name, description, unit, unit_price, is_active, created_at, updated_at`

func scanProduct(row pgx.Row) (Product, error) {
	var p Product
	err := row.Scan(&p.ID, &p.SKU, &p.Name, &p.Description, &p.Unit, &p.UnitPrice, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Product{}, shared.ErrNotFound
		}
		return Product{}, err
	}
	return p, nil
}

// List returns products page by page, matching name or SKU when search is set.
func (r *Repository) List(ctx context.Context, search string, limit, offset int) ([]Product, int, error) {
	pattern := "%" + search + "%"
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM products WHERE name ILIKE $1 OR sku ILIKE $1`, pattern).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, `
		SELECT `+productColumns+` FROM products
		WHERE name ILIKE $1 OR sku ILIKE $1
		ORDER BY sku LIMIT $2 OFFSET $3`, pattern, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	products := []Product{}
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.SKU, &p.Name, &p.Description, &p.Unit, &p.UnitPrice, &p.IsActive, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, 0, err
		}
		products = append(products, p)
	}
	return products, total, rows.Err()
}

// Get fetches a single product.
func (r *Repository) Get(ctx context.Context, id int64) (Product, error) {
	return scanProduct(r.pool.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id))
}

// Create inserts a product.
func (r *Repository) Create(ctx context.Context, req CreateProductRequest) (Product, error) {
	p, err := scanProduct(r.pool.QueryRow(ctx, `
		INSERT INTO products (sku, name, description, unit, unit_price, is_active)
		VALUES ($1, $2, $3, $4, $5, TRUE)
		RETURNING `+productColumns,
		req.SKU, req.Name, req.Description, req.Unit, req.UnitPrice))
	if err != nil {
		if db.IsUniqueViolation(err) {
			return Product{}, shared.ErrDuplicate
		}
		return Product{}, err
	}
	return p, nil
}

// Update applies partial changes.
func (r *Repository) Update(ctx context.Context, id int64, req UpdateProductRequest) (Product, error) {
	p, err := scanProduct(r.pool.QueryRow(ctx, `
		UPDATE products SET
			sku         = COALESCE($2, sku),
			name        = COALESCE($3, name),
			description = COALESCE($4, description),
			unit        = COALESCE($5, unit),
			unit_price  = COALESCE($6, unit_price),
			is_active   = COALESCE($7, is_active),
			updated_at  = now()
		WHERE id = $1
		RETURNING `+productColumns,
		id, req.SKU, req.Name, req.Description, req.Unit, req.UnitPrice, req.IsActive))
	if err != nil {
		if db.IsUniqueViolation(err) {
			return Product{}, shared.ErrDuplicate
		}
		return Product{}, err
	}
	return p, nil
}

// Delete removes a product not referenced by document lines.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
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
