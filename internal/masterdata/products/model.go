package products

import "time"

// Product is a sellable catalog item.
type Product struct {
	ID          int64     `json:"id"`
	SKU         string    `json:"sku"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Unit        string    `json:"unit"`
	UnitPrice   float64   `json:"unit_price"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateProductRequest defines a new catalog item.
type CreateProductRequest struct {
	SKU         string  `json:"sku" validate:"required,max=50"`
	Name        string  `json:"name" validate:"required,max=200"`
	Description string  `json:"description" validate:"max=1000"`
	Unit        string  `json:"unit" validate:"required,max=20"`
	UnitPrice   float64 `json:"unit_price" validate:"gte=0"`
}

// UpdateProductRequest mutates an existing catalog item.
type UpdateProductRequest struct {
	SKU         *string  `json:"sku,omitempty" validate:"omitempty,max=50"`
	Name        *string  `json:"name,omitempty" validate:"omitempty,max=200"`
	Description *string  `json:"description,omitempty" validate:"omitempty,max=1000"`
	Unit        *string  `json:"unit,omitempty" validate:"omitempty,max=20"`
	UnitPrice   *float64 `json:"unit_price,omitempty" validate:"omitempty,gte=0"`
	IsActive    *bool    `json:"is_active,omitempty"`
}
