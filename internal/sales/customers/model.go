package customers

import "time"

// Customer is a party documents are issued to.
type Customer struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	City      string    `json:"city,omitempty"`
	Country   string    `json:"country,omitempty"`
	TaxID     string    `json:"tax_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateCustomerRequest defines a new customer.
type CreateCustomerRequest struct {
	Name    string `json:"name" validate:"required,max=200"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"max=50"`
	Address string `json:"address" validate:"max=500"`
	City    string `json:"city" validate:"max=100"`
	Country string `json:"country" validate:"max=100"`
	TaxID   string `json:"tax_id" validate:"max=50"`
}

// UpdateCustomerRequest mutates an existing customer.
type UpdateCustomerRequest struct {
	Name    *string `json:"name,omitempty" validate:"omitempty,max=200"`
	Email   *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone   *string `json:"phone,omitempty" validate:"omitempty,max=50"`
	Address *string `json:"address,omitempty" validate:"omitempty,max=500"`
	City    *string `json:"city,omitempty" validate:"omitempty,max=100"`
	Country *string `json:"country,omitempty" validate:"omitempty,max=100"`
	TaxID   *string `json:"tax_id,omitempty" validate:"omitempty,max=50"`
}
