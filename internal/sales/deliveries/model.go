package deliveries

import "time"

// Status tracks a delivery note through its lifecycle.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusShipped   Status = "shipped"
	StatusDelivered Status = "delivered"
)

var allowedTransitions = map[Status][]Status{
	StatusDraft:   {StatusShipped},
	StatusShipped: {StatusDelivered},
}

// CanTransition reports whether from may move to to.
func CanTransition(from, to Status) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Line is one shipped row on a delivery note. Quantities only, no pricing.
type Line struct {
	ProductID   int64   `json:"product_id,omitempty"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Unit        string  `json:"unit,omitempty"`
}

// Delivery is a shipment record against a customer, optionally tied to an invoice.
type Delivery struct {
	ID           int64      `json:"id"`
	Number       string     `json:"number"`
	CustomerID   int64      `json:"customer_id"`
	InvoiceID    *int64     `json:"invoice_id,omitempty"`
	Status       Status     `json:"status"`
	IssueDate    time.Time  `json:"issue_date"`
	ShippedAt    *time.Time `json:"shipped_at,omitempty"`
	DeliveredAt  *time.Time `json:"delivered_at,omitempty"`
	Lines        []Line     `json:"lines"`
	Notes        string     `json:"notes,omitempty"`
	CreatedBy    int64      `json:"created_by"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// CreateDeliveryRequest opens a new draft delivery note.
type CreateDeliveryRequest struct {
	CustomerID int64     `json:"customer_id" validate:"required,gt=0"`
	InvoiceID  *int64    `json:"invoice_id,omitempty" validate:"omitempty,gt=0"`
	IssueDate  time.Time `json:"issue_date" validate:"required"`
	Lines      []Line    `json:"lines" validate:"required,min=1,dive"`
	Notes      string    `json:"notes" validate:"max=2000"`
}

// UpdateDeliveryRequest mutates a draft delivery note.
type UpdateDeliveryRequest struct {
	CustomerID *int64     `json:"customer_id,omitempty" validate:"omitempty,gt=0"`
	InvoiceID  *int64     `json:"invoice_id,omitempty" validate:"omitempty,gt=0"`
	IssueDate  *time.Time `json:"issue_date,omitempty"`
	Lines      []Line     `json:"lines,omitempty" validate:"omitempty,min=1,dive"`
	Notes      *string    `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

// StatusRequest moves a delivery note to a new status.
type StatusRequest struct {
	Status Status `json:"status" validate:"required,oneof=draft shipped delivered"`
}
