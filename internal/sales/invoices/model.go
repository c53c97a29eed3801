package invoices

import "time"

// Status tracks an invoice through its lifecycle.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusSent      Status = "sent"
	StatusPaid      Status = "paid"
	StatusCancelled Status = "cancelled"
)

var allowedTransitions = map[Status][]Status{
	StatusDraft: {StatusSent, StatusCancelled},
	StatusSent:  {StatusPaid, StatusCancelled},
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

// Line is one priced row on an invoice. Amounts are stored as submitted.
type Line struct {
	ProductID   int64   `json:"product_id,omitempty"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Unit        string  `json:"unit,omitempty"`
	UnitPrice   float64 `json:"unit_price"`
	Amount      float64 `json:"amount"`
}

// Invoice is a bill issued to a customer.
type Invoice struct {
	ID          int64      `json:"id"`
	Number      string     `json:"number"`
	CustomerID  int64      `json:"customer_id"`
	QuotationID *int64     `json:"quotation_id,omitempty"`
	Status      Status     `json:"status"`
	IssueDate   time.Time  `json:"issue_date"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	PaidAt      *time.Time `json:"paid_at,omitempty"`
	Lines       []Line     `json:"lines"`
	Total       float64    `json:"total"`
	Notes       string     `json:"notes,omitempty"`
	CreatedBy   int64      `json:"created_by"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// CreateInvoiceRequest opens a new draft invoice.
type CreateInvoiceRequest struct {
	CustomerID  int64      `json:"customer_id" validate:"required,gt=0"`
	QuotationID *int64     `json:"quotation_id,omitempty" validate:"omitempty,gt=0"`
	IssueDate   time.Time  `json:"issue_date" validate:"required"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Lines       []Line     `json:"lines" validate:"required,min=1,dive"`
	Total       float64    `json:"total" validate:"gte=0"`
	Notes       string     `json:"notes" validate:"max=2000"`
}

// UpdateInvoiceRequest mutates a draft invoice.
type UpdateInvoiceRequest struct {
	CustomerID *int64     `json:"customer_id,omitempty" validate:"omitempty,gt=0"`
	IssueDate  *time.Time `json:"issue_date,omitempty"`
	DueDate    *time.Time `json:"due_date,omitempty"`
	Lines      []Line     `json:"lines,omitempty" validate:"omitempty,min=1,dive"`
	Total      *float64   `json:"total,omitempty" validate:"omitempty,gte=0"`
	Notes      *string    `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

// StatusRequest moves an invoice to a new status.
type StatusRequest struct {
	Status Status `json:"status" validate:"required,oneof=draft sent paid cancelled"`
}
