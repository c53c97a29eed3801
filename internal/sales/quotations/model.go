package quotations

import "time"

// Status tracks a quotation through its lifecycle.
type Status string

const (
	StatusDraft    Status = "draft"
	StatusSent     Status = "sent"
	StatusAccepted Status = "accepted"
	StatusDeclined Status = "declined"
)

// allowedTransitions maps each status to the statuses it may move to.
var allowedTransitions = map[Status][]Status{
	StatusDraft: {StatusSent},
	StatusSent:  {StatusAccepted, StatusDeclined},
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

// Line is one priced row on a quotation. Amounts are stored as submitted.
type Line struct {
	ProductID   int64   `json:"product_id,omitempty"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Unit        string  `json:"unit,omitempty"`
	UnitPrice   float64 `json:"unit_price"`
	Amount      float64 `json:"amount"`
}

// Quotation is a priced offer to a customer.
type Quotation struct {
	ID         int64      `json:"id"`
	Number     string     `json:"number"`
	CustomerID int64      `json:"customer_id"`
	Status     Status     `json:"status"`
	IssueDate  time.Time  `json:"issue_date"`
	ValidUntil *time.Time `json:"valid_until,omitempty"`
	Lines      []Line     `json:"lines"`
	Total      float64    `json:"total"`
	Notes      string     `json:"notes,omitempty"`
	CreatedBy  int64      `json:"created_by"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// CreateQuotationRequest opens a new draft quotation.
type CreateQuotationRequest struct {
	CustomerID int64      `json:"customer_id" validate:"required,gt=0"`
	IssueDate  time.Time  `json:"issue_date" validate:"required"`
	ValidUntil *time.Time `json:"valid_until,omitempty"`
	Lines      []Line     `json:"lines" validate:"required,min=1,dive"`
	Total      float64    `json:"total" validate:"gte=0"`
	Notes      string     `json:"notes" validate:"max=2000"`
}

// UpdateQuotationRequest mutates a draft quotation.
type UpdateQuotationRequest struct {
	CustomerID *int64     `json:"customer_id,omitempty" validate:"omitempty,gt=0"`
	IssueDate  *time.Time `json:"issue_date,omitempty"`
	ValidUntil *time.Time `json:"valid_until,omitempty"`
	Lines      []Line     `json:"lines,omitempty" validate:"omitempty,min=1,dive"`
	Total      *float64   `json:"total,omitempty" validate:"omitempty,gte=0"`
	Notes      *string    `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

// StatusRequest moves a quotation to a new status.
type StatusRequest struct {
	Status Status `json:"status" validate:"required,oneof=draft sent accepted declined"`
}
