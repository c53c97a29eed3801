package invoices

import (
	"context"

	"github.com/docuflow/docuflow/internal/shared"
)

// RepositoryPort defines data access methods for invoices.
type RepositoryPort interface {
	List(ctx context.Context, f ListFilter) ([]Invoice, int, error)
	Get(ctx context.Context, id int64) (Invoice, error)
	Create(ctx context.Context, req CreateInvoiceRequest, createdBy int64) (Invoice, error)
	Update(ctx context.Context, id int64, req UpdateInvoiceRequest) (Invoice, error)
	SetStatus(ctx context.Context, id int64, status Status) (Invoice, error)
	Delete(ctx context.Context, id int64) error
}

// Service handles invoice business logic.
type Service struct {
	repo RepositoryPort
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// List returns an invoice page with the total count.
func (s *Service) List(ctx context.Context, f ListFilter) ([]Invoice, int, error) {
	return s.repo.List(ctx, f)
}

// Get fetches an invoice.
func (s *Service) Get(ctx context.Context, id int64) (Invoice, error) {
	return s.repo.Get(ctx, id)
}

// Create opens a new draft invoice owned by createdBy.
func (s *Service) Create(ctx context.Context, req CreateInvoiceRequest, createdBy int64) (Invoice, error) {
	return s.repo.Create(ctx, req, createdBy)
}

// Update mutates an invoice. Only drafts may change.
func (s *Service) Update(ctx context.Context, id int64, req UpdateInvoiceRequest) (Invoice, error) {
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return Invoice{}, err
	}
	if current.Status != StatusDraft {
		return Invoice{}, shared.ErrInvalidTransition
	}
	return s.repo.Update(ctx, id, req)
}

// SetStatus moves an invoice along its lifecycle.
func (s *Service) SetStatus(ctx context.Context, id int64, next Status) (Invoice, error) {
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return Invoice{}, err
	}
	if !CanTransition(current.Status, next) {
		return Invoice{}, shared.ErrInvalidTransition
	}
	return s.repo.SetStatus(ctx, id, next)
}

// Delete removes an invoice. Only drafts may be deleted.
func (s *Service) Delete(ctx context.Context, id int64) error {
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if current.Status != StatusDraft {
		return shared.ErrInvalidTransition
	}
	return s.repo.Delete(ctx, id)
}
