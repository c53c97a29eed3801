package quotations

import (
	"context"

	"github.com/docuflow/docuflow/internal/shared"
)

// RepositoryPort defines data access methods for quotations.
type RepositoryPort interface {
	List(ctx context.Context, f ListFilter) ([]Quotation, int, error)
	Get(ctx context.Context, id int64) (Quotation, error)
	Create(ctx context.Context, req CreateQuotationRequest, createdBy int64) (Quotation, error)
	Update(ctx context.Context, id int64, req UpdateQuotationRequest) (Quotation, error)
	SetStatus(ctx context.Context, id int64, status Status) (Quotation, error)
	Delete(ctx context.Context, id int64) error
}

// Service handles quotation business logic.
type Service struct {
	repo RepositoryPort
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// List returns a quotation page with the total count.
func (s *Service) List(ctx context.Context, f ListFilter) ([]Quotation, int, error) {
	return s.repo.List(ctx, f)
}

// Get fetches a quotation.
func (s *Service) Get(ctx context.Context, id int64) (Quotation, error) {
	return s.repo.Get(ctx, id)
}

// Create opens a new draft quotation owned by createdBy.
func (s *Service) Create(ctx context.Context, req CreateQuotationRequest, createdBy int64) (Quotation, error) {
	return s.repo.Create(ctx, req, createdBy)
}

// Update mutates a quotation. Only drafts may change.
func (s *Service) Update(ctx context.Context, id int64, req UpdateQuotationRequest) (Quotation, error) {
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return Quotation{}, err
	}
	if current.Status != StatusDraft {
		return Quotation{}, shared.ErrInvalidTransition
	}
	return s.repo.Update(ctx, id, req)
}

// SetStatus moves a quotation along its lifecycle.
func (s *Service) SetStatus(ctx context.Context, id int64, next Status) (Quotation, error) {
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return Quotation{}, err
	}
	if !CanTransition(current.Status, next) {
		return Quotation{}, shared.ErrInvalidTransition
	}
	return s.repo.SetStatus(ctx, id, next)
}

// Delete removes a quotation. Only drafts may be deleted.
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
