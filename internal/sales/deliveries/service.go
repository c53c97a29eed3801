package deliveries

import (
	"context"

	"github.com/docuflow/docuflow/internal/shared"
)

// RepositoryPort defines data access methods for delivery notes.
type RepositoryPort interface {
	List(ctx context.Context, f ListFilter) ([]Delivery, int, error)
	Get(ctx context.Context, id int64) (Delivery, error)
	Create(ctx context.Context, req CreateDeliveryRequest, createdBy int64) (Delivery, error)
	Update(ctx context.Context, id int64, req UpdateDeliveryRequest) (Delivery, error)
	SetStatus(ctx context.Context, id int64, status Status) (Delivery, error)
	Delete(ctx context.Context, id int64) error
}

// Service handles delivery note business logic.
type Service struct {
	repo RepositoryPort
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// List returns a delivery page with the total count.
func (s *Service) List(ctx context.Context, f ListFilter) ([]Delivery, int, error) {
	return s.repo.List(ctx, f)
}

// Get fetches a delivery note.
func (s *Service) Get(ctx context.Context, id int64) (Delivery, error) {
	return s.repo.Get(ctx, id)
}

// Create opens a new draft delivery note owned by createdBy.
func (s *Service) Create(ctx context.Context, req CreateDeliveryRequest, createdBy int64) (Delivery, error) {
	return s.repo.Create(ctx, req, createdBy)
}

// Update mutates a delivery note. Only drafts may change.
func (s *Service) Update(ctx context.Context, id int64, req UpdateDeliveryRequest) (Delivery, error) {
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return Delivery{}, err
	}
	if current.Status != StatusDraft {
		return Delivery{}, shared.ErrInvalidTransition
	}
	return s.repo.Update(ctx, id, req)
}

// SetStatus moves a delivery note along its lifecycle.
func (s *Service) SetStatus(ctx context.Context, id int64, next Status) (Delivery, error) {
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return Delivery{}, err
	}
	if !CanTransition(current.Status, next) {
		return Delivery{}, shared.ErrInvalidTransition
	}
	return s.repo.SetStatus(ctx, id, next)
}

// Delete removes a delivery note. Only drafts may be deleted.
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
