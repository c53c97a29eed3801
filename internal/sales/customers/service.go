package customers

import "context"

// RepositoryPort defines data access methods for customers.
type RepositoryPort interface {
	List(ctx context.Context, search string, limit, offset int) ([]Customer, int, error)
	Get(ctx context.Context, id int64) (Customer, error)
	Create(ctx context.Context, req CreateCustomerRequest) (Customer, error)
	Update(ctx context.Context, id int64, req UpdateCustomerRequest) (Customer, error)
	Delete(ctx context.Context, id int64) error
}

// Service handles customer business logic.
type Service struct {
	repo RepositoryPort
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// List returns a customer page with the total count.
func (s *Service) List(ctx context.Context, search string, limit, offset int) ([]Customer, int, error) {
	return s.repo.List(ctx, search, limit, offset)
}

// Get fetches a customer.
func (s *Service) Get(ctx context.Context, id int64) (Customer, error) {
	return s.repo.Get(ctx, id)
}

// Create inserts a customer.
func (s *Service) Create(ctx context.Context, req CreateCustomerRequest) (Customer, error) {
	return s.repo.Create(ctx, req)
}

// Update applies partial changes.
func (s *Service) Update(ctx context.Context, id int64, req UpdateCustomerRequest) (Customer, error) {
	return s.repo.Update(ctx, id, req)
}

// Delete removes a customer without documents.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
