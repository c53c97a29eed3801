package products

import "context"

// RepositoryPort defines data access methods for the product catalog.
type RepositoryPort interface {
	List(ctx context.Context, search string, limit, offset int) ([]Product, int, error)
	Get(ctx context.Context, id int64) (Product, error)
	Create(ctx context.Context, req CreateProductRequest) (Product, error)
	Update(ctx context.Context, id int64, req UpdateProductRequest) (Product, error)
	Delete(ctx context.Context, id int64) error
}

// Service handles catalog business logic.
type Service struct {
	repo RepositoryPort
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// List returns a product page with the total count.
func (s *Service) List(ctx context.Context, search string, limit, offset int) ([]Product, int, error) {
	return s.repo.List(ctx, search, limit, offset)
}

// Get fetches a product.
func (s *Service) Get(ctx context.Context, id int64) (Product, error) {
	return s.repo.Get(ctx, id)
}

// Create inserts a product.
func (s *Service) Create(ctx context.Context, req CreateProductRequest) (Product, error) {
	return s.repo.Create(ctx, req)
}

// Update applies partial changes.
func (s *Service) Update(ctx context.Context, id int64, req UpdateProductRequest) (Product, error) {
	return s.repo.Update(ctx, id, req)
}

// Delete removes a product.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
