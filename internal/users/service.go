package users

import (
	"context"

	"github.com/docuflow/docuflow/internal/auth"
	"github.com/docuflow/docuflow/internal/rbac"
)

// RepositoryPort defines data access methods for users.
type RepositoryPort interface {
	List(ctx context.Context, limit, offset int) ([]User, int, error)
	Get(ctx context.Context, id int64) (User, error)
	Create(ctx context.Context, req CreateUserRequest, passwordHash string) (User, error)
	Update(ctx context.Context, id int64, req UpdateUserRequest) (User, error)
	Deactivate(ctx context.Context, id int64) error
}

// RoleAssigner manages user-role links. Satisfied by the rbac service.
type RoleAssigner interface {
	AssignRole(ctx context.Context, userID, roleID int64) error
	RemoveRole(ctx context.Context, userID, roleID int64) error
	UserRoles(ctx context.Context, userID int64) ([]rbac.Role, error)
}

// Service handles user administration logic.
type Service struct {
	repo   RepositoryPort
	hasher auth.Hasher
	roles  RoleAssigner
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort, hasher auth.Hasher, roles RoleAssigner) *Service {
	return &Service{repo: repo, hasher: hasher, roles: roles}
}

// List returns a page of users with the total count.
func (s *Service) List(ctx context.Context, limit, offset int) ([]User, int, error) {
	return s.repo.List(ctx, limit, offset)
}

// Get fetches a user together with their role assignments.
func (s *Service) Get(ctx context.Context, id int64) (User, []rbac.Role, error) {
	user, err := s.repo.Get(ctx, id)
	if err != nil {
		return User{}, nil, err
	}
	roles, err := s.roles.UserRoles(ctx, id)
	if err != nil {
		return User{}, nil, err
	}
	return user, roles, nil
}

// Create provisions an account, hashing the password and assigning initial
// roles.
func (s *Service) Create(ctx context.Context, req CreateUserRequest) (User, error) {
	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return User{}, err
	}
	user, err := s.repo.Create(ctx, req, hash)
	if err != nil {
		return User{}, err
	}
	for _, roleID := range req.RoleIDs {
		if err := s.roles.AssignRole(ctx, user.ID, roleID); err != nil {
			return User{}, err
		}
	}
	return user, nil
}

// Update applies partial profile changes.
func (s *Service) Update(ctx context.Context, id int64, req UpdateUserRequest) (User, error) {
	return s.repo.Update(ctx, id, req)
}

// Deactivate soft-deletes the account. Outstanding bearer credentials stop
// resolving on the next request even though they remain unexpired.
func (s *Service) Deactivate(ctx context.Context, id int64) error {
	return s.repo.Deactivate(ctx, id)
}

// SetRoles replaces the user's role assignments with the given set.
func (s *Service) SetRoles(ctx context.Context, userID int64, roleIDs []int64) error {
	current, err := s.roles.UserRoles(ctx, userID)
	if err != nil {
		return err
	}
	keep := make(map[int64]struct{}, len(roleIDs))
	for _, id := range roleIDs {
		keep[id] = struct{}{}
	}
	existing := make(map[int64]struct{}, len(current))
	for _, role := range current {
		existing[role.ID] = struct{}{}
		if _, ok := keep[role.ID]; !ok {
			if err := s.roles.RemoveRole(ctx, userID, role.ID); err != nil {
				return err
			}
		}
	}
	for id := range keep {
		if _, ok := existing[id]; !ok {
			if err := s.roles.AssignRole(ctx, userID, id); err != nil {
				return err
			}
		}
	}
	return nil
}
