package roles

import (
	"context"

	"github.com/docuflow/docuflow/internal/rbac"
	"github.com/docuflow/docuflow/internal/shared"
)

// RepositoryPort defines data access methods for roles.
type RepositoryPort interface {
	List(ctx context.Context) ([]Role, error)
	Get(ctx context.Context, id int64) (Role, error)
	Create(ctx context.Context, name, description string) (Role, error)
	Update(ctx context.Context, id int64, name, description *string) (Role, error)
	Delete(ctx context.Context, id int64) error
	AssignmentCount(ctx context.Context, id int64) (int, error)
}

// GrantManager manages role-permission links. Satisfied by the rbac service.
type GrantManager interface {
	RolePermissions(ctx context.Context, roleID int64) ([]rbac.PermissionRecord, error)
	SetRolePermissions(ctx context.Context, roleID int64, permissionIDs []int64) error
}

// Service handles role administration logic, including the protection rules
// for system roles.
type Service struct {
	repo   RepositoryPort
	grants GrantManager
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort, grants GrantManager) *Service {
	return &Service{repo: repo, grants: grants}
}

// List returns all roles.
func (s *Service) List(ctx context.Context) ([]Role, error) {
	return s.repo.List(ctx)
}

// Get fetches a role together with its permission grants.
func (s *Service) Get(ctx context.Context, id int64) (Role, []rbac.PermissionRecord, error) {
	role, err := s.repo.Get(ctx, id)
	if err != nil {
		return Role{}, nil, err
	}
	perms, err := s.grants.RolePermissions(ctx, id)
	if err != nil {
		return Role{}, nil, err
	}
	return role, perms, nil
}

// Create inserts a user-defined role.
func (s *Service) Create(ctx context.Context, req CreateRoleRequest) (Role, error) {
	return s.repo.Create(ctx, req.Name, req.Description)
}

// Update mutates a role. System roles are rejected regardless of the
// caller's own permissions.
func (s *Service) Update(ctx context.Context, id int64, req UpdateRoleRequest) (Role, error) {
	role, err := s.repo.Get(ctx, id)
	if err != nil {
		return Role{}, err
	}
	if role.IsSystem {
		return Role{}, shared.ErrSystemRole
	}
	return s.repo.Update(ctx, id, req.Name, req.Description)
}

// Delete removes a role. System roles and roles still held by any user are
// rejected.
func (s *Service) Delete(ctx context.Context, id int64) error {
	role, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if role.IsSystem {
		return shared.ErrSystemRole
	}
	count, err := s.repo.AssignmentCount(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return shared.ErrRoleInUse
	}
	return s.repo.Delete(ctx, id)
}

// SetPermissions replaces a role's grants. System roles are immutable here
// as well.
func (s *Service) SetPermissions(ctx context.Context, id int64, permissionIDs []int64) error {
	role, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if role.IsSystem {
		return shared.ErrSystemRole
	}
	return s.grants.SetRolePermissions(ctx, id, permissionIDs)
}
