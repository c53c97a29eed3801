package rbac

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/docuflow/docuflow/internal/platform/db"
	"github.com/docuflow/docuflow/internal/shared"
)

// Service resolves effective authorization state and manages grants.
type Service struct {
	pool *pgxpool.Pool
}

// NewService constructs a Service backed by the provided pool.
func NewService(pool *pgxpool.Pool) *Service {
	return &Service{pool: pool}
}

// EffectiveClaims flattens a user's role assignments into de-duplicated role
// names and permission keys. Pure function of current store state; invoked at
// login and by admin snapshot endpoints, not on every request.
func (s *Service) EffectiveClaims(ctx context.Context, userID int64) (roles []string, permissions []string, err error) {
	rows, err := s.pool.Query(ctx, `
		SELECT r.name
		FROM roles r
		JOIN user_roles ur ON ur.role_id = r.id
		WHERE ur.user_id = $1`, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("rbac: load roles: %w", err)
	}
	defer rows.Close()
	var roleNames []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, nil, err
		}
		roleNames = append(roleNames, name)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	permRows, err := s.pool.Query(ctx, `
		SELECT p.resource, p.action
		FROM permissions p
		JOIN role_permissions rp ON rp.permission_id = p.id
		JOIN user_roles ur ON ur.role_id = rp.role_id
		WHERE ur.user_id = $1`, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("rbac: load permissions: %w", err)
	}
	defer permRows.Close()
	var grants []Permission
	for permRows.Next() {
		var resource, action string
		if err := permRows.Scan(&resource, &action); err != nil {
			return nil, nil, err
		}
		grants = append(grants, Permission{Resource: Resource(resource), Action: Action(action)})
	}
	if err := permRows.Err(); err != nil {
		return nil, nil, err
	}
	roles, permissions = flattenClaims(roleNames, grants)
	return roles, permissions, nil
}

// flattenClaims collapses per-assignment rows into role names and permission
// keys. Roles sharing a grant contribute it once: the result is the union over
// all assigned roles, first-seen order.
func flattenClaims(roleNames []string, grants []Permission) (roles, permissions []string) {
	roles = make([]string, 0, len(roleNames))
	seenRoles := make(map[string]struct{}, len(roleNames))
	for _, name := range roleNames {
		if _, ok := seenRoles[name]; ok {
			continue
		}
		seenRoles[name] = struct{}{}
		roles = append(roles, name)
	}

	permissions = make([]string, 0, len(grants))
	seenPerms := make(map[string]struct{}, len(grants))
	for _, grant := range grants {
		key := grant.Key()
		if _, ok := seenPerms[key]; ok {
			continue
		}
		seenPerms[key] = struct{}{}
		permissions = append(permissions, key)
	}
	return roles, permissions
}

// ListPermissions returns the stored permission catalog.
func (s *Service) ListPermissions(ctx context.Context) ([]PermissionRecord, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, resource, action, description
		FROM permissions
		ORDER BY resource, action`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var perms []PermissionRecord
	for rows.Next() {
		var p PermissionRecord
		if err := rows.Scan(&p.ID, &p.Resource, &p.Action, &p.Description); err != nil {
			return nil, err
		}
		perms = append(perms, p)
	}
	return perms, rows.Err()
}

// EnsurePermission upserts a permission keyed on (resource, action).
func (s *Service) EnsurePermission(ctx context.Context, perm Permission, description string) (PermissionRecord, error) {
	var record PermissionRecord
	err := s.pool.QueryRow(ctx, `
		INSERT INTO permissions (resource, action, description)
		VALUES ($1, $2, $3)
		ON CONFLICT (resource, action) DO UPDATE SET description = EXCLUDED.description
		RETURNING id, resource, action, description`,
		string(perm.Resource), string(perm.Action), description,
	).Scan(&record.ID, &record.Resource, &record.Action, &record.Description)
	if err != nil {
		return PermissionRecord{}, err
	}
	return record, nil
}

// RolePermissions lists the permissions granted to a role.
func (s *Service) RolePermissions(ctx context.Context, roleID int64) ([]PermissionRecord, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT p.id, p.resource, p.action, p.description
		FROM permissions p
		JOIN role_permissions rp ON rp.permission_id = p.id
		WHERE rp.role_id = $1
		ORDER BY p.resource, p.action`, roleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var perms []PermissionRecord
	for rows.Next() {
		var p PermissionRecord
		if err := rows.Scan(&p.ID, &p.Resource, &p.Action, &p.Description); err != nil {
			return nil, err
		}
		perms = append(perms, p)
	}
	return perms, rows.Err()
}

// SetRolePermissions replaces the permission grants of a role with the given
// permission IDs.
func (s *Service) SetRolePermissions(ctx context.Context, roleID int64, permissionIDs []int64) error {
	return db.WithTx(ctx, s.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM role_permissions WHERE role_id = $1`, roleID); err != nil {
			return err
		}
		for _, id := range permissionIDs {
			if _, err := tx.Exec(ctx, `
				INSERT INTO role_permissions (role_id, permission_id)
				VALUES ($1, $2) ON CONFLICT DO NOTHING`, roleID, id); err != nil {
				if db.IsForeignKeyViolation(err) {
					return shared.ErrNotFound
				}
				return err
			}
		}
		return nil
	})
}

// AssignRole assigns a role to the given user.
func (s *Service) AssignRole(ctx context.Context, userID, roleID int64) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO user_roles (user_id, role_id)
		VALUES ($1, $2) ON CONFLICT DO NOTHING`, userID, roleID)
	if db.IsForeignKeyViolation(err) {
		return shared.ErrNotFound
	}
	return err
}

// RemoveRole removes a role from a user.
func (s *Service) RemoveRole(ctx context.Context, userID, roleID int64) error {
	_, err := s.pool.Exec(ctx, `
		DELETE FROM user_roles WHERE user_id = $1 AND role_id = $2`, userID, roleID)
	return err
}

// UserRoles lists the roles held by a user.
func (s *Service) UserRoles(ctx context.Context, userID int64) ([]Role, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT r.id, r.name, r.description, r.is_system, r.created_at, r.updated_at
		FROM roles r
		JOIN user_roles ur ON ur.role_id = r.id
		WHERE ur.user_id = $1
		ORDER BY r.name`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var roles []Role
	for rows.Next() {
		var role Role
		if err := rows.Scan(&role.ID, &role.Name, &role.Description, &role.IsSystem, &role.CreatedAt, &role.UpdatedAt); err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}
