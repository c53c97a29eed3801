package roles

// CreateRoleRequest defines a new user-defined role.
type CreateRoleRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=64"`
	Description string `json:"description" validate:"max=255"`
}

// UpdateRoleRequest mutates an existing user-defined role.
type UpdateRoleRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=2,max=64"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=255"`
}

// SetPermissionsRequest replaces a role's permission grants.
type SetPermissionsRequest struct {
	PermissionIDs []int64 `json:"permission_ids" validate:"required"`
}
