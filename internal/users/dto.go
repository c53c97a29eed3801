package users

// CreateUserRequest provisions a new account. The plaintext password is
// hashed before it reaches the repository.
type CreateUserRequest struct {
	Email     string  `json:"email" validate:"required,email"`
	Username  string  `json:"username" validate:"required,min=3,max=64"`
	FirstName string  `json:"first_name" validate:"required,max=100"`
	LastName  string  `json:"last_name" validate:"required,max=100"`
	Password  string  `json:"password" validate:"required,min=8"`
	RoleIDs   []int64 `json:"role_ids,omitempty"`
}

// UpdateUserRequest mutates account profile fields.
type UpdateUserRequest struct {
	Username  *string `json:"username,omitempty" validate:"omitempty,min=3,max=64"`
	FirstName *string `json:"first_name,omitempty" validate:"omitempty,max=100"`
	LastName  *string `json:"last_name,omitempty" validate:"omitempty,max=100"`
	IsActive  *bool   `json:"is_active,omitempty"`
}

// SetRolesRequest replaces a user's role assignments.
type SetRolesRequest struct {
	RoleIDs []int64 `json:"role_ids" validate:"required"`
}
