package auth

import "time"

// Account represents a stored user account. Accounts are provisioned by
// administrators and soft-deleted via the active flag, never hard-deleted.
type Account struct {
	ID           int64
	Email        string
	Username     string
	FirstName    string
	LastName     string
	PasswordHash string
	IsActive     bool
	LastLoginAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
