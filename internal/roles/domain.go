package roles

import "time"

// Role represents a role on the management surface. System roles are
// seeded and cannot be edited or deleted regardless of caller privilege.
type Role struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	IsSystem    bool      `json:"is_system"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
