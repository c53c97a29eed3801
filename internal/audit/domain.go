package audit

import "time"

// Event kinds recorded by the auth surface.
const (
	KindLogin       = "login"
	KindLoginFailed = "login_failed"
	KindLogout      = "logout"
)

// Event is a persisted authentication audit record.
type Event struct {
	ID        int64     `json:"id"`
	UserID    *int64    `json:"user_id,omitempty"`
	Kind      string    `json:"kind"`
	Email     string    `json:"email,omitempty"`
	IP        string    `json:"ip,omitempty"`
	UserAgent string    `json:"user_agent,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
