package rbac

import (
	"strings"
	"time"
)

// Resource names a protected surface of the application.
type Resource string

// Action names an operation on a resource.
type Action string

// Canonical actions. The set is open-ended; these four cover the CRUD surface.
const (
	ActionRead   Action = "read"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Protected resources.
const (
	ResourceUsers       Resource = "users"
	ResourceRoles       Resource = "roles"
	ResourcePermissions Resource = "permissions"
	ResourceCustomers   Resource = "customers"
	ResourceProducts    Resource = "products"
	ResourceQuotations  Resource = "quotations"
	ResourceInvoices    Resource = "invoices"
	ResourceDeliveries  Resource = "deliveries"
)

// SuperuserRole is the role name the decision procedure treats as an
// unconditional allow.
const SuperuserRole = "admin"

// WildcardKey is recognized as "all permissions" when present in a claims
// list. No write path ever grants it.
const WildcardKey = "*:*"

// Permission is a typed (resource, action) pair. It only becomes the
// colon-joined wire string at the claims-encoding boundary.
type Permission struct {
	Resource Resource
	Action   Action
}

// Key renders the permission as its "resource:action" wire form.
func (p Permission) Key() string {
	return string(p.Resource) + ":" + string(p.Action)
}

// ParseKey splits a "resource:action" key back into a Permission.
func ParseKey(key string) (Permission, bool) {
	res, act, ok := strings.Cut(key, ":")
	if !ok || res == "" || act == "" {
		return Permission{}, false
	}
	return Permission{Resource: Resource(res), Action: Action(act)}, true
}

// Role is a stored role record.
type Role struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	IsSystem    bool      `json:"is_system"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PermissionRecord is a stored permission row.
type PermissionRecord struct {
	ID          int64  `json:"id"`
	Resource    string `json:"resource"`
	Action      string `json:"action"`
	Description string `json:"description"`
}

// Key renders the record's wire form.
func (p PermissionRecord) Key() string {
	return p.Resource + ":" + p.Action
}
