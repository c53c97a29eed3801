package shared

// Claims is the decoded payload of a bearer credential: identity plus the
// role names and permission keys flattened at issuance time. The lists are a
// snapshot; they are not refreshed while the credential remains valid.
type Claims struct {
	UserID      int64    `json:"id"`
	Email       string   `json:"email"`
	Username    string   `json:"username"`
	FirstName   string   `json:"first_name"`
	LastName    string   `json:"last_name"`
	Roles       []string `json:"roles"`
	Permissions []string `json:"permissions"`
}

// HasRoleName reports direct membership of a role name in the claims.
func (c *Claims) HasRoleName(name string) bool {
	if c == nil {
		return false
	}
	for _, r := range c.Roles {
		if r == name {
			return true
		}
	}
	return false
}

// HasPermissionKey reports direct membership of a permission key.
func (c *Claims) HasPermissionKey(key string) bool {
	if c == nil {
		return false
	}
	for _, p := range c.Permissions {
		if p == key {
			return true
		}
	}
	return false
}
