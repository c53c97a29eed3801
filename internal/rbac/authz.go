package rbac

import "github.com/docuflow/docuflow/internal/shared"

// CanAccess decides whether the claims allow the given action on the given
// resource. The superuser role short-circuits to allow before any permission
// lookup; the wildcard key is honored if present but is never granted by any
// write path.
func CanAccess(claims *shared.Claims, perm Permission) bool {
	if claims == nil {
		return false
	}
	if claims.HasRoleName(SuperuserRole) {
		return true
	}
	if claims.HasPermissionKey(WildcardKey) {
		return true
	}
	return claims.HasPermissionKey(perm.Key())
}

// HasRole reports role membership. The superuser role satisfies every role
// check, mirroring its permission bypass.
func HasRole(claims *shared.Claims, name string) bool {
	if claims == nil {
		return false
	}
	if claims.HasRoleName(SuperuserRole) {
		return true
	}
	return claims.HasRoleName(name)
}
