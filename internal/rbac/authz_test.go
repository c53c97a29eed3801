package rbac

import (
	"testing"

	"github.com/docuflow/docuflow/internal/shared"
)

func TestCanAccessNilClaims(t *testing.T) {
	if CanAccess(nil, Permission{Resource: ResourceInvoices, Action: ActionRead}) {
		t.Fatal("nil claims must never be granted access")
	}
}

func TestCanAccessExactPermission(t *testing.T) {
	claims := &shared.Claims{Permissions: []string{"invoices:read"}}

	if !CanAccess(claims, Permission{Resource: ResourceInvoices, Action: ActionRead}) {
		t.Fatal("exact permission key must grant access")
	}
	if CanAccess(claims, Permission{Resource: ResourceInvoices, Action: ActionCreate}) {
		t.Fatal("other actions on the same resource must be denied")
	}
	if CanAccess(claims, Permission{Resource: ResourceCustomers, Action: ActionRead}) {
		t.Fatal("other resources must be denied")
	}
}

func TestCanAccessSuperuserBypass(t *testing.T) {
	claims := &shared.Claims{Roles: []string{SuperuserRole}}

	for _, resource := range []Resource{ResourceUsers, ResourceRoles, ResourceInvoices, ResourceDeliveries} {
		for _, action := range []Action{ActionRead, ActionCreate, ActionUpdate, ActionDelete} {
			if !CanAccess(claims, Permission{Resource: resource, Action: action}) {
				t.Fatalf("superuser must be allowed %s:%s", resource, action)
			}
		}
	}
}

func TestCanAccessWildcardKey(t *testing.T) {
	claims := &shared.Claims{Permissions: []string{WildcardKey}}

	if !CanAccess(claims, Permission{Resource: ResourceQuotations, Action: ActionDelete}) {
		t.Fatal("wildcard key must grant every permission")
	}
}

func TestCanAccessEmptyClaims(t *testing.T) {
	claims := &shared.Claims{}
	if CanAccess(claims, Permission{Resource: ResourceProducts, Action: ActionRead}) {
		t.Fatal("claims without roles or permissions must be denied")
	}
}

func TestHasRoleDirectMembership(t *testing.T) {
	claims := &shared.Claims{Roles: []string{"staff"}}

	if !HasRole(claims, "staff") {
		t.Fatal("direct role membership must hold")
	}
	if HasRole(claims, "auditor") {
		t.Fatal("missing role must be denied")
	}
	if HasRole(nil, "staff") {
		t.Fatal("nil claims must never hold a role")
	}
}

func TestHasRoleSuperuserSatisfiesEveryRole(t *testing.T) {
	claims := &shared.Claims{Roles: []string{SuperuserRole}}

	if !HasRole(claims, "auditor") {
		t.Fatal("superuser must satisfy any role check")
	}
}

func TestPermissionKey(t *testing.T) {
	perm := Permission{Resource: ResourceInvoices, Action: ActionUpdate}
	if perm.Key() != "invoices:update" {
		t.Fatalf("unexpected key: %s", perm.Key())
	}

	parsed, ok := ParseKey("invoices:update")
	if !ok {
		t.Fatal("expected key to parse")
	}
	if parsed != perm {
		t.Fatalf("round trip mismatch: %+v", parsed)
	}

	if _, ok := ParseKey("no-separator"); ok {
		t.Fatal("expected key without separator to be rejected")
	}
}
