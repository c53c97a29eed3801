package rbac

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlattenClaimsUnionsOverlappingGrants(t *testing.T) {
	// Two roles sharing invoices:read; the grant appears once in the union.
	roleNames := []string{"sales", "billing"}
	grants := []Permission{
		{Resource: ResourceInvoices, Action: ActionRead},
		{Resource: ResourceInvoices, Action: ActionUpdate},
		{Resource: ResourceInvoices, Action: ActionRead},
		{Resource: ResourceCustomers, Action: ActionRead},
	}

	roles, permissions := flattenClaims(roleNames, grants)

	assert.Equal(t, []string{"sales", "billing"}, roles)
	assert.Equal(t, []string{"invoices:read", "invoices:update", "customers:read"}, permissions)
}

func TestFlattenClaimsDeduplicatesRoles(t *testing.T) {
	roles, permissions := flattenClaims([]string{"staff", "staff", "admin"}, nil)

	assert.Equal(t, []string{"staff", "admin"}, roles)
	assert.Empty(t, permissions)
}

func TestFlattenClaimsEmptyAssignments(t *testing.T) {
	roles, permissions := flattenClaims(nil, nil)

	assert.NotNil(t, roles)
	assert.NotNil(t, permissions)
	assert.Empty(t, roles)
	assert.Empty(t, permissions)
}
