package roles

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docuflow/docuflow/internal/rbac"
	"github.com/docuflow/docuflow/internal/shared"
)

type mockRepo struct {
	roles       map[int64]Role
	assignments map[int64]int
	nextID      int64
	deleted     []int64
}

func newMockRepo() *mockRepo {
	return &mockRepo{roles: make(map[int64]Role), assignments: make(map[int64]int), nextID: 1}
}

func (m *mockRepo) add(role Role) Role {
	role.ID = m.nextID
	m.nextID++
	m.roles[role.ID] = role
	return role
}

func (m *mockRepo) List(ctx context.Context) ([]Role, error) {
	out := make([]Role, 0, len(m.roles))
	for _, r := range m.roles {
		out = append(out, r)
	}
	return out, nil
}

func (m *mockRepo) Get(ctx context.Context, id int64) (Role, error) {
	r, ok := m.roles[id]
	if !ok {
		return Role{}, shared.ErrNotFound
	}
	return r, nil
}

func (m *mockRepo) Create(ctx context.Context, name, description string) (Role, error) {
	return m.add(Role{Name: name, Description: description}), nil
}

func (m *mockRepo) Update(ctx context.Context, id int64, name, description *string) (Role, error) {
	r := m.roles[id]
	if name != nil {
		r.Name = *name
	}
	if description != nil {
		r.Description = *description
	}
	m.roles[id] = r
	return r, nil
}

func (m *mockRepo) Delete(ctx context.Context, id int64) error {
	delete(m.roles, id)
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *mockRepo) AssignmentCount(ctx context.Context, id int64) (int, error) {
	return m.assignments[id], nil
}

type mockGrants struct {
	grants map[int64][]int64
}

func newMockGrants() *mockGrants {
	return &mockGrants{grants: make(map[int64][]int64)}
}

func (m *mockGrants) RolePermissions(ctx context.Context, roleID int64) ([]rbac.PermissionRecord, error) {
	out := make([]rbac.PermissionRecord, 0, len(m.grants[roleID]))
	for _, id := range m.grants[roleID] {
		out = append(out, rbac.PermissionRecord{ID: id})
	}
	return out, nil
}

func (m *mockGrants) SetRolePermissions(ctx context.Context, roleID int64, permissionIDs []int64) error {
	m.grants[roleID] = permissionIDs
	return nil
}

func TestUpdateSystemRoleRejected(t *testing.T) {
	repo := newMockRepo()
	admin := repo.add(Role{Name: "admin", IsSystem: true})
	svc := NewService(repo, newMockGrants())

	name := "renamed"
	_, err := svc.Update(context.Background(), admin.ID, UpdateRoleRequest{Name: &name})
	assert.ErrorIs(t, err, shared.ErrSystemRole)
}

func TestUpdateUserRole(t *testing.T) {
	repo := newMockRepo()
	custom := repo.add(Role{Name: "auditor"})
	svc := NewService(repo, newMockGrants())

	name := "internal-auditor"
	updated, err := svc.Update(context.Background(), custom.ID, UpdateRoleRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "internal-auditor", updated.Name)
}

func TestDeleteSystemRoleRejected(t *testing.T) {
	repo := newMockRepo()
	admin := repo.add(Role{Name: "admin", IsSystem: true})
	svc := NewService(repo, newMockGrants())

	err := svc.Delete(context.Background(), admin.ID)
	assert.ErrorIs(t, err, shared.ErrSystemRole)
	assert.Empty(t, repo.deleted)
}

func TestDeleteAssignedRoleRejected(t *testing.T) {
	repo := newMockRepo()
	custom := repo.add(Role{Name: "auditor"})
	repo.assignments[custom.ID] = 3
	svc := NewService(repo, newMockGrants())

	err := svc.Delete(context.Background(), custom.ID)
	assert.ErrorIs(t, err, shared.ErrRoleInUse)
	assert.Empty(t, repo.deleted)
}

func TestDeleteUnassignedUserRole(t *testing.T) {
	repo := newMockRepo()
	custom := repo.add(Role{Name: "auditor"})
	svc := NewService(repo, newMockGrants())

	err := svc.Delete(context.Background(), custom.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{custom.ID}, repo.deleted)
}

func TestSetPermissionsSystemRoleRejected(t *testing.T) {
	repo := newMockRepo()
	admin := repo.add(Role{Name: "admin", IsSystem: true})
	grants := newMockGrants()
	svc := NewService(repo, grants)

	err := svc.SetPermissions(context.Background(), admin.ID, []int64{1, 2})
	assert.ErrorIs(t, err, shared.ErrSystemRole)
	assert.Empty(t, grants.grants)
}

func TestSetPermissionsReplacesGrants(t *testing.T) {
	repo := newMockRepo()
	custom := repo.add(Role{Name: "auditor"})
	grants := newMockGrants()
	svc := NewService(repo, grants)

	require.NoError(t, svc.SetPermissions(context.Background(), custom.ID, []int64{1, 2}))
	assert.Equal(t, []int64{1, 2}, grants.grants[custom.ID])

	require.NoError(t, svc.SetPermissions(context.Background(), custom.ID, []int64{3}))
	assert.Equal(t, []int64{3}, grants.grants[custom.ID])
}

func TestDeleteUnknownRole(t *testing.T) {
	svc := NewService(newMockRepo(), newMockGrants())
	err := svc.Delete(context.Background(), 99)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
