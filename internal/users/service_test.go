package users

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/docuflow/docuflow/internal/auth"
	"github.com/docuflow/docuflow/internal/rbac"
	"github.com/docuflow/docuflow/internal/shared"
)

type mockRepo struct {
	users       map[int64]User
	hashes      map[int64]string
	nextID      int64
	deactivated []int64
}

func newMockRepo() *mockRepo {
	return &mockRepo{users: make(map[int64]User), hashes: make(map[int64]string), nextID: 1}
}

func (m *mockRepo) List(ctx context.Context, limit, offset int) ([]User, int, error) {
	out := make([]User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, u)
	}
	return out, len(out), nil
}

func (m *mockRepo) Get(ctx context.Context, id int64) (User, error) {
	u, ok := m.users[id]
	if !ok {
		return User{}, shared.ErrNotFound
	}
	return u, nil
}

func (m *mockRepo) Create(ctx context.Context, req CreateUserRequest, passwordHash string) (User, error) {
	u := User{
		ID:        m.nextID,
		Email:     req.Email,
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		IsActive:  true,
	}
	m.nextID++
	m.users[u.ID] = u
	m.hashes[u.ID] = passwordHash
	return u, nil
}

func (m *mockRepo) Update(ctx context.Context, id int64, req UpdateUserRequest) (User, error) {
	u, ok := m.users[id]
	if !ok {
		return User{}, shared.ErrNotFound
	}
	if req.Username != nil {
		u.Username = *req.Username
	}
	if req.IsActive != nil {
		u.IsActive = *req.IsActive
	}
	m.users[id] = u
	return u, nil
}

func (m *mockRepo) Deactivate(ctx context.Context, id int64) error {
	m.deactivated = append(m.deactivated, id)
	return nil
}

type mockAssigner struct {
	assigned map[int64][]int64
}

func newMockAssigner() *mockAssigner {
	return &mockAssigner{assigned: make(map[int64][]int64)}
}

func (m *mockAssigner) AssignRole(ctx context.Context, userID, roleID int64) error {
	m.assigned[userID] = append(m.assigned[userID], roleID)
	return nil
}

func (m *mockAssigner) RemoveRole(ctx context.Context, userID, roleID int64) error {
	kept := m.assigned[userID][:0]
	for _, id := range m.assigned[userID] {
		if id != roleID {
			kept = append(kept, id)
		}
	}
	m.assigned[userID] = kept
	return nil
}

func (m *mockAssigner) UserRoles(ctx context.Context, userID int64) ([]rbac.Role, error) {
	out := make([]rbac.Role, 0, len(m.assigned[userID]))
	for _, id := range m.assigned[userID] {
		out = append(out, rbac.Role{ID: id})
	}
	return out, nil
}

func TestCreateHashesPassword(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, auth.NewHasher(), newMockAssigner())

	user, err := svc.Create(context.Background(), CreateUserRequest{
		Email:     "new@example.com",
		Username:  "newbie",
		FirstName: "New",
		LastName:  "Person",
		Password:  "plain-password",
	})
	require.NoError(t, err)

	hash := repo.hashes[user.ID]
	assert.NotEqual(t, "plain-password", hash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("plain-password")))
}

func TestCreateAssignsInitialRoles(t *testing.T) {
	repo := newMockRepo()
	assigner := newMockAssigner()
	svc := NewService(repo, auth.NewHasher(), assigner)

	user, err := svc.Create(context.Background(), CreateUserRequest{
		Email:     "new@example.com",
		Username:  "newbie",
		FirstName: "New",
		LastName:  "Person",
		Password:  "plain-password",
		RoleIDs:   []int64{2, 5},
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 5}, assigner.assigned[user.ID])
}

func TestSetRolesDiffsAssignments(t *testing.T) {
	repo := newMockRepo()
	assigner := newMockAssigner()
	svc := NewService(repo, auth.NewHasher(), assigner)

	assigner.assigned[7] = []int64{1, 2}

	require.NoError(t, svc.SetRoles(context.Background(), 7, []int64{2, 3}))

	got := append([]int64(nil), assigner.assigned[7]...)
	sort.Slice(got, func(i, j int) bool { return got[i] < got[j] })
	assert.Equal(t, []int64{2, 3}, got)
}

func TestDeactivateDelegates(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, auth.NewHasher(), newMockAssigner())

	require.NoError(t, svc.Deactivate(context.Background(), 9))
	assert.Equal(t, []int64{9}, repo.deactivated)
}
