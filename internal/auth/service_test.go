package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docuflow/docuflow/internal/shared"
)

type stubClaimsResolver struct {
	roles       []string
	permissions []string
	err         error
}

func (s *stubClaimsResolver) EffectiveClaims(ctx context.Context, userID int64) ([]string, []string, error) {
	return s.roles, s.permissions, s.err
}

func newTestService(t *testing.T, repo Repository, claims ClaimsResolver) *Service {
	t.Helper()
	return NewService(repo, NewHasher(), NewTokenCodec("test-secret", time.Hour), claims)
}

func activeAccount(t *testing.T, password string) *Account {
	t.Helper()
	hash, err := NewHasher().Hash(password)
	require.NoError(t, err)
	return &Account{
		ID:           42,
		Email:        "sam@example.com",
		Username:     "sam",
		PasswordHash: hash,
		IsActive:     true,
	}
}

func TestLoginSuccess(t *testing.T) {
	repo := &stubRepo{account: activeAccount(t, "hunter2hunter2")}
	claims := &stubClaimsResolver{roles: []string{"staff"}, permissions: []string{"invoices:read"}}
	svc := newTestService(t, repo, claims)

	result, err := svc.Login(context.Background(), "sam@example.com", "hunter2hunter2")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, int64(42), result.Claims.UserID)
	assert.Equal(t, []string{"staff"}, result.Claims.Roles)
	assert.Equal(t, []string{"invoices:read"}, result.Claims.Permissions)
	assert.WithinDuration(t, time.Now().Add(time.Hour), result.ExpiresAt, time.Minute)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := newTestService(t, &stubRepo{}, &stubClaimsResolver{})

	_, err := svc.Login(context.Background(), "nobody@example.com", "hunter2hunter2")
	assert.ErrorIs(t, err, shared.ErrInvalidCredentials)
}

func TestLoginWrongPassword(t *testing.T) {
	repo := &stubRepo{account: activeAccount(t, "hunter2hunter2")}
	svc := newTestService(t, repo, &stubClaimsResolver{})

	_, err := svc.Login(context.Background(), "sam@example.com", "wrong-password")
	assert.ErrorIs(t, err, shared.ErrInvalidCredentials)
}

func TestLoginInactiveAccount(t *testing.T) {
	account := activeAccount(t, "hunter2hunter2")
	account.IsActive = false
	svc := newTestService(t, &stubRepo{account: account}, &stubClaimsResolver{})

	_, err := svc.Login(context.Background(), "sam@example.com", "hunter2hunter2")
	assert.ErrorIs(t, err, shared.ErrInvalidCredentials)
}

func TestLoginStoreFailureIsNotCredentialFailure(t *testing.T) {
	storeErr := errors.New("connection refused")
	svc := newTestService(t, &stubRepo{findErr: storeErr}, &stubClaimsResolver{})

	_, err := svc.Login(context.Background(), "sam@example.com", "hunter2hunter2")
	assert.ErrorIs(t, err, storeErr)
	assert.NotErrorIs(t, err, shared.ErrInvalidCredentials)
}

func TestLoginClaimsResolverFailure(t *testing.T) {
	repo := &stubRepo{account: activeAccount(t, "hunter2hunter2")}
	claimsErr := errors.New("query failed")
	svc := newTestService(t, repo, &stubClaimsResolver{err: claimsErr})

	_, err := svc.Login(context.Background(), "sam@example.com", "hunter2hunter2")
	assert.ErrorIs(t, err, claimsErr)
}

func TestChangePasswordVerifiesCurrent(t *testing.T) {
	repo := &stubRepo{account: activeAccount(t, "hunter2hunter2")}
	svc := newTestService(t, repo, &stubClaimsResolver{})

	err := svc.ChangePassword(context.Background(), 42, "wrong-password", "next-password-1")
	assert.ErrorIs(t, err, shared.ErrInvalidCredentials)

	err = svc.ChangePassword(context.Background(), 42, "hunter2hunter2", "next-password-1")
	assert.NoError(t, err)
}
