package auth

import (
	"context"
	"errors"
	"time"

	"github.com/docuflow/docuflow/internal/shared"
)

// ClaimsResolver computes the flattened authorization snapshot for an
// account. Satisfied by the rbac service.
type ClaimsResolver interface {
	EffectiveClaims(ctx context.Context, userID int64) (roles []string, permissions []string, err error)
}

// Service wraps authentication business rules.
type Service struct {
	repo   Repository
	hasher Hasher
	codec  *TokenCodec
	claims ClaimsResolver
}

// NewService constructs a new Service.
func NewService(repo Repository, hasher Hasher, codec *TokenCodec, claims ClaimsResolver) *Service {
	return &Service{repo: repo, hasher: hasher, codec: codec, claims: claims}
}

// LoginResult carries the issued credential and its decoded claims.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	Claims    *shared.Claims
}

// Login validates email/password credentials, flattens the account's current
// roles and permissions into claims, and issues a signed bearer credential.
// All credential failures collapse to ErrInvalidCredentials; hashing or store
// failures propagate as-is.
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	account, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrInvalidCredentials
		}
		return nil, err
	}
	if !account.IsActive {
		return nil, shared.ErrInvalidCredentials
	}
	ok, err := s.hasher.Verify(password, account.PasswordHash)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, shared.ErrInvalidCredentials
	}

	roles, permissions, err := s.claims.EffectiveClaims(ctx, account.ID)
	if err != nil {
		return nil, err
	}
	claims := &shared.Claims{
		UserID:      account.ID,
		Email:       account.Email,
		Username:    account.Username,
		FirstName:   account.FirstName,
		LastName:    account.LastName,
		Roles:       roles,
		Permissions: permissions,
	}
	token, expiresAt, err := s.codec.Issue(claims)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, ExpiresAt: expiresAt, Claims: claims}, nil
}

// TouchLastLogin records a successful authentication timestamp.
func (s *Service) TouchLastLogin(ctx context.Context, userID int64) error {
	return s.repo.UpdateLastLogin(ctx, userID, time.Now().UTC())
}

// Profile returns the account identity together with a fresh authorization
// snapshot recomputed from the store, unlike the per-request path which
// trusts the token's embedded lists.
func (s *Service) Profile(ctx context.Context, userID int64) (*shared.Claims, *time.Time, error) {
	account, err := s.repo.FindByID(ctx, userID, false)
	if err != nil {
		return nil, nil, err
	}
	roles, permissions, err := s.claims.EffectiveClaims(ctx, account.ID)
	if err != nil {
		return nil, nil, err
	}
	return &shared.Claims{
		UserID:      account.ID,
		Email:       account.Email,
		Username:    account.Username,
		FirstName:   account.FirstName,
		LastName:    account.LastName,
		Roles:       roles,
		Permissions: permissions,
	}, account.LastLoginAt, nil
}

// ChangePassword verifies the current password before storing a new hash.
func (s *Service) ChangePassword(ctx context.Context, userID int64, current, next string) error {
	account, err := s.repo.FindByID(ctx, userID, true)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.ErrInvalidCredentials
		}
		return err
	}
	ok, err := s.hasher.Verify(current, account.PasswordHash)
	if err != nil {
		return err
	}
	if !ok {
		return shared.ErrInvalidCredentials
	}
	hash, err := s.hasher.Hash(next)
	if err != nil {
		return err
	}
	return s.repo.UpdatePassword(ctx, userID, hash)
}
