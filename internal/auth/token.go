package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/docuflow/docuflow/internal/shared"
)

// DefaultTokenTTL is the canonical bearer credential lifetime. It is also the
// staleness bound for the embedded role and permission lists.
const DefaultTokenTTL = 24 * time.Hour

const tokenIssuer = "docuflow"

var (
	// ErrTokenExpired indicates a well-formed token past its expiry.
	ErrTokenExpired = errors.New("auth: token expired")
	// ErrTokenInvalid indicates a malformed, unsigned, or tampered token.
	ErrTokenInvalid = errors.New("auth: token invalid")
)

type tokenClaims struct {
	UserID      int64    `json:"id"`
	Email       string   `json:"email"`
	Username    string   `json:"username"`
	FirstName   string   `json:"first_name"`
	LastName    string   `json:"last_name"`
	Roles       []string `json:"roles"`
	Permissions []string `json:"permissions"`
	jwt.RegisteredClaims
}

// TokenCodec signs and verifies bearer credentials. The secret is injected at
// construction so the codec never reads ambient global state.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenCodec constructs a codec for the given server secret and lifetime.
// A non-positive ttl falls back to DefaultTokenTTL.
func NewTokenCodec(secret string, ttl time.Duration) *TokenCodec {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenCodec{secret: []byte(secret), ttl: ttl}
}

// TTL exposes the configured credential lifetime.
func (c *TokenCodec) TTL() time.Duration {
	return c.ttl
}

// Issue serializes the claims into a signed HS256 token with an absolute
// expiry. The role and permission lists embedded here are frozen until the
// token is reissued.
func (c *TokenCodec) Issue(claims *shared.Claims) (token string, expiresAt time.Time, err error) {
	now := time.Now()
	expiresAt = now.Add(c.ttl)
	payload := tokenClaims{
		UserID:      claims.UserID,
		Email:       claims.Email,
		Username:    claims.Username,
		FirstName:   claims.FirstName,
		LastName:    claims.LastName,
		Roles:       claims.Roles,
		Permissions: claims.Permissions,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, payload).SignedString(c.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Verify checks signature integrity and expiry. Expired and malformed tokens
// fail with distinct sentinels; callers collapse both to "no identity" but
// the distinction feeds logs and metrics.
func (c *TokenCodec) Verify(tokenString string) (*shared.Claims, error) {
	payload := &tokenClaims{}
	parsed, err := jwt.ParseWithClaims(tokenString, payload, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return c.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if !parsed.Valid {
		return nil, ErrTokenInvalid
	}
	return &shared.Claims{
		UserID:      payload.UserID,
		Email:       payload.Email,
		Username:    payload.Username,
		FirstName:   payload.FirstName,
		LastName:    payload.LastName,
		Roles:       payload.Roles,
		Permissions: payload.Permissions,
	}, nil
}
