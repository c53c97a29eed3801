package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/docuflow/docuflow/internal/observability"
	"github.com/docuflow/docuflow/internal/shared"
)

// DefaultCookieName is the cookie consulted when no Authorization header is
// present.
const DefaultCookieName = "docuflow_token"

// ExtractCredential pulls a bearer token from the request: the Authorization
// header wins over the named cookie; absence of both is an empty string, not
// an error.
func ExtractCredential(r *http.Request, cookieName string) string {
	if header := r.Header.Get("Authorization"); header != "" {
		if token, ok := strings.CutPrefix(header, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
	}
	if cookie, err := r.Cookie(cookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	return ""
}

// Resolver turns an incoming request into authenticated claims. It verifies
// the bearer credential and re-checks that the underlying account is still
// active, so deactivation revokes access before the token expires.
type Resolver struct {
	codec      *TokenCodec
	repo       Repository
	cookieName string
	metrics    *observability.Metrics
}

// NewResolver constructs a Resolver. An empty cookieName falls back to
// DefaultCookieName.
func NewResolver(codec *TokenCodec, repo Repository, cookieName string, metrics *observability.Metrics) *Resolver {
	if cookieName == "" {
		cookieName = DefaultCookieName
	}
	return &Resolver{codec: codec, repo: repo, cookieName: cookieName, metrics: metrics}
}

// CookieName returns the cookie consulted for credentials.
func (rs *Resolver) CookieName() string {
	return rs.cookieName
}

// ResolveCurrentUser resolves the request to claims, or (nil, nil) when no
// authenticated user is present. The embedded role and permission lists are
// returned verbatim from the token; only account existence and active status
// are re-checked against the store. Errors are reserved for store failures.
func (rs *Resolver) ResolveCurrentUser(ctx context.Context, r *http.Request) (*shared.Claims, error) {
	token := ExtractCredential(r, rs.cookieName)
	if token == "" {
		return nil, nil
	}

	claims, err := rs.codec.Verify(token)
	if err != nil {
		switch {
		case errors.Is(err, ErrTokenExpired):
			rs.metrics.TokenFailure("expired")
		default:
			rs.metrics.TokenFailure("invalid")
		}
		return nil, nil
	}

	if _, err := rs.repo.FindByID(ctx, claims.UserID, true); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return claims, nil
}
