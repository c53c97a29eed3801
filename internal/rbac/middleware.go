package rbac

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/docuflow/docuflow/internal/observability"
	"github.com/docuflow/docuflow/internal/platform/httpx"
	"github.com/docuflow/docuflow/internal/shared"
)

// UserResolver resolves the current user's claims from a request. Absence of
// an authenticated user is (nil, nil); errors are reserved for store or codec
// failures.
type UserResolver interface {
	ResolveCurrentUser(ctx context.Context, r *http.Request) (*shared.Claims, error)
}

// Middleware wires the authorization guards for HTTP handlers. Every guard
// short-circuits before the wrapped handler runs; a failed transition is
// terminal for the request.
type Middleware struct {
	Resolver UserResolver
	Logger   *slog.Logger
	Metrics  *observability.Metrics
}

// RequireAuth resolves the current user and injects the claims into the
// request context. Missing, invalid, or revoked credentials yield 401;
// resolver failures yield 500 and are never reported as 401.
func (m Middleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := m.Resolver.ResolveCurrentUser(r.Context(), r)
		if err != nil {
			if m.Logger != nil {
				m.Logger.Error("resolve current user", slog.Any("error", err))
			}
			httpx.Error(w, http.StatusInternalServerError, "Internal Error")
			return
		}
		if claims == nil {
			m.Metrics.AuthzDenial("unauthenticated")
			httpx.Unauthorized(w)
			return
		}
		ctx := shared.ContextWithClaims(r.Context(), claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequirePermission composes RequireAuth with a permission check on the given
// (resource, action) pair.
func (m Middleware) RequirePermission(resource Resource, action Action) func(http.Handler) http.Handler {
	perm := Permission{Resource: resource, Action: action}
	return func(next http.Handler) http.Handler {
		return m.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := shared.ClaimsFromContext(r.Context())
			if !CanAccess(claims, perm) {
				m.Metrics.AuthzDenial("forbidden")
				httpx.Forbidden(w)
				return
			}
			next.ServeHTTP(w, r)
		}))
	}
}

// RequireRole composes RequireAuth with a role membership check.
func (m Middleware) RequireRole(name string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return m.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := shared.ClaimsFromContext(r.Context())
			if !HasRole(claims, name) {
				m.Metrics.AuthzDenial("forbidden")
				httpx.Forbidden(w)
				return
			}
			next.ServeHTTP(w, r)
		}))
	}
}
