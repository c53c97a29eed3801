package rbac

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/docuflow/docuflow/internal/shared"
	_ "github.com/docuflow/docuflow/testing"
)

type stubResolver struct {
	claims *shared.Claims
	err    error
}

func (s *stubResolver) ResolveCurrentUser(ctx context.Context, r *http.Request) (*shared.Claims, error) {
	return s.claims, s.err
}

func serveWithGuard(guard func(http.Handler) http.Handler) (*httptest.ResponseRecorder, *bool) {
	invoked := false
	handler := guard(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		invoked = true
		w.WriteHeader(http.StatusNoContent)
	}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	return rec, &invoked
}

func TestRequireAuthNoIdentity(t *testing.T) {
	m := Middleware{Resolver: &stubResolver{}}

	rec, invoked := serveWithGuard(m.RequireAuth)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != `{"error":"Unauthorized"}` {
		t.Fatalf("unexpected body: %s", got)
	}
	if *invoked {
		t.Fatal("handler must not run after a failed guard")
	}
}

func TestRequireAuthResolverErrorIsNot401(t *testing.T) {
	m := Middleware{Resolver: &stubResolver{err: errors.New("store down")}}

	rec, invoked := serveWithGuard(m.RequireAuth)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("resolver failures must surface as 500, got %d", rec.Code)
	}
	if *invoked {
		t.Fatal("handler must not run after a failed guard")
	}
}

func TestRequireAuthInjectsClaims(t *testing.T) {
	claims := &shared.Claims{UserID: 7, Roles: []string{"staff"}}
	m := Middleware{Resolver: &stubResolver{claims: claims}}

	var seen *shared.Claims
	handler := m.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = shared.ClaimsFromContext(r.Context())
	}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if seen == nil || seen.UserID != 7 {
		t.Fatalf("expected claims in handler context, got %+v", seen)
	}
}

func TestRequirePermissionForbidden(t *testing.T) {
	claims := &shared.Claims{UserID: 7, Permissions: []string{"customers:read"}}
	m := Middleware{Resolver: &stubResolver{claims: claims}}

	rec, invoked := serveWithGuard(m.RequirePermission(ResourceCustomers, ActionDelete))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != `{"error":"Forbidden"}` {
		t.Fatalf("unexpected body: %s", got)
	}
	if *invoked {
		t.Fatal("handler must not run after a failed guard")
	}
}

func TestRequirePermissionAllowed(t *testing.T) {
	claims := &shared.Claims{UserID: 7, Permissions: []string{"customers:delete"}}
	m := Middleware{Resolver: &stubResolver{claims: claims}}

	rec, invoked := serveWithGuard(m.RequirePermission(ResourceCustomers, ActionDelete))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected handler to run, got %d", rec.Code)
	}
	if !*invoked {
		t.Fatal("handler should have been invoked")
	}
}

func TestRequirePermissionUnauthenticatedBeatsForbidden(t *testing.T) {
	m := Middleware{Resolver: &stubResolver{}}

	rec, _ := serveWithGuard(m.RequirePermission(ResourceCustomers, ActionRead))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("missing identity must be 401 before any permission check, got %d", rec.Code)
	}
}

func TestRequireRole(t *testing.T) {
	staff := &shared.Claims{UserID: 7, Roles: []string{"staff"}}
	m := Middleware{Resolver: &stubResolver{claims: staff}}

	rec, _ := serveWithGuard(m.RequireRole("auditor"))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for missing role, got %d", rec.Code)
	}

	superuser := &shared.Claims{UserID: 1, Roles: []string{SuperuserRole}}
	m = Middleware{Resolver: &stubResolver{claims: superuser}}

	rec, _ = serveWithGuard(m.RequireRole("auditor"))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("superuser must satisfy any role guard, got %d", rec.Code)
	}
}
