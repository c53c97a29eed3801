package jobs

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/docuflow/docuflow/internal/rbac"
	"github.com/docuflow/docuflow/internal/shared"
)

type stubResolver struct {
	claims *shared.Claims
}

func (s stubResolver) ResolveCurrentUser(ctx context.Context, r *http.Request) (*shared.Claims, error) {
	return s.claims, nil
}

func serveJobsHealth(t *testing.T, claims *shared.Claims) *httptest.ResponseRecorder {
	t.Helper()
	handler := NewHandler(nil, nil, rbac.Middleware{Resolver: stubResolver{claims: claims}})
	r := chi.NewRouter()
	r.Route("/jobs", handler.MountRoutes)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("GET", "/jobs/health", nil))
	return rec
}

func TestJobsHealthRequiresSuperuser(t *testing.T) {
	rec := serveJobsHealth(t, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous: status = %d, want 401", rec.Code)
	}

	rec = serveJobsHealth(t, &shared.Claims{UserID: 7, Roles: []string{"staff"}})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("staff: status = %d, want 403", rec.Code)
	}
}

func TestJobsHealthSuperuser(t *testing.T) {
	rec := serveJobsHealth(t, &shared.Claims{UserID: 1, Roles: []string{rbac.SuperuserRole}})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if body := strings.TrimSpace(rec.Body.String()); body != `{"queue":"default","pending":0}` {
		t.Fatalf("body = %s", body)
	}
}
