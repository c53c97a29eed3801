package auth

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/docuflow/docuflow/internal/rbac"
	_ "github.com/docuflow/docuflow/testing"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newAuthRouter(t *testing.T, repo Repository) (chi.Router, *TokenCodec) {
	t.Helper()
	codec := NewTokenCodec("test-secret", time.Hour)
	resolver := NewResolver(codec, repo, "", nil)
	service := NewService(repo, NewHasher(), codec, &stubClaimsResolver{roles: []string{"staff"}})
	guard := rbac.Middleware{Resolver: resolver}
	handler := NewHandler(discardLogger(), service, resolver, nil, nil, guard, false)

	r := chi.NewRouter()
	r.Route("/auth", handler.MountRoutes)
	return r, codec
}

func TestHandleLoginSuccess(t *testing.T) {
	router, _ := newAuthRouter(t, &stubRepo{account: activeAccount(t, "hunter2hunter2")})

	body := `{"email":"sam@example.com","password":"hunter2hunter2"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Token string `json:"token"`
		User  struct {
			ID int64 `json:"id"`
		} `json:"user"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("expected a token in the response")
	}
	if resp.User.ID != 42 {
		t.Fatalf("expected user 42, got %d", resp.User.ID)
	}

	var cookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == DefaultCookieName {
			cookie = c
		}
	}
	if cookie == nil {
		t.Fatal("expected auth cookie to be set")
	}
	if !cookie.HttpOnly {
		t.Fatal("auth cookie must be HttpOnly")
	}
	if cookie.Value != resp.Token {
		t.Fatal("cookie must carry the issued token")
	}
}

func TestHandleLoginBadCredentials(t *testing.T) {
	router, _ := newAuthRouter(t, &stubRepo{account: activeAccount(t, "hunter2hunter2")})

	body := `{"email":"sam@example.com","password":"wrong-password"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != `{"error":"Unauthorized"}` {
		t.Fatalf("unexpected body: %s", got)
	}
}

func TestHandleLoginRejectsMalformedBody(t *testing.T) {
	router, _ := newAuthRouter(t, &stubRepo{})

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestHandleMeRequiresAuth(t *testing.T) {
	router, _ := newAuthRouter(t, &stubRepo{account: activeAccount(t, "hunter2hunter2")})

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestHandleMeWithBearerToken(t *testing.T) {
	router, codec := newAuthRouter(t, &stubRepo{account: activeAccount(t, "hunter2hunter2")})

	token, _, err := codec.Issue(testClaims())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		User struct {
			ID    int64    `json:"id"`
			Roles []string `json:"roles"`
		} `json:"user"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.User.ID != 42 {
		t.Fatalf("expected user 42, got %d", resp.User.ID)
	}
	// /me recomputes the snapshot from the store, not the token.
	if len(resp.User.Roles) != 1 || resp.User.Roles[0] != "staff" {
		t.Fatalf("expected fresh staff role, got %v", resp.User.Roles)
	}
}

func TestHandleChangePasswordWrongCurrent(t *testing.T) {
	router, codec := newAuthRouter(t, &stubRepo{account: activeAccount(t, "hunter2hunter2")})

	token, _, err := codec.Issue(testClaims())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	body := `{"current_password":"wrong-password","new_password":"next-password-1"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/password", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestHandleLogoutClearsCookie(t *testing.T) {
	router, codec := newAuthRouter(t, &stubRepo{account: activeAccount(t, "hunter2hunter2")})

	token, _, err := codec.Issue(testClaims())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var cleared bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == DefaultCookieName && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Fatal("expected the auth cookie to be cleared")
	}
}
