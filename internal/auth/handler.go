package auth

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/docuflow/docuflow/internal/audit"
	"github.com/docuflow/docuflow/internal/observability"
	"github.com/docuflow/docuflow/internal/platform/httpx"
	"github.com/docuflow/docuflow/internal/rbac"
	"github.com/docuflow/docuflow/internal/shared"
	"github.com/docuflow/docuflow/jobs"
)

// Handler wires HTTP endpoints for authentication flows.
type Handler struct {
	logger       *slog.Logger
	service      *Service
	resolver     *Resolver
	recorder     *jobs.Recorder
	metrics      *observability.Metrics
	rbac         rbac.Middleware
	validator    *validator.Validate
	secureCookie bool
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, resolver *Resolver, recorder *jobs.Recorder, metrics *observability.Metrics, guard rbac.Middleware, secureCookie bool) *Handler {
	return &Handler{
		logger:       logger,
		service:      service,
		resolver:     resolver,
		recorder:     recorder,
		metrics:      metrics,
		rbac:         guard,
		validator:    validator.New(),
		secureCookie: secureCookie,
	}
}

// MountRoutes registers auth routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/login", h.handleLogin)
	r.Group(func(r chi.Router) {
		r.Use(h.rbac.RequireAuth)
		r.Post("/logout", h.handleLogout)
		r.Get("/me", h.handleMe)
		r.Post("/password", h.handleChangePassword)
	})
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type loginResponse struct {
	Token     string         `json:"token"`
	ExpiresAt time.Time      `json:"expires_at"`
	User      *shared.Claims `json:"user"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "Validation failed")
		return
	}

	result, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, shared.ErrInvalidCredentials) {
			h.metrics.LoginAttempt("failure")
			h.recorder.Record(r.Context(), jobs.AuthEventPayload{
				Kind:      audit.KindLoginFailed,
				Email:     req.Email,
				IP:        r.RemoteAddr,
				UserAgent: r.UserAgent(),
				At:        time.Now().UTC(),
			})
			httpx.Unauthorized(w)
			return
		}
		h.logger.Error("login", slog.Any("error", err))
		httpx.Error(w, http.StatusInternalServerError, "Internal Error")
		return
	}

	h.metrics.LoginAttempt("success")
	if err := h.service.TouchLastLogin(r.Context(), result.Claims.UserID); err != nil {
		h.logger.Warn("update last login", slog.Any("error", err))
	}
	h.recorder.Record(r.Context(), jobs.AuthEventPayload{
		UserID:    &result.Claims.UserID,
		Kind:      audit.KindLogin,
		Email:     result.Claims.Email,
		IP:        r.RemoteAddr,
		UserAgent: r.UserAgent(),
		At:        time.Now().UTC(),
	})

	http.SetCookie(w, &http.Cookie{
		Name:     h.resolver.CookieName(),
		Value:    result.Token,
		Path:     "/",
		Expires:  result.ExpiresAt,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteStrictMode,
	})
	httpx.JSON(w, http.StatusOK, loginResponse{
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
		User:      result.Claims,
	})
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	claims := shared.ClaimsFromContext(r.Context())
	if claims != nil {
		h.recorder.Record(r.Context(), jobs.AuthEventPayload{
			UserID:    &claims.UserID,
			Kind:      audit.KindLogout,
			Email:     claims.Email,
			IP:        r.RemoteAddr,
			UserAgent: r.UserAgent(),
			At:        time.Now().UTC(),
		})
	}
	http.SetCookie(w, &http.Cookie{
		Name:     h.resolver.CookieName(),
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteStrictMode,
	})
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleMe returns the identity plus a fresh authorization snapshot from the
// store, unlike the guard path which trusts the token's embedded lists.
func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	claims := shared.ClaimsFromContext(r.Context())
	profile, lastLogin, err := h.service.Profile(r.Context(), claims.UserID)
	if err != nil {
		h.logger.Error("load profile", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"user":          profile,
		"last_login_at": lastLogin,
	})
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

func (h *Handler) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	var req changePasswordRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "Validation failed")
		return
	}
	claims := shared.ClaimsFromContext(r.Context())
	if err := h.service.ChangePassword(r.Context(), claims.UserID, req.CurrentPassword, req.NewPassword); err != nil {
		if errors.Is(err, shared.ErrInvalidCredentials) {
			httpx.Error(w, http.StatusBadRequest, "Current password is incorrect")
			return
		}
		h.logger.Error("change password", slog.Any("error", err))
		httpx.Error(w, http.StatusInternalServerError, "Internal Error")
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
