package audit

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/docuflow/docuflow/internal/platform/httpx"
	"github.com/docuflow/docuflow/internal/rbac"
	"github.com/docuflow/docuflow/internal/shared"
)

// Handler exposes the audit trail to administrators.
type Handler struct {
	logger *slog.Logger
	repo   *Repository
	rbac   rbac.Middleware
}

// NewHandler builds a Handler instance.
func NewHandler(logger *slog.Logger, repo *Repository, rbac rbac.Middleware) *Handler {
	return &Handler{logger: logger, repo: repo, rbac: rbac}
}

// MountRoutes registers audit routes. The trail is superuser-only; there is
// no granular permission for it.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.rbac.RequireRole(rbac.SuperuserRole))
		r.Get("/", h.listEvents)
	})
}

func (h *Handler) listEvents(w http.ResponseWriter, r *http.Request) {
	page, perPage := shared.PageParams(r)
	events, err := h.repo.List(r.Context(), perPage, shared.Offset(page, perPage))
	if err != nil {
		h.logger.Error("list audit events", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if events == nil {
		events = []Event{}
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"events": events})
}
