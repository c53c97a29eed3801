package httpx

import (
	"errors"
	"net/http"

	"github.com/docuflow/docuflow/internal/shared"
)

// RespondError maps domain sentinels to HTTP responses. Anything unmapped is
// an internal failure and deliberately carries no detail in the body.
func RespondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, shared.ErrNotFound):
		Error(w, http.StatusNotFound, "Not Found")
	case errors.Is(err, shared.ErrDuplicate):
		Error(w, http.StatusConflict, "Duplicate")
	case errors.Is(err, shared.ErrSystemRole):
		Error(w, http.StatusConflict, "System role is protected")
	case errors.Is(err, shared.ErrRoleInUse):
		Error(w, http.StatusConflict, "Role is still assigned")
	case errors.Is(err, shared.ErrInUse):
		Error(w, http.StatusConflict, "Record is referenced")
	case errors.Is(err, shared.ErrInvalidTransition):
		Error(w, http.StatusConflict, "Invalid status transition")
	case errors.Is(err, shared.ErrInvalidCredentials):
		Unauthorized(w)
	default:
		Error(w, http.StatusInternalServerError, "Internal Error")
	}
}
