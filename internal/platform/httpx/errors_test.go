package httpx

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/docuflow/docuflow/internal/shared"
)

func TestRespondErrorMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
		body   string
	}{
		{shared.ErrNotFound, http.StatusNotFound, `{"error":"Not Found"}`},
		{shared.ErrDuplicate, http.StatusConflict, `{"error":"Duplicate"}`},
		{shared.ErrSystemRole, http.StatusConflict, `{"error":"System role is protected"}`},
		{shared.ErrRoleInUse, http.StatusConflict, `{"error":"Role is still assigned"}`},
		{shared.ErrInUse, http.StatusConflict, `{"error":"Record is referenced"}`},
		{shared.ErrInvalidTransition, http.StatusConflict, `{"error":"Invalid status transition"}`},
		{shared.ErrInvalidCredentials, http.StatusUnauthorized, `{"error":"Unauthorized"}`},
		{errors.New("pool closed"), http.StatusInternalServerError, `{"error":"Internal Error"}`},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		RespondError(rec, tc.err)
		if rec.Code != tc.status {
			t.Errorf("%v: status = %d, want %d", tc.err, rec.Code, tc.status)
		}
		if got := strings.TrimSpace(rec.Body.String()); got != tc.body {
			t.Errorf("%v: body = %s, want %s", tc.err, got, tc.body)
		}
	}
}

func TestRespondErrorUnwrapsSentinels(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondError(rec, fmt.Errorf("create user: %w", shared.ErrDuplicate))
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
}
