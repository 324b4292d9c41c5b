package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"gigmate/marketplace-service/internal/application"
	"gigmate/marketplace-service/internal/otp"
	"gigmate/marketplace-service/internal/store"
)

type errorEnvelope struct {
	Error apiError `json:"error"`
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorEnvelope{Error: apiError{Code: code, Message: message}})
}

// respondError maps service-layer failures onto the wire contract. Lifecycle
// refusals are 422, a bad handoff code is 403, and a lost write race is 409.
func respondError(w http.ResponseWriter, err error) {
	var vErr *application.ValidationError
	switch {
	case errors.As(err, &vErr):
		writeError(w, http.StatusUnprocessableEntity, "INVALID_STATUS_CHANGE", vErr.Msg)
	case errors.Is(err, otp.ErrCodeInvalid):
		writeError(w, http.StatusForbidden, "CODE_INVALID", "invalid or expired code")
	case errors.Is(err, application.ErrForbidden):
		writeError(w, http.StatusForbidden, "FORBIDDEN", "you are not a party to this resource")
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "NOT_FOUND", "not found")
	case errors.Is(err, store.ErrDuplicate):
		writeError(w, http.StatusConflict, "DUPLICATE", "already exists")
	case errors.Is(err, store.ErrConflict):
		writeError(w, http.StatusConflict, "CONFLICT", "the application changed underneath you, reload and retry")
	default:
		slog.Error("request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
	}
}

// respondChange renders a ChangeResult: applied changes return the updated
// application, queued changes return 202 with the review request.
func respondChange(w http.ResponseWriter, res application.ChangeResult) {
	if res.Applied {
		writeJSON(w, http.StatusOK, map[string]any{
			"outcome":     res.Decision.Outcome,
			"application": res.Application,
		})
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]any{
		"outcome":  res.Decision.Outcome,
		"reason":   res.Decision.Reason,
		"approval": res.Approval,
	})
}
