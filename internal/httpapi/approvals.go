package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"gigmate/marketplace-service/internal/application"
)

type approvalHandlers struct {
	svc *application.Service
}

func (h *approvalHandlers) List(w http.ResponseWriter, r *http.Request) {
	queue, err := h.svc.PendingApprovals(r.Context(), actorFrom(r))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": queue})
}

func (h *approvalHandlers) Approve(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, true)
}

func (h *approvalHandlers) Deny(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, false)
}

func (h *approvalHandlers) decide(w http.ResponseWriter, r *http.Request, approve bool) {
	// The note is optional and so is the body itself.
	var req struct {
		Note string `json:"note"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid json")
		return
	}
	res, err := h.svc.DecideApproval(r.Context(), actorFrom(r), chi.URLParam(r, "id"), approve, req.Note)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"approval":    res.Approval,
		"application": res.Application,
	})
}
