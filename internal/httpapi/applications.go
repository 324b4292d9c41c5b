package httpapi

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"gigmate/marketplace-service/internal/application"
	"gigmate/marketplace-service/internal/status"
	"gigmate/marketplace-service/internal/store"
)

type applicationHandlers struct {
	svc *application.Service
}

// ── Applying and listings ──────────────────────────────────────────────────

func (h *applicationHandlers) Apply(w http.ResponseWriter, r *http.Request) {
	app, err := h.svc.Apply(r.Context(), actorFrom(r), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, app)
}

func (h *applicationHandlers) ListForJob(w http.ResponseWriter, r *http.Request) {
	apps, err := h.svc.ListForJob(r.Context(), actorFrom(r), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": apps})
}

func (h *applicationHandlers) ListMine(w http.ResponseWriter, r *http.Request) {
	var filter store.ApplicationFilter
	if raw := r.URL.Query().Get("category"); raw != "" {
		category, err := status.ParseCategory(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "VALIDATION_FAILED", err.Error())
			return
		}
		filter.Category = &category
	}
	filter.ActiveOnly = r.URL.Query().Get("active") == "1"

	apps, err := h.svc.ListMine(r.Context(), actorFrom(r), filter)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": apps})
}

func (h *applicationHandlers) Summary(w http.ResponseWriter, r *http.Request) {
	sum, err := h.svc.Summary(r.Context(), actorFrom(r))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

func (h *applicationHandlers) Get(w http.ResponseWriter, r *http.Request) {
	app, err := h.svc.GetApplication(r.Context(), actorFrom(r), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, app)
}

func (h *applicationHandlers) Events(w http.ResponseWriter, r *http.Request) {
	events, err := h.svc.Events(r.Context(), actorFrom(r), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": events})
}

// ── Status changes ─────────────────────────────────────────────────────────

func (h *applicationHandlers) RequestChange(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RequestedStatus string `json:"requestedStatus"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RequestedStatus == "" {
		writeError(w, http.StatusBadRequest, "VALIDATION_FAILED", "body must contain requestedStatus")
		return
	}
	requested, err := status.ParseStatus(req.RequestedStatus)
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_FAILED", err.Error())
		return
	}
	res, err := h.svc.RequestStatusChange(r.Context(), actorFrom(r), chi.URLParam(r, "id"), requested)
	if err != nil {
		respondError(w, err)
		return
	}
	respondChange(w, res)
}

func (h *applicationHandlers) Accept(w http.ResponseWriter, r *http.Request) {
	h.intent(w, r, h.svc.AcceptJob)
}

func (h *applicationHandlers) Decline(w http.ResponseWriter, r *http.Request) {
	h.intent(w, r, h.svc.DeclineJob)
}

func (h *applicationHandlers) NotInterested(w http.ResponseWriter, r *http.Request) {
	h.intent(w, r, h.svc.MarkNotInterested)
}

func (h *applicationHandlers) Select(w http.ResponseWriter, r *http.Request) {
	h.intent(w, r, h.svc.SelectEmployee)
}

func (h *applicationHandlers) Reject(w http.ResponseWriter, r *http.Request) {
	h.intent(w, r, h.svc.RejectApplication)
}

// intent runs one of the bodyless role-predicate actions and renders the
// shared ChangeResult shape.
func (h *applicationHandlers) intent(w http.ResponseWriter, r *http.Request, fn func(context.Context, application.Actor, string) (application.ChangeResult, error)) {
	res, err := fn(r.Context(), actorFrom(r), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondChange(w, res)
}

// ── Code handoffs ──────────────────────────────────────────────────────────

func (h *applicationHandlers) StartCode(w http.ResponseWriter, r *http.Request) {
	code, err := h.svc.GenerateStartCode(r.Context(), actorFrom(r), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"code": code})
}

func (h *applicationHandlers) CompletionCode(w http.ResponseWriter, r *http.Request) {
	code, err := h.svc.RequestCompletionCode(r.Context(), actorFrom(r), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"code": code})
}

func (h *applicationHandlers) Start(w http.ResponseWriter, r *http.Request) {
	code, ok := decodeCode(w, r)
	if !ok {
		return
	}
	res, err := h.svc.StartWork(r.Context(), actorFrom(r), chi.URLParam(r, "id"), code)
	if err != nil {
		respondError(w, err)
		return
	}
	respondChange(w, res)
}

func (h *applicationHandlers) Complete(w http.ResponseWriter, r *http.Request) {
	code, ok := decodeCode(w, r)
	if !ok {
		return
	}
	res, err := h.svc.CompleteWork(r.Context(), actorFrom(r), chi.URLParam(r, "id"), code)
	if err != nil {
		respondError(w, err)
		return
	}
	respondChange(w, res)
}

func decodeCode(w http.ResponseWriter, r *http.Request) (string, bool) {
	var req struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Code == "" {
		writeError(w, http.StatusBadRequest, "VALIDATION_FAILED", "body must contain code")
		return "", false
	}
	return req.Code, true
}
