package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"gigmate/marketplace-service/internal/application"
)

type jobHandlers struct {
	svc *application.Service
}

type createJobRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Location    string `json:"location"`
	PayAmount   string `json:"payAmount"`
	PayCurrency string `json:"payCurrency"`
}

func (h *jobHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req createJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid json")
		return
	}
	amount, err := decimal.NewFromString(req.PayAmount)
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_FAILED", "payAmount must be a decimal number")
		return
	}
	job, err := h.svc.CreateJob(r.Context(), actorFrom(r), application.CreateJobParams{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		PayAmount:   amount,
		PayCurrency: req.PayCurrency,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, job)
}

func (h *jobHandlers) List(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.svc.ListOpenJobs(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": jobs})
}

func (h *jobHandlers) Get(w http.ResponseWriter, r *http.Request) {
	job, err := h.svc.GetJob(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, job)
}

func (h *jobHandlers) Close(w http.ResponseWriter, r *http.Request) {
	job, err := h.svc.CloseJob(r.Context(), actorFrom(r), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, job)
}
