// Package httpapi mounts the marketplace REST surface.
//
// All /v1 routes require a bearer token from the platform's identity service.
//
// Routes:
//
//	POST /v1/jobs                                employer   create posting
//	GET  /v1/jobs                                any        list open postings
//	GET  /v1/jobs/{id}                           any
//	POST /v1/jobs/{id}/close                     employer/admin
//	POST /v1/jobs/{id}/applications              employee   apply
//	GET  /v1/jobs/{id}/applications              employer/admin
//	GET  /v1/applications                        employee   own list
//	GET  /v1/applications/summary                employee   dashboard aggregate
//	GET  /v1/applications/{id}                   any party
//	GET  /v1/applications/{id}/events            any party
//	POST /v1/applications/{id}/status            any party  generic change
//	POST /v1/applications/{id}/accept            employee
//	POST /v1/applications/{id}/decline           employee
//	POST /v1/applications/{id}/not-interested    employee
//	POST /v1/applications/{id}/start             employee   redeem start code
//	POST /v1/applications/{id}/completion-code   employee   issue completion code
//	POST /v1/applications/{id}/select            employer
//	POST /v1/applications/{id}/reject            employer
//	POST /v1/applications/{id}/start-code        employer   issue start code
//	POST /v1/applications/{id}/complete          employer   redeem completion code
//	GET  /v1/admin/approvals                     admin      pending review queue
//	POST /v1/admin/approvals/{id}/approve        admin
//	POST /v1/admin/approvals/{id}/deny           admin
package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"gigmate/marketplace-service/internal/application"
	"gigmate/marketplace-service/internal/auth"
	"gigmate/marketplace-service/internal/metrics"
	"gigmate/marketplace-service/internal/model"
)

// Dependencies holds everything the router mounts.
type Dependencies struct {
	Service  *application.Service
	Verifier *auth.Verifier
	Metrics  *metrics.Metrics
}

// NewRouter builds the chi router with metrics, health and the /v1 surface.
func NewRouter(deps Dependencies) http.Handler {
	r := chi.NewRouter()
	r.Use(deps.Metrics.Middleware)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())

	jobs := &jobHandlers{svc: deps.Service}
	apps := &applicationHandlers{svc: deps.Service}
	approvals := &approvalHandlers{svc: deps.Service}

	r.Route("/v1", func(r chi.Router) {
		r.Use(authenticate(deps.Verifier))

		r.Route("/jobs", func(r chi.Router) {
			r.Get("/", jobs.List)
			r.Get("/{id}", jobs.Get)
			r.With(requireRole(model.RoleEmployer)).Post("/", jobs.Create)
			r.With(requireRole(model.RoleEmployer, model.RoleAdmin)).Post("/{id}/close", jobs.Close)
			r.With(requireRole(model.RoleEmployee)).Post("/{id}/applications", apps.Apply)
			r.With(requireRole(model.RoleEmployer, model.RoleAdmin)).Get("/{id}/applications", apps.ListForJob)
		})

		r.Route("/applications", func(r chi.Router) {
			employee := r.With(requireRole(model.RoleEmployee))
			employer := r.With(requireRole(model.RoleEmployer))

			employee.Get("/", apps.ListMine)
			employee.Get("/summary", apps.Summary)
			r.Get("/{id}", apps.Get)
			r.Get("/{id}/events", apps.Events)
			r.Post("/{id}/status", apps.RequestChange)

			employee.Post("/{id}/accept", apps.Accept)
			employee.Post("/{id}/decline", apps.Decline)
			employee.Post("/{id}/not-interested", apps.NotInterested)
			employee.Post("/{id}/start", apps.Start)
			employee.Post("/{id}/completion-code", apps.CompletionCode)

			employer.Post("/{id}/select", apps.Select)
			employer.Post("/{id}/reject", apps.Reject)
			employer.Post("/{id}/start-code", apps.StartCode)
			employer.Post("/{id}/complete", apps.Complete)
		})

		r.Route("/admin/approvals", func(r chi.Router) {
			r.Use(requireRole(model.RoleAdmin))
			r.Get("/", approvals.List)
			r.Post("/{id}/approve", approvals.Approve)
			r.Post("/{id}/deny", approvals.Deny)
		})
	})

	return r
}
