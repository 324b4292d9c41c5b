// Package store defines the persistence interfaces for the marketplace
// service, plus an in-memory implementation used by tests. The PostgreSQL
// implementation lives in store/postgres.
package store

import (
	"context"
	"errors"
	"time"

	"gigmate/marketplace-service/internal/model"
	"gigmate/marketplace-service/internal/status"
)

// Sentinel errors shared by every implementation. Callers match with
// errors.Is; implementations wrap them with entity context.
var (
	// ErrNotFound is returned when the requested row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a conditional write loses its race: the
	// expected previous state no longer matches the row.
	ErrConflict = errors.New("conflict")
	// ErrDuplicate is returned when a uniqueness rule trips, e.g. a second
	// application by the same employee for the same job.
	ErrDuplicate = errors.New("duplicate")
)

// ApplicationFilter narrows employee application listings.
type ApplicationFilter struct {
	// Category keeps only applications whose status maps to it; nil keeps all.
	Category *status.StatusCategory
	// ActiveOnly keeps only statuses shown on the active-jobs screen.
	ActiveOnly bool
}

// TransitionParams describes one atomic status write together with its audit
// entry. ExpectedStatus is the status the caller just read and validated
// against; the write only happens while the row still carries it, otherwise
// ErrConflict is returned and nothing is recorded.
type TransitionParams struct {
	ApplicationID  string
	ExpectedStatus status.ApplicationStatus
	NewStatus      status.ApplicationStatus
	Lock           bool
	Event          model.StatusEvent
}

// JobStore persists job postings.
type JobStore interface {
	CreateJob(ctx context.Context, job model.Job) (model.Job, error)
	GetJob(ctx context.Context, id string) (model.Job, error)
	ListOpenJobs(ctx context.Context) ([]model.Job, error)
	CloseJob(ctx context.Context, id string) (model.Job, error)
}

// ApplicationStore persists applications; status writes go through
// TransitionApplication only.
type ApplicationStore interface {
	CreateApplication(ctx context.Context, app model.Application) (model.Application, error)
	GetApplication(ctx context.Context, id string) (model.Application, error)
	ListApplicationsByEmployee(ctx context.Context, employeeID string, f ApplicationFilter) ([]model.Application, error)
	ListApplicationsByJob(ctx context.Context, jobID string) ([]model.Application, error)
	TransitionApplication(ctx context.Context, p TransitionParams) (model.Application, error)
	SummarizeEmployee(ctx context.Context, employeeID string) (model.EmployeeSummary, error)
}

// EventStore persists the append-only audit trail.
type EventStore interface {
	AppendEvent(ctx context.Context, ev model.StatusEvent) (model.StatusEvent, error)
	ListEvents(ctx context.Context, applicationID string) ([]model.StatusEvent, error)
}

// ApprovalStore persists the administrator review queue.
type ApprovalStore interface {
	CreateApproval(ctx context.Context, req model.ApprovalRequest) (model.ApprovalRequest, error)
	GetApproval(ctx context.Context, id string) (model.ApprovalRequest, error)
	ListApprovalsByState(ctx context.Context, state model.ApprovalState) ([]model.ApprovalRequest, error)
	// ResolveApproval flips a PENDING request to state; a request already
	// resolved by a racing administrator yields ErrConflict.
	ResolveApproval(ctx context.Context, id string, state model.ApprovalState, resolvedBy, note string) (model.ApprovalRequest, error)
	// ExpireApprovals flips every PENDING request created before the cutoff
	// to EXPIRED and returns the flipped rows.
	ExpireApprovals(ctx context.Context, before time.Time) ([]model.ApprovalRequest, error)
}

// Store bundles every persistence concern the application service needs.
type Store interface {
	JobStore
	ApplicationStore
	EventStore
	ApprovalStore
}
