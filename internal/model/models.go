// Package model defines shared data structures for the marketplace service.
package model

import (
	"time"

	"github.com/shopspring/decimal"

	"gigmate/marketplace-service/internal/status"
)

// Role identifies the kind of actor behind a request. Admin is the only role
// the rules engine treats specially; everything else is enforced by route and
// ownership checks.
type Role string

const (
	RoleEmployee Role = "employee"
	RoleEmployer Role = "employer"
	RoleAdmin    Role = "admin"
)

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	return r == RoleEmployee || r == RoleEmployer || r == RoleAdmin
}

// IsAdmin reports whether r bypasses the normal transition rules.
func (r Role) IsAdmin() bool { return r == RoleAdmin }

// Job mirrors the jobs table row.
type Job struct {
	ID          string          `json:"id"`
	EmployerID  string          `json:"employerId"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Location    string          `json:"location,omitempty"`
	PayAmount   decimal.Decimal `json:"payAmount"`
	PayCurrency string          `json:"payCurrency"`
	Open        bool            `json:"open"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// Application mirrors the applications table row. Status and StatusLocked are
// only ever written together through the conditional update in the store.
type Application struct {
	ID           string                   `json:"id"`
	JobID        string                   `json:"jobId"`
	EmployeeID   string                   `json:"employeeId"`
	Status       status.ApplicationStatus `json:"status"`
	StatusLocked bool                     `json:"statusLocked"`
	AppliedAt    time.Time                `json:"appliedAt"`
	UpdatedAt    time.Time                `json:"updatedAt"`
}

// StatusEvent is one append-only audit entry for an application.
type StatusEvent struct {
	ID            string                   `json:"id"`
	ApplicationID string                   `json:"applicationId"`
	EventType     string                   `json:"eventType"`
	FromStatus    status.ApplicationStatus `json:"fromStatus,omitempty"`
	ToStatus      status.ApplicationStatus `json:"toStatus,omitempty"`
	Actor         string                   `json:"actor"`
	ActorRole     Role                     `json:"actorRole"`
	Detail        map[string]any           `json:"detail,omitempty"`
	OccurredAt    time.Time                `json:"occurredAt"`
}

// ApprovalState tracks the lifecycle of a review-queue entry.
type ApprovalState string

const (
	ApprovalPending  ApprovalState = "PENDING"
	ApprovalApproved ApprovalState = "APPROVED"
	ApprovalDenied   ApprovalState = "DENIED"
	ApprovalExpired  ApprovalState = "EXPIRED"
)

// ApprovalRequest is one entry in the administrator review queue, created
// whenever the rules engine answers REQUIRES_ADMIN_APPROVAL.
type ApprovalRequest struct {
	ID            string                   `json:"id"`
	ApplicationID string                   `json:"applicationId"`
	FromStatus    status.ApplicationStatus `json:"fromStatus"`
	ToStatus      status.ApplicationStatus `json:"toStatus"`
	Reason        string                   `json:"reason"`
	RequestedBy   string                   `json:"requestedBy"`
	RequestedRole Role                     `json:"requestedRole"`
	State         ApprovalState            `json:"state"`
	CreatedAt     time.Time                `json:"createdAt"`
	ResolvedAt    *time.Time               `json:"resolvedAt,omitempty"`
	ResolvedBy    string                   `json:"resolvedBy,omitempty"`
	Note          string                   `json:"note,omitempty"`
}

// EmployeeSummary aggregates an employee's applications for the dashboard
// header: one count per category plus earnings over completed jobs.
type EmployeeSummary struct {
	Pending     int             `json:"pending"`
	Active      int             `json:"active"`
	Completed   int             `json:"completed"`
	Rejected    int             `json:"rejected"`
	TotalEarned decimal.Decimal `json:"totalEarned"`
}
