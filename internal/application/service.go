// Package application implements the workflows behind the marketplace API:
// posting jobs, applying, moving applications through their lifecycle, the
// administrator review queue, and the code-verified handoffs.
//
// Every status write follows the same shape: read the persisted row, put the
// requested change through status.ValidateChange, then perform a conditional
// write keyed on the status that was read. A lost race surfaces as
// store.ErrConflict and the caller retries with fresh state.
package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"gigmate/marketplace-service/internal/metrics"
	"gigmate/marketplace-service/internal/model"
	"gigmate/marketplace-service/internal/notify"
	"gigmate/marketplace-service/internal/otp"
	"gigmate/marketplace-service/internal/status"
	"gigmate/marketplace-service/internal/store"
)

// Audit event types recorded in the status_events trail.
const (
	EventStatusChanged     = "STATUS_CHANGED"
	EventApprovalRequested = "APPROVAL_REQUESTED"
	EventApprovalApproved  = "APPROVAL_APPROVED"
	EventApprovalDenied    = "APPROVAL_DENIED"
	EventApprovalExpired   = "APPROVAL_EXPIRED"
	EventCodeIssued        = "OTP_ISSUED"
)

// ErrForbidden is returned when the actor is not a party to the entity they
// are acting on.
var ErrForbidden = errors.New("forbidden")

// ValidationError reports a request the job lifecycle can never honor. The
// transport maps it to 422.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// Actor identifies the authenticated caller.
type Actor struct {
	ID   string
	Role model.Role
}

// ChangeResult reports what a status-change request produced: Applied is true
// when the application was written (or the request was a no-op); otherwise
// Approval carries the review request the change was queued behind.
type ChangeResult struct {
	Applied     bool
	Decision    status.Decision
	Application *model.Application
	Approval    *model.ApprovalRequest
}

// Service owns the marketplace workflows. It is safe for concurrent use.
type Service struct {
	store       store.Store
	codes       *otp.Manager
	pub         notify.Publisher
	metrics     *metrics.Metrics
	approvalTTL time.Duration
}

// New wires the service together. approvalTTL bounds how long a review
// request may stay pending before the sweep expires it.
func New(st store.Store, codes *otp.Manager, pub notify.Publisher, met *metrics.Metrics, approvalTTL time.Duration) *Service {
	return &Service{
		store:       st,
		codes:       codes,
		pub:         pub,
		metrics:     met,
		approvalTTL: approvalTTL,
	}
}

// ── Jobs ───────────────────────────────────────────────────────────────────

// CreateJobParams carries the employer's posting form.
type CreateJobParams struct {
	Title       string
	Description string
	Location    string
	PayAmount   decimal.Decimal
	PayCurrency string
}

// CreateJob opens a new posting owned by the acting employer.
func (s *Service) CreateJob(ctx context.Context, actor Actor, p CreateJobParams) (model.Job, error) {
	if strings.TrimSpace(p.Title) == "" {
		return model.Job{}, &ValidationError{Msg: "job title is required"}
	}
	if p.PayAmount.IsNegative() {
		return model.Job{}, &ValidationError{Msg: "pay amount cannot be negative"}
	}
	if p.PayCurrency == "" {
		return model.Job{}, &ValidationError{Msg: "pay currency is required"}
	}
	return s.store.CreateJob(ctx, model.Job{
		ID:          uuid.NewString(),
		EmployerID:  actor.ID,
		Title:       strings.TrimSpace(p.Title),
		Description: p.Description,
		Location:    p.Location,
		PayAmount:   p.PayAmount,
		PayCurrency: p.PayCurrency,
		Open:        true,
	})
}

// GetJob returns one posting.
func (s *Service) GetJob(ctx context.Context, id string) (model.Job, error) {
	return s.store.GetJob(ctx, id)
}

// ListOpenJobs returns postings still accepting applications, newest first.
func (s *Service) ListOpenJobs(ctx context.Context) ([]model.Job, error) {
	return s.store.ListOpenJobs(ctx)
}

// CloseJob stops a posting from accepting applications. Only the owning
// employer or an administrator may close it.
func (s *Service) CloseJob(ctx context.Context, actor Actor, id string) (model.Job, error) {
	job, err := s.store.GetJob(ctx, id)
	if err != nil {
		return model.Job{}, err
	}
	if !actor.Role.IsAdmin() && job.EmployerID != actor.ID {
		return model.Job{}, ErrForbidden
	}
	return s.store.CloseJob(ctx, id)
}

// ── Applying ───────────────────────────────────────────────────────────────

// Apply creates an APPLIED application for the acting employee on an open
// job. A second application for the same job returns store.ErrDuplicate.
func (s *Service) Apply(ctx context.Context, actor Actor, jobID string) (model.Application, error) {
	job, err := s.store.GetJob(ctx, jobID)
	if err != nil {
		return model.Application{}, err
	}
	if !job.Open {
		return model.Application{}, &ValidationError{Msg: "job is no longer accepting applications"}
	}
	app, err := s.store.CreateApplication(ctx, model.Application{
		ID:         uuid.NewString(),
		JobID:      job.ID,
		EmployeeID: actor.ID,
		Status:     status.StatusApplied,
	})
	if err != nil {
		return model.Application{}, err
	}
	s.recordEvent(ctx, model.StatusEvent{
		ApplicationID: app.ID,
		EventType:     EventStatusChanged,
		ToStatus:      status.StatusApplied,
		Actor:         actor.ID,
		ActorRole:     actor.Role,
	})
	s.pub.Publish(ctx, notify.ChannelStatusChanged, notify.Event{
		ApplicationID: app.ID,
		JobID:         job.ID,
		ToStatus:      string(status.StatusApplied),
		Actor:         actor.ID,
		ActorRole:     string(actor.Role),
		At:            time.Now().UTC(),
	})
	return app, nil
}

// ── Status changes ─────────────────────────────────────────────────────────

// RequestStatusChange puts an arbitrary target status through the rules
// engine for any party to the application. The persisted lock flag is what
// the engine sees; only the code-verified paths below ever override it.
func (s *Service) RequestStatusChange(ctx context.Context, actor Actor, applicationID string, requested status.ApplicationStatus) (ChangeResult, error) {
	app, err := s.store.GetApplication(ctx, applicationID)
	if err != nil {
		return ChangeResult{}, err
	}
	if err := s.authorizeParty(ctx, actor, app); err != nil {
		return ChangeResult{}, err
	}
	return s.applyValidated(ctx, actor, app, requested, app.StatusLocked, nil)
}

// AcceptJob moves the employee's application from SELECTED to ACCEPTED.
func (s *Service) AcceptJob(ctx context.Context, actor Actor, applicationID string) (ChangeResult, error) {
	app, err := s.ownApplication(ctx, actor, applicationID)
	if err != nil {
		return ChangeResult{}, err
	}
	if !status.CanAcceptJob(app.Status) {
		return ChangeResult{}, &ValidationError{Msg: fmt.Sprintf("cannot accept a job while the application is %s", app.Status.DisplayText())}
	}
	return s.applyValidated(ctx, actor, app, status.StatusAccepted, app.StatusLocked, nil)
}

// DeclineJob lets the employee withdraw from a selection or an acceptance.
// Declining after acceptance finds the application locked, so the change is
// queued for administrator review instead of applied directly.
func (s *Service) DeclineJob(ctx context.Context, actor Actor, applicationID string) (ChangeResult, error) {
	app, err := s.ownApplication(ctx, actor, applicationID)
	if err != nil {
		return ChangeResult{}, err
	}
	if !status.CanDeclineJob(app.Status) {
		return ChangeResult{}, &ValidationError{Msg: fmt.Sprintf("cannot decline a job while the application is %s", app.Status.DisplayText())}
	}
	return s.applyValidated(ctx, actor, app, status.StatusDeclined, app.StatusLocked, nil)
}

// MarkNotInterested withdraws a fresh application.
func (s *Service) MarkNotInterested(ctx context.Context, actor Actor, applicationID string) (ChangeResult, error) {
	app, err := s.ownApplication(ctx, actor, applicationID)
	if err != nil {
		return ChangeResult{}, err
	}
	if !status.CanMarkNotInterested(app.Status) {
		return ChangeResult{}, &ValidationError{Msg: fmt.Sprintf("cannot withdraw while the application is %s", app.Status.DisplayText())}
	}
	return s.applyValidated(ctx, actor, app, status.StatusNotInterested, app.StatusLocked, nil)
}

// SelectEmployee moves an applicant from APPLIED to SELECTED on the acting
// employer's job.
func (s *Service) SelectEmployee(ctx context.Context, actor Actor, applicationID string) (ChangeResult, error) {
	app, err := s.employerApplication(ctx, actor, applicationID)
	if err != nil {
		return ChangeResult{}, err
	}
	if !status.CanSelectEmployee(app.Status) {
		return ChangeResult{}, &ValidationError{Msg: fmt.Sprintf("cannot select an applicant while the application is %s", app.Status.DisplayText())}
	}
	return s.applyValidated(ctx, actor, app, status.StatusSelected, app.StatusLocked, nil)
}

// RejectApplication turns down an applicant before work begins.
func (s *Service) RejectApplication(ctx context.Context, actor Actor, applicationID string) (ChangeResult, error) {
	app, err := s.employerApplication(ctx, actor, applicationID)
	if err != nil {
		return ChangeResult{}, err
	}
	if !status.CanRejectApplication(app.Status) {
		return ChangeResult{}, &ValidationError{Msg: fmt.Sprintf("cannot reject an applicant while the application is %s", app.Status.DisplayText())}
	}
	return s.applyValidated(ctx, actor, app, status.StatusRejected, app.StatusLocked, nil)
}

// ── Code-verified handoffs ─────────────────────────────────────────────────

// GenerateStartCode issues the start code the employer hands to the employee
// at the job site. Valid only while the application sits at ACCEPTED.
func (s *Service) GenerateStartCode(ctx context.Context, actor Actor, applicationID string) (string, error) {
	app, err := s.employerApplication(ctx, actor, applicationID)
	if err != nil {
		return "", err
	}
	if !status.CanGenerateOTP(app.Status) {
		return "", &ValidationError{Msg: fmt.Sprintf("cannot issue a start code while the application is %s", app.Status.DisplayText())}
	}
	return s.issueCode(ctx, actor, app, otp.PurposeStart)
}

// StartWork redeems a start code and moves ACCEPTED to WORK_IN_PROGRESS. The
// redeemed code stands in for the status lock on this one edge, so the engine
// validates unlocked.
func (s *Service) StartWork(ctx context.Context, actor Actor, applicationID, code string) (ChangeResult, error) {
	app, err := s.ownApplication(ctx, actor, applicationID)
	if err != nil {
		return ChangeResult{}, err
	}
	if !status.CanStartWork(app.Status) {
		return ChangeResult{}, &ValidationError{Msg: fmt.Sprintf("cannot start work while the application is %s", app.Status.DisplayText())}
	}
	if err := s.redeemCode(ctx, app, otp.PurposeStart, code); err != nil {
		return ChangeResult{}, err
	}
	return s.applyValidated(ctx, actor, app, status.StatusWorkInProgress, false, map[string]any{"verified": "start_code"})
}

// RequestCompletionCode issues the completion code the employee relays to the
// employer once the work is done.
func (s *Service) RequestCompletionCode(ctx context.Context, actor Actor, applicationID string) (string, error) {
	app, err := s.ownApplication(ctx, actor, applicationID)
	if err != nil {
		return "", err
	}
	if !status.CanCompleteWork(app.Status) {
		return "", &ValidationError{Msg: fmt.Sprintf("cannot request a completion code while the application is %s", app.Status.DisplayText())}
	}
	return s.issueCode(ctx, actor, app, otp.PurposeComplete)
}

// CompleteWork redeems a completion code and moves WORK_IN_PROGRESS to
// COMPLETED on the acting employer's job. Same lock rule as StartWork: the
// verified code releases the lock for this edge.
func (s *Service) CompleteWork(ctx context.Context, actor Actor, applicationID, code string) (ChangeResult, error) {
	app, err := s.employerApplication(ctx, actor, applicationID)
	if err != nil {
		return ChangeResult{}, err
	}
	if !status.CanMarkWorkCompleted(app.Status) {
		return ChangeResult{}, &ValidationError{Msg: fmt.Sprintf("cannot complete work while the application is %s", app.Status.DisplayText())}
	}
	if err := s.redeemCode(ctx, app, otp.PurposeComplete, code); err != nil {
		return ChangeResult{}, err
	}
	return s.applyValidated(ctx, actor, app, status.StatusCompleted, false, map[string]any{"verified": "completion_code"})
}

func (s *Service) issueCode(ctx context.Context, actor Actor, app model.Application, purpose otp.Purpose) (string, error) {
	code, err := s.codes.Issue(ctx, purpose, app.ID)
	if err != nil {
		return "", fmt.Errorf("issue %s code: %w", purpose, err)
	}
	s.metrics.RecordCodeIssued(string(purpose))
	s.recordEvent(ctx, model.StatusEvent{
		ApplicationID: app.ID,
		EventType:     EventCodeIssued,
		Actor:         actor.ID,
		ActorRole:     actor.Role,
		Detail:        map[string]any{"purpose": string(purpose)},
	})
	return code, nil
}

func (s *Service) redeemCode(ctx context.Context, app model.Application, purpose otp.Purpose, code string) error {
	if err := s.codes.Redeem(ctx, purpose, app.ID, code); err != nil {
		if errors.Is(err, otp.ErrCodeInvalid) {
			s.metrics.RecordRedemption(string(purpose), "rejected")
		}
		return err
	}
	s.metrics.RecordRedemption(string(purpose), "ok")
	return nil
}

// ── Listings and dashboards ────────────────────────────────────────────────

// GetApplication returns one application to any party to it.
func (s *Service) GetApplication(ctx context.Context, actor Actor, id string) (model.Application, error) {
	app, err := s.store.GetApplication(ctx, id)
	if err != nil {
		return model.Application{}, err
	}
	if err := s.authorizeParty(ctx, actor, app); err != nil {
		return model.Application{}, err
	}
	return app, nil
}

// Events returns the audit trail for any party to the application.
func (s *Service) Events(ctx context.Context, actor Actor, applicationID string) ([]model.StatusEvent, error) {
	app, err := s.store.GetApplication(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeParty(ctx, actor, app); err != nil {
		return nil, err
	}
	return s.store.ListEvents(ctx, app.ID)
}

// ListMine returns the acting employee's applications, filtered and ordered
// for the dashboard.
func (s *Service) ListMine(ctx context.Context, actor Actor, f store.ApplicationFilter) ([]model.Application, error) {
	return s.store.ListApplicationsByEmployee(ctx, actor.ID, f)
}

// ListForJob returns the applicants on the acting employer's job.
func (s *Service) ListForJob(ctx context.Context, actor Actor, jobID string) ([]model.Application, error) {
	job, err := s.store.GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if !actor.Role.IsAdmin() && job.EmployerID != actor.ID {
		return nil, ErrForbidden
	}
	return s.store.ListApplicationsByJob(ctx, jobID)
}

// Summary returns the acting employee's dashboard aggregate.
func (s *Service) Summary(ctx context.Context, actor Actor) (model.EmployeeSummary, error) {
	return s.store.SummarizeEmployee(ctx, actor.ID)
}

// ── Administrator review queue ─────────────────────────────────────────────

// PendingApprovals returns the review queue, oldest first.
func (s *Service) PendingApprovals(ctx context.Context, actor Actor) ([]model.ApprovalRequest, error) {
	if !actor.Role.IsAdmin() {
		return nil, ErrForbidden
	}
	return s.store.ListApprovalsByState(ctx, model.ApprovalPending)
}

// DecideApproval resolves one review request. On approve the requested change
// is re-validated with the admin bypass and applied with the administrator as
// the recorded actor; on deny the request is closed without a write. A
// request already resolved by a racing administrator yields store.ErrConflict.
func (s *Service) DecideApproval(ctx context.Context, actor Actor, requestID string, approve bool, note string) (ChangeResult, error) {
	if !actor.Role.IsAdmin() {
		return ChangeResult{}, ErrForbidden
	}
	state := model.ApprovalDenied
	eventType := EventApprovalDenied
	if approve {
		state = model.ApprovalApproved
		eventType = EventApprovalApproved
	}
	resolved, err := s.store.ResolveApproval(ctx, requestID, state, actor.ID, note)
	if err != nil {
		return ChangeResult{}, err
	}
	s.metrics.RecordApprovalResolved(string(state))

	result := ChangeResult{Approval: &resolved}
	if approve {
		app, err := s.store.GetApplication(ctx, resolved.ApplicationID)
		if err != nil {
			return ChangeResult{}, err
		}
		d := status.ValidateChange(app.Status, resolved.ToStatus, app.StatusLocked, true)
		s.metrics.RecordDecision(string(d.Outcome))
		updated, err := s.store.TransitionApplication(ctx, store.TransitionParams{
			ApplicationID:  app.ID,
			ExpectedStatus: app.Status,
			NewStatus:      resolved.ToStatus,
			Lock:           status.ShouldLock(resolved.ToStatus),
			Event: model.StatusEvent{
				EventType: EventStatusChanged,
				Actor:     actor.ID,
				ActorRole: actor.Role,
				Detail:    map[string]any{"approval_id": resolved.ID},
			},
		})
		if err != nil {
			return ChangeResult{}, err
		}
		s.afterTransition(ctx, actor, app.Status, updated)
		result.Applied = true
		result.Decision = d
		result.Application = &updated
	}

	s.recordEvent(ctx, model.StatusEvent{
		ApplicationID: resolved.ApplicationID,
		EventType:     eventType,
		FromStatus:    resolved.FromStatus,
		ToStatus:      resolved.ToStatus,
		Actor:         actor.ID,
		ActorRole:     actor.Role,
		Detail:        map[string]any{"approval_id": resolved.ID, "note": note},
	})
	s.pub.Publish(ctx, notify.ChannelApprovalResolved, notify.Event{
		ApplicationID: resolved.ApplicationID,
		ApprovalID:    resolved.ID,
		FromStatus:    string(resolved.FromStatus),
		ToStatus:      string(resolved.ToStatus),
		Actor:         actor.ID,
		ActorRole:     string(actor.Role),
		Reason:        string(state),
		At:            time.Now().UTC(),
	})
	return result, nil
}

// ExpireStale sweeps review requests pending longer than the approval TTL to
// EXPIRED and returns how many were flipped.
func (s *Service) ExpireStale(ctx context.Context) (int, error) {
	cutoff := time.Now().UTC().Add(-s.approvalTTL)
	expired, err := s.store.ExpireApprovals(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	for _, req := range expired {
		s.metrics.RecordApprovalResolved(string(model.ApprovalExpired))
		s.recordEvent(ctx, model.StatusEvent{
			ApplicationID: req.ApplicationID,
			EventType:     EventApprovalExpired,
			FromStatus:    req.FromStatus,
			ToStatus:      req.ToStatus,
			Actor:         "system",
			Detail:        map[string]any{"approval_id": req.ID},
		})
		s.pub.Publish(ctx, notify.ChannelApprovalResolved, notify.Event{
			ApplicationID: req.ApplicationID,
			ApprovalID:    req.ID,
			FromStatus:    string(req.FromStatus),
			ToStatus:      string(req.ToStatus),
			Actor:         "system",
			Reason:        string(model.ApprovalExpired),
			At:            time.Now().UTC(),
		})
	}
	return len(expired), nil
}

// ── Shared write path ──────────────────────────────────────────────────────

// applyValidated is the single funnel for status writes: engine verdict, then
// either the conditional write, the review queue, or a ValidationError.
func (s *Service) applyValidated(ctx context.Context, actor Actor, app model.Application, requested status.ApplicationStatus, lockFlag bool, detail map[string]any) (ChangeResult, error) {
	d := status.ValidateChange(app.Status, requested, lockFlag, actor.Role.IsAdmin())
	s.metrics.RecordDecision(string(d.Outcome))

	switch d.Outcome {
	case status.OutcomeInvalid:
		return ChangeResult{}, &ValidationError{Msg: d.Reason}
	case status.OutcomeRequiresApproval:
		return s.queueApproval(ctx, actor, app, requested, d)
	}

	if requested == app.Status {
		// No-op change: nothing to write, nothing to announce.
		return ChangeResult{Applied: true, Decision: d, Application: &app}, nil
	}
	updated, err := s.store.TransitionApplication(ctx, store.TransitionParams{
		ApplicationID:  app.ID,
		ExpectedStatus: app.Status,
		NewStatus:      requested,
		Lock:           status.ShouldLock(requested),
		Event: model.StatusEvent{
			EventType: EventStatusChanged,
			Actor:     actor.ID,
			ActorRole: actor.Role,
			Detail:    detail,
		},
	})
	if err != nil {
		return ChangeResult{}, err
	}
	s.afterTransition(ctx, actor, app.Status, updated)
	return ChangeResult{Applied: true, Decision: d, Application: &updated}, nil
}

// queueApproval files a PENDING review request carrying the engine's reason.
func (s *Service) queueApproval(ctx context.Context, actor Actor, app model.Application, requested status.ApplicationStatus, d status.Decision) (ChangeResult, error) {
	req, err := s.store.CreateApproval(ctx, model.ApprovalRequest{
		ID:            uuid.NewString(),
		ApplicationID: app.ID,
		FromStatus:    app.Status,
		ToStatus:      requested,
		Reason:        d.Reason,
		RequestedBy:   actor.ID,
		RequestedRole: actor.Role,
		State:         model.ApprovalPending,
	})
	if err != nil {
		return ChangeResult{}, err
	}
	s.recordEvent(ctx, model.StatusEvent{
		ApplicationID: app.ID,
		EventType:     EventApprovalRequested,
		FromStatus:    app.Status,
		ToStatus:      requested,
		Actor:         actor.ID,
		ActorRole:     actor.Role,
		Detail:        map[string]any{"approval_id": req.ID, "reason": d.Reason},
	})
	s.pub.Publish(ctx, notify.ChannelApprovalRequested, notify.Event{
		ApplicationID: app.ID,
		JobID:         app.JobID,
		ApprovalID:    req.ID,
		FromStatus:    string(app.Status),
		ToStatus:      string(requested),
		Actor:         actor.ID,
		ActorRole:     string(actor.Role),
		Reason:        d.Reason,
		At:            time.Now().UTC(),
	})
	return ChangeResult{Decision: d, Approval: &req}, nil
}

// afterTransition runs the side effects of a committed status write.
func (s *Service) afterTransition(ctx context.Context, actor Actor, from status.ApplicationStatus, app model.Application) {
	if app.Status == status.StatusCompleted {
		if _, err := s.store.CloseJob(ctx, app.JobID); err != nil {
			slog.Warn("failed to close job after completion", "job_id", app.JobID, "error", err)
		}
	}
	s.pub.Publish(ctx, notify.ChannelStatusChanged, notify.Event{
		ApplicationID: app.ID,
		JobID:         app.JobID,
		FromStatus:    string(from),
		ToStatus:      string(app.Status),
		Actor:         actor.ID,
		ActorRole:     string(actor.Role),
		At:            time.Now().UTC(),
	})
}

// recordEvent appends a non-transition audit entry. Audit failures are logged
// and never fail the operation that produced them; transition events ride the
// store's own transaction instead.
func (s *Service) recordEvent(ctx context.Context, ev model.StatusEvent) {
	if _, err := s.store.AppendEvent(ctx, ev); err != nil {
		slog.Warn("failed to record audit event", "application_id", ev.ApplicationID, "event_type", ev.EventType, "error", err)
	}
}

// ── Ownership ──────────────────────────────────────────────────────────────

// ownApplication loads the application and checks the acting employee owns it.
func (s *Service) ownApplication(ctx context.Context, actor Actor, id string) (model.Application, error) {
	app, err := s.store.GetApplication(ctx, id)
	if err != nil {
		return model.Application{}, err
	}
	if app.EmployeeID != actor.ID {
		return model.Application{}, ErrForbidden
	}
	return app, nil
}

// employerApplication loads the application and checks the actor owns the job
// behind it.
func (s *Service) employerApplication(ctx context.Context, actor Actor, id string) (model.Application, error) {
	app, err := s.store.GetApplication(ctx, id)
	if err != nil {
		return model.Application{}, err
	}
	job, err := s.store.GetJob(ctx, app.JobID)
	if err != nil {
		return model.Application{}, err
	}
	if job.EmployerID != actor.ID {
		return model.Application{}, ErrForbidden
	}
	return app, nil
}

// authorizeParty admits the owning employee, the employer behind the job, or
// an administrator.
func (s *Service) authorizeParty(ctx context.Context, actor Actor, app model.Application) error {
	if actor.Role.IsAdmin() || app.EmployeeID == actor.ID {
		return nil
	}
	job, err := s.store.GetJob(ctx, app.JobID)
	if err == nil && job.EmployerID == actor.ID {
		return nil
	}
	return ErrForbidden
}
