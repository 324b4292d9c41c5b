package status

import "fmt"

// validTransitions lists every (from → to) pair reachable through normal
// employee and employer actions.
var validTransitions = map[ApplicationStatus][]ApplicationStatus{
	StatusApplied:        {StatusSelected, StatusRejected, StatusNotInterested},
	StatusSelected:       {StatusAccepted, StatusDeclined, StatusRejected},
	StatusAccepted:       {StatusWorkInProgress, StatusDeclined},
	StatusWorkInProgress: {StatusCompleted},
	// COMPLETED, REJECTED, DECLINED and NOT_INTERESTED are terminal: no outgoing transitions
}

// lockingStatuses marks the statuses that freeze an application once reached.
// The store sets is_status_locked when writing one of these; later changes on
// a locked application route to an administrator.
var lockingStatuses = map[ApplicationStatus]bool{
	StatusAccepted:       true,
	StatusWorkInProgress: true,
	StatusCompleted:      true,
}

// adminRequiredChanges lists (from → to) pairs that are never self-service,
// even when nothing else objects. The target set widens as the application
// advances: unwinding a completed job touches more state than unwinding an
// acceptance.
var adminRequiredChanges = map[ApplicationStatus][]ApplicationStatus{
	StatusAccepted:       {StatusApplied, StatusSelected, StatusRejected},
	StatusWorkInProgress: {StatusApplied, StatusSelected, StatusAccepted, StatusRejected},
	StatusCompleted:      {StatusApplied, StatusSelected, StatusAccepted, StatusWorkInProgress, StatusRejected},
}

// Outcome classifies a requested status change.
type Outcome string

const (
	OutcomeAllowed          Outcome = "ALLOWED"
	OutcomeRequiresApproval Outcome = "REQUIRES_ADMIN_APPROVAL"
	OutcomeInvalid          Outcome = "INVALID"
)

// Decision is the engine's verdict on one requested change. RequiresApproval
// is a normal workflow outcome that feeds the review queue, not an error;
// Invalid means the caller asked for something the lifecycle can never do.
// Reason carries display text for review queues and API payloads.
type Decision struct {
	Outcome Outcome `json:"outcome"`
	Reason  string  `json:"reason,omitempty"`
}

// ValidateChange classifies a requested status change. Rules are evaluated in
// order and the first match wins:
//
//  1. administrators may change anything
//  2. terminal statuses only change under administrator review
//  3. locked applications only change under administrator review
//  4. pairs in adminRequiredChanges route to administrator review
//  5. requesting the current status again is a no-op
//  6. pairs missing from validTransitions are invalid
//  7. everything left is allowed
//
// The engine is pure: the caller reads the persisted status and lock flag,
// decides what to pass, and owns the write that follows.
func ValidateChange(current, requested ApplicationStatus, isLocked, isAdmin bool) Decision {
	if isAdmin {
		return Decision{Outcome: OutcomeAllowed}
	}
	if !current.Valid() {
		return Decision{Outcome: OutcomeInvalid, Reason: fmt.Sprintf("unknown application status %q", string(current))}
	}
	if !requested.Valid() {
		return Decision{Outcome: OutcomeInvalid, Reason: fmt.Sprintf("unknown application status %q", string(requested))}
	}
	if current.IsTerminal() && requested != current {
		return Decision{
			Outcome: OutcomeRequiresApproval,
			Reason:  fmt.Sprintf("application is already %s and can only be changed by an administrator", current.DisplayText()),
		}
	}
	if isLocked && current.IsLocking() {
		return Decision{
			Outcome: OutcomeRequiresApproval,
			Reason:  "application is locked and can only be changed by an administrator",
		}
	}
	if containsStatus(adminRequiredChanges[current], requested) {
		return Decision{
			Outcome: OutcomeRequiresApproval,
			Reason:  fmt.Sprintf("changing %s to %s requires administrator approval", current.DisplayText(), requested.DisplayText()),
		}
	}
	if requested == current {
		return Decision{Outcome: OutcomeAllowed}
	}
	if !containsStatus(validTransitions[current], requested) {
		return Decision{
			Outcome: OutcomeInvalid,
			Reason:  fmt.Sprintf("cannot change %s to %s", current.DisplayText(), requested.DisplayText()),
		}
	}
	return Decision{Outcome: OutcomeAllowed}
}

// NextStatuses returns the statuses reachable from s through normal actions.
// Terminal statuses return an empty slice.
func NextStatuses(s ApplicationStatus) []ApplicationStatus {
	next := validTransitions[s]
	out := make([]ApplicationStatus, len(next))
	copy(out, next)
	return out
}

// IsTerminal reports whether s has no outgoing transitions.
func (s ApplicationStatus) IsTerminal() bool {
	_, ok := validTransitions[s]
	return !ok
}

// IsLocking reports whether reaching s freezes the application.
func (s ApplicationStatus) IsLocking() bool { return lockingStatuses[s] }

// ShouldLock tells the store whether to set is_status_locked when writing s.
func ShouldLock(s ApplicationStatus) bool { return s.IsLocking() }

// RequiresOTP reports whether the change is gated by a verified start code.
// Only the accepted → work-in-progress handoff is; the completion hand-back
// is verified by the application service, not by the rule table.
func RequiresOTP(from, to ApplicationStatus) bool {
	return from == StatusAccepted && to == StatusWorkInProgress
}

func containsStatus(list []ApplicationStatus, s ApplicationStatus) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
