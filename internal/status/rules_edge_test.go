package status_test

// ── Additional edge-case tests ────────────────────────────────────────────
//
// This file extends rules_test.go with exhaustive checks added alongside the
// review-queue and start-code work. The core decision matrix is already
// covered in rules_test.go.

import (
	"strings"
	"testing"

	"gigmate/marketplace-service/internal/status"
)

// ParseStatus must be case-sensitive; lowercase variants must not be valid.
func TestParseStatus_CaseSensitive(t *testing.T) {
	lowercase := []string{
		"applied", "selected", "accepted", "work_in_progress",
		"completed", "rejected", "declined", "not_interested",
	}
	for _, s := range lowercase {
		_, err := status.ParseStatus(s)
		if err == nil {
			t.Errorf("ParseStatus(%q) should reject lowercase value, got nil error", s)
		}
	}
}

// ParseStatus must reject whitespace-padded strings.
func TestParseStatus_WithWhitespace(t *testing.T) {
	padded := []string{" APPLIED", "APPLIED ", " APPLIED ", "WORK_IN_PROGRESS\n"}
	for _, s := range padded {
		_, err := status.ParseStatus(s)
		if err == nil {
			t.Errorf("ParseStatus(%q) should reject padded value, got nil error", s)
		}
	}
}

// All eight constants must round-trip through ParseStatus without error.
func TestParseStatus_AllConstantsRoundTrip(t *testing.T) {
	for _, s := range status.AllStatuses() {
		got, err := status.ParseStatus(string(s))
		if err != nil {
			t.Errorf("ParseStatus(%q) unexpected error: %v", s, err)
		}
		if got != s {
			t.Errorf("ParseStatus(%q) = %q, want %q", s, got, s)
		}
	}
}

// Unrecognized statuses must classify as INVALID rather than panic or fall
// through to an allowed write.
func TestValidateChange_UnknownStatusInvalid(t *testing.T) {
	cases := []struct {
		current   status.ApplicationStatus
		requested status.ApplicationStatus
	}{
		{"", status.StatusApplied},
		{status.StatusApplied, ""},
		{"HIRED", status.StatusApplied},
		{status.StatusApplied, "archived"},
		{"applied", "selected"},
	}
	for _, c := range cases {
		d := status.ValidateChange(c.current, c.requested, false, false)
		if d.Outcome != status.OutcomeInvalid {
			t.Errorf("ValidateChange(%q → %q) = %s, want INVALID", string(c.current), string(c.requested), d.Outcome)
		}
	}
}

// The administrator bypass is checked before anything else, including the
// unknown-status guard.
func TestValidateChange_AdminBypassBeforeUnknownGuard(t *testing.T) {
	d := status.ValidateChange("HIRED", "archived", true, true)
	if d.Outcome != status.OutcomeAllowed {
		t.Errorf("ValidateChange(unknown pair, admin) = %s, want ALLOWED", d.Outcome)
	}
}

// Exactly one edge in the whole matrix is gated by a start code.
func TestRequiresOTP_OnlyAcceptedToWorkInProgress(t *testing.T) {
	for _, from := range status.AllStatuses() {
		for _, to := range status.AllStatuses() {
			want := from == status.StatusAccepted && to == status.StatusWorkInProgress
			if got := status.RequiresOTP(from, to); got != want {
				t.Errorf("RequiresOTP(%s → %s) = %v, want %v", from, to, got, want)
			}
		}
	}
}

// The completion hand-back is deliberately not in the gated set: the
// application service checks the completion code there instead.
func TestRequiresOTP_CompletionEdgeNotGated(t *testing.T) {
	if status.RequiresOTP(status.StatusWorkInProgress, status.StatusCompleted) {
		t.Error("RequiresOTP(WORK_IN_PROGRESS → COMPLETED) must be false")
	}
}

// ── Locking and terminal sets ──────────────────────────────────────────────

func TestIsLocking_Membership(t *testing.T) {
	locking := map[status.ApplicationStatus]bool{
		status.StatusAccepted:       true,
		status.StatusWorkInProgress: true,
		status.StatusCompleted:      true,
	}
	for _, s := range status.AllStatuses() {
		if got := s.IsLocking(); got != locking[s] {
			t.Errorf("IsLocking(%s) = %v, want %v", s, got, locking[s])
		}
	}
}

// ShouldLock is the write-time view of the same set; the two must never
// drift apart.
func TestShouldLock_MatchesIsLocking(t *testing.T) {
	for _, s := range status.AllStatuses() {
		if status.ShouldLock(s) != s.IsLocking() {
			t.Errorf("ShouldLock(%s) and IsLocking(%s) disagree", s, s)
		}
	}
}

func TestIsTerminal_Membership(t *testing.T) {
	terminal := map[status.ApplicationStatus]bool{
		status.StatusCompleted:     true,
		status.StatusRejected:      true,
		status.StatusDeclined:      true,
		status.StatusNotInterested: true,
	}
	for _, s := range status.AllStatuses() {
		if got := s.IsTerminal(); got != terminal[s] {
			t.Errorf("IsTerminal(%s) = %v, want %v", s, got, terminal[s])
		}
	}
}

// ── Review-set growth ──────────────────────────────────────────────────────

// reviewTargets collects every different target that routes to review from a
// given unlocked status for a non-admin caller.
func reviewTargets(from status.ApplicationStatus) map[status.ApplicationStatus]bool {
	out := make(map[status.ApplicationStatus]bool)
	for _, to := range status.AllStatuses() {
		if to == from {
			continue
		}
		if status.ValidateChange(from, to, false, false).Outcome == status.OutcomeRequiresApproval {
			out[to] = true
		}
	}
	return out
}

// The further the work has advanced, the more targets need an administrator:
// three from ACCEPTED, four from WORK_IN_PROGRESS, and every different
// target once COMPLETED (the terminal guard takes over there).
func TestValidateChange_ReviewSetWidensAsWorkAdvances(t *testing.T) {
	accepted := reviewTargets(status.StatusAccepted)
	inProgress := reviewTargets(status.StatusWorkInProgress)
	completed := reviewTargets(status.StatusCompleted)

	if len(accepted) != 3 {
		t.Errorf("review targets from ACCEPTED = %d, want 3", len(accepted))
	}
	if len(inProgress) != 4 {
		t.Errorf("review targets from WORK_IN_PROGRESS = %d, want 4", len(inProgress))
	}
	if len(completed) != 7 {
		t.Errorf("review targets from COMPLETED = %d, want 7 (every different target)", len(completed))
	}
	for to := range accepted {
		if !inProgress[to] {
			t.Errorf("target %s needs review from ACCEPTED but not from WORK_IN_PROGRESS", to)
		}
	}
	for to := range inProgress {
		if !completed[to] {
			t.Errorf("target %s needs review from WORK_IN_PROGRESS but not from COMPLETED", to)
		}
	}
}

// Review reasons are written with display text, never raw enum values.
func TestValidateChange_ReasonsUseDisplayText(t *testing.T) {
	d := status.ValidateChange(status.StatusWorkInProgress, status.StatusApplied, false, false)
	if d.Outcome != status.OutcomeRequiresApproval {
		t.Fatalf("ValidateChange(WORK_IN_PROGRESS → APPLIED, unlocked) = %s, want REQUIRES_ADMIN_APPROVAL", d.Outcome)
	}
	if strings.Contains(d.Reason, "WORK_IN_PROGRESS") {
		t.Errorf("reason %q leaks the raw enum value", d.Reason)
	}
	if !strings.Contains(d.Reason, "Work in progress") {
		t.Errorf("reason %q should cite the display text", d.Reason)
	}
}
