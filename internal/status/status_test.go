package status_test

import (
	"testing"

	"gigmate/marketplace-service/internal/status"
)

// ── ParseStatus ────────────────────────────────────────────────────────────

func TestParseStatus_ValidValues(t *testing.T) {
	valid := []string{
		"APPLIED", "SELECTED", "ACCEPTED", "WORK_IN_PROGRESS",
		"COMPLETED", "REJECTED", "DECLINED", "NOT_INTERESTED",
	}
	for _, s := range valid {
		got, err := status.ParseStatus(s)
		if err != nil {
			t.Errorf("ParseStatus(%q) returned unexpected error: %v", s, err)
		}
		if string(got) != s {
			t.Errorf("ParseStatus(%q) = %q, want %q", s, got, s)
		}
	}
}

func TestParseStatus_InvalidValue(t *testing.T) {
	_, err := status.ParseStatus("UNKNOWN")
	if err == nil {
		t.Error("ParseStatus(\"UNKNOWN\") expected error, got nil")
	}
}

func TestParseStatus_EmptyString(t *testing.T) {
	_, err := status.ParseStatus("")
	if err == nil {
		t.Error("ParseStatus(\"\") expected error, got nil")
	}
}

// ── AllStatuses ────────────────────────────────────────────────────────────

func TestAllStatuses_LifecycleOrder(t *testing.T) {
	want := []status.ApplicationStatus{
		status.StatusApplied,
		status.StatusSelected,
		status.StatusAccepted,
		status.StatusWorkInProgress,
		status.StatusCompleted,
		status.StatusRejected,
		status.StatusDeclined,
		status.StatusNotInterested,
	}
	got := status.AllStatuses()
	if len(got) != len(want) {
		t.Fatalf("AllStatuses() returned %d statuses, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("AllStatuses()[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestAllStatuses_ReturnsCopy(t *testing.T) {
	first := status.AllStatuses()
	first[0] = status.StatusCompleted
	if status.AllStatuses()[0] != status.StatusApplied {
		t.Error("AllStatuses() must return an independent copy")
	}
}

// ── Valid ──────────────────────────────────────────────────────────────────

func TestValid(t *testing.T) {
	for _, s := range status.AllStatuses() {
		if !s.Valid() {
			t.Errorf("Valid(%s) should be true", s)
		}
	}
	for _, s := range []status.ApplicationStatus{"", "HIRED", "applied", "APPLIED "} {
		if s.Valid() {
			t.Errorf("Valid(%q) should be false", string(s))
		}
	}
}

// ── DisplayText ────────────────────────────────────────────────────────────

func TestDisplayText(t *testing.T) {
	want := map[status.ApplicationStatus]string{
		status.StatusApplied:        "Applied",
		status.StatusSelected:       "Selected",
		status.StatusAccepted:       "Accepted",
		status.StatusWorkInProgress: "Work in progress",
		status.StatusCompleted:      "Completed",
		status.StatusRejected:       "Rejected",
		status.StatusDeclined:       "Declined",
		status.StatusNotInterested:  "Not interested",
	}
	for s, text := range want {
		if got := s.DisplayText(); got != text {
			t.Errorf("DisplayText(%s) = %q, want %q", s, got, text)
		}
	}
}

// ── Category ───────────────────────────────────────────────────────────────

func TestCategory_TotalMapping(t *testing.T) {
	want := map[status.ApplicationStatus]status.StatusCategory{
		status.StatusApplied:        status.CategoryPending,
		status.StatusSelected:       status.CategoryActive,
		status.StatusAccepted:       status.CategoryActive,
		status.StatusWorkInProgress: status.CategoryActive,
		status.StatusCompleted:      status.CategoryCompleted,
		status.StatusRejected:       status.CategoryRejected,
		status.StatusDeclined:       status.CategoryRejected,
		status.StatusNotInterested:  status.CategoryRejected,
	}
	for s, cat := range want {
		if got := s.Category(); got != cat {
			t.Errorf("Category(%s) = %s, want %s", s, got, cat)
		}
	}
}

func TestParseCategory(t *testing.T) {
	for _, c := range []string{"PENDING", "ACTIVE", "COMPLETED", "REJECTED"} {
		got, err := status.ParseCategory(c)
		if err != nil {
			t.Errorf("ParseCategory(%q) returned unexpected error: %v", c, err)
		}
		if string(got) != c {
			t.Errorf("ParseCategory(%q) = %q, want %q", c, got, c)
		}
	}
	if _, err := status.ParseCategory("archive"); err == nil {
		t.Error("ParseCategory(\"archive\") expected error, got nil")
	}
}

// ── Priority ───────────────────────────────────────────────────────────────

func TestPriority_ExactValues(t *testing.T) {
	want := map[status.ApplicationStatus]int{
		status.StatusWorkInProgress: 5,
		status.StatusAccepted:       4,
		status.StatusSelected:       3,
		status.StatusApplied:        2,
		status.StatusCompleted:      1,
		status.StatusRejected:       0,
		status.StatusDeclined:       0,
		status.StatusNotInterested:  0,
	}
	for s, p := range want {
		if got := s.Priority(); got != p {
			t.Errorf("Priority(%s) = %d, want %d", s, got, p)
		}
	}
}

func TestPriority_ActivePipelineOutranksEverythingElse(t *testing.T) {
	pipeline := []status.ApplicationStatus{
		status.StatusApplied, status.StatusSelected,
		status.StatusAccepted, status.StatusWorkInProgress,
	}
	closed := []status.ApplicationStatus{
		status.StatusCompleted, status.StatusRejected,
		status.StatusDeclined, status.StatusNotInterested,
	}
	for _, live := range pipeline {
		for _, done := range closed {
			if live.Priority() <= done.Priority() {
				t.Errorf("Priority(%s)=%d should exceed Priority(%s)=%d", live, live.Priority(), done, done.Priority())
			}
		}
	}
}

// ── IsActiveWork / ShowInActiveJobs ────────────────────────────────────────

func TestIsActiveWork(t *testing.T) {
	active := map[status.ApplicationStatus]bool{
		status.StatusSelected:       true,
		status.StatusAccepted:       true,
		status.StatusWorkInProgress: true,
	}
	for _, s := range status.AllStatuses() {
		if got := s.IsActiveWork(); got != active[s] {
			t.Errorf("IsActiveWork(%s) = %v, want %v", s, got, active[s])
		}
	}
}

func TestShowInActiveJobs(t *testing.T) {
	shown := map[status.ApplicationStatus]bool{
		status.StatusApplied:        true,
		status.StatusSelected:       true,
		status.StatusAccepted:       true,
		status.StatusWorkInProgress: true,
	}
	for _, s := range status.AllStatuses() {
		if got := s.ShowInActiveJobs(); got != shown[s] {
			t.Errorf("ShowInActiveJobs(%s) = %v, want %v", s, got, shown[s])
		}
	}
}
