package status_test

import (
	"testing"

	"gigmate/marketplace-service/internal/status"
)

// ── Employee predicates ────────────────────────────────────────────────────

func TestEmployeePredicates(t *testing.T) {
	cases := []struct {
		name string
		fn   func(status.ApplicationStatus) bool
		want map[status.ApplicationStatus]bool
	}{
		{"CanAcceptJob", status.CanAcceptJob, map[status.ApplicationStatus]bool{
			status.StatusSelected: true,
		}},
		{"CanDeclineJob", status.CanDeclineJob, map[status.ApplicationStatus]bool{
			status.StatusSelected: true,
			status.StatusAccepted: true,
		}},
		{"CanMarkNotInterested", status.CanMarkNotInterested, map[status.ApplicationStatus]bool{
			status.StatusApplied: true,
		}},
		{"CanStartWork", status.CanStartWork, map[status.ApplicationStatus]bool{
			status.StatusAccepted: true,
		}},
		{"CanCompleteWork", status.CanCompleteWork, map[status.ApplicationStatus]bool{
			status.StatusWorkInProgress: true,
		}},
	}
	for _, c := range cases {
		for _, s := range status.AllStatuses() {
			if got := c.fn(s); got != c.want[s] {
				t.Errorf("%s(%s) = %v, want %v", c.name, s, got, c.want[s])
			}
		}
	}
}

// ── Employer predicates ────────────────────────────────────────────────────

func TestEmployerPredicates(t *testing.T) {
	cases := []struct {
		name string
		fn   func(status.ApplicationStatus) bool
		want map[status.ApplicationStatus]bool
	}{
		{"CanSelectEmployee", status.CanSelectEmployee, map[status.ApplicationStatus]bool{
			status.StatusApplied: true,
		}},
		{"CanRejectApplication", status.CanRejectApplication, map[status.ApplicationStatus]bool{
			status.StatusApplied:  true,
			status.StatusSelected: true,
		}},
		{"CanGenerateOTP", status.CanGenerateOTP, map[status.ApplicationStatus]bool{
			status.StatusAccepted: true,
		}},
		{"CanMarkWorkCompleted", status.CanMarkWorkCompleted, map[status.ApplicationStatus]bool{
			status.StatusWorkInProgress: true,
		}},
	}
	for _, c := range cases {
		for _, s := range status.AllStatuses() {
			if got := c.fn(s); got != c.want[s] {
				t.Errorf("%s(%s) = %v, want %v", c.name, s, got, c.want[s])
			}
		}
	}
}

// ── IsValidOTPFormat ───────────────────────────────────────────────────────

func TestIsValidOTPFormat_Valid(t *testing.T) {
	for _, code := range []string{"123456", "000000", "999999", "010203"} {
		if !status.IsValidOTPFormat(code) {
			t.Errorf("IsValidOTPFormat(%q) should be true", code)
		}
	}
}

func TestIsValidOTPFormat_Invalid(t *testing.T) {
	invalid := []string{
		"",
		"12345",       // too short
		"1234567",     // too long
		"12345a",
		"a23456",
		"12 456",
		"12-456",
		" 123456",
		"123456 ",
		"12.456",
		"１２３４５６", // fullwidth digits are not ASCII
	}
	for _, code := range invalid {
		if status.IsValidOTPFormat(code) {
			t.Errorf("IsValidOTPFormat(%q) should be false", code)
		}
	}
}
