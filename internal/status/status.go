// Package status defines the lifecycle rules for gig applications.
//
// Status graph (normal employee/employer actions):
//
//	APPLIED ──► SELECTED ──► ACCEPTED ──► WORK_IN_PROGRESS ──► COMPLETED
//	   │ │          │ │          │
//	   │ │          │ └──────────┴──► DECLINED
//	   │ └──────────┴───► REJECTED
//	   └───► NOT_INTERESTED
//
// COMPLETED, REJECTED, DECLINED and NOT_INTERESTED are terminal states.
// Changes outside this graph are either invalid or routed to administrator
// review; ValidateChange in rules.go makes that call.
package status

import "fmt"

// ApplicationStatus values mirror the application_status enum in PostgreSQL.
type ApplicationStatus string

const (
	StatusApplied        ApplicationStatus = "APPLIED"
	StatusSelected       ApplicationStatus = "SELECTED"
	StatusAccepted       ApplicationStatus = "ACCEPTED"
	StatusWorkInProgress ApplicationStatus = "WORK_IN_PROGRESS"
	StatusCompleted      ApplicationStatus = "COMPLETED"
	StatusRejected       ApplicationStatus = "REJECTED"
	StatusDeclined       ApplicationStatus = "DECLINED"
	StatusNotInterested  ApplicationStatus = "NOT_INTERESTED"
)

// allStatuses is kept in lifecycle order.
var allStatuses = []ApplicationStatus{
	StatusApplied,
	StatusSelected,
	StatusAccepted,
	StatusWorkInProgress,
	StatusCompleted,
	StatusRejected,
	StatusDeclined,
	StatusNotInterested,
}

// AllStatuses returns every known status in lifecycle order.
func AllStatuses() []ApplicationStatus {
	out := make([]ApplicationStatus, len(allStatuses))
	copy(out, allStatuses)
	return out
}

// ParseStatus converts a raw string to an ApplicationStatus, returning an
// error for unknown values.
func ParseStatus(s string) (ApplicationStatus, error) {
	st := ApplicationStatus(s)
	switch st {
	case StatusApplied, StatusSelected, StatusAccepted, StatusWorkInProgress,
		StatusCompleted, StatusRejected, StatusDeclined, StatusNotInterested:
		return st, nil
	}
	return "", fmt.Errorf("unknown application status %q", s)
}

// Valid reports whether s is one of the eight defined statuses.
func (s ApplicationStatus) Valid() bool {
	_, err := ParseStatus(string(s))
	return err == nil
}

// StatusCategory buckets statuses for dashboard filtering. Every status maps
// to exactly one category.
type StatusCategory string

const (
	CategoryPending   StatusCategory = "PENDING"
	CategoryActive    StatusCategory = "ACTIVE"
	CategoryCompleted StatusCategory = "COMPLETED"
	CategoryRejected  StatusCategory = "REJECTED"
)

// ParseCategory converts a raw string to a StatusCategory, returning an
// error for unknown values.
func ParseCategory(s string) (StatusCategory, error) {
	c := StatusCategory(s)
	switch c {
	case CategoryPending, CategoryActive, CategoryCompleted, CategoryRejected:
		return c, nil
	}
	return "", fmt.Errorf("unknown status category %q", s)
}

// Category returns the dashboard bucket for s.
func (s ApplicationStatus) Category() StatusCategory {
	switch s {
	case StatusApplied:
		return CategoryPending
	case StatusSelected, StatusAccepted, StatusWorkInProgress:
		return CategoryActive
	case StatusCompleted:
		return CategoryCompleted
	}
	return CategoryRejected // REJECTED, DECLINED, NOT_INTERESTED
}

// DisplayText returns the label shown in the app. Decision reasons embed
// these labels, so a reworded label flows into review queues unchanged.
func (s ApplicationStatus) DisplayText() string {
	switch s {
	case StatusApplied:
		return "Applied"
	case StatusSelected:
		return "Selected"
	case StatusAccepted:
		return "Accepted"
	case StatusWorkInProgress:
		return "Work in progress"
	case StatusCompleted:
		return "Completed"
	case StatusRejected:
		return "Rejected"
	case StatusDeclined:
		return "Declined"
	case StatusNotInterested:
		return "Not interested"
	}
	return string(s)
}

// Priority orders applications on the employee dashboard; higher sorts first.
func (s ApplicationStatus) Priority() int {
	switch s {
	case StatusWorkInProgress:
		return 5
	case StatusAccepted:
		return 4
	case StatusSelected:
		return 3
	case StatusApplied:
		return 2
	case StatusCompleted:
		return 1
	}
	return 0 // REJECTED, DECLINED, NOT_INTERESTED
}

// IsActiveWork reports whether the application sits in the working pipeline
// between selection and completion.
func (s ApplicationStatus) IsActiveWork() bool {
	switch s {
	case StatusSelected, StatusAccepted, StatusWorkInProgress:
		return true
	}
	return false
}

// ShowInActiveJobs reports whether the application belongs on the employee's
// active-jobs screen.
func (s ApplicationStatus) ShowInActiveJobs() bool {
	switch s {
	case StatusApplied, StatusSelected, StatusAccepted, StatusWorkInProgress:
		return true
	}
	return false
}
