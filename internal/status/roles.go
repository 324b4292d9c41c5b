package status

// Role-scoped checks. Each predicate gates a button in the mobile app and the
// matching service endpoint; the change behind it is still put through
// ValidateChange before anything is written.

// ── Employee actions ───────────────────────────────────────────────────────

// CanAcceptJob reports whether an employee may accept the employer's offer.
func CanAcceptJob(s ApplicationStatus) bool { return s == StatusSelected }

// CanDeclineJob reports whether an employee may decline, before or after
// accepting.
func CanDeclineJob(s ApplicationStatus) bool {
	return s == StatusSelected || s == StatusAccepted
}

// CanMarkNotInterested reports whether an employee may withdraw a fresh
// application.
func CanMarkNotInterested(s ApplicationStatus) bool { return s == StatusApplied }

// CanStartWork reports whether an employee may redeem a start code and begin
// the job.
func CanStartWork(s ApplicationStatus) bool { return s == StatusAccepted }

// CanCompleteWork reports whether an employee may hand the job back for
// completion.
func CanCompleteWork(s ApplicationStatus) bool { return s == StatusWorkInProgress }

// ── Employer actions ───────────────────────────────────────────────────────

// CanSelectEmployee reports whether an employer may select the applicant.
func CanSelectEmployee(s ApplicationStatus) bool { return s == StatusApplied }

// CanRejectApplication reports whether an employer may reject the applicant.
func CanRejectApplication(s ApplicationStatus) bool {
	return s == StatusApplied || s == StatusSelected
}

// CanGenerateOTP reports whether an employer may issue a start code.
func CanGenerateOTP(s ApplicationStatus) bool { return s == StatusAccepted }

// CanMarkWorkCompleted reports whether an employer may confirm the work is
// done.
func CanMarkWorkCompleted(s ApplicationStatus) bool { return s == StatusWorkInProgress }

// IsValidOTPFormat reports whether code looks like a handoff code: exactly
// six ASCII digits. Whether it matches the issued code is checked against
// the code store, not here.
func IsValidOTPFormat(code string) bool {
	if len(code) != 6 {
		return false
	}
	for i := 0; i < len(code); i++ {
		if code[i] < '0' || code[i] > '9' {
			return false
		}
	}
	return true
}
