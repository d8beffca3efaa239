package domain

import "time"

// ApplicationStatus enumerates the states of a pending application.
// Transitions are one-way: PENDING moves to exactly one terminal state.
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "PENDING"
	ApplicationApproved ApplicationStatus = "APPROVED"
	ApplicationRejected ApplicationStatus = "REJECTED"
)

// Terminal reports whether no further transition is permitted.
func (s ApplicationStatus) Terminal() bool {
	return s == ApplicationApproved || s == ApplicationRejected
}

// VerificationApplication is a student's identity-proof submission awaiting
// adjudication. Approval supersedes it with a new Account; the record is
// retained either way for audit.
type VerificationApplication struct {
	ID              string
	Name            string
	StudentID       string
	Email           string
	PasswordHash    string
	EvidenceURL     string
	Status          ApplicationStatus
	RejectionReason *string
	ReviewedBy      *string
	ReviewedAt      *time.Time
	CreatedAt       time.Time
}

// UpgradeApplication is an existing account's request for the driver role.
// At most one may be PENDING per account; rejected ones do not block
// resubmission.
type UpgradeApplication struct {
	ID              string
	AccountID       string
	EvidenceURL     string
	Status          ApplicationStatus
	RejectionReason *string
	ReviewedBy      *string
	ReviewedAt      *time.Time
	CreatedAt       time.Time
}

// UpgradeApplicationView embeds applicant details for the admin surface.
type UpgradeApplicationView struct {
	UpgradeApplication
	AccountName  string
	AccountEmail string
}
