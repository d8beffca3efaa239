package domain

import "time"

// AccountCreatedEvent represents the payload for rides.account.created messages.
type AccountCreatedEvent struct {
	EventID       string
	AccountID     string
	Name          string
	Email         string
	Role          string
	Source        string
	ApplicationID *string
	CreatedAt     time.Time
	Metadata      map[string]any
}

// DriverUpgradedEvent represents the payload for rides.account.upgraded messages.
type DriverUpgradedEvent struct {
	EventID       string
	AccountID     string
	ApplicationID string
	ApprovedBy    string
	UpgradedAt    time.Time
	Metadata      map[string]any
}

// WarningIssuedEvent represents the payload for rides.account.warned messages.
type WarningIssuedEvent struct {
	EventID   string
	AccountID string
	ReportID  string
	Reason    string
	IssuedBy  string
	IssuedAt  time.Time
	Metadata  map[string]any
}

// AccountSuspendedEvent represents the payload for rides.account.suspended messages.
type AccountSuspendedEvent struct {
	EventID        string
	AccountID      string
	ReportID       string
	SuspendedBy    string
	SuspendedAt    time.Time
	RidesCancelled int
	Metadata       map[string]any
}

// ReportResolvedEvent represents the payload for rides.report.resolved messages.
type ReportResolvedEvent struct {
	EventID    string
	ReportID   string
	DriverID   string
	Outcome    string
	ResolvedBy string
	ResolvedAt time.Time
	Metadata   map[string]any
}
