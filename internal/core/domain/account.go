package domain

import "time"

// AccountRole enumerates the privilege levels an account can hold.
type AccountRole string

const (
	RolePassenger AccountRole = "passenger"
	RoleDriver    AccountRole = "driver"
	RoleAdmin     AccountRole = "admin"
)

// Valid reports whether the role is one of the closed set.
func (r AccountRole) Valid() bool {
	switch r {
	case RolePassenger, RoleDriver, RoleAdmin:
		return true
	}
	return false
}

// Account mirrors the persisted representation in the accounts table.
// Accounts are never physically deleted; suspension is the terminal
// penalty and flips Suspended while keeping the row for audit.
type Account struct {
	ID           string
	Name         string
	Email        string
	StudentID    *string
	PasswordHash string
	Role         AccountRole
	Suspended    bool
	CreatedAt    time.Time
}

// Warning is an append-only disciplinary note attached to an account.
// Warnings are advisory: accumulating them triggers no automatic
// suspension, every suspension is a distinct admin decision.
type Warning struct {
	ID        string
	AccountID string
	Reason    string
	ReportID  string
	IssuedAt  time.Time
}
