package domain

import "time"

// ReportStatus enumerates the states of an abuse report. A report is
// resolved exactly once: PENDING moves to one terminal state and the
// terminal states are immutable.
type ReportStatus string

const (
	ReportPending        ReportStatus = "PENDING"
	ReportWarningIssued  ReportStatus = "WARNING_ISSUED"
	ReportAccountDeleted ReportStatus = "ACCOUNT_DELETED"
	ReportDismissed      ReportStatus = "DISMISSED"
)

// Terminal reports whether the status forbids further adjudication.
func (s ReportStatus) Terminal() bool {
	return s != ReportPending
}

// ReportReason enumerates the complaint categories a rider can file.
type ReportReason string

const (
	ReasonUnsafeDriving  ReportReason = "UNSAFE_DRIVING"
	ReasonHarassment     ReportReason = "HARASSMENT"
	ReasonNoShow         ReportReason = "NO_SHOW"
	ReasonOvercharging   ReportReason = "OVERCHARGING"
	ReasonVehicleProblem ReportReason = "VEHICLE_PROBLEM"
	ReasonOther          ReportReason = "OTHER"
)

// Valid reports whether the reason is one of the closed set.
func (r ReportReason) Valid() bool {
	switch r {
	case ReasonUnsafeDriving, ReasonHarassment, ReasonNoShow, ReasonOvercharging, ReasonVehicleProblem, ReasonOther:
		return true
	}
	return false
}

// Report is an abuse complaint filed by a passenger against a driver,
// optionally bound to the ride it happened on.
type Report struct {
	ID          string
	ReporterID  string
	DriverID    string
	RideID      *string
	Reason      ReportReason
	Description string
	Status      ReportStatus
	AdminNote   string
	ReviewedBy  *string
	ReviewedAt  *time.Time
	CreatedAt   time.Time
}

// PartySummary is the compact account view embedded in report listings.
type PartySummary struct {
	ID        string
	Name      string
	Email     string
	Suspended bool
}

// RideSummary is the compact ride view embedded in report listings.
type RideSummary struct {
	ID          string
	Origin      string
	Destination string
	Status      RideStatus
}

// ReportView joins a report with reporter, driver, and ride summaries for
// the admin query surface.
type ReportView struct {
	Report
	Reporter PartySummary
	Driver   PartySummary
	Ride     *RideSummary
}
