package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/rodriguesaradhan-web/kozhigo/internal/core/domain"
	"github.com/rodriguesaradhan-web/kozhigo/internal/usecase"
)

// ErrorResponse represents a generic error payload with trace ID for debugging.
type ErrorResponse struct {
	Error   string `json:"error"`
	TraceID string `json:"trace_id,omitempty"`
}

// NewErrorResponse creates an error response with trace ID from context
func NewErrorResponse(c *gin.Context, errorMsg string) ErrorResponse {
	traceID, _ := c.Get("trace_id")
	traceIDStr, _ := traceID.(string)

	return ErrorResponse{
		Error:   errorMsg,
		TraceID: traceIDStr,
	}
}

// MessageResponse represents a simple message payload.
type MessageResponse struct {
	Message string `json:"message"`
}

// AccountSummary describes a minimal view of an account returned by the API.
type AccountSummary struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	StudentID *string   `json:"student_id,omitempty"`
	Role      string    `json:"role"`
	Suspended bool      `json:"suspended"`
	CreatedAt time.Time `json:"created_at"`
}

func newAccountSummary(account *domain.Account) AccountSummary {
	return AccountSummary{
		ID:        account.ID,
		Name:      account.Name,
		Email:     account.Email,
		StudentID: account.StudentID,
		Role:      string(account.Role),
		Suspended: account.Suspended,
		CreatedAt: account.CreatedAt,
	}
}

// AuthLoginRequest defines the payload for the login endpoint.
type AuthLoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthLoginResponse describes the response returned for a successful login.
type AuthLoginResponse struct {
	AccessToken string         `json:"access_token"`
	TokenType   string         `json:"token_type"`
	Account     AccountSummary `json:"account"`
}

// RegistrationRequest defines the direct passenger registration payload.
type RegistrationRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=10"`
}

// RegistrationResponse contains the created account.
type RegistrationResponse struct {
	Account AccountSummary `json:"account"`
}

// VerificationView describes a student verification application.
type VerificationView struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	StudentID       string     `json:"student_id"`
	Email           string     `json:"email"`
	EvidenceURL     string     `json:"evidence_url"`
	Status          string     `json:"status"`
	RejectionReason *string    `json:"rejection_reason,omitempty"`
	ReviewedBy      *string    `json:"reviewed_by,omitempty"`
	ReviewedAt      *time.Time `json:"reviewed_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

func newVerificationView(app domain.VerificationApplication) VerificationView {
	return VerificationView{
		ID:              app.ID,
		Name:            app.Name,
		StudentID:       app.StudentID,
		Email:           app.Email,
		EvidenceURL:     app.EvidenceURL,
		Status:          string(app.Status),
		RejectionReason: app.RejectionReason,
		ReviewedBy:      app.ReviewedBy,
		ReviewedAt:      app.ReviewedAt,
		CreatedAt:       app.CreatedAt,
	}
}

// UpgradeView describes a driver upgrade application with applicant context.
type UpgradeView struct {
	ID              string     `json:"id"`
	AccountID       string     `json:"account_id"`
	AccountName     string     `json:"account_name,omitempty"`
	AccountEmail    string     `json:"account_email,omitempty"`
	EvidenceURL     string     `json:"evidence_url"`
	Status          string     `json:"status"`
	RejectionReason *string    `json:"rejection_reason,omitempty"`
	ReviewedBy      *string    `json:"reviewed_by,omitempty"`
	ReviewedAt      *time.Time `json:"reviewed_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

func newUpgradeView(app domain.UpgradeApplication) UpgradeView {
	return UpgradeView{
		ID:              app.ID,
		AccountID:       app.AccountID,
		EvidenceURL:     app.EvidenceURL,
		Status:          string(app.Status),
		RejectionReason: app.RejectionReason,
		ReviewedBy:      app.ReviewedBy,
		ReviewedAt:      app.ReviewedAt,
		CreatedAt:       app.CreatedAt,
	}
}

func newUpgradeViewWithApplicant(view domain.UpgradeApplicationView) UpgradeView {
	out := newUpgradeView(view.UpgradeApplication)
	out.AccountName = view.AccountName
	out.AccountEmail = view.AccountEmail
	return out
}

// PartyView is the compact account view embedded in report listings.
type PartyView struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Suspended bool   `json:"suspended"`
}

// RideRefView is the compact ride view embedded in report listings.
type RideRefView struct {
	ID          string `json:"id"`
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	Status      string `json:"status"`
}

// ReportView describes a filed report.
type ReportView struct {
	ID          string       `json:"id"`
	ReporterID  string       `json:"reporter_id"`
	DriverID    string       `json:"driver_id"`
	RideID      *string      `json:"ride_id,omitempty"`
	Reason      string       `json:"reason"`
	Description string       `json:"description"`
	Status      string       `json:"status"`
	AdminNote   string       `json:"admin_note,omitempty"`
	ReviewedBy  *string      `json:"reviewed_by,omitempty"`
	ReviewedAt  *time.Time   `json:"reviewed_at,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	Reporter    *PartyView   `json:"reporter,omitempty"`
	Driver      *PartyView   `json:"driver,omitempty"`
	Ride        *RideRefView `json:"ride,omitempty"`
}

func newReportView(report domain.Report) ReportView {
	return ReportView{
		ID:          report.ID,
		ReporterID:  report.ReporterID,
		DriverID:    report.DriverID,
		RideID:      report.RideID,
		Reason:      string(report.Reason),
		Description: report.Description,
		Status:      string(report.Status),
		AdminNote:   report.AdminNote,
		ReviewedBy:  report.ReviewedBy,
		ReviewedAt:  report.ReviewedAt,
		CreatedAt:   report.CreatedAt,
	}
}

func newReportViewWithContext(view domain.ReportView) ReportView {
	out := newReportView(view.Report)
	reporter := PartyView{ID: view.Reporter.ID, Name: view.Reporter.Name, Email: view.Reporter.Email, Suspended: view.Reporter.Suspended}
	driver := PartyView{ID: view.Driver.ID, Name: view.Driver.Name, Email: view.Driver.Email, Suspended: view.Driver.Suspended}
	out.Reporter = &reporter
	out.Driver = &driver
	if view.Ride != nil {
		out.Ride = &RideRefView{
			ID:          view.Ride.ID,
			Origin:      view.Ride.Origin,
			Destination: view.Ride.Destination,
			Status:      string(view.Ride.Status),
		}
	}
	return out
}

// ReportRequest defines the payload for filing a report.
type ReportRequest struct {
	DriverID    string  `json:"driver_id" binding:"required"`
	RideID      *string `json:"ride_id"`
	Reason      string  `json:"reason" binding:"required"`
	Description string  `json:"description" binding:"required"`
}

// ResolutionRequest carries the optional admin note for a report decision.
type ResolutionRequest struct {
	Note string `json:"note"`
}

// RejectionRequest carries the mandatory reason for rejecting an application.
type RejectionRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// SuspensionResponse reports the outcome of a suspension decision.
type SuspensionResponse struct {
	Message        string `json:"message"`
	RidesCancelled int    `json:"rides_cancelled"`
}

// RideRequest defines the payload for publishing a ride.
type RideRequest struct {
	Origin      string          `json:"origin" binding:"required"`
	Destination string          `json:"destination" binding:"required"`
	DepartureAt time.Time       `json:"departure_at" binding:"required"`
	Seats       int             `json:"seats" binding:"required"`
	Price       decimal.Decimal `json:"price"`
}

// RideView describes a published ride.
type RideView struct {
	ID          string          `json:"id"`
	DriverID    string          `json:"driver_id"`
	Origin      string          `json:"origin"`
	Destination string          `json:"destination"`
	DepartureAt time.Time       `json:"departure_at"`
	Seats       int             `json:"seats"`
	Price       decimal.Decimal `json:"price"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
}

func newRideView(ride domain.Ride) RideView {
	return RideView{
		ID:          ride.ID,
		DriverID:    ride.DriverID,
		Origin:      ride.Origin,
		Destination: ride.Destination,
		DepartureAt: ride.DepartureAt,
		Seats:       ride.Seats,
		Price:       ride.Price,
		Status:      string(ride.Status),
		CreatedAt:   ride.CreatedAt,
	}
}

// WarningView describes a disciplinary warning.
type WarningView struct {
	ID       string    `json:"id"`
	Reason   string    `json:"reason"`
	ReportID string    `json:"report_id,omitempty"`
	IssuedAt time.Time `json:"issued_at"`
}

func newWarningView(warning domain.Warning) WarningView {
	return WarningView{
		ID:       warning.ID,
		Reason:   warning.Reason,
		ReportID: warning.ReportID,
		IssuedAt: warning.IssuedAt,
	}
}

// StatsResponse summarizes the moderation workload for the dashboard.
type StatsResponse struct {
	PendingVerifications int `json:"pending_verifications"`
	PendingUpgrades      int `json:"pending_upgrades"`
	PendingReports       int `json:"pending_reports"`
	TotalAccounts        int `json:"total_accounts"`
	Passengers           int `json:"passengers"`
	ActiveDrivers        int `json:"active_drivers"`
	SuspendedAccounts    int `json:"suspended_accounts"`
	TotalRides           int `json:"total_rides"`
	OpenRides            int `json:"open_rides"`
}

func newStatsResponse(stats *usecase.DashboardStats) StatsResponse {
	return StatsResponse{
		PendingVerifications: stats.PendingVerifications,
		PendingUpgrades:      stats.PendingUpgrades,
		PendingReports:       stats.PendingReports,
		TotalAccounts:        stats.TotalAccounts,
		Passengers:           stats.Passengers,
		ActiveDrivers:        stats.ActiveDrivers,
		SuspendedAccounts:    stats.SuspendedAccounts,
		TotalRides:           stats.TotalRides,
		OpenRides:            stats.OpenRides,
	}
}

// HealthResponse describes the service health payload.
type HealthResponse struct {
	Status    string    `json:"status"`
	StartedAt time.Time `json:"started_at"`
}

// ReadinessResponse reports the readiness of downstream dependencies.
type ReadinessResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}
