package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/rodriguesaradhan-web/kozhigo/internal/core/domain"
	"github.com/rodriguesaradhan-web/kozhigo/internal/repository"
)

func pendingReport() *domain.Report {
	return &domain.Report{
		ID:          "report-1",
		ReporterID:  "passenger-1",
		DriverID:    "driver-1",
		Reason:      domain.ReasonUnsafeDriving,
		Description: "ran a red light with passengers on board",
		Status:      domain.ReportPending,
	}
}

func newReportFixture() (*ReportService, *mockAccountRepository, *mockReportRepository, *mockRideRepository, *mockEventPublisher) {
	accounts := newMockAccountRepository()
	reports := newMockReportRepository()
	rides := newMockRideRepository()
	events := &mockEventPublisher{}
	cascade := NewCascadeExecutor(rides, nil)
	svc := NewReportService(accounts, reports, rides, cascade, events, nil)
	return svc, accounts, reports, rides, events
}

func TestFileReport(t *testing.T) {
	svc, accounts, reports, _, _ := newReportFixture()
	accounts.getByIDResult = &domain.Account{ID: "driver-1", Role: domain.RoleDriver}

	report, err := svc.File(context.Background(), "passenger-1", ReportSubmission{
		DriverID:    "driver-1",
		Reason:      domain.ReasonNoShow,
		Description: "driver never arrived at the pickup point",
	})
	if err != nil {
		t.Fatalf("File returned error: %v", err)
	}
	if reports.createCalls != 1 {
		t.Fatalf("expected 1 create call, got %d", reports.createCalls)
	}
	if report.Status != domain.ReportPending {
		t.Fatalf("expected pending status, got %q", report.Status)
	}
}

func TestFileReportAgainstSelf(t *testing.T) {
	svc, _, reports, _, _ := newReportFixture()

	_, err := svc.File(context.Background(), "driver-1", ReportSubmission{
		DriverID:    "driver-1",
		Reason:      domain.ReasonOther,
		Description: "self report",
	})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if reports.createCalls != 0 {
		t.Fatalf("self report must not be created")
	}
}

func TestFileReportUnknownReason(t *testing.T) {
	svc, _, _, _, _ := newReportFixture()

	_, err := svc.File(context.Background(), "passenger-1", ReportSubmission{
		DriverID:    "driver-1",
		Reason:      domain.ReportReason("ANGRY"),
		Description: "free-form category",
	})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for unknown reason, got %v", err)
	}
}

func TestFileReportTargetNotDriver(t *testing.T) {
	svc, accounts, _, _, _ := newReportFixture()
	accounts.getByIDResult = &domain.Account{ID: "passenger-2", Role: domain.RolePassenger}

	_, err := svc.File(context.Background(), "passenger-1", ReportSubmission{
		DriverID:    "passenger-2",
		Reason:      domain.ReasonHarassment,
		Description: "not actually a driver",
	})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestFileReportRideOwnershipMismatch(t *testing.T) {
	svc, accounts, _, rides, _ := newReportFixture()
	accounts.getByIDResult = &domain.Account{ID: "driver-1", Role: domain.RoleDriver}
	rides.getByIDResult = &domain.Ride{ID: "ride-1", DriverID: "driver-2"}

	rideID := "ride-1"
	_, err := svc.File(context.Background(), "passenger-1", ReportSubmission{
		DriverID:    "driver-1",
		RideID:      &rideID,
		Reason:      domain.ReasonOvercharging,
		Description: "charged double the listed price",
	})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for foreign ride, got %v", err)
	}
}

func TestWarnAppendsWarning(t *testing.T) {
	svc, accounts, reports, _, events := newReportFixture()
	reports.getByIDResult = pendingReport()

	if err := svc.Warn(context.Background(), "report-1", "admin-1", "first strike"); err != nil {
		t.Fatalf("Warn returned error: %v", err)
	}
	if reports.resolveCalls != 1 || reports.resolvedWith != domain.ReportWarningIssued {
		t.Fatalf("expected resolution to WARNING_ISSUED, got %d calls with %q", reports.resolveCalls, reports.resolvedWith)
	}
	if accounts.appendWarningCalls != 1 {
		t.Fatalf("expected 1 warning append, got %d", accounts.appendWarningCalls)
	}
	if accounts.lastWarning.AccountID != "driver-1" || accounts.lastWarning.ReportID != "report-1" {
		t.Fatalf("unexpected warning %+v", accounts.lastWarning)
	}
	if accounts.lastWarning.Reason != "first strike" {
		t.Fatalf("warning must carry the admin note, got %q", accounts.lastWarning.Reason)
	}
	if len(events.reportResolved) != 1 || len(events.warningIssued) != 1 {
		t.Fatalf("expected resolved and warning events, got %d/%d", len(events.reportResolved), len(events.warningIssued))
	}
}

func TestWarnWithoutNoteUsesReportReason(t *testing.T) {
	svc, accounts, reports, _, _ := newReportFixture()
	reports.getByIDResult = pendingReport()

	if err := svc.Warn(context.Background(), "report-1", "admin-1", ""); err != nil {
		t.Fatalf("Warn returned error: %v", err)
	}
	if accounts.lastWarning.Reason != string(domain.ReasonUnsafeDriving) {
		t.Fatalf("empty note must fall back to the report reason, got %q", accounts.lastWarning.Reason)
	}
}

func TestWarnAlreadyResolved(t *testing.T) {
	svc, accounts, reports, _, _ := newReportFixture()
	report := pendingReport()
	report.Status = domain.ReportDismissed
	reports.getByIDResult = report

	if err := svc.Warn(context.Background(), "report-1", "admin-1", "note"); !errors.Is(err, ErrAlreadyResolved) {
		t.Fatalf("expected ErrAlreadyResolved, got %v", err)
	}
	if accounts.appendWarningCalls != 0 {
		t.Fatalf("resolved report must not mutate the driver")
	}
}

func TestWarnLostRace(t *testing.T) {
	svc, accounts, reports, _, _ := newReportFixture()
	reports.getByIDResult = pendingReport()
	reports.resolveErr = repository.ErrStaleStatus

	if err := svc.Warn(context.Background(), "report-1", "admin-1", "note"); !errors.Is(err, ErrAlreadyResolved) {
		t.Fatalf("expected ErrAlreadyResolved on lost race, got %v", err)
	}
	if accounts.appendWarningCalls != 0 {
		t.Fatalf("lost race must not append a warning")
	}
}

func TestSuspendCancelsUnfinishedRides(t *testing.T) {
	svc, _, reports, rides, events := newReportFixture()
	reports.getByIDResult = pendingReport()
	rides.unfinishedResult = []domain.Ride{
		{ID: "ride-1", DriverID: "driver-1", Status: domain.RideOpen},
		{ID: "ride-2", DriverID: "driver-1", Status: domain.RideInProgress},
	}

	cancelled, err := svc.Suspend(context.Background(), "report-1", "admin-1", "repeat offender")
	if err != nil {
		t.Fatalf("Suspend returned error: %v", err)
	}
	if cancelled != 2 {
		t.Fatalf("expected 2 cancelled rides, got %d", cancelled)
	}
	if reports.resolvedWith != domain.ReportAccountDeleted {
		t.Fatalf("expected resolution to ACCOUNT_DELETED, got %q", reports.resolvedWith)
	}
	if reports.resolveSuspendCalls != 1 || reports.suspendedDriverID != "driver-1" {
		t.Fatalf("expected driver-1 suspended, got %d calls for %q", reports.resolveSuspendCalls, reports.suspendedDriverID)
	}
	if len(events.accountSuspended) != 1 {
		t.Fatalf("expected 1 account suspended event, got %d", len(events.accountSuspended))
	}
	if events.accountSuspended[0].RidesCancelled != 2 {
		t.Fatalf("event must report the cancelled count, got %d", events.accountSuspended[0].RidesCancelled)
	}
}

func TestSuspendSurvivesPartialCascadeFailure(t *testing.T) {
	svc, _, reports, rides, events := newReportFixture()
	reports.getByIDResult = pendingReport()
	rides.unfinishedResult = []domain.Ride{
		{ID: "ride-1", DriverID: "driver-1", Status: domain.RideOpen},
		{ID: "ride-2", DriverID: "driver-1", Status: domain.RideOpen},
	}
	rides.cancelErrs["ride-2"] = errors.New("connection reset")

	cancelled, err := svc.Suspend(context.Background(), "report-1", "admin-1", "note")
	if !errors.Is(err, ErrCascadeFailed) {
		t.Fatalf("expected ErrCascadeFailed, got %v", err)
	}
	if cancelled != 1 {
		t.Fatalf("expected 1 cancelled ride despite the failure, got %d", cancelled)
	}
	if reports.resolveSuspendCalls != 1 {
		t.Fatalf("the resolution and suspension must stand")
	}
	if len(events.accountSuspended) != 1 {
		t.Fatalf("the suspension event must still be published")
	}
}

func TestSuspendAlreadyResolved(t *testing.T) {
	svc, _, reports, rides, _ := newReportFixture()
	report := pendingReport()
	report.Status = domain.ReportAccountDeleted
	reports.getByIDResult = report

	if _, err := svc.Suspend(context.Background(), "report-1", "admin-1", "note"); !errors.Is(err, ErrAlreadyResolved) {
		t.Fatalf("expected ErrAlreadyResolved, got %v", err)
	}
	if reports.resolveSuspendCalls != 0 || rides.unfinishedCalls != 0 {
		t.Fatalf("resolved report must trigger no cascade")
	}
}

func TestSuspendLostRace(t *testing.T) {
	svc, _, reports, rides, _ := newReportFixture()
	reports.getByIDResult = pendingReport()
	reports.resolveSuspendErr = repository.ErrStaleStatus

	if _, err := svc.Suspend(context.Background(), "report-1", "admin-1", "note"); !errors.Is(err, ErrAlreadyResolved) {
		t.Fatalf("expected ErrAlreadyResolved on lost race, got %v", err)
	}
	if rides.unfinishedCalls != 0 {
		t.Fatalf("lost race must not sweep rides")
	}
}

func TestSuspendWriteFailureLeavesReportRetryable(t *testing.T) {
	svc, _, reports, rides, events := newReportFixture()
	reports.getByIDResult = pendingReport()
	reports.resolveSuspendErr = errors.New("connection reset")
	rides.unfinishedResult = []domain.Ride{
		{ID: "ride-1", DriverID: "driver-1", Status: domain.RideOpen},
	}

	_, err := svc.Suspend(context.Background(), "report-1", "admin-1", "note")
	if err == nil || errors.Is(err, ErrAlreadyResolved) {
		t.Fatalf("expected a retryable error, got %v", err)
	}
	if rides.unfinishedCalls != 0 {
		t.Fatalf("failed suspension must not sweep rides")
	}
	if len(events.accountSuspended) != 0 {
		t.Fatalf("failed suspension must not publish an event")
	}

	reports.resolveSuspendErr = nil
	cancelled, err := svc.Suspend(context.Background(), "report-1", "admin-1", "note")
	if err != nil {
		t.Fatalf("retry after a transient failure returned error: %v", err)
	}
	if cancelled != 1 {
		t.Fatalf("expected 1 cancelled ride on retry, got %d", cancelled)
	}
}

func TestDismissTouchesNothing(t *testing.T) {
	svc, accounts, reports, rides, events := newReportFixture()
	reports.getByIDResult = pendingReport()

	if err := svc.Dismiss(context.Background(), "report-1", "admin-1", "no evidence"); err != nil {
		t.Fatalf("Dismiss returned error: %v", err)
	}
	if reports.resolvedWith != domain.ReportDismissed {
		t.Fatalf("expected resolution to DISMISSED, got %q", reports.resolvedWith)
	}
	if accounts.appendWarningCalls != 0 || reports.resolveSuspendCalls != 0 {
		t.Fatalf("dismissal must not touch the driver")
	}
	if rides.unfinishedCalls != 0 {
		t.Fatalf("dismissal must not sweep rides")
	}
	if len(events.reportResolved) != 1 {
		t.Fatalf("expected 1 resolved event, got %d", len(events.reportResolved))
	}
}

func TestReportNotFound(t *testing.T) {
	svc, _, _, _, _ := newReportFixture()

	if err := svc.Dismiss(context.Background(), "missing", "admin-1", ""); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
