package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	uuid "github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rodriguesaradhan-web/kozhigo/internal/core/domain"
	"github.com/rodriguesaradhan-web/kozhigo/internal/core/port"
	"github.com/rodriguesaradhan-web/kozhigo/internal/repository"
)

const maxReportDescription = 2000

// ReportService files driver reports and adjudicates them. Resolution is
// one-time: the report moves out of PENDING exactly once, and the
// mutations that follow never run twice for the same report.
type ReportService struct {
	accounts port.AccountRepository
	reports  port.ReportRepository
	rides    port.RideRepository
	cascade  *CascadeExecutor
	events   port.EventPublisher
	logger   *zap.Logger
}

// NewReportService constructs a report service.
func NewReportService(
	accounts port.AccountRepository,
	reports port.ReportRepository,
	rides port.RideRepository,
	cascade *CascadeExecutor,
	events port.EventPublisher,
	logger *zap.Logger,
) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{
		accounts: accounts,
		reports:  reports,
		rides:    rides,
		cascade:  cascade,
		events:   events,
		logger:   logger,
	}
}

// ReportSubmission is the input for filing a report against a driver.
type ReportSubmission struct {
	DriverID    string
	RideID      *string
	Reason      domain.ReportReason
	Description string
}

// File records a pending report. The reporter cannot report themselves,
// the target must be a driver, and a referenced ride must belong to the
// reported driver.
func (s *ReportService) File(ctx context.Context, reporterID string, sub ReportSubmission) (*domain.Report, error) {
	sub.Description = strings.TrimSpace(sub.Description)
	if sub.DriverID == "" {
		return nil, fmt.Errorf("%w: driver is required", ErrValidation)
	}
	if sub.DriverID == reporterID {
		return nil, fmt.Errorf("%w: cannot report yourself", ErrValidation)
	}
	if !sub.Reason.Valid() {
		return nil, fmt.Errorf("%w: unknown report reason", ErrValidation)
	}
	if sub.Description == "" {
		return nil, fmt.Errorf("%w: description is required", ErrValidation)
	}
	if len(sub.Description) > maxReportDescription {
		return nil, fmt.Errorf("%w: description too long", ErrValidation)
	}

	driver, err := s.accounts.GetByID(ctx, sub.DriverID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load driver: %w", err)
	}
	if driver.Role != domain.RoleDriver {
		return nil, fmt.Errorf("%w: reported account is not a driver", ErrValidation)
	}

	if sub.RideID != nil && *sub.RideID != "" {
		ride, err := s.rides.GetByID(ctx, *sub.RideID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, fmt.Errorf("%w: referenced ride does not exist", ErrValidation)
			}
			return nil, fmt.Errorf("load ride: %w", err)
		}
		if ride.DriverID != sub.DriverID {
			return nil, fmt.Errorf("%w: ride does not belong to the reported driver", ErrValidation)
		}
	}

	report := domain.Report{
		ID:          uuid.NewString(),
		ReporterID:  reporterID,
		DriverID:    sub.DriverID,
		RideID:      sub.RideID,
		Reason:      sub.Reason,
		Description: sub.Description,
		Status:      domain.ReportPending,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.reports.Create(ctx, report); err != nil {
		return nil, fmt.Errorf("create report: %w", err)
	}

	s.logger.Info("report filed",
		zap.String("report_id", report.ID),
		zap.String("driver_id", report.DriverID),
		zap.String("reason", string(report.Reason)),
	)

	return &report, nil
}

// Warn resolves the report by issuing a warning against the driver. The
// warning is appended to the driver's record; the driver keeps operating.
func (s *ReportService) Warn(ctx context.Context, reportID, adminID, note string) error {
	report, err := s.loadPending(ctx, reportID)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	if err := s.reports.Resolve(ctx, reportID, domain.ReportWarningIssued, note, adminID, now); err != nil {
		if errors.Is(err, repository.ErrStaleStatus) {
			return ErrAlreadyResolved
		}
		return fmt.Errorf("resolve report: %w", err)
	}

	reason := note
	if reason == "" {
		reason = string(report.Reason)
	}
	warning := domain.Warning{
		ID:        uuid.NewString(),
		AccountID: report.DriverID,
		Reason:    reason,
		ReportID:  reportID,
		IssuedAt:  now,
	}
	if err := s.accounts.AppendWarning(ctx, warning); err != nil {
		return fmt.Errorf("append warning: %w", err)
	}

	s.publishResolved(ctx, report, string(domain.ReportWarningIssued), adminID, now)
	if err := s.events.PublishWarningIssued(ctx, domain.WarningIssuedEvent{
		AccountID: report.DriverID,
		ReportID:  reportID,
		Reason:    reason,
		IssuedBy:  adminID,
		IssuedAt:  now,
	}); err != nil {
		s.logger.Warn("failed to publish warning issued event", zap.Error(err), zap.String("report_id", reportID))
	}

	s.logger.Info("warning issued",
		zap.String("report_id", reportID),
		zap.String("driver_id", report.DriverID),
		zap.String("reviewed_by", adminID),
	)

	return nil
}

// Suspend resolves the report by suspending the driver and cancelling
// their unfinished rides. The resolution and the suspended flag commit
// in one transaction; a failure there leaves the report PENDING so the
// decision can be retried. Only the ride sweep is best-effort, and an
// incomplete sweep surfaces as ErrCascadeFailed.
func (s *ReportService) Suspend(ctx context.Context, reportID, adminID, note string) (int, error) {
	report, err := s.loadPending(ctx, reportID)
	if err != nil {
		return 0, err
	}

	now := time.Now().UTC()
	if err := s.reports.ResolveWithSuspension(ctx, reportID, report.DriverID, note, adminID, now); err != nil {
		if errors.Is(err, repository.ErrStaleStatus) {
			return 0, ErrAlreadyResolved
		}
		return 0, fmt.Errorf("suspend driver: %w", err)
	}

	cancelled, cascadeErr := s.cascade.OnAccountSuspended(ctx, report.DriverID)

	s.publishResolved(ctx, report, string(domain.ReportAccountDeleted), adminID, now)
	if err := s.events.PublishAccountSuspended(ctx, domain.AccountSuspendedEvent{
		AccountID:      report.DriverID,
		ReportID:       reportID,
		SuspendedBy:    adminID,
		SuspendedAt:    now,
		RidesCancelled: cancelled,
	}); err != nil {
		s.logger.Warn("failed to publish account suspended event", zap.Error(err), zap.String("report_id", reportID))
	}

	s.logger.Info("driver suspended",
		zap.String("report_id", reportID),
		zap.String("driver_id", report.DriverID),
		zap.String("reviewed_by", adminID),
		zap.Int("rides_cancelled", cancelled),
	)

	if cascadeErr != nil {
		return cancelled, fmt.Errorf("%w: %v", ErrCascadeFailed, cascadeErr)
	}

	return cancelled, nil
}

// Dismiss closes the report without touching the driver's record.
func (s *ReportService) Dismiss(ctx context.Context, reportID, adminID, note string) error {
	report, err := s.loadPending(ctx, reportID)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	if err := s.reports.Resolve(ctx, reportID, domain.ReportDismissed, note, adminID, now); err != nil {
		if errors.Is(err, repository.ErrStaleStatus) {
			return ErrAlreadyResolved
		}
		return fmt.Errorf("resolve report: %w", err)
	}

	s.publishResolved(ctx, report, string(domain.ReportDismissed), adminID, now)

	s.logger.Info("report dismissed",
		zap.String("report_id", reportID),
		zap.String("reviewed_by", adminID),
	)

	return nil
}

func (s *ReportService) loadPending(ctx context.Context, reportID string) (*domain.Report, error) {
	report, err := s.reports.GetByID(ctx, reportID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load report: %w", err)
	}
	if report.Status.Terminal() {
		return nil, ErrAlreadyResolved
	}
	return report, nil
}

func (s *ReportService) publishResolved(ctx context.Context, report *domain.Report, outcome, adminID string, at time.Time) {
	if err := s.events.PublishReportResolved(ctx, domain.ReportResolvedEvent{
		ReportID:   report.ID,
		DriverID:   report.DriverID,
		Outcome:    outcome,
		ResolvedBy: adminID,
		ResolvedAt: at,
	}); err != nil {
		s.logger.Warn("failed to publish report resolved event", zap.Error(err), zap.String("report_id", report.ID))
	}
}
