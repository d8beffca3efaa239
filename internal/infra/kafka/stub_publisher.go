package kafka

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/rodriguesaradhan-web/kozhigo/internal/core/domain"
	"github.com/rodriguesaradhan-web/kozhigo/internal/core/port"
)

// StubPublisher logs events instead of sending them to Kafka. Useful for development environments.
type StubPublisher struct {
	logger *zap.Logger
}

// NewStubPublisher constructs a development-friendly event publisher.
func NewStubPublisher(logger *zap.Logger) *StubPublisher {
	return &StubPublisher{logger: logger}
}

func (p *StubPublisher) logEvent(eventType, accountID string, at time.Time, payload any) {
	if at.IsZero() {
		at = time.Now().UTC()
	}

	p.logger.Info("Stub event published",
		zap.String("event_type", eventType),
		zap.String("account_id", accountID),
		zap.Time("timestamp", at.UTC()),
		zap.Any("payload", payload),
	)
}

// PublishAccountCreated logs rides.account.created events.
func (p *StubPublisher) PublishAccountCreated(_ context.Context, event domain.AccountCreatedEvent) error {
	payload := map[string]any{
		"account_id":     event.AccountID,
		"name":           event.Name,
		"email":          event.Email,
		"role":           event.Role,
		"source":         event.Source,
		"application_id": event.ApplicationID,
		"created_at":     event.CreatedAt,
		"metadata":       event.Metadata,
	}
	p.logEvent("rides.account.created", event.AccountID, event.CreatedAt, payload)
	return nil
}

// PublishDriverUpgraded logs rides.account.upgraded events.
func (p *StubPublisher) PublishDriverUpgraded(_ context.Context, event domain.DriverUpgradedEvent) error {
	payload := map[string]any{
		"account_id":     event.AccountID,
		"application_id": event.ApplicationID,
		"approved_by":    event.ApprovedBy,
		"upgraded_at":    event.UpgradedAt,
		"metadata":       event.Metadata,
	}
	p.logEvent("rides.account.upgraded", event.AccountID, event.UpgradedAt, payload)
	return nil
}

// PublishWarningIssued logs rides.account.warned events.
func (p *StubPublisher) PublishWarningIssued(_ context.Context, event domain.WarningIssuedEvent) error {
	payload := map[string]any{
		"account_id": event.AccountID,
		"report_id":  event.ReportID,
		"reason":     event.Reason,
		"issued_by":  event.IssuedBy,
		"issued_at":  event.IssuedAt,
		"metadata":   event.Metadata,
	}
	p.logEvent("rides.account.warned", event.AccountID, event.IssuedAt, payload)
	return nil
}

// PublishAccountSuspended logs rides.account.suspended events.
func (p *StubPublisher) PublishAccountSuspended(_ context.Context, event domain.AccountSuspendedEvent) error {
	payload := map[string]any{
		"account_id":      event.AccountID,
		"report_id":       event.ReportID,
		"suspended_by":    event.SuspendedBy,
		"suspended_at":    event.SuspendedAt,
		"rides_cancelled": event.RidesCancelled,
		"metadata":        event.Metadata,
	}
	p.logEvent("rides.account.suspended", event.AccountID, event.SuspendedAt, payload)
	return nil
}

// PublishReportResolved logs rides.report.resolved events.
func (p *StubPublisher) PublishReportResolved(_ context.Context, event domain.ReportResolvedEvent) error {
	payload := map[string]any{
		"report_id":   event.ReportID,
		"driver_id":   event.DriverID,
		"outcome":     event.Outcome,
		"resolved_by": event.ResolvedBy,
		"resolved_at": event.ResolvedAt,
		"metadata":    event.Metadata,
	}
	p.logEvent("rides.report.resolved", event.DriverID, event.ResolvedAt, payload)
	return nil
}

var _ port.EventPublisher = (*StubPublisher)(nil)
