package port

import (
	"context"

	"github.com/rodriguesaradhan-web/kozhigo/internal/core/domain"
)

// EventPublisher publishes moderation events to the message bus.
type EventPublisher interface {
	PublishAccountCreated(ctx context.Context, event domain.AccountCreatedEvent) error
	PublishDriverUpgraded(ctx context.Context, event domain.DriverUpgradedEvent) error
	PublishWarningIssued(ctx context.Context, event domain.WarningIssuedEvent) error
	PublishAccountSuspended(ctx context.Context, event domain.AccountSuspendedEvent) error
	PublishReportResolved(ctx context.Context, event domain.ReportResolvedEvent) error
}
