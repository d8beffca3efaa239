package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rodriguesaradhan-web/kozhigo/internal/core/domain"
	"github.com/rodriguesaradhan-web/kozhigo/internal/core/port"
	"github.com/rodriguesaradhan-web/kozhigo/internal/infra/config"
)

const schemaVersion = "1.0"

// EventPublisher implements port.EventPublisher using Kafka.
type EventPublisher struct {
	producer *Producer
	logger   *zap.Logger
	appCfg   config.AppSettings
}

// NewEventPublisher constructs a Kafka-backed event publisher.
func NewEventPublisher(producer *Producer, appCfg config.AppSettings, logger *zap.Logger) *EventPublisher {
	return &EventPublisher{producer: producer, appCfg: appCfg, logger: logger}
}

type envelopeMetadata map[string]string

type eventEnvelope struct {
	EventID   string           `json:"event_id"`
	EventType string           `json:"event_type"`
	AccountID string           `json:"account_id,omitempty"`
	Timestamp time.Time        `json:"timestamp"`
	Version   string           `json:"version"`
	Payload   any              `json:"payload"`
	Metadata  envelopeMetadata `json:"metadata,omitempty"`
}

func (p *EventPublisher) publish(ctx context.Context, eventID, eventType, accountID string, ts time.Time, payload any) error {
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	id := eventID
	if id == "" {
		id = uuid.NewString()
	}

	metadata := envelopeMetadata{
		"service":     p.appCfg.Name,
		"environment": p.appCfg.Env,
	}

	envelope := eventEnvelope{
		EventID:   id,
		EventType: eventType,
		AccountID: accountID,
		Timestamp: ts.UTC(),
		Version:   schemaVersion,
		Payload:   payload,
		Metadata:  metadata,
	}

	bytes, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("marshal event envelope: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic: p.producer.TopicName(eventType),
		Value: sarama.ByteEncoder(bytes),
	}

	select {
	case p.producer.Producer().Input() <- message:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// PublishAccountCreated publishes rides.account.created events.
func (p *EventPublisher) PublishAccountCreated(ctx context.Context, event domain.AccountCreatedEvent) error {
	payload := struct {
		AccountID     string         `json:"account_id"`
		Name          string         `json:"name"`
		Email         string         `json:"email"`
		Role          string         `json:"role"`
		Source        string         `json:"source"`
		ApplicationID *string        `json:"application_id,omitempty"`
		CreatedAt     time.Time      `json:"created_at"`
		Metadata      map[string]any `json:"metadata,omitempty"`
	}{
		AccountID:     event.AccountID,
		Name:          event.Name,
		Email:         event.Email,
		Role:          event.Role,
		Source:        event.Source,
		ApplicationID: event.ApplicationID,
		CreatedAt:     event.CreatedAt.UTC(),
		Metadata:      event.Metadata,
	}

	return p.publish(ctx, event.EventID, "rides.account.created", event.AccountID, event.CreatedAt, payload)
}

// PublishDriverUpgraded publishes rides.account.upgraded events.
func (p *EventPublisher) PublishDriverUpgraded(ctx context.Context, event domain.DriverUpgradedEvent) error {
	payload := struct {
		AccountID     string         `json:"account_id"`
		ApplicationID string         `json:"application_id"`
		ApprovedBy    string         `json:"approved_by"`
		UpgradedAt    time.Time      `json:"upgraded_at"`
		Metadata      map[string]any `json:"metadata,omitempty"`
	}{
		AccountID:     event.AccountID,
		ApplicationID: event.ApplicationID,
		ApprovedBy:    event.ApprovedBy,
		UpgradedAt:    event.UpgradedAt.UTC(),
		Metadata:      event.Metadata,
	}

	return p.publish(ctx, event.EventID, "rides.account.upgraded", event.AccountID, event.UpgradedAt, payload)
}

// PublishWarningIssued publishes rides.account.warned events.
func (p *EventPublisher) PublishWarningIssued(ctx context.Context, event domain.WarningIssuedEvent) error {
	payload := struct {
		AccountID string         `json:"account_id"`
		ReportID  string         `json:"report_id"`
		Reason    string         `json:"reason"`
		IssuedBy  string         `json:"issued_by"`
		IssuedAt  time.Time      `json:"issued_at"`
		Metadata  map[string]any `json:"metadata,omitempty"`
	}{
		AccountID: event.AccountID,
		ReportID:  event.ReportID,
		Reason:    event.Reason,
		IssuedBy:  event.IssuedBy,
		IssuedAt:  event.IssuedAt.UTC(),
		Metadata:  event.Metadata,
	}

	return p.publish(ctx, event.EventID, "rides.account.warned", event.AccountID, event.IssuedAt, payload)
}

// PublishAccountSuspended publishes rides.account.suspended events.
func (p *EventPublisher) PublishAccountSuspended(ctx context.Context, event domain.AccountSuspendedEvent) error {
	payload := struct {
		AccountID      string         `json:"account_id"`
		ReportID       string         `json:"report_id"`
		SuspendedBy    string         `json:"suspended_by"`
		SuspendedAt    time.Time      `json:"suspended_at"`
		RidesCancelled int            `json:"rides_cancelled"`
		Metadata       map[string]any `json:"metadata,omitempty"`
	}{
		AccountID:      event.AccountID,
		ReportID:       event.ReportID,
		SuspendedBy:    event.SuspendedBy,
		SuspendedAt:    event.SuspendedAt.UTC(),
		RidesCancelled: event.RidesCancelled,
		Metadata:       event.Metadata,
	}

	return p.publish(ctx, event.EventID, "rides.account.suspended", event.AccountID, event.SuspendedAt, payload)
}

// PublishReportResolved publishes rides.report.resolved events.
func (p *EventPublisher) PublishReportResolved(ctx context.Context, event domain.ReportResolvedEvent) error {
	payload := struct {
		ReportID   string         `json:"report_id"`
		DriverID   string         `json:"driver_id"`
		Outcome    string         `json:"outcome"`
		ResolvedBy string         `json:"resolved_by"`
		ResolvedAt time.Time      `json:"resolved_at"`
		Metadata   map[string]any `json:"metadata,omitempty"`
	}{
		ReportID:   event.ReportID,
		DriverID:   event.DriverID,
		Outcome:    event.Outcome,
		ResolvedBy: event.ResolvedBy,
		ResolvedAt: event.ResolvedAt.UTC(),
		Metadata:   event.Metadata,
	}

	return p.publish(ctx, event.EventID, "rides.report.resolved", event.DriverID, event.ResolvedAt, payload)
}

var _ port.EventPublisher = (*EventPublisher)(nil)
