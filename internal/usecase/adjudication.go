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

// AdjudicationService decides verification and upgrade applications.
// Every decision is one-time: the underlying store only moves an
// application out of PENDING once, and a lost race surfaces as
// ErrAlreadyResolved without mutating anything.
type AdjudicationService struct {
	accounts     port.AccountRepository
	applications port.ApplicationRepository
	events       port.EventPublisher
	logger       *zap.Logger
}

// NewAdjudicationService constructs an adjudication service.
func NewAdjudicationService(accounts port.AccountRepository, applications port.ApplicationRepository, events port.EventPublisher, logger *zap.Logger) *AdjudicationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdjudicationService{accounts: accounts, applications: applications, events: events, logger: logger}
}

// ApproveVerification admits the applicant into the identity ledger. The
// ledger is re-checked at approval time: identities registered since
// submission fail the approval with ErrDuplicateIdentity and leave the
// application pending.
func (s *AdjudicationService) ApproveVerification(ctx context.Context, applicationID, reviewerID string) (*domain.Account, error) {
	app, err := s.applications.GetVerificationByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load verification application: %w", err)
	}
	if app.Status.Terminal() {
		return nil, ErrAlreadyResolved
	}

	if _, err := s.accounts.GetByEmail(ctx, app.Email); err == nil {
		return nil, fmt.Errorf("%w: email registered since submission", ErrDuplicateIdentity)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if _, err := s.accounts.GetByStudentID(ctx, app.StudentID); err == nil {
		return nil, fmt.Errorf("%w: student id registered since submission", ErrDuplicateIdentity)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("check student id: %w", err)
	}

	now := time.Now().UTC()
	studentID := app.StudentID
	account := domain.Account{
		ID:           uuid.NewString(),
		Name:         app.Name,
		Email:        app.Email,
		StudentID:    &studentID,
		PasswordHash: app.PasswordHash,
		Role:         domain.RolePassenger,
		CreatedAt:    now,
	}

	if err := s.applications.ApproveVerification(ctx, applicationID, reviewerID, now, account); err != nil {
		switch {
		case errors.Is(err, repository.ErrStaleStatus):
			return nil, ErrAlreadyResolved
		case errors.Is(err, repository.ErrDuplicate):
			return nil, fmt.Errorf("%w: identity registered concurrently", ErrDuplicateIdentity)
		default:
			return nil, fmt.Errorf("approve verification: %w", err)
		}
	}

	applicationRef := applicationID
	if err := s.events.PublishAccountCreated(ctx, domain.AccountCreatedEvent{
		AccountID:     account.ID,
		Name:          account.Name,
		Email:         account.Email,
		Role:          string(account.Role),
		Source:        "verification_approval",
		ApplicationID: &applicationRef,
		CreatedAt:     now,
	}); err != nil {
		s.logger.Warn("failed to publish account created event", zap.Error(err), zap.String("account_id", account.ID))
	}

	s.logger.Info("verification application approved",
		zap.String("application_id", applicationID),
		zap.String("account_id", account.ID),
		zap.String("reviewed_by", reviewerID),
	)

	return &account, nil
}

// RejectVerification closes the application with a mandatory reason. No
// account is created and the evidence document is left untouched.
func (s *AdjudicationService) RejectVerification(ctx context.Context, applicationID, reviewerID, reason string) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return fmt.Errorf("%w: rejection reason is required", ErrValidation)
	}

	if _, err := s.applications.GetVerificationByID(ctx, applicationID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("load verification application: %w", err)
	}

	if err := s.applications.RejectVerification(ctx, applicationID, reviewerID, reason, time.Now().UTC()); err != nil {
		if errors.Is(err, repository.ErrStaleStatus) {
			return ErrAlreadyResolved
		}
		return fmt.Errorf("reject verification: %w", err)
	}

	s.logger.Info("verification application rejected",
		zap.String("application_id", applicationID),
		zap.String("reviewed_by", reviewerID),
	)

	return nil
}

// ApproveUpgrade promotes the applicant to driver. The promotion is
// guarded: a suspended account or one that is no longer a passenger
// fails with ErrConflict and the application stays pending.
func (s *AdjudicationService) ApproveUpgrade(ctx context.Context, applicationID, reviewerID string) error {
	app, err := s.applications.GetUpgradeByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("load upgrade application: %w", err)
	}
	if app.Status.Terminal() {
		return ErrAlreadyResolved
	}

	now := time.Now().UTC()
	if err := s.applications.ApproveUpgrade(ctx, applicationID, app.AccountID, reviewerID, now); err != nil {
		switch {
		case errors.Is(err, repository.ErrStaleStatus):
			return ErrAlreadyResolved
		case errors.Is(err, repository.ErrPreconditionFailed):
			return fmt.Errorf("%w: account is suspended or no longer a passenger", ErrConflict)
		default:
			return fmt.Errorf("approve upgrade: %w", err)
		}
	}

	if err := s.events.PublishDriverUpgraded(ctx, domain.DriverUpgradedEvent{
		AccountID:     app.AccountID,
		ApplicationID: applicationID,
		ApprovedBy:    reviewerID,
		UpgradedAt:    now,
	}); err != nil {
		s.logger.Warn("failed to publish driver upgraded event", zap.Error(err), zap.String("account_id", app.AccountID))
	}

	s.logger.Info("upgrade application approved",
		zap.String("application_id", applicationID),
		zap.String("account_id", app.AccountID),
		zap.String("reviewed_by", reviewerID),
	)

	return nil
}

// RejectUpgrade closes the application with a mandatory reason. The
// account keeps its passenger role and may reapply.
func (s *AdjudicationService) RejectUpgrade(ctx context.Context, applicationID, reviewerID, reason string) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return fmt.Errorf("%w: rejection reason is required", ErrValidation)
	}

	if _, err := s.applications.GetUpgradeByID(ctx, applicationID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("load upgrade application: %w", err)
	}

	if err := s.applications.RejectUpgrade(ctx, applicationID, reviewerID, reason, time.Now().UTC()); err != nil {
		if errors.Is(err, repository.ErrStaleStatus) {
			return ErrAlreadyResolved
		}
		return fmt.Errorf("reject upgrade: %w", err)
	}

	s.logger.Info("upgrade application rejected",
		zap.String("application_id", applicationID),
		zap.String("reviewed_by", reviewerID),
	)

	return nil
}
