package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	uuid "github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rodriguesaradhan-web/kozhigo/internal/core/domain"
	"github.com/rodriguesaradhan-web/kozhigo/internal/core/port"
	"github.com/rodriguesaradhan-web/kozhigo/internal/repository"
)

const driverLicenseEvidencePrefix = "driver-licenses"

// UpgradeService handles passenger-to-driver upgrade applications.
type UpgradeService struct {
	accounts     port.AccountRepository
	applications port.ApplicationRepository
	evidence     port.EvidenceStore
	logger       *zap.Logger
}

// NewUpgradeService constructs an upgrade service.
func NewUpgradeService(accounts port.AccountRepository, applications port.ApplicationRepository, evidence port.EvidenceStore, logger *zap.Logger) *UpgradeService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UpgradeService{accounts: accounts, applications: applications, evidence: evidence, logger: logger}
}

// Submit records a pending upgrade application for the account. Drivers,
// suspended accounts, and accounts with an open application are refused.
// A previously rejected application does not block resubmission.
func (s *UpgradeService) Submit(ctx context.Context, accountID string, evidence EvidenceFile) (*domain.UpgradeApplication, error) {
	if err := validateEvidence(evidence); err != nil {
		return nil, err
	}

	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load account: %w", err)
	}

	if account.Suspended {
		return nil, fmt.Errorf("%w: account is suspended", ErrConflict)
	}
	if account.Role != domain.RolePassenger {
		return nil, fmt.Errorf("%w: only passengers can apply to become drivers", ErrConflict)
	}

	if _, err := s.applications.GetPendingUpgradeByAccount(ctx, accountID); err == nil {
		return nil, fmt.Errorf("%w: an upgrade application is already pending", ErrConflict)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("check pending upgrade: %w", err)
	}

	now := time.Now().UTC()
	key := evidenceKey(driverLicenseEvidencePrefix, accountID, evidence, now)
	evidenceURL, err := s.evidence.Store(ctx, key, evidence.Data, evidence.MIMEType)
	if err != nil {
		return nil, fmt.Errorf("store evidence: %w", err)
	}

	app := domain.UpgradeApplication{
		ID:          uuid.NewString(),
		AccountID:   accountID,
		EvidenceURL: evidenceURL,
		Status:      domain.ApplicationPending,
		CreatedAt:   now,
	}

	if err := s.applications.CreateUpgrade(ctx, app); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("%w: an upgrade application is already pending", ErrConflict)
		}
		return nil, fmt.Errorf("create upgrade application: %w", err)
	}

	s.logger.Info("upgrade application submitted",
		zap.String("application_id", app.ID),
		zap.String("account_id", accountID),
	)

	return &app, nil
}
