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
	"github.com/rodriguesaradhan-web/kozhigo/internal/infra/logger"
	"github.com/rodriguesaradhan-web/kozhigo/internal/infra/security"
	"github.com/rodriguesaradhan-web/kozhigo/internal/repository"
)

// AdminService serves the moderation dashboard queues and statistics.
type AdminService struct {
	accounts     port.AccountRepository
	applications port.ApplicationRepository
	reports      port.ReportRepository
	rides        port.RideRepository
	hasher       *security.Hasher
	logger       *zap.Logger
}

// NewAdminService constructs an admin service.
func NewAdminService(
	accounts port.AccountRepository,
	applications port.ApplicationRepository,
	reports port.ReportRepository,
	rides port.RideRepository,
	hasher *security.Hasher,
	logger *zap.Logger,
) *AdminService {
	if hasher == nil {
		hasher = security.NewHasher(0, 0, 0, 0, 0)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdminService{
		accounts:     accounts,
		applications: applications,
		reports:      reports,
		rides:        rides,
		hasher:       hasher,
		logger:       logger,
	}
}

// EnsureAdmin seeds the administrator account at startup. The seed is
// idempotent: an existing account with the configured email is left
// untouched, and a concurrent seed losing the insert race is not an error.
func (s *AdminService) EnsureAdmin(ctx context.Context, name, email, password string) error {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return fmt.Errorf("%w: admin email and password must be configured", ErrValidation)
	}

	if _, err := s.accounts.GetByEmail(ctx, email); err == nil {
		return nil
	} else if !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("check admin account: %w", err)
	}

	passwordHash, err := s.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	if name == "" {
		name = "Administrator"
	}
	account := domain.Account{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         domain.RoleAdmin,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.accounts.Create(ctx, account); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil
		}
		return fmt.Errorf("create admin account: %w", err)
	}

	s.logger.Info("admin account seeded",
		zap.String("account_id", account.ID),
		zap.String("email", logger.MaskEmail(account.Email)),
	)
	return nil
}

// DashboardStats summarizes the moderation workload.
type DashboardStats struct {
	PendingVerifications int
	PendingUpgrades      int
	PendingReports       int
	TotalAccounts        int
	Passengers           int
	ActiveDrivers        int
	SuspendedAccounts    int
	TotalRides           int
	OpenRides            int
}

// Stats gathers the dashboard counters.
func (s *AdminService) Stats(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{}

	var err error
	if stats.PendingVerifications, err = s.applications.CountVerifications(ctx, port.ApplicationFilter{Status: domain.ApplicationPending}); err != nil {
		return nil, fmt.Errorf("count pending verifications: %w", err)
	}
	if stats.PendingUpgrades, err = s.applications.CountUpgrades(ctx, port.ApplicationFilter{Status: domain.ApplicationPending}); err != nil {
		return nil, fmt.Errorf("count pending upgrades: %w", err)
	}
	if stats.PendingReports, err = s.reports.Count(ctx, port.ReportFilter{Status: domain.ReportPending}); err != nil {
		return nil, fmt.Errorf("count pending reports: %w", err)
	}
	if stats.TotalAccounts, err = s.accounts.Count(ctx, port.AccountFilter{}); err != nil {
		return nil, fmt.Errorf("count accounts: %w", err)
	}

	if stats.Passengers, err = s.accounts.Count(ctx, port.AccountFilter{Role: domain.RolePassenger}); err != nil {
		return nil, fmt.Errorf("count passengers: %w", err)
	}

	notSuspended := false
	if stats.ActiveDrivers, err = s.accounts.Count(ctx, port.AccountFilter{Role: domain.RoleDriver, Suspended: &notSuspended}); err != nil {
		return nil, fmt.Errorf("count drivers: %w", err)
	}
	suspended := true
	if stats.SuspendedAccounts, err = s.accounts.Count(ctx, port.AccountFilter{Suspended: &suspended}); err != nil {
		return nil, fmt.Errorf("count suspended accounts: %w", err)
	}
	if stats.TotalRides, err = s.rides.Count(ctx, port.RideFilter{}); err != nil {
		return nil, fmt.Errorf("count rides: %w", err)
	}
	if stats.OpenRides, err = s.rides.Count(ctx, port.RideFilter{Status: domain.RideOpen}); err != nil {
		return nil, fmt.Errorf("count open rides: %w", err)
	}

	return stats, nil
}

// PendingVerifications lists verification applications awaiting review, oldest first.
func (s *AdminService) PendingVerifications(ctx context.Context, limit, offset int) ([]domain.VerificationApplication, error) {
	apps, err := s.applications.ListVerifications(ctx, port.ApplicationFilter{
		Status: domain.ApplicationPending,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return nil, fmt.Errorf("list verification applications: %w", err)
	}
	return apps, nil
}

// PendingUpgrades lists upgrade applications awaiting review, oldest first.
func (s *AdminService) PendingUpgrades(ctx context.Context, limit, offset int) ([]domain.UpgradeApplicationView, error) {
	apps, err := s.applications.ListUpgrades(ctx, port.ApplicationFilter{
		Status: domain.ApplicationPending,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return nil, fmt.Errorf("list upgrade applications: %w", err)
	}
	return apps, nil
}

// Reports lists reports with reporter, driver, and ride context.
func (s *AdminService) Reports(ctx context.Context, status domain.ReportStatus, limit, offset int) ([]domain.ReportView, error) {
	views, err := s.reports.List(ctx, port.ReportFilter{
		Status: status,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	return views, nil
}
