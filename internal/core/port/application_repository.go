package port

import (
	"context"
	"time"

	"github.com/rodriguesaradhan-web/kozhigo/internal/core/domain"
)

// ApplicationFilter narrows application listings by status.
type ApplicationFilter struct {
	Status domain.ApplicationStatus
	Limit  int
	Offset int
}

// ApplicationRepository persists both pending-application queues.
//
// ApproveVerification and ApproveUpgrade are atomic: the PENDING→APPROVED
// compare-and-set and the identity-ledger mutation commit together or not
// at all. A lost compare-and-set surfaces repository.ErrStaleStatus; a
// guarded account update that matches no row surfaces
// repository.ErrPreconditionFailed.
type ApplicationRepository interface {
	CreateVerification(ctx context.Context, app domain.VerificationApplication) error
	GetVerificationByID(ctx context.Context, id string) (*domain.VerificationApplication, error)
	ListVerifications(ctx context.Context, filter ApplicationFilter) ([]domain.VerificationApplication, error)
	ApproveVerification(ctx context.Context, id, reviewer string, at time.Time, account domain.Account) error
	RejectVerification(ctx context.Context, id, reviewer, reason string, at time.Time) error
	CountVerifications(ctx context.Context, filter ApplicationFilter) (int, error)

	CreateUpgrade(ctx context.Context, app domain.UpgradeApplication) error
	GetUpgradeByID(ctx context.Context, id string) (*domain.UpgradeApplication, error)
	GetPendingUpgradeByAccount(ctx context.Context, accountID string) (*domain.UpgradeApplication, error)
	ListUpgrades(ctx context.Context, filter ApplicationFilter) ([]domain.UpgradeApplicationView, error)
	ApproveUpgrade(ctx context.Context, id, accountID, reviewer string, at time.Time) error
	RejectUpgrade(ctx context.Context, id, reviewer, reason string, at time.Time) error
	CountUpgrades(ctx context.Context, filter ApplicationFilter) (int, error)
}
