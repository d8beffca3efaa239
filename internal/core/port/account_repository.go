package port

import (
	"context"

	"github.com/rodriguesaradhan-web/kozhigo/internal/core/domain"
)

// AccountFilter narrows account listing and counting.
type AccountFilter struct {
	Role      domain.AccountRole
	Suspended *bool
	Limit     int
	Offset    int
}

// AccountRepository exposes persistence behavior for the identity ledger.
// Account state changes flow exclusively through these operations; the
// suspended flag flips inside ReportRepository.ResolveWithSuspension so
// it can never commit apart from the report decision.
type AccountRepository interface {
	Create(ctx context.Context, account domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	GetByStudentID(ctx context.Context, studentID string) (*domain.Account, error)
	AppendWarning(ctx context.Context, warning domain.Warning) error
	ListWarnings(ctx context.Context, accountID string) ([]domain.Warning, error)
	Count(ctx context.Context, filter AccountFilter) (int, error)
}
