package port

import (
	"context"
	"time"

	"github.com/rodriguesaradhan-web/kozhigo/internal/core/domain"
)

// ReportFilter narrows report listings.
type ReportFilter struct {
	Status domain.ReportStatus
	Limit  int
	Offset int
}

// ReportRepository persists the report ledger. Resolve is a single
// compare-and-set on status: only one concurrent decision wins, the loser
// observes repository.ErrStaleStatus. ResolveWithSuspension commits the
// same compare-and-set together with the driver's suspended flag in one
// transaction, so a terminal ACCOUNT_DELETED report always has a
// suspended driver behind it.
type ReportRepository interface {
	Create(ctx context.Context, report domain.Report) error
	GetByID(ctx context.Context, id string) (*domain.Report, error)
	List(ctx context.Context, filter ReportFilter) ([]domain.ReportView, error)
	Resolve(ctx context.Context, id string, status domain.ReportStatus, note, reviewer string, at time.Time) error
	ResolveWithSuspension(ctx context.Context, id, driverID, note, reviewer string, at time.Time) error
	Count(ctx context.Context, filter ReportFilter) (int, error)
}
