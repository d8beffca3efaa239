package port

import (
	"context"

	"github.com/rodriguesaradhan-web/kozhigo/internal/core/domain"
)

// RideFilter narrows ride listings.
type RideFilter struct {
	DriverID string
	Status   domain.RideStatus
	Limit    int
	Offset   int
}

// RideRepository persists published rides. Complete and Cancel are both
// guarded updates that refuse to move a ride already in a finished
// state: Complete loses with repository.ErrPreconditionFailed, Cancel
// treats it as a no-op.
type RideRepository interface {
	Create(ctx context.Context, ride domain.Ride) error
	GetByID(ctx context.Context, id string) (*domain.Ride, error)
	List(ctx context.Context, filter RideFilter) ([]domain.Ride, error)
	ListUnfinishedByDriver(ctx context.Context, driverID string) ([]domain.Ride, error)
	Complete(ctx context.Context, id string) error
	Cancel(ctx context.Context, id string) (bool, error)
	Count(ctx context.Context, filter RideFilter) (int, error)
}
