package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	uuid "github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/rodriguesaradhan-web/kozhigo/internal/core/domain"
	"github.com/rodriguesaradhan-web/kozhigo/internal/core/port"
	"github.com/rodriguesaradhan-web/kozhigo/internal/repository"
)

const maxRideSeats = 8

// RideService publishes and manages ride listings.
type RideService struct {
	accounts port.AccountRepository
	rides    port.RideRepository
	logger   *zap.Logger
}

// NewRideService constructs a ride service.
func NewRideService(accounts port.AccountRepository, rides port.RideRepository, logger *zap.Logger) *RideService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RideService{accounts: accounts, rides: rides, logger: logger}
}

// RideListing is the input for publishing a new ride.
type RideListing struct {
	Origin      string
	Destination string
	DepartureAt time.Time
	Seats       int
	Price       decimal.Decimal
}

// Publish creates an open ride for the driver.
func (s *RideService) Publish(ctx context.Context, driverID string, listing RideListing) (*domain.Ride, error) {
	listing.Origin = strings.TrimSpace(listing.Origin)
	listing.Destination = strings.TrimSpace(listing.Destination)

	if listing.Origin == "" || listing.Destination == "" {
		return nil, fmt.Errorf("%w: origin and destination are required", ErrValidation)
	}
	if listing.DepartureAt.IsZero() || listing.DepartureAt.Before(time.Now().UTC()) {
		return nil, fmt.Errorf("%w: departure must be in the future", ErrValidation)
	}
	if listing.Seats < 1 || listing.Seats > maxRideSeats {
		return nil, fmt.Errorf("%w: seats must be between 1 and %d", ErrValidation, maxRideSeats)
	}
	if listing.Price.IsNegative() {
		return nil, fmt.Errorf("%w: price cannot be negative", ErrValidation)
	}

	driver, err := s.accounts.GetByID(ctx, driverID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load driver: %w", err)
	}
	if driver.Suspended {
		return nil, fmt.Errorf("%w: account is suspended", ErrConflict)
	}
	if driver.Role != domain.RoleDriver {
		return nil, fmt.Errorf("%w: only drivers can publish rides", ErrForbidden)
	}

	ride := domain.Ride{
		ID:          uuid.NewString(),
		DriverID:    driverID,
		Origin:      listing.Origin,
		Destination: listing.Destination,
		DepartureAt: listing.DepartureAt.UTC(),
		Seats:       listing.Seats,
		Price:       listing.Price,
		Status:      domain.RideOpen,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.rides.Create(ctx, ride); err != nil {
		return nil, fmt.Errorf("create ride: %w", err)
	}

	s.logger.Info("ride published",
		zap.String("ride_id", ride.ID),
		zap.String("driver_id", driverID),
	)

	return &ride, nil
}

// List returns rides matching the filter.
func (s *RideService) List(ctx context.Context, filter port.RideFilter) ([]domain.Ride, error) {
	rides, err := s.rides.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list rides: %w", err)
	}
	return rides, nil
}

// Complete marks the driver's ride as completed. The write is a guarded
// transition, so a ride cancelled in the meantime (for instance by a
// suspension sweep) stays cancelled and the call reports a conflict.
func (s *RideService) Complete(ctx context.Context, rideID, driverID string) error {
	ride, err := s.ownedRide(ctx, rideID, driverID)
	if err != nil {
		return err
	}
	if ride.Status.Finished() {
		return fmt.Errorf("%w: ride already finished", ErrConflict)
	}

	if err := s.rides.Complete(ctx, rideID); err != nil {
		if errors.Is(err, repository.ErrPreconditionFailed) {
			return fmt.Errorf("%w: ride already finished", ErrConflict)
		}
		return fmt.Errorf("complete ride: %w", err)
	}

	return nil
}

// Cancel cancels the driver's ride. Cancelling a finished ride is a no-op.
func (s *RideService) Cancel(ctx context.Context, rideID, driverID string) error {
	if _, err := s.ownedRide(ctx, rideID, driverID); err != nil {
		return err
	}

	if _, err := s.rides.Cancel(ctx, rideID); err != nil {
		return fmt.Errorf("cancel ride: %w", err)
	}

	return nil
}

func (s *RideService) ownedRide(ctx context.Context, rideID, driverID string) (*domain.Ride, error) {
	ride, err := s.rides.GetByID(ctx, rideID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load ride: %w", err)
	}
	if ride.DriverID != driverID {
		return nil, fmt.Errorf("%w: ride belongs to another driver", ErrForbidden)
	}
	return ride, nil
}
