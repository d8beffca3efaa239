package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rodriguesaradhan-web/kozhigo/internal/core/domain"
	"github.com/rodriguesaradhan-web/kozhigo/internal/repository"
)

func newRideFixture() (*RideService, *mockAccountRepository, *mockRideRepository) {
	accounts := newMockAccountRepository()
	rides := newMockRideRepository()
	return NewRideService(accounts, rides, nil), accounts, rides
}

func futureListing() RideListing {
	return RideListing{
		Origin:      "Dorm A",
		Destination: "Main Campus",
		DepartureAt: time.Now().Add(2 * time.Hour),
		Seats:       3,
		Price:       decimal.NewFromInt(5),
	}
}

func TestPublishRide(t *testing.T) {
	svc, accounts, rides := newRideFixture()
	accounts.getByIDResult = &domain.Account{ID: "driver-1", Role: domain.RoleDriver}

	ride, err := svc.Publish(context.Background(), "driver-1", futureListing())
	if err != nil {
		t.Fatalf("Publish returned error: %v", err)
	}
	if rides.createCalls != 1 {
		t.Fatalf("expected 1 create call, got %d", rides.createCalls)
	}
	if ride.Status != domain.RideOpen {
		t.Fatalf("expected OPEN status, got %q", ride.Status)
	}
	if ride.DriverID != "driver-1" {
		t.Fatalf("unexpected driver %q", ride.DriverID)
	}
}

func TestPublishRideDepartureInPast(t *testing.T) {
	svc, accounts, _ := newRideFixture()
	accounts.getByIDResult = &domain.Account{ID: "driver-1", Role: domain.RoleDriver}

	listing := futureListing()
	listing.DepartureAt = time.Now().Add(-time.Hour)

	if _, err := svc.Publish(context.Background(), "driver-1", listing); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestPublishRideSeatsOutOfRange(t *testing.T) {
	svc, accounts, _ := newRideFixture()
	accounts.getByIDResult = &domain.Account{ID: "driver-1", Role: domain.RoleDriver}

	listing := futureListing()
	listing.Seats = 9

	if _, err := svc.Publish(context.Background(), "driver-1", listing); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestPublishRidePassengerForbidden(t *testing.T) {
	svc, accounts, rides := newRideFixture()
	accounts.getByIDResult = &domain.Account{ID: "account-1", Role: domain.RolePassenger}

	if _, err := svc.Publish(context.Background(), "account-1", futureListing()); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if rides.createCalls != 0 {
		t.Fatalf("passengers must not publish rides")
	}
}

func TestPublishRideSuspendedDriver(t *testing.T) {
	svc, accounts, _ := newRideFixture()
	accounts.getByIDResult = &domain.Account{ID: "driver-1", Role: domain.RoleDriver, Suspended: true}

	if _, err := svc.Publish(context.Background(), "driver-1", futureListing()); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestCompleteRide(t *testing.T) {
	svc, _, rides := newRideFixture()
	rides.getByIDResult = &domain.Ride{ID: "ride-1", DriverID: "driver-1", Status: domain.RideOpen}

	if err := svc.Complete(context.Background(), "ride-1", "driver-1"); err != nil {
		t.Fatalf("Complete returned error: %v", err)
	}
	if rides.completeCalls != 1 || rides.completedID != "ride-1" {
		t.Fatalf("expected ride-1 completed, got %d calls for %q", rides.completeCalls, rides.completedID)
	}
}

func TestCompleteRideLostRace(t *testing.T) {
	svc, _, rides := newRideFixture()
	rides.getByIDResult = &domain.Ride{ID: "ride-1", DriverID: "driver-1", Status: domain.RideOpen}
	rides.completeErr = repository.ErrPreconditionFailed

	if err := svc.Complete(context.Background(), "ride-1", "driver-1"); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict when the ride finished underneath, got %v", err)
	}
}

func TestCompleteRideAlreadyFinished(t *testing.T) {
	svc, _, rides := newRideFixture()
	rides.getByIDResult = &domain.Ride{ID: "ride-1", DriverID: "driver-1", Status: domain.RideCancelled}

	if err := svc.Complete(context.Background(), "ride-1", "driver-1"); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestCompleteRideForeignDriver(t *testing.T) {
	svc, _, rides := newRideFixture()
	rides.getByIDResult = &domain.Ride{ID: "ride-1", DriverID: "driver-1", Status: domain.RideOpen}

	if err := svc.Complete(context.Background(), "ride-1", "driver-2"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if rides.completeCalls != 0 {
		t.Fatalf("foreign driver must not complete the ride")
	}
}

func TestCancelRideIdempotent(t *testing.T) {
	svc, _, rides := newRideFixture()
	rides.getByIDResult = &domain.Ride{ID: "ride-1", DriverID: "driver-1", Status: domain.RideCancelled}
	rides.cancelNoOpIDs["ride-1"] = true

	if err := svc.Cancel(context.Background(), "ride-1", "driver-1"); err != nil {
		t.Fatalf("cancelling a finished ride must be a no-op, got %v", err)
	}
}
