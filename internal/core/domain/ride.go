package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RideStatus enumerates the lifecycle of a published ride.
type RideStatus string

const (
	RideOpen       RideStatus = "OPEN"
	RideInProgress RideStatus = "IN_PROGRESS"
	RideCompleted  RideStatus = "COMPLETED"
	RideCancelled  RideStatus = "CANCELLED"
)

// Finished reports whether the ride reached a terminal state. Finished
// rides are exempt from cascade cancellation.
func (s RideStatus) Finished() bool {
	return s == RideCompleted || s == RideCancelled
}

// Ride is a seat offer published by a driver.
type Ride struct {
	ID          string
	DriverID    string
	Origin      string
	Destination string
	DepartureAt time.Time
	Seats       int
	Price       decimal.Decimal
	Status      RideStatus
	CreatedAt   time.Time
}
