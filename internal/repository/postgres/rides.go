package postgres

import (
	"context"
	"fmt"

	squirrel "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/rodriguesaradhan-web/kozhigo/internal/core/domain"
	"github.com/rodriguesaradhan-web/kozhigo/internal/core/port"
	"github.com/rodriguesaradhan-web/kozhigo/internal/repository"
)

// RideRepository implements port.RideRepository using PostgreSQL.
type RideRepository struct {
	exec    txBeginner
	builder squirrel.StatementBuilderType
}

// NewRideRepository wires a PostgreSQL-backed ride repository.
func NewRideRepository(exec txBeginner) *RideRepository {
	return &RideRepository{
		exec:    exec,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new ride listing.
func (r *RideRepository) Create(ctx context.Context, ride domain.Ride) error {
	stmt, args, err := r.builder.Insert("rides.rides").
		Columns("id", "driver_id", "origin", "destination", "departure_at", "seats", "price", "status", "created_at").
		Values(ride.ID, ride.DriverID, ride.Origin, ride.Destination, ride.DepartureAt, ride.Seats, ride.Price, ride.Status, ride.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert ride sql: %w", err)
	}

	if _, err := r.exec.Exec(ctx, stmt, args...); err != nil {
		return mapWriteError("insert ride", err)
	}

	return nil
}

// GetByID retrieves a ride by identifier.
func (r *RideRepository) GetByID(ctx context.Context, id string) (*domain.Ride, error) {
	stmt, args, err := r.rideSelect().Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select ride sql: %w", err)
	}

	row := r.exec.QueryRow(ctx, stmt, args...)

	ride, err := scanRide(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan ride: %w", err)
	}

	return ride, nil
}

// List returns rides matching the filter, soonest departure first.
func (r *RideRepository) List(ctx context.Context, filter port.RideFilter) ([]domain.Ride, error) {
	query := r.rideSelect().OrderBy("departure_at ASC")
	if filter.DriverID != "" {
		query = query.Where(squirrel.Eq{"driver_id": filter.DriverID})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"status": filter.Status})
	}
	if filter.Limit > 0 {
		query = query.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		query = query.Offset(uint64(filter.Offset))
	}

	stmt, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list rides sql: %w", err)
	}

	return r.queryRides(ctx, stmt, args)
}

// ListUnfinishedByDriver enumerates every ride of the driver that has not
// yet reached a terminal status.
func (r *RideRepository) ListUnfinishedByDriver(ctx context.Context, driverID string) ([]domain.Ride, error) {
	stmt, args, err := r.rideSelect().
		Where(squirrel.Eq{"driver_id": driverID}).
		Where(squirrel.NotEq{"status": []domain.RideStatus{domain.RideCompleted, domain.RideCancelled}}).
		OrderBy("departure_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build unfinished rides sql: %w", err)
	}

	return r.queryRides(ctx, stmt, args)
}

// Complete moves a ride to COMPLETED. The update is guarded against the
// finished set, so a ride the suspension sweep already cancelled cannot
// be flipped back; a lost race surfaces repository.ErrPreconditionFailed.
func (r *RideRepository) Complete(ctx context.Context, id string) error {
	stmt, args, err := r.builder.Update("rides.rides").
		Set("status", domain.RideCompleted).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.NotEq{"status": []domain.RideStatus{domain.RideCompleted, domain.RideCancelled}}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build complete ride sql: %w", err)
	}

	ct, err := r.exec.Exec(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("complete ride: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return repository.ErrPreconditionFailed
	}

	return nil
}

// Cancel moves a ride to CANCELLED unless it is already finished. The
// update is guarded, so re-applying it to a completed or already
// cancelled ride is a no-op; the bool reports whether a row changed.
func (r *RideRepository) Cancel(ctx context.Context, id string) (bool, error) {
	stmt, args, err := r.builder.Update("rides.rides").
		Set("status", domain.RideCancelled).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.NotEq{"status": []domain.RideStatus{domain.RideCompleted, domain.RideCancelled}}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build cancel ride sql: %w", err)
	}

	ct, err := r.exec.Exec(ctx, stmt, args...)
	if err != nil {
		return false, fmt.Errorf("cancel ride: %w", err)
	}

	return ct.RowsAffected() > 0, nil
}

// Count returns the number of rides matching the filter.
func (r *RideRepository) Count(ctx context.Context, filter port.RideFilter) (int, error) {
	query := r.builder.Select("COUNT(*)").From("rides.rides")
	if filter.DriverID != "" {
		query = query.Where(squirrel.Eq{"driver_id": filter.DriverID})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"status": filter.Status})
	}

	stmt, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count rides sql: %w", err)
	}

	var count int64
	if err := r.exec.QueryRow(ctx, stmt, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("scan rides count: %w", err)
	}

	return int(count), nil
}

func (r *RideRepository) rideSelect() squirrel.SelectBuilder {
	return r.builder.
		Select("id", "driver_id", "origin", "destination", "departure_at", "seats", "price", "status", "created_at").
		From("rides.rides")
}

func (r *RideRepository) queryRides(ctx context.Context, stmt string, args []any) ([]domain.Ride, error) {
	rows, err := r.exec.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("query rides: %w", err)
	}
	defer rows.Close()

	rides := make([]domain.Ride, 0)
	for rows.Next() {
		ride, err := scanRide(rows)
		if err != nil {
			return nil, fmt.Errorf("scan ride: %w", err)
		}
		rides = append(rides, *ride)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rides: %w", err)
	}

	return rides, nil
}

func scanRide(row pgx.Row) (*domain.Ride, error) {
	var ride domain.Ride
	if err := row.Scan(
		&ride.ID, &ride.DriverID, &ride.Origin, &ride.Destination,
		&ride.DepartureAt, &ride.Seats, &ride.Price, &ride.Status, &ride.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &ride, nil
}

var _ port.RideRepository = (*RideRepository)(nil)
