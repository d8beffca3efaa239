package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	squirrel "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/rodriguesaradhan-web/kozhigo/internal/core/domain"
	"github.com/rodriguesaradhan-web/kozhigo/internal/core/port"
	"github.com/rodriguesaradhan-web/kozhigo/internal/repository"
)

// ReportRepository implements port.ReportRepository using PostgreSQL.
type ReportRepository struct {
	exec    txBeginner
	builder squirrel.StatementBuilderType
}

// NewReportRepository wires a PostgreSQL-backed report repository.
func NewReportRepository(exec txBeginner) *ReportRepository {
	return &ReportRepository{
		exec:    exec,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new pending report.
func (r *ReportRepository) Create(ctx context.Context, report domain.Report) error {
	var rideValue any
	if report.RideID != nil && *report.RideID != "" {
		rideValue = *report.RideID
	}

	stmt, args, err := r.builder.Insert("rides.reports").
		Columns("id", "reporter_id", "driver_id", "ride_id", "reason", "description", "status", "admin_note", "created_at").
		Values(report.ID, report.ReporterID, report.DriverID, rideValue, report.Reason, report.Description, report.Status, report.AdminNote, report.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert report sql: %w", err)
	}

	if _, err := r.exec.Exec(ctx, stmt, args...); err != nil {
		return mapWriteError("insert report", err)
	}

	return nil
}

// GetByID retrieves a report by identifier.
func (r *ReportRepository) GetByID(ctx context.Context, id string) (*domain.Report, error) {
	stmt, args, err := r.builder.
		Select("id", "reporter_id", "driver_id", "ride_id", "reason", "description", "status", "admin_note", "reviewed_by", "reviewed_at", "created_at").
		From("rides.reports").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select report sql: %w", err)
	}

	row := r.exec.QueryRow(ctx, stmt, args...)

	var (
		report     domain.Report
		rideID     sql.NullString
		reviewedBy sql.NullString
		reviewedAt *time.Time
	)

	if err := row.Scan(
		&report.ID, &report.ReporterID, &report.DriverID, &rideID, &report.Reason,
		&report.Description, &report.Status, &report.AdminNote, &reviewedBy, &reviewedAt, &report.CreatedAt,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan report: %w", err)
	}

	if rideID.Valid {
		val := rideID.String
		report.RideID = &val
	}
	if reviewedBy.Valid {
		val := reviewedBy.String
		report.ReviewedBy = &val
	}
	report.ReviewedAt = reviewedAt

	return &report, nil
}

// List returns reports joined with reporter, driver, and ride summaries,
// newest first.
func (r *ReportRepository) List(ctx context.Context, filter port.ReportFilter) ([]domain.ReportView, error) {
	query := r.builder.
		Select(
			"rp.id", "rp.reporter_id", "rp.driver_id", "rp.ride_id", "rp.reason", "rp.description",
			"rp.status", "rp.admin_note", "rp.reviewed_by", "rp.reviewed_at", "rp.created_at",
			"rep.name", "rep.email", "rep.suspended",
			"drv.name", "drv.email", "drv.suspended",
			"rd.origin", "rd.destination", "rd.status",
		).
		From("rides.reports rp").
		Join("rides.accounts rep ON rep.id = rp.reporter_id").
		Join("rides.accounts drv ON drv.id = rp.driver_id").
		LeftJoin("rides.rides rd ON rd.id = rp.ride_id").
		OrderBy("rp.created_at DESC")
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"rp.status": filter.Status})
	}
	if filter.Limit > 0 {
		query = query.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		query = query.Offset(uint64(filter.Offset))
	}

	stmt, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list reports sql: %w", err)
	}

	rows, err := r.exec.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("query reports: %w", err)
	}
	defer rows.Close()

	views := make([]domain.ReportView, 0)
	for rows.Next() {
		var (
			view            domain.ReportView
			rideID          sql.NullString
			reviewedBy      sql.NullString
			reviewedAt      *time.Time
			rideOrigin      sql.NullString
			rideDestination sql.NullString
			rideStatus      sql.NullString
		)

		if err := rows.Scan(
			&view.ID, &view.ReporterID, &view.DriverID, &rideID, &view.Reason, &view.Description,
			&view.Status, &view.AdminNote, &reviewedBy, &reviewedAt, &view.CreatedAt,
			&view.Reporter.Name, &view.Reporter.Email, &view.Reporter.Suspended,
			&view.Driver.Name, &view.Driver.Email, &view.Driver.Suspended,
			&rideOrigin, &rideDestination, &rideStatus,
		); err != nil {
			return nil, fmt.Errorf("scan report view: %w", err)
		}

		view.Reporter.ID = view.ReporterID
		view.Driver.ID = view.DriverID
		if rideID.Valid {
			val := rideID.String
			view.RideID = &val
			view.Ride = &domain.RideSummary{
				ID:          val,
				Origin:      rideOrigin.String,
				Destination: rideDestination.String,
				Status:      domain.RideStatus(rideStatus.String),
			}
		}
		if reviewedBy.Valid {
			val := reviewedBy.String
			view.ReviewedBy = &val
		}
		view.ReviewedAt = reviewedAt

		views = append(views, view)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reports: %w", err)
	}

	return views, nil
}

// Resolve performs the PENDING→terminal compare-and-set. A lost race
// surfaces repository.ErrStaleStatus; the row is left untouched.
func (r *ReportRepository) Resolve(ctx context.Context, id string, status domain.ReportStatus, note, reviewer string, at time.Time) error {
	return r.resolve(ctx, r.exec, id, status, note, reviewer, at)
}

// ResolveWithSuspension performs the ACCOUNT_DELETED compare-and-set and
// flips the driver's suspended flag in one transaction. Either both
// commit or neither does; a failed suspension rolls the resolution back
// so the decision can be retried.
func (r *ReportRepository) ResolveWithSuspension(ctx context.Context, id, driverID, note, reviewer string, at time.Time) error {
	tx, err := r.exec.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin resolve with suspension: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := r.resolve(ctx, tx, id, domain.ReportAccountDeleted, note, reviewer, at); err != nil {
		return err
	}

	stmt, args, err := r.builder.Update("rides.accounts").
		Set("suspended", true).
		Where(squirrel.Eq{"id": driverID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build suspend driver sql: %w", err)
	}

	ct, err := tx.Exec(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("suspend driver: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit resolve with suspension: %w", err)
	}

	return nil
}

func (r *ReportRepository) resolve(ctx context.Context, exec pgExecutor, id string, status domain.ReportStatus, note, reviewer string, at time.Time) error {
	stmt, args, err := r.builder.Update("rides.reports").
		Set("status", status).
		Set("admin_note", note).
		Set("reviewed_by", reviewer).
		Set("reviewed_at", at).
		Where(squirrel.Eq{"id": id, "status": domain.ReportPending}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build resolve report sql: %w", err)
	}

	ct, err := exec.Exec(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("resolve report: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return repository.ErrStaleStatus
	}

	return nil
}

// Count returns the number of reports matching the filter.
func (r *ReportRepository) Count(ctx context.Context, filter port.ReportFilter) (int, error) {
	query := r.builder.Select("COUNT(*)").From("rides.reports")
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"status": filter.Status})
	}

	stmt, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count reports sql: %w", err)
	}

	var count int64
	if err := r.exec.QueryRow(ctx, stmt, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("scan reports count: %w", err)
	}

	return int(count), nil
}

var _ port.ReportRepository = (*ReportRepository)(nil)
