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

// ApplicationRepository implements port.ApplicationRepository using
// PostgreSQL. Approvals run inside a transaction so the status
// compare-and-set and the identity-ledger mutation commit together.
type ApplicationRepository struct {
	exec    txBeginner
	builder squirrel.StatementBuilderType
}

// NewApplicationRepository wires a PostgreSQL-backed application repository.
func NewApplicationRepository(exec txBeginner) *ApplicationRepository {
	return &ApplicationRepository{
		exec:    exec,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateVerification inserts a new pending verification application.
func (r *ApplicationRepository) CreateVerification(ctx context.Context, app domain.VerificationApplication) error {
	stmt, args, err := r.builder.Insert("rides.verification_applications").
		Columns("id", "name", "student_id", "email", "password_hash", "evidence_url", "status", "created_at").
		Values(app.ID, app.Name, app.StudentID, app.Email, app.PasswordHash, app.EvidenceURL, app.Status, app.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert verification sql: %w", err)
	}

	if _, err := r.exec.Exec(ctx, stmt, args...); err != nil {
		return mapWriteError("insert verification application", err)
	}

	return nil
}

// GetVerificationByID retrieves a verification application.
func (r *ApplicationRepository) GetVerificationByID(ctx context.Context, id string) (*domain.VerificationApplication, error) {
	stmt, args, err := r.verificationSelect().Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select verification sql: %w", err)
	}

	app, err := scanVerification(r.exec.QueryRow(ctx, stmt, args...))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan verification application: %w", err)
	}

	return app, nil
}

// ListVerifications returns verification applications, oldest first.
func (r *ApplicationRepository) ListVerifications(ctx context.Context, filter port.ApplicationFilter) ([]domain.VerificationApplication, error) {
	query := r.verificationSelect().OrderBy("created_at ASC")
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
		return nil, fmt.Errorf("build list verifications sql: %w", err)
	}

	rows, err := r.exec.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("query verifications: %w", err)
	}
	defer rows.Close()

	apps := make([]domain.VerificationApplication, 0)
	for rows.Next() {
		app, err := scanVerification(rows)
		if err != nil {
			return nil, fmt.Errorf("scan verification application: %w", err)
		}
		apps = append(apps, *app)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate verifications: %w", err)
	}

	return apps, nil
}

// ApproveVerification flips the application to APPROVED and inserts the new
// account in one transaction. The status update is a compare-and-set: a
// concurrent decision makes it match nothing and the whole transaction
// rolls back with repository.ErrStaleStatus. A duplicate identity at
// insert time rolls back with repository.ErrDuplicate.
func (r *ApplicationRepository) ApproveVerification(ctx context.Context, id, reviewer string, at time.Time, account domain.Account) error {
	tx, err := r.exec.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin approve verification: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := r.casApplication(ctx, tx, "rides.verification_applications", id, domain.ApplicationApproved, nil, reviewer, at); err != nil {
		return err
	}

	var studentValue any
	if account.StudentID != nil && *account.StudentID != "" {
		studentValue = *account.StudentID
	}

	stmt, args, err := r.builder.Insert("rides.accounts").
		Columns("id", "name", "email", "student_id", "password_hash", "role", "suspended", "created_at").
		Values(account.ID, account.Name, account.Email, studentValue, account.PasswordHash, account.Role, account.Suspended, account.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert account sql: %w", err)
	}

	if _, err := tx.Exec(ctx, stmt, args...); err != nil {
		return mapWriteError("insert approved account", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit approve verification: %w", err)
	}

	return nil
}

// RejectVerification flips the application to REJECTED with a reason.
func (r *ApplicationRepository) RejectVerification(ctx context.Context, id, reviewer, reason string, at time.Time) error {
	return r.casApplication(ctx, r.exec, "rides.verification_applications", id, domain.ApplicationRejected, &reason, reviewer, at)
}

// CountVerifications returns the number of verification applications matching the filter.
func (r *ApplicationRepository) CountVerifications(ctx context.Context, filter port.ApplicationFilter) (int, error) {
	return r.countApplications(ctx, "rides.verification_applications", filter)
}

// CreateUpgrade inserts a new pending upgrade application.
func (r *ApplicationRepository) CreateUpgrade(ctx context.Context, app domain.UpgradeApplication) error {
	stmt, args, err := r.builder.Insert("rides.upgrade_applications").
		Columns("id", "account_id", "evidence_url", "status", "created_at").
		Values(app.ID, app.AccountID, app.EvidenceURL, app.Status, app.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert upgrade sql: %w", err)
	}

	if _, err := r.exec.Exec(ctx, stmt, args...); err != nil {
		return mapWriteError("insert upgrade application", err)
	}

	return nil
}

// GetUpgradeByID retrieves an upgrade application.
func (r *ApplicationRepository) GetUpgradeByID(ctx context.Context, id string) (*domain.UpgradeApplication, error) {
	stmt, args, err := r.upgradeSelect().Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select upgrade sql: %w", err)
	}

	app, err := scanUpgrade(r.exec.QueryRow(ctx, stmt, args...))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan upgrade application: %w", err)
	}

	return app, nil
}

// GetPendingUpgradeByAccount returns the account's PENDING upgrade
// application, if any. At most one can exist.
func (r *ApplicationRepository) GetPendingUpgradeByAccount(ctx context.Context, accountID string) (*domain.UpgradeApplication, error) {
	stmt, args, err := r.upgradeSelect().
		Where(squirrel.Eq{"account_id": accountID, "status": domain.ApplicationPending}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select pending upgrade sql: %w", err)
	}

	app, err := scanUpgrade(r.exec.QueryRow(ctx, stmt, args...))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan pending upgrade: %w", err)
	}

	return app, nil
}

// ListUpgrades returns upgrade applications joined with applicant details,
// oldest first.
func (r *ApplicationRepository) ListUpgrades(ctx context.Context, filter port.ApplicationFilter) ([]domain.UpgradeApplicationView, error) {
	query := r.builder.
		Select(
			"u.id", "u.account_id", "u.evidence_url", "u.status",
			"u.rejection_reason", "u.reviewed_by", "u.reviewed_at", "u.created_at",
			"a.name", "a.email",
		).
		From("rides.upgrade_applications u").
		Join("rides.accounts a ON a.id = u.account_id").
		OrderBy("u.created_at ASC")
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"u.status": filter.Status})
	}
	if filter.Limit > 0 {
		query = query.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		query = query.Offset(uint64(filter.Offset))
	}

	stmt, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list upgrades sql: %w", err)
	}

	rows, err := r.exec.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("query upgrades: %w", err)
	}
	defer rows.Close()

	views := make([]domain.UpgradeApplicationView, 0)
	for rows.Next() {
		var (
			view            domain.UpgradeApplicationView
			rejectionReason sql.NullString
			reviewedBy      sql.NullString
			reviewedAt      *time.Time
		)
		if err := rows.Scan(
			&view.ID, &view.AccountID, &view.EvidenceURL, &view.Status,
			&rejectionReason, &reviewedBy, &reviewedAt, &view.CreatedAt,
			&view.AccountName, &view.AccountEmail,
		); err != nil {
			return nil, fmt.Errorf("scan upgrade view: %w", err)
		}
		if rejectionReason.Valid {
			val := rejectionReason.String
			view.RejectionReason = &val
		}
		if reviewedBy.Valid {
			val := reviewedBy.String
			view.ReviewedBy = &val
		}
		view.ReviewedAt = reviewedAt
		views = append(views, view)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate upgrades: %w", err)
	}

	return views, nil
}

// ApproveUpgrade flips the application to APPROVED and promotes the account
// to driver in one transaction. The role update is guarded: it matches
// nothing if the account is suspended or already a driver, in which case
// the transaction rolls back with repository.ErrPreconditionFailed.
func (r *ApplicationRepository) ApproveUpgrade(ctx context.Context, id, accountID, reviewer string, at time.Time) error {
	tx, err := r.exec.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin approve upgrade: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := r.casApplication(ctx, tx, "rides.upgrade_applications", id, domain.ApplicationApproved, nil, reviewer, at); err != nil {
		return err
	}

	stmt, args, err := r.builder.Update("rides.accounts").
		Set("role", domain.RoleDriver).
		Where(squirrel.Eq{"id": accountID, "role": domain.RolePassenger, "suspended": false}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build upgrade role sql: %w", err)
	}

	ct, err := tx.Exec(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("upgrade account role: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return repository.ErrPreconditionFailed
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit approve upgrade: %w", err)
	}

	return nil
}

// RejectUpgrade flips the application to REJECTED with a reason.
func (r *ApplicationRepository) RejectUpgrade(ctx context.Context, id, reviewer, reason string, at time.Time) error {
	return r.casApplication(ctx, r.exec, "rides.upgrade_applications", id, domain.ApplicationRejected, &reason, reviewer, at)
}

// CountUpgrades returns the number of upgrade applications matching the filter.
func (r *ApplicationRepository) CountUpgrades(ctx context.Context, filter port.ApplicationFilter) (int, error) {
	return r.countApplications(ctx, "rides.upgrade_applications", filter)
}

func (r *ApplicationRepository) countApplications(ctx context.Context, table string, filter port.ApplicationFilter) (int, error) {
	query := r.builder.Select("COUNT(*)").From(table)
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"status": filter.Status})
	}

	stmt, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count applications sql: %w", err)
	}

	var count int64
	if err := r.exec.QueryRow(ctx, stmt, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("scan applications count: %w", err)
	}

	return int(count), nil
}

// casApplication performs the PENDING→terminal compare-and-set shared by
// both application tables.
func (r *ApplicationRepository) casApplication(ctx context.Context, exec pgExecutor, table, id string, status domain.ApplicationStatus, reason *string, reviewer string, at time.Time) error {
	update := r.builder.Update(table).
		Set("status", status).
		Set("reviewed_by", reviewer).
		Set("reviewed_at", at).
		Where(squirrel.Eq{"id": id, "status": domain.ApplicationPending})
	if reason != nil {
		update = update.Set("rejection_reason", *reason)
	}

	stmt, args, err := update.ToSql()
	if err != nil {
		return fmt.Errorf("build application status sql: %w", err)
	}

	ct, err := exec.Exec(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("update application status: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return repository.ErrStaleStatus
	}

	return nil
}

func (r *ApplicationRepository) verificationSelect() squirrel.SelectBuilder {
	return r.builder.Select(
		"id", "name", "student_id", "email", "password_hash", "evidence_url",
		"status", "rejection_reason", "reviewed_by", "reviewed_at", "created_at",
	).From("rides.verification_applications")
}

func (r *ApplicationRepository) upgradeSelect() squirrel.SelectBuilder {
	return r.builder.Select(
		"id", "account_id", "evidence_url", "status",
		"rejection_reason", "reviewed_by", "reviewed_at", "created_at",
	).From("rides.upgrade_applications")
}

func scanVerification(row pgx.Row) (*domain.VerificationApplication, error) {
	var (
		app             domain.VerificationApplication
		rejectionReason sql.NullString
		reviewedBy      sql.NullString
		reviewedAt      *time.Time
	)

	if err := row.Scan(
		&app.ID, &app.Name, &app.StudentID, &app.Email, &app.PasswordHash, &app.EvidenceURL,
		&app.Status, &rejectionReason, &reviewedBy, &reviewedAt, &app.CreatedAt,
	); err != nil {
		return nil, err
	}

	if rejectionReason.Valid {
		val := rejectionReason.String
		app.RejectionReason = &val
	}
	if reviewedBy.Valid {
		val := reviewedBy.String
		app.ReviewedBy = &val
	}
	app.ReviewedAt = reviewedAt

	return &app, nil
}

func scanUpgrade(row pgx.Row) (*domain.UpgradeApplication, error) {
	var (
		app             domain.UpgradeApplication
		rejectionReason sql.NullString
		reviewedBy      sql.NullString
		reviewedAt      *time.Time
	)

	if err := row.Scan(
		&app.ID, &app.AccountID, &app.EvidenceURL, &app.Status,
		&rejectionReason, &reviewedBy, &reviewedAt, &app.CreatedAt,
	); err != nil {
		return nil, err
	}

	if rejectionReason.Valid {
		val := rejectionReason.String
		app.RejectionReason = &val
	}
	if reviewedBy.Valid {
		val := reviewedBy.String
		app.ReviewedBy = &val
	}
	app.ReviewedAt = reviewedAt

	return &app, nil
}

var _ port.ApplicationRepository = (*ApplicationRepository)(nil)
