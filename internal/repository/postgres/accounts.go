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

// AccountRepository implements port.AccountRepository using PostgreSQL.
type AccountRepository struct {
	exec    txBeginner
	builder squirrel.StatementBuilderType
}

// NewAccountRepository wires a PostgreSQL-backed account repository.
func NewAccountRepository(exec txBeginner) *AccountRepository {
	return &AccountRepository{
		exec:    exec,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const accountColumns = "id, name, email, student_id, password_hash, role, suspended, created_at"

// Create inserts a new account row. A uniqueness collision on email or
// student id surfaces as repository.ErrDuplicate.
func (r *AccountRepository) Create(ctx context.Context, account domain.Account) error {
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

	if _, err := r.exec.Exec(ctx, stmt, args...); err != nil {
		return mapWriteError("insert account", err)
	}

	return nil
}

// GetByID retrieves an account by identifier.
func (r *AccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// GetByEmail retrieves an account by its normalized email.
func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	return r.getOne(ctx, squirrel.Eq{"email": email})
}

// GetByStudentID retrieves an account by its institutional identifier.
func (r *AccountRepository) GetByStudentID(ctx context.Context, studentID string) (*domain.Account, error) {
	return r.getOne(ctx, squirrel.Eq{"student_id": studentID})
}

func (r *AccountRepository) getOne(ctx context.Context, pred squirrel.Eq) (*domain.Account, error) {
	stmt, args, err := r.builder.
		Select("id", "name", "email", "student_id", "password_hash", "role", "suspended", "created_at").
		From("rides.accounts").
		Where(pred).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select account sql: %w", err)
	}

	row := r.exec.QueryRow(ctx, stmt, args...)

	account, err := scanAccount(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan account: %w", err)
	}

	return account, nil
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var (
		account   domain.Account
		studentID sql.NullString
	)

	if err := row.Scan(
		&account.ID,
		&account.Name,
		&account.Email,
		&studentID,
		&account.PasswordHash,
		&account.Role,
		&account.Suspended,
		&account.CreatedAt,
	); err != nil {
		return nil, err
	}

	if studentID.Valid {
		val := studentID.String
		account.StudentID = &val
	}

	return &account, nil
}

// AppendWarning inserts a warning row. Warnings are append-only; no delete
// operation exists.
func (r *AccountRepository) AppendWarning(ctx context.Context, warning domain.Warning) error {
	issuedAt := warning.IssuedAt
	if issuedAt.IsZero() {
		issuedAt = time.Now().UTC()
	}

	stmt, args, err := r.builder.Insert("rides.account_warnings").
		Columns("id", "account_id", "reason", "report_id", "issued_at").
		Values(warning.ID, warning.AccountID, warning.Reason, warning.ReportID, issuedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert warning sql: %w", err)
	}

	if _, err := r.exec.Exec(ctx, stmt, args...); err != nil {
		return mapWriteError("insert warning", err)
	}

	return nil
}

// ListWarnings returns the warnings for an account, newest first.
func (r *AccountRepository) ListWarnings(ctx context.Context, accountID string) ([]domain.Warning, error) {
	stmt, args, err := r.builder.
		Select("id", "account_id", "reason", "report_id", "issued_at").
		From("rides.account_warnings").
		Where(squirrel.Eq{"account_id": accountID}).
		OrderBy("issued_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select warnings sql: %w", err)
	}

	rows, err := r.exec.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("query warnings: %w", err)
	}
	defer rows.Close()

	warnings := make([]domain.Warning, 0)
	for rows.Next() {
		var warning domain.Warning
		if err := rows.Scan(&warning.ID, &warning.AccountID, &warning.Reason, &warning.ReportID, &warning.IssuedAt); err != nil {
			return nil, fmt.Errorf("scan warning: %w", err)
		}
		warnings = append(warnings, warning)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate warnings: %w", err)
	}

	return warnings, nil
}

// Count returns the number of accounts matching the filter.
func (r *AccountRepository) Count(ctx context.Context, filter port.AccountFilter) (int, error) {
	query := r.builder.Select("COUNT(*)").From("rides.accounts")

	if filter.Role != "" {
		query = query.Where(squirrel.Eq{"role": filter.Role})
	}
	if filter.Suspended != nil {
		query = query.Where(squirrel.Eq{"suspended": *filter.Suspended})
	}

	stmt, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count accounts sql: %w", err)
	}

	var count int64
	if err := r.exec.QueryRow(ctx, stmt, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("scan accounts count: %w", err)
	}

	return int(count), nil
}

var _ port.AccountRepository = (*AccountRepository)(nil)
