package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v2"

	"github.com/rodriguesaradhan-web/kozhigo/internal/core/domain"
	"github.com/rodriguesaradhan-web/kozhigo/internal/repository"
)

func TestAccountRepository_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewAccountRepository(mock)

	createdAt := time.Now().UTC()
	studentID := "A1234567"
	account := domain.Account{
		ID:           "account-1",
		Name:         "Dana Osei",
		Email:        "dana@campus.edu",
		StudentID:    &studentID,
		PasswordHash: "argon2id-hash",
		Role:         domain.RolePassenger,
		CreatedAt:    createdAt,
	}

	mock.ExpectExec(`INSERT INTO rides\.accounts`).
		WithArgs(
			account.ID,
			account.Name,
			account.Email,
			studentID,
			account.PasswordHash,
			account.Role,
			false,
			createdAt,
		).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	if err := repo.Create(context.Background(), account); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAccountRepository_CreateDuplicate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewAccountRepository(mock)

	mock.ExpectExec(`INSERT INTO rides\.accounts`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "accounts_email_key"})

	err = repo.Create(context.Background(), domain.Account{
		ID:    "account-1",
		Email: "dana@campus.edu",
		Role:  domain.RolePassenger,
	})
	if !errors.Is(err, repository.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAccountRepository_GetByEmail(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewAccountRepository(mock)

	createdAt := time.Now().UTC()
	rows := pgxmock.NewRows([]string{
		"id", "name", "email", "student_id", "password_hash", "role", "suspended", "created_at",
	}).AddRow(
		"account-1", "Dana Osei", "dana@campus.edu", nil, "hash", domain.AccountRole("passenger"), false, createdAt,
	)

	mock.ExpectQuery(`SELECT .*FROM rides\.accounts`).WithArgs("dana@campus.edu").WillReturnRows(rows)

	account, err := repo.GetByEmail(context.Background(), "dana@campus.edu")
	if err != nil {
		t.Fatalf("GetByEmail returned error: %v", err)
	}
	if account.ID != "account-1" {
		t.Fatalf("expected account-1, got %s", account.ID)
	}
	if account.StudentID != nil {
		t.Fatalf("expected nil student id, got %v", *account.StudentID)
	}
	if account.Role != domain.RolePassenger {
		t.Fatalf("expected passenger role, got %s", account.Role)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAccountRepository_GetByIDNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewAccountRepository(mock)

	rows := pgxmock.NewRows([]string{
		"id", "name", "email", "student_id", "password_hash", "role", "suspended", "created_at",
	})

	mock.ExpectQuery(`SELECT .*FROM rides\.accounts`).WithArgs("missing").WillReturnRows(rows)

	if _, err := repo.GetByID(context.Background(), "missing"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAccountRepository_ListWarnings(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewAccountRepository(mock)

	now := time.Now().UTC()
	rows := pgxmock.NewRows([]string{"id", "account_id", "reason", "report_id", "issued_at"}).
		AddRow("warning-2", "account-1", "no show", "report-2", now).
		AddRow("warning-1", "account-1", "overcharging", "report-1", now.Add(-time.Hour))

	mock.ExpectQuery(`SELECT .*FROM rides\.account_warnings`).WithArgs("account-1").WillReturnRows(rows)

	warnings, err := repo.ListWarnings(context.Background(), "account-1")
	if err != nil {
		t.Fatalf("ListWarnings returned error: %v", err)
	}
	if len(warnings) != 2 {
		t.Fatalf("expected two warnings, got %d", len(warnings))
	}
	if warnings[0].ID != "warning-2" || warnings[1].ID != "warning-1" {
		t.Fatalf("unexpected warning order: %+v", warnings)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
