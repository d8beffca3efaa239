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

func TestApplicationRepository_ApproveVerification(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewApplicationRepository(mock)

	now := time.Now().UTC()
	studentID := "A1234567"
	account := domain.Account{
		ID:           "account-9",
		Name:         "Dana Osei",
		Email:        "dana@campus.edu",
		StudentID:    &studentID,
		PasswordHash: "hash",
		Role:         domain.RolePassenger,
		CreatedAt:    now,
	}

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE rides\.verification_applications`).
		WithArgs(domain.ApplicationApproved, "admin-1", now, "app-1", domain.ApplicationPending).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(`INSERT INTO rides\.accounts`).
		WithArgs(account.ID, account.Name, account.Email, studentID, account.PasswordHash, account.Role, false, now).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()
	mock.ExpectRollback()

	if err := repo.ApproveVerification(context.Background(), "app-1", "admin-1", now, account); err != nil {
		t.Fatalf("ApproveVerification returned error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestApplicationRepository_ApproveVerificationStale(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewApplicationRepository(mock)

	now := time.Now().UTC()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE rides\.verification_applications`).
		WithArgs(domain.ApplicationApproved, "admin-1", now, "app-1", domain.ApplicationPending).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectRollback()

	err = repo.ApproveVerification(context.Background(), "app-1", "admin-1", now, domain.Account{ID: "account-9"})
	if !errors.Is(err, repository.ErrStaleStatus) {
		t.Fatalf("expected ErrStaleStatus, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestApplicationRepository_ApproveVerificationDuplicateIdentity(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewApplicationRepository(mock)

	now := time.Now().UTC()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE rides\.verification_applications`).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(`INSERT INTO rides\.accounts`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "accounts_student_id_key"})
	mock.ExpectRollback()

	err = repo.ApproveVerification(context.Background(), "app-1", "admin-1", now, domain.Account{ID: "account-9"})
	if !errors.Is(err, repository.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestApplicationRepository_RejectVerification(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewApplicationRepository(mock)

	now := time.Now().UTC()

	mock.ExpectExec(`UPDATE rides\.verification_applications`).
		WithArgs(domain.ApplicationRejected, "admin-1", now, "blurry document", "app-1", domain.ApplicationPending).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	if err := repo.RejectVerification(context.Background(), "app-1", "admin-1", "blurry document", now); err != nil {
		t.Fatalf("RejectVerification returned error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestApplicationRepository_RejectVerificationAlreadyDecided(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewApplicationRepository(mock)

	mock.ExpectExec(`UPDATE rides\.verification_applications`).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err = repo.RejectVerification(context.Background(), "app-1", "admin-1", "blurry", time.Now().UTC())
	if !errors.Is(err, repository.ErrStaleStatus) {
		t.Fatalf("expected ErrStaleStatus, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestApplicationRepository_ApproveUpgrade(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewApplicationRepository(mock)

	now := time.Now().UTC()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE rides\.upgrade_applications`).
		WithArgs(domain.ApplicationApproved, "admin-1", now, "upgrade-1", domain.ApplicationPending).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(`UPDATE rides\.accounts`).
		WithArgs(domain.RoleDriver, "account-1", domain.RolePassenger, false).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()
	mock.ExpectRollback()

	if err := repo.ApproveUpgrade(context.Background(), "upgrade-1", "account-1", "admin-1", now); err != nil {
		t.Fatalf("ApproveUpgrade returned error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestApplicationRepository_ApproveUpgradeSuspendedAccount(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewApplicationRepository(mock)

	now := time.Now().UTC()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE rides\.upgrade_applications`).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(`UPDATE rides\.accounts`).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectRollback()

	err = repo.ApproveUpgrade(context.Background(), "upgrade-1", "account-1", "admin-1", now)
	if !errors.Is(err, repository.ErrPreconditionFailed) {
		t.Fatalf("expected ErrPreconditionFailed, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestApplicationRepository_GetPendingUpgradeByAccount(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewApplicationRepository(mock)

	now := time.Now().UTC()
	rows := pgxmock.NewRows([]string{
		"id", "account_id", "evidence_url", "status", "rejection_reason", "reviewed_by", "reviewed_at", "created_at",
	}).AddRow(
		"upgrade-1", "account-1", "/uploads/driver-licenses/x.jpg", domain.ApplicationStatus("PENDING"), nil, nil, nil, now,
	)

	mock.ExpectQuery(`SELECT .*FROM rides\.upgrade_applications`).
		WithArgs("account-1", domain.ApplicationPending).
		WillReturnRows(rows)

	app, err := repo.GetPendingUpgradeByAccount(context.Background(), "account-1")
	if err != nil {
		t.Fatalf("GetPendingUpgradeByAccount returned error: %v", err)
	}
	if app.ID != "upgrade-1" || app.Status != domain.ApplicationPending {
		t.Fatalf("unexpected application: %+v", app)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
