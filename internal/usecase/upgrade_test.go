package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rodriguesaradhan-web/kozhigo/internal/core/domain"
	"github.com/rodriguesaradhan-web/kozhigo/internal/repository"
)

func newUpgradeFixture() (*UpgradeService, *mockAccountRepository, *mockApplicationRepository, *mockEvidenceStore) {
	accounts := newMockAccountRepository()
	applications := newMockApplicationRepository()
	evidence := &mockEvidenceStore{}
	svc := NewUpgradeService(accounts, applications, evidence, nil)
	return svc, accounts, applications, evidence
}

func TestSubmitUpgrade(t *testing.T) {
	svc, accounts, applications, evidence := newUpgradeFixture()
	accounts.getByIDResult = &domain.Account{ID: "account-1", Role: domain.RolePassenger}

	app, err := svc.Submit(context.Background(), "account-1", validEvidence())
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if applications.createUpgradeCalls != 1 {
		t.Fatalf("expected 1 create call, got %d", applications.createUpgradeCalls)
	}
	if app.Status != domain.ApplicationPending {
		t.Fatalf("expected pending status, got %q", app.Status)
	}
	if !strings.HasPrefix(evidence.lastKey, "driver-licenses/account-1-") {
		t.Fatalf("unexpected evidence key %q", evidence.lastKey)
	}
}

func TestSubmitUpgradeAlreadyDriver(t *testing.T) {
	svc, accounts, _, evidence := newUpgradeFixture()
	accounts.getByIDResult = &domain.Account{ID: "account-1", Role: domain.RoleDriver}

	if _, err := svc.Submit(context.Background(), "account-1", validEvidence()); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	if evidence.storeCalls != 0 {
		t.Fatalf("refused submissions must not store evidence")
	}
}

func TestSubmitUpgradeSuspendedAccount(t *testing.T) {
	svc, accounts, _, _ := newUpgradeFixture()
	accounts.getByIDResult = &domain.Account{ID: "account-1", Role: domain.RolePassenger, Suspended: true}

	if _, err := svc.Submit(context.Background(), "account-1", validEvidence()); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestSubmitUpgradePendingApplicationExists(t *testing.T) {
	svc, accounts, applications, _ := newUpgradeFixture()
	accounts.getByIDResult = &domain.Account{ID: "account-1", Role: domain.RolePassenger}
	applications.pendingUpgradeResult = &domain.UpgradeApplication{ID: "upg-1", AccountID: "account-1", Status: domain.ApplicationPending}

	if _, err := svc.Submit(context.Background(), "account-1", validEvidence()); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	if applications.createUpgradeCalls != 0 {
		t.Fatalf("a pending application must block resubmission")
	}
}

func TestSubmitUpgradeConcurrentPending(t *testing.T) {
	svc, accounts, applications, _ := newUpgradeFixture()
	accounts.getByIDResult = &domain.Account{ID: "account-1", Role: domain.RolePassenger}
	applications.createUpgradeErr = repository.ErrDuplicate

	if _, err := svc.Submit(context.Background(), "account-1", validEvidence()); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict on concurrent submit, got %v", err)
	}
}

func TestSubmitUpgradeUnknownAccount(t *testing.T) {
	svc, _, _, _ := newUpgradeFixture()

	if _, err := svc.Submit(context.Background(), "missing", validEvidence()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
