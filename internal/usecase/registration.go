package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	uuid "github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rodriguesaradhan-web/kozhigo/internal/core/domain"
	"github.com/rodriguesaradhan-web/kozhigo/internal/core/port"
	"github.com/rodriguesaradhan-web/kozhigo/internal/infra/logger"
	"github.com/rodriguesaradhan-web/kozhigo/internal/infra/security"
	"github.com/rodriguesaradhan-web/kozhigo/internal/repository"
)

const studentIDEvidencePrefix = "student-ids"

// ErrPasswordPolicyViolation indicates the password does not satisfy complexity requirements.
var ErrPasswordPolicyViolation = errors.New("password does not meet complexity requirements")

// RegistrationService handles direct signup and student verification applications.
type RegistrationService struct {
	accounts          port.AccountRepository
	applications      port.ApplicationRepository
	evidence          port.EvidenceStore
	events            port.EventPublisher
	hasher            *security.Hasher
	passwordValidator *security.PasswordValidator
	logger            *zap.Logger
}

// NewRegistrationService constructs a registration service.
func NewRegistrationService(
	accounts port.AccountRepository,
	applications port.ApplicationRepository,
	evidence port.EvidenceStore,
	events port.EventPublisher,
	hasher *security.Hasher,
	validator *security.PasswordValidator,
	logger *zap.Logger,
) *RegistrationService {
	if hasher == nil {
		hasher = security.NewHasher(0, 0, 0, 0, 0)
	}
	if validator == nil {
		validator = security.DefaultPasswordValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RegistrationService{
		accounts:          accounts,
		applications:      applications,
		evidence:          evidence,
		events:            events,
		hasher:            hasher,
		passwordValidator: validator,
		logger:            logger,
	}
}

// Register creates a passenger account directly, without a student id.
func (s *RegistrationService) Register(ctx context.Context, name, email, password string) (*domain.Account, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)
	if name == "" || email == "" {
		return nil, fmt.Errorf("%w: name and email are required", ErrValidation)
	}
	if !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: email is malformed", ErrValidation)
	}
	if err := s.passwordValidator.Validate(password); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPasswordPolicyViolation, err)
	}

	passwordHash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	account := domain.Account{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         domain.RolePassenger,
		CreatedAt:    now,
	}

	if err := s.accounts.Create(ctx, account); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("%w: email already registered", ErrDuplicateIdentity)
		}
		return nil, fmt.Errorf("create account: %w", err)
	}

	if err := s.events.PublishAccountCreated(ctx, domain.AccountCreatedEvent{
		AccountID: account.ID,
		Name:      account.Name,
		Email:     account.Email,
		Role:      string(account.Role),
		Source:    "direct_registration",
		CreatedAt: now,
	}); err != nil {
		s.logger.Warn("failed to publish account created event", zap.Error(err), zap.String("account_id", account.ID))
	}

	return &account, nil
}

// VerificationSubmission is the input for a student verification application.
type VerificationSubmission struct {
	Name      string
	StudentID string
	Email     string
	Password  string
	Evidence  EvidenceFile
}

// SubmitVerification validates the submission, stores the evidence
// document, and records a pending application. The identity ledger is
// checked for duplicates up front; a concurrent duplicate application is
// caught by the store's uniqueness guarantees.
func (s *RegistrationService) SubmitVerification(ctx context.Context, sub VerificationSubmission) (*domain.VerificationApplication, error) {
	sub.Name = strings.TrimSpace(sub.Name)
	sub.StudentID = strings.TrimSpace(sub.StudentID)
	sub.Email = normalizeEmail(sub.Email)

	if sub.Name == "" || sub.StudentID == "" || sub.Email == "" {
		return nil, fmt.Errorf("%w: name, student id, and email are required", ErrValidation)
	}
	if !strings.Contains(sub.Email, "@") {
		return nil, fmt.Errorf("%w: email is malformed", ErrValidation)
	}
	if err := s.passwordValidator.Validate(sub.Password); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPasswordPolicyViolation, err)
	}
	if err := validateEvidence(sub.Evidence); err != nil {
		return nil, err
	}

	if err := s.checkLedgerDuplicates(ctx, sub.Email, sub.StudentID); err != nil {
		return nil, err
	}

	passwordHash, err := s.hasher.Hash(sub.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	key := evidenceKey(studentIDEvidencePrefix, sub.StudentID, sub.Evidence, now)
	evidenceURL, err := s.evidence.Store(ctx, key, sub.Evidence.Data, sub.Evidence.MIMEType)
	if err != nil {
		return nil, fmt.Errorf("store evidence: %w", err)
	}

	app := domain.VerificationApplication{
		ID:           uuid.NewString(),
		Name:         sub.Name,
		StudentID:    sub.StudentID,
		Email:        sub.Email,
		PasswordHash: passwordHash,
		EvidenceURL:  evidenceURL,
		Status:       domain.ApplicationPending,
		CreatedAt:    now,
	}

	if err := s.applications.CreateVerification(ctx, app); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("%w: a pending application already exists for this identity", ErrDuplicateIdentity)
		}
		return nil, fmt.Errorf("create verification application: %w", err)
	}

	s.logger.Info("verification application submitted",
		zap.String("application_id", app.ID),
		zap.String("student_id", app.StudentID),
		zap.String("email", logger.MaskEmail(app.Email)),
	)

	return &app, nil
}

func (s *RegistrationService) checkLedgerDuplicates(ctx context.Context, email, studentID string) error {
	if _, err := s.accounts.GetByEmail(ctx, email); err == nil {
		return fmt.Errorf("%w: email already registered", ErrDuplicateIdentity)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("check email: %w", err)
	}

	if studentID != "" {
		if _, err := s.accounts.GetByStudentID(ctx, studentID); err == nil {
			return fmt.Errorf("%w: student id already registered", ErrDuplicateIdentity)
		} else if !errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("check student id: %w", err)
		}
	}

	return nil
}
