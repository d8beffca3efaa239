package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rodriguesaradhan-web/kozhigo/internal/core/domain"
	"github.com/rodriguesaradhan-web/kozhigo/internal/core/port"
	"github.com/rodriguesaradhan-web/kozhigo/internal/infra/security"
	"github.com/rodriguesaradhan-web/kozhigo/internal/repository"
)

// AuthService authenticates accounts and issues access tokens.
type AuthService struct {
	accounts port.AccountRepository
	hasher   *security.Hasher
	tokens   *security.TokenManager
}

// NewAuthService constructs an authentication service.
func NewAuthService(accounts port.AccountRepository, hasher *security.Hasher, tokens *security.TokenManager) *AuthService {
	if hasher == nil {
		hasher = security.NewHasher(0, 0, 0, 0, 0)
	}
	return &AuthService{accounts: accounts, hasher: hasher, tokens: tokens}
}

// Login verifies the credentials and returns the account with a signed
// access token. Suspended accounts are refused with a message distinct
// from bad credentials; suspension does not erase the account.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.Account, string, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, "", fmt.Errorf("%w: email and password are required", ErrValidation)
	}

	account, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("load account: %w", err)
	}

	ok, err := s.hasher.Verify(password, account.PasswordHash)
	if err != nil {
		return nil, "", fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		return nil, "", ErrInvalidCredentials
	}

	if account.Suspended {
		return nil, "", ErrAccountSuspended
	}

	token, err := s.tokens.Issue(account.ID, string(account.Role), time.Now().UTC())
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}

	return account, token, nil
}

// ParseAccessToken validates a bearer token and returns its claims.
func (s *AuthService) ParseAccessToken(tokenString string) (*security.Claims, error) {
	return s.tokens.Parse(tokenString)
}

// GetAccount loads an account by id.
func (s *AuthService) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	account, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load account: %w", err)
	}
	return account, nil
}

// MyWarnings lists the warnings issued against the account, newest first.
func (s *AuthService) MyWarnings(ctx context.Context, accountID string) ([]domain.Warning, error) {
	warnings, err := s.accounts.ListWarnings(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("list warnings: %w", err)
	}
	return warnings, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
