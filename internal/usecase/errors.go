package usecase

import "errors"

var (
	// ErrValidation indicates the request payload failed input validation.
	ErrValidation = errors.New("validation failed")
	// ErrDuplicateIdentity indicates an email or student id that already exists
	// in the identity ledger or a pending application.
	ErrDuplicateIdentity = errors.New("identity already exists")
	// ErrConflict indicates the target entity is in a state that forbids the operation.
	ErrConflict = errors.New("operation conflicts with current state")
	// ErrAlreadyResolved indicates an adjudication was already decided.
	ErrAlreadyResolved = errors.New("already resolved")
	// ErrNotFound indicates the referenced entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidCredentials indicates a failed login attempt.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrAccountSuspended indicates a login attempt against a suspended account.
	ErrAccountSuspended = errors.New("account suspended due to policy violations")
	// ErrCascadeFailed indicates a suspension committed but one or more
	// cascade steps did not complete.
	ErrCascadeFailed = errors.New("suspension cascade incomplete")
	// ErrForbidden indicates the caller lacks the role required for the operation.
	ErrForbidden = errors.New("forbidden")
)
