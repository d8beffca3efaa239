package repository

import "errors"

var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("repository: not found")
	// ErrDuplicate indicates a uniqueness constraint rejected the write.
	ErrDuplicate = errors.New("repository: duplicate")
	// ErrStaleStatus indicates a compare-and-set on status matched no row
	// because a concurrent decision already moved the record.
	ErrStaleStatus = errors.New("repository: stale status")
	// ErrPreconditionFailed indicates a guarded update matched no row because
	// the target no longer satisfies the required state.
	ErrPreconditionFailed = errors.New("repository: precondition failed")
)
