package usecase

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/rodriguesaradhan-web/kozhigo/internal/core/port"
)

// CascadeExecutor applies the side effects that follow a suspension.
// Each step is idempotent, so a failed run can be re-applied safely.
type CascadeExecutor struct {
	rides  port.RideRepository
	logger *zap.Logger
}

// NewCascadeExecutor constructs a cascade executor.
func NewCascadeExecutor(rides port.RideRepository, logger *zap.Logger) *CascadeExecutor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CascadeExecutor{rides: rides, logger: logger}
}

// OnAccountSuspended cancels every unfinished ride of the suspended
// driver. Rides are enumerated first, then cancelled one by one;
// cancelling a ride that already finished is a no-op. Failures on
// individual rides do not stop the sweep and are joined into the
// returned error. The count reports rides actually cancelled.
func (e *CascadeExecutor) OnAccountSuspended(ctx context.Context, accountID string) (int, error) {
	rides, err := e.rides.ListUnfinishedByDriver(ctx, accountID)
	if err != nil {
		return 0, fmt.Errorf("enumerate rides: %w", err)
	}

	cancelled := 0
	var failures []error
	for _, ride := range rides {
		changed, err := e.rides.Cancel(ctx, ride.ID)
		if err != nil {
			failures = append(failures, fmt.Errorf("cancel ride %s: %w", ride.ID, err))
			continue
		}
		if changed {
			cancelled++
		}
	}

	if len(failures) > 0 {
		e.logger.Error("suspension cascade incomplete",
			zap.String("account_id", accountID),
			zap.Int("cancelled", cancelled),
			zap.Int("failed", len(failures)),
		)
		return cancelled, errors.Join(failures...)
	}

	e.logger.Info("suspension cascade complete",
		zap.String("account_id", accountID),
		zap.Int("cancelled", cancelled),
	)

	return cancelled, nil
}

// OnVerificationApproved carries no side effects beyond the account
// creation already performed by the adjudication.
func (e *CascadeExecutor) OnVerificationApproved(ctx context.Context, accountID string) error {
	return nil
}

// OnUpgradeApproved carries no side effects beyond the role change
// already performed by the adjudication.
func (e *CascadeExecutor) OnUpgradeApproved(ctx context.Context, accountID string) error {
	return nil
}
