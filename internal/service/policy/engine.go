package policy

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/CWS-ReservationService/internal/domain"
	reservationRepo "github.com/m04kA/CWS-ReservationService/internal/infra/storage/reservation"
)

// Engine validates booking requests against the role policy table.
// Each validator is independent and fails with a dedicated sentinel error so
// callers can surface the exact reason instead of a generic rejection.
type Engine struct {
	reservationRepo ReservationRepository
	access          AccessChecker
	logger          Logger
}

// NewEngine creates a policy engine
func NewEngine(reservationRepo ReservationRepository, access AccessChecker, logger Logger) *Engine {
	if access == nil {
		access = RoleAccessChecker{}
	}
	return &Engine{
		reservationRepo: reservationRepo,
		access:          access,
		logger:          logger,
	}
}

// ValidateDuration checks the interval shape and the role's duration cap.
// Equal start and end is invalid.
func (e *Engine) ValidateDuration(start, end time.Time, role domain.Role) error {
	if !start.Before(end) {
		return ErrInvalidInterval
	}

	max := domain.PolicyForRole(role).MaxDuration
	if end.Sub(start) > max {
		return fmt.Errorf("%w: %s may book at most %s", ErrDurationExceeded, role, max)
	}

	return nil
}

// CheckCooldown verifies the gap after the user's most recent confirmed or
// completed reservation. Roles without a cooldown policy always pass.
func (e *Engine) CheckCooldown(ctx context.Context, userID int64, role domain.Role, proposedStart time.Time) error {
	cooldown := domain.PolicyForRole(role).Cooldown
	if cooldown == 0 {
		return nil
	}

	last, err := e.reservationRepo.GetLastFinishedByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			return nil
		}
		e.logger.Error("CheckCooldown: repository error for user=%d: %v", userID, err)
		return fmt.Errorf("%w: CheckCooldown - repository error: %v", ErrInternal, err)
	}

	earliest := last.EndTime.Add(cooldown)
	if proposedStart.Before(earliest) {
		e.logger.Info("CheckCooldown: user=%d blocked until %s (last reservation ended %s)",
			userID, earliest.Format(time.RFC3339), last.EndTime.Format(time.RFC3339))
		return fmt.Errorf("%w: next booking possible from %s", ErrCooldownActive, earliest.Format(time.RFC3339))
	}

	return nil
}

// CheckActiveLimit verifies the user does not already hold the maximum number
// of active reservations. Roles without a limit always pass.
func (e *Engine) CheckActiveLimit(ctx context.Context, userID int64, role domain.Role, now time.Time) error {
	limit := domain.PolicyForRole(role).MaxActiveReservations
	if limit == 0 {
		return nil
	}

	count, err := e.reservationRepo.CountActiveByUser(ctx, userID, now)
	if err != nil {
		e.logger.Error("CheckActiveLimit: repository error for user=%d: %v", userID, err)
		return fmt.Errorf("%w: CheckActiveLimit - repository error: %v", ErrInternal, err)
	}

	if count >= limit {
		e.logger.Info("CheckActiveLimit: user=%d holds %d/%d active reservations", userID, count, limit)
		return ErrActiveReservationExists
	}

	return nil
}

// CheckCancelWindow verifies the role's cancellation notice against the
// reservation start. Roles without a notice requirement may cancel any time.
func (e *Engine) CheckCancelWindow(res *domain.Reservation, role domain.Role, now time.Time) error {
	notice := domain.PolicyForRole(role).CancellationNotice
	if notice == 0 {
		return nil
	}

	deadline := res.StartTime.Add(-notice)
	if !now.Before(deadline) {
		e.logger.Info("CheckCancelWindow: reservation id=%d cancellation closed at %s",
			res.ID, deadline.Format(time.RFC3339))
		return ErrCancellationWindowClosed
	}

	return nil
}

// Authorize verifies the actor may act on a resource owned by ownerID,
// delegating to the pluggable capability predicate.
func (e *Engine) Authorize(actorID int64, actorRole domain.Role, ownerID int64) error {
	if !e.access.CanActOn(actorID, actorRole, ownerID) {
		e.logger.Warn("Authorize: actor=%d (role=%s) denied for resource owned by user=%d",
			actorID, actorRole, ownerID)
		return ErrNotOwner
	}
	return nil
}
