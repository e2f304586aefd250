package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	workstationRepo "github.com/m04kA/CWS-ReservationService/internal/infra/storage/workstation"
)

// Service answers whether a workstation is free for a time interval.
// It is a read-only check; the booking flows call it inside a serializable
// transaction so the answer stays valid until the insert commits.
type Service struct {
	workstationRepo WorkstationRepository
	reservationRepo ReservationRepository
	logger          Logger
}

// NewService creates an availability service
func NewService(
	workstationRepo WorkstationRepository,
	reservationRepo ReservationRepository,
	logger Logger,
) *Service {
	return &Service{
		workstationRepo: workstationRepo,
		reservationRepo: reservationRepo,
		logger:          logger,
	}
}

// IsAvailable reports whether the workstation is free for [start, end).
// A workstation under maintenance or marked unavailable is never free.
// Otherwise the slot is free when no non-cancelled reservation conflicts
// under the inclusive boundary rule: an existing reservation ending exactly
// at the requested start still blocks the slot. excludeReservationID removes
// a reservation's own row from the conflict set during updates.
func (s *Service) IsAvailable(ctx context.Context, workstationID int64, start, end time.Time, excludeReservationID *int64) (bool, error) {
	if !start.Before(end) {
		return false, ErrInvalidInterval
	}

	ws, err := s.workstationRepo.GetByID(ctx, workstationID)
	if err != nil {
		if errors.Is(err, workstationRepo.ErrWorkstationNotFound) {
			s.logger.Warn("IsAvailable: workstation id=%d not found", workstationID)
			return false, ErrWorkstationNotFound
		}
		s.logger.Error("IsAvailable: failed to get workstation id=%d: %v", workstationID, err)
		return false, fmt.Errorf("%w: IsAvailable - repository error: %v", ErrInternal, err)
	}

	if !ws.Status.IsBookable() {
		s.logger.Info("IsAvailable: workstation id=%d not bookable, status=%s", workstationID, ws.Status)
		return false, nil
	}

	overlapping, err := s.reservationRepo.HasOverlapping(ctx, workstationID, start, end, excludeReservationID)
	if err != nil {
		s.logger.Error("IsAvailable: overlap query failed for workstation id=%d: %v", workstationID, err)
		return false, fmt.Errorf("%w: IsAvailable - repository error: %v", ErrInternal, err)
	}

	return !overlapping, nil
}
