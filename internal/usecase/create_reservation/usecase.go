package create_reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/CWS-ReservationService/internal/domain"
	userRepo "github.com/m04kA/CWS-ReservationService/internal/infra/storage/user"
	"github.com/m04kA/CWS-ReservationService/internal/integrations/notifyservice"
	"github.com/m04kA/CWS-ReservationService/internal/service/availability"
	"github.com/m04kA/CWS-ReservationService/internal/service/policy"
)

// UseCase creates a reservation. The availability check and the insert run in
// one serializable transaction so two concurrent requests for the same slot
// cannot both succeed.
type UseCase struct {
	reservationRepo ReservationRepository
	userRepo        UserRepository
	policy          PolicyEngine
	checker         AvailabilityChecker
	txManager       TransactionManager
	notifier        Notifier
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase creates the use case
func NewUseCase(
	reservationRepo ReservationRepository,
	userRepo UserRepository,
	policyEngine PolicyEngine,
	checker AvailabilityChecker,
	txManager TransactionManager,
	notifier Notifier,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		userRepo:        userRepo,
		policy:          policyEngine,
		checker:         checker,
		txManager:       txManager,
		notifier:        notifier,
		timeProvider:    RealTimeProvider{},
		logger:          logger,
	}
}

// Execute runs the booking pipeline
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: user=%d, workstation=%d, interval=[%s, %s)",
		req.UserID, req.WorkstationID,
		req.StartTime.Format(time.RFC3339), req.EndTime.Format(time.RFC3339))

	// 1. Basic input validation
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Load the requesting user: role drives every policy below
	user, err := uc.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			uc.logger.Warn("CreateReservation: user=%d not found", req.UserID)
			return nil, ErrUserNotFound
		}
		uc.logger.Error("CreateReservation: failed to get user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: failed to get user: %v", ErrInternal, err)
	}

	// 3. Penalty gate: users in bad standing cannot book at all
	if !user.CanBook() {
		uc.logger.Warn("CreateReservation: user=%d blocked, status=%s, strikes=%d",
			user.ID, user.UserStatus, user.StrikeCount)
		return nil, ErrBookingBlocked
	}

	// 4. Duration cap for the user's role
	if err := uc.policy.ValidateDuration(req.StartTime, req.EndTime, user.Role); err != nil {
		return nil, mapPolicyError(err)
	}

	var result *domain.Reservation

	// 5. Remaining checks and the insert share one serializable transaction;
	// the row locks taken by the reads hold until the insert commits.
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Cooldown after the user's last finished reservation
		if err := uc.policy.CheckCooldown(txCtx, user.ID, user.Role, req.StartTime); err != nil {
			return mapPolicyError(err)
		}

		// 5.2. Active reservation limit
		if err := uc.policy.CheckActiveLimit(txCtx, user.ID, user.Role, now); err != nil {
			return mapPolicyError(err)
		}

		// 5.3. Workstation availability under the inclusive boundary rule
		free, err := uc.checker.IsAvailable(txCtx, req.WorkstationID, req.StartTime, req.EndTime, nil)
		if err != nil {
			switch {
			case errors.Is(err, availability.ErrWorkstationNotFound):
				return ErrWorkstationNotFound
			case errors.Is(err, availability.ErrInvalidInterval):
				return ErrInvalidInterval
			default:
				uc.logger.Error("CreateReservation: availability check failed: %v", err)
				return fmt.Errorf("%w: availability check failed: %v", ErrInternal, err)
			}
		}
		if !free {
			uc.logger.Info("CreateReservation: slot taken, workstation=%d, interval=[%s, %s)",
				req.WorkstationID, req.StartTime.Format(time.RFC3339), req.EndTime.Format(time.RFC3339))
			return ErrSlotUnavailable
		}

		// 5.4. Persist; student bookings are auto-confirmed, privileged roles
		// start in pending and are confirmed separately
		reservation := &domain.Reservation{
			UserID:        user.ID,
			WorkstationID: req.WorkstationID,
			StartTime:     req.StartTime,
			EndTime:       req.EndTime,
			Status:        domain.InitialStatusForRole(user.Role),
			Notes:         req.Notes,
		}

		created, err := uc.reservationRepo.Create(txCtx, reservation)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
			return fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
		}

		result = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateReservation: created reservation id=%d, status=%s", result.ID, result.Status)

	// 6. Event delivery is best effort; the booking already committed
	if err := uc.notifier.ReservationEvent(ctx, result, notifyservice.EventCreated, "reservation created"); err != nil {
		uc.logger.Warn("CreateReservation: failed to send created event for id=%d: %v", result.ID, err)
	}

	return toResponse(result), nil
}

// mapPolicyError translates policy sentinels into this package's sentinels
func mapPolicyError(err error) error {
	switch {
	case errors.Is(err, policy.ErrInvalidInterval):
		return ErrInvalidInterval
	case errors.Is(err, policy.ErrDurationExceeded):
		return fmt.Errorf("%w: %v", ErrDurationExceeded, err)
	case errors.Is(err, policy.ErrCooldownActive):
		return fmt.Errorf("%w: %v", ErrCooldownActive, err)
	case errors.Is(err, policy.ErrActiveReservationExists):
		return ErrActiveReservationExists
	default:
		return fmt.Errorf("%w: policy check failed: %v", ErrInternal, err)
	}
}
