package reservations

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/CWS-ReservationService/internal/domain"
	reservationRepo "github.com/m04kA/CWS-ReservationService/internal/infra/storage/reservation"
	userRepo "github.com/m04kA/CWS-ReservationService/internal/infra/storage/user"
	"github.com/m04kA/CWS-ReservationService/internal/integrations/notifyservice"
	"github.com/m04kA/CWS-ReservationService/internal/service/availability"
	"github.com/m04kA/CWS-ReservationService/internal/service/policy"
	"github.com/m04kA/CWS-ReservationService/internal/service/reservations/models"
)

// Service owns the reservation lifecycle: it is the only place that changes
// a reservation's status, and every transition is checked against the state
// machine in the domain package.
type Service struct {
	reservationRepo ReservationRepository
	userRepo        UserRepository
	policy          PolicyEngine
	ledger          PenaltyLedger
	checker         AvailabilityChecker
	txManager       TransactionManager
	notifier        Notifier
	timeProvider    TimeProvider
	logger          Logger
}

// NewService creates a reservation lifecycle service
func NewService(
	reservationRepo ReservationRepository,
	userRepo UserRepository,
	policyEngine PolicyEngine,
	ledger PenaltyLedger,
	checker AvailabilityChecker,
	txManager TransactionManager,
	notifier Notifier,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		userRepo:        userRepo,
		policy:          policyEngine,
		ledger:          ledger,
		checker:         checker,
		txManager:       txManager,
		notifier:        notifier,
		timeProvider:    RealTimeProvider{},
		logger:          logger,
	}
}

// GetByID fetches a reservation; students only see their own
func (s *Service) GetByID(ctx context.Context, id int64, actorID int64) (*models.ReservationResponse, error) {
	res, actor, err := s.loadReservationAndActor(ctx, id, actorID, "GetByID")
	if err != nil {
		return nil, err
	}

	if err := s.policy.Authorize(actor.ID, actor.Role, res.UserID); err != nil {
		return nil, ErrAccessDenied
	}

	return models.FromDomainReservation(res), nil
}

// ListByUser fetches a user's reservation history, optionally filtered by
// status. Students may only list their own history.
func (s *Service) ListByUser(ctx context.Context, userID int64, actorID int64, status *string) (*models.ReservationListResponse, error) {
	actor, err := s.getUser(ctx, actorID, "ListByUser")
	if err != nil {
		return nil, err
	}

	if err := s.policy.Authorize(actor.ID, actor.Role, userID); err != nil {
		return nil, ErrAccessDenied
	}

	var domainStatus *domain.ReservationStatus
	if status != nil {
		st, err := models.ToDomainReservationStatus(*status)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, *status)
		}
		domainStatus = &st
	}

	reservations, err := s.reservationRepo.ListByUser(ctx, userID, domainStatus)
	if err != nil {
		s.logger.Error("ListByUser: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: ListByUser - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainReservationList(reservations), nil
}

// Confirm moves a pending reservation to confirmed. Only privileged actors
// confirm: student bookings never sit in pending.
func (s *Service) Confirm(ctx context.Context, id int64, actorID int64) (*models.ReservationResponse, error) {
	res, actor, err := s.loadReservationAndActor(ctx, id, actorID, "Confirm")
	if err != nil {
		return nil, err
	}

	if !actor.Role.IsPrivileged() {
		return nil, ErrForbidden
	}

	if res.Status != domain.StatusPending || !res.Status.CanTransitionTo(domain.StatusConfirmed) {
		s.logger.Warn("Confirm: reservation id=%d has status=%s, cannot confirm", id, res.Status)
		return nil, fmt.Errorf("%w: cannot confirm reservation in status %s", ErrInvalidStateTransition, res.Status)
	}

	if err := s.reservationRepo.UpdateStatus(ctx, id, domain.StatusConfirmed); err != nil {
		return nil, s.mapRepoError(err, "Confirm", id)
	}
	res.Status = domain.StatusConfirmed

	s.emit(ctx, res, notifyservice.EventConfirmed, "reservation confirmed")
	s.logger.Info("Confirm: reservation id=%d confirmed by user=%d", id, actorID)
	return models.FromDomainReservation(res), nil
}

// Complete moves a confirmed reservation to completed
func (s *Service) Complete(ctx context.Context, id int64, actorID int64) (*models.ReservationResponse, error) {
	res, actor, err := s.loadReservationAndActor(ctx, id, actorID, "Complete")
	if err != nil {
		return nil, err
	}

	if !actor.Role.IsPrivileged() {
		return nil, ErrForbidden
	}

	if !res.Status.CanTransitionTo(domain.StatusCompleted) {
		s.logger.Warn("Complete: reservation id=%d has status=%s, cannot complete", id, res.Status)
		return nil, fmt.Errorf("%w: cannot complete reservation in status %s", ErrInvalidStateTransition, res.Status)
	}

	if err := s.reservationRepo.UpdateStatus(ctx, id, domain.StatusCompleted); err != nil {
		return nil, s.mapRepoError(err, "Complete", id)
	}
	res.Status = domain.StatusCompleted

	s.emit(ctx, res, notifyservice.EventStatusChanged, "reservation completed")
	s.logger.Info("Complete: reservation id=%d completed by user=%d", id, actorID)
	return models.FromDomainReservation(res), nil
}

// Cancel performs a plain cancellation. Ownership is enforced through the
// capability predicate, and students are additionally held to their
// cancellation window.
func (s *Service) Cancel(ctx context.Context, id int64, actorID int64) (*models.ReservationResponse, error) {
	res, actor, err := s.loadReservationAndActor(ctx, id, actorID, "Cancel")
	if err != nil {
		return nil, err
	}

	if !res.CanBeCancelled() {
		s.logger.Warn("Cancel: reservation id=%d has status=%s, cannot cancel", id, res.Status)
		return nil, fmt.Errorf("%w: cannot cancel reservation in status %s", ErrInvalidStateTransition, res.Status)
	}

	if err := s.policy.Authorize(actor.ID, actor.Role, res.UserID); err != nil {
		return nil, ErrAccessDenied
	}

	if err := s.policy.CheckCancelWindow(res, actor.Role, s.timeProvider.Now()); err != nil {
		if errors.Is(err, policy.ErrCancellationWindowClosed) {
			return nil, ErrCancellationWindowClosed
		}
		return nil, fmt.Errorf("%w: Cancel - policy error: %v", ErrInternal, err)
	}

	if err := s.reservationRepo.Cancel(ctx, id, nil, &actorID); err != nil {
		return nil, s.mapRepoError(err, "Cancel", id)
	}
	res.Status = domain.StatusCancelled
	res.CancelledBy = &actorID

	s.emit(ctx, res, notifyservice.EventCancelled, "reservation cancelled")
	s.logger.Info("Cancel: reservation id=%d cancelled by user=%d", id, actorID)
	return models.FromDomainReservation(res), nil
}

// CancelWithReason is the privileged cancellation variant: the reason is
// mandatory and recorded together with the cancelling actor and timestamp.
func (s *Service) CancelWithReason(ctx context.Context, id int64, actorID int64, reason string) (*models.ReservationResponse, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, ErrMissingReason
	}

	res, actor, err := s.loadReservationAndActor(ctx, id, actorID, "CancelWithReason")
	if err != nil {
		return nil, err
	}

	if !actor.Role.IsPrivileged() {
		return nil, ErrForbidden
	}

	if !res.CanBeCancelled() {
		s.logger.Warn("CancelWithReason: reservation id=%d has status=%s, cannot cancel", id, res.Status)
		return nil, fmt.Errorf("%w: cannot cancel reservation in status %s", ErrInvalidStateTransition, res.Status)
	}

	if err := s.reservationRepo.Cancel(ctx, id, &reason, &actorID); err != nil {
		return nil, s.mapRepoError(err, "CancelWithReason", id)
	}
	res.Status = domain.StatusCancelled
	res.CancellationReason = &reason
	res.CancelledBy = &actorID

	s.emit(ctx, res, notifyservice.EventCancelled, fmt.Sprintf("reservation cancelled: %s", reason))
	s.logger.Info("CancelWithReason: reservation id=%d cancelled by user=%d, reason=%q", id, actorID, reason)
	return models.FromDomainReservation(res), nil
}

// MarkNoShow transitions a confirmed reservation to no_show and applies a
// strike to the owner. The status update and the ledger mutation run in one
// transaction: either both happen or neither does.
func (s *Service) MarkNoShow(ctx context.Context, id int64, actorID int64) (*models.ReservationResponse, error) {
	res, actor, err := s.loadReservationAndActor(ctx, id, actorID, "MarkNoShow")
	if err != nil {
		return nil, err
	}

	if !actor.Role.IsPrivileged() {
		return nil, ErrForbidden
	}

	if res.Status == domain.StatusNoShow {
		return nil, ErrAlreadyNoShow
	}
	if !res.Status.CanTransitionTo(domain.StatusNoShow) {
		s.logger.Warn("MarkNoShow: reservation id=%d has status=%s, cannot mark no-show", id, res.Status)
		return nil, fmt.Errorf("%w: cannot mark reservation in status %s as no-show", ErrInvalidStateTransition, res.Status)
	}

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.reservationRepo.UpdateStatus(txCtx, id, domain.StatusNoShow); err != nil {
			return s.mapRepoError(err, "MarkNoShow", id)
		}
		if _, err := s.ledger.ApplyStrike(txCtx, res.UserID); err != nil {
			return fmt.Errorf("%w: MarkNoShow - apply strike: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	res.Status = domain.StatusNoShow

	s.emit(ctx, res, notifyservice.EventNoShow, "reservation marked as no-show")
	s.logger.Info("MarkNoShow: reservation id=%d marked no-show by user=%d, strike applied to user=%d",
		id, actorID, res.UserID)
	return models.FromDomainReservation(res), nil
}

// Update changes the reservation's workstation and/or time window. The new
// interval is re-validated against the owner's duration cap and availability
// (excluding the reservation's own row) inside a serializable transaction.
func (s *Service) Update(ctx context.Context, id int64, actorID int64, req *models.UpdateReservationRequest) (*models.ReservationResponse, error) {
	res, actor, err := s.loadReservationAndActor(ctx, id, actorID, "Update")
	if err != nil {
		return nil, err
	}

	if err := s.policy.Authorize(actor.ID, actor.Role, res.UserID); err != nil {
		return nil, ErrAccessDenied
	}

	if !res.CanBeUpdated() {
		s.logger.Warn("Update: reservation id=%d has status=%s, cannot update", id, res.Status)
		return nil, ErrCannotUpdate
	}

	workstationID := res.WorkstationID
	if req.WorkstationID != nil {
		workstationID = *req.WorkstationID
	}
	start := res.StartTime
	if req.StartTime != nil {
		start = *req.StartTime
	}
	end := res.EndTime
	if req.EndTime != nil {
		end = *req.EndTime
	}
	notes := res.Notes
	if req.Notes != nil {
		notes = req.Notes
	}

	// The duration cap follows the reservation owner's role, not the actor's.
	owner, err := s.getUser(ctx, res.UserID, "Update")
	if err != nil {
		return nil, err
	}
	if err := s.policy.ValidateDuration(start, end, owner.Role); err != nil {
		switch {
		case errors.Is(err, policy.ErrInvalidInterval):
			return nil, ErrInvalidInterval
		case errors.Is(err, policy.ErrDurationExceeded):
			return nil, ErrDurationExceeded
		default:
			return nil, fmt.Errorf("%w: Update - policy error: %v", ErrInternal, err)
		}
	}

	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		free, err := s.checker.IsAvailable(txCtx, workstationID, start, end, &id)
		if err != nil {
			if errors.Is(err, availability.ErrWorkstationNotFound) {
				return ErrWorkstationNotFound
			}
			return fmt.Errorf("%w: Update - availability error: %v", ErrInternal, err)
		}
		if !free {
			return ErrSlotUnavailable
		}

		return s.reservationRepo.UpdateInterval(txCtx, id, workstationID, start, end, notes)
	})
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}

	res.WorkstationID = workstationID
	res.StartTime = start
	res.EndTime = end
	res.Notes = notes

	s.emit(ctx, res, notifyservice.EventModified, "reservation modified")
	s.logger.Info("Update: reservation id=%d moved to workstation=%d [%s, %s) by user=%d",
		id, workstationID, start.Format("2006-01-02 15:04"), end.Format("2006-01-02 15:04"), actorID)
	return models.FromDomainReservation(res), nil
}

// Delete permanently removes a reservation. Owners and privileged roles may
// delete; no terminal status is required first.
func (s *Service) Delete(ctx context.Context, id int64, actorID int64) error {
	res, actor, err := s.loadReservationAndActor(ctx, id, actorID, "Delete")
	if err != nil {
		return err
	}

	if err := s.policy.Authorize(actor.ID, actor.Role, res.UserID); err != nil {
		return ErrAccessDenied
	}

	if err := s.reservationRepo.Delete(ctx, id); err != nil {
		return s.mapRepoError(err, "Delete", id)
	}

	s.logger.Info("Delete: reservation id=%d deleted by user=%d", id, actorID)
	return nil
}

// Stats folds the reservation set into aggregate counts by status
func (s *Service) Stats(ctx context.Context) (*models.StatsResponse, error) {
	counts, err := s.reservationRepo.CountByStatus(ctx)
	if err != nil {
		s.logger.Error("Stats: repository error: %v", err)
		return nil, fmt.Errorf("%w: Stats - repository error: %v", ErrInternal, err)
	}

	resp := &models.StatsResponse{
		Pending:   counts[domain.StatusPending],
		Confirmed: counts[domain.StatusConfirmed],
		Completed: counts[domain.StatusCompleted],
		Cancelled: counts[domain.StatusCancelled],
		NoShows:   counts[domain.StatusNoShow],
	}
	resp.Active = resp.Pending + resp.Confirmed
	for _, c := range counts {
		resp.Total += c
	}

	return resp, nil
}

// emit sends a lifecycle event; delivery failures are logged, never propagated
func (s *Service) emit(ctx context.Context, res *domain.Reservation, eventType, message string) {
	if err := s.notifier.ReservationEvent(ctx, res, eventType, message); err != nil {
		s.logger.Warn("emit: failed to send %s for reservation id=%d: %v", eventType, res.ID, err)
	}
}

func (s *Service) loadReservationAndActor(ctx context.Context, id, actorID int64, op string) (*domain.Reservation, *domain.User, error) {
	res, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("%s: reservation id=%d not found", op, id)
			return nil, nil, ErrReservationNotFound
		}
		s.logger.Error("%s: repository error for reservation id=%d: %v", op, id, err)
		return nil, nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	actor, err := s.getUser(ctx, actorID, op)
	if err != nil {
		return nil, nil, err
	}

	return res, actor, nil
}

func (s *Service) getUser(ctx context.Context, userID int64, op string) (*domain.User, error) {
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("%s: user=%d not found", op, userID)
			return nil, ErrUserNotFound
		}
		s.logger.Error("%s: repository error for user=%d: %v", op, userID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return u, nil
}

func (s *Service) mapRepoError(err error, op string, id int64) error {
	if errors.Is(err, reservationRepo.ErrReservationNotFound) {
		return ErrReservationNotFound
	}
	s.logger.Error("%s: repository error for reservation id=%d: %v", op, id, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}
