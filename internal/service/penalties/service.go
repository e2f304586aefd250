package penalties

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/CWS-ReservationService/internal/domain"
	userRepo "github.com/m04kA/CWS-ReservationService/internal/infra/storage/user"
	"github.com/m04kA/CWS-ReservationService/internal/service/penalties/models"
)

// Service maintains the no-show penalty ledger. The user status is never
// written directly: every mutation recomputes it from the strike count
// through domain.DeriveUserStatus, so the two fields cannot drift apart.
// Mutations join an ambient transaction through the context, which lets
// the no-show flow apply a strike atomically with the status transition.
type Service struct {
	userRepo     UserRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewService creates a penalty ledger service
func NewService(userRepo UserRepository, logger Logger) *Service {
	return &Service{
		userRepo:     userRepo,
		timeProvider: RealTimeProvider{},
		logger:       logger,
	}
}

// ApplyStrike records a detected no-show: strike count and total no-shows
// go up, the status is recomputed and the strike date is set.
func (s *Service) ApplyStrike(ctx context.Context, userID int64) (*domain.User, error) {
	u, err := s.getUser(ctx, userID, "ApplyStrike")
	if err != nil {
		return nil, err
	}

	now := s.timeProvider.Now()
	u.StrikeCount++
	u.TotalNoShows++
	u.LastStrikeDate = &now
	u.UserStatus = domain.DeriveUserStatus(u.StrikeCount)

	if err := s.savePenalty(ctx, u, "ApplyStrike"); err != nil {
		return nil, err
	}

	s.logger.Info("ApplyStrike: user=%d now has %d strikes (%d no-shows), status=%s",
		u.ID, u.StrikeCount, u.TotalNoShows, u.UserStatus)
	return u, nil
}

// AddManualStrike records an administrative strike. It does not count as a
// detected no-show, requires a reason for the audit trail, and only students
// can be targeted.
func (s *Service) AddManualStrike(ctx context.Context, userID int64, reason string) (*domain.User, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, ErrMissingReason
	}

	u, err := s.getUser(ctx, userID, "AddManualStrike")
	if err != nil {
		return nil, err
	}

	if u.Role != domain.RoleStudent {
		s.logger.Warn("AddManualStrike: user=%d has role=%s, manual strikes apply to students only", u.ID, u.Role)
		return nil, ErrInvalidTarget
	}

	now := s.timeProvider.Now()
	u.StrikeCount++
	u.LastStrikeDate = &now
	u.UserStatus = domain.DeriveUserStatus(u.StrikeCount)

	if err := s.savePenalty(ctx, u, "AddManualStrike"); err != nil {
		return nil, err
	}

	s.logger.Info("AddManualStrike: user=%d now has %d strikes, status=%s, reason=%q",
		u.ID, u.StrikeCount, u.UserStatus, strings.TrimSpace(reason))
	return u, nil
}

// RemoveStrike decrements the strike count (floor zero) and recomputes the
// status. Total no-shows is history and stays untouched.
func (s *Service) RemoveStrike(ctx context.Context, userID int64) (*domain.User, error) {
	u, err := s.getUser(ctx, userID, "RemoveStrike")
	if err != nil {
		return nil, err
	}

	if u.StrikeCount > 0 {
		u.StrikeCount--
	}
	u.UserStatus = domain.DeriveUserStatus(u.StrikeCount)

	if err := s.savePenalty(ctx, u, "RemoveStrike"); err != nil {
		return nil, err
	}

	s.logger.Info("RemoveStrike: user=%d now has %d strikes, status=%s", u.ID, u.StrikeCount, u.UserStatus)
	return u, nil
}

// ResetStrikes clears the ladder back to a clean slate
func (s *Service) ResetStrikes(ctx context.Context, userID int64) (*domain.User, error) {
	u, err := s.getUser(ctx, userID, "ResetStrikes")
	if err != nil {
		return nil, err
	}

	u.StrikeCount = 0
	u.UserStatus = domain.UserStatusGood
	u.LastStrikeDate = nil

	if err := s.savePenalty(ctx, u, "ResetStrikes"); err != nil {
		return nil, err
	}

	s.logger.Info("ResetStrikes: user=%d reset to status=%s", u.ID, u.UserStatus)
	return u, nil
}

// AuthorizeManager verifies the actor holds a privileged role. The ledger
// mutations and the flagged-user listings are management operations.
func (s *Service) AuthorizeManager(ctx context.Context, actorID int64) error {
	actor, err := s.getUser(ctx, actorID, "AuthorizeManager")
	if err != nil {
		return err
	}

	if !actor.Role.IsPrivileged() {
		s.logger.Warn("AuthorizeManager: user=%d (role=%s) denied", actor.ID, actor.Role)
		return ErrForbidden
	}

	return nil
}

// CanBook reports whether the user's penalty standing allows new bookings
func (s *Service) CanBook(ctx context.Context, userID int64) (bool, error) {
	u, err := s.getUser(ctx, userID, "CanBook")
	if err != nil {
		return false, err
	}
	return u.CanBook(), nil
}

// GetUserStats returns the per-user penalty statistics
func (s *Service) GetUserStats(ctx context.Context, userID int64) (*models.PenaltyStatsResponse, error) {
	u, err := s.getUser(ctx, userID, "GetUserStats")
	if err != nil {
		return nil, err
	}
	return models.FromDomainUser(u), nil
}

// ListByStatus returns users with the given penalty standing
func (s *Service) ListByStatus(ctx context.Context, status string) (*models.UserListResponse, error) {
	domainStatus, ok := models.ToDomainUserStatus(status)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	users, err := s.userRepo.ListByStatus(ctx, domainStatus)
	if err != nil {
		s.logger.Error("ListByStatus: repository error for status=%s: %v", status, err)
		return nil, fmt.Errorf("%w: ListByStatus - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainUserList(users), nil
}

// TopOffenders returns users ranked by total no-shows, worst first
func (s *Service) TopOffenders(ctx context.Context, limit int) (*models.UserListResponse, error) {
	if limit <= 0 {
		limit = 10
	}

	users, err := s.userRepo.ListTopOffenders(ctx, limit)
	if err != nil {
		s.logger.Error("TopOffenders: repository error: %v", err)
		return nil, fmt.Errorf("%w: TopOffenders - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainUserList(users), nil
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

func (s *Service) savePenalty(ctx context.Context, u *domain.User, op string) error {
	if err := s.userRepo.UpdatePenalty(ctx, u); err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return ErrUserNotFound
		}
		s.logger.Error("%s: failed to persist penalty for user=%d: %v", op, u.ID, err)
		return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return nil
}
