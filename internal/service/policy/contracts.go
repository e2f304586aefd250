package policy

import (
	"context"
	"time"

	"github.com/m04kA/CWS-ReservationService/internal/domain"
)

// ReservationRepository provides the queries behind the cooldown and
// active-limit validators.
type ReservationRepository interface {
	GetLastFinishedByUser(ctx context.Context, userID int64) (*domain.Reservation, error)
	CountActiveByUser(ctx context.Context, userID int64, now time.Time) (int, error)
}

// AccessChecker is the pluggable capability predicate supplied by the
// access-control collaborator: may this actor act on a resource owned by
// ownerID. The engine never decides role taxonomy beyond this predicate.
type AccessChecker interface {
	CanActOn(actorID int64, actorRole domain.Role, ownerID int64) bool
}

// Logger is the logging interface used by the engine
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RoleAccessChecker is the default capability predicate: owners may act on
// their own resources, privileged roles on any.
type RoleAccessChecker struct{}

// CanActOn implements AccessChecker
func (RoleAccessChecker) CanActOn(actorID int64, actorRole domain.Role, ownerID int64) bool {
	return actorID == ownerID || actorRole.IsPrivileged()
}
