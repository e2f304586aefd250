package create_reservation

import (
	"context"
	"time"

	"github.com/m04kA/CWS-ReservationService/internal/domain"
)

// ReservationRepository is the storage surface used to persist reservations
type ReservationRepository interface {
	Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error)
}

// UserRepository provides user lookups for role and penalty decisions
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// PolicyEngine validates the request against the requester's role policy
type PolicyEngine interface {
	ValidateDuration(start, end time.Time, role domain.Role) error
	CheckCooldown(ctx context.Context, userID int64, role domain.Role, proposedStart time.Time) error
	CheckActiveLimit(ctx context.Context, userID int64, role domain.Role, now time.Time) error
}

// AvailabilityChecker answers whether the requested slot is free
type AvailabilityChecker interface {
	IsAvailable(ctx context.Context, workstationID int64, start, end time.Time, excludeReservationID *int64) (bool, error)
}

// TransactionManager runs the check-then-insert sequence atomically
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Notifier emits the reservation.created event
type Notifier interface {
	ReservationEvent(ctx context.Context, res *domain.Reservation, eventType, message string) error
}

// TimeProvider supplies the current time (replaceable in tests)
type TimeProvider interface {
	Now() time.Time
}

// Logger is the logging interface used by the use case
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider is the production time source
type RealTimeProvider struct{}

// Now returns the current time
func (RealTimeProvider) Now() time.Time {
	return time.Now()
}
