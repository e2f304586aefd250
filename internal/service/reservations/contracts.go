package reservations

import (
	"context"
	"time"

	"github.com/m04kA/CWS-ReservationService/internal/domain"
)

// ReservationRepository is the storage surface used by the lifecycle service
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	ListByUser(ctx context.Context, userID int64, status *domain.ReservationStatus) ([]*domain.Reservation, error)
	UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) error
	Cancel(ctx context.Context, id int64, reason *string, cancelledBy *int64) error
	UpdateInterval(ctx context.Context, id int64, workstationID int64, start, end time.Time, notes *string) error
	Delete(ctx context.Context, id int64) error
	CountByStatus(ctx context.Context) (map[domain.ReservationStatus]int, error)
}

// UserRepository provides user lookups for role and ownership decisions
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// PolicyEngine is the validator surface consulted by lifecycle operations
type PolicyEngine interface {
	ValidateDuration(start, end time.Time, role domain.Role) error
	CheckCancelWindow(res *domain.Reservation, role domain.Role, now time.Time) error
	Authorize(actorID int64, actorRole domain.Role, ownerID int64) error
}

// PenaltyLedger applies strikes; the no-show flow calls it inside the same
// transaction as the status transition.
type PenaltyLedger interface {
	ApplyStrike(ctx context.Context, userID int64) (*domain.User, error)
}

// AvailabilityChecker answers whether a slot is free
type AvailabilityChecker interface {
	IsAvailable(ctx context.Context, workstationID int64, start, end time.Time, excludeReservationID *int64) (bool, error)
}

// TransactionManager runs functions inside database transactions
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Notifier emits lifecycle events to the notification collaborator
type Notifier interface {
	ReservationEvent(ctx context.Context, res *domain.Reservation, eventType, message string) error
}

// TimeProvider supplies the current time (replaceable in tests)
type TimeProvider interface {
	Now() time.Time
}

// Logger is the logging interface used by the service
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
