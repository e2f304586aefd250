package penalties

import (
	"context"
	"time"

	"github.com/m04kA/CWS-ReservationService/internal/domain"
)

// UserRepository persists the penalty fields owned by the ledger
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	UpdatePenalty(ctx context.Context, u *domain.User) error
	ListByStatus(ctx context.Context, status domain.UserStatus) ([]*domain.User, error)
	ListTopOffenders(ctx context.Context, limit int) ([]*domain.User, error)
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
