package update_user_strikes

import (
	"context"

	"github.com/m04kA/CWS-ReservationService/internal/domain"
)

type PenaltyService interface {
	AuthorizeManager(ctx context.Context, actorID int64) error
	AddManualStrike(ctx context.Context, userID int64, reason string) (*domain.User, error)
	RemoveStrike(ctx context.Context, userID int64) (*domain.User, error)
	ResetStrikes(ctx context.Context, userID int64) (*domain.User, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
