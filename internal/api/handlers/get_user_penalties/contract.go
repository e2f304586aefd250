package get_user_penalties

import (
	"context"

	"github.com/m04kA/CWS-ReservationService/internal/service/penalties/models"
)

type PenaltyService interface {
	GetUserStats(ctx context.Context, userID int64) (*models.PenaltyStatsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
