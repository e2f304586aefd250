package cancel_reservation

import (
	"context"

	"github.com/m04kA/CWS-ReservationService/internal/service/reservations/models"
)

type ReservationService interface {
	Cancel(ctx context.Context, id int64, actorID int64) (*models.ReservationResponse, error)
	CancelWithReason(ctx context.Context, id int64, actorID int64, reason string) (*models.ReservationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
