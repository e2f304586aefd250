package list_flagged_users

import (
	"context"

	"github.com/m04kA/CWS-ReservationService/internal/service/penalties/models"
)

type PenaltyService interface {
	AuthorizeManager(ctx context.Context, actorID int64) error
	ListByStatus(ctx context.Context, status string) (*models.UserListResponse, error)
	TopOffenders(ctx context.Context, limit int) (*models.UserListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
