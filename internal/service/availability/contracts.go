package availability

import (
	"context"
	"time"

	"github.com/m04kA/CWS-ReservationService/internal/domain"
)

// WorkstationRepository provides workstation lookups
type WorkstationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.WorkStation, error)
}

// ReservationRepository provides the overlap query
type ReservationRepository interface {
	HasOverlapping(ctx context.Context, workstationID int64, start, end time.Time, excludeID *int64) (bool, error)
}

// Logger is the logging interface used by the service
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
