package get_time_slots

import (
	"context"
	"time"
)

// AvailabilityChecker answers whether a slot is free
type AvailabilityChecker interface {
	IsAvailable(ctx context.Context, workstationID int64, start, end time.Time, excludeReservationID *int64) (bool, error)
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
