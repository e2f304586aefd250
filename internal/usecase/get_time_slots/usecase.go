package get_time_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/CWS-ReservationService/internal/domain"
	"github.com/m04kA/CWS-ReservationService/internal/service/availability"
)

// UseCase builds the hourly slot grid of a workstation for one business day.
// Every slot is answered by the same availability check the booking flow uses,
// so the grid and the booking decision can never disagree.
type UseCase struct {
	checker      AvailabilityChecker
	dayStartHour int
	dayEndHour   int
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase creates the use case. dayStartHour and dayEndHour bound the
// business day; hours outside [dayStartHour, dayEndHour) are not offered.
func NewUseCase(checker AvailabilityChecker, dayStartHour, dayEndHour int, logger Logger) *UseCase {
	if dayStartHour <= 0 && dayEndHour <= 0 {
		dayStartHour = domain.DefaultDayStartHour
		dayEndHour = domain.DefaultDayEndHour
	}
	return &UseCase{
		checker:      checker,
		dayStartHour: dayStartHour,
		dayEndHour:   dayEndHour,
		timeProvider: RealTimeProvider{},
		logger:       logger,
	}
}

// Execute returns one slot per business hour with its availability flag
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.WorkstationID <= 0 {
		return nil, fmt.Errorf("%w: workstationID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	uc.logger.Info("GetTimeSlots: workstation=%d, date=%s",
		req.WorkstationID, req.Date.Format(domain.DateFormat))

	day := time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(), 0, 0, 0, 0, req.Date.Location())

	slots := make([]Slot, 0, uc.dayEndHour-uc.dayStartHour)
	for hour := uc.dayStartHour; hour < uc.dayEndHour; hour++ {
		start := day.Add(time.Duration(hour) * time.Hour)
		end := start.Add(time.Hour)

		free, err := uc.checker.IsAvailable(ctx, req.WorkstationID, start, end, nil)
		if err != nil {
			if errors.Is(err, availability.ErrWorkstationNotFound) {
				uc.logger.Warn("GetTimeSlots: workstation=%d not found", req.WorkstationID)
				return nil, ErrWorkstationNotFound
			}
			uc.logger.Error("GetTimeSlots: availability check failed for workstation=%d: %v",
				req.WorkstationID, err)
			return nil, fmt.Errorf("%w: availability check failed: %v", ErrInternal, err)
		}

		slots = append(slots, Slot{
			StartTime: start,
			EndTime:   end,
			Available: free,
		})
	}

	return &Response{
		WorkstationID: req.WorkstationID,
		Date:          day.Format(domain.DateFormat),
		Slots:         slots,
	}, nil
}
