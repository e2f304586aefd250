package create_reservation

import (
	"fmt"
	"time"

	createReservation "github.com/m04kA/CWS-ReservationService/internal/usecase/create_reservation"
)

// CreateReservationRequest is the HTTP request model. Times are RFC 3339.
type CreateReservationRequest struct {
	WorkstationID int64   `json:"workstationId"`
	StartTime     string  `json:"startTime"`
	EndTime       string  `json:"endTime"`
	Notes         *string `json:"notes,omitempty"`
}

// ToUseCaseRequest parses the timestamps and builds the use case request
func (r *CreateReservationRequest) ToUseCaseRequest(actorID int64) (*createReservation.Request, error) {
	start, err := time.Parse(time.RFC3339, r.StartTime)
	if err != nil {
		return nil, fmt.Errorf("parse startTime: %w", err)
	}
	end, err := time.Parse(time.RFC3339, r.EndTime)
	if err != nil {
		return nil, fmt.Errorf("parse endTime: %w", err)
	}

	return &createReservation.Request{
		UserID:        actorID,
		WorkstationID: r.WorkstationID,
		StartTime:     start,
		EndTime:       end,
		Notes:         r.Notes,
	}, nil
}
