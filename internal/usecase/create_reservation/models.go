package create_reservation

import (
	"time"

	"github.com/m04kA/CWS-ReservationService/internal/domain"
)

// Request carries the booking request
type Request struct {
	UserID        int64
	WorkstationID int64
	StartTime     time.Time
	EndTime       time.Time
	Notes         *string
}

// Response is the created reservation
type Response struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"userId"`
	WorkstationID int64     `json:"workstationId"`
	StartTime     time.Time `json:"startTime"`
	EndTime       time.Time `json:"endTime"`
	Status        string    `json:"status"`
	Notes         *string   `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func toResponse(res *domain.Reservation) *Response {
	return &Response{
		ID:            res.ID,
		UserID:        res.UserID,
		WorkstationID: res.WorkstationID,
		StartTime:     res.StartTime,
		EndTime:       res.EndTime,
		Status:        string(res.Status),
		Notes:         res.Notes,
		CreatedAt:     res.CreatedAt,
		UpdatedAt:     res.UpdatedAt,
	}
}
