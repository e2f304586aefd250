package notifyservice

import "time"

// Lifecycle event types emitted to the notification collaborator.
// Delivery and channel selection are the collaborator's responsibility.
const (
	EventCreated       = "reservation.created"
	EventConfirmed     = "reservation.confirmed"
	EventModified      = "reservation.modified"
	EventCancelled     = "reservation.cancelled"
	EventStatusChanged = "reservation.status_changed"
	EventNoShow        = "reservation.no_show"
)

// ReservationPayload is the reservation snapshot attached to an event
type ReservationPayload struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"userId"`
	WorkstationID int64     `json:"workstationId"`
	StartTime     time.Time `json:"startTime"`
	EndTime       time.Time `json:"endTime"`
	Status        string    `json:"status"`
}

// EventRequest is the wire format of a lifecycle event
type EventRequest struct {
	EventID     string             `json:"eventId"`
	EventType   string             `json:"eventType"`
	Message     string             `json:"message"`
	Reservation ReservationPayload `json:"reservation"`
	OccurredAt  time.Time          `json:"occurredAt"`
}
