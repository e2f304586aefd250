package domain

import "time"

// ReservationStatus represents the status of a reservation
type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pending"
	StatusConfirmed ReservationStatus = "confirmed"
	StatusCompleted ReservationStatus = "completed"
	StatusCancelled ReservationStatus = "cancelled"
	StatusNoShow    ReservationStatus = "no_show"
)

// statusTransitions describes the allowed lifecycle transitions.
// Completed, cancelled and no_show are terminal.
var statusTransitions = map[ReservationStatus][]ReservationStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled, StatusNoShow},
}

// CanTransitionTo reports whether the lifecycle allows moving to the given status.
func (s ReservationStatus) CanTransitionTo(to ReservationStatus) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions are allowed from this status.
func (s ReservationStatus) IsTerminal() bool {
	return len(statusTransitions[s]) == 0
}

// Reservation represents a workstation reservation in the system
type Reservation struct {
	ID            int64
	UserID        int64
	WorkstationID int64
	StartTime     time.Time
	EndTime       time.Time
	Status        ReservationStatus

	Notes *string

	CancellationReason *string
	CancelledBy        *int64
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the reservation still occupies its slot:
// pending or confirmed with the end time in the future.
func (r *Reservation) IsActive(now time.Time) bool {
	if r.Status != StatusPending && r.Status != StatusConfirmed {
		return false
	}
	return r.EndTime.After(now)
}

// CanBeCancelled returns true if the reservation can still be cancelled
func (r *Reservation) CanBeCancelled() bool {
	return r.Status.CanTransitionTo(StatusCancelled)
}

// CanBeUpdated returns true if the reservation interval can still be changed
func (r *Reservation) CanBeUpdated() bool {
	return r.Status == StatusPending || r.Status == StatusConfirmed
}

// InitialStatusForRole returns the status a freshly created reservation gets.
// Student bookings are confirmed immediately; every other role goes through
// a manual confirmation step by a privileged actor.
func InitialStatusForRole(role Role) ReservationStatus {
	if role == RoleStudent {
		return StatusConfirmed
	}
	return StatusPending
}

// IntervalsOverlap reports whether [aStart, aEnd) conflicts with [bStart, bEnd).
// Boundaries are inclusive: an interval ending exactly where another starts
// still counts as a conflict, so the boundary hour slot stays blocked.
func IntervalsOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && !aEnd.Before(bStart)
}
