package create_reservation

import "errors"

var (
	// ErrInvalidInput is returned when the request fails basic validation
	ErrInvalidInput = errors.New("create_reservation: invalid input")

	// ErrUserNotFound is returned when the requesting user does not exist
	ErrUserNotFound = errors.New("create_reservation: user not found")

	// ErrWorkstationNotFound is returned when the workstation does not exist
	ErrWorkstationNotFound = errors.New("create_reservation: workstation not found")

	// ErrBookingBlocked is returned when the user's penalty status forbids booking
	ErrBookingBlocked = errors.New("create_reservation: booking blocked by penalty status")

	// ErrInvalidInterval is returned when start is not strictly before end
	ErrInvalidInterval = errors.New("create_reservation: start time must be before end time")

	// ErrDurationExceeded is returned when the interval exceeds the role's duration cap
	ErrDurationExceeded = errors.New("create_reservation: reservation duration exceeds role limit")

	// ErrCooldownActive is returned when the role's cooldown gap has not elapsed
	ErrCooldownActive = errors.New("create_reservation: cooldown period still active")

	// ErrActiveReservationExists is returned when the role's active limit is reached
	ErrActiveReservationExists = errors.New("create_reservation: active reservation limit reached")

	// ErrSlotUnavailable is returned when the slot conflicts with an existing
	// reservation or the workstation is not bookable
	ErrSlotUnavailable = errors.New("create_reservation: slot is not available")

	// ErrInternal is returned on storage or collaborator failures
	ErrInternal = errors.New("create_reservation: internal error")
)
