package reservations

import "errors"

var (
	// ErrReservationNotFound is returned when the reservation does not exist
	ErrReservationNotFound = errors.New("reservations: reservation not found")

	// ErrUserNotFound is returned when the referenced user does not exist
	ErrUserNotFound = errors.New("reservations: user not found")

	// ErrWorkstationNotFound is returned when the referenced workstation does not exist
	ErrWorkstationNotFound = errors.New("reservations: workstation not found")

	// ErrAccessDenied is returned when the actor may not act on the reservation
	ErrAccessDenied = errors.New("reservations: access denied")

	// ErrForbidden is returned when the operation requires a privileged role
	ErrForbidden = errors.New("reservations: operation requires a privileged role")

	// ErrInvalidStateTransition is returned when the lifecycle forbids the transition
	ErrInvalidStateTransition = errors.New("reservations: invalid state transition")

	// ErrAlreadyNoShow is returned when re-marking an already no-show reservation
	ErrAlreadyNoShow = errors.New("reservations: reservation already marked no-show")

	// ErrMissingReason is returned when cancel-with-reason carries no reason
	ErrMissingReason = errors.New("reservations: cancellation reason is required")

	// ErrCancellationWindowClosed is returned when cancellation is attempted
	// too close to the start time
	ErrCancellationWindowClosed = errors.New("reservations: cancellation window has closed")

	// ErrSlotUnavailable is returned when the new interval conflicts with an
	// existing reservation or the workstation is not bookable
	ErrSlotUnavailable = errors.New("reservations: slot is not available")

	// ErrInvalidInterval is returned when start is not strictly before end
	ErrInvalidInterval = errors.New("reservations: start time must be before end time")

	// ErrDurationExceeded is returned when the new interval exceeds the owner's duration cap
	ErrDurationExceeded = errors.New("reservations: reservation duration exceeds role limit")

	// ErrCannotUpdate is returned when the reservation is already retired
	ErrCannotUpdate = errors.New("reservations: reservation can no longer be updated")

	// ErrInvalidStatus is returned when a status filter value is unknown
	ErrInvalidStatus = errors.New("reservations: invalid reservation status")

	// ErrInternal is returned on storage failures
	ErrInternal = errors.New("reservations: internal error")
)
