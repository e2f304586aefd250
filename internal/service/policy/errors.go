package policy

import "errors"

var (
	// ErrInvalidInterval is returned when start is not strictly before end
	ErrInvalidInterval = errors.New("policy: start time must be before end time")

	// ErrDurationExceeded is returned when the reservation is longer than the role allows
	ErrDurationExceeded = errors.New("policy: reservation duration exceeds role limit")

	// ErrCooldownActive is returned when the proposed start violates the
	// gap required after the user's last reservation
	ErrCooldownActive = errors.New("policy: cooldown after last reservation still active")

	// ErrActiveReservationExists is returned when the user already holds
	// the maximum number of active reservations
	ErrActiveReservationExists = errors.New("policy: user already has an active reservation")

	// ErrCancellationWindowClosed is returned when cancellation is attempted
	// too close to the start time
	ErrCancellationWindowClosed = errors.New("policy: cancellation window has closed")

	// ErrNotOwner is returned when the actor may not act on the resource
	ErrNotOwner = errors.New("policy: actor does not own this reservation")

	// ErrInternal is returned on storage failures
	ErrInternal = errors.New("policy: internal error")
)
