package penalties

import "errors"

var (
	// ErrUserNotFound is returned when the user does not exist
	ErrUserNotFound = errors.New("penalties: user not found")

	// ErrMissingReason is returned when a manual strike carries no reason
	ErrMissingReason = errors.New("penalties: reason is required")

	// ErrInvalidTarget is returned when a manual strike targets a non-student
	ErrInvalidTarget = errors.New("penalties: manual strikes apply to students only")

	// ErrForbidden is returned when the operation requires a privileged role
	ErrForbidden = errors.New("penalties: operation requires a privileged role")

	// ErrInvalidStatus is returned when the requested penalty status is unknown
	ErrInvalidStatus = errors.New("penalties: invalid user status")

	// ErrInternal is returned on storage failures
	ErrInternal = errors.New("penalties: internal error")
)
