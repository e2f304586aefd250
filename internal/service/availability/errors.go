package availability

import "errors"

var (
	// ErrWorkstationNotFound is returned when the workstation does not exist
	ErrWorkstationNotFound = errors.New("availability: workstation not found")

	// ErrInvalidInterval is returned when start is not strictly before end
	ErrInvalidInterval = errors.New("availability: start time must be before end time")

	// ErrInternal is returned on storage failures
	ErrInternal = errors.New("availability: internal error")
)
