package get_time_slots

import "errors"

var (
	// ErrInvalidInput is returned when the request fails basic validation
	ErrInvalidInput = errors.New("get_time_slots: invalid input")

	// ErrWorkstationNotFound is returned when the workstation does not exist
	ErrWorkstationNotFound = errors.New("get_time_slots: workstation not found")

	// ErrInternal is returned on storage failures
	ErrInternal = errors.New("get_time_slots: internal error")
)
