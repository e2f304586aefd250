package notifyservice

import "errors"

var (
	// ErrRequestFailed is returned when the notification service call fails
	ErrRequestFailed = errors.New("notifyservice: request failed")

	// ErrUnexpectedStatus is returned on a non-2xx response
	ErrUnexpectedStatus = errors.New("notifyservice: unexpected response status")
)
