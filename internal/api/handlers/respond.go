package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Machine-readable error codes carried in every error envelope
const (
	CodeInvalidRequest           = "INVALID_REQUEST"
	CodeInvalidInterval          = "INVALID_INTERVAL"
	CodeNotFound                 = "NOT_FOUND"
	CodeDurationExceeded         = "DURATION_EXCEEDED"
	CodeCooldownActive           = "COOLDOWN_ACTIVE"
	CodeActiveReservationExists  = "ACTIVE_RESERVATION_EXISTS"
	CodeSlotUnavailable          = "SLOT_UNAVAILABLE"
	CodeBookingBlocked           = "BOOKING_BLOCKED"
	CodeCancellationWindowClosed = "CANCELLATION_WINDOW_CLOSED"
	CodeNotOwner                 = "NOT_OWNER"
	CodeForbidden                = "FORBIDDEN"
	CodeInvalidStateTransition   = "INVALID_STATE_TRANSITION"
	CodeAlreadyNoShow            = "ALREADY_NO_SHOW"
	CodeMissingReason            = "MISSING_REASON"
	CodeInternalError            = "INTERNAL_ERROR"
)

// ErrorBody is the machine-readable half of the error envelope
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse is the uniform error envelope of the API
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// RespondJSON writes the payload with the given status
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

// RespondError writes the error envelope with the given status and code
func RespondError(w http.ResponseWriter, status int, code, message string) {
	RespondJSON(w, status, ErrorResponse{Error: ErrorBody{Code: code, Message: message}})
}

// RespondBadRequest writes a 400 with the given code
func RespondBadRequest(w http.ResponseWriter, code, message string) {
	RespondError(w, http.StatusBadRequest, code, message)
}

// RespondNotFound writes a 404
func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, CodeNotFound, message)
}

// RespondForbidden writes a 403 with the given code
func RespondForbidden(w http.ResponseWriter, code, message string) {
	RespondError(w, http.StatusForbidden, code, message)
}

// RespondConflict writes a 409 with the given code
func RespondConflict(w http.ResponseWriter, code, message string) {
	RespondError(w, http.StatusConflict, code, message)
}

// RespondInternalError writes a 500 without leaking internals
func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, CodeInternalError, "internal server error")
}

// DecodeJSON decodes the request body, rejecting unknown fields
func DecodeJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	if dec.More() {
		return errors.New("request body must contain a single JSON object")
	}
	return nil
}
