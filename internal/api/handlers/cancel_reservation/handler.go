package cancel_reservation

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/CWS-ReservationService/internal/api/handlers"
	"github.com/m04kA/CWS-ReservationService/internal/api/middleware"
	"github.com/m04kA/CWS-ReservationService/internal/service/reservations"
)

const (
	msgInvalidReservationID = "invalid reservation id"
	msgInvalidRequestBody   = "invalid request body"
	msgReservationNotFound  = "reservation not found"
	msgAccessDenied         = "you may only cancel your own reservations"
	msgForbidden            = "cancellation with a reason requires a privileged role"
	msgWindowClosed         = "cancellation window has closed"
	msgInvalidTransition    = "reservation can no longer be cancelled"
	msgMissingReason        = "cancellation reason is required"
)

// CancelRequest is the optional body; a reason switches to the privileged variant
type CancelRequest struct {
	Reason *string `json:"reason,omitempty"`
}

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/reservations/{reservationId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.ActorIDFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
		return
	}

	id, err := strconv.ParseInt(mux.Vars(r)["reservationId"], 10, 64)
	if err != nil || id <= 0 {
		handlers.RespondBadRequest(w, handlers.CodeInvalidRequest, msgInvalidReservationID)
		return
	}

	// The body is optional: an empty body is a plain cancellation
	var req CancelRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("PATCH /reservations/{id}/cancel - invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.CodeInvalidRequest, msgInvalidRequestBody)
		return
	}

	var result interface{}
	if req.Reason != nil {
		result, err = h.service.CancelWithReason(r.Context(), id, actorID, *req.Reason)
	} else {
		result, err = h.service.Cancel(r.Context(), id, actorID)
	}
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrReservationNotFound):
			h.logger.Warn("PATCH /reservations/{id}/cancel - not found: reservation_id=%d", id)
			handlers.RespondNotFound(w, msgReservationNotFound)

		case errors.Is(err, reservations.ErrUserNotFound):
			h.logger.Warn("PATCH /reservations/{id}/cancel - actor not found: user_id=%d", actorID)
			handlers.RespondNotFound(w, "user not found")

		case errors.Is(err, reservations.ErrAccessDenied):
			h.logger.Warn("PATCH /reservations/{id}/cancel - access denied: reservation_id=%d, user_id=%d", id, actorID)
			handlers.RespondForbidden(w, handlers.CodeNotOwner, msgAccessDenied)

		case errors.Is(err, reservations.ErrForbidden):
			h.logger.Warn("PATCH /reservations/{id}/cancel - privileged role required: user_id=%d", actorID)
			handlers.RespondForbidden(w, handlers.CodeForbidden, msgForbidden)

		case errors.Is(err, reservations.ErrCancellationWindowClosed):
			h.logger.Warn("PATCH /reservations/{id}/cancel - window closed: reservation_id=%d", id)
			handlers.RespondConflict(w, handlers.CodeCancellationWindowClosed, msgWindowClosed)

		case errors.Is(err, reservations.ErrInvalidStateTransition):
			h.logger.Warn("PATCH /reservations/{id}/cancel - invalid transition: reservation_id=%d", id)
			handlers.RespondConflict(w, handlers.CodeInvalidStateTransition, msgInvalidTransition)

		case errors.Is(err, reservations.ErrMissingReason):
			h.logger.Warn("PATCH /reservations/{id}/cancel - missing reason: reservation_id=%d", id)
			handlers.RespondBadRequest(w, handlers.CodeMissingReason, msgMissingReason)

		default:
			h.logger.Error("PATCH /reservations/{id}/cancel - failed: reservation_id=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /reservations/{id}/cancel - cancelled: reservation_id=%d, user_id=%d", id, actorID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
