package update_reservation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/CWS-ReservationService/internal/api/handlers"
	"github.com/m04kA/CWS-ReservationService/internal/api/middleware"
	"github.com/m04kA/CWS-ReservationService/internal/service/reservations"
	"github.com/m04kA/CWS-ReservationService/internal/service/reservations/models"
)

const (
	msgInvalidReservationID = "invalid reservation id"
	msgInvalidRequestBody   = "invalid request body"
	msgReservationNotFound  = "reservation not found"
	msgWorkstationNotFound  = "workstation not found"
	msgAccessDenied         = "you may only update your own reservations"
	msgCannotUpdate         = "reservation can no longer be updated"
	msgInvalidInterval      = "start time must be before end time"
	msgDurationExceeded     = "reservation duration exceeds the limit for the owner's role"
	msgSlotUnavailable      = "the requested slot is not available"
)

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

// Handle PATCH /api/v1/reservations/{reservationId}
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

	var req models.UpdateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /reservations/{id} - invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.CodeInvalidRequest, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), id, actorID, &req)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrReservationNotFound):
			h.logger.Warn("PATCH /reservations/{id} - not found: reservation_id=%d", id)
			handlers.RespondNotFound(w, msgReservationNotFound)

		case errors.Is(err, reservations.ErrUserNotFound):
			h.logger.Warn("PATCH /reservations/{id} - user not found: user_id=%d", actorID)
			handlers.RespondNotFound(w, "user not found")

		case errors.Is(err, reservations.ErrWorkstationNotFound):
			h.logger.Warn("PATCH /reservations/{id} - workstation not found: reservation_id=%d", id)
			handlers.RespondNotFound(w, msgWorkstationNotFound)

		case errors.Is(err, reservations.ErrAccessDenied):
			h.logger.Warn("PATCH /reservations/{id} - access denied: reservation_id=%d, user_id=%d", id, actorID)
			handlers.RespondForbidden(w, handlers.CodeNotOwner, msgAccessDenied)

		case errors.Is(err, reservations.ErrCannotUpdate):
			h.logger.Warn("PATCH /reservations/{id} - cannot update: reservation_id=%d", id)
			handlers.RespondConflict(w, handlers.CodeInvalidStateTransition, msgCannotUpdate)

		case errors.Is(err, reservations.ErrInvalidInterval):
			h.logger.Warn("PATCH /reservations/{id} - invalid interval: reservation_id=%d", id)
			handlers.RespondBadRequest(w, handlers.CodeInvalidInterval, msgInvalidInterval)

		case errors.Is(err, reservations.ErrDurationExceeded):
			h.logger.Warn("PATCH /reservations/{id} - duration exceeded: reservation_id=%d", id)
			handlers.RespondBadRequest(w, handlers.CodeDurationExceeded, msgDurationExceeded)

		case errors.Is(err, reservations.ErrSlotUnavailable):
			h.logger.Warn("PATCH /reservations/{id} - slot unavailable: reservation_id=%d", id)
			handlers.RespondConflict(w, handlers.CodeSlotUnavailable, msgSlotUnavailable)

		default:
			h.logger.Error("PATCH /reservations/{id} - failed: reservation_id=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /reservations/{id} - updated: reservation_id=%d, user_id=%d", id, actorID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
