package mark_no_show

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/CWS-ReservationService/internal/api/handlers"
	"github.com/m04kA/CWS-ReservationService/internal/api/middleware"
	"github.com/m04kA/CWS-ReservationService/internal/service/reservations"
)

const (
	msgInvalidReservationID = "invalid reservation id"
	msgReservationNotFound  = "reservation not found"
	msgForbidden            = "marking no-shows requires a privileged role"
	msgAlreadyNoShow        = "reservation is already marked as no-show"
	msgInvalidTransition    = "only confirmed reservations can be marked as no-show"
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

// Handle PATCH /api/v1/reservations/{reservationId}/no-show
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

	result, err := h.service.MarkNoShow(r.Context(), id, actorID)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrReservationNotFound):
			h.logger.Warn("PATCH /reservations/{id}/no-show - not found: reservation_id=%d", id)
			handlers.RespondNotFound(w, msgReservationNotFound)

		case errors.Is(err, reservations.ErrUserNotFound):
			h.logger.Warn("PATCH /reservations/{id}/no-show - actor not found: user_id=%d", actorID)
			handlers.RespondNotFound(w, "user not found")

		case errors.Is(err, reservations.ErrForbidden):
			h.logger.Warn("PATCH /reservations/{id}/no-show - forbidden: user_id=%d", actorID)
			handlers.RespondForbidden(w, handlers.CodeForbidden, msgForbidden)

		case errors.Is(err, reservations.ErrAlreadyNoShow):
			h.logger.Warn("PATCH /reservations/{id}/no-show - already marked: reservation_id=%d", id)
			handlers.RespondConflict(w, handlers.CodeAlreadyNoShow, msgAlreadyNoShow)

		case errors.Is(err, reservations.ErrInvalidStateTransition):
			h.logger.Warn("PATCH /reservations/{id}/no-show - invalid transition: reservation_id=%d", id)
			handlers.RespondConflict(w, handlers.CodeInvalidStateTransition, msgInvalidTransition)

		default:
			h.logger.Error("PATCH /reservations/{id}/no-show - failed: reservation_id=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /reservations/{id}/no-show - marked: reservation_id=%d, user_id=%d", id, actorID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
