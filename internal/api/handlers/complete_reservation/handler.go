package complete_reservation

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
	msgForbidden            = "completing reservations requires a privileged role"
	msgInvalidTransition    = "only confirmed reservations can be completed"
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

// Handle PATCH /api/v1/reservations/{reservationId}/complete
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

	result, err := h.service.Complete(r.Context(), id, actorID)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrReservationNotFound):
			h.logger.Warn("PATCH /reservations/{id}/complete - not found: reservation_id=%d", id)
			handlers.RespondNotFound(w, msgReservationNotFound)

		case errors.Is(err, reservations.ErrUserNotFound):
			h.logger.Warn("PATCH /reservations/{id}/complete - actor not found: user_id=%d", actorID)
			handlers.RespondNotFound(w, "user not found")

		case errors.Is(err, reservations.ErrForbidden):
			h.logger.Warn("PATCH /reservations/{id}/complete - forbidden: user_id=%d", actorID)
			handlers.RespondForbidden(w, handlers.CodeForbidden, msgForbidden)

		case errors.Is(err, reservations.ErrInvalidStateTransition):
			h.logger.Warn("PATCH /reservations/{id}/complete - invalid transition: reservation_id=%d", id)
			handlers.RespondConflict(w, handlers.CodeInvalidStateTransition, msgInvalidTransition)

		default:
			h.logger.Error("PATCH /reservations/{id}/complete - failed: reservation_id=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /reservations/{id}/complete - completed: reservation_id=%d, user_id=%d", id, actorID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
