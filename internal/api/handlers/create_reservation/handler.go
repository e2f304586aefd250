package create_reservation

import (
	"errors"
	"net/http"

	"github.com/m04kA/CWS-ReservationService/internal/api/handlers"
	"github.com/m04kA/CWS-ReservationService/internal/api/middleware"
	createReservation "github.com/m04kA/CWS-ReservationService/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidTime        = "invalid time format, RFC 3339 expected"
	msgUserNotFound       = "user not found"
	msgWorkstationNot     = "workstation not found"
	msgBookingBlocked     = "booking blocked: too many no-show strikes"
	msgInvalidInterval    = "start time must be before end time"
	msgDurationExceeded   = "reservation duration exceeds the limit for your role"
	msgCooldownActive     = "cooldown period after your last reservation is still active"
	msgActiveLimit        = "you already hold the maximum number of active reservations"
	msgSlotUnavailable    = "the requested slot is not available"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.ActorIDFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
		return
	}

	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.CodeInvalidRequest, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(actorID)
	if err != nil {
		h.logger.Warn("POST /reservations - failed to parse request: %v", err)
		handlers.RespondBadRequest(w, handlers.CodeInvalidRequest, msgInvalidTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations - invalid input: user_id=%d: %v", actorID, err)
			handlers.RespondBadRequest(w, handlers.CodeInvalidRequest, err.Error())

		case errors.Is(err, createReservation.ErrInvalidInterval):
			h.logger.Warn("POST /reservations - invalid interval: user_id=%d", actorID)
			handlers.RespondBadRequest(w, handlers.CodeInvalidInterval, msgInvalidInterval)

		case errors.Is(err, createReservation.ErrUserNotFound):
			h.logger.Warn("POST /reservations - user not found: user_id=%d", actorID)
			handlers.RespondNotFound(w, msgUserNotFound)

		case errors.Is(err, createReservation.ErrWorkstationNotFound):
			h.logger.Warn("POST /reservations - workstation not found: workstation_id=%d", req.WorkstationID)
			handlers.RespondNotFound(w, msgWorkstationNot)

		case errors.Is(err, createReservation.ErrBookingBlocked):
			h.logger.Warn("POST /reservations - booking blocked: user_id=%d", actorID)
			handlers.RespondForbidden(w, handlers.CodeBookingBlocked, msgBookingBlocked)

		case errors.Is(err, createReservation.ErrDurationExceeded):
			h.logger.Warn("POST /reservations - duration exceeded: user_id=%d", actorID)
			handlers.RespondBadRequest(w, handlers.CodeDurationExceeded, msgDurationExceeded)

		case errors.Is(err, createReservation.ErrCooldownActive):
			h.logger.Warn("POST /reservations - cooldown active: user_id=%d", actorID)
			handlers.RespondConflict(w, handlers.CodeCooldownActive, msgCooldownActive)

		case errors.Is(err, createReservation.ErrActiveReservationExists):
			h.logger.Warn("POST /reservations - active limit reached: user_id=%d", actorID)
			handlers.RespondConflict(w, handlers.CodeActiveReservationExists, msgActiveLimit)

		case errors.Is(err, createReservation.ErrSlotUnavailable):
			h.logger.Warn("POST /reservations - slot unavailable: user_id=%d, workstation_id=%d",
				actorID, req.WorkstationID)
			handlers.RespondConflict(w, handlers.CodeSlotUnavailable, msgSlotUnavailable)

		default:
			h.logger.Error("POST /reservations - failed to create reservation: user_id=%d, error=%v", actorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations - reservation created: reservation_id=%d, user_id=%d", result.ID, actorID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
