package get_workstation_slots

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/CWS-ReservationService/internal/api/handlers"
	"github.com/m04kA/CWS-ReservationService/internal/domain"
	getTimeSlots "github.com/m04kA/CWS-ReservationService/internal/usecase/get_time_slots"
)

const (
	msgInvalidWorkstationID = "invalid workstation id"
	msgInvalidDate          = "invalid date, YYYY-MM-DD expected"
	msgWorkstationNotFound  = "workstation not found"
)

type Handler struct {
	useCase GetTimeSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetTimeSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/workstations/{workstationId}/slots?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	workstationID, err := strconv.ParseInt(mux.Vars(r)["workstationId"], 10, 64)
	if err != nil || workstationID <= 0 {
		handlers.RespondBadRequest(w, handlers.CodeInvalidRequest, msgInvalidWorkstationID)
		return
	}

	date, err := time.Parse(domain.DateFormat, r.URL.Query().Get("date"))
	if err != nil {
		handlers.RespondBadRequest(w, handlers.CodeInvalidRequest, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getTimeSlots.Request{
		WorkstationID: workstationID,
		Date:          date,
	})
	if err != nil {
		switch {
		case errors.Is(err, getTimeSlots.ErrInvalidInput):
			h.logger.Warn("GET /workstations/{id}/slots - invalid input: %v", err)
			handlers.RespondBadRequest(w, handlers.CodeInvalidRequest, err.Error())

		case errors.Is(err, getTimeSlots.ErrWorkstationNotFound):
			h.logger.Warn("GET /workstations/{id}/slots - workstation not found: workstation_id=%d", workstationID)
			handlers.RespondNotFound(w, msgWorkstationNotFound)

		default:
			h.logger.Error("GET /workstations/{id}/slots - failed: workstation_id=%d, error=%v", workstationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
