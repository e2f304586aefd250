package get_user_penalties

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/CWS-ReservationService/internal/api/handlers"
	"github.com/m04kA/CWS-ReservationService/internal/service/penalties"
)

const (
	msgInvalidUserID = "invalid user id"
	msgUserNotFound  = "user not found"
)

type Handler struct {
	service PenaltyService
	logger  Logger
}

func NewHandler(service PenaltyService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/users/{userId}/penalties
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(mux.Vars(r)["userId"], 10, 64)
	if err != nil || userID <= 0 {
		handlers.RespondBadRequest(w, handlers.CodeInvalidRequest, msgInvalidUserID)
		return
	}

	result, err := h.service.GetUserStats(r.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, penalties.ErrUserNotFound):
			h.logger.Warn("GET /users/{userId}/penalties - user not found: user_id=%d", userID)
			handlers.RespondNotFound(w, msgUserNotFound)

		default:
			h.logger.Error("GET /users/{userId}/penalties - failed: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
