package list_flagged_users

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/CWS-ReservationService/internal/api/handlers"
	"github.com/m04kA/CWS-ReservationService/internal/api/middleware"
	"github.com/m04kA/CWS-ReservationService/internal/service/penalties"
	"github.com/m04kA/CWS-ReservationService/internal/service/penalties/models"
)

const (
	msgMissingFilter = "either status or top query parameter is required"
	msgInvalidStatus = "status must be one of: good, warning, bad"
	msgInvalidTop    = "top must be a positive integer"
	msgForbidden     = "listing flagged users requires a privileged role"
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

// Handle GET /api/v1/penalties/users?status=|top=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.ActorIDFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
		return
	}

	if err := h.service.AuthorizeManager(r.Context(), actorID); err != nil {
		switch {
		case errors.Is(err, penalties.ErrForbidden):
			h.logger.Warn("GET /penalties/users - forbidden: actor_id=%d", actorID)
			handlers.RespondForbidden(w, handlers.CodeForbidden, msgForbidden)

		case errors.Is(err, penalties.ErrUserNotFound):
			h.logger.Warn("GET /penalties/users - actor not found: actor_id=%d", actorID)
			handlers.RespondNotFound(w, msgUserNotFound)

		default:
			h.logger.Error("GET /penalties/users - authorization failed: actor_id=%d, error=%v", actorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	status := r.URL.Query().Get("status")
	topRaw := r.URL.Query().Get("top")

	var (
		result *models.UserListResponse
		err    error
	)
	switch {
	case status != "":
		result, err = h.service.ListByStatus(r.Context(), status)
	case topRaw != "":
		top, parseErr := strconv.Atoi(topRaw)
		if parseErr != nil || top <= 0 {
			handlers.RespondBadRequest(w, handlers.CodeInvalidRequest, msgInvalidTop)
			return
		}
		result, err = h.service.TopOffenders(r.Context(), top)
	default:
		handlers.RespondBadRequest(w, handlers.CodeInvalidRequest, msgMissingFilter)
		return
	}

	if err != nil {
		switch {
		case errors.Is(err, penalties.ErrInvalidStatus):
			h.logger.Warn("GET /penalties/users - invalid status: %q", status)
			handlers.RespondBadRequest(w, handlers.CodeInvalidRequest, msgInvalidStatus)

		default:
			h.logger.Error("GET /penalties/users - failed: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
