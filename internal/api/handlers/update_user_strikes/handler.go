package update_user_strikes

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/CWS-ReservationService/internal/api/handlers"
	"github.com/m04kA/CWS-ReservationService/internal/api/middleware"
	"github.com/m04kA/CWS-ReservationService/internal/domain"
	"github.com/m04kA/CWS-ReservationService/internal/service/penalties"
	"github.com/m04kA/CWS-ReservationService/internal/service/penalties/models"
)

const (
	actionAdd    = "add"
	actionRemove = "remove"
	actionReset  = "reset"
)

const (
	msgInvalidUserID      = "invalid user id"
	msgInvalidRequestBody = "invalid request body"
	msgInvalidAction      = "action must be one of: add, remove, reset"
	msgUserNotFound       = "user not found"
	msgForbidden          = "managing strikes requires a privileged role"
	msgMissingReason      = "a reason is required when adding a strike"
	msgInvalidTarget      = "manual strikes apply to students only"
)

// StrikeRequest selects the ledger mutation; add requires a reason
type StrikeRequest struct {
	Action string  `json:"action"`
	Reason *string `json:"reason,omitempty"`
}

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

// Handle POST /api/v1/users/{userId}/strikes
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.ActorIDFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
		return
	}

	userID, err := strconv.ParseInt(mux.Vars(r)["userId"], 10, 64)
	if err != nil || userID <= 0 {
		handlers.RespondBadRequest(w, handlers.CodeInvalidRequest, msgInvalidUserID)
		return
	}

	var req StrikeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /users/{userId}/strikes - invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.CodeInvalidRequest, msgInvalidRequestBody)
		return
	}

	if err := h.service.AuthorizeManager(r.Context(), actorID); err != nil {
		switch {
		case errors.Is(err, penalties.ErrForbidden):
			h.logger.Warn("POST /users/{userId}/strikes - forbidden: actor_id=%d", actorID)
			handlers.RespondForbidden(w, handlers.CodeForbidden, msgForbidden)

		case errors.Is(err, penalties.ErrUserNotFound):
			h.logger.Warn("POST /users/{userId}/strikes - actor not found: actor_id=%d", actorID)
			handlers.RespondNotFound(w, msgUserNotFound)

		default:
			h.logger.Error("POST /users/{userId}/strikes - authorization failed: actor_id=%d, error=%v", actorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	var result *domain.User
	switch req.Action {
	case actionAdd:
		reason := ""
		if req.Reason != nil {
			reason = *req.Reason
		}
		result, err = h.service.AddManualStrike(r.Context(), userID, reason)
	case actionRemove:
		result, err = h.service.RemoveStrike(r.Context(), userID)
	case actionReset:
		result, err = h.service.ResetStrikes(r.Context(), userID)
	default:
		handlers.RespondBadRequest(w, handlers.CodeInvalidRequest, msgInvalidAction)
		return
	}

	if err != nil {
		switch {
		case errors.Is(err, penalties.ErrUserNotFound):
			h.logger.Warn("POST /users/{userId}/strikes - user not found: user_id=%d", userID)
			handlers.RespondNotFound(w, msgUserNotFound)

		case errors.Is(err, penalties.ErrMissingReason):
			h.logger.Warn("POST /users/{userId}/strikes - missing reason: user_id=%d", userID)
			handlers.RespondBadRequest(w, handlers.CodeMissingReason, msgMissingReason)

		case errors.Is(err, penalties.ErrInvalidTarget):
			h.logger.Warn("POST /users/{userId}/strikes - invalid target: user_id=%d", userID)
			handlers.RespondBadRequest(w, handlers.CodeInvalidRequest, msgInvalidTarget)

		default:
			h.logger.Error("POST /users/{userId}/strikes - failed: user_id=%d, action=%s, error=%v",
				userID, req.Action, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /users/{userId}/strikes - %s applied: user_id=%d, actor_id=%d, strikes=%d",
		req.Action, userID, actorID, result.StrikeCount)
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainUser(result))
}
