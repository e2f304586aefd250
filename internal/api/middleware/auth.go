package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/CWS-ReservationService/internal/api/handlers"
)

type contextKey string

const actorIDKey contextKey = "actorID"

// Auth requires the X-User-ID header and puts the actor's ID into the request
// context. Upstream infrastructure is trusted to have authenticated the user.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get("X-User-ID")
		if raw == "" {
			handlers.RespondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "X-User-ID header is required")
			return
		}

		actorID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || actorID <= 0 {
			handlers.RespondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "X-User-ID header must be a positive integer")
			return
		}

		ctx := context.WithValue(r.Context(), actorIDKey, actorID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ActorIDFromContext returns the authenticated actor's ID
func ActorIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(actorIDKey).(int64)
	return id, ok
}
