package httpapi

import (
	"context"
	"net/http"
	"strings"

	"gigmate/marketplace-service/internal/application"
	"gigmate/marketplace-service/internal/auth"
	"gigmate/marketplace-service/internal/model"
)

type contextKey string

const actorKey contextKey = "actor"

// authenticate verifies the bearer token and stores the actor in the request
// context for the handlers downstream.
func authenticate(v *auth.Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing Authorization header")
				return
			}
			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authorization header must carry a bearer token")
				return
			}
			id, role, err := v.Verify(parts[1])
			if err != nil {
				writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid token")
				return
			}
			ctx := context.WithValue(r.Context(), actorKey, application.Actor{ID: id, Role: role})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// actorFrom returns the authenticated actor placed by authenticate.
func actorFrom(r *http.Request) application.Actor {
	actor, _ := r.Context().Value(actorKey).(application.Actor)
	return actor
}

// requireRole rejects requests whose actor holds none of the given roles.
func requireRole(roles ...model.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor := actorFrom(r)
			for _, role := range roles {
				if actor.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			writeError(w, http.StatusForbidden, "FORBIDDEN", "insufficient role")
		})
	}
}
