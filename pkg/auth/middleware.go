package auth

import (
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/campusfound/campusfound/pkg/httpx"
	"github.com/campusfound/campusfound/pkg/logger"
)

// SessionName is the cookie name for the guard session.
const SessionName = "campusfound_session"

// Session value keys.
const (
	SessionUsernameKey = "username"
	SessionRoleKey     = "role"
)

// RequireGuard is a chi middleware that restricts a route group to the
// authenticated guard. It reads the session cookie, verifies the stored role,
// and injects the guard Actor into the request context.
// Returns 401 Unauthorized if the session is missing, invalid, or not a guard.
//
// After this middleware, handlers can safely call auth.ActorFromCtx(r.Context()).
func RequireGuard(store sessions.Store, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, err := store.Get(r, SessionName)
			if err != nil {
				log.WarnContext(r.Context(), "invalid session cookie", "error", err)
				httpx.JSONError(w, http.StatusUnauthorized, "authentication required")
				return
			}

			username, _ := session.Values[SessionUsernameKey].(string)
			role, _ := session.Values[SessionRoleKey].(string)
			if username == "" || role != RoleGuard {
				log.WarnContext(r.Context(), "session missing guard identity")
				httpx.JSONError(w, http.StatusUnauthorized, "authentication required")
				return
			}

			ctx := WithActor(r.Context(), Actor{Username: username, Role: role})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
