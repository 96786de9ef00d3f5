package middleware

import (
	"net/http"

	"github.com/radif/mediadrop/internal/auth"
	"github.com/radif/mediadrop/internal/response"
)

// SessionValidator reports whether a session token is live.
type SessionValidator interface {
	IsValidSession(token string) bool
}

// RequireSession returns middleware that rejects requests without a valid
// session cookie with 401 {"error":"Unauthorized"}.
func RequireSession(sessions SessionValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := auth.TokenFromRequest(r)
			if token == "" || !sessions.IsValidSession(token) {
				response.Unauthorized(w, "Unauthorized")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
