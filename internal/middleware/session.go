package middleware

import (
	"context"
	"net/http"

	"carwash-backend/internal/auth"
)

type contextKey string

const sessionKey contextKey = "session"

// WithSession decodes the session cookie into the request context when
// present. It never rejects: API responses are scoped by the session when one
// exists and anonymous requests pass through, matching the historical
// behavior where only page routes were gated.
func WithSession(manager *auth.SessionManager, cookieName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(cookieName)
			if err == nil && cookie.Value != "" {
				if sess, err := manager.Decode(cookie.Value); err == nil {
					r = r.WithContext(context.WithValue(r.Context(), sessionKey, sess))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// SessionFromContext returns the decoded session, or nil when the request is
// anonymous or the cookie failed verification.
func SessionFromContext(ctx context.Context) *auth.Session {
	sess, _ := ctx.Value(sessionKey).(*auth.Session)
	return sess
}
