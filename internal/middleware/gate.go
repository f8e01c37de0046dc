package middleware

import (
	"net/http"
	"strings"

	"carwash-backend/internal/models"
)

// technicianAllowed is the page allow-list for the technician role.
var technicianAllowed = map[string]bool{
	"/orders":  true,
	"/scanner": true,
}

// isPublicPath reports whether a path bypasses the page gate. API routes are
// scoped per-request instead of gated, and assets are always reachable.
func isPublicPath(path string) bool {
	if path == "/login" || path == "/favicon.ico" || path == "/robots.txt" {
		return true
	}
	for _, prefix := range []string{"/api/", "/ws/", "/static/", "/uploads/", "/metrics", "/health"} {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// PageGate protects page routes: anonymous visitors are redirected to /login,
// and technicians are confined to the orders and scanner pages.
func PageGate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isPublicPath(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		sess := SessionFromContext(r.Context())
		if sess == nil {
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}

		if sess.Role == models.RoleTechnician && !technicianAllowed[r.URL.Path] {
			http.Redirect(w, r, "/orders", http.StatusFound)
			return
		}

		next.ServeHTTP(w, r)
	})
}
