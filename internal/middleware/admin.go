package middleware

import (
	"net/http"

	"github.com/webxmedia/backend/internal/contextkeys"
	"github.com/webxmedia/backend/internal/handler"
)

// AdminOnly ensures the user has the 'admin' role. Must be used AFTER Auth,
// which sets contextkeys.UserRole in the request context.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, ok := r.Context().Value(contextkeys.UserRole).(string)
		if !ok || role != "admin" {
			handler.JSON(w, http.StatusForbidden, map[string]string{"error": "forbidden: admin access required"})
			return
		}
		next.ServeHTTP(w, r)
	})
}
