package middleware

import (
	"net/http"

	"github.com/pharmacast/workforce-api/internal/auth"
	"go.uber.org/zap"
)

// RequireAdmin gates mutating endpoints behind the admin credentials.
func RequireAdmin(verifier *auth.Verifier, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := verifier.Authenticate(r); err != nil {
				logger.Warn("Admin authentication failed",
					zap.String("path", r.URL.Path),
					zap.String("method", r.Method),
					zap.String("remote_addr", r.RemoteAddr),
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"title":"Unauthorized","status":401,"detail":"missing or invalid credentials"}`))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
