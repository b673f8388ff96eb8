package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/REFATBHUYAN/easydrop-api/internal/auth"
)

type contextKey int

const userIDKey contextKey = iota

// AuthMiddleware verifies the bearer token on every request and binds
// the resolved user id into the request context. Requests without a
// valid token never reach the next handler.
func AuthMiddleware(tokens *auth.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" || !strings.HasPrefix(header, "Bearer ") {
				unauthorized(w)
				return
			}
			userID, err := tokens.Verify(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				unauthorized(w)
				return
			}
			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFromContext returns the authenticated user id bound by AuthMiddleware
func UserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey).(int64)
	return userID, ok
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
}
