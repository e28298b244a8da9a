package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/hassannetsec/doctors-friend/internal/auth"
)

type contextKey string

const sessionClaimsKey contextKey = "sessionClaims"

// AdminJWT guards admin endpoints. It requires a Bearer session token
// signed with secret whose claims carry the admin scope.
func AdminJWT(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if secret == "" {
				http.Error(w, "admin auth disabled", http.StatusUnauthorized)
				return
			}
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				http.Error(w, "missing authorization header", http.StatusUnauthorized)
				return
			}
			claims, err := auth.ParseToken(strings.TrimPrefix(header, "Bearer "), secret)
			if err != nil {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}
			if !claims.Admin {
				http.Error(w, "admin scope required", http.StatusForbidden)
				return
			}
			ctx := context.WithValue(r.Context(), sessionClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionClaimsFromContext returns the session claims if present.
func SessionClaimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(sessionClaimsKey).(*auth.Claims)
	return claims, ok
}
