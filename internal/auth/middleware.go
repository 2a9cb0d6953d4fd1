package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/quillpad/quillpad-be/internal/models"
	"github.com/rs/zerolog/log"
)

// UserClaimsKey is the context key for user claims.
type contextKey string

const UserClaimsKey = contextKey("userClaims")

// ClaimsFromContext retrieves the verified claims attached by Authenticate.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(UserClaimsKey).(*Claims)
	return claims, ok
}

// Authenticate creates a middleware for protecting routes. It extracts the
// bearer token, verifies it, and attaches the claims to the request context.
func (tm *TokenManager) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var tokenStr string

		// 1. Try to get the token from the Authorization header
		authHeader := r.Header.Get("Authorization")
		if authHeader != "" {
			parts := strings.Split(authHeader, "Bearer ")
			if len(parts) == 2 {
				tokenStr = parts[1]
			}
		}

		// 2. If not in header, fall back to the cookie
		if tokenStr == "" {
			cookie, err := r.Cookie("token")
			if err != nil {
				http.Error(w, "Missing auth token", http.StatusUnauthorized)
				return
			}
			tokenStr = cookie.Value
		}

		if tokenStr == "" {
			http.Error(w, "Missing auth token", http.StatusUnauthorized)
			return
		}

		// 3. Validate the token
		claims, err := tm.Verify(tokenStr)
		if err != nil {
			// Tag the reason so clients can tell an expired session apart
			// from a bad token.
			http.Error(w, "Invalid auth token: "+err.Error(), http.StatusUnauthorized)
			return
		}

		// 4. Pass claims down via context
		ctx := context.WithValue(r.Context(), UserClaimsKey, claims)
		log.Debug().Str("user_id", claims.UserID).Str("role", string(claims.Role)).Msg("Authenticated request")
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole creates a middleware that rejects authenticated requests whose
// role does not match. It must run after Authenticate.
func RequireRole(role models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				http.Error(w, "Missing auth token", http.StatusUnauthorized)
				return
			}
			if claims.Role != role {
				http.Error(w, "Insufficient permissions", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
