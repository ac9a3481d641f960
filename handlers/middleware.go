package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/shifo-uz/clinicbackend/apperrors"
)

// ContextKey is a custom type for context keys to avoid collisions.
type ContextKey string

// PrincipalContextKey is the key used to store the authenticated principal
// in the request context.
const PrincipalContextKey ContextKey = "principal"

// Principal is the authenticated caller taken from a verified token.
type Principal struct {
	ID   uint
	Role string
}

// AccessClaims are the token claims the backend issues and verifies.
type AccessClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// extractToken pulls the raw token from the request. The Authorization
// bearer header wins, then a bare "token" header, then an "access_token"
// header, then the "access_token" cookie, matching what the admin panel
// and the public site each send.
func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return strings.TrimSpace(parts[1])
		}
	}
	if token := r.Header.Get("token"); token != "" {
		return token
	}
	if token := r.Header.Get("access_token"); token != "" {
		return token
	}
	if cookie, err := r.Cookie("access_token"); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	return ""
}

// AuthMiddleware verifies the request token and stores the principal in the
// request context. Requests without a valid token are rejected.
func AuthMiddleware(secretKey []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := extractToken(r)
			if tokenString == "" {
				writeError(w, apperrors.Authf("authentication required"))
				return
			}

			claims := &AccessClaims{}
			token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
				}
				return secretKey, nil
			})
			if err != nil || !token.Valid {
				writeError(w, apperrors.Authf("invalid or expired token"))
				return
			}

			var id uint
			if _, err := fmt.Sscan(claims.Subject, &id); err != nil || id == 0 {
				writeError(w, apperrors.Authf("invalid token subject"))
				return
			}

			principal := Principal{ID: id, Role: claims.Role}
			ctx := context.WithValue(r.Context(), PrincipalContextKey, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRoles rejects authenticated requests whose principal does not carry
// one of the allowed roles. It must run after AuthMiddleware.
func RequireRoles(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := PrincipalFromContext(r.Context())
			if !ok {
				writeError(w, apperrors.Authf("authentication required"))
				return
			}
			for _, role := range roles {
				if principal.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			writeError(w, apperrors.Forbiddenf("insufficient permissions"))
		})
	}
}

// PrincipalFromContext retrieves the authenticated principal, if any.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	principal, ok := ctx.Value(PrincipalContextKey).(Principal)
	return principal, ok
}
