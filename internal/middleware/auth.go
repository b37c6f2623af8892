package middleware

import (
	"context"
	"net/http"
	"strings"

	"storefront/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type contextKey string

const (
	userIDKey   contextKey = "user_id"
	userRoleKey contextKey = "user_role"
)

// GetUserID returns the authenticated user's ID from the request context.
func GetUserID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(userIDKey).(uuid.UUID)
	return id, ok
}

// GetUserRole returns the authenticated user's role from the request context.
func GetUserRole(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(userRoleKey).(string)
	return role, ok
}

// RequireUser rejects requests that do not carry a valid token.
func RequireUser(secret string, logger zerolog.Logger) func(http.Handler) http.Handler {
	return requireRole(secret, "", logger)
}

// RequireAdmin rejects requests whose token does not carry the admin role.
func RequireAdmin(secret string, logger zerolog.Logger) func(http.Handler) http.Handler {
	return requireRole(secret, model.RoleAdmin, logger)
}

// OptionalUser attaches identity to the context when a valid token is
// present but lets the request through either way. An invalid or expired
// token degrades to an anonymous request instead of a 401.
func OptionalUser(secret string, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token != "" {
				userID, role, err := parseToken(token, secret)
				if err == nil {
					ctx := context.WithValue(r.Context(), userIDKey, userID)
					ctx = context.WithValue(ctx, userRoleKey, role)
					r = r.WithContext(ctx)
				} else {
					logger.Debug().Err(err).Msg("ignoring invalid token on optional-auth route")
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

func requireRole(secret, role string, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				logger.Warn().Str("path", r.URL.Path).Msg("missing auth token")
				unauthorized(w, "authentication required")
				return
			}

			userID, tokenRole, err := parseToken(token, secret)
			if err != nil {
				logger.Warn().Err(err).Str("path", r.URL.Path).Msg("invalid auth token")
				unauthorized(w, "invalid or expired token")
				return
			}

			if role != "" && tokenRole != role {
				logger.Warn().
					Str("path", r.URL.Path).
					Str("role", tokenRole).
					Msg("insufficient role")
				forbidden(w)
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			ctx = context.WithValue(ctx, userRoleKey, tokenRole)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractToken pulls the token from the Authorization header, falling back
// to the token cookie for browser clients.
func extractToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	if cookie, err := r.Cookie("token"); err == nil {
		return cookie.Value
	}
	return ""
}

func parseToken(tokenString, secret string) (uuid.UUID, string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		return uuid.Nil, "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return uuid.Nil, "", jwt.ErrTokenInvalidClaims
	}

	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, "", jwt.ErrTokenInvalidSubject
	}

	role, _ := claims["role"].(string)

	return userID, role, nil
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error": "` + message + `"}`))
}

func forbidden(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusForbidden)
	w.Write([]byte(`{"error": "admin access required"}`))
}
