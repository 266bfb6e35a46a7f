// internal/middleware/auth.go
package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/mbamerni/tzbi-vo/internal/config"
	"github.com/mbamerni/tzbi-vo/internal/model"
	"github.com/mbamerni/tzbi-vo/internal/webutil"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// JWTAuthMiddleware validates the Authorization bearer token (HS256) and
// puts the user id from the sub claim into the request context. Issuing
// tokens is the identity provider's job; this engine only verifies them.
func JWTAuthMiddleware(cfg *config.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := GetLogger(r.Context())

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.Warn("JWT auth failed: Authorization header missing")
				webutil.HandleError(w, logger, model.NewAppError(
					"UNAUTHORIZED", "Authorization header is required.", "", model.ErrForbidden))
				return
			}

			headerParts := strings.Split(authHeader, " ")
			if len(headerParts) != 2 || !strings.EqualFold(headerParts[0], "bearer") {
				logger.Warn("JWT auth failed: invalid Authorization header format")
				webutil.HandleError(w, logger, model.NewAppError(
					"UNAUTHORIZED", "Authorization header format must be 'Bearer {token}'.", "", model.ErrForbidden))
				return
			}
			tokenString := headerParts[1]

			token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, errors.New("unexpected signing method")
				}
				return []byte(cfg.JWT.SecretKey), nil
			})
			if err != nil {
				logger.Warn("JWT auth failed: invalid token", "error", err)
				webutil.HandleError(w, logger, model.NewAppError(
					"INVALID_TOKEN", "Token is invalid or expired.", "", model.ErrForbidden))
				return
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok || !token.Valid {
				logger.Warn("JWT auth failed: unknown claims type")
				webutil.HandleError(w, logger, model.NewAppError(
					"INVALID_TOKEN", "Token is invalid.", "", model.ErrForbidden))
				return
			}

			subject, err := claims.GetSubject()
			if err != nil {
				logger.Warn("JWT auth failed: sub claim missing", "error", err)
				webutil.HandleError(w, logger, model.NewAppError(
					"INVALID_TOKEN", "Token does not identify a user.", "", model.ErrForbidden))
				return
			}

			userID, err := uuid.Parse(subject)
			if err != nil {
				logger.Warn("JWT auth failed: invalid sub format", "subject", subject, "error", err)
				webutil.HandleError(w, logger, model.NewAppError(
					"INVALID_TOKEN", "Token user id is malformed.", "", model.ErrForbidden))
				return
			}

			ctx := context.WithValue(r.Context(), model.UserIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserIDFromContext returns the authenticated user id set by
// JWTAuthMiddleware.
func GetUserIDFromContext(ctx context.Context) (uuid.UUID, error) {
	userID, ok := ctx.Value(model.UserIDKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return uuid.Nil, errors.New("user ID not found in context")
	}
	return userID, nil
}
