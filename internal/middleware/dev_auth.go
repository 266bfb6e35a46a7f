// internal/middleware/dev_auth.go
package middleware

import (
	"context"
	"net/http"

	"github.com/mbamerni/tzbi-vo/internal/model"
	"github.com/mbamerni/tzbi-vo/internal/webutil"

	"github.com/google/uuid"
)

// DevUserContextMiddleware trusts the X-User-ID header instead of a signed
// token. Local development and handler tests only; never mounted in main.
func DevUserContextMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get("X-User-ID")
		if raw == "" {
			webutil.HandleError(w, GetLogger(r.Context()), model.NewAppError(
				"UNAUTHORIZED", "X-User-ID header is required.", "", model.ErrForbidden))
			return
		}
		userID, err := uuid.Parse(raw)
		if err != nil {
			webutil.HandleError(w, GetLogger(r.Context()), model.NewAppError(
				"UNAUTHORIZED", "X-User-ID header is malformed.", "", model.ErrForbidden))
			return
		}
		ctx := context.WithValue(r.Context(), model.UserIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
