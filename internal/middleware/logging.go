// internal/middleware/logging.go
package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

// logCtxKey stores the request-scoped logger in the context.
type logCtxKey struct{}

// statusWriter wraps http.ResponseWriter to record the status code.
type statusWriter struct {
	http.ResponseWriter
	statusCode int
	bytesOut   int
}

func newStatusWriter(w http.ResponseWriter) *statusWriter {
	return &statusWriter{ResponseWriter: w, statusCode: http.StatusOK}
}

func (sw *statusWriter) WriteHeader(statusCode int) {
	sw.statusCode = statusCode
	sw.ResponseWriter.WriteHeader(statusCode)
}

func (sw *statusWriter) Write(b []byte) (int, error) {
	n, err := sw.ResponseWriter.Write(b)
	sw.bytesOut += n
	return n, err
}

// LoggingMiddleware injects a req_id-scoped logger into the context and
// emits one summary line per request.
func LoggingMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			requestLogger := logger.With("req_id", middleware.GetReqID(r.Context()))
			ctx := context.WithValue(r.Context(), logCtxKey{}, requestLogger)
			r = r.WithContext(ctx)

			sw := newStatusWriter(w)
			next.ServeHTTP(sw, r)

			latency := time.Since(start)
			logLevel := slog.LevelInfo
			if sw.statusCode >= 500 {
				logLevel = slog.LevelError
			} else if sw.statusCode >= 400 {
				logLevel = slog.LevelWarn
			}

			requestLogger.Log(r.Context(), logLevel, "Request completed",
				"method", r.Method,
				"path", r.URL.Path,
				"status", sw.statusCode,
				"latency_ms", float64(latency.Nanoseconds())/1e6,
				"bytes_out", sw.bytesOut,
			)
		})
	}
}

// GetLogger returns the request-scoped logger, or the default logger when
// called outside a request (timers, drain ticker).
func GetLogger(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(logCtxKey{}).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}
