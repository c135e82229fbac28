package httputil

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/sirupsen/logrus"
)

type structuredLogger struct {
	logger logrus.FieldLogger
}

// NewLogMiddleware logs every request with its status and latency.
func NewLogMiddleware(logger logrus.FieldLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			sl := &structuredLogger{logger}
			start := time.Now()
			var requestID string
			if reqID, ok := r.Context().Value(middleware.RequestIDKey).(string); ok {
				requestID = reqID
			}
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			ctx := context.WithValue(r.Context(), middleware.LogEntryCtxKey, sl)
			next.ServeHTTP(ww, r.WithContext(ctx))

			fields := logrus.Fields{
				"status":  ww.Status(),
				"took":    time.Since(start),
				"remote":  r.RemoteAddr,
				"request": r.RequestURI,
				"method":  r.Method,
			}
			if requestID != "" {
				fields["request_id"] = requestID
			}
			sl.logger.WithFields(fields).Debug()
		}
		return http.HandlerFunc(fn)
	}
}

// GetLogger returns the request logger set by NewLogMiddleware, or a standard logger.
func GetLogger(r *http.Request) logrus.FieldLogger {
	if sl, ok := r.Context().Value(middleware.LogEntryCtxKey).(*structuredLogger); ok {
		return sl.logger
	}
	return logrus.StandardLogger()
}
