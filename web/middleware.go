package web

import (
	"net/http"
	"time"

	"livescore/logging"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// requestLogger logs one line per request once the response has been written
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		args := []any{
			logging.FieldRequestID, chimiddleware.GetReqID(r.Context()),
			logging.FieldMethod, r.Method,
			logging.FieldPath, r.URL.Path,
			logging.FieldStatusCode, status,
			logging.FieldDurationMS, time.Since(start).Milliseconds(),
		}
		if status >= http.StatusInternalServerError {
			logging.Warn(s.logger, "request failed", args...)
			return
		}
		logging.Info(s.logger, "request", args...)
	})
}
