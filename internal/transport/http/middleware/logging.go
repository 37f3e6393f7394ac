package middleware

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"utamahr/internal/requestctx"
)

type RequestRecorder interface {
	Record(method string, status int, duration time.Duration)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(p []byte) (int, error) {
	n, err := s.ResponseWriter.Write(p)
	s.bytes += n
	return n, err
}

// Logger writes one entry per request and feeds the request metrics when set.
func Logger(metrics RequestRecorder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(recorder, r)
			elapsed := time.Since(start)

			if metrics != nil {
				metrics.Record(r.Method, recorder.status, elapsed)
			}
			entry := requestctx.Logger(r.Context()).WithFields(logrus.Fields{
				"method":      r.Method,
				"path":        r.URL.Path,
				"status":      recorder.status,
				"bytes":       recorder.bytes,
				"duration_ms": elapsed.Milliseconds(),
			})
			if recorder.status >= http.StatusInternalServerError {
				entry.Error("request failed")
				return
			}
			entry.Info("request")
		})
	}
}
