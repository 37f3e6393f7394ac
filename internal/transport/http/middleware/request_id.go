package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"utamahr/internal/requestctx"
)

const RequestIDHeader = "X-Request-ID"

// RequestID tags the request with an id and a logger entry carrying it.
func RequestID(log logrus.FieldLogger) func(http.Handler) http.Handler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := r.Header.Get(RequestIDHeader)
			if reqID == "" || len(reqID) > 128 {
				reqID = uuid.NewString()
			}
			w.Header().Set(RequestIDHeader, reqID)
			ctx := requestctx.WithRequestID(r.Context(), reqID)
			ctx = requestctx.WithLogger(ctx, log.WithField("request_id", reqID))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetRequestID(ctx context.Context) string {
	return requestctx.GetRequestID(ctx)
}
