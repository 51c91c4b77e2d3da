package middleware

import (
	"context"
	"net/http"

	"github.com/RoyceAzure/lab/phonebook/internal/constants"
	"github.com/google/uuid"
)

const (
	RequestIDHeader    = "X-Request-ID"
	maxRequestIDLength = 64
)

// RequestIdMiddleware 沿用上游的 request id, 沒有或過長時重新產生
func RequestIdMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" || len(requestID) > maxRequestIDLength {
			requestID = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, requestID)

		ctx := context.WithValue(r.Context(), constants.RequestIDKey, requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
