package middleware

import (
	"net"
	"net/http"

	"github.com/RoyceAzure/lab/phonebook/internal/infra/ratelimit"
	api "github.com/RoyceAzure/lab/phonebook/internal/util/rj_api"
	er "github.com/RoyceAzure/lab/phonebook/internal/util/rj_error"
)

// NewRateLimitMiddleware 以 client ip 為 key 限流, 需放在 chi RealIP 之後
func NewRateLimitMiddleware(limiter ratelimit.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow(r.Context(), clientKey(r)) {
				api.ErrorJSON(w, int(er.TooManyRequestsCode), "Too many requests, please try again later.")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
