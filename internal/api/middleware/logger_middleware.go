package middleware

import (
	"net/http"
	"time"

	"github.com/RoyceAzure/lab/phonebook/internal/infra/auth/token"
	"github.com/RoyceAzure/lab/phonebook/internal/util"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type StatusRecoder struct {
	http.ResponseWriter
	status int
}

func (w *StatusRecoder) WriteHeader(status int) {
	if w.status == 0 {
		w.status = status
	}
	w.ResponseWriter.WriteHeader(status)
}

func (w *StatusRecoder) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	return w.ResponseWriter.Write(b)
}

func (w *StatusRecoder) Status() int {
	if w.status == 0 {
		return http.StatusOK
	}
	return w.status
}

func (w *StatusRecoder) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

func getPayload(r *http.Request) *token.Payload {
	payload := util.GetTokenPayloadFromContext(r.Context())
	if payload == nil {
		return &token.Payload{
			UPN: "unknown",
		}
	}
	return payload
}

// 記錄request 請求
func LoggerMiddleware(logger *zerolog.Logger) func(next http.Handler) http.Handler {
	if logger == nil {
		logger = &log.Logger
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			recoder := &StatusRecoder{
				ResponseWriter: w,
			}
			next.ServeHTTP(recoder, r)

			payload := getPayload(r)
			event := logger.Info()
			if recoder.Status() >= http.StatusInternalServerError {
				event = logger.Error()
			}
			event.
				Str("request_id", util.GetRequestIDFromContext(r.Context())).
				Str("upn", payload.UPN).
				Int64("user_id", payload.UserID).
				Str("method", r.Method).
				Str("url", r.URL.String()).
				Int("status", recoder.Status()).
				Dur("duration", time.Since(start)).
				Msg("request completed")
		})
	}
}
