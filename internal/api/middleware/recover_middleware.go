package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/RoyceAzure/lab/phonebook/internal/util"
	api "github.com/RoyceAzure/lab/phonebook/internal/util/rj_api"
	er "github.com/RoyceAzure/lab/phonebook/internal/util/rj_error"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func RecoverMiddleware(logger *zerolog.Logger) func(next http.Handler) http.Handler {
	if logger == nil {
		logger = &log.Logger
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				var errMsg string
				if e, ok := rec.(error); ok {
					errMsg = e.Error()
				} else {
					errMsg = fmt.Sprintf("%v", rec)
				}
				logger.Error().
					Str("request_id", util.GetRequestIDFromContext(r.Context())).
					Str("method", r.Method).
					Str("url", r.URL.String()).
					Str("error", errMsg).
					Bytes("stack", debug.Stack()).
					Msg("panic recovered")

				api.ErrorJSON(w, int(er.InternalErrorCode), er.ErrStrMap[er.InternalErrorCode])
			}()

			next.ServeHTTP(w, r)
		})
	}
}
