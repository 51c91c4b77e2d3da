package middleware

import (
	"net/http"

	"github.com/RoyceAzure/lab/phonebook/internal/util"
	api "github.com/RoyceAzure/lab/phonebook/internal/util/rj_api"
	er "github.com/RoyceAzure/lab/phonebook/internal/util/rj_error"
)

// 驗證是ctx是否有token payload
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if util.GetTokenPayloadFromContext(r.Context()) == nil {
			api.ErrorJSON(w, int(er.UnauthenticatedCode), er.ErrStrMap[er.UnauthenticatedCode])
			return
		}
		next.ServeHTTP(w, r)
	})
}
