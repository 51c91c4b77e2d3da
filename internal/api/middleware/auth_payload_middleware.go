package middleware

import (
	"net/http"
	"strings"

	"github.com/RoyceAzure/lab/phonebook/internal/constants"
	"github.com/RoyceAzure/lab/phonebook/internal/infra/auth/token"
	"github.com/RoyceAzure/lab/phonebook/internal/util"
)

// 只解析 token payload, 任何錯誤都不中斷請求, 由 AuthMiddleware 決定是否拒絕
func AuthPayloadMiddleware(tokenMaker token.Maker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearerToken(r.Header.Get(string(constants.AuthorizationHeaderKey)))
			if !ok {
				next.ServeHTTP(w, r)
				return
			}
			payload, err := tokenMaker.VertifyToken(raw)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(util.SetTokenPayloadToContext(r.Context(), payload)))
		})
	}
}

// bearerToken 取出 "Bearer <token>" 的 token, scheme 不分大小寫
func bearerToken(header string) (string, bool) {
	scheme, raw, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, string(constants.AuthorizationTypeBearer)) {
		return "", false
	}
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.ContainsAny(raw, " \t") {
		return "", false
	}
	return raw, true
}
