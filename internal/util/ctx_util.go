package util

import (
	"context"

	"github.com/RoyceAzure/lab/phonebook/internal/constants"
	"github.com/RoyceAzure/lab/phonebook/internal/infra/auth/token"
)

func GetTokenPayloadFromContext(ctx context.Context) *token.Payload {
	var tokenPayload *token.Payload

	if v := ctx.Value(constants.AuthorizationPayloadKey); v != nil {
		tokenPayload, _ = v.(*token.Payload)
	}

	return tokenPayload
}

func SetTokenPayloadToContext(ctx context.Context, payload *token.Payload) context.Context {
	return context.WithValue(ctx, constants.AuthorizationPayloadKey, payload)
}

func GetRequestIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(constants.RequestIDKey).(string); ok {
		return v
	}
	return "unknown"
}
