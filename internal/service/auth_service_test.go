package service

import (
	"context"
	"testing"
	"time"

	"github.com/RoyceAzure/lab/phonebook/internal/infra/auth/token"
	er "github.com/RoyceAzure/lab/phonebook/internal/util/rj_error"
	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	store := newTestDB(t)
	maker, err := token.NewJWTMaker("0123456789abcdef0123456789abcdef", "phonebook", "spa")
	require.NoError(t, err)
	users := NewUserService(store)
	auth := NewAuthService(store, maker, 30*time.Minute)
	ctx := context.Background()

	user, err := users.Register(ctx, "admin", "admin@example.com", "secret1")
	require.NoError(t, err)

	res, err := auth.Login(ctx, "admin", "secret1")
	require.NoError(t, err)
	require.NotEmpty(t, res.AccessToken)
	require.Equal(t, user.ID, res.User.ID)
	require.WithinDuration(t, time.Now().Add(30*time.Minute), res.ExpiredAt, 5*time.Second)

	payload, err := maker.VertifyToken(res.AccessToken)
	require.NoError(t, err)
	require.Equal(t, user.ID, payload.UserID)
	require.Equal(t, "admin", payload.UPN)

	_, err = auth.Login(ctx, "admin", "wrong-pass")
	require.True(t, er.IsCode(err, er.UnauthenticatedCode))

	_, err = auth.Login(ctx, "nobody", "secret1")
	require.True(t, er.IsCode(err, er.UnauthenticatedCode))

	_, err = auth.Login(ctx, "", "")
	require.True(t, er.IsCode(err, er.UnauthenticatedCode))
}
