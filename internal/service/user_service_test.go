package service

import (
	"context"
	"strings"
	"testing"

	er "github.com/RoyceAzure/lab/phonebook/internal/util/rj_error"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	store := newTestDB(t)
	svc := NewUserService(store)
	ctx := context.Background()

	user, err := svc.Register(ctx, "admin", "admin@example.com", "secret1")
	require.NoError(t, err)
	require.NotZero(t, user.ID)
	require.Equal(t, "admin", user.Username)

	entity, err := store.GetUserByUsername(ctx, "admin")
	require.NoError(t, err)
	require.NotEqual(t, "secret1", entity.PasswordHash)

	got, err := svc.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, "admin@example.com", got.Email)
}

func TestRegisterConflicts(t *testing.T) {
	svc := NewUserService(newTestDB(t))
	ctx := context.Background()

	_, err := svc.Register(ctx, "admin", "admin@example.com", "secret1")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "other", "admin@example.com", "secret1")
	require.True(t, er.IsCode(err, er.ConflictCode))
	require.Contains(t, err.(*er.AnaError).Message, "Email")

	_, err = svc.Register(ctx, "admin", "other@example.com", "secret1")
	require.True(t, er.IsCode(err, er.ConflictCode))
	require.Contains(t, err.(*er.AnaError).Message, "Username")
}

func TestRegisterValidation(t *testing.T) {
	svc := NewUserService(newTestDB(t))
	ctx := context.Background()

	cases := []struct {
		name, username, email, password string
	}{
		{"short username", "ab", "a@example.com", "secret1"},
		{"long username", strings.Repeat("a", 21), "a@example.com", "secret1"},
		{"bad email", "admin", "not-an-email", "secret1"},
		{"long email", "admin", strings.Repeat("a", 25) + "@example.com", "secret1"},
		{"short password", "admin", "a@example.com", "12345"},
		{"long password", "admin", "a@example.com", strings.Repeat("p", 73)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := svc.Register(ctx, c.username, c.email, c.password)
			require.True(t, er.IsCode(err, er.BadRequestCode), err)
		})
	}

	_, err := svc.GetUserByID(ctx, 999)
	require.True(t, er.IsCode(err, er.NotFoundCode))
}
