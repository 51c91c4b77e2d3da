package service

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/RoyceAzure/lab/phonebook/internal/infra/repository/db"
	dbmodel "github.com/RoyceAzure/lab/phonebook/internal/infra/repository/db/model"
	"github.com/RoyceAzure/lab/phonebook/internal/infra/storage"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *db.UnifiedDBImpl {
	t.Helper()
	conn, err := db.GetSqliteConn(filepath.Join(t.TempDir(), "service_test.db"))
	require.NoError(t, err)
	store := db.NewUnifiedDB(conn)
	require.NoError(t, store.InitMigrate())
	t.Cleanup(func() { store.Close() })
	return store
}

func newTestPhotoStore(t *testing.T) *storage.LocalStore {
	t.Helper()
	s, err := storage.NewLocalStore(filepath.Join(t.TempDir(), "Uploads"))
	require.NoError(t, err)
	return s
}

func createTestUser(t *testing.T, store db.UnifiedDB, username string) *dbmodel.User {
	t.Helper()
	user, err := store.CreateUser(context.Background(), &dbmodel.User{
		Username:     username,
		Email:        fmt.Sprintf("%s@example.com", username),
		PasswordHash: "hash",
		CreatedAt:    time.Now().UTC(),
	})
	require.NoError(t, err)
	return user
}

func strPtr(s string) *string {
	return &s
}
