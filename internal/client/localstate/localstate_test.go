package localstate

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/gophblog/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) *State {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "local.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()
	var n int
	err := db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?`, name).Scan(&n)
	require.NoError(t, err)
	return n > 0
}

func TestOpen_MigratesSchema(t *testing.T) {
	s := openTemp(t)

	assert.True(t, tableExists(t, s.db, "goose_db_version"))
	assert.True(t, tableExists(t, s.db, "metadata"))
}

func TestRunMigrations_IsIdempotent(t *testing.T) {
	s := openTemp(t)

	require.NoError(t, RunMigrations(context.Background(), s.db))
	assert.True(t, tableExists(t, s.db, "metadata"))
}

func TestSession_SaveLoadClear(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()

	tok, err := s.LoadSession(ctx)
	require.NoError(t, err)
	assert.Empty(t, tok)

	require.NoError(t, s.SaveSession(ctx, "jwt-1"))
	require.NoError(t, s.SaveSession(ctx, "jwt-2"))

	tok, err = s.LoadSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, "jwt-2", tok)

	require.NoError(t, s.ClearSession(ctx))
	require.NoError(t, s.ClearSession(ctx))

	tok, err = s.LoadSession(ctx)
	require.NoError(t, err)
	assert.Empty(t, tok)
}

func TestSession_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "local.db")

	s, err := Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, s.SaveSession(ctx, "persisted"))
	require.NoError(t, s.Close())

	s, err = Open(ctx, path)
	require.NoError(t, err)
	defer s.Close()

	tok, err := s.LoadSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, "persisted", tok)
}

func TestPendingRegistration_Lifecycle(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()

	p, err := s.PendingRegistration(ctx)
	require.NoError(t, err)
	assert.Nil(t, p)

	want := models.PendingRegistration{Name: "Ann", Email: "ann@example.com"}
	require.NoError(t, s.StashPendingRegistration(ctx, want))

	p, err = s.PendingRegistration(ctx)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, want, *p)

	require.NoError(t, s.SaveSession(ctx, "tok"))
	require.NoError(t, s.ClearPendingRegistration(ctx))
	require.NoError(t, s.ClearPendingRegistration(ctx))

	p, err = s.PendingRegistration(ctx)
	require.NoError(t, err)
	assert.Nil(t, p)

	tok, err := s.LoadSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok", tok, "clearing the registration leaves the session alone")
}

func TestClosed_ReturnsErrors(t *testing.T) {
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "local.db"))
	require.NoError(t, err)
	require.NoError(t, s.Close())

	ctx := context.Background()
	require.Error(t, s.StashPendingRegistration(ctx, models.PendingRegistration{Name: "x"}))
	_, err = s.PendingRegistration(ctx)
	require.Error(t, err)
	_, err = s.LoadSession(ctx)
	require.Error(t, err)
}
