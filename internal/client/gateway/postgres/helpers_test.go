package postgres

import (
	"context"
	"database/sql/driver"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/gophblog/internal/client/gateway"
	"github.com/stretchr/testify/require"
)

type memSessions struct {
	token    string
	loadErr  error
	saveErr  error
	clearErr error
	cleared  int
}

func (m *memSessions) LoadSession(context.Context) (string, error) { return m.token, m.loadErr }

func (m *memSessions) SaveSession(_ context.Context, token string) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.token = token
	return nil
}

func (m *memSessions) ClearSession(context.Context) error {
	if m.clearErr != nil {
		return m.clearErr
	}
	m.cleared++
	m.token = ""
	return nil
}

// passthrough lets slice arguments reach the mock the way the pgx driver
// accepts them.
type passthrough struct{}

func (passthrough) ConvertValue(v any) (driver.Value, error) { return v, nil }

var testSecret = []byte("test-secret")

func newGatewayWithMock(t *testing.T) (*Gateway, sqlmock.Sqlmock, *memSessions) {
	t.Helper()
	db, mock, err := sqlmock.New(
		sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual),
		sqlmock.ValueConverterOption(passthrough{}),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	store := &memSessions{}
	g := New(db, store, Options{SecretKey: testSecret, SessionValidityDuration: time.Hour})
	return g, mock, store
}

func signIn(t *testing.T, g *Gateway, userID string) {
	t.Helper()
	_, err := g.startSession(context.Background(), gateway.Identity{ID: userID, Email: userID + "@example.com"})
	require.NoError(t, err)
}
