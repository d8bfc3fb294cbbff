// Package localstate is the client's durable local storage: a SQLite file
// holding the persisted session token and the pending registration pair
// that has to survive a restart between sign-up and email confirmation.
package localstate

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/gophblog/internal/client/gateway"
	"github.com/dmitrijs2005/gophblog/internal/client/migrations"
	"github.com/dmitrijs2005/gophblog/internal/client/models"
	"github.com/dmitrijs2005/gophblog/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/gophblog/internal/dbx"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

const (
	keySessionToken = "session.token"

	pendingPrefix   = "pending_registration."
	keyPendingName  = pendingPrefix + "name"
	keyPendingEmail = pendingPrefix + "email"
)

type State struct {
	db   *sql.DB
	meta metadata.Repository
}

var _ gateway.SessionStore = (*State)(nil)

func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	return goose.UpContext(ctx, db, ".")
}

// Open opens (creating if needed) the SQLite file at dsn and migrates it.
func Open(ctx context.Context, dsn string) (*State, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// one connection keeps ":memory:" databases coherent
	db.SetMaxOpenConns(1)

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("local migrations: %w", err)
	}

	return &State{db: db, meta: metadata.NewSQLiteRepository(db)}, nil
}

func (s *State) Close() error {
	return s.db.Close()
}

func (s *State) LoadSession(ctx context.Context) (string, error) {
	v, err := s.meta.Get(ctx, keySessionToken)
	if err != nil {
		return "", err
	}
	return string(v), nil
}

func (s *State) SaveSession(ctx context.Context, token string) error {
	return s.meta.Set(ctx, keySessionToken, []byte(token))
}

func (s *State) ClearSession(ctx context.Context) error {
	return s.meta.Delete(ctx, keySessionToken)
}

// StashPendingRegistration stores name and email together or not at all.
func (s *State) StashPendingRegistration(ctx context.Context, p models.PendingRegistration) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, keyPendingName, []byte(p.Name)); err != nil {
			return err
		}
		return repo.Set(ctx, keyPendingEmail, []byte(p.Email))
	})
}

// PendingRegistration returns nil when nothing is stashed.
func (s *State) PendingRegistration(ctx context.Context) (*models.PendingRegistration, error) {
	pairs, err := s.meta.List(ctx, pendingPrefix)
	if err != nil {
		return nil, err
	}
	if len(pairs) == 0 {
		return nil, nil
	}
	return &models.PendingRegistration{
		Name:  string(pairs[keyPendingName]),
		Email: string(pairs[keyPendingEmail]),
	}, nil
}

func (s *State) ClearPendingRegistration(ctx context.Context) error {
	return s.meta.Delete(ctx, keyPendingName, keyPendingEmail)
}
