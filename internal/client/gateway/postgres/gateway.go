// Package postgres implements gateway.Gateway directly on the PostgreSQL
// database behind the hosted backend.
//
// Table access mirrors what the hosted REST layer offers: filtered selects
// with ordering, ranges and counts, and filtered writes. Authorization that
// the hosted service enforces with row-level security is reproduced here as
// owner predicates bound to the signed-in identity (see schema.go).
//
// Sessions are HS256 JWTs. The current token is kept in memory and mirrored
// to a gateway.SessionStore so a later process can pick it up again.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophblog/internal/client/gateway"
	"github.com/dmitrijs2005/gophblog/internal/client/gateway/postgres/migrations"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// Options configures session signing.
type Options struct {
	SecretKey               []byte
	SessionValidityDuration time.Duration
}

type Gateway struct {
	db       *sql.DB
	sessions gateway.SessionStore
	opts     Options
	now      func() time.Time

	mu      sync.RWMutex
	session *gateway.Session
}

var _ gateway.Gateway = (*Gateway)(nil)

// New wraps an open database. sessions may be nil, in which case sessions
// live only as long as the Gateway.
func New(db *sql.DB, sessions gateway.SessionStore, opts Options) *Gateway {
	if opts.SessionValidityDuration <= 0 {
		opts.SessionValidityDuration = time.Hour
	}
	return &Gateway{db: db, sessions: sessions, opts: opts, now: time.Now}
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations applies the embedded schema migrations.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	return gooseUpContext(ctx, db, ".")
}

// Open connects with the pgx driver, migrates the schema and returns a
// ready Gateway.
func Open(ctx context.Context, dsn string, sessions gateway.SessionStore, opts Options) (*Gateway, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return New(db, sessions, opts), nil
}

func (g *Gateway) Close() error {
	return g.db.Close()
}
