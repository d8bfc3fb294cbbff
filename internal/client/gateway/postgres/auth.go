package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gophblog/internal/client/gateway"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"
)

const uniqueViolation = "23505"

const (
	insertIdentitySQL = `INSERT INTO auth_identities (id, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING created_at`

	selectIdentitySQL = `SELECT id, email, password_hash, created_at FROM auth_identities
		WHERE email = $1`
)

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SignUp stores a new identity with a bcrypt password hash and signs it in.
func (g *Gateway) SignUp(ctx context.Context, email, password string) (*gateway.Identity, error) {
	if email == "" || password == "" {
		return nil, errors.New("email and password are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	ident := &gateway.Identity{ID: uuid.NewString(), Email: normalizeEmail(email)}

	err = g.db.QueryRowContext(ctx, insertIdentitySQL, ident.ID, ident.Email, string(hash)).Scan(&ident.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, gateway.ErrUserExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	if _, err := g.startSession(ctx, *ident); err != nil {
		return nil, err
	}
	return ident, nil
}

// SignInWithPassword checks the password against the stored hash. Unknown
// emails and wrong passwords fail the same way.
func (g *Gateway) SignInWithPassword(ctx context.Context, email, password string) (*gateway.Session, error) {
	var (
		ident gateway.Identity
		hash  string
	)
	err := g.db.QueryRowContext(ctx, selectIdentitySQL, normalizeEmail(email)).Scan(&ident.ID, &ident.Email, &hash, &ident.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, gateway.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return nil, gateway.ErrInvalidCredentials
	}

	return g.startSession(ctx, ident)
}

// GetSession returns the in-memory session, falling back to the persisted
// token. An expired or unreadable token is discarded and reported as no
// session.
func (g *Gateway) GetSession(ctx context.Context) (*gateway.Session, error) {
	g.mu.RLock()
	current := g.session
	g.mu.RUnlock()

	if current != nil && current.ExpiresAt.After(g.now()) {
		s := *current
		return &s, nil
	}

	if g.sessions == nil {
		g.dropSession()
		return nil, nil
	}

	token, err := g.sessions.LoadSession(ctx)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if token == "" {
		g.dropSession()
		return nil, nil
	}

	s, err := ParseToken(token, g.opts.SecretKey)
	if err != nil {
		g.dropSession()
		if clearErr := g.sessions.ClearSession(ctx); clearErr != nil {
			return nil, fmt.Errorf("clear session: %w", clearErr)
		}
		return nil, nil
	}

	g.mu.Lock()
	g.session = s
	g.mu.Unlock()

	out := *s
	return &out, nil
}

// SignOut forgets the session locally and in the session store.
func (g *Gateway) SignOut(ctx context.Context) error {
	g.dropSession()
	if g.sessions == nil {
		return nil
	}
	if err := g.sessions.ClearSession(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (g *Gateway) startSession(ctx context.Context, ident gateway.Identity) (*gateway.Session, error) {
	token, expires, err := GenerateToken(ident, g.opts.SecretKey, g.opts.SessionValidityDuration, g.now())
	if err != nil {
		return nil, fmt.Errorf("sign session: %w", err)
	}

	s := &gateway.Session{User: ident, Token: token, ExpiresAt: expires}

	g.mu.Lock()
	g.session = s
	g.mu.Unlock()

	if g.sessions != nil {
		if err := g.sessions.SaveSession(ctx, token); err != nil {
			return nil, fmt.Errorf("save session: %w", err)
		}
	}

	out := *s
	return &out, nil
}

func (g *Gateway) dropSession() {
	g.mu.Lock()
	g.session = nil
	g.mu.Unlock()
}

func (g *Gateway) currentUserID(ctx context.Context) (string, error) {
	s, err := g.GetSession(ctx)
	if err != nil {
		return "", err
	}
	if s == nil {
		return "", gateway.ErrUnauthorized
	}
	return s.User.ID, nil
}
