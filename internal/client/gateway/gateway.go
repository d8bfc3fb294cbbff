package gateway

import (
	"context"
	"time"
)

// Table and view names of the blog schema.
const (
	TableProfiles          = "profiles"
	TableBlogs             = "blogs"
	TableBlogImages        = "blog_images"
	TableComments          = "comments"
	ViewCommentsWithAuthor = "comments_with_author"
)

// Tables is the table-style CRUD half of the backend.
type Tables interface {
	// Select reads rows. Result.Count is filled only when q.Count is set.
	Select(ctx context.Context, q Query) (*Result, error)

	// Insert writes rows and returns them as stored (ids, defaults).
	Insert(ctx context.Context, table string, rows ...Row) ([]Row, error)

	// Update sets values on every row matching filters and returns the rows
	// that were actually changed. Rows hidden by authorization are not
	// reported as errors; they simply do not come back.
	Update(ctx context.Context, table string, values Row, filters ...Filter) ([]Row, error)

	// Delete removes rows matching filters and reports how many went away.
	Delete(ctx context.Context, table string, filters ...Filter) (int64, error)
}

// Identity is an authenticated principal.
type Identity struct {
	ID        string
	Email     string
	CreatedAt time.Time
}

// Session is a signed-in identity plus its bearer token.
type Session struct {
	User      Identity
	Token     string
	ExpiresAt time.Time
}

// Auth is the authentication half of the backend.
type Auth interface {
	// SignUp creates an identity and signs it in.
	SignUp(ctx context.Context, email, password string) (*Identity, error)

	SignInWithPassword(ctx context.Context, email, password string) (*Session, error)

	// GetSession returns the current session, or nil, nil when there is none.
	GetSession(ctx context.Context) (*Session, error)

	SignOut(ctx context.Context) error
}

// Gateway is the whole backend as seen by the pipeline.
type Gateway interface {
	Tables
	Auth
	Close() error
}

// SessionStore persists the session token between process runs.
type SessionStore interface {
	LoadSession(ctx context.Context) (string, error)
	SaveSession(ctx context.Context, token string) error
	ClearSession(ctx context.Context) error
}
