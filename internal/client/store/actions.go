package store

import (
	"context"

	"github.com/dmitrijs2005/gophblog/internal/client/models"
	"github.com/dmitrijs2005/gophblog/internal/client/pipeline"
	"github.com/dmitrijs2005/gophblog/internal/logging"
)

// Backend is the set of pipeline operations the store drives.
type Backend interface {
	Register(ctx context.Context, in pipeline.Registration) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, error)
	Logout(ctx context.Context) error
	RestoreSession(ctx context.Context) (*models.User, error)

	AddBlog(ctx context.Context, in models.NewBlog) (*models.Blog, error)
	UpdateBlog(ctx context.Context, in models.BlogEdit) (*models.BlogUpdate, error)
	DeleteBlog(ctx context.Context, id int64, userID string) (int64, error)
	FetchAllBlogs(ctx context.Context, page, perPage int) (*models.BlogPage, error)
	FetchBlogsByAuthor(ctx context.Context, authorID string, page, perPage int) (*models.BlogPage, error)
	FetchSingleBlog(ctx context.Context, id int64) (*models.Blog, error)

	AddComment(ctx context.Context, in models.NewComment) (*models.Comment, error)
	EditComment(ctx context.Context, in models.CommentEdit) (*models.Comment, error)
	DeleteComment(ctx context.Context, commentID int64, userID string, blogID int64) (*models.CommentRef, error)
}

// Persistence is the durable local storage behind the pending
// registration actions.
type Persistence interface {
	StashPendingRegistration(ctx context.Context, p models.PendingRegistration) error
	PendingRegistration(ctx context.Context) (*models.PendingRegistration, error)
	ClearPendingRegistration(ctx context.Context) error
}

var _ Backend = (*pipeline.Pipeline)(nil)

// Actions binds the pipeline and local storage to a Store.
type Actions struct {
	store   *Store
	backend Backend
	persist Persistence
	log     logging.Logger
}

func NewActions(s *Store, b Backend, p Persistence, log logging.Logger) *Actions {
	return &Actions{store: s, backend: b, persist: p, log: log}
}

func (a *Actions) Store() *Store {
	return a.store
}

// Register stashes name and email, registers, and forgets the stash on
// success. A failed stash is logged and does not block registration.
func (a *Actions) Register(ctx context.Context, in pipeline.Registration) Outcome[*models.User] {
	if err := a.StashPendingRegistration(ctx, in.Name, in.Email); err != nil {
		a.log.Warn(ctx, "stash pending registration", "err", err)
	}

	out := Run(ctx, a.store, TypeRegister, func(ctx context.Context) (*models.User, error) {
		return a.backend.Register(ctx, in)
	})
	if out.Fulfilled() {
		if err := a.ClearPendingRegistration(ctx); err != nil {
			a.log.Warn(ctx, "clear pending registration", "err", err)
		}
	}
	return out
}

func (a *Actions) Login(ctx context.Context, email, password string) Outcome[*models.User] {
	return Run(ctx, a.store, TypeLogin, func(ctx context.Context) (*models.User, error) {
		return a.backend.Login(ctx, email, password)
	})
}

// Logout clears the user first and then signs out remotely. A remote
// failure is reported but the user stays cleared.
func (a *Actions) Logout(ctx context.Context) Outcome[struct{}] {
	a.store.Dispatch(Action{Type: TypeLogout})
	return Run(ctx, a.store, TypeSignOut, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, a.backend.Logout(ctx)
	})
}

// RestoreSession sets the user from a persisted session if there is one.
// Failures are only logged. Restoring is false afterwards in every case.
func (a *Actions) RestoreSession(ctx context.Context) {
	defer a.store.Dispatch(Action{Type: TypeSetRestoring, Payload: false})

	u, err := a.backend.RestoreSession(ctx)
	if err != nil {
		a.log.Error(ctx, "failed to restore user", "err", err)
		return
	}
	if u != nil {
		a.SetUser(u)
	}

	if a.persist == nil {
		return
	}
	p, err := a.persist.PendingRegistration(ctx)
	if err != nil {
		a.log.Error(ctx, "failed to load pending registration", "err", err)
		return
	}
	if p != nil {
		a.store.Dispatch(Action{Type: TypeSetPendingRegistration, Payload: p})
	}
}

func (a *Actions) SetUser(u *models.User) {
	a.store.Dispatch(Action{Type: TypeSetUser, Payload: u})
}

func (a *Actions) SetRestoring(v bool) {
	a.store.Dispatch(Action{Type: TypeSetRestoring, Payload: v})
}

func (a *Actions) ClearAuthError() {
	a.store.Dispatch(Action{Type: TypeAuthClearError})
}

func (a *Actions) ClearAuthSuccess() {
	a.store.Dispatch(Action{Type: TypeAuthClearSuccess})
}

// StashPendingRegistration persists the pair before updating state.
func (a *Actions) StashPendingRegistration(ctx context.Context, name, email string) error {
	p := &models.PendingRegistration{Name: name, Email: email}
	if a.persist != nil {
		if err := a.persist.StashPendingRegistration(ctx, *p); err != nil {
			return err
		}
	}
	a.store.Dispatch(Action{Type: TypeSetPendingRegistration, Payload: p})
	return nil
}

func (a *Actions) ClearPendingRegistration(ctx context.Context) error {
	if a.persist != nil {
		if err := a.persist.ClearPendingRegistration(ctx); err != nil {
			return err
		}
	}
	a.store.Dispatch(Action{Type: TypeClearPendingRegistration})
	return nil
}

func (a *Actions) AddBlog(ctx context.Context, in models.NewBlog) Outcome[*models.Blog] {
	return Run(ctx, a.store, TypeAddBlog, func(ctx context.Context) (*models.Blog, error) {
		return a.backend.AddBlog(ctx, in)
	})
}

func (a *Actions) UpdateBlog(ctx context.Context, in models.BlogEdit) Outcome[*models.BlogUpdate] {
	return Run(ctx, a.store, TypeUpdateBlog, func(ctx context.Context) (*models.BlogUpdate, error) {
		return a.backend.UpdateBlog(ctx, in)
	})
}

func (a *Actions) DeleteBlog(ctx context.Context, id int64, userID string) Outcome[int64] {
	return Run(ctx, a.store, TypeDeleteBlog, func(ctx context.Context) (int64, error) {
		return a.backend.DeleteBlog(ctx, id, userID)
	})
}

func (a *Actions) FetchAllBlogs(ctx context.Context, page, perPage int) Outcome[*models.BlogPage] {
	return Run(ctx, a.store, TypeFetchAllBlogs, func(ctx context.Context) (*models.BlogPage, error) {
		return a.backend.FetchAllBlogs(ctx, page, perPage)
	})
}

func (a *Actions) FetchBlogsByAuthor(ctx context.Context, authorID string, page, perPage int) Outcome[*models.BlogPage] {
	return Run(ctx, a.store, TypeFetchByAuthor, func(ctx context.Context) (*models.BlogPage, error) {
		return a.backend.FetchBlogsByAuthor(ctx, authorID, page, perPage)
	})
}

func (a *Actions) FetchSingleBlog(ctx context.Context, id int64) Outcome[*models.Blog] {
	return Run(ctx, a.store, TypeFetchSingle, func(ctx context.Context) (*models.Blog, error) {
		return a.backend.FetchSingleBlog(ctx, id)
	})
}

func (a *Actions) AddComment(ctx context.Context, in models.NewComment) Outcome[*models.Comment] {
	return Run(ctx, a.store, TypeAddComment, func(ctx context.Context) (*models.Comment, error) {
		return a.backend.AddComment(ctx, in)
	})
}

func (a *Actions) EditComment(ctx context.Context, in models.CommentEdit) Outcome[*models.Comment] {
	return Run(ctx, a.store, TypeEditComment, func(ctx context.Context) (*models.Comment, error) {
		return a.backend.EditComment(ctx, in)
	})
}

func (a *Actions) DeleteComment(ctx context.Context, commentID int64, userID string, blogID int64) Outcome[*models.CommentRef] {
	return Run(ctx, a.store, TypeDeleteComment, func(ctx context.Context) (*models.CommentRef, error) {
		return a.backend.DeleteComment(ctx, commentID, userID, blogID)
	})
}

func (a *Actions) ClearBlogError() {
	a.store.Dispatch(Action{Type: TypeBlogClearError})
}

func (a *Actions) ClearBlogSuccess() {
	a.store.Dispatch(Action{Type: TypeBlogClearSuccess})
}

func (a *Actions) ClearSingleBlog() {
	a.store.Dispatch(Action{Type: TypeClearSingleBlog})
}

func (a *Actions) ResetBlogState() {
	a.store.Dispatch(Action{Type: TypeResetBlogState})
}
