package store

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/gophblog/internal/client/pipeline"
	"github.com/dmitrijs2005/gophblog/internal/logging"
)

// Store owns both slices. It is safe for concurrent use; reducers run under
// the lock, so every action sees the result of the previous one.
type Store struct {
	mu   sync.RWMutex
	auth AuthState
	blog BlogState
	log  logging.Logger
}

func New(log logging.Logger) *Store {
	return &Store{auth: initialAuth(), blog: initialBlog(), log: log}
}

func (s *Store) Dispatch(a Action) {
	s.mu.Lock()
	s.auth = ReduceAuth(s.auth, a)
	s.blog = ReduceBlog(s.blog, a)
	s.mu.Unlock()
}

func (s *Store) Auth() AuthState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.auth
}

func (s *Store) Blog() BlogState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.blog
}

// Outcome is the terminal result of Run. Rejection is nil when fulfilled.
type Outcome[T any] struct {
	Value     T
	Rejection *pipeline.Rejection
}

func (o Outcome[T]) Fulfilled() bool {
	return o.Rejection == nil
}

// Reason is the rejection text, or "" when fulfilled.
func (o Outcome[T]) Reason() string {
	if o.Rejection == nil {
		return ""
	}
	return o.Rejection.Reason
}

// Run dispatches typ as pending, runs fn, and dispatches the fulfilled or
// rejected action. A panic in fn becomes a rejection.
func Run[T any](ctx context.Context, s *Store, typ string, fn func(ctx context.Context) (T, error)) (out Outcome[T]) {
	s.Dispatch(pending(typ))

	defer func() {
		if v := recover(); v != nil {
			s.log.Error(ctx, "operation panicked", "op", typ, "panic", v)
			var zero T
			out = Outcome[T]{Value: zero, Rejection: pipeline.Recovered(v)}
			s.Dispatch(rejected(typ, out.Rejection.Reason))
		}
	}()

	v, err := fn(ctx)
	if err != nil {
		r := pipeline.AsRejection(err)
		s.Dispatch(rejected(typ, r.Reason))
		return Outcome[T]{Rejection: r}
	}

	s.Dispatch(fulfilled(typ, v))
	return Outcome[T]{Value: v}
}
