package pipeline

import (
	"context"
	"maps"
	"sync"

	"github.com/dmitrijs2005/gophblog/internal/client/gateway"
	"github.com/dmitrijs2005/gophblog/internal/logging"
)

// call records one gateway invocation.
type call struct {
	Method  string
	Table   string
	Query   gateway.Query
	Rows    []gateway.Row
	Values  gateway.Row
	Filters []gateway.Filter
}

// fakeGateway records every call in order. Unset hooks fall back to
// permissive defaults: inserts echo rows with fresh ids, updates echo the
// values, deletes report one row, selects return nothing.
type fakeGateway struct {
	mu     sync.Mutex
	calls  []call
	nextID int64

	selectFn     func(q gateway.Query) (*gateway.Result, error)
	insertFn     func(table string, rows []gateway.Row) ([]gateway.Row, error)
	updateFn     func(table string, values gateway.Row, filters []gateway.Filter) ([]gateway.Row, error)
	deleteFn     func(table string, filters []gateway.Filter) (int64, error)
	signUpFn     func(email, password string) (*gateway.Identity, error)
	signInFn     func(email, password string) (*gateway.Session, error)
	getSessionFn func() (*gateway.Session, error)
	signOutFn    func() error
}

var _ gateway.Gateway = (*fakeGateway)(nil)

func (f *fakeGateway) record(c call) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, c)
}

func (f *fakeGateway) Calls() []call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]call(nil), f.calls...)
}

// Trace lists calls as "Method table".
func (f *fakeGateway) Trace() []string {
	var out []string
	for _, c := range f.Calls() {
		out = append(out, c.Method+" "+c.Table)
	}
	return out
}

func (f *fakeGateway) Select(_ context.Context, q gateway.Query) (*gateway.Result, error) {
	f.record(call{Method: "Select", Table: q.Table, Query: q, Filters: q.Filters})
	if f.selectFn != nil {
		return f.selectFn(q)
	}
	return &gateway.Result{}, nil
}

func (f *fakeGateway) Insert(_ context.Context, table string, rows ...gateway.Row) ([]gateway.Row, error) {
	copied := make([]gateway.Row, len(rows))
	for i, r := range rows {
		copied[i] = maps.Clone(r)
	}
	f.record(call{Method: "Insert", Table: table, Rows: copied})
	if f.insertFn != nil {
		return f.insertFn(table, copied)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]gateway.Row, len(copied))
	for i, r := range copied {
		row := maps.Clone(r)
		if table != gateway.TableProfiles {
			f.nextID++
			row["id"] = f.nextID
		}
		out[i] = row
	}
	return out, nil
}

func (f *fakeGateway) Update(_ context.Context, table string, values gateway.Row, filters ...gateway.Filter) ([]gateway.Row, error) {
	f.record(call{Method: "Update", Table: table, Values: maps.Clone(values), Filters: filters})
	if f.updateFn != nil {
		return f.updateFn(table, values, filters)
	}
	return []gateway.Row{maps.Clone(values)}, nil
}

func (f *fakeGateway) Delete(_ context.Context, table string, filters ...gateway.Filter) (int64, error) {
	f.record(call{Method: "Delete", Table: table, Filters: filters})
	if f.deleteFn != nil {
		return f.deleteFn(table, filters)
	}
	return 1, nil
}

func (f *fakeGateway) SignUp(_ context.Context, email, password string) (*gateway.Identity, error) {
	f.record(call{Method: "SignUp"})
	if f.signUpFn != nil {
		return f.signUpFn(email, password)
	}
	return &gateway.Identity{ID: "u-1", Email: email}, nil
}

func (f *fakeGateway) SignInWithPassword(_ context.Context, email, password string) (*gateway.Session, error) {
	f.record(call{Method: "SignInWithPassword"})
	if f.signInFn != nil {
		return f.signInFn(email, password)
	}
	return &gateway.Session{User: gateway.Identity{ID: "u-1", Email: email}, Token: "t"}, nil
}

func (f *fakeGateway) GetSession(context.Context) (*gateway.Session, error) {
	f.record(call{Method: "GetSession"})
	if f.getSessionFn != nil {
		return f.getSessionFn()
	}
	return nil, nil
}

func (f *fakeGateway) SignOut(context.Context) error {
	f.record(call{Method: "SignOut"})
	if f.signOutFn != nil {
		return f.signOutFn()
	}
	return nil
}

func (f *fakeGateway) Close() error { return nil }

// filterValue returns the value of the first filter on column.
func filterValue(filters []gateway.Filter, column string) (any, bool) {
	for _, fl := range filters {
		if fl.Column == column {
			return fl.Value, true
		}
	}
	return nil, false
}

func newTestPipeline(gw *fakeGateway) *Pipeline {
	return New(gw, logging.Discard(), Options{})
}
