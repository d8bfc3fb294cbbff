package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/dmitrijs2005/gophblog/internal/client/models"
	"github.com/dmitrijs2005/gophblog/internal/client/store"
	"github.com/dmitrijs2005/gophblog/internal/logging"
)

// App is the REPL front end over store.Actions.
type App struct {
	actions *store.Actions
	reader  *bufio.Reader
	out     io.Writer
	log     logging.Logger
}

func NewApp(actions *store.Actions, in io.Reader, out io.Writer, log logging.Logger) *App {
	return &App{actions: actions, reader: bufio.NewReader(in), out: out, log: log}
}

// Run blocks in the REPL until EOF, exit/quit or ctx cancellation.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to GophBlog (type 'help' for commands)")
	a.flash()
	runREPL(ctx, a, a.status, a.reader, a.out)
}

func (a *App) user() *models.User {
	return a.actions.Store().Auth().User
}

func (a *App) isLoggedIn() bool {
	return a.user() != nil
}

func (a *App) status() string {
	auth := a.actions.Store().Auth()

	s := "guest"
	if auth.User != nil {
		s = auth.User.Name
		if s == "" {
			s = auth.User.Email
		}
	}
	if p := auth.PendingRegistration; p != nil && auth.User == nil {
		s += " | pending " + p.Email
	}
	return "(" + s + ")"
}

// flash prints and dismisses whatever error or success message the last
// dispatch left in the store.
func (a *App) flash() {
	st := a.actions.Store()

	auth := st.Auth()
	if auth.Error != "" {
		fmt.Fprintln(a.out, "Error:", auth.Error)
		a.actions.ClearAuthError()
	}
	if auth.Success != "" {
		fmt.Fprintln(a.out, auth.Success)
		a.actions.ClearAuthSuccess()
	}

	blog := st.Blog()
	if blog.Error != "" {
		fmt.Fprintln(a.out, "Error:", blog.Error)
		a.actions.ClearBlogError()
	}
	if blog.Success != "" {
		fmt.Fprintln(a.out, blog.Success)
		a.actions.ClearBlogSuccess()
	}
}

func idArg(args []string, i int, usage string) (int64, error) {
	if len(args) <= i {
		return 0, fmt.Errorf("usage: %s", usage)
	}
	id, err := strconv.ParseInt(args[i], 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", args[i])
	}
	return id, nil
}

func pageArg(args []string) (int, error) {
	if len(args) == 0 {
		return 1, nil
	}
	p, err := strconv.Atoi(args[0])
	if err != nil || p < 1 {
		return 0, fmt.Errorf("invalid page %q", args[0])
	}
	return p, nil
}
