package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	flash()

	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	CancelRegistration(ctx context.Context) error

	List(ctx context.Context, args []string) error
	Mine(ctx context.Context, args []string) error
	Show(ctx context.Context, args []string) error
	Export(ctx context.Context, args []string) error
	Post(ctx context.Context) error
	Edit(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error

	Comment(ctx context.Context, args []string) error
	EditComment(ctx context.Context, args []string) error
	DeleteComment(ctx context.Context, args []string) error
}

const (
	guestHelp = "Available commands: register, login, cancel, list [page], show <id>, export <id> <file>, exit"
	userHelp  = "Available commands: list [page], mine [page], show <id>, export <id> <file>, post, edit <id>, " +
		"delete <id>, comment <post-id>, editcomment <id>, delcomment <id> [post-id], logout, exit"
)

var needsLogin = map[string]bool{
	"logout": true, "mine": true, "post": true, "edit": true, "delete": true,
	"comment": true, "editcomment": true, "delcomment": true,
}

// runREPL reads a line from reader, parses the first token as the command,
// and dispatches to methods on a. The loop exits on EOF, ctx cancellation,
// or when the user types "exit" or "quit".
//
// Errors returned by command handlers are input problems (bad id, unreadable
// file) and are printed; pipeline failures reach the user through a.flash.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, w io.Writer) {
	for {
		if ctx.Err() != nil {
			return
		}
		fmt.Fprintf(w, "blog %s> ", statusFn())

		line, readErr := reader.ReadString('\n')
		parts := strings.Fields(line)
		if len(parts) == 0 {
			if readErr != nil {
				return
			}
			continue
		}
		cmd, args := parts[0], parts[1:]

		if needsLogin[cmd] && !a.isLoggedIn() {
			fmt.Fprintln(w, "Please log in first")
			continue
		}

		var err error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(w, userHelp)
			} else {
				fmt.Fprintln(w, guestHelp)
			}

		case "register":
			err = a.Register(ctx)
		case "login":
			err = a.Login(ctx)
		case "logout":
			err = a.Logout(ctx)
		case "cancel":
			err = a.CancelRegistration(ctx)

		case "l", "list":
			err = a.List(ctx, args)
		case "mine":
			err = a.Mine(ctx, args)
		case "show":
			err = a.Show(ctx, args)
		case "export":
			err = a.Export(ctx, args)
		case "post":
			err = a.Post(ctx)
		case "edit":
			err = a.Edit(ctx, args)
		case "delete":
			err = a.Delete(ctx, args)

		case "comment":
			err = a.Comment(ctx, args)
		case "editcomment":
			err = a.EditComment(ctx, args)
		case "delcomment":
			err = a.DeleteComment(ctx, args)

		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return

		default:
			fmt.Fprintln(w, "Unknown command:", cmd)
		}

		if err != nil {
			fmt.Fprintln(w, "Error:", err)
		}
		a.flash()

		if readErr != nil {
			return
		}
	}
}
