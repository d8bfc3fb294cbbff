// Package cli is the interactive command-line view of the blog client.
//
// Each command prompts for its input, dispatches an intent through
// store.Actions and renders the resulting store state. Errors and success
// messages left in the store are printed once after every command and then
// dismissed.
//
// Commands:
//
//	register, login, logout, cancel        account and pending registration
//	list [page], mine [page]               paginated post lists
//	show <id>, export <id> <file.html>     a single post with images and comments
//	post, edit <id>, delete <id>           post management
//	comment <post-id>                      add a comment (optionally with an image)
//	editcomment <id>, delcomment <id> [post-id]
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
