package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/gophblog/internal/flagx"
)

var knownFlags = []string{"-d", "-l", "-k", "-s", "-p", "-w", "-q", "-m", "-e", "-log"}

// parseFlags overlays cfg with command-line flags:
//
//	-d string     PostgreSQL DSN of the backend
//	-l string     path of the local SQLite file
//	-k string     session signing key
//	-s duration   session validity, e.g. 12h
//	-p int        posts per page
//	-w int        max width of comment images in pixels
//	-q int        JPEG quality of comment images
//	-m int        max encoded size of a comment image
//	-e string     only allow registration from this email domain
//	-log string   log level: debug, info, warn, error
//
// Other arguments are ignored. It panics on malformed values.
func parseFlags(cfg *Config, args []string) {
	fs := flag.NewFlagSet("gophblog", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "PostgreSQL DSN of the backend")
	fs.StringVar(&cfg.LocalDBPath, "l", cfg.LocalDBPath, "path of the local SQLite file")
	fs.StringVar(&cfg.SecretKey, "k", cfg.SecretKey, "session signing key")
	fs.DurationVar(&cfg.SessionValidityDuration, "s", cfg.SessionValidityDuration, "session validity")
	fs.IntVar(&cfg.PerPage, "p", cfg.PerPage, "posts per page")
	fs.IntVar(&cfg.CommentImageMaxWidth, "w", cfg.CommentImageMaxWidth, "max width of comment images")
	fs.IntVar(&cfg.CommentImageQuality, "q", cfg.CommentImageQuality, "JPEG quality of comment images")
	fs.IntVar(&cfg.CommentImageMaxChars, "m", cfg.CommentImageMaxChars, "max encoded size of a comment image")
	fs.StringVar(&cfg.AllowedEmailDomain, "e", cfg.AllowedEmailDomain, "allowed email domain")
	fs.StringVar(&cfg.LogLevel, "log", cfg.LogLevel, "log level")

	if err := fs.Parse(flagx.FilterArgs(args, knownFlags)); err != nil {
		panic(err)
	}
}
