package pipeline

import (
	"context"

	"github.com/dmitrijs2005/gophblog/internal/client/gateway"
	"github.com/dmitrijs2005/gophblog/internal/logging"
)

// Options tunes validation and image handling.
type Options struct {
	// PerPage is used when a fetch asks for a non-positive page size.
	PerPage int

	CommentImageMaxWidth int
	CommentImageQuality  int
	// CommentImageMaxChars caps the encoded comment image payload.
	CommentImageMaxChars int

	// AllowedEmailDomain, when set, restricts registration to one domain.
	AllowedEmailDomain string

	// HydrateConcurrency bounds how many posts are hydrated at once.
	HydrateConcurrency int
}

func DefaultOptions() Options {
	return Options{
		PerPage:              9,
		CommentImageMaxWidth: 800,
		CommentImageQuality:  70,
		CommentImageMaxChars: 900_000,
		HydrateConcurrency:   8,
	}
}

type Pipeline struct {
	gw   gateway.Gateway
	log  logging.Logger
	opts Options
}

// New fills zero options from DefaultOptions.
func New(gw gateway.Gateway, log logging.Logger, opts Options) *Pipeline {
	def := DefaultOptions()
	if opts.PerPage <= 0 {
		opts.PerPage = def.PerPage
	}
	if opts.CommentImageMaxWidth <= 0 {
		opts.CommentImageMaxWidth = def.CommentImageMaxWidth
	}
	if opts.CommentImageQuality <= 0 || opts.CommentImageQuality > 100 {
		opts.CommentImageQuality = def.CommentImageQuality
	}
	if opts.CommentImageMaxChars <= 0 {
		opts.CommentImageMaxChars = def.CommentImageMaxChars
	}
	if opts.HydrateConcurrency <= 0 {
		opts.HydrateConcurrency = def.HydrateConcurrency
	}
	return &Pipeline{gw: gw, log: log, opts: opts}
}

func (p *Pipeline) Options() Options {
	return p.opts
}

// reject logs r and returns it as an error.
func (p *Pipeline) reject(ctx context.Context, op string, r *Rejection) error {
	args := []any{"op", op, "kind", string(r.Kind), "reason", r.Reason}
	if r.Err != nil {
		args = append(args, "err", r.Err)
	}
	p.log.Warn(ctx, "operation rejected", args...)
	return r
}
