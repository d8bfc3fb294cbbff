package pipeline

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gophblog/internal/client/gateway"
	"github.com/dmitrijs2005/gophblog/internal/client/models"
	"golang.org/x/sync/errgroup"
)

// hydrate fills images, comments and author details of every blog in
// place. Posts are hydrated concurrently and so are the three reads of one
// post; the first failure cancels the rest.
func (p *Pipeline) hydrate(ctx context.Context, blogs []models.Blog) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.opts.HydrateConcurrency)

	for i := range blogs {
		g.Go(func() error {
			return p.hydrateOne(ctx, &blogs[i])
		})
	}
	return g.Wait()
}

func (p *Pipeline) hydrateOne(ctx context.Context, b *models.Blog) error {
	var (
		images   []models.Image
		comments []models.Comment
		author   *models.User
	)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		res, err := p.gw.Select(ctx, *gateway.From(gateway.TableBlogImages).
			Where(gateway.Eq("blog_id", b.ID)).
			OrderBy("sort_order", true))
		if err != nil {
			return fmt.Errorf("images of blog %d: %w", b.ID, err)
		}
		images, err = gateway.DecodeAll[models.Image](res.Rows)
		return err
	})

	g.Go(func() error {
		res, err := p.gw.Select(ctx, *gateway.From(gateway.ViewCommentsWithAuthor).
			Where(gateway.Eq("blog_id", b.ID)).
			OrderBy("created_at", true))
		if err != nil {
			return fmt.Errorf("comments of blog %d: %w", b.ID, err)
		}
		comments, err = gateway.DecodeAll[models.Comment](res.Rows)
		return err
	})

	g.Go(func() error {
		var err error
		author, err = p.profile(ctx, b.AuthorID)
		if err != nil {
			return fmt.Errorf("author of blog %d: %w", b.ID, err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	b.Images = images
	b.Comments = comments
	if author != nil {
		b.AuthorName = author.Name
		b.AuthorAvatar = author.Image
	}
	return nil
}
