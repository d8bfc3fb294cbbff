package pipeline

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gophblog/internal/client/gateway"
	"github.com/dmitrijs2005/gophblog/internal/client/imaging"
	"github.com/dmitrijs2005/gophblog/internal/client/models"
)

const (
	msgBlogNotFound     = "Blog not found"
	msgBlogUpdateDenied = "You can only edit your own posts"
	msgBlogDeleteDenied = "You can only delete your own posts"
)

// encodeImages turns pending uploads into blog_images rows numbered from
// first. The caller sets blog_id once it is known.
func encodeImages(files []models.ImageFile, first int) ([]gateway.Row, error) {
	rows := make([]gateway.Row, 0, len(files))
	for i, f := range files {
		payload, err := imaging.EncodeDataURL(f.Content)
		if err != nil {
			return nil, fmt.Errorf("image %q: %w", f.Name, err)
		}
		rows = append(rows, gateway.Row{
			"image_path": payload,
			"alt_text":   f.AltText,
			"sort_order": first + i,
		})
	}
	return rows, nil
}

// AddBlog inserts the post and then its images with sort orders 0..N-1.
// If the image insert fails the post stays without images.
func (p *Pipeline) AddBlog(ctx context.Context, in models.NewBlog) (*models.Blog, error) {
	const op = "blog/add"

	if blank(in.Title) || blank(in.Content) {
		return nil, p.reject(ctx, op, invalid(msgFillAllFields))
	}
	imgRows, err := encodeImages(in.Images, 0)
	if err != nil {
		return nil, p.reject(ctx, op, invalid(err.Error()))
	}

	rows, err := p.gw.Insert(ctx, gateway.TableBlogs, gateway.Row{
		"title":     in.Title,
		"content":   in.Content,
		"author_id": in.AuthorID,
	})
	if err != nil {
		return nil, p.reject(ctx, op, failed(err))
	}

	var blog models.Blog
	if err := decodeSingle(rows, &blog); err != nil {
		return nil, p.reject(ctx, op, partial(err))
	}
	blog.Images = []models.Image{}
	blog.Comments = []models.Comment{}

	if len(imgRows) > 0 {
		for _, r := range imgRows {
			r["blog_id"] = blog.ID
		}
		inserted, err := p.gw.Insert(ctx, gateway.TableBlogImages, imgRows...)
		if err != nil {
			return nil, p.reject(ctx, op, partial(err))
		}
		if blog.Images, err = gateway.DecodeAll[models.Image](inserted); err != nil {
			return nil, p.reject(ctx, op, partial(err))
		}
	}

	p.log.Debug(ctx, "blog added", "blog_id", blog.ID, "images", len(blog.Images))
	return &blog, nil
}

// UpdateBlog rewrites title and content, removes images by id, then appends
// new images after the highest remaining sort order. Each step runs only if
// the previous one succeeded; earlier steps are not undone.
func (p *Pipeline) UpdateBlog(ctx context.Context, in models.BlogEdit) (*models.BlogUpdate, error) {
	const op = "blog/update"

	if blank(in.Title) || blank(in.Content) {
		return nil, p.reject(ctx, op, invalid(msgFillAllFields))
	}
	imgRows, err := encodeImages(in.NewImages, 0)
	if err != nil {
		return nil, p.reject(ctx, op, invalid(err.Error()))
	}

	updated, err := p.gw.Update(ctx, gateway.TableBlogs,
		gateway.Row{"title": in.Title, "content": in.Content},
		gateway.Eq("id", in.ID))
	if err != nil {
		return nil, p.reject(ctx, op, failed(err))
	}
	if len(updated) == 0 {
		blog, r := p.lookupBlog(ctx, in.ID)
		switch {
		case r != nil:
		case blog == nil:
			r = notFound(msgBlogNotFound)
		default:
			r = denied(msgBlogUpdateDenied, gateway.ErrUnauthorized)
		}
		return nil, p.reject(ctx, op, r)
	}

	out := &models.BlogUpdate{
		ID:              in.ID,
		Title:           in.Title,
		Content:         in.Content,
		AddedImages:     []models.Image{},
		RemovedImageIDs: []int64{},
	}

	if len(in.RemovedImageIDs) > 0 {
		if _, err := p.gw.Delete(ctx, gateway.TableBlogImages,
			gateway.Eq("blog_id", in.ID),
			gateway.In("id", in.RemovedImageIDs)); err != nil {
			return nil, p.reject(ctx, op, partial(err))
		}
		out.RemovedImageIDs = append(out.RemovedImageIDs, in.RemovedImageIDs...)
	}

	if len(imgRows) > 0 {
		first, err := p.nextSortOrder(ctx, in.ID)
		if err != nil {
			return nil, p.reject(ctx, op, partial(err))
		}
		for i, r := range imgRows {
			r["blog_id"] = in.ID
			r["sort_order"] = first + i
		}
		inserted, err := p.gw.Insert(ctx, gateway.TableBlogImages, imgRows...)
		if err != nil {
			return nil, p.reject(ctx, op, partial(err))
		}
		if out.AddedImages, err = gateway.DecodeAll[models.Image](inserted); err != nil {
			return nil, p.reject(ctx, op, partial(err))
		}
	}

	p.log.Debug(ctx, "blog updated", "blog_id", in.ID,
		"added", len(out.AddedImages), "removed", len(out.RemovedImageIDs))
	return out, nil
}

func (p *Pipeline) nextSortOrder(ctx context.Context, blogID int64) (int, error) {
	res, err := p.gw.Select(ctx, *gateway.From(gateway.TableBlogImages).
		Select("sort_order").
		Where(gateway.Eq("blog_id", blogID)).
		OrderBy("sort_order", false).
		Take(1))
	if err != nil {
		return 0, err
	}
	row, err := gateway.MaybeSingle(res.Rows)
	if err != nil || row == nil {
		return 0, err
	}

	var last models.Image
	if err := gateway.Decode(row, &last); err != nil {
		return 0, err
	}
	return last.SortOrder + 1, nil
}

// DeleteBlog checks that userID authored the post, then removes comments,
// images and the post itself, stopping at the first failure.
func (p *Pipeline) DeleteBlog(ctx context.Context, id int64, userID string) (int64, error) {
	const op = "blog/delete"

	blog, r := p.lookupBlog(ctx, id)
	if r != nil {
		return 0, p.reject(ctx, op, r)
	}
	if blog == nil {
		return 0, p.reject(ctx, op, notFound(msgBlogNotFound))
	}
	if blog.AuthorID != userID {
		return 0, p.reject(ctx, op, denied(msgBlogDeleteDenied, gateway.ErrUnauthorized))
	}

	if _, err := p.gw.Delete(ctx, gateway.TableComments, gateway.Eq("blog_id", id)); err != nil {
		return 0, p.reject(ctx, op, failed(err))
	}
	if _, err := p.gw.Delete(ctx, gateway.TableBlogImages, gateway.Eq("blog_id", id)); err != nil {
		return 0, p.reject(ctx, op, partial(err))
	}

	n, err := p.gw.Delete(ctx, gateway.TableBlogs, gateway.Eq("id", id))
	if err != nil {
		return 0, p.reject(ctx, op, partial(err))
	}
	if n == 0 {
		return 0, p.reject(ctx, op, denied(msgBlogDeleteDenied, nil))
	}

	p.log.Debug(ctx, "blog deleted", "blog_id", id)
	return id, nil
}

// lookupBlog reads the id and author of a post. A missing post yields nil.
func (p *Pipeline) lookupBlog(ctx context.Context, id int64) (*models.Blog, *Rejection) {
	res, err := p.gw.Select(ctx, *gateway.From(gateway.TableBlogs).
		Select("id", "author_id").
		Where(gateway.Eq("id", id)).
		Take(1))
	if err != nil {
		return nil, failed(err)
	}
	row, err := gateway.MaybeSingle(res.Rows)
	if err != nil {
		return nil, failed(err)
	}
	if row == nil {
		return nil, nil
	}

	var b models.Blog
	if err := gateway.Decode(row, &b); err != nil {
		return nil, failed(err)
	}
	return &b, nil
}

// FetchAllBlogs loads one page of posts, newest first.
func (p *Pipeline) FetchAllBlogs(ctx context.Context, page, perPage int) (*models.BlogPage, error) {
	return p.fetchPage(ctx, "blog/fetch_all", page, perPage)
}

// FetchBlogsByAuthor is FetchAllBlogs restricted to one author.
func (p *Pipeline) FetchBlogsByAuthor(ctx context.Context, authorID string, page, perPage int) (*models.BlogPage, error) {
	return p.fetchPage(ctx, "blog/fetch_by_author", page, perPage, gateway.Eq("author_id", authorID))
}

func (p *Pipeline) fetchPage(ctx context.Context, op string, page, perPage int, filters ...gateway.Filter) (*models.BlogPage, error) {
	if page < 1 {
		page = 1
	}
	if perPage <= 0 {
		perPage = p.opts.PerPage
	}
	r := gateway.PageRange(page, perPage)

	res, err := p.gw.Select(ctx, *gateway.From(gateway.TableBlogs).
		Where(filters...).
		OrderBy("created_at", false).
		Between(r.From, r.To).
		WithCount())
	if err != nil {
		return nil, p.reject(ctx, op, failed(err))
	}

	blogs, err := gateway.DecodeAll[models.Blog](res.Rows)
	if err != nil {
		return nil, p.reject(ctx, op, failed(err))
	}
	if err := p.hydrate(ctx, blogs); err != nil {
		return nil, p.reject(ctx, op, failed(err))
	}

	return &models.BlogPage{Blogs: blogs, Total: res.Count, Page: page, PerPage: perPage}, nil
}

// FetchSingleBlog loads and hydrates one post.
func (p *Pipeline) FetchSingleBlog(ctx context.Context, id int64) (*models.Blog, error) {
	const op = "blog/fetch_single"

	res, err := p.gw.Select(ctx, *gateway.From(gateway.TableBlogs).Where(gateway.Eq("id", id)))
	if err != nil {
		return nil, p.reject(ctx, op, failed(err))
	}
	row, err := gateway.MaybeSingle(res.Rows)
	if err != nil {
		return nil, p.reject(ctx, op, failed(err))
	}
	if row == nil {
		return nil, p.reject(ctx, op, notFound(msgBlogNotFound))
	}

	blogs := make([]models.Blog, 1)
	if err := gateway.Decode(row, &blogs[0]); err != nil {
		return nil, p.reject(ctx, op, failed(err))
	}
	if err := p.hydrate(ctx, blogs); err != nil {
		return nil, p.reject(ctx, op, failed(err))
	}
	return &blogs[0], nil
}
