package store

import (
	"slices"

	"github.com/dmitrijs2005/gophblog/internal/client/models"
)

const (
	msgBlogAdded      = "Blog Added Successfully"
	msgBlogUpdated    = "Blog updated successfully!"
	msgBlogDeleted    = "Blog deleted successfully!"
	msgCommentAdded   = "Comment added successfully!"
	msgCommentUpdated = "Comment updated successfully!"
	msgCommentDeleted = "Comment deleted successfully!"

	defaultPerPage = 9
)

type BlogState struct {
	Blogs      []models.Blog
	SingleBlog *models.Blog
	Total      int

	Loading           bool
	LoadingSingleBlog bool
	CommentLoading    bool

	Error   string
	Success string

	CurrentPage int
	PerPage     int
}

func initialBlog() BlogState {
	return BlogState{Blogs: []models.Blog{}, CurrentPage: 1, PerPage: defaultPerPage}
}

// ReduceBlog returns the blog state after a. It never mutates s: slices and
// the focused blog are copied before they change. Targets missing from
// local state are skipped silently.
func ReduceBlog(s BlogState, a Action) BlogState {
	switch a.Type {
	case TypeAddBlog:
		s = loadingPhase(s, a, msgBlogAdded)
		if b, ok := fulfilledPayload[*models.Blog](a); ok {
			s.Blogs = append([]models.Blog{*b}, s.Blogs...)
		}

	case TypeFetchAllBlogs, TypeFetchByAuthor:
		s = loadingPhase(s, a, "")
		if page, ok := fulfilledPayload[*models.BlogPage](a); ok {
			s.Blogs = slices.Clone(page.Blogs)
			if s.Blogs == nil {
				s.Blogs = []models.Blog{}
			}
			s.Total = page.Total
			s.CurrentPage = page.Page
			s.PerPage = page.PerPage
		}

	case TypeUpdateBlog:
		s = loadingPhase(s, a, msgBlogUpdated)
		if upd, ok := fulfilledPayload[*models.BlogUpdate](a); ok {
			s = mapBlog(s, upd.ID, func(b models.Blog) models.Blog { return mergeUpdate(b, upd) })
		}

	case TypeDeleteBlog:
		s = loadingPhase(s, a, msgBlogDeleted)
		if id, ok := fulfilledPayload[int64](a); ok {
			s.Blogs = slices.DeleteFunc(slices.Clone(s.Blogs), func(b models.Blog) bool { return b.ID == id })
			if s.SingleBlog != nil && s.SingleBlog.ID == id {
				s.SingleBlog = nil
			}
		}

	case TypeFetchSingle:
		switch a.Phase {
		case Pending:
			s.LoadingSingleBlog = true
			s.Error = ""
		case Fulfilled:
			s.LoadingSingleBlog = false
			s.SingleBlog, _ = a.Payload.(*models.Blog)
		case Rejected:
			s.LoadingSingleBlog = false
			s.Error = a.Reason
		}

	case TypeAddComment:
		s = commentPhase(s, a, msgCommentAdded)
		if c, ok := fulfilledPayload[*models.Comment](a); ok {
			s = mapBlog(s, c.BlogID, func(b models.Blog) models.Blog {
				b.Comments = append(slices.Clone(b.Comments), *c)
				return b
			})
		}

	case TypeEditComment:
		s = commentPhase(s, a, msgCommentUpdated)
		if c, ok := fulfilledPayload[*models.Comment](a); ok {
			s = mapBlog(s, c.BlogID, func(b models.Blog) models.Blog {
				i := slices.IndexFunc(b.Comments, func(x models.Comment) bool { return x.ID == c.ID })
				if i < 0 {
					return b
				}
				b.Comments = slices.Clone(b.Comments)
				b.Comments[i] = *c
				return b
			})
		}

	case TypeDeleteComment:
		s = commentPhase(s, a, msgCommentDeleted)
		if ref, ok := fulfilledPayload[*models.CommentRef](a); ok {
			s = mapBlog(s, ref.BlogID, func(b models.Blog) models.Blog {
				b.Comments = slices.DeleteFunc(slices.Clone(b.Comments), func(x models.Comment) bool {
					return x.ID == ref.CommentID
				})
				return b
			})
		}

	case TypeBlogClearError:
		s.Error = ""
	case TypeBlogClearSuccess:
		s.Success = ""
	case TypeClearSingleBlog:
		s.SingleBlog = nil
	case TypeResetBlogState:
		s.SingleBlog = nil
		s.LoadingSingleBlog = false
		s.Error = ""
		s.Success = ""
	}
	return s
}

func fulfilledPayload[T any](a Action) (T, bool) {
	if a.Phase != Fulfilled {
		var zero T
		return zero, false
	}
	v, ok := a.Payload.(T)
	return v, ok
}

// loadingPhase applies the common Loading/Error/Success transitions.
// success is left alone when empty.
func loadingPhase(s BlogState, a Action, success string) BlogState {
	switch a.Phase {
	case Pending:
		s.Loading = true
		s.Error = ""
	case Fulfilled:
		s.Loading = false
		if success != "" {
			s.Success = success
		}
	case Rejected:
		s.Loading = false
		s.Error = a.Reason
	}
	return s
}

func commentPhase(s BlogState, a Action, success string) BlogState {
	switch a.Phase {
	case Pending:
		s.CommentLoading = true
		s.Error = ""
	case Fulfilled:
		s.CommentLoading = false
		s.Success = success
	case Rejected:
		s.CommentLoading = false
		s.Error = a.Reason
	}
	return s
}

// mapBlog applies fn to the list entry and the focused blog with id.
func mapBlog(s BlogState, id int64, fn func(models.Blog) models.Blog) BlogState {
	if i := slices.IndexFunc(s.Blogs, func(b models.Blog) bool { return b.ID == id }); i >= 0 {
		s.Blogs = slices.Clone(s.Blogs)
		s.Blogs[i] = fn(s.Blogs[i])
	}
	if s.SingleBlog != nil && s.SingleBlog.ID == id {
		b := fn(*s.SingleBlog)
		s.SingleBlog = &b
	}
	return s
}

// mergeUpdate keeps everything the update does not mention: author,
// comments, creation time and the images that were not removed.
func mergeUpdate(b models.Blog, upd *models.BlogUpdate) models.Blog {
	b.Title = upd.Title
	b.Content = upd.Content

	images := slices.DeleteFunc(slices.Clone(b.Images), func(img models.Image) bool {
		return slices.Contains(upd.RemovedImageIDs, img.ID)
	})
	images = append(images, upd.AddedImages...)
	slices.SortStableFunc(images, func(x, y models.Image) int { return x.SortOrder - y.SortOrder })
	b.Images = images
	return b
}
