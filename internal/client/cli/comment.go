package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gophblog/internal/client/models"
)

const removeImageMarker = "-"

func (a *App) Comment(ctx context.Context, args []string) error {
	blogID, err := idArg(args, 0, "comment <post-id>")
	if err != nil {
		return err
	}

	content, err := GetMultiline(a.reader, "Comment", a.out)
	if err != nil {
		return err
	}
	imageLine, err := GetSimpleText(a.reader, "Image path (empty to skip)", a.out)
	if err != nil {
		return err
	}

	in := models.NewComment{BlogID: blogID, UserID: a.user().UserID, Content: content}
	if imageLine != "" {
		f, err := loadImage(imageLine)
		if err != nil {
			return err
		}
		in.Image = &f
	}

	a.actions.AddComment(ctx, in)
	return nil
}

// EditComment replaces the text and optionally the image of a comment.
// An image answer of "-" removes the current image.
func (a *App) EditComment(ctx context.Context, args []string) error {
	id, err := idArg(args, 0, "editcomment <id>")
	if err != nil {
		return err
	}

	var current string
	if c := a.findComment(id); c != nil {
		current = c.Content
	}

	content, err := GetMultiline(a.reader, "New comment text", a.out)
	if err != nil {
		return err
	}
	if content == "" {
		content = current
	}

	imageLine, err := GetSimpleText(a.reader, "Image path (empty keeps, \"-\" removes)", a.out)
	if err != nil {
		return err
	}

	in := models.CommentEdit{CommentID: id, UserID: a.user().UserID, Content: content}
	switch imageLine {
	case "":
	case removeImageMarker:
		in.RemoveImage = true
	default:
		f, err := loadImage(imageLine)
		if err != nil {
			return err
		}
		in.Image = &f
	}

	a.actions.EditComment(ctx, in)
	return nil
}

// DeleteComment needs the post id for local bookkeeping. It is looked up in
// loaded posts when not given.
func (a *App) DeleteComment(ctx context.Context, args []string) error {
	const usage = "delcomment <id> [post-id]"

	id, err := idArg(args, 0, usage)
	if err != nil {
		return err
	}

	var blogID int64
	if len(args) > 1 {
		if blogID, err = idArg(args, 1, usage); err != nil {
			return err
		}
	} else if c := a.findComment(id); c != nil {
		blogID = c.BlogID
	} else {
		return fmt.Errorf("comment #%d is not loaded, usage: %s", id, usage)
	}

	a.actions.DeleteComment(ctx, id, a.user().UserID, blogID)
	return nil
}

// findComment searches the loaded single post first, then the list.
func (a *App) findComment(id int64) *models.Comment {
	st := a.actions.Store().Blog()

	blogs := st.Blogs
	if st.SingleBlog != nil {
		blogs = append([]models.Blog{*st.SingleBlog}, blogs...)
	}
	for _, b := range blogs {
		for i := range b.Comments {
			if b.Comments[i].ID == id {
				c := b.Comments[i]
				return &c
			}
		}
	}
	return nil
}
