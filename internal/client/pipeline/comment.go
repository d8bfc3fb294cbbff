package pipeline

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gophblog/internal/client/gateway"
	"github.com/dmitrijs2005/gophblog/internal/client/imaging"
	"github.com/dmitrijs2005/gophblog/internal/client/models"
)

const (
	msgCommentEmpty         = "comment cannot be empty"
	msgCommentImageTooLarge = "Image is too large even after compression. Please choose a smaller image."
	msgCommentImageConflict = "Choose either a new image or removing the image, not both"
	msgCommentNotFound      = "Comment not found"
	msgCommentEditForeign   = "You can only edit your own comments"
	msgCommentDeleteForeign = "You can only delete your own comments"
	msgCommentEditDenied    = "You are not allowed to edit this comment"
	msgCommentDeleteDenied  = "Permission denied: the comment was not deleted"
)

// commentImage downsizes f into a JPEG data URL within the size ceiling.
func (p *Pipeline) commentImage(f *models.ImageFile) (string, *Rejection) {
	payload, err := imaging.Downsize(f.Content, p.opts.CommentImageMaxWidth, p.opts.CommentImageQuality)
	if err != nil {
		return "", &Rejection{Kind: KindValidation, Reason: fmt.Sprintf("Could not process image: %v", err), Err: err}
	}
	if len(payload) > p.opts.CommentImageMaxChars {
		return "", invalid(msgCommentImageTooLarge)
	}
	return payload, nil
}

// AddComment inserts the comment and returns it as read back through
// comments_with_author, so author fields come from the view.
func (p *Pipeline) AddComment(ctx context.Context, in models.NewComment) (*models.Comment, error) {
	const op = "comment/add"

	hasImage := in.Image != nil && len(in.Image.Content) > 0
	if blank(in.Content) && !hasImage {
		return nil, p.reject(ctx, op, invalid(msgCommentEmpty))
	}

	row := gateway.Row{
		"blog_id":    in.BlogID,
		"user_id":    in.UserID,
		"content":    in.Content,
		"image_path": nil,
	}
	if hasImage {
		payload, r := p.commentImage(in.Image)
		if r != nil {
			return nil, p.reject(ctx, op, r)
		}
		row["image_path"] = payload
	}

	rows, err := p.gw.Insert(ctx, gateway.TableComments, row)
	if err != nil {
		return nil, p.reject(ctx, op, failed(err))
	}
	var inserted models.Comment
	if err := decodeSingle(rows, &inserted); err != nil {
		return nil, p.reject(ctx, op, partial(err))
	}

	c, err := p.commentWithAuthor(ctx, inserted.ID)
	if err != nil {
		return nil, p.reject(ctx, op, partial(err))
	}
	return c, nil
}

// EditComment changes text and, optionally, replaces or removes the image.
// The ownership check here is advisory; the update itself is filtered by
// owner and an empty result is reported as a denial.
func (p *Pipeline) EditComment(ctx context.Context, in models.CommentEdit) (*models.Comment, error) {
	const op = "comment/edit"

	if in.Image != nil && in.RemoveImage {
		return nil, p.reject(ctx, op, invalid(msgCommentImageConflict))
	}

	existing, r := p.ownComment(ctx, in.CommentID, in.UserID, msgCommentEditForeign)
	if r != nil {
		return nil, p.reject(ctx, op, r)
	}

	values := gateway.Row{"content": in.Content}
	image := existing.ImagePath
	switch {
	case in.Image != nil:
		payload, r := p.commentImage(in.Image)
		if r != nil {
			return nil, p.reject(ctx, op, r)
		}
		values["image_path"] = payload
		image = payload
	case in.RemoveImage:
		values["image_path"] = nil
		image = ""
	}

	if blank(in.Content) && image == "" {
		return nil, p.reject(ctx, op, invalid(msgCommentEmpty))
	}

	updated, err := p.gw.Update(ctx, gateway.TableComments, values,
		gateway.Eq("id", in.CommentID),
		gateway.Eq("user_id", in.UserID))
	if err != nil {
		return nil, p.reject(ctx, op, failed(err))
	}
	if len(updated) == 0 {
		return nil, p.reject(ctx, op, denied(msgCommentEditDenied, nil))
	}

	c, err := p.commentWithAuthor(ctx, in.CommentID)
	if err != nil {
		return nil, p.reject(ctx, op, partial(err))
	}
	return c, nil
}

// DeleteComment verifies ownership, then deletes filtered by owner. blogID
// only locates the comment in local state; zero means "use the stored one".
func (p *Pipeline) DeleteComment(ctx context.Context, commentID int64, userID string, blogID int64) (*models.CommentRef, error) {
	const op = "comment/delete"

	existing, r := p.ownComment(ctx, commentID, userID, msgCommentDeleteForeign)
	if r != nil {
		return nil, p.reject(ctx, op, r)
	}

	n, err := p.gw.Delete(ctx, gateway.TableComments,
		gateway.Eq("id", commentID),
		gateway.Eq("user_id", userID))
	if err != nil {
		return nil, p.reject(ctx, op, failed(err))
	}
	if n == 0 {
		return nil, p.reject(ctx, op, denied(msgCommentDeleteDenied, nil))
	}

	if blogID == 0 {
		blogID = existing.BlogID
	}
	return &models.CommentRef{CommentID: commentID, BlogID: blogID}, nil
}

// ownComment loads the stored comment and checks it belongs to userID.
func (p *Pipeline) ownComment(ctx context.Context, commentID int64, userID, foreign string) (*models.Comment, *Rejection) {
	res, err := p.gw.Select(ctx, *gateway.From(gateway.TableComments).Where(gateway.Eq("id", commentID)))
	if err != nil {
		return nil, failed(err)
	}
	row, err := gateway.MaybeSingle(res.Rows)
	if err != nil {
		return nil, failed(err)
	}
	if row == nil {
		return nil, notFound(msgCommentNotFound)
	}

	var c models.Comment
	if err := gateway.Decode(row, &c); err != nil {
		return nil, failed(err)
	}
	if c.UserID != userID {
		return nil, denied(foreign, gateway.ErrUnauthorized)
	}
	return &c, nil
}

func (p *Pipeline) commentWithAuthor(ctx context.Context, id int64) (*models.Comment, error) {
	res, err := p.gw.Select(ctx, *gateway.From(gateway.ViewCommentsWithAuthor).Where(gateway.Eq("id", id)))
	if err != nil {
		return nil, err
	}
	var c models.Comment
	if err := decodeSingle(res.Rows, &c); err != nil {
		return nil, err
	}
	return &c, nil
}
