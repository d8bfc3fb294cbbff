package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/gophblog/internal/client/models"
)

// writeFile is a test seam.
var writeFile = os.WriteFile

// perPage is left to the pipeline, which applies the configured size.
func (a *App) perPage() int {
	return 0
}

// List shows one page of all posts.
func (a *App) List(ctx context.Context, args []string) error {
	page, err := pageArg(args)
	if err != nil {
		return err
	}
	if a.actions.FetchAllBlogs(ctx, page, a.perPage()).Fulfilled() {
		renderPage(a.out, a.actions.Store().Blog())
	}
	return nil
}

// Mine shows one page of the current user's posts.
func (a *App) Mine(ctx context.Context, args []string) error {
	page, err := pageArg(args)
	if err != nil {
		return err
	}
	if a.actions.FetchBlogsByAuthor(ctx, a.user().UserID, page, a.perPage()).Fulfilled() {
		renderPage(a.out, a.actions.Store().Blog())
	}
	return nil
}

func (a *App) Show(ctx context.Context, args []string) error {
	id, err := idArg(args, 0, "show <id>")
	if err != nil {
		return err
	}
	if out := a.actions.FetchSingleBlog(ctx, id); out.Fulfilled() {
		renderBlog(a.out, out.Value)
	}
	return nil
}

// Export writes a post as a standalone HTML page.
func (a *App) Export(ctx context.Context, args []string) error {
	id, err := idArg(args, 0, "export <id> <file.html>")
	if err != nil {
		return err
	}
	if len(args) < 2 {
		return fmt.Errorf("usage: export <id> <file.html>")
	}

	out := a.actions.FetchSingleBlog(ctx, id)
	if !out.Fulfilled() {
		return nil
	}
	page, err := renderHTML(out.Value)
	if err != nil {
		return err
	}
	if err := writeFile(args[1], page, 0o644); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Exported post #%d to %s\n", id, args[1])
	return nil
}

func (a *App) Post(ctx context.Context) error {
	title, err := GetSimpleText(a.reader, "Title", a.out)
	if err != nil {
		return err
	}
	content, err := GetMultiline(a.reader, "Content (markdown)", a.out)
	if err != nil {
		return err
	}
	images, err := a.promptImages("Images")
	if err != nil {
		return err
	}

	out := a.actions.AddBlog(ctx, models.NewBlog{
		Title:    title,
		Content:  content,
		AuthorID: a.user().UserID,
		Images:   images,
	})
	if out.Fulfilled() {
		fmt.Fprintf(a.out, "Post #%d created\n", out.Value.ID)
	}
	return nil
}

// Edit loads the post, then asks for changes. Empty answers keep the
// current title and content.
func (a *App) Edit(ctx context.Context, args []string) error {
	id, err := idArg(args, 0, "edit <id>")
	if err != nil {
		return err
	}

	cur := a.actions.FetchSingleBlog(ctx, id)
	if !cur.Fulfilled() {
		return nil
	}
	renderBlog(a.out, cur.Value)

	title, err := GetTextWithDefault(a.reader, "Title", cur.Value.Title, a.out)
	if err != nil {
		return err
	}
	content, err := GetMultiline(a.reader, "Content (empty keeps the current text)", a.out)
	if err != nil {
		return err
	}
	if content == "" {
		content = cur.Value.Content
	}

	removeLine, err := GetSimpleText(a.reader, "Image ids to remove (space separated, empty for none)", a.out)
	if err != nil {
		return err
	}
	removed, err := parseIDs(removeLine)
	if err != nil {
		return err
	}

	images, err := a.promptImages("New images")
	if err != nil {
		return err
	}

	a.actions.UpdateBlog(ctx, models.BlogEdit{
		ID:              id,
		Title:           title,
		Content:         content,
		NewImages:       images,
		RemovedImageIDs: removed,
	})
	return nil
}

func (a *App) Delete(ctx context.Context, args []string) error {
	id, err := idArg(args, 0, "delete <id>")
	if err != nil {
		return err
	}
	answer, err := GetSimpleText(a.reader, fmt.Sprintf("Delete post #%d with all its comments? (y/N)", id), a.out)
	if err != nil {
		return err
	}
	if !strings.EqualFold(answer, "y") && !strings.EqualFold(answer, "yes") {
		fmt.Fprintln(a.out, "Cancelled")
		return nil
	}
	a.actions.DeleteBlog(ctx, id, a.user().UserID)
	return nil
}

func parseIDs(s string) ([]int64, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ' ' || r == ',' })
	ids := make([]int64, 0, len(fields))
	for _, f := range fields {
		id, err := strconv.ParseInt(f, 10, 64)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("invalid id %q", f)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
