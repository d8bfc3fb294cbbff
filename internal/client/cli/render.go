package cli

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/dmitrijs2005/gophblog/internal/client/models"
	"github.com/dmitrijs2005/gophblog/internal/client/store"
	"github.com/dmitrijs2005/gophblog/internal/common"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

const (
	timeLayout     = "2006-01-02 15:04"
	excerptRunes   = 80
	commentExcerpt = 60
)

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

func byline(name, fallback string) string {
	if name != "" {
		return name
	}
	return fallback
}

func totalPages(total, perPage int) int {
	if perPage <= 0 || total == 0 {
		return 1
	}
	return (total + perPage - 1) / perPage
}

// renderPage prints the post list held in the blog slice.
func renderPage(w io.Writer, s store.BlogState) {
	fmt.Fprintf(w, "Page %d of %d (%d posts)\n", s.CurrentPage, totalPages(s.Total, s.PerPage), s.Total)
	if len(s.Blogs) == 0 {
		fmt.Fprintln(w, "  no posts")
		return
	}
	for _, b := range s.Blogs {
		fmt.Fprintf(w, "#%d  %s  by %s, %s  [%d images, %d comments]\n",
			b.ID, b.Title, byline(b.AuthorName, "unknown"), b.CreatedAt.Format(timeLayout),
			len(b.Images), len(b.Comments))
		if ex := common.Excerpt(b.Content, excerptRunes); ex != "" {
			fmt.Fprintf(w, "    %s\n", ex)
		}
	}
}

// renderBlog prints a single post with its images and comments.
func renderBlog(w io.Writer, b *models.Blog) {
	fmt.Fprintf(w, "#%d %s\n", b.ID, b.Title)
	fmt.Fprintf(w, "by %s, %s\n\n", byline(b.AuthorName, "unknown"), b.CreatedAt.Format(timeLayout))
	fmt.Fprintln(w, b.Content)

	if len(b.Images) > 0 {
		fmt.Fprintln(w, "\nImages:")
		for _, img := range b.Images {
			fmt.Fprintf(w, "  [%d] %s (%d bytes)\n", img.ID, img.AltText, len(img.ImagePath))
		}
	}

	fmt.Fprintf(w, "\nComments (%d):\n", len(b.Comments))
	for _, c := range b.Comments {
		line := fmt.Sprintf("  (#%d) %s, %s: %s", c.ID, byline(c.UserName, "anonymous"),
			c.CreatedAt.Format(timeLayout), common.Excerpt(c.Content, commentExcerpt))
		if c.ImagePath != "" {
			line += " [image]"
		}
		fmt.Fprintln(w, line)
	}
}

var pageTemplate = template.Must(template.New("post").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>{{.Title}}</title></head>
<body>
<article>
<h1>{{.Title}}</h1>
<p class="byline">by {{.Author}}, {{.Date}}</p>
{{range .Images}}<img src="{{.Src}}" alt="{{.Alt}}">
{{end}}{{.Body}}
</article>
<section class="comments">
<h2>Comments ({{len .Comments}})</h2>
{{range .Comments}}<div class="comment"><p><strong>{{.Author}}</strong> {{.Date}}</p>{{.Body}}{{if .Image}}<img src="{{.Image}}" alt="">{{end}}</div>
{{end}}</section>
</body>
</html>
`))

type htmlImage struct {
	Src template.URL
	Alt string
}

type htmlComment struct {
	Author string
	Date   string
	Body   template.HTML
	Image  template.URL
}

type htmlPost struct {
	Title    string
	Author   string
	Date     string
	Body     template.HTML
	Images   []htmlImage
	Comments []htmlComment
}

func markdownHTML(src string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

// dataURL passes only inline image payloads through as trusted URLs.
func dataURL(s string) template.URL {
	if !strings.HasPrefix(s, "data:image/") {
		return ""
	}
	return template.URL(s)
}

// renderHTML turns a post into a standalone HTML page. Post and comment
// bodies are rendered as markdown with raw HTML suppressed.
func renderHTML(b *models.Blog) ([]byte, error) {
	body, err := markdownHTML(b.Content)
	if err != nil {
		return nil, err
	}

	p := htmlPost{
		Title:  b.Title,
		Author: byline(b.AuthorName, "unknown"),
		Date:   b.CreatedAt.Format(timeLayout),
		Body:   body,
	}
	for _, img := range b.Images {
		p.Images = append(p.Images, htmlImage{Src: dataURL(img.ImagePath), Alt: img.AltText})
	}
	for _, c := range b.Comments {
		cb, err := markdownHTML(c.Content)
		if err != nil {
			return nil, err
		}
		p.Comments = append(p.Comments, htmlComment{
			Author: byline(c.UserName, "anonymous"),
			Date:   c.CreatedAt.Format(timeLayout),
			Body:   cb,
			Image:  dataURL(c.ImagePath),
		})
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, p); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
