package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/dmitrijs2005/gophblog/internal/client/gateway"
	"github.com/dmitrijs2005/gophblog/internal/client/models"
	"github.com/dmitrijs2005/gophblog/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// commentBackend stores one comment owned by owner and serves it from both
// comments and comments_with_author, the latter with author fields.
func commentBackend(owner string, image string) func(q gateway.Query) (*gateway.Result, error) {
	return func(q gateway.Query) (*gateway.Result, error) {
		id, _ := filterValue(q.Filters, "id")
		row := gateway.Row{"id": id, "blog_id": int64(3), "user_id": owner, "content": "stored", "image_path": image}
		if id != int64(5) {
			return &gateway.Result{}, nil
		}
		if q.Table == gateway.ViewCommentsWithAuthor {
			row["user_name"] = "Ann"
			row["user_avatar"] = "data:ann"
		}
		return &gateway.Result{Rows: []gateway.Row{row}}, nil
	}
}

func TestAddComment_EmptyRejectsBeforeGateway(t *testing.T) {
	gw := &fakeGateway{}

	_, err := newTestPipeline(gw).AddComment(context.Background(), models.NewComment{BlogID: 3, UserID: "u-1", Content: "   "})
	r := requireRejection(t, err, KindValidation)
	assert.Equal(t, "comment cannot be empty", r.Reason)
	assert.Empty(t, gw.Calls())
}

func TestAddComment_OversizedImageIsNotInserted(t *testing.T) {
	gw := &fakeGateway{}
	p := New(gw, logging.Discard(), Options{CommentImageMaxChars: 64})

	_, err := p.AddComment(context.Background(), models.NewComment{
		BlogID: 3, UserID: "u-1", Image: pngFile(t, 40, 40),
	})
	r := requireRejection(t, err, KindValidation)
	assert.Contains(t, r.Reason, "too large")
	assert.Empty(t, gw.Calls())
}

func TestAddComment_UnreadableImage(t *testing.T) {
	gw := &fakeGateway{}

	_, err := newTestPipeline(gw).AddComment(context.Background(), models.NewComment{
		BlogID: 3, UserID: "u-1", Image: &models.ImageFile{Content: []byte("definitely not an image")},
	})
	r := requireRejection(t, err, KindValidation)
	assert.True(t, strings.HasPrefix(r.Reason, "Could not process image"))
	assert.Empty(t, gw.Calls())
}

func TestAddComment_RereadsThroughView(t *testing.T) {
	gw := &fakeGateway{selectFn: commentBackend("u-1", "")}
	gw.insertFn = func(_ string, rows []gateway.Row) ([]gateway.Row, error) {
		row := gateway.Row{"id": int64(5), "user_name": "from insert"}
		for k, v := range rows[0] {
			row[k] = v
		}
		return []gateway.Row{row}, nil
	}

	c, err := newTestPipeline(gw).AddComment(context.Background(), models.NewComment{
		BlogID: 3, UserID: "u-1", Content: "hello", Image: pngFile(t, 1000, 10),
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"Insert comments", "Select comments_with_author"}, gw.Trace())
	assert.Equal(t, "Ann", c.UserName)
	assert.Equal(t, "data:ann", c.UserAvatar)
	assert.Equal(t, int64(5), c.ID)

	inserted := gw.Calls()[0].Rows[0]
	assert.Equal(t, "hello", inserted["content"])
	payload, _ := inserted["image_path"].(string)
	assert.True(t, strings.HasPrefix(payload, "data:image/jpeg;base64,"))
}

func TestAddComment_TextOnlyStoresNullImage(t *testing.T) {
	gw := &fakeGateway{selectFn: func(q gateway.Query) (*gateway.Result, error) {
		return &gateway.Result{Rows: []gateway.Row{{"id": int64(1), "content": "hi"}}}, nil
	}}

	_, err := newTestPipeline(gw).AddComment(context.Background(), models.NewComment{BlogID: 3, UserID: "u-1", Content: "hi"})
	require.NoError(t, err)

	row := gw.Calls()[0].Rows[0]
	v, ok := row["image_path"]
	assert.True(t, ok)
	assert.Nil(t, v)
}

func TestAddComment_RereadFailureIsPartial(t *testing.T) {
	gw := &fakeGateway{}

	_, err := newTestPipeline(gw).AddComment(context.Background(), models.NewComment{BlogID: 3, UserID: "u-1", Content: "hi"})
	r := requireRejection(t, err, KindPartial)
	assert.ErrorIs(t, r, gateway.ErrNotSingle)
}

func TestEditComment_ImageAndRemovalAreExclusive(t *testing.T) {
	gw := &fakeGateway{}

	_, err := newTestPipeline(gw).EditComment(context.Background(), models.CommentEdit{
		CommentID: 5, UserID: "u-1", Content: "x", Image: pngFile(t, 1, 1), RemoveImage: true,
	})
	requireRejection(t, err, KindValidation)
	assert.Empty(t, gw.Calls())
}

func TestEditComment_ForeignCommentIsNotUpdated(t *testing.T) {
	gw := &fakeGateway{selectFn: commentBackend("u-2", "")}

	_, err := newTestPipeline(gw).EditComment(context.Background(), models.CommentEdit{CommentID: 5, UserID: "u-1", Content: "x"})
	r := requireRejection(t, err, KindUnauthorized)
	assert.Equal(t, msgCommentEditForeign, r.Reason)
	assert.Equal(t, []string{"Select comments"}, gw.Trace())
}

func TestEditComment_Missing(t *testing.T) {
	gw := &fakeGateway{selectFn: commentBackend("u-1", "")}

	_, err := newTestPipeline(gw).EditComment(context.Background(), models.CommentEdit{CommentID: 6, UserID: "u-1", Content: "x"})
	r := requireRejection(t, err, KindNotFound)
	assert.Equal(t, msgCommentNotFound, r.Reason)
}

func TestEditComment_ServerDenial(t *testing.T) {
	gw := &fakeGateway{
		selectFn: commentBackend("u-1", ""),
		updateFn: func(string, gateway.Row, []gateway.Filter) ([]gateway.Row, error) { return []gateway.Row{}, nil },
	}

	_, err := newTestPipeline(gw).EditComment(context.Background(), models.CommentEdit{CommentID: 5, UserID: "u-1", Content: "x"})
	r := requireRejection(t, err, KindUnauthorized)
	assert.Equal(t, msgCommentEditDenied, r.Reason)
	assert.NotEqual(t, msgCommentNotFound, r.Reason)
}

func TestEditComment_ImageStates(t *testing.T) {
	tests := []struct {
		name      string
		stored    string
		edit      models.CommentEdit
		wantKey   bool
		wantNil   bool
		wantError string
	}{
		{
			name:   "untouched",
			stored: "data:old",
			edit:   models.CommentEdit{CommentID: 5, UserID: "u-1", Content: "new text"},
		},
		{
			name:    "removed",
			stored:  "data:old",
			edit:    models.CommentEdit{CommentID: 5, UserID: "u-1", Content: "new text", RemoveImage: true},
			wantKey: true,
			wantNil: true,
		},
		{
			name:   "empty text keeps the stored image",
			stored: "data:old",
			edit:   models.CommentEdit{CommentID: 5, UserID: "u-1", Content: ""},
		},
		{
			name:      "removing the only content",
			stored:    "data:old",
			edit:      models.CommentEdit{CommentID: 5, UserID: "u-1", Content: "", RemoveImage: true},
			wantError: msgCommentEmpty,
		},
		{
			name:      "empty text without image",
			stored:    "",
			edit:      models.CommentEdit{CommentID: 5, UserID: "u-1", Content: " "},
			wantError: msgCommentEmpty,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := &fakeGateway{selectFn: commentBackend("u-1", tt.stored)}

			c, err := newTestPipeline(gw).EditComment(context.Background(), tt.edit)
			if tt.wantError != "" {
				r := requireRejection(t, err, KindValidation)
				assert.Equal(t, tt.wantError, r.Reason)
				assert.Equal(t, []string{"Select comments"}, gw.Trace())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Ann", c.UserName)

			assert.Equal(t, []string{"Select comments", "Update comments", "Select comments_with_author"}, gw.Trace())
			upd := gw.Calls()[1]
			v, ok := upd.Values["image_path"]
			assert.Equal(t, tt.wantKey, ok)
			if tt.wantNil {
				assert.Nil(t, v)
			}
			owner, _ := filterValue(upd.Filters, "user_id")
			assert.Equal(t, "u-1", owner)
		})
	}
}

func TestEditComment_ReplaceImage(t *testing.T) {
	gw := &fakeGateway{selectFn: commentBackend("u-1", "")}

	_, err := newTestPipeline(gw).EditComment(context.Background(), models.CommentEdit{
		CommentID: 5, UserID: "u-1", Image: pngFile(t, 4, 4),
	})
	require.NoError(t, err)

	v, _ := gw.Calls()[1].Values["image_path"].(string)
	assert.True(t, strings.HasPrefix(v, "data:image/jpeg;base64,"))
}

func TestDeleteComment(t *testing.T) {
	t.Run("foreign comment issues no delete", func(t *testing.T) {
		gw := &fakeGateway{selectFn: commentBackend("u-2", "")}

		_, err := newTestPipeline(gw).DeleteComment(context.Background(), 5, "u-1", 3)
		r := requireRejection(t, err, KindUnauthorized)
		assert.Equal(t, msgCommentDeleteForeign, r.Reason)
		assert.Equal(t, []string{"Select comments"}, gw.Trace())
	})

	t.Run("missing", func(t *testing.T) {
		gw := &fakeGateway{selectFn: commentBackend("u-1", "")}

		_, err := newTestPipeline(gw).DeleteComment(context.Background(), 8, "u-1", 3)
		requireRejection(t, err, KindNotFound)
	})

	t.Run("zero rows is a permission denial", func(t *testing.T) {
		gw := &fakeGateway{
			selectFn: commentBackend("u-1", ""),
			deleteFn: func(string, []gateway.Filter) (int64, error) { return 0, nil },
		}

		_, err := newTestPipeline(gw).DeleteComment(context.Background(), 5, "u-1", 3)
		r := requireRejection(t, err, KindUnauthorized)
		assert.Equal(t, msgCommentDeleteDenied, r.Reason)
		assert.NotEqual(t, msgCommentNotFound, r.Reason)
	})

	t.Run("delete error", func(t *testing.T) {
		gw := &fakeGateway{
			selectFn: commentBackend("u-1", ""),
			deleteFn: func(string, []gateway.Filter) (int64, error) { return 0, errors.New("gone away") },
		}

		_, err := newTestPipeline(gw).DeleteComment(context.Background(), 5, "u-1", 3)
		r := requireRejection(t, err, KindGateway)
		assert.Equal(t, "gone away", r.Reason)
	})

	t.Run("ok", func(t *testing.T) {
		gw := &fakeGateway{selectFn: commentBackend("u-1", "")}

		ref, err := newTestPipeline(gw).DeleteComment(context.Background(), 5, "u-1", 0)
		require.NoError(t, err)
		assert.Equal(t, models.CommentRef{CommentID: 5, BlogID: 3}, *ref)
		assert.Equal(t, []string{"Select comments", "Delete comments"}, gw.Trace())

		del := gw.Calls()[1]
		owner, _ := filterValue(del.Filters, "user_id")
		assert.Equal(t, "u-1", owner)
	})
}
