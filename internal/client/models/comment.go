package models

import "time"

// Comment is a comment as read through the author-joined view.
type Comment struct {
	ID        int64     `json:"id"`
	BlogID    int64     `json:"blog_id"`
	UserID    string    `json:"user_id"`
	Content   string    `json:"content"`
	ImagePath string    `json:"image_path,omitempty"`
	CreatedAt time.Time `json:"created_at"`

	UserName   string `json:"user_name,omitempty"`
	UserAvatar string `json:"user_avatar,omitempty"`
}

type NewComment struct {
	BlogID  int64
	UserID  string
	Content string
	Image   *ImageFile
}

// CommentEdit changes a comment. Image and RemoveImage are mutually
// exclusive: nil Image with RemoveImage false leaves the image untouched.
type CommentEdit struct {
	CommentID   int64
	UserID      string
	Content     string
	Image       *ImageFile
	RemoveImage bool
}

// CommentRef identifies a deleted comment for local state maintenance.
type CommentRef struct {
	CommentID int64
	BlogID    int64
}
