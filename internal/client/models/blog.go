package models

import "time"

// Blog is a post hydrated with its images, comments and author metadata.
type Blog struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	AuthorID string `json:"author_id"`

	CreatedAt time.Time `json:"created_at"`

	// Denormalized at fetch time, never written back.
	AuthorName   string `json:"-"`
	AuthorAvatar string `json:"-"`

	Images   []Image   `json:"-"`
	Comments []Comment `json:"-"`
}

// Image is one picture attached to a blog. ID is zero until persisted.
type Image struct {
	ID        int64  `json:"id,omitempty"`
	BlogID    int64  `json:"blog_id"`
	ImagePath string `json:"image_path"`
	AltText   string `json:"alt_text,omitempty"`
	SortOrder int    `json:"sort_order"`
}

// ImageFile is a pending upload: raw bytes read from disk plus alt text.
type ImageFile struct {
	Name    string
	AltText string
	Content []byte
}

// BlogPage is one page of hydrated blogs and the total row count.
type BlogPage struct {
	Blogs   []Blog
	Total   int
	Page    int
	PerPage int
}

// BlogUpdate is what a successful update reports back: the new text, the
// images inserted by this update and the ids it removed. The caller merges
// it into whatever it already holds.
type BlogUpdate struct {
	ID              int64
	Title           string
	Content         string
	AddedImages     []Image
	RemovedImageIDs []int64
}

type NewBlog struct {
	Title    string
	Content  string
	AuthorID string
	Images   []ImageFile
}

type BlogEdit struct {
	ID              int64
	Title           string
	Content         string
	NewImages       []ImageFile
	RemovedImageIDs []int64
}
