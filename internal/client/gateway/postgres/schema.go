package postgres

import (
	"fmt"

	"github.com/dmitrijs2005/gophblog/internal/client/gateway"
)

// uidPlaceholder marks where the session user id is bound inside a policy
// predicate.
const uidPlaceholder = "$uid"

// table describes one exposed relation: its columns and who may write it.
type table struct {
	name    string
	columns map[string]struct{}

	// readOnly relations (views) reject every write.
	readOnly bool

	// ownerColumn, when set, must equal the session user id on insert.
	ownerColumn string

	// parent, when set, must reference rows owned by the session user on
	// insert.
	parent *parentRef

	// updatePolicy and deletePolicy are SQL predicates ANDed to the filters
	// of updates and deletes.
	updatePolicy string
	deletePolicy string
}

// parentRef is a foreign key to an owned table.
type parentRef struct {
	column      string
	table       string
	ownerColumn string
}

func columns(names ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(names))
	for _, n := range names {
		m[n] = struct{}{}
	}
	return m
}

const ownsBlog = "blog_id IN (SELECT id FROM blogs WHERE author_id = " + uidPlaceholder + ")"

var schema = map[string]*table{
	gateway.TableProfiles: {
		name:         gateway.TableProfiles,
		columns:      columns("user_id", "name", "email", "image", "created_at"),
		ownerColumn:  "user_id",
		updatePolicy: "user_id = " + uidPlaceholder,
		deletePolicy: "user_id = " + uidPlaceholder,
	},
	gateway.TableBlogs: {
		name:         gateway.TableBlogs,
		columns:      columns("id", "title", "content", "author_id", "created_at"),
		ownerColumn:  "author_id",
		updatePolicy: "author_id = " + uidPlaceholder,
		deletePolicy: "author_id = " + uidPlaceholder,
	},
	gateway.TableBlogImages: {
		name:         gateway.TableBlogImages,
		columns:      columns("id", "blog_id", "image_path", "alt_text", "sort_order"),
		parent:       &parentRef{column: "blog_id", table: gateway.TableBlogs, ownerColumn: "author_id"},
		updatePolicy: ownsBlog,
		deletePolicy: ownsBlog,
	},
	gateway.TableComments: {
		name:         gateway.TableComments,
		columns:      columns("id", "blog_id", "user_id", "content", "image_path", "created_at"),
		ownerColumn:  "user_id",
		updatePolicy: "user_id = " + uidPlaceholder,
		// blog authors may clear the comments of their own posts
		deletePolicy: "(user_id = " + uidPlaceholder + " OR " + ownsBlog + ")",
	},
	gateway.ViewCommentsWithAuthor: {
		name:     gateway.ViewCommentsWithAuthor,
		columns:  columns("id", "blog_id", "user_id", "content", "image_path", "created_at", "user_name", "user_avatar"),
		readOnly: true,
	},
}

func lookupTable(name string) (*table, error) {
	t, ok := schema[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", gateway.ErrUnknownTable, name)
	}
	return t, nil
}

func (t *table) checkColumn(name string) error {
	if _, ok := t.columns[name]; !ok {
		return fmt.Errorf("column %q does not exist on %q", name, t.name)
	}
	return nil
}
