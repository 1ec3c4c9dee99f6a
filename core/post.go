package core

import (
	"time"

	"github.com/wansing/blog/auth"
)

type Post struct {
	ID         int
	AuthorID   int
	AuthorName string // read-only, joined from the user table
	Title      string
	Content    string // markdown
	Published  bool
	TsCreated  int64
	TsUpdated  int64
}

// A PostFilter restricts CountPosts and GetPosts. The zero value matches all posts.
type PostFilter struct {
	Published *bool
	AuthorID  int
	Search    string // substring of title or content
}

// PostDB returns ErrNotFound if a post does not exist.
type PostDB interface {
	CountPosts(filter PostFilter) (int, error)
	CountPublished() (int, error)
	DeletePost(id int) error // deletes the comments, too
	GetPost(id int) (*Post, error)
	GetPosts(filter PostFilter, limit, offset int) ([]*Post, error) // newest first
	GetPublished(limit, offset int) ([]*Post, error)                // newest first
	InsertPost(p *Post) error                                       // sets p.ID
	UpdatePost(p *Post) error                                       // title, content, published, ts_updated
}

// ListPublished returns the requested page of published posts, newest first.
// The page number is clamped to the valid range.
func (c *CoreDB) ListPublished(page int) ([]*Post, Pagination, error) {

	count, err := c.CountPublished()
	if err != nil {
		return nil, Pagination{}, err
	}

	var pagination = Paginate(count, PostsPerPage, page)

	posts, err := c.GetPublished(pagination.PerPage, pagination.Offset())
	if err != nil {
		return nil, Pagination{}, err
	}

	return posts, pagination, nil
}

// ViewPost returns a published post and its approved comments.
// It returns ErrNotFound if the post doesn't exist or is not published, regardless of who is asking.
func (c *CoreDB) ViewPost(id int) (*Post, []*Comment, error) {

	post, err := c.GetPost(id)
	if err != nil {
		return nil, nil, err
	}

	if !post.Published {
		return nil, nil, ErrNotFound
	}

	comments, err := c.GetApprovedComments(post.ID)
	if err != nil {
		return nil, nil, err
	}

	return post, comments, nil
}

// CreatePost inserts a new post. The author is always the principal.
// If the form is invalid, form.Errors is returned.
func (c *CoreDB) CreatePost(p auth.Principal, form *PostForm) (*Post, error) {

	if !auth.CanCreate(p) {
		return nil, ErrPermissionDenied
	}

	if !form.Validate() {
		return nil, form.Errors
	}

	var now = time.Now().Unix()
	var post = &Post{
		AuthorID:   p.User.ID(),
		AuthorName: p.User.Name(),
		Title:      form.Title,
		Content:    form.Content,
		Published:  form.Published,
		TsCreated:  now,
		TsUpdated:  now,
	}

	if err := c.InsertPost(post); err != nil {
		return nil, err
	}

	return post, nil
}

// EditPost updates title, content and the published flag. The author is never changed.
// Concurrent edits are not detected, the last one wins.
func (c *CoreDB) EditPost(p auth.Principal, post *Post, form *PostForm) error {

	if !auth.CanEdit(p, post.AuthorID) {
		return ErrPermissionDenied
	}

	if !form.Validate() {
		return form.Errors
	}

	post.Title = form.Title
	post.Content = form.Content
	post.Published = form.Published
	post.TsUpdated = time.Now().Unix()

	return c.UpdatePost(post)
}

// RemovePost deletes a post and its comments.
func (c *CoreDB) RemovePost(p auth.Principal, post *Post) error {
	if !auth.CanDelete(p, post.AuthorID) {
		return ErrPermissionDenied
	}
	return c.DeletePost(post.ID)
}
