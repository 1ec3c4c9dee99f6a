package core

import (
	"time"

	"github.com/wansing/blog/auth"
)

type Comment struct {
	ID         int
	PostID     int
	PostTitle  string // read-only
	AuthorID   int
	AuthorName string // read-only
	Content    string
	Approved   bool
	TsCreated  int64
}

// A CommentFilter restricts CountComments and GetComments. The zero value matches all comments.
type CommentFilter struct {
	Approved *bool
	PostID   int
	Search   string // substring of content or author name
}

// CommentDB returns ErrNotFound if a comment does not exist.
type CommentDB interface {
	CountComments(filter CommentFilter) (int, error)
	DeleteComment(id int) error
	GetApprovedComments(postID int) ([]*Comment, error) // oldest first
	GetComment(id int) (*Comment, error)
	GetComments(filter CommentFilter, limit, offset int) ([]*Comment, error) // newest first
	InsertComment(cm *Comment) error                                         // sets cm.ID
	SetApproved(id int, approved bool) error
}

// SubmitComment adds an unapproved comment to a published post.
//
// Anonymous principals get ErrUnauthenticated, which callers are expected to ignore silently.
// If the form is invalid, form.Errors is returned.
func (c *CoreDB) SubmitComment(p auth.Principal, post *Post, form *CommentForm) (*Comment, error) {

	if !auth.CanComment(p) {
		return nil, ErrUnauthenticated
	}

	if !post.Published {
		return nil, ErrNotFound
	}

	if !form.Validate() {
		return nil, form.Errors
	}

	var comment = &Comment{
		PostID:     post.ID,
		PostTitle:  post.Title,
		AuthorID:   p.User.ID(),
		AuthorName: p.User.Name(),
		Content:    form.Content,
		Approved:   false,
		TsCreated:  time.Now().Unix(),
	}

	if err := c.InsertComment(comment); err != nil {
		return nil, err
	}

	return comment, nil
}

// Approve sets the approved flag of a comment. Approved comments are visible below their post.
func (c *CoreDB) Approve(p auth.Principal, commentID int, approved bool) (*Comment, error) {

	if !auth.CanModerate(p) {
		return nil, ErrPermissionDenied
	}

	comment, err := c.GetComment(commentID)
	if err != nil {
		return nil, err
	}

	if err := c.SetApproved(comment.ID, approved); err != nil {
		return nil, err
	}

	comment.Approved = approved
	return comment, nil
}

// RemoveComment deletes a comment.
func (c *CoreDB) RemoveComment(p auth.Principal, commentID int) (*Comment, error) {

	if !auth.CanModerate(p) {
		return nil, ErrPermissionDenied
	}

	comment, err := c.GetComment(commentID)
	if err != nil {
		return nil, err
	}

	return comment, c.DeleteComment(comment.ID)
}
