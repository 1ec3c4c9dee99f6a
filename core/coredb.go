package core

import (
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/wansing/blog/auth"
)

type CoreDB struct {
	auth.GroupDB
	auth.UserDB
	CommentDB
	PostDB
	SessionManager *scs.SessionManager
}

// Init creates the session manager. The caller may adjust its lifetimes afterwards.
func (c *CoreDB) Init(sessionStore scs.Store, cookiePath string) error {
	c.SessionManager = scs.New()
	c.SessionManager.Store = sessionStore
	c.SessionManager.Cookie.Name = "blog_session"
	c.SessionManager.Cookie.Path = cookiePath + "/"         // 'The default value is "/". Passing the empty string "" will result in it being set to the path that the cookie was issued from.'
	c.SessionManager.Cookie.Persist = false                 // Don't store cookie across browser sessions.
	c.SessionManager.Cookie.SameSite = http.SameSiteLaxMode // good CSRF protection if HTTP GET doesn't modify anything
	c.SessionManager.Cookie.Secure = false                  // else running on localhost or behind a http proxy fails
	c.SessionManager.IdleTimeout = 12 * time.Hour
	c.SessionManager.Lifetime = 720 * time.Hour
	return nil
}

// Stats is shown on the backend dashboard.
type Stats struct {
	Published          int
	Drafts             int
	UnapprovedComments int
	Users              int
}

func (c *CoreDB) Stats() (*Stats, error) {
	var yes, no = true, false
	var stats = &Stats{}
	var err error
	if stats.Published, err = c.CountPosts(PostFilter{Published: &yes}); err != nil {
		return nil, err
	}
	if stats.Drafts, err = c.CountPosts(PostFilter{Published: &no}); err != nil {
		return nil, err
	}
	if stats.UnapprovedComments, err = c.CountComments(CommentFilter{Approved: &no}); err != nil {
		return nil, err
	}
	if stats.Users, err = c.CountUsers(); err != nil {
		return nil, err
	}
	return stats, nil
}
