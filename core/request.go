package core

import (
	"encoding/gob"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/wansing/blog/auth"
	"golang.org/x/text/language"
)

type Notification struct {
	Message string
	Style   string
}

func init() {
	gob.Register([]Notification{}) // required for storing Notifications in a session
}

var langMatcher = language.NewMatcher([]language.Tag{
	language.AmericanEnglish, // default
	language.German,
})

var monthNamesDe = strings.NewReplacer(
	"January", "Januar",
	"February", "Februar",
	"March", "März",
	"May", "Mai",
	"June", "Juni",
	"July", "Juli",
	"October", "Oktober",
	"December", "Dezember",
)

// A Request is created by CoreDB.NewRequest. It holds the principal, which is resolved once per request.
type Request struct {
	auth.Principal
	db *CoreDB // unexported, so it can't be accessed in templates

	// http
	writer  http.ResponseWriter
	request *http.Request

	statusWritten bool

	// caching
	language language.Tag
}

// NewRequest creates a Request with the given http.ResponseWriter and http.Request.
// If a user is logged in, it resolves the role of the user.
func (c *CoreDB) NewRequest(w http.ResponseWriter, httpreq *http.Request) *Request {

	var req = &Request{
		Principal: auth.Anonymous(),
		db:        c,
		writer:    w,
		request:   httpreq,
	}

	req.language, _ = language.MatchStrings(langMatcher, httpreq.Header.Get("Accept-Language"))

	if uid := c.SessionManager.GetInt(httpreq.Context(), "uid"); uid != 0 {
		u, err := c.GetUser(uid)
		if err != nil {
			// user has been deleted or the database failed, continue anonymously
			log.Printf("session of user %d: %v", uid, err)
			return req
		}
		principal, err := c.Principal(u)
		if err != nil {
			log.Printf("resolving role of user %d: %v", uid, err)
			return req
		}
		req.Principal = principal
	}

	return req
}

// Danger adds a "danger" notification to the session.
func (req *Request) Danger(err error) {
	req.addNotification(err.Error(), "danger")
}

// Success adds a "success" notification to the session.
func (req *Request) Success(format string, args ...interface{}) {
	req.addNotification(fmt.Sprintf(format, args...), "success")
}

// Warning adds a "warning" notification to the session.
func (req *Request) Warning(format string, args ...interface{}) {
	req.addNotification(fmt.Sprintf(format, args...), "warning")
}

// Info adds an "info" notification to the session.
func (req *Request) Info(format string, args ...interface{}) {
	req.addNotification(fmt.Sprintf(format, args...), "info")
}

// style should be a bootstrap alert style without the leading "alert-"
func (req *Request) addNotification(message, style string) {
	notifications, _ := req.db.SessionManager.Get(req.request.Context(), "notifications").([]Notification)
	notifications = append(notifications, Notification{message, style})
	req.db.SessionManager.Put(req.request.Context(), "notifications", notifications)
}

// RenderNotifications removes all notifications from the session
// and renders them into an HTML string.
// If the HTTP status had already been written, it does nothing.
func (req *Request) RenderNotifications() template.HTML {
	var r strings.Builder
	if !req.statusWritten {
		notifications, _ := req.db.SessionManager.Pop(req.request.Context(), "notifications").([]Notification)
		for _, n := range notifications {
			r.WriteString(`<div class="alert alert-` + n.Style + `" role="alert">` + template.HTMLEscapeString(n.Message) + `</div>`)
		}
	}
	return template.HTML(r.String())
}

// Cleanup destroys the session (which means re-setting the cookie with zero lifetime) if the session has been modified and is empty now.
func (req *Request) Cleanup() {
	sessMan := req.db.SessionManager
	if sessMan.Status(req.request.Context()) == scs.Modified && len(sessMan.Keys(req.request.Context())) == 0 {
		_ = sessMan.Destroy(req.request.Context())
	}
}

// Redirect sends a "302 Found" redirect to an URL.
func (req *Request) Redirect(format string, args ...interface{}) {
	if req.statusWritten {
		return
	}
	var url = fmt.Sprintf(format, args...)
	http.Redirect(req.writer, req.request, url, http.StatusFound)
	req.statusWritten = true
}

// Login tries to log in a user. On success, the session token is renewed and the user id is stored in the session.
// A user who is already logged in is replaced.
func (req *Request) Login(name string, enteredPass string) error {
	u, err := req.db.LoginUser(name, enteredPass)
	if err != nil {
		return err // is auth.ErrAuth if name or enteredPass is wrong
	}
	principal, err := req.db.Principal(u)
	if err != nil {
		return err
	}
	if err := req.db.SessionManager.RenewToken(req.request.Context()); err != nil {
		return err
	}
	req.Principal = principal
	req.db.SessionManager.Put(req.request.Context(), "uid", u.ID())
	req.Success("Welcome %s!", u.Name())
	return nil
}

func (req *Request) LoggedIn() bool {
	return req.Authenticated()
}

// Logout removes the user id from the session and calls req.Cleanup().
func (req *Request) Logout() {
	if req.LoggedIn() {
		req.db.SessionManager.Remove(req.request.Context(), "uid")
		req.Principal = auth.Anonymous()
	}
	req.Cleanup()
}

// Permission helpers for templates.

func (req *Request) CanManagePosts() bool {
	return auth.CanManagePosts(req.Principal)
}

func (req *Request) CanEdit(p *Post) bool {
	return auth.CanEdit(req.Principal, p.AuthorID)
}

func (req *Request) CanDelete(p *Post) bool {
	return auth.CanDelete(req.Principal, p.AuthorID)
}

func (req *Request) CanComment() bool {
	return auth.CanComment(req.Principal)
}

func (req *Request) CanModerate() bool {
	return auth.CanModerate(req.Principal)
}

func (req *Request) FormatDateTime(ts int64) string {
	b, _ := req.language.Base()
	switch b.String() {
	case "de":
		return monthNamesDe.Replace(time.Unix(ts, 0).Format("2. January 2006 15:04 Uhr"))
	default:
		return time.Unix(ts, 0).Format("January 2, 2006 3:04 PM")
	}
}
