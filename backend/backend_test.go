package backend

import (
	"database/sql"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alexedwards/scs/v2/memstore"
	"github.com/julienschmidt/httprouter"
	"github.com/wansing/blog/auth"
	"github.com/wansing/blog/core"
	"github.com/wansing/blog/frontend"
	"github.com/wansing/blog/sqldb"
)

type testEnv struct {
	db  *core.CoreDB
	srv *httptest.Server
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	sqlDB, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "blog.sqlite3")+"?_busy_timeout=10000&_foreign_keys=1")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { sqlDB.Close() })

	if err := sqldb.Migrate(sqlDB, "sqlite3"); err != nil {
		t.Fatal(err)
	}

	var db = &core.CoreDB{}
	if err := db.Init(memstore.New(), ""); err != nil {
		t.Fatal(err)
	}
	sqldb.Wire(db, sqlDB)

	var router = httprouter.New()
	frontend.Routes(router, db, "", "Test Blog")
	Routes(router, db, "")

	var srv = httptest.NewServer(db.SessionManager.LoadAndSave(router))
	t.Cleanup(srv.Close)

	return &testEnv{db: db, srv: srv}
}

func (env *testEnv) user(t *testing.T, name string, superuser bool) auth.DBUser {
	t.Helper()
	u, err := env.db.InsertUser(name, "secret-password")
	if err != nil {
		t.Fatal(err)
	}
	if err := env.db.SetSuperuser(u, superuser); err != nil {
		t.Fatal(err)
	}
	return u
}

func (env *testEnv) client(t *testing.T, name string) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatal(err)
	}
	c := &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	if name != "" {
		if status, _, _ := env.do(t, c, http.MethodPost, "/login", url.Values{"username": {name}, "password": {"secret-password"}}); status != http.StatusFound {
			t.Fatalf("login of %s: got status %d", name, status)
		}
	}
	return c
}

func (env *testEnv) do(t *testing.T, c *http.Client, method, path string, form url.Values) (int, string, string) {
	t.Helper()
	var resp *http.Response
	var err error
	if method == http.MethodPost {
		resp, err = c.PostForm(env.srv.URL+path, form)
	} else {
		resp, err = c.Get(env.srv.URL + path)
	}
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp.StatusCode, resp.Header.Get("Location"), string(body)
}

func TestAccess(t *testing.T) {
	env := newTestEnv(t)
	env.user(t, "reader", false)
	env.user(t, "admin", true)

	for _, name := range []string{"", "reader"} {
		status, location, _ := env.do(t, env.client(t, name), http.MethodGet, "/backend/", nil)
		if status != http.StatusFound || location != "/login?next=%2Fbackend%2F" {
			t.Errorf("%q: got %d %q", name, status, location)
		}
	}

	status, _, body := env.do(t, env.client(t, "admin"), http.MethodGet, "/backend/", nil)
	if status != http.StatusOK || !strings.Contains(body, "Dashboard") {
		t.Errorf("superuser: got %d", status)
	}
}

func TestModeration(t *testing.T) {
	env := newTestEnv(t)
	admin := env.user(t, "admin", true)

	var post = &core.Post{AuthorID: admin.ID(), Title: "Post", Content: "content", Published: true, TsCreated: 1, TsUpdated: 1}
	if err := env.db.InsertPost(post); err != nil {
		t.Fatal(err)
	}
	var cm = &core.Comment{PostID: post.ID, AuthorID: admin.ID(), Content: "pending comment", TsCreated: 2}
	if err := env.db.InsertComment(cm); err != nil {
		t.Fatal(err)
	}

	c := env.client(t, "admin")

	status, _, body := env.do(t, c, http.MethodGet, "/backend/comments?approved=no", nil)
	if status != http.StatusOK || !strings.Contains(body, "pending comment") {
		t.Fatalf("got %d", status)
	}

	status, location, _ := env.do(t, c, http.MethodPost, fmt.Sprintf("/backend/comment/%d", cm.ID), url.Values{"action": {"approve"}, "back": {"approved=no"}})
	if status != http.StatusFound || location != "/backend/comments?approved=no" {
		t.Fatalf("approve: got %d %q", status, location)
	}

	approved, err := env.db.GetApprovedComments(post.ID)
	if err != nil || len(approved) != 1 {
		t.Fatalf("got %d approved comments, %v", len(approved), err)
	}

	_, _, body = env.do(t, c, http.MethodGet, fmt.Sprintf("/post/%d", post.ID), nil)
	if !strings.Contains(body, "pending comment") {
		t.Error("approved comment is not shown")
	}

	status, _, _ = env.do(t, c, http.MethodPost, fmt.Sprintf("/backend/comment/%d", cm.ID), url.Values{"action": {"delete"}})
	if status != http.StatusFound {
		t.Fatalf("delete: got %d", status)
	}
	if _, err := env.db.GetComment(cm.ID); err == nil {
		t.Error("comment still exists")
	}

	status, _, _ = env.do(t, c, http.MethodPost, fmt.Sprintf("/backend/comment/%d", cm.ID), url.Values{"action": {"approve"}})
	if status != http.StatusNotFound {
		t.Errorf("missing comment: got %d, want 404", status)
	}
}

func TestPosts(t *testing.T) {
	env := newTestEnv(t)
	admin := env.user(t, "admin", true)

	for i, title := range []string{"Alpha", "Beta"} {
		var post = &core.Post{AuthorID: admin.ID(), Title: title, Content: "**Body** of " + title, Published: i == 0, TsCreated: int64(i), TsUpdated: int64(i)}
		if err := env.db.InsertPost(post); err != nil {
			t.Fatal(err)
		}
	}

	c := env.client(t, "admin")

	_, _, body := env.do(t, c, http.MethodGet, "/backend/posts?published=no", nil)
	if !strings.Contains(body, "Beta") || strings.Contains(body, "Alpha") {
		t.Error("published filter")
	}

	_, _, body = env.do(t, c, http.MethodGet, "/backend/posts?q=alph", nil)
	if !strings.Contains(body, "Alpha") || strings.Contains(body, "Beta") {
		t.Error("search")
	}
	if !strings.Contains(body, "Body of Alpha") {
		t.Error("excerpt")
	}

	_, _, body = env.do(t, c, http.MethodGet, "/backend/", nil)
	if !strings.Contains(body, "<td>1</td>") {
		t.Error("stats")
	}
}

func TestUsersAndGroups(t *testing.T) {
	env := newTestEnv(t)
	admin := env.user(t, "admin", true)
	c := env.client(t, "admin")

	status, location, _ := env.do(t, c, http.MethodPost, "/backend/users", url.Values{"name": {"writer"}})
	if status != http.StatusFound || !strings.HasPrefix(location, "/backend/user/") {
		t.Fatalf("create user: got %d %q", status, location)
	}

	writer, err := env.db.GetUserByName("writer")
	if err != nil {
		t.Fatal(err)
	}

	if status, _, _ := env.do(t, c, http.MethodPost, location, url.Values{"author": {"yes"}}); status != http.StatusFound {
		t.Fatalf("make author: got %d", status)
	}
	if isAuthor, err := env.db.IsAuthor(writer); err != nil || !isAuthor {
		t.Fatalf("writer is no author: %v", err)
	}
	p, err := env.db.Principal(writer)
	if err != nil || p.Role != auth.Author {
		t.Fatalf("got role %s, %v", p.Role, err)
	}

	env.do(t, c, http.MethodPost, location, url.Values{"set_password": {"yes"}, "new1": {"new-secret-1"}, "new2": {"new-secret-1"}})
	if _, err := env.db.LoginUser("writer", "new-secret-1"); err != nil {
		t.Fatalf("login with new password: %v", err)
	}

	env.do(t, c, http.MethodPost, fmt.Sprintf("/backend/user/%d", admin.ID()), url.Values{"superuser": {"no"}})
	if u, _ := env.db.GetUser(admin.ID()); !u.Superuser() {
		t.Fatal("superuser revoked their own status")
	}

	status, location, _ = env.do(t, c, http.MethodPost, "/backend/groups", url.Values{"group_name": {"Friends"}})
	if status != http.StatusFound || !strings.HasPrefix(location, "/backend/group/") {
		t.Fatalf("create group: got %d %q", status, location)
	}

	env.do(t, c, http.MethodPost, location, url.Values{"user_name": {"writer"}})
	_, _, body := env.do(t, c, http.MethodGet, location, nil)
	if !strings.Contains(body, "writer") {
		t.Error("member not listed")
	}

	env.do(t, c, http.MethodPost, location, url.Values{"delete": {"yes"}})
	if _, err := env.db.GetGroupByName("Friends"); err == nil {
		t.Error("group still exists")
	}

	authors, err := env.db.AuthorsGroup()
	if err != nil {
		t.Fatal(err)
	}
	env.do(t, c, http.MethodPost, fmt.Sprintf("/backend/group/%d", authors.ID()), url.Values{"delete": {"yes"}})
	if _, err := env.db.AuthorsGroup(); err != nil {
		t.Errorf("authors group has been deleted: %v", err)
	}
}
