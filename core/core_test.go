package core_test

import (
	"database/sql"
	"errors"
	"net/url"
	"path/filepath"
	"testing"

	"github.com/alexedwards/scs/v2/memstore"
	"github.com/wansing/blog/auth"
	"github.com/wansing/blog/core"
	"github.com/wansing/blog/sqldb"
)

func newCoreDB(t *testing.T) *core.CoreDB {
	t.Helper()
	sqlDB, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "core.sqlite3")+"?_busy_timeout=10000&_foreign_keys=1")
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
	return db
}

func principal(t *testing.T, db *core.CoreDB, name string, author, superuser bool) auth.Principal {
	t.Helper()
	u, err := db.InsertUser(name, "secret-password")
	if err != nil {
		t.Fatal(err)
	}
	if err := db.SetAuthor(u, author); err != nil {
		t.Fatal(err)
	}
	if err := db.SetSuperuser(u, superuser); err != nil {
		t.Fatal(err)
	}
	p, err := db.Principal(u)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func postForm(title string, published bool) *core.PostForm {
	var values = url.Values{"title": {title}, "content": {"Content of " + title}}
	if published {
		values.Set("published", "on")
	}
	return core.NewPostForm(values)
}

func TestPrincipalRoles(t *testing.T) {
	db := newCoreDB(t)
	var tests = []struct {
		name              string
		author, superuser bool
		want              auth.Role
	}{
		{"reader", false, false, auth.Reader},
		{"author", true, false, auth.Author},
		{"admin", false, true, auth.Admin},
		{"both", true, true, auth.Admin},
	}
	for _, test := range tests {
		if p := principal(t, db, test.name, test.author, test.superuser); p.Role != test.want {
			t.Errorf("%s: got %s, want %s", test.name, p.Role, test.want)
		}
	}
}

func TestCreatePost(t *testing.T) {
	db := newCoreDB(t)
	reader := principal(t, db, "reader", false, false)
	author := principal(t, db, "author", true, false)

	if _, err := db.CreatePost(auth.Anonymous(), postForm("Anon", true)); !errors.Is(err, core.ErrPermissionDenied) {
		t.Errorf("anonymous: got %v", err)
	}
	if _, err := db.CreatePost(reader, postForm("Reader", true)); !errors.Is(err, core.ErrPermissionDenied) {
		t.Errorf("reader: got %v", err)
	}

	post, err := db.CreatePost(author, postForm("Author", true))
	if err != nil {
		t.Fatal(err)
	}
	if post.AuthorID != author.UserID() || post.TsCreated == 0 || post.TsCreated != post.TsUpdated {
		t.Errorf("got %+v", post)
	}

	_, err = db.CreatePost(author, postForm("", true))
	var verr core.ValidationErrors
	if !errors.As(err, &verr) || len(verr.Get("title")) == 0 {
		t.Errorf("empty title: got %v", err)
	}
}

func TestListAndView(t *testing.T) {
	db := newCoreDB(t)
	author := principal(t, db, "author", true, false)

	posts, pagination, err := db.ListPublished(1)
	if err != nil || len(posts) != 0 || pagination.NumPages != 1 {
		t.Fatalf("empty list: %d posts, %+v, %v", len(posts), pagination, err)
	}

	for i := 0; i < 6; i++ {
		if _, err := db.CreatePost(author, postForm("Published", true)); err != nil {
			t.Fatal(err)
		}
	}
	draft, err := db.CreatePost(author, postForm("Draft", false))
	if err != nil {
		t.Fatal(err)
	}

	posts, pagination, err = db.ListPublished(42)
	if err != nil {
		t.Fatal(err)
	}
	if pagination.Number != 2 || pagination.Count != 6 || len(posts) != 1 {
		t.Errorf("got %d posts, %+v", len(posts), pagination)
	}

	posts, _, _ = db.ListPublished(1)
	if len(posts) != core.PostsPerPage {
		t.Errorf("got %d posts on the first page", len(posts))
	}
	for i := 1; i < len(posts); i++ {
		if posts[i-1].TsCreated < posts[i].TsCreated || (posts[i-1].TsCreated == posts[i].TsCreated && posts[i-1].ID < posts[i].ID) {
			t.Errorf("not newest first")
		}
	}

	if _, _, err := db.ViewPost(draft.ID); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("draft: got %v, want ErrNotFound", err)
	}
	if _, _, err := db.ViewPost(12345); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("missing: got %v, want ErrNotFound", err)
	}
	if post, _, err := db.ViewPost(posts[0].ID); err != nil || post.AuthorName != "author" {
		t.Errorf("published: got %v", err)
	}
}

func TestEditAndRemove(t *testing.T) {
	db := newCoreDB(t)
	owner := principal(t, db, "owner", true, false)
	other := principal(t, db, "other", true, false)
	admin := principal(t, db, "admin", false, true)

	post, err := db.CreatePost(owner, postForm("Original", true))
	if err != nil {
		t.Fatal(err)
	}

	if err := db.EditPost(other, post, postForm("Other", true)); !errors.Is(err, core.ErrPermissionDenied) {
		t.Errorf("other author: got %v", err)
	}
	if err := db.EditPost(admin, post, postForm("Admin", false)); err != nil {
		t.Errorf("superuser: got %v", err)
	}

	stored, err := db.GetPost(post.ID)
	if err != nil {
		t.Fatal(err)
	}
	if stored.Title != "Admin" || stored.Published || stored.AuthorID != owner.UserID() {
		t.Errorf("got %+v", stored)
	}

	if err := db.RemovePost(other, stored); !errors.Is(err, core.ErrPermissionDenied) {
		t.Errorf("other author: got %v", err)
	}
	if err := db.RemovePost(owner, stored); err != nil {
		t.Errorf("owner: got %v", err)
	}
	if _, err := db.GetPost(post.ID); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestComments(t *testing.T) {
	db := newCoreDB(t)
	author := principal(t, db, "author", true, false)
	reader := principal(t, db, "reader", false, false)
	admin := principal(t, db, "admin", false, true)

	post, err := db.CreatePost(author, postForm("Post", true))
	if err != nil {
		t.Fatal(err)
	}
	draft, err := db.CreatePost(author, postForm("Draft", false))
	if err != nil {
		t.Fatal(err)
	}

	var form = func(content string) *core.CommentForm {
		return core.NewCommentForm(url.Values{"content": {content}})
	}

	if _, err := db.SubmitComment(auth.Anonymous(), post, form("x")); !errors.Is(err, core.ErrUnauthenticated) {
		t.Errorf("anonymous: got %v", err)
	}
	if _, err := db.SubmitComment(reader, draft, form("x")); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("draft: got %v", err)
	}
	if _, err := db.SubmitComment(reader, post, form("   ")); err == nil {
		t.Error("empty comment accepted")
	}

	cm, err := db.SubmitComment(reader, post, form("Hello"))
	if err != nil {
		t.Fatal(err)
	}
	if cm.Approved || cm.AuthorID != reader.UserID() {
		t.Errorf("got %+v", cm)
	}

	_, comments, _ := db.ViewPost(post.ID)
	if len(comments) != 0 {
		t.Error("unapproved comment is visible")
	}

	if _, err := db.Approve(author, cm.ID, true); !errors.Is(err, core.ErrPermissionDenied) {
		t.Errorf("author moderating: got %v", err)
	}
	if _, err := db.Approve(admin, cm.ID, true); err != nil {
		t.Fatal(err)
	}

	_, comments, _ = db.ViewPost(post.ID)
	if len(comments) != 1 || comments[0].Content != "Hello" {
		t.Errorf("got %v", comments)
	}

	if _, err := db.RemoveComment(reader, cm.ID); !errors.Is(err, core.ErrPermissionDenied) {
		t.Errorf("reader removing: got %v", err)
	}
	if _, err := db.RemoveComment(admin, cm.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := db.GetComment(cm.ID); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestRegister(t *testing.T) {
	db := newCoreDB(t)

	var form = func(name string) *core.RegisterForm {
		return core.NewRegisterForm(url.Values{
			"username":  {name},
			"password1": {"correct-horse"},
			"password2": {"correct-horse"},
		})
	}

	u, err := db.Register(form("Dave"))
	if err != nil {
		t.Fatal(err)
	}
	if u.Superuser() {
		t.Error("registered user is a superuser")
	}
	if isAuthor, _ := db.IsAuthor(u); isAuthor {
		t.Error("registered user is an author")
	}

	f := form("dave")
	if _, err := db.Register(f); err == nil || len(f.Errors.Get("username")) == 0 {
		t.Errorf("case-insensitive duplicate: got %v", err)
	}
}

func TestGroups(t *testing.T) {
	db := newCoreDB(t)

	authors, err := db.AuthorsGroup()
	if err != nil {
		t.Fatal(err)
	}
	if err := db.DeleteGroup(authors); !errors.Is(err, core.ErrAuthorsGroup) {
		t.Errorf("got %v, want ErrAuthorsGroup", err)
	}
	if _, err := db.InsertGroup("  "); err == nil {
		t.Error("empty group name accepted")
	}

	for _, name := range []string{"zoe", "Adam", "mia"} {
		u, err := db.InsertUser(name, "")
		if err != nil {
			t.Fatal(err)
		}
		if err := db.SetAuthor(u, true); err != nil {
			t.Fatal(err)
		}
	}

	authors, _ = db.AuthorsGroup()
	members, err := db.GroupMembers(authors)
	if err != nil {
		t.Fatal(err)
	}
	if len(members) != 3 || members[0].Name() != "Adam" || members[2].Name() != "zoe" {
		t.Errorf("got %v", members)
	}
}

func TestStats(t *testing.T) {
	db := newCoreDB(t)
	author := principal(t, db, "author", true, false)
	reader := principal(t, db, "reader", false, false)

	post, _ := db.CreatePost(author, postForm("Post", true))
	db.CreatePost(author, postForm("Draft", false))
	db.SubmitComment(reader, post, core.NewCommentForm(url.Values{"content": {"hi"}}))

	stats, err := db.Stats()
	if err != nil {
		t.Fatal(err)
	}
	if *stats != (core.Stats{Published: 1, Drafts: 1, UnapprovedComments: 1, Users: 2}) {
		t.Errorf("got %+v", stats)
	}
}
