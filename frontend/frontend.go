// Package frontend contains the public pages of the blog.
package frontend

import (
	"errors"
	"html/template"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/julienschmidt/httprouter"
	"github.com/wansing/blog/core"
	"github.com/wansing/blog/render"
)

const (
	msgCreateDenied = "You are not allowed to create posts."
	msgEditDenied   = "You can only edit your own posts."
	msgDeleteDenied = "You can only delete your own posts."
)

type context struct {
	*core.Request
	Prefix    string // with trailing slash
	SiteTitle string
	db        *core.CoreDB
}

// deny redirects anonymous users to the login form, and everyone else to fallback with a notification.
func (ctx *context) deny(req *http.Request, msg string, fallback string) {
	if !ctx.LoggedIn() {
		ctx.Redirect("/login?next=%s", url.QueryEscape(req.URL.RequestURI()))
		return
	}
	ctx.Warning("%s", msg)
	ctx.Redirect("%s", fallback)
}

// postURL returns the detail view of a published post, or fallback.
func postURL(post *core.Post, fallback string) string {
	if post.Published {
		return "/post/" + strconv.Itoa(post.ID)
	}
	return fallback
}

// localPath returns "/" if next is not a local absolute path.
func localPath(next string) string {
	if next == "" || next[0] != '/' || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/"
	}
	return next
}

func isValidation(err error) bool {
	var verr core.ValidationErrors
	return errors.As(err, &verr)
}

func middleware(db *core.CoreDB, prefix, siteTitle string, f func(http.ResponseWriter, *http.Request, *context, httprouter.Params) error) httprouter.Handle {
	return func(w http.ResponseWriter, req *http.Request, params httprouter.Params) {

		var ctx = &context{
			Request:   db.NewRequest(w, req),
			Prefix:    prefix + "/",
			SiteTitle: siteTitle,
			db:        db,
		}
		defer ctx.Cleanup()

		if err := f(w, req, ctx, params); err != nil {
			if errors.Is(err, core.ErrNotFound) {
				w.WriteHeader(http.StatusNotFound)
				notFoundTmpl.Execute(w, ctx)
				return
			}
			log.Printf("%s %s: %v", req.Method, req.URL.Path, err)
			w.WriteHeader(http.StatusInternalServerError)
			errorTmpl.Execute(w, ctx)
		}
	}
}

// Routes adds the frontend handlers to router. The prefix must not have a trailing slash.
func Routes(router *httprouter.Router, db *core.CoreDB, prefix, siteTitle string) {

	var handle = func(f func(http.ResponseWriter, *http.Request, *context, httprouter.Params) error) httprouter.Handle {
		return middleware(db, prefix, siteTitle, f)
	}

	var GETAndPOST = func(path string, h httprouter.Handle) {
		router.GET(path, h)
		router.POST(path, h)
	}

	router.GET("/", handle(list))
	GETAndPOST("/post/:id", handle(detail))
	GETAndPOST("/create", handle(create))
	GETAndPOST("/edit/:id", handle(edit))
	GETAndPOST("/delete/:id", handle(del))
	GETAndPOST("/register", handle(register))
	GETAndPOST("/login", handle(login))
	router.GET("/logout", handle(logout))

	var notFound = handle(func(http.ResponseWriter, *http.Request, *context, httprouter.Params) error {
		return core.ErrNotFound
	})
	router.NotFound = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		notFound(w, req, nil)
	})
}

// parseID returns ErrNotFound if the id is malformed.
func parseID(params httprouter.Params) (int, error) {
	id, err := strconv.Atoi(params.ByName("id"))
	if err != nil {
		return 0, core.ErrNotFound
	}
	return id, nil
}

func getPost(ctx *context, params httprouter.Params) (*core.Post, error) {
	id, err := parseID(params)
	if err != nil {
		return nil, err
	}
	return ctx.db.GetPost(id)
}

var funcs = template.FuncMap{
	"Markdown": render.Markdown,
	"Teaser": func(content string) template.HTML {
		teaser, _ := render.Teaser(content)
		return teaser
	},
	"HasMore": func(content string) bool {
		_, cut := render.Teaser(content)
		return cut
	},
}

func tmpl(text string) *template.Template {
	t := template.Must(frontendTmpl.Clone())
	t = template.Must(t.Parse(`{{ define "content" }}` + text + `{{ end }}`))
	return t
}

var notFoundTmpl = tmpl(`<h1>Not Found</h1>
	<p>The page you requested does not exist.</p>`)

var errorTmpl = tmpl(`<h1>Server Error</h1>
	<p>Something went wrong. Please try again later.</p>`)

var frontendTmpl = template.Must(template.New("frontend").Funcs(funcs).Parse(`<!DOCTYPE html>
<html>
	<head>
		<base href="{{ .Prefix }}">
		<meta charset="utf-8">
		<meta name="viewport" content="width=device-width, initial-scale=1">
		<link rel="stylesheet" type="text/css" href="static/blog.css">
		<title>{{ .SiteTitle }}</title>
	</head>
	<body>

		<nav class="navbar">
			<a class="brand" href="./">{{ .SiteTitle }}</a>
			<ul class="nav">
				{{ if .CanManagePosts }}
					<li><a href="create">New post</a></li>
				{{ end }}
				{{ if .CanModerate }}
					<li><a href="backend/">Admin</a></li>
				{{ end }}
				{{ if .LoggedIn }}
					<li><span class="user">{{ .User.Name }}</span></li>
					<li><a href="logout">Logout</a></li>
				{{ else }}
					<li><a href="login">Login</a></li>
					<li><a href="register">Register</a></li>
				{{ end }}
			</ul>
		</nav>

		<main class="container">
			{{ .RenderNotifications }}
			{{ template "content" . }}
		</main>

	</body>
</html>

{{ define "errors" }}{{ range . }}<div class="invalid-feedback">{{ . }}</div>{{ end }}{{ end }}`))

