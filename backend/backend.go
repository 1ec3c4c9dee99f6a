// Package backend is the administrative console. It is restricted to superusers.
package backend

import (
	"errors"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/wansing/blog/auth"
	"github.com/wansing/blog/core"
	"github.com/wansing/blog/render"
)

const perPage = 20

// we need the CoreDB in the backend
type context struct {
	*core.Request
	Prefix string // backend, with trailing slash
	Root   string // frontend, with trailing slash
	db     *core.CoreDB
}

func middleware(db *core.CoreDB, prefix string, f func(http.ResponseWriter, *http.Request, *context, httprouter.Params) error) httprouter.Handle {
	return func(w http.ResponseWriter, req *http.Request, params httprouter.Params) {

		// similar to the frontend middleware

		var ctx = &context{
			Request: db.NewRequest(w, req),
			Prefix:  prefix + "/backend/",
			Root:    prefix + "/",
			db:      db,
		}
		defer ctx.Cleanup()

		if !auth.CanModerate(ctx.Principal) {
			if ctx.LoggedIn() {
				ctx.Warning("You are logged in as %s, but the admin console requires a superuser.", ctx.User.Name())
			}
			ctx.Redirect("/login?next=%s", url.QueryEscape(req.URL.RequestURI()))
			return
		}

		if err := f(w, req, ctx, params); err != nil {
			var status = http.StatusInternalServerError
			if errors.Is(err, core.ErrNotFound) {
				status = http.StatusNotFound
			} else {
				log.Printf("%s %s: %v", req.Method, req.URL.Path, err)
			}
			// probably no template has been executed, so execute error template
			w.WriteHeader(status)
			errorTmpl.Execute(w, struct {
				*context
				Err error
			}{
				context: ctx,
				Err:     err,
			})
		}
	}
}

var errorTmpl = tmpl(`
	<div class="alert alert-danger" role="alert">
		{{ .Err }}
	</div>`)

// Routes adds the backend handlers below /backend/ to router. The prefix must not have a trailing slash.
func Routes(router *httprouter.Router, db *core.CoreDB, prefix string) {

	var GETAndPOST = func(path string, handle httprouter.Handle) {
		router.GET(path, handle)
		router.POST(path, handle)
	}

	router.GET("/backend/", middleware(db, prefix, dashboard))
	router.GET("/backend/comments", middleware(db, prefix, comments))
	router.POST("/backend/comment/:id", middleware(db, prefix, comment))
	GETAndPOST("/backend/groups", middleware(db, prefix, groups))
	GETAndPOST("/backend/group/:id", middleware(db, prefix, group))
	router.GET("/backend/posts", middleware(db, prefix, posts))
	GETAndPOST("/backend/users", middleware(db, prefix, users))
	GETAndPOST("/backend/user/:id", middleware(db, prefix, user))
}

// parseID returns ErrNotFound if the id is malformed.
func parseID(params httprouter.Params) (int, error) {
	id, err := strconv.Atoi(params.ByName("id"))
	if err != nil {
		return 0, core.ErrNotFound
	}
	return id, nil
}

// pageLinks keeps the other query parameters.
func pageLinks(p core.Pagination, path string, query url.Values) []template.HTML {
	return p.Links(func(page int) string {
		var q = url.Values{}
		for key, values := range query {
			q[key] = values
		}
		q.Set("page", strconv.Itoa(page))
		return path + "?" + q.Encode()
	})
}

func tmpl(text string) *template.Template {
	t := template.Must(backendTmpl.Clone())
	t = template.Must(t.Parse(`{{ define "content" }}` + text + `{{ end }}`))
	return t
}

var backendTmpl = template.Must(template.New("backend").Funcs(
	template.FuncMap{
		"Excerpt": func(content string) string {
			return render.Excerpt(content, 120)
		},
		"FormatTs": FormatTs,
		"GroupLink": func(group auth.DBGroup) template.HTML {
			return template.HTML(fmt.Sprintf(`<a href="group/%d">%s</a>`, group.ID(), template.HTMLEscapeString(group.Name())))
		},
		"UserLink": func(user auth.DBUser) template.HTML {
			return template.HTML(fmt.Sprintf(`<a href="user/%d">%s</a>`, user.ID(), template.HTMLEscapeString(user.Name())))
		},
	},
).Parse(`<!DOCTYPE html>
<html>
	<head>
		<base href="{{ .Prefix }}">
		<link rel="stylesheet" type="text/css" href="{{ .Root }}static/blog.css">
		<meta charset="utf-8">
		<title>Admin</title>

		<style>

			/* bootstrap enhancements */

			.alert-inline {
				display: inline-block;
				border: 1px solid transparent;
				border-radius: .2rem;
				padding: .15rem .3rem;
			}

			.bg-light, .table-light, .table-light > td, .table-light > th {
				background-color: #f4f5f6 !important;
			}

			/* html tags */

			body {
				padding-bottom: 1rem;
			}

			h1 {
				font-size: 1.5rem !important;
				margin: 1rem 0 0.7rem !important;
			}

			h2 {
				font-size: 1.3rem !important;
				margin: 0.2rem 0 0.5rem !important;
			}

			table {
				margin-top: 0.5rem;
				border-bottom: 1px solid #dee2e6;
			}

			form.inline {
				display: inline;
			}

		</style>
	</head>
	<body>

		<nav class="navbar bg-light">
			<ul class="nav">
				<li><a href="{{ .Root }}" target="_blank">View site</a></li>
				<li><a href="./">Dashboard</a></li>
				<li><a href="posts">Posts</a></li>
				<li><a href="comments">Comments</a></li>
				<li><a href="users">Users</a></li>
				<li><a href="groups">Groups</a></li>
				<li><a href="user/{{ .User.ID }}">{{ .User.Name }}</a></li>
				<li><a href="{{ .Root }}logout">Logout</a></li>
			</ul>
		</nav>

		<div class="container">
			{{ .RenderNotifications }}
			{{ template "content" . }}
		</div>

	</body>
</html>

{{ define "pagination" }}
	{{ with . }}
		<nav class="pagination">
			{{ range . }}{{ . }}{{ end }}
		</nav>
	{{ end }}
{{ end }}`))
