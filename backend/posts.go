package backend

import (
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"github.com/julienschmidt/httprouter"
	"github.com/wansing/blog/auth"
	"github.com/wansing/blog/core"
)

var postsTmpl = tmpl(`<h1>Posts</h1>

	<form method="get" class="form-inline">
		<select name="published" class="form-control">
			<option value="">All</option>
			<option value="yes"{{ if eq .Published "yes" }} selected{{ end }}>Published</option>
			<option value="no"{{ if eq .Published "no" }} selected{{ end }}>Drafts</option>
		</select>
		<select name="author" class="form-control">
			<option value="">All authors</option>
			{{ range .Authors }}
				<option value="{{ .ID }}"{{ if eq .ID $.AuthorID }} selected{{ end }}>{{ .Name }}</option>
			{{ end }}
		</select>
		<input type="search" class="form-control" name="q" value="{{ .Search }}" placeholder="Search title and content">
		<button type="submit" class="btn btn-secondary">Filter</button>
	</form>

	<table class="table">
		<thead>
			<tr>
				<th>Title</th>
				<th>Author</th>
				<th>Created</th>
				<th>Published</th>
				<th></th>
			</tr>
		</thead>
		<tbody>
			{{ range .Posts }}
				<tr>
					<td>
						{{ if .Published }}
							<a href="{{ $.Root }}post/{{ .ID }}" target="_blank">{{ .Title }}</a>
						{{ else }}
							{{ .Title }}
						{{ end }}
						<div class="text-muted">{{ Excerpt .Content }}</div>
					</td>
					<td><a href="user/{{ .AuthorID }}">{{ .AuthorName }}</a></td>
					<td>{{ FormatTs .TsCreated }}</td>
					<td>{{ if .Published }}yes{{ else }}no{{ end }}</td>
					<td>
						<a href="{{ $.Root }}edit/{{ .ID }}">Edit</a>
						<a href="{{ $.Root }}delete/{{ .ID }}">Delete</a>
					</td>
				</tr>
			{{ else }}
				<tr><td colspan="5">No posts found.</td></tr>
			{{ end }}
		</tbody>
	</table>

	{{ template "pagination" .PageLinks }}`)

type postsData struct {
	*context
	Authors    []auth.DBUser
	AuthorID   int
	Pagination core.Pagination
	Posts      []*core.Post
	Published  string
	Search     string
	query      map[string][]string
}

func (data *postsData) PageLinks() []template.HTML {
	return pageLinks(data.Pagination, "posts", data.query)
}

func posts(w http.ResponseWriter, req *http.Request, ctx *context, params httprouter.Params) error {

	var query = req.URL.Query()

	var data = &postsData{
		context:   ctx,
		Published: query.Get("published"),
		Search:    strings.TrimSpace(query.Get("q")),
		query:     query,
	}
	data.AuthorID, _ = strconv.Atoi(query.Get("author"))

	var filter = core.PostFilter{
		Published: parseBool(data.Published),
		AuthorID:  data.AuthorID,
		Search:    data.Search,
	}

	count, err := ctx.db.CountPosts(filter)
	if err != nil {
		return err
	}

	data.Pagination = core.Paginate(count, perPage, core.ParsePage(query.Get("page")))

	data.Posts, err = ctx.db.GetPosts(filter, data.Pagination.PerPage, data.Pagination.Offset())
	if err != nil {
		return err
	}

	data.Authors, err = ctx.db.GetAllUsers(10000, 0) // assuming there are not more than 10k users
	if err != nil {
		return err
	}

	return postsTmpl.Execute(w, data)
}
