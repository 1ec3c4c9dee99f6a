package frontend

import (
	"html/template"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/wansing/blog/core"
)

var listTmpl = tmpl(`
	{{ range .Posts }}
		<article class="post">
			<h2><a href="post/{{ .ID }}">{{ .Title }}</a></h2>
			<p class="meta">by {{ .AuthorName }} on {{ $.FormatDateTime .TsCreated }}</p>
			{{ Teaser .Content }}
			{{ if HasMore .Content }}
				<p><a href="post/{{ .ID }}">Read more</a></p>
			{{ end }}
		</article>
	{{ else }}
		<p>No posts yet.</p>
	{{ end }}

	{{ with .PageLinks }}
		<nav class="pagination">
			{{ range . }}{{ . }}{{ end }}
		</nav>
	{{ end }}
	<p class="page-number">Page {{ .Pagination.Number }} of {{ .Pagination.NumPages }}</p>`)

type listData struct {
	*context
	Posts      []*core.Post
	Pagination core.Pagination
}

func (data *listData) PageLinks() []template.HTML {
	return data.Pagination.Links(func(page int) string {
		return "./?page=" + strconv.Itoa(page)
	})
}

func list(w http.ResponseWriter, req *http.Request, ctx *context, params httprouter.Params) error {

	posts, pagination, err := ctx.db.ListPublished(core.ParsePage(req.URL.Query().Get("page")))
	if err != nil {
		return err
	}

	return listTmpl.Execute(w, &listData{
		context:    ctx,
		Posts:      posts,
		Pagination: pagination,
	})
}
