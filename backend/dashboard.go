package backend

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/wansing/blog/core"
)

var dashboardTmpl = tmpl(`<h1>Dashboard</h1>

	<table class="table">
		<tr>
			<td><a href="posts?published=yes">Published posts</a></td>
			<td>{{ .Stats.Published }}</td>
		</tr>
		<tr>
			<td><a href="posts?published=no">Drafts</a></td>
			<td>{{ .Stats.Drafts }}</td>
		</tr>
		<tr>
			<td><a href="comments?approved=no">Unapproved comments</a></td>
			<td>{{ .Stats.UnapprovedComments }}</td>
		</tr>
		<tr>
			<td><a href="users">Users</a></td>
			<td>{{ .Stats.Users }}</td>
		</tr>
	</table>`)

type dashboardData struct {
	*context
	Stats *core.Stats
}

func dashboard(w http.ResponseWriter, req *http.Request, ctx *context, params httprouter.Params) error {

	stats, err := ctx.db.Stats()
	if err != nil {
		return err
	}

	return dashboardTmpl.Execute(w, &dashboardData{
		context: ctx,
		Stats:   stats,
	})
}
