package backend

import (
	"errors"
	"html/template"
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"
	"github.com/wansing/blog/core"
)

var commentsTmpl = tmpl(`<h1>Comments</h1>

	<form method="get" class="form-inline">
		<select name="approved" class="form-control">
			<option value="">All</option>
			<option value="yes"{{ if eq .Approved "yes" }} selected{{ end }}>Approved</option>
			<option value="no"{{ if eq .Approved "no" }} selected{{ end }}>Unapproved</option>
		</select>
		<input type="search" class="form-control" name="q" value="{{ .Search }}" placeholder="Search content and author">
		<button type="submit" class="btn btn-secondary">Filter</button>
	</form>

	<table class="table">
		<thead>
			<tr>
				<th>Comment</th>
				<th>Post</th>
				<th>Author</th>
				<th>Created</th>
				<th>Approved</th>
				<th></th>
			</tr>
		</thead>
		<tbody>
			{{ range .Comments }}
				<tr>
					<td>{{ .Content }}</td>
					<td>{{ .PostTitle }}</td>
					<td><a href="user/{{ .AuthorID }}">{{ .AuthorName }}</a></td>
					<td>{{ FormatTs .TsCreated }}</td>
					<td>{{ if .Approved }}yes{{ else }}no{{ end }}</td>
					<td>
						<form method="post" action="comment/{{ .ID }}" class="inline">
							<input type="hidden" name="back" value="{{ $.Back }}">
							{{ if .Approved }}
								<button type="submit" class="btn btn-sm btn-secondary" name="action" value="unapprove">Unapprove</button>
							{{ else }}
								<button type="submit" class="btn btn-sm btn-success" name="action" value="approve">Approve</button>
							{{ end }}
							<button type="submit" class="btn btn-sm btn-danger" name="action" value="delete">Delete</button>
						</form>
					</td>
				</tr>
			{{ else }}
				<tr><td colspan="6">No comments found.</td></tr>
			{{ end }}
		</tbody>
	</table>

	{{ template "pagination" .PageLinks }}`)

type commentsData struct {
	*context
	Approved   string
	Back       string // query string of this page
	Comments   []*core.Comment
	Pagination core.Pagination
	Search     string
	query      map[string][]string
}

func (data *commentsData) PageLinks() []template.HTML {
	return pageLinks(data.Pagination, "comments", data.query)
}

func comments(w http.ResponseWriter, req *http.Request, ctx *context, params httprouter.Params) error {

	var query = req.URL.Query()

	var data = &commentsData{
		context:  ctx,
		Approved: query.Get("approved"),
		Back:     query.Encode(),
		Search:   strings.TrimSpace(query.Get("q")),
		query:    query,
	}

	var filter = core.CommentFilter{
		Approved: parseBool(data.Approved),
		Search:   data.Search,
	}

	count, err := ctx.db.CountComments(filter)
	if err != nil {
		return err
	}

	data.Pagination = core.Paginate(count, perPage, core.ParsePage(query.Get("page")))

	data.Comments, err = ctx.db.GetComments(filter, data.Pagination.PerPage, data.Pagination.Offset())
	if err != nil {
		return err
	}

	return commentsTmpl.Execute(w, data)
}

// comment handles the moderation actions.
func comment(w http.ResponseWriter, req *http.Request, ctx *context, params httprouter.Params) error {

	id, err := parseID(params)
	if err != nil {
		return err
	}

	var cm *core.Comment
	switch action := req.PostFormValue("action"); action {
	case "approve":
		cm, err = ctx.db.Approve(ctx.Principal, id, true)
		if err == nil {
			ctx.Success("comment by %s on %s has been approved", cm.AuthorName, cm.PostTitle)
		}
	case "unapprove":
		cm, err = ctx.db.Approve(ctx.Principal, id, false)
		if err == nil {
			ctx.Success("comment by %s on %s has been unapproved", cm.AuthorName, cm.PostTitle)
		}
	case "delete":
		cm, err = ctx.db.RemoveComment(ctx.Principal, id)
		if err == nil {
			ctx.Success("comment by %s on %s has been deleted", cm.AuthorName, cm.PostTitle)
		}
	default:
		err = errors.New("unknown action")
	}
	if err != nil {
		return err
	}

	var back = "/backend/comments"
	if query := req.PostFormValue("back"); query != "" {
		back += "?" + query
	}
	ctx.Redirect("%s", back)
	return nil
}
