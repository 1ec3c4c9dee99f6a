package frontend

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/wansing/blog/auth"
	"github.com/wansing/blog/core"
)

var deleteTmpl = tmpl(`<h1>Delete Post</h1>
	<p>Are you sure you want to delete &raquo;{{ .Post.Title }}&laquo;? Its comments will be deleted, too.</p>
	<form method="post">
		<button type="submit" class="btn btn-danger">Delete</button>
		{{ if .Post.Published }}
			<a class="btn" href="post/{{ .Post.ID }}">Cancel</a>
		{{ else }}
			<a class="btn" href="./">Cancel</a>
		{{ end }}
	</form>`)

type deleteData struct {
	*context
	Post *core.Post
}

func del(w http.ResponseWriter, req *http.Request, ctx *context, params httprouter.Params) error {

	post, err := getPost(ctx, params)
	if err != nil {
		return err
	}

	if !auth.CanDelete(ctx.Principal, post.AuthorID) {
		ctx.deny(req, msgDeleteDenied, postURL(post, "/"))
		return nil
	}

	if req.Method == http.MethodPost {
		if err := ctx.db.RemovePost(ctx.Principal, post); err != nil {
			return err
		}
		ctx.Success("Blog post deleted successfully!")
		ctx.Redirect("/")
		return nil
	}

	return deleteTmpl.Execute(w, &deleteData{
		context: ctx,
		Post:    post,
	})
}
