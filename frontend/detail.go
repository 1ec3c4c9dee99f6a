package frontend

import (
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/wansing/blog/core"
)

var detailTmpl = tmpl(`
	<article class="post">
		<h1>{{ .Post.Title }}</h1>
		<p class="meta">by {{ .Post.AuthorName }} on {{ .FormatDateTime .Post.TsCreated }}</p>
		{{ Markdown .Post.Content }}
		{{ if or (.CanEdit .Post) (.CanDelete .Post) }}
			<p class="actions">
				{{ if .CanEdit .Post }}<a href="edit/{{ .Post.ID }}">Edit</a>{{ end }}
				{{ if .CanDelete .Post }}<a href="delete/{{ .Post.ID }}">Delete</a>{{ end }}
			</p>
		{{ end }}
	</article>

	<section class="comments">
		<h2>Comments</h2>
		{{ range .Comments }}
			<div class="comment">
				<p class="meta">{{ .AuthorName }} on {{ $.FormatDateTime .TsCreated }}</p>
				<p>{{ .Content }}</p>
			</div>
		{{ else }}
			<p>No comments yet.</p>
		{{ end }}

		{{ if .CanComment }}
			<form method="post">
				<div class="form-group">
					<textarea class="form-control" name="content" rows="3" placeholder="Add your comment...">{{ .Form.Content }}</textarea>
					{{ template "errors" .Form.Errors.Get "content" }}
				</div>
				<button type="submit" class="btn btn-primary">Submit comment</button>
			</form>
		{{ else }}
			<p><a href="login?next=/post/{{ .Post.ID }}">Log in</a> to leave a comment.</p>
		{{ end }}
	</section>`)

type detailData struct {
	*context
	Post     *core.Post
	Comments []*core.Comment
	Form     *core.CommentForm
}

func detail(w http.ResponseWriter, req *http.Request, ctx *context, params httprouter.Params) error {

	id, err := parseID(params)
	if err != nil {
		return err
	}

	post, comments, err := ctx.db.ViewPost(id)
	if err != nil {
		return err
	}

	var form = &core.CommentForm{
		Errors: core.ValidationErrors{},
	}

	if req.Method == http.MethodPost {

		if err := req.ParseForm(); err != nil {
			return err
		}

		var submitted = core.NewCommentForm(req.PostForm)

		_, err := ctx.db.SubmitComment(ctx.Principal, post, submitted)
		switch {
		case err == nil:
			ctx.Success("Your comment has been added! It will be visible after approval.")
			ctx.Redirect("/post/%d", post.ID)
			return nil
		case errors.Is(err, core.ErrUnauthenticated):
			// anonymous comments are dropped silently
		case isValidation(err):
			form = submitted
		default:
			return err
		}
	}

	return detailTmpl.Execute(w, &detailData{
		context:  ctx,
		Post:     post,
		Comments: comments,
		Form:     form,
	})
}
