package frontend

import (
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/wansing/blog/auth"
	"github.com/wansing/blog/core"
)

var postFormTmpl = tmpl(`<h1>{{ .Heading }}</h1>
	<form method="post">
		<div class="form-group">
			<label for="title">Title</label>
			<input type="text" class="form-control" id="title" name="title" maxlength="200" value="{{ .Form.Title }}" required autofocus>
			{{ template "errors" .Form.Errors.Get "title" }}
		</div>
		<div class="form-group">
			<label for="content">Content</label>
			<textarea class="form-control" id="content" name="content" rows="10" required>{{ .Form.Content }}</textarea>
			{{ template "errors" .Form.Errors.Get "content" }}
			<small class="form-text">Markdown. Everything above <code>&lt;!-- more --&gt;</code> is shown in the list.</small>
		</div>
		<div class="form-check">
			<input type="checkbox" class="form-check-input" id="published" name="published"{{ if .Form.Published }} checked{{ end }}>
			<label class="form-check-label" for="published">Published</label>
		</div>
		<button type="submit" class="btn btn-primary">Save</button>
	</form>`)

type postFormData struct {
	*context
	Heading string
	Form    *core.PostForm
}

func create(w http.ResponseWriter, req *http.Request, ctx *context, params httprouter.Params) error {

	if !auth.CanCreate(ctx.Principal) {
		ctx.deny(req, msgCreateDenied, "/")
		return nil
	}

	var form = &core.PostForm{
		Errors: core.ValidationErrors{},
	}

	if req.Method == http.MethodPost {

		if err := req.ParseForm(); err != nil {
			return err
		}

		form = core.NewPostForm(req.PostForm)

		post, err := ctx.db.CreatePost(ctx.Principal, form)
		switch {
		case err == nil:
			ctx.Success("Blog post created successfully!")
			ctx.Redirect("%s", postURL(post, "/edit/"+strconv.Itoa(post.ID)))
			return nil
		case !isValidation(err):
			return err
		}
	}

	return postFormTmpl.Execute(w, &postFormData{
		context: ctx,
		Heading: "Create New Post",
		Form:    form,
	})
}
