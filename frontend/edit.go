package frontend

import (
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/wansing/blog/auth"
	"github.com/wansing/blog/core"
)

func edit(w http.ResponseWriter, req *http.Request, ctx *context, params httprouter.Params) error {

	post, err := getPost(ctx, params)
	if err != nil {
		return err
	}

	if !auth.CanEdit(ctx.Principal, post.AuthorID) {
		ctx.deny(req, msgEditDenied, postURL(post, "/"))
		return nil
	}

	var form = core.PostFormOf(post)

	if req.Method == http.MethodPost {

		if err := req.ParseForm(); err != nil {
			return err
		}

		form = core.NewPostForm(req.PostForm)

		err := ctx.db.EditPost(ctx.Principal, post, form)
		switch {
		case err == nil:
			ctx.Success("Blog post updated successfully!")
			ctx.Redirect("%s", postURL(post, "/edit/"+strconv.Itoa(post.ID)))
			return nil
		case !isValidation(err):
			return err
		}
	}

	return postFormTmpl.Execute(w, &postFormData{
		context: ctx,
		Heading: "Edit Post",
		Form:    form,
	})
}
