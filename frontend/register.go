package frontend

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/wansing/blog/core"
)

var registerTmpl = tmpl(`<h1>Register</h1>
	<form method="post" class="narrow">
		<div class="form-group">
			<label for="username">Username</label>
			<input type="text" class="form-control" id="username" name="username" maxlength="150" value="{{ .Form.Username }}" required autofocus>
			{{ template "errors" .Form.Errors.Get "username" }}
			<small class="form-text">150 characters or fewer. Letters, digits and @/./+/-/_ only.</small>
		</div>
		<div class="form-group">
			<label for="password1">Password</label>
			<input type="password" class="form-control" id="password1" name="password1" required>
			{{ template "errors" .Form.Errors.Get "password1" }}
		</div>
		<div class="form-group">
			<label for="password2">Password confirmation</label>
			<input type="password" class="form-control" id="password2" name="password2" required>
			{{ template "errors" .Form.Errors.Get "password2" }}
		</div>
		<button type="submit" class="btn btn-primary">Register</button>
	</form>`)

type registerData struct {
	*context
	Form *core.RegisterForm
}

func register(w http.ResponseWriter, req *http.Request, ctx *context, params httprouter.Params) error {

	var form = &core.RegisterForm{
		Errors: core.ValidationErrors{},
	}

	if req.Method == http.MethodPost {

		if err := req.ParseForm(); err != nil {
			return err
		}

		form = core.NewRegisterForm(req.PostForm)

		u, err := ctx.db.Register(form)
		switch {
		case err == nil:
			ctx.Success("Account created for %s!", u.Name())
			ctx.Redirect("/login")
			return nil
		case !isValidation(err):
			return err
		}
	}

	return registerTmpl.Execute(w, &registerData{
		context: ctx,
		Form:    form,
	})
}
