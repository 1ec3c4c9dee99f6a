package frontend

import (
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/wansing/blog/auth"
)

var loginTmpl = tmpl(`<h1>Login</h1>
	{{ if .LoggedIn }}
		<p>You are logged in as {{ .User.Name }}. You can log in as another user.</p>
	{{ end }}
	<form method="post" class="narrow">
		<input type="hidden" name="next" value="{{ .Next }}">
		<div class="form-group">
			<label for="username">Username</label>
			<input type="text" class="form-control" id="username" name="username" value="{{ .Username }}" required autofocus>
		</div>
		<div class="form-group">
			<label for="password">Password</label>
			<input type="password" class="form-control" id="password" name="password" required>
		</div>
		<button type="submit" class="btn btn-primary">Login</button>
	</form>
	<p>No account yet? <a href="register">Register</a></p>`)

type loginData struct {
	*context
	Next     string
	Username string
}

func login(w http.ResponseWriter, req *http.Request, ctx *context, params httprouter.Params) error {

	var next = localPath(req.FormValue("next"))

	var username string

	if req.Method == http.MethodPost {

		username = req.PostFormValue("username")

		err := ctx.Login(username, req.PostFormValue("password"))
		switch {
		case err == nil:
			ctx.Redirect("%s", next)
			return nil
		case errors.Is(err, auth.ErrAuth):
			ctx.Danger(err) // keep POST data for username field
		default:
			return err
		}
	}

	return loginTmpl.Execute(w, &loginData{
		context:  ctx,
		Next:     next,
		Username: username,
	})
}
