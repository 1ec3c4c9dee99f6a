package backend

import (
	"errors"
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"
	"github.com/wansing/blog/auth"
)

var userTmpl = tmpl(`<h1>User &raquo;{{ .Selected.Name }}&laquo;</h1>

	<h2>Roles</h2>

	<form method="post">
		<p>
			{{ if .Selected.Superuser }}
				Superuser.
				<button type="submit" class="btn btn-sm btn-secondary" name="superuser" value="no">Revoke superuser status</button>
			{{ else }}
				Not a superuser.
				<button type="submit" class="btn btn-sm btn-secondary" name="superuser" value="yes">Make superuser</button>
			{{ end }}
		</p>
		<p>
			{{ if .IsAuthor }}
				Member of the authors group.
				<button type="submit" class="btn btn-sm btn-secondary" name="author" value="no">Remove from authors</button>
			{{ else }}
				Not an author.
				<button type="submit" class="btn btn-sm btn-secondary" name="author" value="yes">Add to authors</button>
			{{ end }}
		</p>
	</form>

	<h2>Groups</h2>

	<ul>
		{{ range .Groups }}
			<li>{{ GroupLink . }}</li>
		{{ else }}
			<li>No groups.</li>
		{{ end }}
	</ul>

	<h2>Set Password</h2>

	<form method="post">

		<div class="form-group row">
			<label class="col-sm-6 col-form-label">New password</label>
			<div class="col-sm-6">
				<input type="password" class="form-control" name="new1">
			</div>
		</div>

		<div class="form-group row">
			<label class="col-sm-6 col-form-label">Repeat new password</label>
			<div class="col-sm-6">
				<input type="password" class="form-control" name="new2">
			</div>
		</div>

		<button type="submit" class="btn btn-primary" name="set_password" value="yes">Set password</button>

	</form>`)

type userData struct {
	*context
	Selected auth.DBUser
}

func (data *userData) Groups() ([]auth.DBGroup, error) {
	return data.db.GetGroupsOf(data.Selected)
}

func (data *userData) IsAuthor() (bool, error) {
	return data.db.IsAuthor(data.Selected)
}

func user(w http.ResponseWriter, req *http.Request, ctx *context, params httprouter.Params) error {

	selectedID, err := parseID(params)
	if err != nil {
		return err
	}

	selected, err := ctx.db.GetUser(selectedID)
	if err != nil {
		return err
	}

	if req.Method == http.MethodPost {

		switch {
		case req.PostFormValue("superuser") != "":
			var superuser = req.PostFormValue("superuser") == "yes"
			if !superuser && selected.ID() == ctx.UserID() {
				ctx.Danger(errors.New("you can't revoke your own superuser status"))
				break
			}
			if err := ctx.db.SetSuperuser(selected, superuser); err != nil {
				return err
			}
			ctx.Success("superuser status of %s has been changed", selected.Name())

		case req.PostFormValue("author") != "":
			if err := ctx.db.SetAuthor(selected, req.PostFormValue("author") == "yes"); err != nil {
				return err
			}
			ctx.Success("author status of %s has been changed", selected.Name())

		case req.PostFormValue("set_password") != "":
			var new1 = req.PostFormValue("new1")
			var new2 = req.PostFormValue("new2")
			if new1 != new2 {
				ctx.Danger(errors.New("new passwords don't match"))
				break
			}
			if msgs := auth.ValidatePassword(new1, selected.Name()); len(msgs) > 0 {
				ctx.Danger(errors.New(strings.Join(msgs, " ")))
				break
			}
			if err := ctx.db.SetPassword(selected, new1); err != nil {
				return err
			}
			ctx.Success("password of %s has been changed", selected.Name())
		}

		ctx.Redirect("/backend/user/%d", selected.ID())
		return nil
	}

	return userTmpl.Execute(w, &userData{
		context:  ctx,
		Selected: selected,
	})
}
