package backend

import (
	"errors"
	"html/template"
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"
	"github.com/wansing/blog/auth"
	"github.com/wansing/blog/core"
	"github.com/wansing/blog/util"
)

var usersTmpl = tmpl(`<h1>Users</h1>

	<table class="table">
		<thead>
			<tr>
				<th>Name</th>
				<th>Superuser</th>
			</tr>
		</thead>
		<tbody>
			{{ range .Users }}
				<tr>
					<td>{{ UserLink . }}</td>
					<td>{{ if .Superuser }}yes{{ else }}no{{ end }}</td>
				</tr>
			{{ end }}
		</tbody>
	</table>

	{{ template "pagination" .PageLinks }}

	<h2>Create User</h2>

	<form method="post" class="form-inline">
		<div class="form-group">
			<input type="text" class="form-control" name="name" placeholder="Username" maxlength="150" required>
			<input type="password" class="form-control" name="password" placeholder="Password (optional)">
			<button type="submit" class="btn btn-primary mx-sm-3" name="submit_add">Create user</button>
		</div>
	</form>`)

type usersData struct {
	*context
	Pagination core.Pagination
	Users      []auth.DBUser
}

func (data *usersData) PageLinks() []template.HTML {
	return pageLinks(data.Pagination, "users", nil)
}

func users(w http.ResponseWriter, req *http.Request, ctx *context, params httprouter.Params) error {

	if req.Method == http.MethodPost {

		var name = strings.TrimSpace(req.PostFormValue("name"))
		var password = req.PostFormValue("password")

		if msgs := auth.ValidateUsername(name); len(msgs) > 0 {
			ctx.Danger(errors.New(strings.Join(msgs, " ")))
			ctx.Redirect("/backend/users")
			return nil
		}

		var generated = password == ""
		if generated {
			var err error
			if password, err = util.RandomString32(); err != nil {
				return err
			}
		}

		u, err := ctx.db.InsertUser(name, password)
		if errors.Is(err, core.ErrUsernameTaken) {
			ctx.Danger(err)
			ctx.Redirect("/backend/users")
			return nil
		}
		if err != nil {
			return err
		}

		if generated {
			ctx.Success("user %s has been created with the password %s", u.Name(), password)
		} else {
			ctx.Success("user %s has been created", u.Name())
		}
		ctx.Redirect("/backend/user/%d", u.ID())
		return nil
	}

	count, err := ctx.db.CountUsers()
	if err != nil {
		return err
	}

	var data = &usersData{
		context:    ctx,
		Pagination: core.Paginate(count, perPage, core.ParsePage(req.URL.Query().Get("page"))),
	}

	data.Users, err = ctx.db.GetAllUsers(data.Pagination.PerPage, data.Pagination.Offset())
	if err != nil {
		return err
	}

	return usersTmpl.Execute(w, data)
}
