package backend

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/wansing/blog/auth"
	"github.com/wansing/blog/core"
)

var groupTmpl = tmpl(`<h1>Group &raquo;{{ .Selected.Name }}&laquo;</h1>

	{{ if .IsAuthorsGroup }}
		<p>Members of this group can write posts and edit their own posts.</p>
	{{ end }}

	<h2>Members</h2>

	<ul>
		{{ range .Members }}
			<li>
				{{ UserLink . }}
				<form method="post" class="inline">
					<button type="submit" class="btn btn-sm btn-secondary" name="remove_user" value="{{ .ID }}">Remove</button>
				</form>
			</li>
		{{ else }}
			<li>No members.</li>
		{{ end }}
	</ul>

	<h2>Add member</h2>

	<form method="post" class="form-inline">
		<div class="form-group">
			<input type="text" class="form-control" name="user_name" placeholder="Username">
			<button type="submit" class="btn btn-primary mx-sm-3" name="submit_add">Add user to group</button>
		</div>
	</form>

	{{ if not .IsAuthorsGroup }}
		<h2>Delete group</h2>
		<form method="post">
			<button type="submit" class="btn btn-danger" name="delete" value="yes">Delete group</button>
		</form>
	{{ end }}`)

type groupData struct {
	*context
	Selected auth.DBGroup
}

func (data *groupData) IsAuthorsGroup() bool {
	return auth.IsAuthorsGroup(data.Selected)
}

func (data *groupData) Members() ([]auth.DBUser, error) {
	return data.db.GroupMembers(data.Selected)
}

func group(w http.ResponseWriter, req *http.Request, ctx *context, params httprouter.Params) error {

	selectedID, err := parseID(params)
	if err != nil {
		return err
	}

	selected, err := ctx.db.GetGroup(selectedID)
	if err != nil {
		return err
	}

	if req.Method == http.MethodPost {

		switch {
		case req.PostFormValue("user_name") != "":
			var name = req.PostFormValue("user_name")
			u, err := ctx.db.GetUserByName(name)
			if errors.Is(err, core.ErrNotFound) {
				ctx.Danger(errors.New("user " + name + " not found"))
				break
			}
			if err != nil {
				return err
			}
			if err = ctx.db.Join(selected, u); err != nil {
				return err
			}
			ctx.Success("user %s has been added to group %s", u.Name(), selected.Name())

		case req.PostFormValue("remove_user") != "":
			userID, err := strconv.Atoi(req.PostFormValue("remove_user"))
			if err != nil {
				return core.ErrNotFound
			}
			u, err := ctx.db.GetUser(userID)
			if err != nil {
				return err
			}
			if err = ctx.db.Leave(selected, u); err != nil {
				return err
			}
			ctx.Success("user %s has been removed from group %s", u.Name(), selected.Name())

		case req.PostFormValue("delete") != "":
			if err := ctx.db.DeleteGroup(selected); err != nil {
				ctx.Danger(err)
				break
			}
			ctx.Success("group %s has been deleted", selected.Name())
			ctx.Redirect("/backend/groups")
			return nil
		}

		ctx.Redirect("/backend/group/%d", selected.ID())
		return nil
	}

	return groupTmpl.Execute(w, &groupData{
		context:  ctx,
		Selected: selected,
	})
}
