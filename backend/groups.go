package backend

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/wansing/blog/auth"
)

var groupsTmpl = tmpl(`<h1>Groups</h1>

	<ul>
		{{ range .Groups }}
			<li>{{ GroupLink . }}</li>
		{{ end }}
	</ul>

	<h2>Create Group</h2>

	<form method="post" class="form-inline">
		<div class="form-group">
			<input class="form-control" name="group_name" placeholder="Group name" maxlength="64">
			<button type="submit" class="btn btn-primary mx-sm-3" name="submit_add">Create group</button>
		</div>
	</form>`)

type groupsData struct {
	*context
}

func (data *groupsData) Groups() ([]auth.DBGroup, error) {
	return data.db.GetAllGroups(10000, 0) // assuming there are not more than 10k groups
}

func groups(w http.ResponseWriter, req *http.Request, ctx *context, params httprouter.Params) error {

	if req.Method == http.MethodPost {

		g, err := ctx.db.InsertGroup(req.PostFormValue("group_name"))
		if err != nil {
			ctx.Danger(err)
			ctx.Redirect("/backend/groups")
			return nil
		}

		ctx.Success("group %s has been created", g.Name())
		ctx.Redirect("/backend/group/%d", g.ID())
		return nil
	}

	return groupsTmpl.Execute(w, &groupsData{
		context: ctx,
	})
}
