package frontend

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

func logout(w http.ResponseWriter, req *http.Request, ctx *context, params httprouter.Params) error {
	if ctx.LoggedIn() {
		ctx.Info("You have been logged out.")
	}
	ctx.Logout()
	ctx.Redirect("/")
	return nil
}
