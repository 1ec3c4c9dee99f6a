package core

import (
	"errors"

	"github.com/wansing/blog/auth"
)

var ErrEmptyPassword = errors.New("refusing to set empty password")

// SetPassword shadows UserDB.SetPassword.
func (c *CoreDB) SetPassword(u auth.DBUser, password string) error {
	if password == "" {
		return ErrEmptyPassword
	}
	return c.UserDB.SetPassword(u, password)
}

// Principal resolves the role of a user. If u is nil, the anonymous principal is returned.
func (c *CoreDB) Principal(u auth.DBUser) (auth.Principal, error) {
	if u == nil {
		return auth.Anonymous(), nil
	}
	groups, err := c.GetGroupsOf(u)
	if err != nil {
		return auth.Anonymous(), err
	}
	return auth.NewPrincipal(u, groups), nil
}

// Register creates a user without any group memberships. Registration never grants the Author role.
// If the form is invalid or the username is taken, form.Errors is returned.
func (c *CoreDB) Register(form *RegisterForm) (auth.DBUser, error) {

	if !form.Validate() {
		return nil, form.Errors
	}

	_, err := c.GetUserByName(form.Username)
	switch {
	case err == nil:
		form.Errors.Add("username", ErrUsernameTaken.Error())
		return nil, form.Errors
	case !errors.Is(err, ErrNotFound):
		return nil, err
	}

	u, err := c.InsertUser(form.Username, form.Password1)
	if errors.Is(err, ErrUsernameTaken) { // race
		form.Errors.Add("username", ErrUsernameTaken.Error())
		return nil, form.Errors
	}
	if err != nil {
		return nil, err
	}

	return u, nil
}
