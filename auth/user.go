package auth

import (
	"errors"
)

// ErrAuth is returned by UserDB.LoginUser if the name or the password is wrong.
var ErrAuth = errors.New("wrong username or password")

type DBUser interface {
	ID() int
	Name() string
	Superuser() bool
}

type UserDB interface {
	CountUsers() (int, error)
	GetAllUsers(limit, offset int) ([]DBUser, error)
	GetUser(id int) (DBUser, error)
	GetUserByName(name string) (DBUser, error) // case-insensitive
	InsertUser(name, password string) (DBUser, error)
	LoginUser(name, password string) (DBUser, error)
	SetPassword(u DBUser, password string) error
	SetSuperuser(u DBUser, superuser bool) error
}
