package sqldb

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/wansing/blog/auth"
	"github.com/wansing/blog/core"
	"golang.org/x/crypto/bcrypt"
)

func clean(name string) string {
	return strings.TrimSpace(name)
}

type user struct {
	id        int
	name      string
	pass      string // bcrypt hash, empty if no password has been set
	superuser bool
}

func (u *user) ID() int {
	return u.id
}

func (u *user) Name() string {
	return u.name
}

func (u *user) Superuser() bool {
	return u.superuser
}

func (u *user) checkPassword(password string) bool {
	if u.pass == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(u.pass), []byte(password)) == nil
}

type UserDB struct {
	*sql.DB
	count        *sql.Stmt
	get          *sql.Stmt
	getAll       *sql.Stmt
	getByName    *sql.Stmt
	insert       *sql.Stmt
	setPassword  *sql.Stmt
	setSuperuser *sql.Stmt
}

func NewUserDB(db *sql.DB) *UserDB {
	var userDB = &UserDB{}
	userDB.DB = db
	userDB.count = mustPrepare(db, "SELECT COUNT(1) FROM usr")
	userDB.get = mustPrepare(db, "SELECT id, name, password, superuser FROM usr WHERE id = ? LIMIT 1")
	userDB.getAll = mustPrepare(db, "SELECT id, name, password, superuser FROM usr ORDER BY name LIMIT ? OFFSET ?")
	userDB.getByName = mustPrepare(db, "SELECT id, name, password, superuser FROM usr WHERE name = ? LIMIT 1") // case-insensitive because of the collation
	userDB.insert = mustPrepare(db, "INSERT INTO usr (name, password, superuser, ts_created) VALUES (?, ?, 0, ?)")
	userDB.setPassword = mustPrepare(db, "UPDATE usr SET password = ? WHERE id = ?")
	userDB.setSuperuser = mustPrepare(db, "UPDATE usr SET superuser = ? WHERE id = ?")
	return userDB
}

func hash(password string) (string, error) {
	if password == "" {
		return "", nil
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func scanUser(row interface{ Scan(...interface{}) error }) (*user, error) {
	var u = &user{}
	err := row.Scan(&u.id, &u.name, &u.pass, &u.superuser)
	if err == sql.ErrNoRows {
		return nil, core.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (db *UserDB) CountUsers() (int, error) {
	var count int
	return count, db.count.QueryRow().Scan(&count)
}

func (db *UserDB) GetUser(id int) (auth.DBUser, error) {
	u, err := scanUser(db.get.QueryRow(id))
	if err != nil {
		return nil, err // don't return a typed nil
	}
	return u, nil
}

func (db *UserDB) GetUserByName(name string) (auth.DBUser, error) {
	u, err := scanUser(db.getByName.QueryRow(clean(name)))
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (db *UserDB) GetAllUsers(limit, offset int) ([]auth.DBUser, error) {

	var all = []auth.DBUser{}

	rows, err := db.getAll.Query(limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		all = append(all, u)
	}

	return all, rows.Err()
}

// InsertUser returns core.ErrUsernameTaken if the name is already in use, regardless of its case.
func (db *UserDB) InsertUser(name, password string) (auth.DBUser, error) {

	name = clean(name)
	if name == "" {
		return nil, errors.New("username can't be empty")
	}

	hashed, err := hash(password)
	if err != nil {
		return nil, err
	}

	result, err := db.insert.Exec(name, hashed, time.Now().Unix())
	if isUniqueViolation(err) {
		return nil, core.ErrUsernameTaken
	}
	if err != nil {
		return nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	return &user{
		id:   int(id),
		name: name,
		pass: hashed,
	}, nil
}

func (db *UserDB) LoginUser(name, password string) (auth.DBUser, error) {

	u, err := scanUser(db.getByName.QueryRow(clean(name)))
	if errors.Is(err, core.ErrNotFound) {
		return nil, auth.ErrAuth // user not found
	}
	if err != nil {
		return nil, err
	}

	if !u.checkPassword(password) {
		return nil, auth.ErrAuth // wrong password
	}

	return u, nil
}

func (db *UserDB) SetPassword(u auth.DBUser, password string) error {

	if password == "" {
		return errors.New("no password given")
	}

	if u.ID() == 0 {
		return errors.New("can't set password of user 0")
	}

	hashed, err := hash(password)
	if err != nil {
		return err
	}

	if _, err = db.setPassword.Exec(hashed, u.ID()); err != nil {
		return err
	}

	if u, ok := u.(*user); ok {
		u.pass = hashed
	}
	return nil
}

func (db *UserDB) SetSuperuser(u auth.DBUser, superuser bool) error {

	if _, err := db.setSuperuser.Exec(superuser, u.ID()); err != nil {
		return err
	}

	if u, ok := u.(*user); ok {
		u.superuser = superuser
	}
	return nil
}
