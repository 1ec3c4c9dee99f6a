package mysql

import (
	"database/sql"

	"github.com/alexedwards/scs/mysqlstore"
	"github.com/alexedwards/scs/v2"
)

// NewSessionStore expects the sessions table, which is created by sqldb.Migrate.
func NewSessionStore(db *sql.DB) scs.Store {
	return mysqlstore.New(db)
}
