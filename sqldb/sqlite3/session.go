package sqlite3

import (
	"database/sql"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
)

// NewSessionStore expects the sessions table, which is created by sqldb.Migrate.
// Expired sessions are removed every five minutes.
func NewSessionStore(db *sql.DB) scs.Store {
	return sqlite3store.New(db)
}
