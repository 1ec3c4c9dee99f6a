// Package sqldb implements the storage interfaces of the core package with database/sql.
// It supports sqlite3 and mysql, see Open.
package sqldb

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	migratemysql "github.com/golang-migrate/migrate/v4/database/mysql"
	migratesqlite3 "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/mattn/go-sqlite3"
	"github.com/wansing/blog/core"
	"github.com/xo/dburl"
)

//go:embed migrations
var migrations embed.FS

func mustPrepare(db *sql.DB, query string) *sql.Stmt {
	stmt, err := db.Prepare(query)
	if err != nil {
		panic(fmt.Sprintf("preparing %s: %v", query, err))
	}
	return stmt
}

// Open opens and pings the database described by a dburl string (see github.com/xo/dburl).
// It returns the database handle and the name of the driver.
func Open(dbArg string) (*sql.DB, string, error) {

	dbURL, err := dburl.Parse(dbArg)
	if err != nil {
		return nil, "", fmt.Errorf("parsing database url: %w", err)
	}

	switch dbURL.Driver {
	case "mysql", "sqlite3":
	default:
		return nil, "", fmt.Errorf("unknown database backend: %s", dbURL.Driver)
	}

	dsn, err := driverDSN(dbURL.Driver, dbURL.DSN)
	if err != nil {
		return nil, "", fmt.Errorf("parsing database url: %w", err)
	}

	sqlDB, err := sql.Open(dbURL.Driver, dsn)
	if err != nil {
		return nil, "", fmt.Errorf("opening sql database: %w", err)
	}

	if err = sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, "", fmt.Errorf("pinging sql database: %w", err)
	}

	return sqlDB, dbURL.Driver, nil
}

// driverDSN enables multiple statements per query on mysql, which the migration files need.
func driverDSN(driver, dsn string) (string, error) {
	if driver != "mysql" {
		return dsn, nil
	}
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return "", err
	}
	cfg.MultiStatements = true
	return cfg.FormatDSN(), nil
}

// Migrate brings the schema up to date. It must be called before the storage types are created, because they prepare their statements on construction.
func Migrate(db *sql.DB, driver string) error {

	var dbDriver database.Driver
	var err error
	switch driver {
	case "mysql":
		dbDriver, err = migratemysql.WithInstance(db, &migratemysql.Config{})
	case "sqlite3":
		dbDriver, err = migratesqlite3.WithInstance(db, &migratesqlite3.Config{})
	default:
		err = fmt.Errorf("unknown database backend: %s", driver)
	}
	if err != nil {
		return fmt.Errorf("creating migration driver: %w", err)
	}

	source, err := iofs.New(migrations, "migrations/"+driver)
	if err != nil {
		return fmt.Errorf("reading migrations: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, driver, dbDriver)
	if err != nil {
		return fmt.Errorf("creating migrator: %w", err)
	}
	// m.Close would close db

	switch err := m.Up(); {
	case errors.Is(err, migrate.ErrNoChange):
		return nil
	case err != nil:
		return fmt.Errorf("migrating: %w", err)
	}

	if version, _, err := m.Version(); err == nil {
		log.Printf("migrated database to version %d", version)
	}
	return nil
}

// likeEscape is the ESCAPE character of likePattern. A backslash would need different quoting in sqlite3 and mysql.
const likeEscape = "!"

// likePattern returns a LIKE pattern which matches s as a substring. Use it with ESCAPE '!'.
func likePattern(s string) string {
	s = strings.NewReplacer(likeEscape, likeEscape+likeEscape, "%", likeEscape+"%", "_", likeEscape+"_").Replace(s)
	return "%" + s + "%"
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique || sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1062 // ER_DUP_ENTRY
	}
	return false
}

// Wire creates the storage types and assigns them to c. The schema must be up to date.
func Wire(c *core.CoreDB, db *sql.DB) {
	c.CommentDB = NewCommentDB(db)
	c.GroupDB = NewGroupDB(db)
	c.PostDB = NewPostDB(db)
	c.UserDB = NewUserDB(db)
}
