package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/alexedwards/scs/v2"
	_ "github.com/go-sql-driver/mysql"
	"github.com/julienschmidt/httprouter"
	_ "github.com/mattn/go-sqlite3"
	"github.com/wansing/blog/backend"
	"github.com/wansing/blog/core"
	"github.com/wansing/blog/frontend"
	"github.com/wansing/blog/sqldb"
	"github.com/wansing/blog/sqldb/mysql"
	"github.com/wansing/blog/sqldb/sqlite3"
	"github.com/wansing/blog/util"
	"golang.org/x/crypto/ssh/terminal"
)

const defaultDB = "sqlite3:blog.sqlite3?_busy_timeout=10000&_journal=WAL&_sync=NORMAL&_foreign_keys=1"

func init() {
	log.SetFlags(0) // no log prefixes, on most systems systemd-journald adds them
}

func main() {

	var dbArg string // is in both FlagSets

	// default FlagSet

	// Your reverse proxy must not strip the prefix. So if you're using nginx, the "proxy_pass" value should not end with a slash."
	var base = flag.String("base", "", "strip off this `prefix` from every HTTP request and prepended it to every link")
	var configFile = flag.String("config", "", "read the values of unset flags from this ini `file`, keys are flag names")
	// MySQL: collation should be utf8mb4_unicode_ci
	flag.StringVar(&dbArg, "db", defaultDB, "sql database url, see github.com/xo/dburl")
	var idleTimeout = flag.Duration("idle-timeout", 12*time.Hour, "expire sessions after this `duration` of inactivity")
	var listenAddr = flag.String("listen", "127.0.0.1:8080", "serve HTTP content at this `ip:port`")
	var secureCookie = flag.Bool("secure-cookie", false, "send the session cookie over HTTPS only")
	var sessionLifetime = flag.Duration("session-lifetime", 720*time.Hour, "expire sessions after this `duration`")
	var staticDir = flag.String("static", "static", "serve files from this `directory` at /static/")
	var title = flag.String("title", "Blog", "site `title`")

	// init FlagSet

	var initFlags = flag.NewFlagSet("init", flag.ExitOnError)

	initFlags.StringVar(&dbArg, "db", defaultDB, "sql database url, see github.com/xo/dburl") // copied from above
	var initInsert = initFlags.Bool("insert", false, "creates the given group or user")
	var initJoin = initFlags.Bool("join", false, "joins the given user to the given group")
	var initMakeSuperuser = initFlags.Bool("make-superuser", false, "makes the given user a superuser")
	var groupname = initFlags.String("group", "", "specifies a group `name`")
	var username = initFlags.String("user", "", "specifies a user `name`")

	if len(os.Args) > 1 && os.Args[1] == "init" {
		initFlags.Parse(os.Args[2:])
	} else {
		flag.Parse()
		if *configFile != "" {
			if err := applyConfig(flag.CommandLine, *configFile); err != nil {
				log.Printf("could not read config: %v", err)
				return
			}
		}
	}

	// database

	sqlDB, driver, err := sqldb.Open(dbArg)
	if err != nil {
		log.Println(err)
		return
	}

	defer func() {
		log.Println("closing database")
		sqlDB.Close()
	}()

	log.Printf("using %s database", driver)

	if err := sqldb.Migrate(sqlDB, driver); err != nil {
		log.Println(err) // log.Fatalln would not run deferred functions
		return
	}

	// base

	*base = strings.Trim(*base, "/")
	if *base != "" {
		*base = "/" + *base
	}

	// assemble stuff

	var sessionStore scs.Store
	switch driver {
	case "mysql":
		sessionStore = mysql.NewSessionStore(sqlDB)
	case "sqlite3":
		sessionStore = sqlite3.NewSessionStore(sqlDB)
	}

	db := &core.CoreDB{}
	if err := db.Init(sessionStore, *base); err != nil {
		log.Println(err)
		return
	}

	db.SessionManager.Cookie.Secure = *secureCookie
	db.SessionManager.IdleTimeout = *idleTimeout
	db.SessionManager.Lifetime = *sessionLifetime

	sqldb.Wire(db, sqlDB)

	// init

	if initFlags.Parsed() {
		switch {
		case *initInsert:
			if *groupname != "" {
				insertGroup(db, *groupname)
			}
			if *username != "" {
				insertUser(db, *username)
			}
		case *initJoin:
			if *groupname != "" && *username != "" {
				join(db, *groupname, *username)
			}
		case *initMakeSuperuser:
			if *username != "" {
				makeSuperuser(db, *username)
			}
		default:
			initFlags.Usage()
		}
		return
	}

	listen(db, *listenAddr, *base, *title, *staticDir)
}

// applyConfig sets the flags which have not been set on the command line.
func applyConfig(fs *flag.FlagSet, filename string) error {

	values, err := util.Ini(filename, false)
	if err != nil {
		return err
	}

	var explicit = make(map[string]bool)
	fs.Visit(func(f *flag.Flag) {
		explicit[f.Name] = true
	})

	for key, value := range values {
		if key == "config" || fs.Lookup(key) == nil {
			return fmt.Errorf("unknown key %s in %s", key, filename)
		}
		if explicit[key] {
			continue
		}
		if err := fs.Set(key, value); err != nil {
			return fmt.Errorf("key %s in %s: %w", key, filename, err)
		}
	}

	return nil
}

func insertGroup(db *core.CoreDB, name string) {
	if _, err := db.InsertGroup(name); err != nil {
		log.Printf(`error creating group "%s": %v`, name, err)
	}
}

func insertUser(db *core.CoreDB, name string) {

	fmt.Printf("password for user %s: ", name)
	pass1, err := terminal.ReadPassword(0)
	fmt.Println()
	if err != nil {
		log.Printf("error reading password: %v", err)
		return
	}

	fmt.Printf("repeat password: ")
	pass2, err := terminal.ReadPassword(0)
	fmt.Println()
	if err != nil {
		log.Printf("error reading password: %v", err)
		return
	}

	if !bytes.Equal(pass1, pass2) {
		log.Printf("passwords don't match")
		return
	}

	if len(pass1) == 0 {
		log.Printf("refusing to set empty password")
		return
	}

	if _, err := db.InsertUser(name, string(pass1)); err != nil {
		log.Printf("error creating user %s: %v", name, err)
		return
	}
}

func join(db *core.CoreDB, groupname string, username string) {

	group, err := db.GetGroupByName(groupname)
	if err != nil {
		log.Printf("error getting group %s: %v", groupname, err)
		return
	}

	user, err := db.GetUserByName(username)
	if err != nil {
		log.Printf("error getting user %s: %v", username, err)
		return
	}

	if err := db.Join(group, user); err != nil {
		log.Printf("error joining: %v", err)
		return
	}
}

func makeSuperuser(db *core.CoreDB, username string) {

	user, err := db.GetUserByName(username)
	if err != nil {
		log.Printf("error getting user %s: %v", username, err)
		return
	}

	if err := db.SetSuperuser(user, true); err != nil {
		log.Printf("error making %s a superuser: %v", username, err)
		return
	}
}

func listen(db *core.CoreDB, addr string, base string, title string, staticDir string) {

	// router
	//
	// golang mux recovers from panics, so the program won't crash

	var router = httprouter.New()
	frontend.Routes(router, db, base, title)
	backend.Routes(router, db, base)
	router.ServeFiles("/static/*filepath", http.Dir(staticDir))

	var mux = http.NewServeMux()
	util.HandlePrefix(mux, base, router)

	// listener and listen

	sigintChannel := make(chan os.Signal, 1)

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		log.Println(err)
		return
	}

	log.Printf("listening to %s", addr)

	httpSrv := &http.Server{
		Handler:      util.AccessLog(db.SessionManager.LoadAndSave(mux)),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		if err := httpSrv.Serve(listener); err != nil {

			// don't panic, we want a graceful shutdown
			if !errors.Is(err, http.ErrServerClosed) {
				log.Printf("error listening: %v", err)
			}

			// ensure graceful shutdown
			sigintChannel <- os.Interrupt
		}
	}()

	// graceful shutdown

	signal.Notify(sigintChannel, os.Interrupt, syscall.SIGTERM) // SIGINT (Interrupt) or SIGTERM
	<-sigintChannel

	log.Println("shutting down")

	// wait for running requests
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(ctx); err != nil {
		log.Printf("error shutting down: %v", err)
	}
}
