package sqldb

import (
	"database/sql"
	"strings"

	"github.com/wansing/blog/core"
)

const postColumns = "post.id, post.author, usr.name, post.title, post.content, post.published, post.ts_created, post.ts_updated"

type PostDB struct {
	*sql.DB
	countPublished *sql.Stmt
	deleteComments *sql.Stmt
	delete         *sql.Stmt
	get            *sql.Stmt
	getPublished   *sql.Stmt
	insert         *sql.Stmt
	update         *sql.Stmt
}

func NewPostDB(db *sql.DB) *PostDB {
	var postDB = &PostDB{}
	postDB.DB = db
	postDB.countPublished = mustPrepare(db, "SELECT COUNT(1) FROM post WHERE published = 1")
	postDB.deleteComments = mustPrepare(db, "DELETE FROM comment WHERE post = ?")
	postDB.delete = mustPrepare(db, "DELETE FROM post WHERE id = ?")
	postDB.get = mustPrepare(db, "SELECT "+postColumns+" FROM post JOIN usr ON usr.id = post.author WHERE post.id = ? LIMIT 1")
	postDB.getPublished = mustPrepare(db, "SELECT "+postColumns+" FROM post JOIN usr ON usr.id = post.author WHERE post.published = 1 ORDER BY post.ts_created DESC, post.id DESC LIMIT ? OFFSET ?")
	postDB.insert = mustPrepare(db, "INSERT INTO post (author, title, content, published, ts_created, ts_updated) VALUES (?, ?, ?, ?, ?, ?)")
	postDB.update = mustPrepare(db, "UPDATE post SET title = ?, content = ?, published = ?, ts_updated = ? WHERE id = ?")
	return postDB
}

func scanPost(row interface{ Scan(...interface{}) error }) (*core.Post, error) {
	var p = &core.Post{}
	err := row.Scan(&p.ID, &p.AuthorID, &p.AuthorName, &p.Title, &p.Content, &p.Published, &p.TsCreated, &p.TsUpdated)
	if err == sql.ErrNoRows {
		return nil, core.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func scanPosts(rows *sql.Rows) ([]*core.Post, error) {
	defer rows.Close()
	var posts = []*core.Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// where returns the WHERE clause (including a leading space) and its arguments.
func (db *PostDB) where(filter core.PostFilter) (string, []interface{}) {
	var conds []string
	var args []interface{}
	if filter.Published != nil {
		conds = append(conds, "post.published = ?")
		args = append(args, *filter.Published)
	}
	if filter.AuthorID != 0 {
		conds = append(conds, "post.author = ?")
		args = append(args, filter.AuthorID)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		conds = append(conds, "(post.title LIKE ? ESCAPE '!' OR post.content LIKE ? ESCAPE '!')")
		args = append(args, likePattern(search), likePattern(search))
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (db *PostDB) CountPosts(filter core.PostFilter) (int, error) {
	where, args := db.where(filter)
	var count int
	return count, db.QueryRow("SELECT COUNT(1) FROM post"+where, args...).Scan(&count)
}

func (db *PostDB) CountPublished() (int, error) {
	var count int
	return count, db.countPublished.QueryRow().Scan(&count)
}

// DeletePost deletes the comments of the post and the post in one transaction.
func (db *PostDB) DeletePost(id int) error {

	tx, err := db.Begin()
	if err != nil {
		return err
	}

	if _, err = tx.Stmt(db.deleteComments).Exec(id); err != nil {
		tx.Rollback()
		return err
	}

	result, err := tx.Stmt(db.delete).Exec(id)
	if err != nil {
		tx.Rollback()
		return err
	}

	if n, err := result.RowsAffected(); err == nil && n == 0 {
		tx.Rollback()
		return core.ErrNotFound
	}

	return tx.Commit()
}

func (db *PostDB) GetPost(id int) (*core.Post, error) {
	return scanPost(db.get.QueryRow(id))
}

func (db *PostDB) GetPosts(filter core.PostFilter, limit, offset int) ([]*core.Post, error) {
	where, args := db.where(filter)
	rows, err := db.Query("SELECT "+postColumns+" FROM post JOIN usr ON usr.id = post.author"+where+" ORDER BY post.ts_created DESC, post.id DESC LIMIT ? OFFSET ?", append(args, limit, offset)...)
	if err != nil {
		return nil, err
	}
	return scanPosts(rows)
}

func (db *PostDB) GetPublished(limit, offset int) ([]*core.Post, error) {
	rows, err := db.getPublished.Query(limit, offset)
	if err != nil {
		return nil, err
	}
	return scanPosts(rows)
}

func (db *PostDB) InsertPost(p *core.Post) error {
	result, err := db.insert.Exec(p.AuthorID, p.Title, p.Content, p.Published, p.TsCreated, p.TsUpdated)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = int(id)
	return nil
}

func (db *PostDB) UpdatePost(p *core.Post) error {
	_, err := db.update.Exec(p.Title, p.Content, p.Published, p.TsUpdated, p.ID)
	return err
}
