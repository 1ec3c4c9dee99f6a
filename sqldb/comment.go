package sqldb

import (
	"database/sql"
	"strings"

	"github.com/wansing/blog/core"
)

const commentColumns = "comment.id, comment.post, post.title, comment.author, usr.name, comment.content, comment.approved, comment.ts_created"

const commentJoins = " FROM comment JOIN post ON post.id = comment.post JOIN usr ON usr.id = comment.author"

type CommentDB struct {
	*sql.DB
	delete      *sql.Stmt
	get         *sql.Stmt
	getApproved *sql.Stmt
	insert      *sql.Stmt
	setApproved *sql.Stmt
}

func NewCommentDB(db *sql.DB) *CommentDB {
	var commentDB = &CommentDB{}
	commentDB.DB = db
	commentDB.delete = mustPrepare(db, "DELETE FROM comment WHERE id = ?")
	commentDB.get = mustPrepare(db, "SELECT "+commentColumns+commentJoins+" WHERE comment.id = ? LIMIT 1")
	commentDB.getApproved = mustPrepare(db, "SELECT "+commentColumns+commentJoins+" WHERE comment.post = ? AND comment.approved = 1 ORDER BY comment.ts_created, comment.id")
	commentDB.insert = mustPrepare(db, "INSERT INTO comment (post, author, content, approved, ts_created) VALUES (?, ?, ?, ?, ?)")
	commentDB.setApproved = mustPrepare(db, "UPDATE comment SET approved = ? WHERE id = ?")
	return commentDB
}

func scanComment(row interface{ Scan(...interface{}) error }) (*core.Comment, error) {
	var cm = &core.Comment{}
	err := row.Scan(&cm.ID, &cm.PostID, &cm.PostTitle, &cm.AuthorID, &cm.AuthorName, &cm.Content, &cm.Approved, &cm.TsCreated)
	if err == sql.ErrNoRows {
		return nil, core.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return cm, nil
}

func scanComments(rows *sql.Rows) ([]*core.Comment, error) {
	defer rows.Close()
	var comments = []*core.Comment{}
	for rows.Next() {
		cm, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		comments = append(comments, cm)
	}
	return comments, rows.Err()
}

func (db *CommentDB) where(filter core.CommentFilter) (string, []interface{}) {
	var conds []string
	var args []interface{}
	if filter.Approved != nil {
		conds = append(conds, "comment.approved = ?")
		args = append(args, *filter.Approved)
	}
	if filter.PostID != 0 {
		conds = append(conds, "comment.post = ?")
		args = append(args, filter.PostID)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		conds = append(conds, "(comment.content LIKE ? ESCAPE '!' OR usr.name LIKE ? ESCAPE '!')")
		args = append(args, likePattern(search), likePattern(search))
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (db *CommentDB) CountComments(filter core.CommentFilter) (int, error) {
	where, args := db.where(filter)
	var count int
	return count, db.QueryRow("SELECT COUNT(1)"+commentJoins+where, args...).Scan(&count)
}

func (db *CommentDB) DeleteComment(id int) error {
	_, err := db.delete.Exec(id)
	return err
}

func (db *CommentDB) GetApprovedComments(postID int) ([]*core.Comment, error) {
	rows, err := db.getApproved.Query(postID)
	if err != nil {
		return nil, err
	}
	return scanComments(rows)
}

func (db *CommentDB) GetComment(id int) (*core.Comment, error) {
	return scanComment(db.get.QueryRow(id))
}

func (db *CommentDB) GetComments(filter core.CommentFilter, limit, offset int) ([]*core.Comment, error) {
	where, args := db.where(filter)
	rows, err := db.Query("SELECT "+commentColumns+commentJoins+where+" ORDER BY comment.ts_created DESC, comment.id DESC LIMIT ? OFFSET ?", append(args, limit, offset)...)
	if err != nil {
		return nil, err
	}
	return scanComments(rows)
}

func (db *CommentDB) InsertComment(cm *core.Comment) error {
	result, err := db.insert.Exec(cm.PostID, cm.AuthorID, cm.Content, cm.Approved, cm.TsCreated)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	cm.ID = int(id)
	return nil
}

func (db *CommentDB) SetApproved(id int, approved bool) error {
	_, err := db.setApproved.Exec(approved, id)
	return err
}
