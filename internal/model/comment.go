// File: internal/model/comment.go
package model

import "time"

type Comment struct {
	ID          int       `db:"id" json:"id"`
	Text        string    `db:"text" json:"text"`
	AuthorID    int       `db:"author_id" json:"author_id"`
	PostID      int       `db:"post_id" json:"post_id"`
	AuthorName  string    `db:"author_name" json:"author_name"`
	AuthorEmail string    `db:"author_email" json:"-"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
