package store

import (
	"context"

	"personal-blog/internal/database"
	"personal-blog/internal/model"
)

// CreateComment inserts c and fills its ID and CreatedAt.
func CreateComment(ctx context.Context, db database.DB, c *model.Comment) error {
	row := db.QueryRow(ctx,
		`INSERT INTO comments (text, author_id, post_id)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		c.Text,
		c.AuthorID,
		c.PostID,
	)
	if err := row.Scan(&c.ID, &c.CreatedAt); err != nil {
		return wrap("CreateComment", err)
	}
	return nil
}

// ListCommentsByPost returns the comments of a post, oldest first, with
// author name and email joined in.
func ListCommentsByPost(ctx context.Context, db database.DB, postID int) ([]model.Comment, error) {
	rows, err := db.Query(ctx,
		`SELECT c.id, c.text, c.author_id, c.post_id, u.name, u.email, c.created_at
		 FROM comments c
		 JOIN users u ON u.id = c.author_id
		 WHERE c.post_id = $1
		 ORDER BY c.id`,
		postID,
	)
	if err != nil {
		return nil, wrap("ListCommentsByPost", err)
	}
	defer rows.Close()

	comments := []model.Comment{}
	for rows.Next() {
		var c model.Comment
		if err := rows.Scan(
			&c.ID,
			&c.Text,
			&c.AuthorID,
			&c.PostID,
			&c.AuthorName,
			&c.AuthorEmail,
			&c.CreatedAt,
		); err != nil {
			return nil, wrap("ListCommentsByPost", err)
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("ListCommentsByPost", err)
	}
	return comments, nil
}
