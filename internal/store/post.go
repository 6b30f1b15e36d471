package store

import (
	"context"

	"personal-blog/internal/database"
	"personal-blog/internal/model"

	"github.com/jackc/pgx/v5"
)

const selectPost = `
	SELECT p.id, p.title, p.subtitle, p.date, p.body, p.img_url, p.author_id, u.name
	FROM blog_posts p
	JOIN users u ON u.id = p.author_id`

func scanPost(row pgx.Row, p *model.Post) error {
	return row.Scan(
		&p.ID,
		&p.Title,
		&p.Subtitle,
		&p.Date,
		&p.Body,
		&p.ImgURL,
		&p.AuthorID,
		&p.AuthorName,
	)
}

// ListPosts returns every post in insertion order.
func ListPosts(ctx context.Context, db database.DB) ([]model.Post, error) {
	rows, err := db.Query(ctx, selectPost+` ORDER BY p.id`)
	if err != nil {
		return nil, wrap("ListPosts", err)
	}
	defer rows.Close()

	posts := []model.Post{}
	for rows.Next() {
		var p model.Post
		if err := scanPost(rows, &p); err != nil {
			return nil, wrap("ListPosts", err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("ListPosts", err)
	}
	return posts, nil
}

func GetPostByID(ctx context.Context, db database.DB, id int) (*model.Post, error) {
	p := &model.Post{}
	if err := scanPost(db.QueryRow(ctx, selectPost+` WHERE p.id = $1`, id), p); err != nil {
		return nil, wrap("GetPostByID", err)
	}
	return p, nil
}

// CreatePost inserts p and sets p.ID. A title collision yields ErrDuplicate.
func CreatePost(ctx context.Context, db database.DB, p *model.Post) error {
	row := db.QueryRow(ctx,
		`INSERT INTO blog_posts (title, subtitle, date, body, img_url, author_id)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		p.Title,
		p.Subtitle,
		p.Date,
		p.Body,
		p.ImgURL,
		p.AuthorID,
	)
	if err := row.Scan(&p.ID); err != nil {
		return wrap("CreatePost", err)
	}
	return nil
}

// UpdatePost overwrites every mutable column of the post with id p.ID.
// The creation date is left untouched.
func UpdatePost(ctx context.Context, db database.DB, p *model.Post) error {
	tag, err := db.Exec(ctx,
		`UPDATE blog_posts
		 SET title = $1, subtitle = $2, body = $3, img_url = $4, author_id = $5
		 WHERE id = $6`,
		p.Title,
		p.Subtitle,
		p.Body,
		p.ImgURL,
		p.AuthorID,
		p.ID,
	)
	if err != nil {
		return wrap("UpdatePost", err)
	}
	if tag.RowsAffected() == 0 {
		return wrap("UpdatePost", pgx.ErrNoRows)
	}
	return nil
}

// DeletePost removes the post and its comments in one transaction.
func DeletePost(ctx context.Context, db database.DB, id int) error {
	err := pgx.BeginFunc(ctx, db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM comments WHERE post_id = $1`, id); err != nil {
			return err
		}
		tag, err := tx.Exec(ctx, `DELETE FROM blog_posts WHERE id = $1`, id)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return pgx.ErrNoRows
		}
		return nil
	})
	if err != nil {
		return wrap("DeletePost", err)
	}
	return nil
}
