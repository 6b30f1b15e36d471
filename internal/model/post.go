// File: internal/model/post.go
package model

// Post is a blog entry. Date is the display string fixed at creation time
// ("January 02, 2006"); AuthorName is filled by joined reads only.
type Post struct {
	ID         int    `db:"id" json:"id"`
	Title      string `db:"title" json:"title"`
	Subtitle   string `db:"subtitle" json:"subtitle"`
	Date       string `db:"date" json:"date"`
	Body       string `db:"body" json:"body"`
	ImgURL     string `db:"img_url" json:"img_url"`
	AuthorID   int    `db:"author_id" json:"author_id"`
	AuthorName string `db:"author_name" json:"author_name"`
}
