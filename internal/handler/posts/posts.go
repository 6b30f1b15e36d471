// Package posts serves the post listing, post pages with their comments,
// and the admin-only post editor.
package posts

import (
	"net/http"
	"strconv"
	"time"

	"personal-blog/internal/api"
	"personal-blog/internal/model"
	"personal-blog/internal/store"
	"personal-blog/internal/view"

	"github.com/labstack/echo/v4"
)

// DateLayout is how a post's creation date is stored and shown.
const DateLayout = "January 02, 2006"

const (
	msgPostNotFound     = "Post not found."
	msgUnavailable      = "The blog is temporarily unavailable. Please try again later."
	msgPostsUnavailable = "Posts are unavailable right now. Please try again later."
	msgDuplicateTitle   = "A post with that title already exists."
	msgSaveFailed       = "We couldn't save your changes right now. Please try again."
	msgCommentFailed    = "We couldn't save your comment right now. Please try again."
	msgDeleteFailed     = "We couldn't delete that post right now. Please try again."
	msgLoginToComment   = "You need to login or register to comment."
	msgBadForm          = "Please check the form and try again."
	msgRequired         = "This field is required."
)

var (
	listPosts     = store.ListPosts
	getPostByID   = store.GetPostByID
	createPost    = store.CreatePost
	updatePost    = store.UpdatePost
	deletePost    = store.DeletePost
	createComment = store.CreateComment
	listComments  = store.ListCommentsByPost
	timeNow       = time.Now
)

// postID reads the :post_id path parameter. Anything that is not a
// positive integer cannot name a post.
func postID(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("post_id"))
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusNotFound, msgPostNotFound)
	}
	return id, nil
}

func formFromRequest(req api.PostRequest) map[string]string {
	return map[string]string{
		"title":    req.Title,
		"subtitle": req.Subtitle,
		"img_url":  req.ImgURL,
		"body":     req.Body,
	}
}

func formFromPost(p *model.Post) map[string]string {
	return map[string]string{
		"title":    p.Title,
		"subtitle": p.Subtitle,
		"img_url":  p.ImgURL,
		"body":     p.Body,
	}
}

// renderEditor shows make-post.html. post is nil when creating.
func renderEditor(c echo.Context, code int, post *model.Post, form, errs map[string]string) error {
	title := "New Post"
	if post != nil {
		title = "Edit Post"
	}
	page := view.NewPage(c, title)
	page.Post = post
	page.IsEdit = post != nil
	page.Form = form
	page.Errors = errs
	return c.Render(code, "make-post.html", page)
}
