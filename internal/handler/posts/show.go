package posts

import (
	"errors"
	"net/http"

	"personal-blog/internal/api"
	"personal-blog/internal/database"
	"personal-blog/internal/flash"
	"personal-blog/internal/middleware"
	"personal-blog/internal/model"
	"personal-blog/internal/sanitizer"
	"personal-blog/internal/store"
	"personal-blog/internal/view"

	"github.com/labstack/echo/v4"
)

// loadPost maps a missing post to 404 and any other failure to 503.
func loadPost(c echo.Context, db database.DB, id int) (*model.Post, error) {
	post, err := getPostByID(c.Request().Context(), db, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, echo.NewHTTPError(http.StatusNotFound, msgPostNotFound)
	}
	if err != nil {
		c.Logger().Errorf("load post %d: %v", id, err)
		return nil, echo.NewHTTPError(http.StatusServiceUnavailable, msgUnavailable)
	}
	return post, nil
}

func renderPost(c echo.Context, db database.DB, code int, post *model.Post, form, errs map[string]string) error {
	page := view.NewPage(c, post.Title)
	page.Post = post
	page.Form = form
	page.Errors = errs

	comments, err := listComments(c.Request().Context(), db, post.ID)
	if err != nil {
		// the post is still worth showing without its comments
		c.Logger().Errorf("list comments for post %d: %v", post.ID, err)
	}
	page.Comments = comments
	return c.Render(code, "post.html", page)
}

// ShowPostHandler renders one post with its comments.
// @Summary     Show post
// @Tags        posts
// @Produce     html
// @Param       post_id path int true "Post ID"
// @Success     200 "post page"
// @Failure     404 "no such post"
// @Router      /post/{post_id} [get]
func ShowPostHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := postID(c)
		if err != nil {
			return err
		}
		post, err := loadPost(c, db, id)
		if err != nil {
			return err
		}
		return renderPost(c, db, http.StatusOK, post, nil, nil)
	}
}

// CreateCommentHandler adds a comment by the current user to the post.
// Anonymous visitors are sent to the login page and nothing is stored.
// @Summary     Comment on a post
// @Tags        posts
// @Accept      application/x-www-form-urlencoded
// @Produce     html
// @Param       post_id path     int    true "Post ID"
// @Param       comment formData string true "Comment (HTML)"
// @Success     303 "Redirect to / (or /login when not logged in)"
// @Failure     400 "Post re-rendered with field errors"
// @Failure     404 "no such post"
// @Router      /post/{post_id} [post]
func CreateCommentHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := postID(c)
		if err != nil {
			return err
		}
		post, err := loadPost(c, db, id)
		if err != nil {
			return err
		}

		user, ok := middleware.CurrentUser(c)
		if !ok {
			flash.Set(c, msgLoginToComment)
			return c.Redirect(http.StatusSeeOther, "/login")
		}

		var req api.CommentRequest
		if err := c.Bind(&req); err != nil {
			return renderPost(c, db, http.StatusBadRequest, post, nil, map[string]string{api.FormErrorKey: msgBadForm})
		}
		form := map[string]string{"comment": req.Comment}
		if err := c.Validate(&req); err != nil {
			return renderPost(c, db, http.StatusBadRequest, post, form, api.FieldErrors(err))
		}
		text := sanitizer.RichText(req.Comment)
		if text == "" {
			return renderPost(c, db, http.StatusBadRequest, post, form, map[string]string{"comment": msgRequired})
		}

		comment := &model.Comment{Text: text, AuthorID: user.ID, PostID: post.ID}
		if err := createComment(c.Request().Context(), db, comment); err != nil {
			c.Logger().Errorf("create comment on post %d: %v", post.ID, err)
			return renderPost(c, db, http.StatusServiceUnavailable, post, form, map[string]string{api.FormErrorKey: msgCommentFailed})
		}
		return c.Redirect(http.StatusSeeOther, "/")
	}
}
