package posts

import (
	"errors"
	"fmt"
	"net/http"

	"personal-blog/internal/database"
	"personal-blog/internal/middleware"
	"personal-blog/internal/store"

	"github.com/labstack/echo/v4"
)

// EditPostPageHandler renders the editor filled with the post's current
// values.
func EditPostPageHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := postID(c)
		if err != nil {
			return err
		}
		post, err := loadPost(c, db, id)
		if err != nil {
			return err
		}
		return renderEditor(c, http.StatusOK, post, formFromPost(post), nil)
	}
}

// EditPostHandler overwrites the post's title, subtitle, image and body.
// The editing admin becomes the post's author; the date is kept.
// @Summary     Edit post
// @Tags        posts
// @Accept      application/x-www-form-urlencoded
// @Produce     html
// @Param       post_id  path     int    true "Post ID"
// @Param       title    formData string true "Title (unique)"
// @Param       subtitle formData string true "Subtitle"
// @Param       img_url  formData string true "Cover image URL"
// @Param       body     formData string true "Body (HTML)"
// @Success     303 "Redirect to /post/{post_id}"
// @Failure     400 "Editor re-rendered with field errors"
// @Failure     403 "not an admin"
// @Failure     404 "no such post"
// @Failure     409 "title already used"
// @Router      /edit-post/{post_id} [post]
func EditPostHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, ok := middleware.CurrentUser(c)
		if !ok || !user.IsAdmin {
			return echo.NewHTTPError(http.StatusForbidden)
		}
		id, err := postID(c)
		if err != nil {
			return err
		}
		post, err := loadPost(c, db, id)
		if err != nil {
			return err
		}

		req, code, errs := bindPost(c)
		if errs != nil {
			return renderEditor(c, code, post, formFromRequest(req), errs)
		}

		updated := *post
		updated.Title = req.Title
		updated.Subtitle = req.Subtitle
		updated.ImgURL = req.ImgURL
		updated.Body = req.Body
		updated.AuthorID = user.ID
		updated.AuthorName = user.Name

		err = updatePost(c.Request().Context(), db, &updated)
		if errors.Is(err, store.ErrNotFound) {
			// deleted between load and update
			return echo.NewHTTPError(http.StatusNotFound, msgPostNotFound)
		}
		if err != nil {
			code, errs = saveError(c, "update post", err)
			return renderEditor(c, code, post, formFromRequest(req), errs)
		}
		return c.Redirect(http.StatusSeeOther, fmt.Sprintf("/post/%d", post.ID))
	}
}
