package posts

import (
	"errors"
	"net/http"

	"personal-blog/internal/database"
	"personal-blog/internal/flash"
	"personal-blog/internal/middleware"
	"personal-blog/internal/store"

	"github.com/labstack/echo/v4"
)

// DeletePostHandler removes a post together with its comments.
// @Summary     Delete post
// @Tags        posts
// @Param       post_id path int true "Post ID"
// @Success     302 "Redirect to /"
// @Failure     403 "not an admin"
// @Failure     404 "no such post"
// @Router      /delete/{post_id} [get]
func DeletePostHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		if user, ok := middleware.CurrentUser(c); !ok || !user.IsAdmin {
			return echo.NewHTTPError(http.StatusForbidden)
		}
		id, err := postID(c)
		if err != nil {
			return err
		}

		err = deletePost(c.Request().Context(), db, id)
		if errors.Is(err, store.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, msgPostNotFound)
		}
		if err != nil {
			c.Logger().Errorf("delete post %d: %v", id, err)
			flash.Set(c, msgDeleteFailed)
		}
		return c.Redirect(http.StatusFound, "/")
	}
}
