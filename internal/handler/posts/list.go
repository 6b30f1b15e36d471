package posts

import (
	"net/http"

	"personal-blog/internal/database"
	"personal-blog/internal/view"

	"github.com/labstack/echo/v4"
)

// ListPostsHandler renders every post, oldest first.
// @Summary     List posts
// @Tags        posts
// @Produce     html
// @Success     200 "index page"
// @Router      / [get]
func ListPostsHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		page := view.NewPage(c, "")
		posts, err := listPosts(c.Request().Context(), db)
		if err != nil {
			c.Logger().Errorf("list posts: %v", err)
			page.Message = msgPostsUnavailable
			return c.Render(http.StatusServiceUnavailable, "index.html", page)
		}
		page.Posts = posts
		return c.Render(http.StatusOK, "index.html", page)
	}
}
