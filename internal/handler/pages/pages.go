// Package pages serves the static About and Contact pages.
package pages

import (
	"net/http"

	"personal-blog/internal/view"

	"github.com/labstack/echo/v4"
)

// AboutHandler is public.
// @Summary     About page
// @Tags        pages
// @Produce     html
// @Success     200 "about page"
// @Router      /about [get]
func AboutHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.Render(http.StatusOK, "about.html", view.NewPage(c, "About"))
	}
}

// ContactHandler must be mounted behind middleware.RequireLogin.
// @Summary     Contact page
// @Tags        pages
// @Produce     html
// @Success     200 "contact page"
// @Success     302 "Redirect to /login when not logged in"
// @Router      /contact [get]
func ContactHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.Render(http.StatusOK, "contact.html", view.NewPage(c, "Contact"))
	}
}
