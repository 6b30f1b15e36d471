package middleware

import (
	"net/http"

	"personal-blog/internal/flash"

	"github.com/labstack/echo/v4"
)

const LoginRequiredMessage = "Please log in to access this page."

func noStore(c echo.Context) {
	h := c.Response().Header()
	h.Set("Cache-Control", "no-store, no-cache, must-revalidate, max-age=0")
	h.Set("Pragma", "no-cache")
}

// RequireLogin sends anonymous visitors to the login page.
func RequireLogin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, ok := CurrentUser(c); !ok {
			flash.Set(c, LoginRequiredMessage)
			return c.Redirect(http.StatusFound, "/login")
		}
		noStore(c)
		return next(c)
	}
}

// RequireAdmin answers 403 unless the visitor is logged in as an admin.
// Nothing downstream runs on failure.
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, ok := CurrentUser(c)
		if !ok {
			return echo.NewHTTPError(http.StatusForbidden, "login required")
		}
		if !user.IsAdmin {
			return echo.NewHTTPError(http.StatusForbidden, "admin privileges required")
		}
		noStore(c)
		return next(c)
	}
}
